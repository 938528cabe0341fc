package user_repo

import (
	"bank_backend/internal/model"
	"bank_backend/internal/repository"
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "users"
	colID           = "id"
	colUsername     = "username"
	colPasswordHash = "password_hash"
	colBalance      = "balance"

	uniqueViolationCode = "23505"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateUser - создает нового пользователя с нулевым балансом.
// Возвращает ID созданного пользователя
func (r *repo) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUsername, colPasswordHash).
		Values(username, passwordHash).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, model.ErrUserAlreadyExists
		}
		return 0, err
	}

	return id, nil
}

// GetIDByUsername - возвращает ID пользователя по его имени
func (r *repo) GetIDByUsername(ctx context.Context, username string) (int, error) {
	// Формируем запрос
	query := sq.Select(colID).
		From(table).
		Where(sq.Eq{colUsername: username}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, err
	}

	return id, nil
}

// GetUsernameByID - возвращает имя пользователя по его ID
func (r *repo) GetUsernameByID(ctx context.Context, id int) (string, error) {
	// Формируем запрос
	query := sq.Select(colUsername).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var username string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrUserNotFound
		}
		return "", err
	}

	return username, nil
}

// GetBalance - получение баланса пользователя по его ID
func (r *repo) GetBalance(ctx context.Context, id int) (int, error) {
	return r.getBalance(ctx, id, false)
}

// GetBalanceForUpdate - получение баланса с блокировкой строки (SELECT ... FOR UPDATE).
// Использовать только внутри транзакции
func (r *repo) GetBalanceForUpdate(ctx context.Context, id int) (int, error) {
	return r.getBalance(ctx, id, true)
}

func (r *repo) getBalance(ctx context.Context, id int, forUpdate bool) (int, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, err
	}

	return int(balance), nil
}

// SetBalance - безусловная запись нового баланса пользователя
func (r *repo) SetBalance(ctx context.Context, id int, balance int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, int64(balance)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// UserExists - проверка существования пользователя по ID
func (r *repo) UserExists(ctx context.Context, id int) (bool, error) {
	// Формируем запрос
	query := sq.Select("1").
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exists(ctx, query)
}

// UsernameExists - проверка занятости имени пользователя
func (r *repo) UsernameExists(ctx context.Context, username string) (bool, error) {
	// Формируем запрос
	query := sq.Select("1").
		From(table).
		Where(sq.Eq{colUsername: username}).
		PlaceholderFormat(sq.Dollar)

	return r.exists(ctx, query)
}

// CheckPassword - сверка хэша пароля по ID пользователя.
// Возвращает false и для несуществующего ID, без ошибки
func (r *repo) CheckPassword(ctx context.Context, id int, passwordHash string) (bool, error) {
	// Формируем запрос
	query := sq.Select("1").
		From(table).
		Where(sq.Eq{colID: id, colPasswordHash: passwordHash}).
		PlaceholderFormat(sq.Dollar)

	return r.exists(ctx, query)
}

func (r *repo) exists(ctx context.Context, query sq.SelectBuilder) (bool, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// SetUsername - смена имени пользователя.
// Возвращает ErrUserAlreadyExists если имя занято
func (r *repo) SetUsername(ctx context.Context, id int, newUsername string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colUsername, newUsername).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrUserAlreadyExists
		}
		return err
	}

	return nil
}

// DeleteUser - удаляет пользователя по ID.
// Выданные токены удаляются каскадно на уровне схемы
func (r *repo) DeleteUser(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
