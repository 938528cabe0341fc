package credential_repo

import (
	"bank_backend/internal/model"
	"bank_backend/internal/repository"
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "credentials"
	colTokenHash = "token_hash"
	colUserID    = "user_id"
	colExpiresAt = "expires_at"

	uniqueViolationCode = "23505"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCredentialRepository(dbc *pgxpool.Pool) repository.CredentialRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateCredential - сохраняет хэш токена с привязкой к пользователю и временем истечения.
// Возвращает ErrCredentialExists при коллизии токена
func (r *repo) CreateCredential(ctx context.Context, credential *model.Credential) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colTokenHash, colUserID, colExpiresAt).
		Values(credential.TokenHash, credential.UserID, credential.ExpiresAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrCredentialExists
		}
		return err
	}

	return nil
}

// CredentialExists - проверяет что токен существует, принадлежит userID и не истек.
// Истекшая запись считается несуществующей
func (r *repo) CredentialExists(ctx context.Context, tokenHash string, userID int, now time.Time) (bool, error) {
	// Формируем запрос
	query := sq.Select("1").
		From(table).
		Where(sq.Eq{colTokenHash: tokenHash, colUserID: userID}).
		Where(sq.Gt{colExpiresAt: now}).
		PlaceholderFormat(sq.Dollar)

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

// PurgeExpired - удаляет все истекшие токены.
// Повторное удаление уже удаленных записей безопасно
func (r *repo) PurgeExpired(ctx context.Context, now time.Time) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.LtOrEq{colExpiresAt: now}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
