package repository

import (
	"bank_backend/internal/model"
	"context"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (id int, err error)
	GetIDByUsername(ctx context.Context, username string) (int, error)
	GetUsernameByID(ctx context.Context, id int) (string, error)

	GetBalance(ctx context.Context, id int) (int, error)
	// GetBalanceForUpdate - чтение баланса с блокировкой записи.
	// Вызывается только внутри транзакции.
	GetBalanceForUpdate(ctx context.Context, id int) (int, error)
	SetBalance(ctx context.Context, id int, balance int) error

	UserExists(ctx context.Context, id int) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CheckPassword(ctx context.Context, id int, passwordHash string) (bool, error)

	SetUsername(ctx context.Context, id int, newUsername string) error
	DeleteUser(ctx context.Context, id int) error
}

type CredentialRepository interface {
	CreateCredential(ctx context.Context, credential *model.Credential) error
	// CredentialExists - true если токен существует, принадлежит userID и не истек
	CredentialExists(ctx context.Context, tokenHash string, userID int, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) error
}
