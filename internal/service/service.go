package service

import (
	"context"
)

type AuthService interface {
	RegisterUserAndGetID(ctx context.Context, username, password string) (int, error)
	ResolveID(ctx context.Context, username string) (int, error)

	CheckPassword(ctx context.Context, userID int, password string) (bool, error)
	IssueCredential(ctx context.Context, userID int, password string) (credential string, err error)
	// VerifyCredential - негодный токен это не ошибка, а false.
	// Ошибка возвращается только при недоступности хранилища
	VerifyCredential(ctx context.Context, userID int, credential string) (bool, error)
}

type InteractionService interface {
	RegisterUser(ctx context.Context, username, password string) (int, error)
	GetUID(ctx context.Context, username string) (int, error)

	GetBalance(ctx context.Context, userID int, credential string) (int, error)
	EditUsername(ctx context.Context, userID int, newUsername, credential string) error
	DeleteUser(ctx context.Context, userID int, credential string) error
	SendMoney(ctx context.Context, fromUserID, amount, toUserID int, credential string) error

	AdminGetBalance(ctx context.Context, callerID, targetID int, credential string) (int, error)
	AdminSetBalance(ctx context.Context, callerID, targetID, newBalance int, credential string) error
	AdminDeleteUser(ctx context.Context, callerID, targetID int, credential string) error
}
