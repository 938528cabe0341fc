package auth

import (
	"bank_backend/internal/repository"
	"bank_backend/internal/service"
	"bank_backend/pkg/pass"
	"context"
)

// CredentialIssuer - стратегия выдачи и проверки токенов.
// Выбирается один раз конфигурацией: opaque или signed
type CredentialIssuer interface {
	Issue(ctx context.Context, userID int) (string, error)
	Verify(ctx context.Context, userID int, credential string) (bool, error)
}

type serv struct {
	userRepo repository.UserRepository
	hasher   *pass.Hasher
	issuer   CredentialIssuer
}

func NewService(
	userRepo repository.UserRepository,
	hasher *pass.Hasher,
	issuer CredentialIssuer,
) service.AuthService {
	return &serv{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}
