package auth

import (
	"bank_backend/internal/model"
	"bank_backend/internal/repository"
	"bank_backend/pkg/token"
	"context"
	"errors"
	"time"
)

// Количество попыток генерации токена при коллизии в хранилище
const maxGenerateAttempts = 5

// OpaqueIssuer - модель непрозрачного токена.
// Случайный токен хранится в виде хэша с привязкой к пользователю
// и временем истечения, проверяется по наличию в хранилище
type OpaqueIssuer struct {
	credRepo repository.CredentialRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewOpaqueIssuer(credRepo repository.CredentialRepository, ttl time.Duration) *OpaqueIssuer {
	return &OpaqueIssuer{
		credRepo: credRepo,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (i *OpaqueIssuer) Issue(ctx context.Context, userID int) (string, error) {
	// Попутная чистка истекших токенов, чтобы хранилище не росло
	if err := i.credRepo.PurgeExpired(ctx, i.now()); err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		t, err := token.GenerateOpaqueToken()
		if err != nil {
			return "", err
		}

		err = i.credRepo.CreateCredential(ctx, &model.Credential{
			TokenHash: token.HashOpaqueToken(t),
			UserID:    userID,
			ExpiresAt: i.now().Add(i.ttl),
		})
		if errors.Is(err, model.ErrCredentialExists) {
			// Коллизия токена, генерируем заново
			continue
		}
		if err != nil {
			return "", err
		}

		return t, nil
	}

	return "", model.ErrCredentialExists
}

func (i *OpaqueIssuer) Verify(ctx context.Context, userID int, credential string) (bool, error) {
	if err := i.credRepo.PurgeExpired(ctx, i.now()); err != nil {
		return false, err
	}

	return i.credRepo.CredentialExists(ctx, token.HashOpaqueToken(credential), userID, i.now())
}
