package auth

import (
	"bank_backend/pkg/token"
	"context"
	"time"
)

// SignedIssuer - модель самодостаточного подписанного токена (JWT HS256).
// Состояние в хранилище не нужно: проверяется подпись, срок действия
// и совпадение субъекта
type SignedIssuer struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewSignedIssuer(secretKey []byte, ttl time.Duration) *SignedIssuer {
	return &SignedIssuer{
		secretKey: secretKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (i *SignedIssuer) Issue(_ context.Context, userID int) (string, error) {
	return token.GenerateSignedToken(userID, i.secretKey, i.ttl, i.now())
}

func (i *SignedIssuer) Verify(_ context.Context, userID int, credential string) (bool, error) {
	subjectID, err := token.VerifySignedToken(credential, i.secretKey, i.now)
	if err != nil {
		// Кривой или истекший токен это не сбой, а отказ в проверке
		return false, nil
	}

	return subjectID == userID, nil
}
