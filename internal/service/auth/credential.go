package auth

import (
	"bank_backend/internal/model"
	"context"
)

// CheckPassword - сверяет пароль с хэшем в хранилище.
// Для несуществующего ID возвращает false без ошибки
func (s *serv) CheckPassword(ctx context.Context, userID int, password string) (bool, error) {
	return s.userRepo.CheckPassword(ctx, userID, s.hasher.HashPassword(password))
}

// IssueCredential - выдает токен после проверки пароля.
// Возвращает ErrWrongPassword если пароль не подошел
func (s *serv) IssueCredential(ctx context.Context, userID int, password string) (string, error) {
	ok, err := s.CheckPassword(ctx, userID, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", model.ErrWrongPassword
	}

	return s.issuer.Issue(ctx, userID)
}

// VerifyCredential - проверяет что токен действителен и выдан userID
func (s *serv) VerifyCredential(ctx context.Context, userID int, credential string) (bool, error) {
	return s.issuer.Verify(ctx, userID, credential)
}
