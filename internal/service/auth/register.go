package auth

import (
	"context"
)

// RegisterUserAndGetID - регистрирует нового пользователя.
// Возвращает ErrUserAlreadyExists если имя занято
func (s *serv) RegisterUserAndGetID(ctx context.Context, username, password string) (int, error) {
	// Хэширование пароля пользователя
	passwordHash := s.hasher.HashPassword(password)

	id, err := s.userRepo.CreateUser(ctx, username, passwordHash)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ResolveID - возвращает ID пользователя по имени
func (s *serv) ResolveID(ctx context.Context, username string) (int, error) {
	return s.userRepo.GetIDByUsername(ctx, username)
}
