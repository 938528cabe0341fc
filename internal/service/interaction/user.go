package interaction

import (
	"context"
)

// RegisterUser - регистрация без токена, делегируется AuthService
func (s *serv) RegisterUser(ctx context.Context, username, password string) (int, error) {
	return s.authServ.RegisterUserAndGetID(ctx, username, password)
}

// GetUID - публичный справочник имен, токен не требуется
func (s *serv) GetUID(ctx context.Context, username string) (int, error) {
	return s.authServ.ResolveID(ctx, username)
}

// EditUsername - смена имени владельцем аккаунта
func (s *serv) EditUsername(ctx context.Context, userID int, newUsername, credential string) error {
	if err := s.verify(ctx, userID, credential); err != nil {
		return err
	}

	return s.userRepo.SetUsername(ctx, userID, newUsername)
}

// DeleteUser - удаление собственного аккаунта
func (s *serv) DeleteUser(ctx context.Context, userID int, credential string) error {
	if err := s.verify(ctx, userID, credential); err != nil {
		return err
	}

	return s.userRepo.DeleteUser(ctx, userID)
}
