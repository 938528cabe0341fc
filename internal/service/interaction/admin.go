package interaction

import (
	"bank_backend/internal/model"
	"context"
)

// Привилегированные операции. Принадлежность к администраторам
// проверяется до токена: не администратор получает ErrNoAccess
// независимо от годности токена

func (s *serv) AdminGetBalance(ctx context.Context, callerID, targetID int, credential string) (int, error) {
	if !s.adminCfg.IsAdmin(callerID) {
		return 0, model.ErrNoAccess
	}
	if err := s.verify(ctx, callerID, credential); err != nil {
		return 0, err
	}

	return s.userRepo.GetBalance(ctx, targetID)
}

// AdminSetBalance - безусловная запись баланса.
// Административная коррекция, инвариант неотрицательности не применяется
func (s *serv) AdminSetBalance(ctx context.Context, callerID, targetID, newBalance int, credential string) error {
	if !s.adminCfg.IsAdmin(callerID) {
		return model.ErrNoAccess
	}
	if err := s.verify(ctx, callerID, credential); err != nil {
		return err
	}

	return s.userRepo.SetBalance(ctx, targetID, newBalance)
}

func (s *serv) AdminDeleteUser(ctx context.Context, callerID, targetID int, credential string) error {
	if !s.adminCfg.IsAdmin(callerID) {
		return model.ErrNoAccess
	}
	if err := s.verify(ctx, callerID, credential); err != nil {
		return err
	}

	return s.userRepo.DeleteUser(ctx, targetID)
}
