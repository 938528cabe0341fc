package interaction

import (
	"context"
)

// GetBalance - баланс собственного аккаунта
func (s *serv) GetBalance(ctx context.Context, userID int, credential string) (int, error) {
	if err := s.verify(ctx, userID, credential); err != nil {
		return 0, err
	}

	return s.userRepo.GetBalance(ctx, userID)
}
