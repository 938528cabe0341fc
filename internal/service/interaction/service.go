package interaction

import (
	"bank_backend/internal/config"
	"bank_backend/internal/model"
	"bank_backend/internal/repository"
	"bank_backend/internal/service"
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authServ  service.AuthService
	adminCfg  config.AdminConfig
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authServ service.AuthService,
	adminCfg config.AdminConfig,
) service.InteractionService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authServ:  authServ,
		adminCfg:  adminCfg,
	}
}

// verify - общий первый шаг всех защищенных операций.
// Негодный токен закрывает операцию до каких-либо изменений
func (s *serv) verify(ctx context.Context, userID int, credential string) error {
	ok, err := s.authServ.VerifyCredential(ctx, userID, credential)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrInvalidCredential
	}
	return nil
}
