package interaction

import (
	"bank_backend/internal/model"
	"context"
)

// SendMoney - перевод amount от fromUserID к toUserID.
// Проверки и чтение-изменение-запись обоих балансов выполняются
// в одной транзакции, строки блокируются в порядке возрастания ID
func (s *serv) SendMoney(ctx context.Context, fromUserID, amount, toUserID int, credential string) error {
	if err := s.verify(ctx, fromUserID, credential); err != nil {
		return err
	}

	// Нулевые и отрицательные суммы дали бы обратный или пустой перевод.
	// Перевод самому себе при раздельной записи балансов печатал бы деньги
	if amount <= 0 || fromUserID == toUserID {
		return model.ErrInvalidAmount
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.UserExists(txCtx, toUserID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrUserNotFound
		}

		// Блокируем оба счета в порядке возрастания ID
		firstID, secondID := fromUserID, toUserID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}

		firstBalance, err := s.userRepo.GetBalanceForUpdate(txCtx, firstID)
		if err != nil {
			return err
		}
		secondBalance, err := s.userRepo.GetBalanceForUpdate(txCtx, secondID)
		if err != nil {
			return err
		}

		fromBalance, toBalance := firstBalance, secondBalance
		if firstID != fromUserID {
			fromBalance, toBalance = secondBalance, firstBalance
		}

		// Сумма должна быть строго меньше баланса
		if amount >= fromBalance {
			return model.ErrInsufficientFunds
		}

		if err := s.userRepo.SetBalance(txCtx, fromUserID, fromBalance-amount); err != nil {
			return err
		}
		if err := s.userRepo.SetBalance(txCtx, toUserID, toBalance+amount); err != nil {
			return err
		}

		return nil
	})
}
