package user

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type UIDResponse struct {
	UserID int `json:"user_id"`
}

type EditUsernameRequest struct {
	NewUsername string `json:"new_username"`
}

type TransferRequest struct {
	ToUserID int `json:"to_user_id"` // Получатель перевода
	Amount   int `json:"amount"`     // Сумма в минимальных единицах (>0)
}

type SetBalanceRequest struct {
	Balance int `json:"balance"` // Новый баланс (административная коррекция)
}
