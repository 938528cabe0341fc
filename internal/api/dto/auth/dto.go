package auth

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID int `json:"user_id"`
}

type TokenRequest struct {
	UserID   int    `json:"user_id"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
