package converter

import (
	authDTO "bank_backend/internal/api/dto/auth"
	userDTO "bank_backend/internal/api/dto/user"
)

func ToRegisterResponse(id int) authDTO.RegisterResponse {
	return authDTO.RegisterResponse{
		UserID: id,
	}
}

func ToTokenResponse(token string) authDTO.TokenResponse {
	return authDTO.TokenResponse{
		Token: token,
	}
}

func ToBalanceResponse(balance int) userDTO.BalanceResponse {
	return userDTO.BalanceResponse{
		Balance: balance,
	}
}

func ToUIDResponse(id int) userDTO.UIDResponse {
	return userDTO.UIDResponse{
		UserID: id,
	}
}
