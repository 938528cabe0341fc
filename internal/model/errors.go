package model

import "errors"

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNoAccess          = errors.New("no access")

	// ErrCredentialExists - коллизия токена в хранилище.
	// Наружу не отдается, генерация токена повторяется.
	ErrCredentialExists = errors.New("credential already exists")
)
