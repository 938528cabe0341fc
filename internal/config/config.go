package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

// TokenConfig - параметры выдачи токенов.
// Scheme выбирает модель токена: "opaque" (токен в хранилище) или "signed" (JWT).
type TokenConfig interface {
	Scheme() string
	SecretKey() []byte
	TTL() time.Duration
}

type PassConfig interface {
	Pepper() []byte
}

// AdminConfig - фиксированный список привилегированных пользователей.
type AdminConfig interface {
	IsAdmin(id int) bool
}
