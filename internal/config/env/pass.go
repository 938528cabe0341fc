package env

import (
	"bank_backend/internal/config"
	"errors"
	"os"
)

const (
	passPepperEnvName = "PASS_PEPPER"
)

type passConfig struct {
	pepper string
}

func NewPassConfig() (config.PassConfig, error) {
	pepper := os.Getenv(passPepperEnvName)
	if len(pepper) == 0 {
		return nil, errors.New("password pepper not found")
	}

	return &passConfig{
		pepper: pepper,
	}, nil
}

func (cfg *passConfig) Pepper() []byte {
	return []byte(cfg.pepper)
}
