package env

import (
	"bank_backend/internal/config"
	"fmt"
	"os"
	"time"
)

const (
	tokenSchemeEnvName = "TOKEN_SCHEME"
	tokenSecretEnvName = "TOKEN_SECRET"
	tokenTTLEnvName    = "TOKEN_TTL"

	// Значения по умолчанию
	defaultScheme = "opaque"
	defaultTTL    = 15 * time.Minute
)

const (
	SchemeOpaque = "opaque"
	SchemeSigned = "signed"
)

type tokenConfig struct {
	scheme    string
	secretKey string
	ttl       time.Duration
}

func NewTokenConfig() (config.TokenConfig, error) {
	scheme := os.Getenv(tokenSchemeEnvName)
	if len(scheme) == 0 {
		scheme = defaultScheme
	}
	if scheme != SchemeOpaque && scheme != SchemeSigned {
		return nil, fmt.Errorf("unknown token scheme: %s", scheme)
	}

	secret := os.Getenv(tokenSecretEnvName)
	// Для подписанных токенов секретный ключ обязателен
	if scheme == SchemeSigned && len(secret) == 0 {
		return nil, fmt.Errorf("token secret key not found")
	}

	ttl := defaultTTL
	if ttlStr := os.Getenv(tokenTTLEnvName); len(ttlStr) != 0 {
		parsed, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid token ttl: %w", err)
		}
		ttl = parsed
	}

	return &tokenConfig{
		scheme:    scheme,
		secretKey: secret,
		ttl:       ttl,
	}, nil
}

func (cfg *tokenConfig) Scheme() string {
	return cfg.scheme
}

func (cfg *tokenConfig) SecretKey() []byte {
	return []byte(cfg.secretKey)
}

func (cfg *tokenConfig) TTL() time.Duration {
	return cfg.ttl
}
