package pass

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 120000
	keyLen     = 32 // 256 бит
)

// Hasher - детерминированное хэширование паролей.
// Один и тот же пароль всегда дает один и тот же хэш,
// поэтому хранилище может сверять хэши как строки
type Hasher struct {
	pepper []byte
}

func NewHasher(pepper []byte) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) HashPassword(password string) string {
	key := pbkdf2.Key([]byte(password), h.pepper, iterations, keyLen, sha256.New)
	return hex.EncodeToString(key)
}

func (h *Hasher) VerifyPassword(password string, hash string) bool {
	return subtle.ConstantTimeCompare(
		[]byte(h.HashPassword(password)),
		[]byte(hash),
	) == 1
}
