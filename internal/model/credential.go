package model

import "time"

type Credential struct {
	TokenHash string
	UserID    int
	ExpiresAt time.Time
}
