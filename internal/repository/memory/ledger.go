package memory

import (
	"bank_backend/internal/model"
	"context"
	"sync"
	"time"
)

type credential struct {
	userID    int
	expiresAt time.Time
}

// Ledger - реализация хранилища в памяти.
// Используется в тестах вместо PostgreSQL
type Ledger struct {
	mtx         sync.RWMutex
	nextID      int
	users       map[int]*model.User
	byUsername  map[string]int
	credentials map[string]credential
}

func NewLedger() *Ledger {
	return &Ledger{
		nextID:      1,
		users:       make(map[int]*model.User),
		byUsername:  make(map[string]int),
		credentials: make(map[string]credential),
	}
}

func (l *Ledger) CreateUser(_ context.Context, username, passwordHash string) (int, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if _, ok := l.byUsername[username]; ok {
		return 0, model.ErrUserAlreadyExists
	}

	id := l.nextID
	l.nextID++

	l.users[id] = &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      0,
	}
	l.byUsername[username] = id

	return id, nil
}

func (l *Ledger) GetIDByUsername(_ context.Context, username string) (int, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	id, ok := l.byUsername[username]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	return id, nil
}

func (l *Ledger) GetUsernameByID(_ context.Context, id int) (string, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	user, ok := l.users[id]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return user.Username, nil
}

func (l *Ledger) GetBalance(_ context.Context, id int) (int, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	user, ok := l.users[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	return user.Balance, nil
}

// GetBalanceForUpdate - в памяти транзакции сериализуются менеджером,
// поэтому блокировка строки не нужна
func (l *Ledger) GetBalanceForUpdate(ctx context.Context, id int) (int, error) {
	return l.GetBalance(ctx, id)
}

func (l *Ledger) SetBalance(_ context.Context, id int, balance int) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	user, ok := l.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Balance = balance
	return nil
}

func (l *Ledger) UserExists(_ context.Context, id int) (bool, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	_, ok := l.users[id]
	return ok, nil
}

func (l *Ledger) UsernameExists(_ context.Context, username string) (bool, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	_, ok := l.byUsername[username]
	return ok, nil
}

func (l *Ledger) CheckPassword(_ context.Context, id int, passwordHash string) (bool, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	user, ok := l.users[id]
	if !ok {
		return false, nil
	}
	return user.PasswordHash == passwordHash, nil
}

func (l *Ledger) SetUsername(_ context.Context, id int, newUsername string) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if ownerID, ok := l.byUsername[newUsername]; ok && ownerID != id {
		return model.ErrUserAlreadyExists
	}

	user, ok := l.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	delete(l.byUsername, user.Username)
	user.Username = newUsername
	l.byUsername[newUsername] = id
	return nil
}

// DeleteUser - удаляет пользователя и каскадно все его токены
func (l *Ledger) DeleteUser(_ context.Context, id int) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	user, ok := l.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	delete(l.byUsername, user.Username)
	delete(l.users, id)

	for hash, cred := range l.credentials {
		if cred.userID == id {
			delete(l.credentials, hash)
		}
	}
	return nil
}

func (l *Ledger) CreateCredential(_ context.Context, cred *model.Credential) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if _, ok := l.credentials[cred.TokenHash]; ok {
		return model.ErrCredentialExists
	}
	l.credentials[cred.TokenHash] = credential{userID: cred.UserID, expiresAt: cred.ExpiresAt}
	return nil
}

func (l *Ledger) CredentialExists(_ context.Context, tokenHash string, userID int, now time.Time) (bool, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	cred, ok := l.credentials[tokenHash]
	if !ok {
		return false, nil
	}
	if cred.userID != userID {
		return false, nil
	}
	if !cred.expiresAt.After(now) {
		return false, nil
	}
	return true, nil
}

func (l *Ledger) PurgeExpired(_ context.Context, now time.Time) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	for hash, cred := range l.credentials {
		if !cred.expiresAt.After(now) {
			delete(l.credentials, hash)
		}
	}
	return nil
}
