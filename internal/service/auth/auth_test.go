package auth

import (
	"context"
	"testing"
	"time"

	"bank_backend/internal/model"
	"bank_backend/internal/repository"
	"bank_backend/internal/repository/memory"
	"bank_backend/pkg/pass"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenTTL = 15 * time.Minute

// fakeClock - управляемые часы для проверки истечения токенов
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newOpaqueService(ledger *memory.Ledger, clock *fakeClock) *serv {
	issuer := NewOpaqueIssuer(ledger, tokenTTL)
	issuer.now = clock.Now

	return &serv{
		userRepo: ledger,
		hasher:   pass.NewHasher([]byte("test-pepper")),
		issuer:   issuer,
	}
}

func newSignedService(ledger *memory.Ledger, clock *fakeClock) *serv {
	issuer := NewSignedIssuer([]byte("test-secret"), tokenTTL)
	issuer.now = clock.Now

	return &serv{
		userRepo: ledger,
		hasher:   pass.NewHasher([]byte("test-pepper")),
		issuer:   issuer,
	}
}

func TestRegisterUserAndGetID(t *testing.T) {
	ctx := context.Background()
	s := newOpaqueService(memory.NewLedger(), newFakeClock())

	id, err := s.RegisterUserAndGetID(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotZero(t, id)

	resolved, err := s.ResolveID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	// Повторная регистрация с тем же именем
	_, err = s.RegisterUserAndGetID(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestResolveIDUnknown(t *testing.T) {
	ctx := context.Background()
	s := newOpaqueService(memory.NewLedger(), newFakeClock())

	_, err := s.ResolveID(ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestIssueCredentialWrongPassword(t *testing.T) {
	ctx := context.Background()
	s := newOpaqueService(memory.NewLedger(), newFakeClock())

	id, err := s.RegisterUserAndGetID(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = s.IssueCredential(ctx, id, "wrong")
	assert.ErrorIs(t, err, model.ErrWrongPassword)

	// Неизвестный ID тоже дает WrongPassword, а не "нет пользователя"
	_, err = s.IssueCredential(ctx, id+100, "pw1")
	assert.ErrorIs(t, err, model.ErrWrongPassword)
}

func TestCredentialRoundTrip(t *testing.T) {
	schemes := map[string]func(*memory.Ledger, *fakeClock) *serv{
		"opaque": newOpaqueService,
		"signed": newSignedService,
	}

	for name, build := range schemes {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := newFakeClock()
			s := build(memory.NewLedger(), clock)

			id, err := s.RegisterUserAndGetID(ctx, "alice", "pw1")
			require.NoError(t, err)

			cred, err := s.IssueCredential(ctx, id, "pw1")
			require.NoError(t, err)
			require.NotEmpty(t, cred)

			ok, err := s.VerifyCredential(ctx, id, cred)
			require.NoError(t, err)
			assert.True(t, ok)

			// Чужой субъект
			ok, err = s.VerifyCredential(ctx, id+1, cred)
			require.NoError(t, err)
			assert.False(t, ok)

			// Кривой токен это false, а не ошибка
			ok, err = s.VerifyCredential(ctx, id, "garbage")
			require.NoError(t, err)
			assert.False(t, ok)

			// По истечении TTL токен перестает действовать
			clock.Advance(tokenTTL + time.Second)
			ok, err = s.VerifyCredential(ctx, id, cred)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	ctx := context.Background()
	s := newOpaqueService(memory.NewLedger(), newFakeClock())

	id, err := s.RegisterUserAndGetID(ctx, "alice", "pw1")
	require.NoError(t, err)

	ok, err := s.CheckPassword(ctx, id, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CheckPassword(ctx, id, "pw2")
	require.NoError(t, err)
	assert.False(t, ok)
}

// collidingCredRepo - имитирует коллизию токена при первой вставке
type collidingCredRepo struct {
	repository.CredentialRepository
	collisions int
	attempts   int
}

func (r *collidingCredRepo) CreateCredential(ctx context.Context, credential *model.Credential) error {
	r.attempts++
	if r.attempts <= r.collisions {
		return model.ErrCredentialExists
	}
	return r.CredentialRepository.CreateCredential(ctx, credential)
}

func TestIssueCredentialRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	credRepo := &collidingCredRepo{CredentialRepository: ledger, collisions: 2}

	issuer := NewOpaqueIssuer(credRepo, tokenTTL)
	s := &serv{
		userRepo: ledger,
		hasher:   pass.NewHasher([]byte("test-pepper")),
		issuer:   issuer,
	}

	id, err := s.RegisterUserAndGetID(ctx, "alice", "pw1")
	require.NoError(t, err)

	cred, err := s.IssueCredential(ctx, id, "pw1")
	require.NoError(t, err)
	assert.Equal(t, 3, credRepo.attempts)

	ok, err := s.VerifyCredential(ctx, id, cred)
	require.NoError(t, err)
	assert.True(t, ok)
}
