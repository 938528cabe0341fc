package interaction_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bank_backend/internal/config/env"
	"bank_backend/internal/model"
	"bank_backend/internal/repository/memory"
	"bank_backend/internal/service"
	"bank_backend/internal/service/auth"
	"bank_backend/internal/service/interaction"
	"bank_backend/pkg/pass"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenTTL = 15 * time.Minute

type testEnv struct {
	ledger    *memory.Ledger
	authServ  service.AuthService
	interServ service.InteractionService
}

// newTestEnv - сервисы над хранилищем в памяти.
// adminIDs - пользователи с правами администратора
func newTestEnv(adminIDs ...int) *testEnv {
	ledger := memory.NewLedger()
	hasher := pass.NewHasher([]byte("test-pepper"))

	authServ := auth.NewService(ledger, hasher, auth.NewOpaqueIssuer(ledger, tokenTTL))
	interServ := interaction.NewService(
		memory.NewManager(),
		ledger,
		authServ,
		env.NewAdminConfig(adminIDs...),
	)

	return &testEnv{
		ledger:    ledger,
		authServ:  authServ,
		interServ: interServ,
	}
}

// register - регистрирует пользователя и выдает ему токен
func (e *testEnv) register(t *testing.T, username, password string) (int, string) {
	t.Helper()

	id, err := e.interServ.RegisterUser(context.Background(), username, password)
	require.NoError(t, err)

	cred, err := e.authServ.IssueCredential(context.Background(), id, password)
	require.NoError(t, err)

	return id, cred
}

func TestRegisterAndGetUID(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv()

	id, err := e.interServ.RegisterUser(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = e.interServ.RegisterUser(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)

	resolved, err := e.interServ.GetUID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	_, err = e.interServ.GetUID(ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetBalanceRequiresCredential(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv()

	id, cred := e.register(t, "alice", "pw1")

	balance, err := e.interServ.GetBalance(ctx, id, cred)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	_, err = e.interServ.GetBalance(ctx, id, "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestEditUsername(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv()

	aliceID, aliceCred := e.register(t, "alice", "pw1")
	e.register(t, "bob", "pw2")

	err := e.interServ.EditUsername(ctx, aliceID, "bob", aliceCred)
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)

	err = e.interServ.EditUsername(ctx, aliceID, "alicia", aliceCred)
	require.NoError(t, err)

	resolved, err := e.interServ.GetUID(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, aliceID, resolved)

	// Без годного токена изменений нет
	err = e.interServ.EditUsername(ctx, aliceID, "eve", "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)
	_, err = e.interServ.GetUID(ctx, "eve")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv()

	id, cred := e.register(t, "alice", "pw1")

	require.NoError(t, e.interServ.DeleteUser(ctx, id, cred))

	_, err := e.interServ.GetUID(ctx, "alice")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	// Токены удаленного пользователя аннулированы каскадно
	_, err = e.interServ.GetBalance(ctx, id, cred)
	assert.ErrorIs(t, err, model.ErrInvalidCredential)
}

func TestSendMoney(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(1)

	adminID, adminCred := e.register(t, "admin", "root")
	require.Equal(t, 1, adminID)
	aliceID, aliceCred := e.register(t, "alice", "pw1")
	bobID, _ := e.register(t, "bob", "pw2")

	require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, 100, adminCred))

	t.Run("invalid credential", func(t *testing.T) {
		err := e.interServ.SendMoney(ctx, aliceID, 30, bobID, "garbage")
		assert.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		assert.ErrorIs(t, e.interServ.SendMoney(ctx, aliceID, 0, bobID, aliceCred), model.ErrInvalidAmount)
		assert.ErrorIs(t, e.interServ.SendMoney(ctx, aliceID, -5, bobID, aliceCred), model.ErrInvalidAmount)
	})

	t.Run("self transfer", func(t *testing.T) {
		assert.ErrorIs(t, e.interServ.SendMoney(ctx, aliceID, 10, aliceID, aliceCred), model.ErrInvalidAmount)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		err := e.interServ.SendMoney(ctx, aliceID, 10, 999, aliceCred)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("amount equal to balance rejected", func(t *testing.T) {
		err := e.interServ.SendMoney(ctx, aliceID, 100, bobID, aliceCred)
		assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	})

	t.Run("successful transfer conserves funds", func(t *testing.T) {
		require.NoError(t, e.interServ.SendMoney(ctx, aliceID, 30, bobID, aliceCred))

		aliceBalance, err := e.interServ.GetBalance(ctx, aliceID, aliceCred)
		require.NoError(t, err)
		assert.Equal(t, 70, aliceBalance)

		bobBalance, err := e.interServ.AdminGetBalance(ctx, adminID, bobID, adminCred)
		require.NoError(t, err)
		assert.Equal(t, 30, bobBalance)
	})

	t.Run("amount of balance minus one accepted", func(t *testing.T) {
		// Баланс alice 70: перевод 70 отклоняется, 69 проходит
		assert.ErrorIs(t, e.interServ.SendMoney(ctx, aliceID, 70, bobID, aliceCred), model.ErrInsufficientFunds)
		require.NoError(t, e.interServ.SendMoney(ctx, aliceID, 69, bobID, aliceCred))

		aliceBalance, err := e.interServ.GetBalance(ctx, aliceID, aliceCred)
		require.NoError(t, err)
		assert.Equal(t, 1, aliceBalance)
	})
}

// TestSendMoneyConcurrent - гонка потерянных обновлений.
// N одновременных переводов по 1 единице с общего счета: итоговые
// балансы должны сойтись без потерь и без ухода в минус
func TestSendMoneyConcurrent(t *testing.T) {
	const n = 50

	ctx := context.Background()
	e := newTestEnv(1)

	adminID, adminCred := e.register(t, "admin", "root")
	aliceID, aliceCred := e.register(t, "alice", "pw1")
	bobID, _ := e.register(t, "bob", "pw2")

	// Сумма строго меньше баланса, поэтому для n переводов
	// по единице нужен стартовый баланс n+1
	require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, n+1, adminCred))

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.interServ.SendMoney(ctx, aliceID, 1, bobID, aliceCred)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	aliceBalance, err := e.interServ.GetBalance(ctx, aliceID, aliceCred)
	require.NoError(t, err)
	assert.Equal(t, 1, aliceBalance)

	bobBalance, err := e.interServ.AdminGetBalance(ctx, adminID, bobID, adminCred)
	require.NoError(t, err)
	assert.Equal(t, n, bobBalance)
}

func TestAdminGating(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(1)

	adminID, adminCred := e.register(t, "admin", "root")
	aliceID, aliceCred := e.register(t, "alice", "pw1")

	t.Run("non-admin refused regardless of credential", func(t *testing.T) {
		err := e.interServ.AdminSetBalance(ctx, aliceID, adminID, 100, aliceCred)
		assert.ErrorIs(t, err, model.ErrNoAccess)

		_, err = e.interServ.AdminGetBalance(ctx, aliceID, adminID, "garbage")
		assert.ErrorIs(t, err, model.ErrNoAccess)
	})

	t.Run("admin with invalid credential refused", func(t *testing.T) {
		// Проверка прав идет раньше проверки токена
		err := e.interServ.AdminSetBalance(ctx, adminID, aliceID, 100, "garbage")
		assert.ErrorIs(t, err, model.ErrInvalidCredential)
	})

	t.Run("admin set and get balance", func(t *testing.T) {
		require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, 100, adminCred))

		balance, err := e.interServ.AdminGetBalance(ctx, adminID, aliceID, adminCred)
		require.NoError(t, err)
		assert.Equal(t, 100, balance)
	})

	t.Run("admin override can set negative balance", func(t *testing.T) {
		require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, -10, adminCred))

		balance, err := e.interServ.AdminGetBalance(ctx, adminID, aliceID, adminCred)
		require.NoError(t, err)
		assert.Equal(t, -10, balance)

		require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, 0, adminCred))
	})

	t.Run("admin delete user", func(t *testing.T) {
		require.NoError(t, e.interServ.AdminDeleteUser(ctx, adminID, aliceID, adminCred))

		_, err := e.interServ.GetUID(ctx, "alice")
		assert.ErrorIs(t, err, model.ErrUserNotFound)

		err = e.interServ.AdminDeleteUser(ctx, adminID, aliceID, adminCred)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

// TestScenario - сквозной сценарий: регистрация, пополнение
// администратором, перевод
func TestScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(1)

	adminID, adminCred := e.register(t, "operator", "root")
	aliceID, err := e.interServ.RegisterUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	bobID, err := e.interServ.RegisterUser(ctx, "bob", "pw2")
	require.NoError(t, err)

	require.NoError(t, e.interServ.AdminSetBalance(ctx, adminID, aliceID, 100, adminCred))

	aliceCred, err := e.authServ.IssueCredential(ctx, aliceID, "pw1")
	require.NoError(t, err)

	require.NoError(t, e.interServ.SendMoney(ctx, aliceID, 30, bobID, aliceCred))

	aliceBalance, err := e.interServ.GetBalance(ctx, aliceID, aliceCred)
	require.NoError(t, err)
	assert.Equal(t, 70, aliceBalance)

	bobBalance, err := e.interServ.AdminGetBalance(ctx, adminID, bobID, adminCred)
	require.NoError(t, err)
	assert.Equal(t, 30, bobBalance)
}
