package memory

import (
	"context"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Manager - trm.Manager для хранилища в памяти.
// Сериализует транзакции одним мьютексом, что дает изоляцию
// без настоящей БД. Достаточно для тестов переводов
type Manager struct {
	mtx sync.Mutex
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return fn(ctx)
}

func (m *Manager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
