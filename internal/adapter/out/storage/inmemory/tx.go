package inmemory

import (
	"context"
	"sync"
)

// TxManager serialises multi-step mutations against the in-memory storages.
// There is no rollback: a failing step leaves earlier steps applied.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx)
}
