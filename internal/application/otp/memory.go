package otp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mc-parking-api/internal/domain"
)

// MemoryStore keeps transactions in a process-local map.
type MemoryStore struct {
	mu  sync.Mutex
	txs map[string]domain.OTPTransaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{txs: make(map[string]domain.OTPTransaction)}
}

func (m *MemoryStore) Put(_ context.Context, tx *domain.OTPTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[tx.TransactionID] = *tx
	return nil
}

func (m *MemoryStore) Get(_ context.Context, transactionID string) (*domain.OTPTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[transactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	return &tx, nil
}

func (m *MemoryStore) Consume(_ context.Context, transactionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[transactionID]; !ok {
		return false, nil
	}
	delete(m.txs, transactionID)
	return true, nil
}

func (m *MemoryStore) Delete(_ context.Context, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.txs, transactionID)
	return nil
}
