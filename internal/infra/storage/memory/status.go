// Package memory provides the default, process-lifetime implementation of
// the transaction status store. Records live in a plain map guarded by a
// RWMutex: webhook deliveries for the same transaction hash may race, so
// every read-modify-write cycle runs under the write lock while status
// queries take snapshot reads.
package memory

import (
	"context"
	"sync"

	"github.com/satstack/paywatch/internal/txstatus"
)

// StatusStore is an in-memory txstatus.StatusStorage.
type StatusStore struct {
	mu      sync.RWMutex
	records map[string]txstatus.Record
}

var _ txstatus.StatusStorage = (*StatusStore)(nil)

// NewStatusStore returns an empty in-memory status store.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		records: make(map[string]txstatus.Record),
	}
}

// GetTransaction returns the record stored for the given hash.
func (s *StatusStore) GetTransaction(_ context.Context, txHash string) (txstatus.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[txHash]
	if !ok {
		return txstatus.Record{}, txstatus.ErrTransactionNotFound
	}

	return record, nil
}

// UpsertTransaction atomically applies the given function to the current
// record (or nil when absent) and stores the result.
func (s *StatusStore) UpsertTransaction(_ context.Context, txHash string, apply func(current *txstatus.Record) txstatus.Record) (txstatus.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *txstatus.Record
	if existing, ok := s.records[txHash]; ok {
		current = &existing
	}

	record := apply(current)
	s.records[txHash] = record
	return record, nil
}

// UpdateTransaction atomically applies the given function to the existing
// record for the hash. It returns txstatus.ErrTransactionNotFound without
// invoking apply when the hash is unknown.
func (s *StatusStore) UpdateTransaction(_ context.Context, txHash string, apply func(current txstatus.Record) txstatus.Record) (txstatus.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[txHash]
	if !ok {
		return txstatus.Record{}, txstatus.ErrTransactionNotFound
	}

	record := apply(current)
	s.records[txHash] = record
	return record, nil
}

// ListTransactions returns a snapshot of every stored record.
func (s *StatusStore) ListTransactions(_ context.Context) ([]txstatus.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]txstatus.Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}

	return records, nil
}
