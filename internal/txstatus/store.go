package txstatus

import (
	"context"
	"errors"
)

// ErrTransactionNotFound is returned when no record exists for the
// requested transaction hash.
var ErrTransactionNotFound = errors.New("transaction not found")

// StatusStorage persists the last-known record per transaction hash.
//
// Implementations must serialize UpsertTransaction and UpdateTransaction
// calls for the same hash: an unconfirmed-tx event and a fast
// tx-confirmation for the same transaction may be processed concurrently,
// and neither update may be lost. GetTransaction and ListTransactions are
// snapshot reads and need no such coordination.
type StatusStorage interface {
	// GetTransaction returns the record stored for the given hash, or
	// ErrTransactionNotFound when the hash was never seen.
	GetTransaction(ctx context.Context, txHash string) (Record, error)

	// UpsertTransaction applies the given function to the current record
	// for the hash, or to nil when none exists, and stores the result.
	// The read-apply-write cycle is atomic per hash.
	UpsertTransaction(ctx context.Context, txHash string, apply func(current *Record) Record) (Record, error)

	// UpdateTransaction applies the given function to the existing record
	// for the hash and stores the result. It returns
	// ErrTransactionNotFound, without invoking apply, when no record
	// exists. The read-apply-write cycle is atomic per hash.
	UpdateTransaction(ctx context.Context, txHash string, apply func(current Record) Record) (Record, error)

	// ListTransactions returns a snapshot of every stored record.
	ListTransactions(ctx context.Context) ([]Record, error)
}
