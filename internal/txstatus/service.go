// Package txstatus tracks the lifecycle of transactions announced by the
// payment provider's webhooks. It reconciles unconfirmed-tx,
// tx-confirmation, and double-spend-tx deliveries into a per-hash status
// record and answers status queries independent of webhook timing.
package txstatus

import (
	"context"
	"time"
)

// Service is the webhook reconciler: it consumes decoded provider event
// payloads, updates the status store, and produces acknowledgment
// responses.
type Service interface {
	// HandlePaymentEvent processes a single provider callback payload.
	//
	// It never fails from the caller's perspective: the provider retries
	// delivery on non-success responses, so internal errors are absorbed,
	// logged, and surfaced through the Ack.Error field while the
	// acknowledgment still reports receipt.
	HandlePaymentEvent(ctx context.Context, event PaymentEvent) Ack

	// GetTransactionStatus returns the stored record for the given hash,
	// or ErrTransactionNotFound when the hash was never announced.
	GetTransactionStatus(ctx context.Context, txHash string) (Record, error)

	// ListTransactions returns every record currently tracked.
	ListTransactions(ctx context.Context) ([]Record, error)

	// Simulate synthesizes a provider payload for the given event type and
	// feeds it through HandlePaymentEvent, returning both the synthesized
	// request and the resulting acknowledgment. Intended for development
	// environments only.
	Simulate(ctx context.Context, eventType Event, address string, confirmations int64) (SimulationResult, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	statusStorage StatusStorage

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

var _ Service = (*service)(nil)

// Option configures the txstatus service.
type Option func(*service)

// WithClock overrides the time source used for first-seen timestamps and
// simulated transaction hashes.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a txstatus service backed by the given StatusStorage.
func New(ss StatusStorage, opts ...Option) *service {
	s := &service{
		statusStorage: ss,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}
