package txstatus

import (
	"context"
	"errors"

	"github.com/satstack/paywatch/internal/pkg/logger"
)

// HandlePaymentEvent dispatches the payload to the handler for its event
// kind. Unrecognized events are acknowledged without any state mutation so
// new provider event types cannot trigger redelivery storms.
func (s *service) HandlePaymentEvent(ctx context.Context, event PaymentEvent) Ack {
	switch event.Event {
	case EventUnconfirmedTx:
		return s.handleUnconfirmedTx(ctx, event)
	case EventTxConfirmation:
		return s.handleTxConfirmation(ctx, event)
	case EventDoubleSpendTx:
		return s.handleDoubleSpend(ctx, event)
	default:
		return Ack{
			Received: true,
			TxHash:   event.Hash,
			Event:    event.Event,
		}
	}
}

// handleUnconfirmedTx creates (or overwrites) the record for a transaction
// first seen in the mempool. The stored value is the freshly computed sum
// of outputs paying the monitored address, so a replayed delivery
// overwrites rather than accumulates. The first-seen timestamp survives
// replays.
func (s *service) handleUnconfirmedTx(ctx context.Context, event PaymentEvent) Ack {
	valueSatoshis := event.matchingValue()

	record, err := s.statusStorage.UpsertTransaction(ctx, event.Hash, func(current *Record) Record {
		firstSeen := s.now()
		if current != nil {
			firstSeen = current.Timestamp
		}

		return Record{
			TxHash:        event.Hash,
			Address:       event.Address,
			ValueSatoshis: valueSatoshis,
			ValueBTC:      float64(valueSatoshis) / satoshisPerCoin,
			Confirmations: 0,
			Status:        StatusUnconfirmed,
			Timestamp:     firstSeen,
		}
	})
	if err != nil {
		logger.Error(ctx, "error storing unconfirmed transaction",
			"tx.hash", event.Hash,
			"tx.address", event.Address,
			"error", err,
		)

		return Ack{
			Received: true,
			TxHash:   event.Hash,
			Event:    EventUnconfirmedTx,
			Error:    err.Error(),
		}
	}

	logger.Info(ctx, "unconfirmed payment detected",
		"tx.hash", record.TxHash,
		"tx.address", record.Address,
		"tx.value_btc", record.ValueBTC,
	)

	return Ack{
		Received:      true,
		TxHash:        event.Hash,
		Event:         EventUnconfirmedTx,
		ValueSatoshis: &valueSatoshis,
	}
}

// handleTxConfirmation updates the confirmation count for a known
// transaction, promoting it to confirmed at the threshold. A confirmation
// for a hash that was never announced is a tolerated race (the
// confirmation webhook can outrun the unconfirmed-tx one): no record is
// created and the acknowledgment reports unknown_transaction.
func (s *service) handleTxConfirmation(ctx context.Context, event PaymentEvent) Ack {
	confirmations := event.Confirmations

	record, err := s.statusStorage.UpdateTransaction(ctx, event.Hash, func(current Record) Record {
		current.Confirmations = confirmations

		// A double-spend verdict is terminal and not softened by later
		// confirmations.
		if current.Status != StatusDoubleSpend && confirmations >= confirmationThreshold {
			current.Status = StatusConfirmed
		}

		return current
	})
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			logger.Warn(ctx, "confirmation received for unknown transaction",
				"tx.hash", event.Hash,
				"tx.confirmations", confirmations,
			)

			return Ack{
				Received:      true,
				TxHash:        event.Hash,
				Event:         EventTxConfirmation,
				Confirmations: &confirmations,
				Status:        ackStatusUnknownTransaction,
			}
		}

		logger.Error(ctx, "error updating transaction confirmations",
			"tx.hash", event.Hash,
			"error", err,
		)

		return Ack{
			Received: true,
			TxHash:   event.Hash,
			Event:    EventTxConfirmation,
			Error:    err.Error(),
		}
	}

	if record.Status == StatusConfirmed {
		logger.Info(ctx, "transaction fully confirmed",
			"tx.hash", record.TxHash,
			"tx.confirmations", record.Confirmations,
		)
	} else {
		logger.Debug(ctx, "transaction confirmation progressed",
			"tx.hash", record.TxHash,
			"tx.confirmations", record.Confirmations,
		)
	}

	return Ack{
		Received:      true,
		TxHash:        event.Hash,
		Event:         EventTxConfirmation,
		Confirmations: &confirmations,
		Status:        string(record.Status),
	}
}

// handleDoubleSpend marks a known transaction as a double-spend attempt.
// The override is unconditional: it demotes even a confirmed record. When
// the hash is unknown no record is created, but receipt is still
// acknowledged.
func (s *service) handleDoubleSpend(ctx context.Context, event PaymentEvent) Ack {
	record, err := s.statusStorage.UpdateTransaction(ctx, event.Hash, func(current Record) Record {
		current.Status = StatusDoubleSpend
		return current
	})

	switch {
	case err == nil:
		logger.Warn(ctx, "double spend detected",
			"tx.hash", record.TxHash,
			"tx.address", record.Address,
		)
	case errors.Is(err, ErrTransactionNotFound):
		logger.Warn(ctx, "double spend reported for unknown transaction",
			"tx.hash", event.Hash,
		)
	default:
		logger.Error(ctx, "error flagging double spend",
			"tx.hash", event.Hash,
			"error", err,
		)

		return Ack{
			Received: true,
			TxHash:   event.Hash,
			Event:    EventDoubleSpendTx,
			Error:    err.Error(),
		}
	}

	return Ack{
		Received: true,
		TxHash:   event.Hash,
		Event:    EventDoubleSpendTx,
		Status:   ackStatusFraudDetected,
	}
}

// GetTransactionStatus returns the stored record for the given hash.
func (s *service) GetTransactionStatus(ctx context.Context, txHash string) (Record, error) {
	return s.statusStorage.GetTransaction(ctx, txHash)
}

// ListTransactions returns every record currently tracked.
func (s *service) ListTransactions(ctx context.Context) ([]Record, error) {
	return s.statusStorage.ListTransactions(ctx)
}
