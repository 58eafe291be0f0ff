package txstatus

import (
	"context"
	"fmt"
)

// simulatedOutputValue is the default payment amount used by simulated
// unconfirmed-tx payloads: 1,500,000 satoshis (0.015 coins).
const simulatedOutputValue int64 = 1_500_000

// simulatedHashTimeLayout stamps synthesized transaction hashes so repeated
// simulations produce distinct transactions.
const simulatedHashTimeLayout = "20060102150405"

// ErrUnsupportedSimulationEvent is returned when the requested event type
// cannot be synthesized.
var ErrUnsupportedSimulationEvent = fmt.Errorf("unsupported event type for simulation")

// SimulationResult pairs the synthesized provider payload with the
// acknowledgment produced by running it through the reconciler.
type SimulationResult struct {
	SimulatedRequest PaymentEvent `json:"simulated_request"`
	WebhookResponse  Ack          `json:"webhook_response"`
}

// Simulate builds a payload for the given event type and processes it
// through the same entry point real webhook deliveries use.
//
// For unconfirmed-tx a fresh transaction hash is synthesized with a single
// output paying the given address. Confirmation and double-spend
// simulations target the first tracked transaction, falling back to a
// placeholder hash when nothing has been announced yet.
func (s *service) Simulate(ctx context.Context, eventType Event, address string, confirmations int64) (SimulationResult, error) {
	var payload PaymentEvent

	switch eventType {
	case EventUnconfirmedTx:
		payload = PaymentEvent{
			Event:         EventUnconfirmedTx,
			Address:       address,
			Hash:          "simulated_tx_" + s.now().Format(simulatedHashTimeLayout),
			Confirmations: 0,
			Outputs: []Output{
				{
					Addresses: []string{address},
					Value:     simulatedOutputValue,
				},
			},
		}
	case EventTxConfirmation:
		payload = PaymentEvent{
			Event:         EventTxConfirmation,
			Hash:          s.firstTrackedHash(ctx),
			Confirmations: confirmations,
		}
	case EventDoubleSpendTx:
		payload = PaymentEvent{
			Event: EventDoubleSpendTx,
			Hash:  s.firstTrackedHash(ctx),
		}
	default:
		return SimulationResult{}, ErrUnsupportedSimulationEvent
	}

	return SimulationResult{
		SimulatedRequest: payload,
		WebhookResponse:  s.HandlePaymentEvent(ctx, payload),
	}, nil
}

// firstTrackedHash picks a hash for hash-scoped simulations.
func (s *service) firstTrackedHash(ctx context.Context) string {
	records, err := s.statusStorage.ListTransactions(ctx)
	if err != nil || len(records) == 0 {
		return "no_transactions"
	}

	return records[0].TxHash
}
