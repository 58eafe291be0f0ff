package txstatus

// Event identifies the kind of provider callback being processed. The set
// of recognized values is closed; payloads carrying anything else are
// acknowledged without touching the status store.
type Event string

const (
	// EventUnconfirmedTx signals that a transaction paying a monitored
	// address entered the mempool.
	EventUnconfirmedTx Event = "unconfirmed-tx"

	// EventTxConfirmation reports an updated confirmation count for a
	// previously announced transaction.
	EventTxConfirmation Event = "tx-confirmation"

	// EventDoubleSpendTx reports that a conflicting transaction spending
	// the same inputs was detected.
	EventDoubleSpendTx Event = "double-spend-tx"
)

// Known reports whether the event is one of the recognized kinds.
func (e Event) Known() bool {
	switch e {
	case EventUnconfirmedTx, EventTxConfirmation, EventDoubleSpendTx:
		return true
	default:
		return false
	}
}

// Output is a single output of the transaction carried by an
// unconfirmed-tx payload.
type Output struct {
	// Addresses lists the recipient addresses of this output.
	Addresses []string `json:"addresses"`

	// Value is the output amount in satoshis.
	Value int64 `json:"value"`
}

// PaymentEvent is the decoded provider callback payload. Address may be
// empty for hash-scoped events, and Outputs is only populated for
// unconfirmed-tx deliveries.
type PaymentEvent struct {
	Event         Event    `json:"event"`
	Address       string   `json:"address"`
	Hash          string   `json:"hash"`
	Confirmations int64    `json:"confirmations"`
	Outputs       []Output `json:"outputs"`
}

// matchingValue sums the value of every output whose recipient list
// contains the monitored address.
func (e PaymentEvent) matchingValue() int64 {
	var total int64
	for _, out := range e.Outputs {
		for _, addr := range out.Addresses {
			if addr == e.Address {
				total += out.Value
				break
			}
		}
	}

	return total
}

// Ack is the acknowledgment returned to the webhook sender. Received is
// always true: the provider retries delivery on anything that does not look
// like success, so internal failures are reported through Error instead of
// being propagated.
type Ack struct {
	Received      bool   `json:"received"`
	TxHash        string `json:"tx_hash"`
	Event         Event  `json:"event"`
	ValueSatoshis *int64 `json:"value_satoshis,omitempty"`
	Confirmations *int64 `json:"confirmations,omitempty"`
	Status        string `json:"status,omitempty"`
	Error         string `json:"error,omitempty"`
}
