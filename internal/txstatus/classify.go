package txstatus

// PollState is the presentation-level status derived for a polled
// transaction. Unlike Status it is computed from raw provider data on every
// request and never persisted.
type PollState string

const (
	// PollStateUnconfirmed: zero confirmations; confidence data applies.
	PollStateUnconfirmed PollState = "unconfirmed"

	// PollStateConfirming: one to five confirmations.
	PollStateConfirming PollState = "confirming"

	// PollStateConfirmed: six or more confirmations.
	PollStateConfirmed PollState = "confirmed"
)

// PolledStatus is the classification of a transaction fetched directly from
// the provider. Confidence and DoubleSpend are only meaningful while the
// transaction is unconfirmed.
type PolledStatus struct {
	Confirmations int64     `json:"confirmations"`
	Confidence    float64   `json:"confidence,omitempty"`
	DoubleSpend   bool      `json:"double_spend,omitempty"`
	Status        PollState `json:"status"`
}

// ClassifyPolled derives the presentation status from raw provider data.
// It is a pure function: zero confirmations classify as unconfirmed and
// carry the provider's confidence heuristic, one through five classify as
// confirming, and six or more classify as confirmed.
func ClassifyPolled(confirmations int64, confidence float64, doubleSpend bool) PolledStatus {
	switch {
	case confirmations <= 0:
		return PolledStatus{
			Confirmations: 0,
			Confidence:    confidence,
			DoubleSpend:   doubleSpend,
			Status:        PollStateUnconfirmed,
		}
	case confirmations < confirmationThreshold:
		return PolledStatus{
			Confirmations: confirmations,
			Status:        PollStateConfirming,
		}
	default:
		return PolledStatus{
			Confirmations: confirmations,
			Status:        PollStateConfirmed,
		}
	}
}
