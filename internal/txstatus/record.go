package txstatus

import "time"

// Status is the lifecycle state of a tracked transaction.
type Status string

const (
	// StatusUnconfirmed marks a transaction seen in the mempool with fewer
	// than the required confirmations.
	StatusUnconfirmed Status = "unconfirmed"

	// StatusConfirmed marks a transaction that reached the confirmation
	// threshold. Terminal for the normal flow.
	StatusConfirmed Status = "confirmed"

	// StatusDoubleSpend marks a transaction flagged as a double-spend
	// attempt. Terminal and overrides every other state.
	StatusDoubleSpend Status = "double-spend"
)

// ackStatusUnknownTransaction is reported in the acknowledgment when a
// confirmation arrives for a hash that was never announced. No record is
// created for it; the confirmation/unconfirmed race is a tolerated state,
// not an error.
const ackStatusUnknownTransaction = "unknown_transaction"

// ackStatusFraudDetected is echoed back on double-spend acknowledgments.
const ackStatusFraudDetected = "fraud_detected"

// confirmationThreshold is the confirmation count at which a transaction is
// considered final. Exactly six: five confirmations still report
// unconfirmed.
const confirmationThreshold = 6

// satoshisPerCoin converts between the smallest unit and whole coins.
const satoshisPerCoin = 100_000_000

// Record is the last-known state of a transaction that paid a monitored
// address, keyed by its hash. Records are created by the first
// unconfirmed-tx event, mutated by later events, and never deleted.
type Record struct {
	// TxHash is the unique key.
	TxHash string `json:"tx_hash"`

	// Address is the monitored address that received funds.
	Address string `json:"address"`

	// ValueSatoshis is the summed value of all outputs paying Address.
	ValueSatoshis int64 `json:"value_satoshis"`

	// ValueBTC is ValueSatoshis expressed in whole coins.
	ValueBTC float64 `json:"value_btc"`

	// Confirmations is the last reported confirmation count.
	Confirmations int64 `json:"confirmations"`

	// Status is the derived lifecycle state.
	Status Status `json:"status"`

	// Timestamp is when the first event for this hash was seen. It is not
	// updated by subsequent events, including replayed unconfirmed-tx
	// deliveries.
	Timestamp time.Time `json:"timestamp"`
}
