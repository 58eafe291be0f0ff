package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/validator"
	"github.com/satstack/paywatch/internal/txstatus"
)

var (
	// ErrInsufficientFunds is returned by SendPayment when the source
	// address balance cannot cover the requested amount. The balance check
	// happens before any transaction is built.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConfirmationPending is returned by WaitForConfirmation when the
	// transaction did not reach the required confirmation count within the
	// configured polling attempts.
	ErrConfirmationPending = errors.New("transaction confirmation still pending")
)

// TransactionProvider covers transaction building, delegated signing,
// broadcasting, and lookups.
type TransactionProvider interface {
	// NewTransaction builds a transaction skeleton.
	NewTransaction(ctx context.Context, req blockcypher.TxSkeletonRequest) (blockcypher.TxSkeleton, error)

	// SignTransaction delegates signing of a skeleton to the provider.
	SignTransaction(ctx context.Context, skeleton blockcypher.TxSkeleton, privateKeys []string) (blockcypher.TxSkeleton, error)

	// SendTransaction broadcasts a signed skeleton.
	SendTransaction(ctx context.Context, skeleton blockcypher.TxSkeleton) (blockcypher.TxSkeleton, error)

	// GetTransaction fetches a transaction by hash.
	GetTransaction(ctx context.Context, txHash string, includeConfidence bool) (blockcypher.Tx, error)

	// TransactionConfidence fetches the confidence heuristic for an
	// unconfirmed transaction.
	TransactionConfidence(ctx context.Context, txHash string) (blockcypher.TxConfidence, error)
}

// Payment describes an outgoing payment. Private keys are passed through to
// the provider's delegated signing endpoint and never stored.
type Payment struct {
	From           string   `json:"from" validate:"required"`
	To             string   `json:"to" validate:"required"`
	AmountSatoshis int64    `json:"amount_satoshis" validate:"required,gt=0"`
	PrivateKeys    []string `json:"private_keys" validate:"required,min=1,dive,required"`
	Preference     string   `json:"preference" validate:"omitempty,oneof=high medium low"`
}

// SendPayment validates the payment, checks the source balance, then builds,
// signs, and broadcasts the transaction through the provider.
func (s *service) SendPayment(ctx context.Context, network string, payment Payment) (blockcypher.Tx, error) {
	if err := validator.Validate(payment); err != nil {
		return blockcypher.Tx{}, err
	}

	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Tx{}, err
	}

	balance, err := provider.AddressBalance(ctx, payment.From)
	if err != nil {
		return blockcypher.Tx{}, fmt.Errorf("checking source balance: %w", err)
	}

	if balance.Balance < payment.AmountSatoshis {
		return blockcypher.Tx{}, fmt.Errorf("%w: balance %d, requested %d",
			ErrInsufficientFunds, balance.Balance, payment.AmountSatoshis)
	}

	skeleton, err := provider.NewTransaction(ctx, blockcypher.TxSkeletonRequest{
		Inputs:     []blockcypher.TxInput{{Addresses: []string{payment.From}}},
		Outputs:    []blockcypher.TxOutput{{Addresses: []string{payment.To}, Value: payment.AmountSatoshis}},
		Preference: payment.Preference,
	})
	if err != nil {
		return blockcypher.Tx{}, fmt.Errorf("building transaction: %w", err)
	}

	if len(skeleton.Errors) > 0 {
		return blockcypher.Tx{}, fmt.Errorf("building transaction: provider reported: %s", skeleton.Errors[0].Error)
	}

	signed, err := provider.SignTransaction(ctx, skeleton, payment.PrivateKeys)
	if err != nil {
		return blockcypher.Tx{}, fmt.Errorf("signing transaction: %w", err)
	}

	sent, err := provider.SendTransaction(ctx, signed)
	if err != nil {
		return blockcypher.Tx{}, fmt.Errorf("broadcasting transaction: %w", err)
	}

	logger.Info(ctx, "payment broadcast",
		"network", network,
		"tx_hash", sent.Tx.Hash,
		"from", payment.From,
		"to", payment.To,
		"amount_satoshis", payment.AmountSatoshis,
	)

	return sent.Tx, nil
}

// TransactionDetails fetches a transaction with confidence data included.
func (s *service) TransactionDetails(ctx context.Context, network, txHash string) (blockcypher.Tx, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Tx{}, err
	}

	return provider.GetTransaction(ctx, txHash, true)
}

// TransactionStatus classifies a transaction from fresh provider data. The
// confidence endpoint is only consulted while the transaction is still
// unconfirmed; confirmed transactions carry no confidence heuristic.
func (s *service) TransactionStatus(ctx context.Context, network, txHash string) (txstatus.PolledStatus, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return txstatus.PolledStatus{}, err
	}

	tx, err := provider.GetTransaction(ctx, txHash, false)
	if err != nil {
		return txstatus.PolledStatus{}, err
	}

	if tx.Confirmations > 0 {
		return txstatus.ClassifyPolled(tx.Confirmations, 0, false), nil
	}

	confidence, err := provider.TransactionConfidence(ctx, txHash)
	if err != nil {
		// The transaction exists but its confidence lookup failed; report
		// it as unconfirmed without the heuristic rather than erroring.
		logger.Warn(ctx, "confidence lookup failed",
			"network", network,
			"tx_hash", txHash,
			"error", err,
		)

		return txstatus.ClassifyPolled(0, 0, tx.DoubleSpend), nil
	}

	return txstatus.ClassifyPolled(0, confidence.Confidence, confidence.DoubleSpend), nil
}

// WaitForConfirmation polls the provider until the transaction reaches the
// required confirmation count. Polling cadence follows the configured
// retrier; the last observed transaction is returned on success.
func (s *service) WaitForConfirmation(ctx context.Context, network, txHash string, required int64) (blockcypher.Tx, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Tx{}, err
	}

	var tx blockcypher.Tx
	err = s.retrier.Execute(ctx, func() error {
		current, err := provider.GetTransaction(ctx, txHash, false)
		if err != nil {
			return err
		}

		tx = current
		if current.Confirmations < required {
			return fmt.Errorf("%w: %d of %d confirmations", ErrConfirmationPending, current.Confirmations, required)
		}

		return nil
	})
	if err != nil {
		return blockcypher.Tx{}, err
	}

	return tx, nil
}
