// Package gateway is the domain facade over the external payment provider.
// It translates wallet, transaction, forwarding, and webhook-registration
// requests into provider calls, validating input synchronously before any
// network traffic and surfacing provider failures as typed errors.
package gateway

import (
	"context"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/resilience/retry"
	"github.com/satstack/paywatch/internal/txstatus"
)

// Provider is the full set of provider operations the gateway depends on.
// It is satisfied by *blockcypher.Client.
type Provider interface {
	ChainProvider
	WalletProvider
	TransactionProvider
	ForwardingProvider
	WebhookProvider
}

// ProviderFactory returns a Provider bound to the given network symbol. It
// must fail for unsupported networks without performing network I/O.
type ProviderFactory func(network string) (Provider, error)

// Service exposes the provider-backed payment operations to the HTTP and
// CLI handlers.
type Service interface {
	// SupportedNetworks lists the network symbols requests may target.
	SupportedNetworks() []string

	// CreateWallet registers a named wallet from existing addresses.
	CreateWallet(ctx context.Context, network, name string, addresses []string) (blockcypher.Wallet, error)

	// GetWallet fetches a wallet by name.
	GetWallet(ctx context.Context, network, name string) (blockcypher.Wallet, error)

	// ListWallets returns the wallet names owned by the API token.
	ListWallets(ctx context.Context, network string) ([]string, error)

	// AddWalletAddresses appends addresses to an existing wallet.
	AddWalletAddresses(ctx context.Context, network, name string, addresses []string) (blockcypher.Wallet, error)

	// RemoveWalletAddresses removes addresses from an existing wallet.
	RemoveWalletAddresses(ctx context.Context, network, name string, addresses []string) error

	// GenerateWalletAddress generates a fresh address inside a wallet.
	GenerateWalletAddress(ctx context.Context, network, name string) (blockcypher.AddressKeychain, error)

	// DeleteWallet removes a wallet registration.
	DeleteWallet(ctx context.Context, network, name string) error

	// AddressBalance returns the compact balance view of an address.
	AddressBalance(ctx context.Context, network, address string) (blockcypher.AddressBalance, error)

	// AddressDetails returns the full view of an address.
	AddressDetails(ctx context.Context, network, address string) (blockcypher.AddressDetails, error)

	// GenerateAddress asks the provider for a fresh keypair.
	GenerateAddress(ctx context.Context, network string) (blockcypher.AddressKeychain, error)

	// SendPayment builds, delegates signing of, and broadcasts a payment.
	SendPayment(ctx context.Context, network string, payment Payment) (blockcypher.Tx, error)

	// TransactionDetails fetches a transaction with confidence data.
	TransactionDetails(ctx context.Context, network, txHash string) (blockcypher.Tx, error)

	// TransactionStatus classifies a transaction's presentation status
	// from fresh provider data without persisting anything.
	TransactionStatus(ctx context.Context, network, txHash string) (txstatus.PolledStatus, error)

	// WaitForConfirmation polls until the transaction reaches the
	// required confirmation count or the context/attempts run out.
	WaitForConfirmation(ctx context.Context, network, txHash string, required int64) (blockcypher.Tx, error)

	// CreateForwardingAddress sets up a provider-managed forwarding
	// address relaying funds to the destination.
	CreateForwardingAddress(ctx context.Context, network string, forward ForwardingRequest) (blockcypher.ForwardingAddress, error)

	// ListForwardingAddresses lists registered forwarding addresses.
	ListForwardingAddresses(ctx context.Context, network string) ([]blockcypher.ForwardingAddress, error)

	// DeleteForwardingAddress removes a forwarding address by ID.
	DeleteForwardingAddress(ctx context.Context, network, forwardID string) error

	// RegisterWebhook validates and registers an event subscription.
	// Invalid parameters are rejected before any network call.
	RegisterWebhook(ctx context.Context, network string, registration WebhookRegistration) (blockcypher.Webhook, error)

	// ListWebhooks lists registered webhooks.
	ListWebhooks(ctx context.Context, network string) ([]blockcypher.Webhook, error)

	// DeleteWebhook removes a webhook subscription by ID.
	DeleteWebhook(ctx context.Context, network, hookID string) error

	// LatestBlockHeight returns the current chain height.
	LatestBlockHeight(ctx context.Context, network string) (int64, error)

	// BlockByHeight fetches a block by height.
	BlockByHeight(ctx context.Context, network string, height int64) (blockcypher.Block, error)

	// FeeEstimates returns the provider's fee levels.
	FeeEstimates(ctx context.Context, network string) (blockcypher.FeeEstimates, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	providerFor ProviderFactory
	retrier     retry.Retry
}

var _ Service = (*service)(nil)

// Option configures the gateway service.
type Option func(*service)

// WithRetrier overrides the retry mechanism used for confirmation polling.
func WithRetrier(r retry.Retry) Option {
	return func(s *service) {
		s.retrier = r
	}
}

// New creates a gateway service. Providers are resolved per network
// through the given factory so one deployment can serve several chains
// with a single API token.
func New(providerFor ProviderFactory, opts ...Option) *service {
	s := &service{
		providerFor: providerFor,
		retrier:     retry.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SupportedNetworks lists the network symbols requests may target.
func (s *service) SupportedNetworks() []string {
	return blockcypher.SupportedNetworks()
}
