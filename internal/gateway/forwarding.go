package gateway

import (
	"context"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/validator"
)

// ForwardingProvider covers provider-managed forwarding addresses.
type ForwardingProvider interface {
	// CreateForwardingAddress registers a forwarding address.
	CreateForwardingAddress(ctx context.Context, forward blockcypher.ForwardingAddress) (blockcypher.ForwardingAddress, error)

	// ListForwardingAddresses lists forwarding addresses for the token.
	ListForwardingAddresses(ctx context.Context) ([]blockcypher.ForwardingAddress, error)

	// DeleteForwardingAddress removes a forwarding address by ID.
	DeleteForwardingAddress(ctx context.Context, forwardID string) error
}

// ForwardingRequest describes a forwarding address to set up. The callback
// URL, when present, receives a notification for each forwarded payment.
type ForwardingRequest struct {
	Destination string `json:"destination" validate:"required"`
	CallbackURL string `json:"callback_url" validate:"omitempty,url"`
}

// CreateForwardingAddress validates and registers a forwarding address that
// relays incoming funds to the destination.
func (s *service) CreateForwardingAddress(ctx context.Context, network string, forward ForwardingRequest) (blockcypher.ForwardingAddress, error) {
	if err := validator.Validate(forward); err != nil {
		return blockcypher.ForwardingAddress{}, err
	}

	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.ForwardingAddress{}, err
	}

	return provider.CreateForwardingAddress(ctx, blockcypher.ForwardingAddress{
		Destination: forward.Destination,
		CallbackURL: forward.CallbackURL,
	})
}

// ListForwardingAddresses lists the forwarding addresses registered for the
// API token on the given network.
func (s *service) ListForwardingAddresses(ctx context.Context, network string) ([]blockcypher.ForwardingAddress, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return nil, err
	}

	return provider.ListForwardingAddresses(ctx)
}

// DeleteForwardingAddress removes a forwarding address by ID.
func (s *service) DeleteForwardingAddress(ctx context.Context, network, forwardID string) error {
	provider, err := s.providerFor(network)
	if err != nil {
		return err
	}

	return provider.DeleteForwardingAddress(ctx, forwardID)
}
