package gateway

import (
	"context"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/validator"
)

// WebhookProvider covers provider event subscriptions.
type WebhookProvider interface {
	// CreateWebhook registers an event subscription.
	CreateWebhook(ctx context.Context, hook blockcypher.Webhook) (blockcypher.Webhook, error)

	// ListWebhooks lists the registered webhooks for the token.
	ListWebhooks(ctx context.Context) ([]blockcypher.Webhook, error)

	// DeleteWebhook removes a webhook subscription by ID.
	DeleteWebhook(ctx context.Context, hookID string) error
}

// WebhookRegistration describes an event subscription to register.
//
// Event must be one of the provider's published event types. Confidence only
// applies to tx-confidence subscriptions and must sit in (0, 1]; a zero
// value means "not set". Confirmations only applies to tx-confirmation
// subscriptions and is capped at 10 by the provider.
type WebhookRegistration struct {
	Event         string  `json:"event" validate:"required,oneof=unconfirmed-tx confirmed-tx tx-confirmation tx-confidence double-spend-tx new-block"`
	URL           string  `json:"url" validate:"required,url"`
	Address       string  `json:"address" validate:"omitempty"`
	Hash          string  `json:"hash" validate:"omitempty"`
	Confidence    float64 `json:"confidence" validate:"omitempty,gt=0,lte=1"`
	Confirmations int64   `json:"confirmations" validate:"omitempty,gte=0,lte=10"`
}

// RegisterWebhook validates the registration synchronously and then creates
// the subscription with the provider. Invalid parameters never reach the
// network.
func (s *service) RegisterWebhook(ctx context.Context, network string, registration WebhookRegistration) (blockcypher.Webhook, error) {
	if err := validator.Validate(registration); err != nil {
		return blockcypher.Webhook{}, err
	}

	provider, err := s.providerFor(network)
	if err != nil {
		return blockcypher.Webhook{}, err
	}

	hook, err := provider.CreateWebhook(ctx, blockcypher.Webhook{
		Event:         registration.Event,
		URL:           registration.URL,
		Address:       registration.Address,
		Hash:          registration.Hash,
		Confidence:    registration.Confidence,
		Confirmations: registration.Confirmations,
	})
	if err != nil {
		return blockcypher.Webhook{}, err
	}

	logger.Info(ctx, "webhook registered",
		"network", network,
		"hook_id", hook.ID,
		"event", hook.Event,
	)

	return hook, nil
}

// ListWebhooks lists the registered webhooks on the given network.
func (s *service) ListWebhooks(ctx context.Context, network string) ([]blockcypher.Webhook, error) {
	provider, err := s.providerFor(network)
	if err != nil {
		return nil, err
	}

	return provider.ListWebhooks(ctx)
}

// DeleteWebhook removes a webhook subscription by ID.
func (s *service) DeleteWebhook(ctx context.Context, network, hookID string) error {
	provider, err := s.providerFor(network)
	if err != nil {
		return err
	}

	return provider.DeleteWebhook(ctx, hookID)
}
