package blockcypher

import (
	"context"
)

// CreateForwardingAddress asks the provider for a fresh address that
// automatically relays incoming funds to the destination. The returned
// InputAddress is the one to hand out to payers.
func (c *Client) CreateForwardingAddress(ctx context.Context, forward ForwardingAddress) (ForwardingAddress, error) {
	var created ForwardingAddress
	if err := c.post(ctx, "payments", forward, &created); err != nil {
		return ForwardingAddress{}, err
	}

	return created, nil
}

// ListForwardingAddresses returns every forwarding address registered for
// the API token on this network.
func (c *Client) ListForwardingAddresses(ctx context.Context) ([]ForwardingAddress, error) {
	var forwards []ForwardingAddress
	if err := c.get(ctx, "payments", nil, &forwards); err != nil {
		return nil, err
	}

	return forwards, nil
}

// DeleteForwardingAddress removes a forwarding address by its ID.
func (c *Client) DeleteForwardingAddress(ctx context.Context, forwardID string) error {
	return c.delete(ctx, "payments/"+forwardID, nil)
}

// CreateWebhook registers an event subscription with the provider. Input
// validation happens in the gateway before this call is reached.
func (c *Client) CreateWebhook(ctx context.Context, hook Webhook) (Webhook, error) {
	var created Webhook
	if err := c.post(ctx, "hooks", hook, &created); err != nil {
		return Webhook{}, err
	}

	return created, nil
}

// ListWebhooks returns every webhook registered for the API token on this
// network.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var hooks []Webhook
	if err := c.get(ctx, "hooks", nil, &hooks); err != nil {
		return nil, err
	}

	return hooks, nil
}

// GetWebhook fetches a webhook by its ID.
func (c *Client) GetWebhook(ctx context.Context, hookID string) (Webhook, error) {
	var hook Webhook
	if err := c.get(ctx, "hooks/"+hookID, nil, &hook); err != nil {
		return Webhook{}, err
	}

	return hook, nil
}

// DeleteWebhook removes a webhook subscription by its ID.
func (c *Client) DeleteWebhook(ctx context.Context, hookID string) error {
	return c.delete(ctx, "hooks/"+hookID, nil)
}
