package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/satstack/paywatch/internal/gateway"

	"github.com/urfave/cli/v3"
)

// registerWebhookCommand returns a CLI command that registers a provider
// event subscription pointing at this deployment's webhook receiver.
//
// Usage example:
//
//	paywatch register-webhook --event tx-confirmation --url https://pay.example.com/webhooks/payment --address 1BoatSLR... --confirmations 6
func registerWebhookCommand(gw gateway.Service, defaultNetwork string) *cli.Command {
	return &cli.Command{
		Name:        "register-webhook",
		Description: "Register a provider event subscription for an address or transaction.",
		Usage:       "Registers a webhook. Must provide event and url.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "Network symbol (e.g. btc, btc-testnet)",
				Value: defaultNetwork,
			},
			&cli.StringFlag{
				Name:     "event",
				Usage:    "Event type (e.g. unconfirmed-tx, tx-confirmation, double-spend-tx)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "url",
				Usage:    "Callback URL that will receive the events",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to scope the subscription to",
			},
			&cli.StringFlag{
				Name:  "hash",
				Usage: "Transaction hash to scope the subscription to",
			},
			&cli.IntFlag{
				Name:  "confirmations",
				Usage: "Confirmation count for tx-confirmation subscriptions (max 10)",
			},
			&cli.FloatFlag{
				Name:  "confidence",
				Usage: "Confidence threshold for tx-confidence subscriptions, in (0, 1]",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			hook, err := gw.RegisterWebhook(ctx, c.String("network"), gateway.WebhookRegistration{
				Event:         c.String("event"),
				URL:           c.String("url"),
				Address:       c.String("address"),
				Hash:          c.String("hash"),
				Confirmations: int64(c.Int("confirmations")),
				Confidence:    c.Float("confidence"),
			})
			if err != nil {
				return err
			}

			return printJSON(hook)
		},
	}
}

// createForwardingCommand returns a CLI command that sets up a
// provider-managed forwarding address.
//
// Usage example:
//
//	paywatch forward --destination 1BoatSLR... --callback-url https://pay.example.com/webhooks/forwarded
func createForwardingCommand(gw gateway.Service, defaultNetwork string) *cli.Command {
	return &cli.Command{
		Name:        "forward",
		Description: "Create a forwarding address relaying incoming funds to a destination.",
		Usage:       "Creates a forwarding address. Must provide destination.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "Network symbol (e.g. btc, btc-testnet)",
				Value: defaultNetwork,
			},
			&cli.StringFlag{
				Name:     "destination",
				Usage:    "Address that receives the forwarded funds",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "callback-url",
				Usage: "Optional URL notified on every forwarded payment",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			forward, err := gw.CreateForwardingAddress(ctx, c.String("network"), gateway.ForwardingRequest{
				Destination: c.String("destination"),
				CallbackURL: c.String("callback-url"),
			})
			if err != nil {
				return err
			}

			return printJSON(forward)
		},
	}
}

// printJSON writes the value to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
