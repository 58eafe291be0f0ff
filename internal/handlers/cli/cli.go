// Package cli is the command-line entry point of the paywatch process.
package cli

import (
	"context"
	"os"

	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/handlers/rest"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the paywatch CLI application.
//
// It registers all available commands, including:
//
//   - `serve`: Starts the HTTP API and webhook receiver.
//   - `register-webhook`: Registers a provider event subscription.
//   - `forward`: Sets up a provider-managed forwarding address.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - restCfg: Settings for the HTTP layer used by the serve command.
//   - defaultNetwork: Network used when a command is run without --network.
//   - ts: The txstatus service implementation backing the webhook routes.
//   - gw: The gateway service implementation used by provider commands.
//   - lg: The ledger service implementation backing the ledger routes.
func Run(ctx context.Context, restCfg rest.Config, defaultNetwork string, ts txstatus.Service, gw gateway.Service, lg ledger.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "paywatch",
		Description:           "Command-line interface for running and operating the paywatch payment gateway.",
		Usage:                 "paywatch [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(restCfg, ts, gw, lg),
			registerWebhookCommand(gw, defaultNetwork),
			createForwardingCommand(gw, defaultNetwork),
		},
	}

	return app.Run(ctx, os.Args)
}
