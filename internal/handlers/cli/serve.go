package cli

import (
	"context"

	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/handlers/rest"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/urfave/cli/v3"
)

// serveCommand returns the CLI command that runs the HTTP API and webhook
// receiver until the process is signaled to stop.
//
// Usage example:
//
//	paywatch serve --addr :8080
func serveCommand(restCfg rest.Config, ts txstatus.Service, gw gateway.Service, lg ledger.Service) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Start the HTTP API, including the provider webhook receiver.",
		Usage:       "Runs the server until interrupted.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address override (e.g. :8080)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := restCfg
			if addr := c.String("addr"); addr != "" {
				cfg.Addr = addr
			}

			router := rest.NewRouter(cfg, ts, gw, lg)

			return rest.Serve(ctx, cfg, router)
		},
	}
}
