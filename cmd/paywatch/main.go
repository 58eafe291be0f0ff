package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/satstack/paywatch/internal/config"
	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/handlers/cli"
	"github.com/satstack/paywatch/internal/handlers/rest"
	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/infra/storage/memory"
	"github.com/satstack/paywatch/internal/infra/storage/postgres"
	"github.com/satstack/paywatch/internal/infra/storage/redis"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/telemetry"
	transporthttp "github.com/satstack/paywatch/internal/pkg/transport/http"
	"github.com/satstack/paywatch/internal/txstatus"
)

const serviceName = "paywatch"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			panic(err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	statusStorage, err := newStatusStorage(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "initializing transaction status storage", "error", err)
	}

	db, err := postgres.NewClient(cfg.PostgresDSN)
	if err != nil {
		logger.Fatal(ctx, "connecting to postgres", "error", err)
	}

	ledgerStore, err := postgres.NewLedgerStore(db)
	if err != nil {
		logger.Fatal(ctx, "migrating ledger schema", "error", err)
	}

	providerFactory := func(network string) (gateway.Provider, error) {
		client, err := blockcypher.New(network, cfg.BlockCypherToken,
			blockcypher.WithHTTPClient(transporthttp.NewClient(
				transporthttp.WithTimeout(cfg.ProviderTimeout),
				transporthttp.WithRetryMax(cfg.ProviderRetryMax),
			)),
		)
		if err != nil {
			return nil, err
		}

		return client, nil
	}

	var (
		txStatusService = txstatus.New(statusStorage)
		gatewayService  = gateway.New(providerFactory)
		ledgerService   = ledger.New(ledgerStore)
	)

	restCfg := rest.Config{
		Addr:        cfg.Addr(),
		Environment: cfg.Environment,
		JWTSecret:   cfg.JWTSecret,
	}

	if err := cli.Run(ctx, restCfg, cfg.DefaultNetwork, txStatusService, gatewayService, ledgerService); err != nil {
		logger.Fatal(ctx, "paywatch exited with error", "error", err)
	}
}

// newStatusStorage picks the transaction status backend: Redis when an
// address is configured, the in-process store otherwise.
func newStatusStorage(ctx context.Context, cfg config.Config) (txstatus.StatusStorage, error) {
	if cfg.RedisAddr == "" {
		return memory.NewStatusStore(), nil
	}

	return redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
}
