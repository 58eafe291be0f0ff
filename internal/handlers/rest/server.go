// Package rest exposes the HTTP surface of the gateway: the webhook
// endpoints the provider calls back into, the provider-facing gateway
// routes, and the ledger routes. Webhook routes are unauthenticated by
// design; everything else sits behind JWT bearer auth.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/gin-gonic/gin"
)

// environmentDevelopment enables the simulation endpoint.
const environmentDevelopment = "development"

// Config carries the settings of the HTTP layer.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Environment gates development-only endpoints.
	Environment string

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string
}

// server groups the services behind the route handlers.
type server struct {
	cfg      Config
	txStatus txstatus.Service
	gateway  gateway.Service
	ledger   ledger.Service
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg Config, txStatus txstatus.Service, gw gateway.Service, lg ledger.Service) *gin.Engine {
	if cfg.Environment != environmentDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &server{
		cfg:      cfg,
		txStatus: txStatus,
		gateway:  gw,
		ledger:   lg,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/payment", s.handlePaymentWebhook)
		webhooks.GET("/transactions", s.listTrackedTransactions)
		webhooks.GET("/transactions/:txHash", s.getTrackedTransaction)
		webhooks.POST("/simulate", s.simulateWebhook)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.registerUser)
		auth.POST("/login", s.loginUser)
	}

	api := router.Group("/api/v1", authMiddleware(cfg.JWTSecret))
	{
		api.GET("/networks", s.listNetworks)

		network := api.Group("/networks/:network")
		{
			network.POST("/wallets", s.createProviderWallet)
			network.GET("/wallets", s.listProviderWallets)
			network.GET("/wallets/:name", s.getProviderWallet)
			network.DELETE("/wallets/:name", s.deleteProviderWallet)
			network.POST("/wallets/:name/addresses", s.addProviderWalletAddresses)
			network.POST("/wallets/:name/addresses/generate", s.generateProviderWalletAddress)

			network.POST("/addresses", s.generateAddress)
			network.GET("/addresses/:address", s.getAddressDetails)
			network.GET("/addresses/:address/balance", s.getAddressBalance)

			network.POST("/payments", s.sendPayment)
			network.GET("/transactions/:txHash", s.getProviderTransaction)
			network.GET("/transactions/:txHash/status", s.getProviderTransactionStatus)

			network.POST("/forwards", s.createForwardingAddress)
			network.GET("/forwards", s.listForwardingAddresses)
			network.DELETE("/forwards/:forwardID", s.deleteForwardingAddress)

			network.POST("/hooks", s.registerWebhook)
			network.GET("/hooks", s.listWebhooks)
			network.DELETE("/hooks/:hookID", s.deleteWebhook)

			network.GET("/fees", s.getFeeEstimates)
			network.GET("/blocks/:height", s.getBlockByHeight)
		}

		api.POST("/ledger/wallets", s.createLedgerWallet)
		api.GET("/ledger/wallets", s.listLedgerWallets)
		api.GET("/ledger/wallets/:walletID/transactions", s.listLedgerWalletTransactions)
		api.POST("/ledger/payments", s.createLedgerPayment)
		api.GET("/ledger/payments", s.listLedgerPayments)
		api.GET("/ledger/payments/:paymentID", s.getLedgerPayment)
		api.PATCH("/ledger/payments/:paymentID/status", s.updateLedgerPaymentStatus)
	}

	return router
}

// Serve runs the router on cfg.Addr until the context is canceled, then
// drains in-flight requests before returning.
func Serve(ctx context.Context, cfg Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info(ctx, "http server listening", "addr", cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// requestLogger emits one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
