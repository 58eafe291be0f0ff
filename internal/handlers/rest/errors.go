package rest

import (
	"errors"
	"net/http"

	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// respondError maps domain and provider errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validator.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, blockcypher.ErrUnsupportedNetwork):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, blockcypher.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, blockcypher.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, blockcypher.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, blockcypher.ErrProviderUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUserNotFound),
		errors.Is(err, ledger.ErrWalletNotFound),
		errors.Is(err, ledger.ErrPaymentNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(c.Request.Context(), "unhandled request error",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
