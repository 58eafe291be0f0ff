package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/gin-gonic/gin"
)

// handlePaymentWebhook is the provider callback entry point. Anything that
// decodes as JSON is acknowledged with 200: the reconciler absorbs internal
// failures into the acknowledgment body so the provider does not retry
// deliveries we have already seen. Only an undecodable body gets a 400.
func (s *server) handlePaymentWebhook(c *gin.Context) {
	var event txstatus.PaymentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ack := s.txStatus.HandlePaymentEvent(c.Request.Context(), event)

	c.JSON(http.StatusOK, ack)
}

func (s *server) getTrackedTransaction(c *gin.Context) {
	record, err := s.txStatus.GetTransactionStatus(c.Request.Context(), c.Param("txHash"))
	if err != nil {
		if errors.Is(err, txstatus.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}

		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *server) listTrackedTransactions(c *gin.Context) {
	records, err := s.txStatus.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": records,
		"count":        len(records),
	})
}

// simulateWebhook synthesizes a provider payload and runs it through the
// reconciler. It only exists in development deployments; elsewhere the
// route pretends not to exist.
func (s *server) simulateWebhook(c *gin.Context) {
	if s.cfg.Environment != environmentDevelopment {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	eventType := txstatus.Event(c.DefaultQuery("event_type", string(txstatus.EventUnconfirmedTx)))
	address := c.DefaultQuery("address", "simulated_address")

	confirmations, err := strconv.ParseInt(c.DefaultQuery("confirmations", "1"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmations must be an integer"})
		return
	}

	result, err := s.txStatus.Simulate(c.Request.Context(), eventType, address, confirmations)
	if err != nil {
		if errors.Is(err, txstatus.ErrUnsupportedSimulationEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
