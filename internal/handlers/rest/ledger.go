package rest

import (
	"net/http"

	"github.com/satstack/paywatch/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// createLedgerWalletRequest is the body of POST /api/v1/ledger/wallets.
type createLedgerWalletRequest struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	Currency   string `json:"currency"`
}

func (s *server) createLedgerWallet(c *gin.Context) {
	var req createLedgerWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wallet, err := s.ledger.CreateWallet(c.Request.Context(), authenticatedUserID(c), req.Address, req.PrivateKey, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

func (s *server) listLedgerWallets(c *gin.Context) {
	wallets, err := s.ledger.ListUserWallets(c.Request.Context(), authenticatedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

func (s *server) listLedgerWalletTransactions(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet id"})
		return
	}

	wallet, err := s.ledger.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		respondError(c, err)
		return
	}

	if wallet.UserID != authenticatedUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": ledger.ErrWalletNotFound.Error()})
		return
	}

	txs, err := s.ledger.ListWalletTransactions(c.Request.Context(), walletID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// createLedgerPaymentRequest is the body of POST /api/v1/ledger/payments.
type createLedgerPaymentRequest struct {
	Amount        int64                `json:"amount"`
	Currency      string               `json:"currency"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
}

func (s *server) createLedgerPayment(c *gin.Context) {
	var req createLedgerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payment, err := s.ledger.CreatePayment(c.Request.Context(), authenticatedUserID(c), req.Amount, req.Currency, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (s *server) listLedgerPayments(c *gin.Context) {
	payments, err := s.ledger.ListUserPayments(c.Request.Context(), authenticatedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (s *server) getLedgerPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	payment, err := s.ledger.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	if payment.UserID != authenticatedUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": ledger.ErrPaymentNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// updatePaymentStatusRequest is the body of the payment status PATCH.
type updatePaymentStatusRequest struct {
	Status        ledger.PaymentStatus `json:"status"`
	TransactionID *uuid.UUID           `json:"transaction_id,omitempty"`
}

func (s *server) updateLedgerPaymentStatus(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	current, err := s.ledger.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	if current.UserID != authenticatedUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": ledger.ErrPaymentNotFound.Error()})
		return
	}

	payment, err := s.ledger.UpdatePaymentStatus(c.Request.Context(), paymentID, req.Status, req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
