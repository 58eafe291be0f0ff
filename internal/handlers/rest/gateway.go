package rest

import (
	"net/http"
	"strconv"

	"github.com/satstack/paywatch/internal/gateway"

	"github.com/gin-gonic/gin"
)

func (s *server) listNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"networks": s.gateway.SupportedNetworks()})
}

// createWalletRequest is the body of POST /networks/{network}/wallets.
type createWalletRequest struct {
	Name      string   `json:"name"`
	Addresses []string `json:"addresses"`
}

func (s *server) createProviderWallet(c *gin.Context) {
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wallet, err := s.gateway.CreateWallet(c.Request.Context(), c.Param("network"), req.Name, req.Addresses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

func (s *server) listProviderWallets(c *gin.Context) {
	names, err := s.gateway.ListWallets(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallets": names})
}

func (s *server) getProviderWallet(c *gin.Context) {
	wallet, err := s.gateway.GetWallet(c.Request.Context(), c.Param("network"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (s *server) deleteProviderWallet(c *gin.Context) {
	if err := s.gateway.DeleteWallet(c.Request.Context(), c.Param("network"), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// walletAddressesRequest is the body for adding wallet addresses.
type walletAddressesRequest struct {
	Addresses []string `json:"addresses"`
}

func (s *server) addProviderWalletAddresses(c *gin.Context) {
	var req walletAddressesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wallet, err := s.gateway.AddWalletAddresses(c.Request.Context(), c.Param("network"), c.Param("name"), req.Addresses)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

func (s *server) generateProviderWalletAddress(c *gin.Context) {
	keychain, err := s.gateway.GenerateWalletAddress(c.Request.Context(), c.Param("network"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, keychain)
}

func (s *server) generateAddress(c *gin.Context) {
	keychain, err := s.gateway.GenerateAddress(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, keychain)
}

func (s *server) getAddressBalance(c *gin.Context) {
	balance, err := s.gateway.AddressBalance(c.Request.Context(), c.Param("network"), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (s *server) getAddressDetails(c *gin.Context) {
	details, err := s.gateway.AddressDetails(c.Request.Context(), c.Param("network"), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (s *server) sendPayment(c *gin.Context) {
	var payment gateway.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tx, err := s.gateway.SendPayment(c.Request.Context(), c.Param("network"), payment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (s *server) getProviderTransaction(c *gin.Context) {
	tx, err := s.gateway.TransactionDetails(c.Request.Context(), c.Param("network"), c.Param("txHash"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (s *server) getProviderTransactionStatus(c *gin.Context) {
	status, err := s.gateway.TransactionStatus(c.Request.Context(), c.Param("network"), c.Param("txHash"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (s *server) createForwardingAddress(c *gin.Context) {
	var req gateway.ForwardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	forward, err := s.gateway.CreateForwardingAddress(c.Request.Context(), c.Param("network"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, forward)
}

func (s *server) listForwardingAddresses(c *gin.Context) {
	forwards, err := s.gateway.ListForwardingAddresses(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forwards": forwards})
}

func (s *server) deleteForwardingAddress(c *gin.Context) {
	err := s.gateway.DeleteForwardingAddress(c.Request.Context(), c.Param("network"), c.Param("forwardID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *server) registerWebhook(c *gin.Context) {
	var req gateway.WebhookRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	hook, err := s.gateway.RegisterWebhook(c.Request.Context(), c.Param("network"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hook)
}

func (s *server) listWebhooks(c *gin.Context) {
	hooks, err := s.gateway.ListWebhooks(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hooks": hooks})
}

func (s *server) deleteWebhook(c *gin.Context) {
	if err := s.gateway.DeleteWebhook(c.Request.Context(), c.Param("network"), c.Param("hookID")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *server) getFeeEstimates(c *gin.Context) {
	fees, err := s.gateway.FeeEstimates(c.Request.Context(), c.Param("network"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fees)
}

// getBlockByHeight serves both block lookups and the chain tip: the literal
// path segment "latest" reports the current height instead of a block.
func (s *server) getBlockByHeight(c *gin.Context) {
	if c.Param("height") == "latest" {
		height, err := s.gateway.LatestBlockHeight(c.Request.Context(), c.Param("network"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"height": height})
		return
	}

	height, err := strconv.ParseInt(c.Param("height"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height must be an integer"})
		return
	}

	block, err := s.gateway.BlockByHeight(c.Request.Context(), c.Param("network"), height)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, block)
}
