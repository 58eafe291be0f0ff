package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/resilience/retry"
	"github.com/satstack/paywatch/internal/pkg/validator"
	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("error")
}

// providerMock mocks the provider methods exercised by the tests. Calls to
// any other Provider method panic through the embedded nil interface.
type providerMock struct {
	Provider
	mock.Mock
}

func (m *providerMock) AddressBalance(ctx context.Context, address string) (blockcypher.AddressBalance, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(blockcypher.AddressBalance), args.Error(1)
}

func (m *providerMock) CreateWallet(ctx context.Context, name string, addresses []string) (blockcypher.Wallet, error) {
	args := m.Called(ctx, name, addresses)
	return args.Get(0).(blockcypher.Wallet), args.Error(1)
}

func (m *providerMock) NewTransaction(ctx context.Context, req blockcypher.TxSkeletonRequest) (blockcypher.TxSkeleton, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(blockcypher.TxSkeleton), args.Error(1)
}

func (m *providerMock) SignTransaction(ctx context.Context, skeleton blockcypher.TxSkeleton, privateKeys []string) (blockcypher.TxSkeleton, error) {
	args := m.Called(ctx, skeleton, privateKeys)
	return args.Get(0).(blockcypher.TxSkeleton), args.Error(1)
}

func (m *providerMock) SendTransaction(ctx context.Context, skeleton blockcypher.TxSkeleton) (blockcypher.TxSkeleton, error) {
	args := m.Called(ctx, skeleton)
	return args.Get(0).(blockcypher.TxSkeleton), args.Error(1)
}

func (m *providerMock) GetTransaction(ctx context.Context, txHash string, includeConfidence bool) (blockcypher.Tx, error) {
	args := m.Called(ctx, txHash, includeConfidence)
	return args.Get(0).(blockcypher.Tx), args.Error(1)
}

func (m *providerMock) TransactionConfidence(ctx context.Context, txHash string) (blockcypher.TxConfidence, error) {
	args := m.Called(ctx, txHash)
	return args.Get(0).(blockcypher.TxConfidence), args.Error(1)
}

func (m *providerMock) CreateWebhook(ctx context.Context, hook blockcypher.Webhook) (blockcypher.Webhook, error) {
	args := m.Called(ctx, hook)
	return args.Get(0).(blockcypher.Webhook), args.Error(1)
}

func (m *providerMock) CreateForwardingAddress(ctx context.Context, forward blockcypher.ForwardingAddress) (blockcypher.ForwardingAddress, error) {
	args := m.Called(ctx, forward)
	return args.Get(0).(blockcypher.ForwardingAddress), args.Error(1)
}

// staticFactory resolves every network to the same provider.
func staticFactory(p Provider) ProviderFactory {
	return func(string) (Provider, error) {
		return p, nil
	}
}

// fastRetrier polls without meaningful delay so tests stay quick.
func fastRetrier(attempts uint) retry.Retry {
	return retry.New(
		retry.WithAttempts(attempts),
		retry.WithDelay(time.Millisecond),
		retry.WithMaxDelay(time.Millisecond),
	)
}

func TestCreateWallet(t *testing.T) {
	t.Run("rejects names over the provider cap before any network call", func(t *testing.T) {
		provider := new(providerMock)
		svc := New(staticFactory(provider))

		_, err := svc.CreateWallet(t.Context(), "btc", "this-wallet-name-is-way-too-long", []string{"addr1"})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		provider.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects empty address lists", func(t *testing.T) {
		provider := new(providerMock)
		svc := New(staticFactory(provider))

		_, err := svc.CreateWallet(t.Context(), "btc", "savings", nil)

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("derives a name from the first address when none is given", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("CreateWallet", mock.Anything, "wallet-1BoatSLRHt", []string{"1BoatSLRHtKNngkdXEeobR76b53LETtpyT"}).
			Return(blockcypher.Wallet{Name: "wallet-1BoatSLRHt"}, nil)

		svc := New(staticFactory(provider))

		wallet, err := svc.CreateWallet(t.Context(), "btc", "", []string{"1BoatSLRHtKNngkdXEeobR76b53LETtpyT"})

		require.NoError(t, err)
		assert.Equal(t, "wallet-1BoatSLRHt", wallet.Name)
		provider.AssertExpectations(t)
	})
}

func TestSendPayment(t *testing.T) {
	validPayment := Payment{
		From:           "addr-from",
		To:             "addr-to",
		AmountSatoshis: 100_000,
		PrivateKeys:    []string{"key1"},
	}

	t.Run("rejects invalid payments before any network call", func(t *testing.T) {
		provider := new(providerMock)
		svc := New(staticFactory(provider))

		_, err := svc.SendPayment(t.Context(), "btc", Payment{From: "addr-from", To: "addr-to"})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		provider.AssertNotCalled(t, "AddressBalance", mock.Anything, mock.Anything)
	})

	t.Run("fails fast on insufficient funds", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("AddressBalance", mock.Anything, "addr-from").
			Return(blockcypher.AddressBalance{Balance: 50_000}, nil)

		svc := New(staticFactory(provider))

		_, err := svc.SendPayment(t.Context(), "btc", validPayment)

		assert.ErrorIs(t, err, ErrInsufficientFunds)
		provider.AssertNotCalled(t, "NewTransaction", mock.Anything, mock.Anything)
	})

	t.Run("builds, signs, and broadcasts", func(t *testing.T) {
		skeleton := blockcypher.TxSkeleton{ToSign: []string{"deadbeef"}}
		signed := blockcypher.TxSkeleton{ToSign: []string{"deadbeef"}, Signatures: []string{"cafe"}}
		sent := blockcypher.TxSkeleton{Tx: blockcypher.Tx{Hash: "txhash1"}}

		provider := new(providerMock)
		provider.
			On("AddressBalance", mock.Anything, "addr-from").
			Return(blockcypher.AddressBalance{Balance: 500_000}, nil)
		provider.
			On("NewTransaction", mock.Anything, mock.MatchedBy(func(req blockcypher.TxSkeletonRequest) bool {
				return len(req.Outputs) == 1 && req.Outputs[0].Value == 100_000
			})).
			Return(skeleton, nil)
		provider.
			On("SignTransaction", mock.Anything, skeleton, []string{"key1"}).
			Return(signed, nil)
		provider.
			On("SendTransaction", mock.Anything, signed).
			Return(sent, nil)

		svc := New(staticFactory(provider))

		tx, err := svc.SendPayment(t.Context(), "btc", validPayment)

		require.NoError(t, err)
		assert.Equal(t, "txhash1", tx.Hash)
		provider.AssertExpectations(t)
	})
}

func TestTransactionStatus(t *testing.T) {
	t.Run("confirmed transactions skip the confidence lookup", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("GetTransaction", mock.Anything, "txhash1", false).
			Return(blockcypher.Tx{Hash: "txhash1", Confirmations: 8}, nil)

		svc := New(staticFactory(provider))

		status, err := svc.TransactionStatus(t.Context(), "btc", "txhash1")

		require.NoError(t, err)
		assert.Equal(t, txstatus.PollStateConfirmed, status.Status)
		provider.AssertNotCalled(t, "TransactionConfidence", mock.Anything, mock.Anything)
	})

	t.Run("unconfirmed transactions carry the confidence heuristic", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("GetTransaction", mock.Anything, "txhash2", false).
			Return(blockcypher.Tx{Hash: "txhash2", Confirmations: 0}, nil)
		provider.
			On("TransactionConfidence", mock.Anything, "txhash2").
			Return(blockcypher.TxConfidence{Confidence: 0.97}, nil)

		svc := New(staticFactory(provider))

		status, err := svc.TransactionStatus(t.Context(), "btc", "txhash2")

		require.NoError(t, err)
		assert.Equal(t, txstatus.PollStateUnconfirmed, status.Status)
		assert.InDelta(t, 0.97, status.Confidence, 0.001)
	})
}

func TestWaitForConfirmation(t *testing.T) {
	t.Run("returns once the required count is reached", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("GetTransaction", mock.Anything, "txhash1", false).
			Return(blockcypher.Tx{Hash: "txhash1", Confirmations: 2}, nil).Once()
		provider.
			On("GetTransaction", mock.Anything, "txhash1", false).
			Return(blockcypher.Tx{Hash: "txhash1", Confirmations: 6}, nil).Once()

		svc := New(staticFactory(provider), WithRetrier(fastRetrier(5)))

		tx, err := svc.WaitForConfirmation(t.Context(), "btc", "txhash1", 6)

		require.NoError(t, err)
		assert.Equal(t, int64(6), tx.Confirmations)
	})

	t.Run("reports pending when polling attempts run out", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("GetTransaction", mock.Anything, "txhash1", false).
			Return(blockcypher.Tx{Hash: "txhash1", Confirmations: 1}, nil)

		svc := New(staticFactory(provider), WithRetrier(fastRetrier(2)))

		_, err := svc.WaitForConfirmation(t.Context(), "btc", "txhash1", 6)

		assert.ErrorIs(t, err, ErrConfirmationPending)
	})
}

func TestRegisterWebhook(t *testing.T) {
	t.Run("rejects unknown event types before any network call", func(t *testing.T) {
		provider := new(providerMock)
		svc := New(staticFactory(provider))

		_, err := svc.RegisterWebhook(t.Context(), "btc", WebhookRegistration{
			Event: "every-single-tx",
			URL:   "https://example.com/hook",
		})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		provider.AssertNotCalled(t, "CreateWebhook", mock.Anything, mock.Anything)
	})

	t.Run("rejects confidence outside (0, 1]", func(t *testing.T) {
		svc := New(staticFactory(new(providerMock)))

		_, err := svc.RegisterWebhook(t.Context(), "btc", WebhookRegistration{
			Event:      "tx-confidence",
			URL:        "https://example.com/hook",
			Confidence: 1.5,
		})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("rejects confirmation counts above the provider cap", func(t *testing.T) {
		svc := New(staticFactory(new(providerMock)))

		_, err := svc.RegisterWebhook(t.Context(), "btc", WebhookRegistration{
			Event:         "tx-confirmation",
			URL:           "https://example.com/hook",
			Confirmations: 11,
		})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("registers valid subscriptions", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("CreateWebhook", mock.Anything, mock.MatchedBy(func(hook blockcypher.Webhook) bool {
				return hook.Event == "tx-confirmation" && hook.Confirmations == 6
			})).
			Return(blockcypher.Webhook{ID: "hook-1", Event: "tx-confirmation"}, nil)

		svc := New(staticFactory(provider))

		hook, err := svc.RegisterWebhook(t.Context(), "btc", WebhookRegistration{
			Event:         "tx-confirmation",
			URL:           "https://example.com/hook",
			Address:       "addr1",
			Confirmations: 6,
		})

		require.NoError(t, err)
		assert.Equal(t, "hook-1", hook.ID)
	})
}

func TestCreateForwardingAddress(t *testing.T) {
	t.Run("rejects malformed callback urls", func(t *testing.T) {
		svc := New(staticFactory(new(providerMock)))

		_, err := svc.CreateForwardingAddress(t.Context(), "btc", ForwardingRequest{
			Destination: "addr-dest",
			CallbackURL: "not a url",
		})

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("registers valid forwarding addresses", func(t *testing.T) {
		provider := new(providerMock)
		provider.
			On("CreateForwardingAddress", mock.Anything, blockcypher.ForwardingAddress{
				Destination: "addr-dest",
				CallbackURL: "https://example.com/forwarded",
			}).
			Return(blockcypher.ForwardingAddress{ID: "fwd-1", InputAddress: "addr-in"}, nil)

		svc := New(staticFactory(provider))

		forward, err := svc.CreateForwardingAddress(t.Context(), "btc", ForwardingRequest{
			Destination: "addr-dest",
			CallbackURL: "https://example.com/forwarded",
		})

		require.NoError(t, err)
		assert.Equal(t, "addr-in", forward.InputAddress)
	})
}

func TestSupportedNetworks(t *testing.T) {
	svc := New(staticFactory(new(providerMock)))

	networks := svc.SupportedNetworks()

	assert.Contains(t, networks, "btc")
	assert.Contains(t, networks, "btc-testnet")
}
