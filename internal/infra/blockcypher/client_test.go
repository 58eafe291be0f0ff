package blockcypher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	transporthttp "github.com/satstack/paywatch/internal/pkg/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at the given test server without retries so
// error-path tests stay fast.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	client, err := New("btc-testnet", "test-token",
		WithBaseURL(srv.URL),
		WithHTTPClient(transporthttp.NewClient(transporthttp.WithRetryMax(0))),
	)
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Run("rejects unsupported network symbols", func(t *testing.T) {
		_, err := New("monopoly-money", "token")

		assert.ErrorIs(t, err, ErrUnsupportedNetwork)
	})

	t.Run("requires an api token", func(t *testing.T) {
		_, err := New("btc", "")

		assert.Error(t, err)
	})

	t.Run("maps network symbols onto coin/chain url segments", func(t *testing.T) {
		for network, wantSuffix := range map[string]string{
			"btc":         "/btc/main",
			"btc-testnet": "/btc/test3",
			"bcy":         "/bcy/test",
			"doge":        "/doge/main",
		} {
			client, err := New(network, "token")

			require.NoError(t, err)
			assert.Contains(t, client.baseURL, wantSuffix)
		}
	})
}

func TestDo(t *testing.T) {
	t.Run("attaches the token as a query parameter", func(t *testing.T) {
		var gotToken string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("token")
			_ = json.NewEncoder(w).Encode(ChainInfo{Height: 100})
		}))
		defer srv.Close()

		client := newTestClient(t, srv)

		height, err := client.LatestBlockHeight(t.Context())

		require.NoError(t, err)
		assert.Equal(t, int64(100), height)
		assert.Equal(t, "test-token", gotToken)
	})

	t.Run("decodes typed responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/btc/test3/addrs/addr1/balance", r.URL.Path)
			_ = json.NewEncoder(w).Encode(AddressBalance{Address: "addr1", Balance: 2_000_000})
		}))
		defer srv.Close()

		client := newTestClient(t, srv)

		balance, err := client.AddressBalance(t.Context(), "addr1")

		require.NoError(t, err)
		assert.Equal(t, "addr1", balance.Address)
		assert.Equal(t, int64(2_000_000), balance.Balance)
	})

	t.Run("sends typed request bodies", func(t *testing.T) {
		var gotBody Wallet
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(gotBody)
		}))
		defer srv.Close()

		client := newTestClient(t, srv)

		wallet, err := client.CreateWallet(t.Context(), "alice", []string{"addr1"})

		require.NoError(t, err)
		assert.Equal(t, "alice", gotBody.Name)
		assert.Equal(t, []string{"addr1"}, wallet.Addresses)
	})
}

func TestErrorTaxonomy(t *testing.T) {
	serveStatus := func(status int, body string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
	}

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		srv := serveStatus(http.StatusNotFound, `{"error": "tx not found"}`)
		defer srv.Close()

		_, err := newTestClient(t, srv).GetTransaction(t.Context(), "deadbeef", false)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "tx not found")
	})

	t.Run("429 maps to ErrRateLimited", func(t *testing.T) {
		srv := serveStatus(http.StatusTooManyRequests, `{"error": "limits exceeded"}`)
		defer srv.Close()

		_, err := newTestClient(t, srv).ChainInfo(t.Context())

		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("other 4xx map to ErrInvalidRequest", func(t *testing.T) {
		srv := serveStatus(http.StatusBadRequest, `{"error": "missing outputs"}`)
		defer srv.Close()

		_, err := newTestClient(t, srv).NewTransaction(t.Context(), TxSkeletonRequest{})

		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("5xx maps to ErrProviderUnavailable", func(t *testing.T) {
		srv := serveStatus(http.StatusBadGateway, "")
		defer srv.Close()

		_, err := newTestClient(t, srv).ChainInfo(t.Context())

		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("unreachable provider maps to ErrProviderUnavailable", func(t *testing.T) {
		srv := serveStatus(http.StatusOK, "{}")
		srv.Close() // shut down before the request

		_, err := newTestClient(t, srv).ChainInfo(t.Context())

		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})
}

func TestFeeEstimates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChainInfo{
			HighFeePerKB:   40_000,
			MediumFeePerKB: 20_000,
			LowFeePerKB:    10_000,
		})
	}))
	defer srv.Close()

	fees, err := newTestClient(t, srv).FeeEstimates(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(40_000), fees.HighPerKB)
	assert.Equal(t, int64(20_000), fees.MediumPerKB)
	assert.Equal(t, int64(10_000), fees.LowPerKB)
}
