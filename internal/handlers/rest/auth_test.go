package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/satstack/paywatch/internal/gateway"
	"github.com/satstack/paywatch/internal/infra/blockcypher"
	"github.com/satstack/paywatch/internal/infra/storage/memory"
	"github.com/satstack/paywatch/internal/ledger"
	"github.com/satstack/paywatch/internal/txstatus"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ledgerMock mocks the ledger operations exercised by the auth tests.
type ledgerMock struct {
	ledger.Service
	mock.Mock
}

func (m *ledgerMock) RegisterUser(ctx context.Context, email, password string) (ledger.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ledger.User), args.Error(1)
}

func (m *ledgerMock) AuthenticateUser(ctx context.Context, email, password string) (ledger.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(ledger.User), args.Error(1)
}

// newAuthRouter wires a router whose protected routes are backed by a real
// gateway service. The provider factory always fails, which is fine: the
// tested route never reaches a provider.
func newAuthRouter(lg ledger.Service) http.Handler {
	gw := gateway.New(func(string) (gateway.Provider, error) {
		return nil, blockcypher.ErrUnsupportedNetwork
	})

	return NewRouter(
		Config{Environment: "production", JWTSecret: "test-secret"},
		txstatus.New(memory.NewStatusStore()),
		gw,
		lg,
	)
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("rejects requests without a bearer token", func(t *testing.T) {
		router := newAuthRouter(new(ledgerMock))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/networks", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		router := newAuthRouter(new(ledgerMock))

		token, err := issueToken("other-secret", ledger.User{ID: uuid.New()}, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/networks", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admits valid tokens", func(t *testing.T) {
		router := newAuthRouter(new(ledgerMock))

		token, err := issueToken("test-secret", ledger.User{ID: uuid.New()}, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/networks", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Networks []string `json:"networks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Networks, "btc")
	})

	t.Run("webhook routes stay open", func(t *testing.T) {
		router := newAuthRouter(new(ledgerMock))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhooks/transactions", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a bearer token for valid credentials", func(t *testing.T) {
		user := ledger.User{ID: uuid.New(), Email: "alice@example.com"}

		lg := new(ledgerMock)
		lg.
			On("AuthenticateUser", mock.Anything, "alice@example.com", "correct horse battery").
			Return(user, nil)

		router := newAuthRouter(lg)

		rec := postJSON(t, router, "/auth/login", `{"email": "alice@example.com", "password": "correct horse battery"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.AccessToken)
		assert.Equal(t, "bearer", body.TokenType)
	})

	t.Run("maps invalid credentials to 401", func(t *testing.T) {
		lg := new(ledgerMock)
		lg.
			On("AuthenticateUser", mock.Anything, "alice@example.com", "wrong").
			Return(ledger.User{}, ledger.ErrInvalidCredentials)

		router := newAuthRouter(lg)

		rec := postJSON(t, router, "/auth/login", `{"email": "alice@example.com", "password": "wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
