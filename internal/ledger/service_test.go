package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("error")
}

// fakeStorage is an in-memory Storage used by the service tests.
type fakeStorage struct {
	users        map[uuid.UUID]User
	wallets      map[uuid.UUID]Wallet
	payments     map[uuid.UUID]Payment
	transactions map[uuid.UUID]Transaction
}

var _ Storage = (*fakeStorage)(nil)

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:        make(map[uuid.UUID]User),
		wallets:      make(map[uuid.UUID]Wallet),
		payments:     make(map[uuid.UUID]Payment),
		transactions: make(map[uuid.UUID]Transaction),
	}
}

func (f *fakeStorage) CreateUser(_ context.Context, user User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) GetUser(_ context.Context, id uuid.UUID) (User, error) {
	user, ok := f.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStorage) GetUserByEmail(_ context.Context, email string) (User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeStorage) CreateWallet(_ context.Context, wallet Wallet) error {
	f.wallets[wallet.ID] = wallet
	return nil
}

func (f *fakeStorage) GetWallet(_ context.Context, id uuid.UUID) (Wallet, error) {
	wallet, ok := f.wallets[id]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (f *fakeStorage) ListUserWallets(_ context.Context, userID uuid.UUID) ([]Wallet, error) {
	var wallets []Wallet
	for _, wallet := range f.wallets {
		if wallet.UserID == userID {
			wallets = append(wallets, wallet)
		}
	}
	return wallets, nil
}

func (f *fakeStorage) CreatePayment(_ context.Context, payment Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakeStorage) GetPayment(_ context.Context, id uuid.UUID) (Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return payment, nil
}

func (f *fakeStorage) ListUserPayments(_ context.Context, userID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	for _, payment := range f.payments {
		if payment.UserID == userID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

func (f *fakeStorage) UpdatePayment(_ context.Context, payment Payment) error {
	if _, ok := f.payments[payment.ID]; !ok {
		return ErrPaymentNotFound
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakeStorage) CreateTransaction(_ context.Context, tx Transaction) error {
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeStorage) GetTransaction(_ context.Context, id uuid.UUID) (Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (f *fakeStorage) ListWalletTransactions(_ context.Context, walletID uuid.UUID) ([]Transaction, error) {
	var txs []Transaction
	for _, tx := range f.transactions {
		if tx.WalletID == walletID {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (f *fakeStorage) UpdateTransaction(_ context.Context, tx Transaction) error {
	if _, ok := f.transactions[tx.ID]; !ok {
		return ErrTransactionNotFound
	}
	f.transactions[tx.ID] = tx
	return nil
}

func TestRegisterUser(t *testing.T) {
	t.Run("hashes the password and stores the account", func(t *testing.T) {
		svc := New(newFakeStorage())

		user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "correct horse battery", user.HashedPassword)
		assert.True(t, user.IsActive)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		svc := New(newFakeStorage())

		_, err := svc.RegisterUser(t.Context(), "not-an-email", "correct horse battery")

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := New(newFakeStorage())

		_, err := svc.RegisterUser(t.Context(), "alice@example.com", "short")

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		svc := New(newFakeStorage())

		_, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
		require.NoError(t, err)

		_, err = svc.RegisterUser(t.Context(), "alice@example.com", "another password")

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticateUser(t *testing.T) {
	setup := func(t *testing.T) (Service, User) {
		t.Helper()
		svc := New(newFakeStorage())
		user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
		require.NoError(t, err)
		return svc, user
	}

	t.Run("accepts valid credentials", func(t *testing.T) {
		svc, registered := setup(t)

		user, err := svc.AuthenticateUser(t.Context(), "alice@example.com", "correct horse battery")

		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("rejects wrong passwords", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.AuthenticateUser(t.Context(), "alice@example.com", "wrong password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects unknown emails with the same error", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.AuthenticateUser(t.Context(), "bob@example.com", "correct horse battery")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCreateWallet(t *testing.T) {
	t.Run("records a wallet for an existing user", func(t *testing.T) {
		svc := New(newFakeStorage())
		user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
		require.NoError(t, err)

		wallet, err := svc.CreateWallet(t.Context(), user.ID, "addr1", "priv1", "")

		require.NoError(t, err)
		assert.Equal(t, user.ID, wallet.UserID)
		assert.Equal(t, "BTC", wallet.Currency, "currency defaults to BTC")
	})

	t.Run("requires an existing user", func(t *testing.T) {
		svc := New(newFakeStorage())

		_, err := svc.CreateWallet(t.Context(), uuid.New(), "addr1", "priv1", "BTC")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestPaymentLifecycle(t *testing.T) {
	frozen := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc := New(newFakeStorage(), WithClock(func() time.Time { return frozen }))

	user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
	require.NoError(t, err)

	payment, err := svc.CreatePayment(t.Context(), user.ID, 150_000, "BTC", PaymentMethodBitcoin)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, payment.Status)
	assert.Equal(t, frozen, payment.CreatedAt)

	wallet, err := svc.CreateWallet(t.Context(), user.ID, "addr1", "priv1", "BTC")
	require.NoError(t, err)

	tx, err := svc.RecordTransaction(t.Context(), wallet.ID, 150_000, "BTC", PaymentMethodBitcoin, "txhash1")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, tx.Status)

	settled, err := svc.UpdatePaymentStatus(t.Context(), payment.ID, PaymentStatusCompleted, &tx.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusCompleted, settled.Status)
	require.NotNil(t, settled.TransactionID)
	assert.Equal(t, tx.ID, *settled.TransactionID)

	confirmed, err := svc.UpdateTransactionStatus(t.Context(), tx.ID, PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusCompleted, confirmed.Status)
}

func TestCreatePayment(t *testing.T) {
	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := New(newFakeStorage())
		user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
		require.NoError(t, err)

		_, err = svc.CreatePayment(t.Context(), user.ID, 0, "BTC", PaymentMethodBitcoin)

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("rejects unknown payment methods", func(t *testing.T) {
		svc := New(newFakeStorage())
		user, err := svc.RegisterUser(t.Context(), "alice@example.com", "correct horse battery")
		require.NoError(t, err)

		_, err = svc.CreatePayment(t.Context(), user.ID, 1_000, "BTC", PaymentMethod("carrier_pigeon"))

		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}
