package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletNotFound is returned when no wallet matches the lookup.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrPaymentNotFound is returned when no payment matches the lookup.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrTransactionNotFound is returned when no transaction record
	// matches the lookup.
	ErrTransactionNotFound = errors.New("ledger transaction not found")

	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// Storage persists the ledger entities.
type Storage interface {
	// CreateUser inserts a new user. ErrEmailTaken is returned when the
	// email is already registered.
	CreateUser(ctx context.Context, user User) error

	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (User, error)

	// GetUserByEmail fetches a user by email.
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// CreateWallet inserts a new wallet.
	CreateWallet(ctx context.Context, wallet Wallet) error

	// GetWallet fetches a wallet by ID.
	GetWallet(ctx context.Context, id uuid.UUID) (Wallet, error)

	// ListUserWallets lists a user's wallets, newest first.
	ListUserWallets(ctx context.Context, userID uuid.UUID) ([]Wallet, error)

	// CreatePayment inserts a new payment.
	CreatePayment(ctx context.Context, payment Payment) error

	// GetPayment fetches a payment by ID.
	GetPayment(ctx context.Context, id uuid.UUID) (Payment, error)

	// ListUserPayments lists a user's payments, newest first.
	ListUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error)

	// UpdatePayment persists changed payment fields.
	UpdatePayment(ctx context.Context, payment Payment) error

	// CreateTransaction inserts a new transaction record.
	CreateTransaction(ctx context.Context, tx Transaction) error

	// GetTransaction fetches a transaction record by ID.
	GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error)

	// ListWalletTransactions lists a wallet's transaction records,
	// newest first.
	ListWalletTransactions(ctx context.Context, walletID uuid.UUID) ([]Transaction, error)

	// UpdateTransaction persists changed transaction fields.
	UpdateTransaction(ctx context.Context, tx Transaction) error
}
