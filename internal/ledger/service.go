package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satstack/paywatch/internal/pkg/logger"
	"github.com/satstack/paywatch/internal/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when authentication fails. It covers
// unknown emails, wrong passwords, and deactivated accounts alike so the
// caller cannot probe which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service exposes the ledger operations used by the REST layer.
type Service interface {
	// RegisterUser creates an account with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, email, password string) (User, error)

	// AuthenticateUser verifies credentials and returns the account.
	AuthenticateUser(ctx context.Context, email, password string) (User, error)

	// CreateWallet records a custodial wallet for a user.
	CreateWallet(ctx context.Context, userID uuid.UUID, address, privateKey, currency string) (Wallet, error)

	// GetWallet fetches a wallet by ID.
	GetWallet(ctx context.Context, id uuid.UUID) (Wallet, error)

	// ListUserWallets lists a user's wallets.
	ListUserWallets(ctx context.Context, userID uuid.UUID) ([]Wallet, error)

	// CreatePayment opens a pending payment for a user.
	CreatePayment(ctx context.Context, userID uuid.UUID, amount int64, currency string, method PaymentMethod) (Payment, error)

	// GetPayment fetches a payment by ID.
	GetPayment(ctx context.Context, id uuid.UUID) (Payment, error)

	// ListUserPayments lists a user's payments.
	ListUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error)

	// UpdatePaymentStatus moves a payment to a new status, optionally
	// linking the transaction that settled it.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus, transactionID *uuid.UUID) (Payment, error)

	// RecordTransaction records a pending movement against a wallet.
	RecordTransaction(ctx context.Context, walletID uuid.UUID, amount int64, currency string, method PaymentMethod, txHash string) (Transaction, error)

	// GetTransaction fetches a transaction record by ID.
	GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error)

	// ListWalletTransactions lists a wallet's transaction records.
	ListWalletTransactions(ctx context.Context, walletID uuid.UUID) ([]Transaction, error)

	// UpdateTransactionStatus moves a transaction record to a new status.
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) (Transaction, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	storage Storage
	now     func() time.Time
}

var _ Service = (*service)(nil)

// Option configures the ledger service.
type Option func(*service)

// WithClock overrides the time source. Meant for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a ledger service backed by the given storage.
func New(storage Storage, opts ...Option) *service {
	s := &service{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// registerUserInput carries the validation rules for account creation.
type registerUserInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// RegisterUser creates an account with a bcrypt-hashed password.
func (s *service) RegisterUser(ctx context.Context, email, password string) (User, error) {
	if err := validator.Validate(registerUserInput{Email: email, Password: password}); err != nil {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now()
	user := User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return User{}, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID)

	return user, nil
}

// AuthenticateUser verifies the credentials and returns the account. Every
// failure mode maps to ErrInvalidCredentials.
func (s *service) AuthenticateUser(ctx context.Context, email, password string) (User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}

		return User{}, err
	}

	if !user.IsActive {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// createWalletInput carries the validation rules for wallet creation.
type createWalletInput struct {
	Address    string `validate:"required"`
	PrivateKey string `validate:"required"`
	Currency   string `validate:"required,uppercase,min=3,max=5"`
}

// CreateWallet records a custodial wallet for a user.
func (s *service) CreateWallet(ctx context.Context, userID uuid.UUID, address, privateKey, currency string) (Wallet, error) {
	if currency == "" {
		currency = "BTC"
	}

	input := createWalletInput{Address: address, PrivateKey: privateKey, Currency: currency}
	if err := validator.Validate(input); err != nil {
		return Wallet{}, err
	}

	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return Wallet{}, err
	}

	now := s.now()
	wallet := Wallet{
		ID:         uuid.New(),
		UserID:     userID,
		Address:    address,
		PrivateKey: privateKey,
		Currency:   currency,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.storage.CreateWallet(ctx, wallet); err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// GetWallet fetches a wallet by ID.
func (s *service) GetWallet(ctx context.Context, id uuid.UUID) (Wallet, error) {
	return s.storage.GetWallet(ctx, id)
}

// ListUserWallets lists a user's wallets.
func (s *service) ListUserWallets(ctx context.Context, userID uuid.UUID) ([]Wallet, error) {
	return s.storage.ListUserWallets(ctx, userID)
}

// createPaymentInput carries the validation rules for payment creation.
type createPaymentInput struct {
	Amount   int64         `validate:"required,gt=0"`
	Currency string        `validate:"required"`
	Method   PaymentMethod `validate:"required,oneof=bitcoin bank_transfer"`
}

// CreatePayment opens a pending payment for a user.
func (s *service) CreatePayment(ctx context.Context, userID uuid.UUID, amount int64, currency string, method PaymentMethod) (Payment, error) {
	input := createPaymentInput{Amount: amount, Currency: currency, Method: method}
	if err := validator.Validate(input); err != nil {
		return Payment{}, err
	}

	if _, err := s.storage.GetUser(ctx, userID); err != nil {
		return Payment{}, err
	}

	now := s.now()
	payment := Payment{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		Status:        PaymentStatusPending,
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.CreatePayment(ctx, payment); err != nil {
		return Payment{}, err
	}

	logger.Info(ctx, "payment created",
		"payment_id", payment.ID,
		"user_id", userID,
		"amount", amount,
		"currency", currency,
	)

	return payment, nil
}

// GetPayment fetches a payment by ID.
func (s *service) GetPayment(ctx context.Context, id uuid.UUID) (Payment, error) {
	return s.storage.GetPayment(ctx, id)
}

// ListUserPayments lists a user's payments.
func (s *service) ListUserPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	return s.storage.ListUserPayments(ctx, userID)
}

// statusInput carries the validation rule for status transitions.
type statusInput struct {
	Status PaymentStatus `validate:"required,oneof=pending processing completed failed cancelled"`
}

// UpdatePaymentStatus moves a payment to a new status, optionally linking
// the settling transaction.
func (s *service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus, transactionID *uuid.UUID) (Payment, error) {
	if err := validator.Validate(statusInput{Status: status}); err != nil {
		return Payment{}, err
	}

	payment, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return Payment{}, err
	}

	payment.Status = status
	if transactionID != nil {
		payment.TransactionID = transactionID
	}
	payment.UpdatedAt = s.now()

	if err := s.storage.UpdatePayment(ctx, payment); err != nil {
		return Payment{}, err
	}

	return payment, nil
}

// RecordTransaction records a pending movement against a wallet.
func (s *service) RecordTransaction(ctx context.Context, walletID uuid.UUID, amount int64, currency string, method PaymentMethod, txHash string) (Transaction, error) {
	input := createPaymentInput{Amount: amount, Currency: currency, Method: method}
	if err := validator.Validate(input); err != nil {
		return Transaction{}, err
	}

	if _, err := s.storage.GetWallet(ctx, walletID); err != nil {
		return Transaction{}, err
	}

	now := s.now()
	tx := Transaction{
		ID:              uuid.New(),
		WalletID:        walletID,
		Amount:          amount,
		Currency:        currency,
		Status:          PaymentStatusPending,
		PaymentMethod:   method,
		TransactionHash: txHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.storage.CreateTransaction(ctx, tx); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}

// GetTransaction fetches a transaction record by ID.
func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error) {
	return s.storage.GetTransaction(ctx, id)
}

// ListWalletTransactions lists a wallet's transaction records.
func (s *service) ListWalletTransactions(ctx context.Context, walletID uuid.UUID) ([]Transaction, error) {
	return s.storage.ListWalletTransactions(ctx, walletID)
}

// UpdateTransactionStatus moves a transaction record to a new status.
func (s *service) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) (Transaction, error) {
	if err := validator.Validate(statusInput{Status: status}); err != nil {
		return Transaction{}, err
	}

	tx, err := s.storage.GetTransaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}

	tx.Status = status
	tx.UpdatedAt = s.now()

	if err := s.storage.UpdateTransaction(ctx, tx); err != nil {
		return Transaction{}, err
	}

	return tx, nil
}
