package postgres

import (
	"context"
	"errors"

	"github.com/satstack/paywatch/internal/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerStore implements ledger.Storage on top of a GORM connection.
type LedgerStore struct {
	db *gorm.DB
}

var _ ledger.Storage = (*LedgerStore)(nil)

// NewLedgerStore migrates the ledger schema and returns the store.
func NewLedgerStore(db *gorm.DB) (*LedgerStore, error) {
	err := db.AutoMigrate(
		&ledger.User{},
		&ledger.Wallet{},
		&ledger.Payment{},
		&ledger.Transaction{},
	)
	if err != nil {
		return nil, err
	}

	return &LedgerStore{db: db}, nil
}

// CreateUser implements the ledger.Storage interface.
func (s *LedgerStore) CreateUser(ctx context.Context, user ledger.User) error {
	err := s.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ledger.ErrEmailTaken
	}

	return err
}

// GetUser implements the ledger.Storage interface.
func (s *LedgerStore) GetUser(ctx context.Context, id uuid.UUID) (ledger.User, error) {
	var user ledger.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.User{}, ledger.ErrUserNotFound
	}

	return user, err
}

// GetUserByEmail implements the ledger.Storage interface.
func (s *LedgerStore) GetUserByEmail(ctx context.Context, email string) (ledger.User, error) {
	var user ledger.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.User{}, ledger.ErrUserNotFound
	}

	return user, err
}

// CreateWallet implements the ledger.Storage interface.
func (s *LedgerStore) CreateWallet(ctx context.Context, wallet ledger.Wallet) error {
	return s.db.WithContext(ctx).Create(&wallet).Error
}

// GetWallet implements the ledger.Storage interface.
func (s *LedgerStore) GetWallet(ctx context.Context, id uuid.UUID) (ledger.Wallet, error) {
	var wallet ledger.Wallet
	err := s.db.WithContext(ctx).First(&wallet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.Wallet{}, ledger.ErrWalletNotFound
	}

	return wallet, err
}

// ListUserWallets implements the ledger.Storage interface.
func (s *LedgerStore) ListUserWallets(ctx context.Context, userID uuid.UUID) ([]ledger.Wallet, error) {
	var wallets []ledger.Wallet
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&wallets).Error

	return wallets, err
}

// CreatePayment implements the ledger.Storage interface.
func (s *LedgerStore) CreatePayment(ctx context.Context, payment ledger.Payment) error {
	return s.db.WithContext(ctx).Create(&payment).Error
}

// GetPayment implements the ledger.Storage interface.
func (s *LedgerStore) GetPayment(ctx context.Context, id uuid.UUID) (ledger.Payment, error) {
	var payment ledger.Payment
	err := s.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.Payment{}, ledger.ErrPaymentNotFound
	}

	return payment, err
}

// ListUserPayments implements the ledger.Storage interface.
func (s *LedgerStore) ListUserPayments(ctx context.Context, userID uuid.UUID) ([]ledger.Payment, error) {
	var payments []ledger.Payment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, err
}

// UpdatePayment implements the ledger.Storage interface.
func (s *LedgerStore) UpdatePayment(ctx context.Context, payment ledger.Payment) error {
	result := s.db.WithContext(ctx).
		Model(&ledger.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"status":         payment.Status,
			"transaction_id": payment.TransactionID,
			"updated_at":     payment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrPaymentNotFound
	}

	return nil
}

// CreateTransaction implements the ledger.Storage interface.
func (s *LedgerStore) CreateTransaction(ctx context.Context, tx ledger.Transaction) error {
	return s.db.WithContext(ctx).Create(&tx).Error
}

// GetTransaction implements the ledger.Storage interface.
func (s *LedgerStore) GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	var tx ledger.Transaction
	err := s.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.Transaction{}, ledger.ErrTransactionNotFound
	}

	return tx, err
}

// ListWalletTransactions implements the ledger.Storage interface.
func (s *LedgerStore) ListWalletTransactions(ctx context.Context, walletID uuid.UUID) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	err := s.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Find(&txs).Error

	return txs, err
}

// UpdateTransaction implements the ledger.Storage interface.
func (s *LedgerStore) UpdateTransaction(ctx context.Context, tx ledger.Transaction) error {
	result := s.db.WithContext(ctx).
		Model(&ledger.Transaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]any{
			"status":     tx.Status,
			"updated_at": tx.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrTransactionNotFound
	}

	return nil
}
