// Package ledger keeps the relational records of the gateway: users, their
// custodial wallets, and the payments and on-chain transactions made through
// them. It is conventional CRUD; the chain-facing invariants live in the
// txstatus and gateway packages.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the lifecycle state of a payment or transaction record.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

// PaymentMethod is the settlement rail of a payment.
type PaymentMethod string

const (
	PaymentMethodBitcoin      PaymentMethod = "bitcoin"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// User is an account holder.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Wallet is a user's custodial wallet. The private key is held to pass
// through to the provider's delegated signing endpoint and is never exposed
// over the API.
type Wallet struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Address        string    `gorm:"not null;uniqueIndex" json:"address"`
	PrivateKey     string    `gorm:"not null" json:"-"`
	BalanceSatoshi int64     `gorm:"not null;default:0" json:"balance_satoshi"`
	Currency       string    `gorm:"not null;default:BTC" json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Payment is a user-facing payment intent. Once settled on chain it links to
// the Transaction that carried it.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"not null" json:"currency"`
	Status        PaymentStatus `gorm:"not null" json:"status"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"payment_method"`
	TransactionID *uuid.UUID    `gorm:"type:uuid" json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Transaction is the ledger-side record of an on-chain (or bank) movement
// against a wallet. Amount is in the currency's minor unit.
type Transaction struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	WalletID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"wallet_id"`
	Amount          int64         `gorm:"not null" json:"amount"`
	Currency        string        `gorm:"not null" json:"currency"`
	Status          PaymentStatus `gorm:"not null" json:"status"`
	PaymentMethod   PaymentMethod `gorm:"not null" json:"payment_method"`
	TransactionHash string        `gorm:"index" json:"transaction_hash,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
