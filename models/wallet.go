package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType tags a wallet within a user's set of wallets
type WalletType string

const (
	WalletTypePersonal WalletType = "personal"
)

// Wallet holds a single balance counter for one (user, wallet-type) pair.
// Balance is a NUMERIC column; it must never go negative as an effect of
// a transfer operation.
type Wallet struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	WalletType WalletType      `db:"wallet_type" json:"walletType"`
	DisplayID  string          `db:"display_id" json:"displayId"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}
