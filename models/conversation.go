package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversation is the derived inbox view of all transfers between the
// current user and one partner. It is recomputed from the transfer list on
// every read and never persisted.
type Conversation struct {
	// PartnerID is the partner's user id string, or a "demo:" prefixed key
	// for synthetic sample threads.
	PartnerID     string          `json:"partnerId"`
	Partner       UserProfile     `json:"partner"`
	Preview       string          `json:"preview"`
	LastAt        time.Time       `json:"lastAt"`
	LastAmount    decimal.Decimal `json:"lastAmount"`
	PendingCount  int             `json:"pendingCount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	Transfers     []*Transfer     `json:"transfers"`
	Demo          bool            `json:"demo,omitempty"`
}

// DemoKeyPrefix marks synthetic sample threads merged into the inbox
const DemoKeyPrefix = "demo:"
