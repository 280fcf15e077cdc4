package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the lifecycle state of a transfer
type TransferStatus string

const (
	// TransferStatusPending is a debit-backed proposal: the sender's wallet
	// was debited when the row was created.
	TransferStatusPending TransferStatus = "pending"
	// TransferStatusRequested is a payment request: nobody has been debited
	// yet. The payer is debited only if the request is accepted.
	TransferStatusRequested TransferStatus = "requested"
	TransferStatusAccepted  TransferStatus = "accepted"
	TransferStatusDeclined  TransferStatus = "declined"
)

// Transfer represents a unidirectional value movement between two users.
// A nil FromUserID denotes an external deposit; a nil ToUserID denotes an
// external withdrawal. External records are created directly in the
// accepted state and never transition.
type Transfer struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	FromUserID  *uuid.UUID      `db:"from_user_id" json:"fromUserId"`
	ToUserID    *uuid.UUID      `db:"to_user_id" json:"toUserId"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Purpose     string          `db:"purpose" json:"purpose"`
	Status      TransferStatus  `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	RespondedAt *time.Time      `db:"responded_at" json:"respondedAt,omitempty"`

	// Joined endpoint profiles, populated by list queries
	From *UserProfile `db:"-" json:"from,omitempty"`
	To   *UserProfile `db:"-" json:"to,omitempty"`
}

// IsResolved reports whether the transfer has reached a terminal state
func (t *Transfer) IsResolved() bool {
	return t.Status == TransferStatusAccepted || t.Status == TransferStatusDeclined
}

// CanBeResponded reports whether accept/decline is still legal
func (t *Transfer) CanBeResponded() bool {
	return t.Status == TransferStatusPending || t.Status == TransferStatusRequested
}

// IsExternal reports whether either endpoint is outside the network
func (t *Transfer) IsExternal() bool {
	return t.FromUserID == nil || t.ToUserID == nil
}

// IsIncoming reports whether the transfer moves value toward the given user
func (t *Transfer) IsIncoming(userID uuid.UUID) bool {
	return t.ToUserID != nil && *t.ToUserID == userID
}

// PartnerID returns the other endpoint's user id, or nil for an external
// deposit/withdrawal with no human partner
func (t *Transfer) PartnerID(userID uuid.UUID) *uuid.UUID {
	if t.IsIncoming(userID) {
		return t.FromUserID
	}
	return t.ToUserID
}

// Partner returns the joined profile of the other endpoint, if present
func (t *Transfer) Partner(userID uuid.UUID) *UserProfile {
	if t.IsIncoming(userID) {
		return t.From
	}
	return t.To
}

// IsPendingFor reports whether the transfer counts toward the given user's
// unresponded inbox: an incoming proposal or request still awaiting action.
func (t *Transfer) IsPendingFor(userID uuid.UUID) bool {
	return t.CanBeResponded() && t.IsIncoming(userID)
}
