package models

import (
	"time"

	"github.com/google/uuid"
)

// KeyType identifies the badge-like role credentials. Keys gate UI
// affordances only; they are not a security mechanism.
type KeyType string

const (
	KeyTypeSeed    KeyType = "SeedKey"
	KeyTypeBase    KeyType = "BaseKey"
	KeyTypeMission KeyType = "MissionKey"
)

// KeyStatus is the activation state of a key
type KeyStatus string

const (
	KeyStatusActive   KeyStatus = "active"
	KeyStatusInactive KeyStatus = "inactive"
)

// Key is a role credential associated with a user
type Key struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	KeyType   KeyType   `db:"key_type" json:"keyType"`
	DisplayID string    `db:"display_id" json:"displayId"`
	Status    KeyStatus `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
