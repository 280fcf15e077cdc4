package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's active role in the network
type UserRole string

const (
	UserRoleActivator UserRole = "activator"
	UserRoleTrustee   UserRole = "trustee"
	UserRoleEnvoy     UserRole = "envoy"
)

// User represents a member of the generosity network
type User struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Phone              string     `db:"phone" json:"phone"`
	Username           string     `db:"username" json:"username"`
	DisplayName        string     `db:"display_name" json:"displayName"`
	AvatarURL          string     `db:"avatar_url" json:"avatarUrl"`
	ActiveRole         UserRole   `db:"active_role" json:"activeRole"`
	OnboardingComplete bool       `db:"onboarding_complete" json:"onboardingComplete"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt        *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

// UserProfile is the subset of user fields joined onto transfers and
// conversations for display
type UserProfile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	AvatarURL   string    `db:"avatar_url" json:"avatarUrl"`
	ActiveRole  UserRole  `db:"active_role" json:"activeRole"`
}

// Profile returns the display subset of a user
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		ActiveRole:  u.ActiveRole,
	}
}
