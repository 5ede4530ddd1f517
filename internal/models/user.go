package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a credential holder belonging to exactly one organization.
// Users are created at signup (paired 1:1 with a fresh organization) and are
// immutable thereafter.
type User struct {
	UserID uuid.UUID `json:"id"` // UUIDv7
	OrgID  uuid.UUID `json:"organizationId"`
	Email  string    `json:"email"` // globally unique

	// PasswordHash is the bcrypt hash of the user's password. Never
	// serialized in API responses.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
