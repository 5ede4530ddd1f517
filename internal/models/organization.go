package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant in the system. All catalog data belongs
// to exactly one organization; it is the isolation boundary for every scoped
// store operation.
type Organization struct {
	OrgID     uuid.UUID `json:"id"` // UUIDv7
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
