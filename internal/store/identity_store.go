package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/stockroom/internal/models"
)

// Sentinel errors for identity store operations
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// IdentityStore defines the interface for user and organization storage.
// Signup creates a user and its organization as a single atomic operation so
// a duplicate email leaves no partial rows behind.
type IdentityStore interface {
	// CreateUserWithOrganization atomically creates an organization and its
	// first user. Returns ErrEmailTaken if the email already has a user
	// record, in which case neither row is written.
	CreateUserWithOrganization(ctx context.Context, org *models.Organization, user *models.User) error

	// GetUserByEmail retrieves a user by email (exact match).
	// Returns ErrUserNotFound if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetOrganization retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, error)
}
