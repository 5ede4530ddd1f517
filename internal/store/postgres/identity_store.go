package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

// IdentityStore implements store.IdentityStore using PostgreSQL.
type IdentityStore struct {
	pool *pgxpool.Pool
}

// NewIdentityStore creates a new PostgreSQL-backed identity store.
// It shares the connection pool with other stores.
func NewIdentityStore(pool *pgxpool.Pool) *IdentityStore {
	return &IdentityStore{
		pool: pool,
	}
}

// CreateUserWithOrganization atomically creates an organization and its
// first user. Both inserts run in one transaction so a duplicate email
// rolls back the organization row as well.
func (s *IdentityStore) CreateUserWithOrganization(ctx context.Context, org *models.Organization, user *models.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback is safe to call after commit

	_, err = tx.Exec(ctx, `
		INSERT INTO organizations (
			org_id, name, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4
		)
	`,
		org.OrgID,
		org.Name,
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (
			user_id, org_id, email, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`,
		user.UserID,
		user.OrgID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit signup: %w", err)
	}

	log.Debug().
		Str("user_id", user.UserID.String()).
		Str("org_id", org.OrgID.String()).
		Msg("Created user and organization")

	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *IdentityStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, org_id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.UserID,
		&user.OrgID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetOrganization retrieves an organization by ID.
func (s *IdentityStore) GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT org_id, name, created_at, updated_at
		FROM organizations
		WHERE org_id = $1
	`

	var org models.Organization
	err := s.pool.QueryRow(ctx, query, orgID).Scan(
		&org.OrgID,
		&org.Name,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}
