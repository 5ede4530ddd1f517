package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

// IdentityStore implements store.IdentityStore using in-memory storage.
// This implementation is for testing and local development - data is lost
// on restart.
type IdentityStore struct {
	mu sync.RWMutex

	usersByEmail  map[string]*models.User            // email -> User
	organizations map[uuid.UUID]*models.Organization // org_id -> Organization
}

// NewIdentityStore creates a new in-memory identity store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		usersByEmail:  make(map[string]*models.User),
		organizations: make(map[uuid.UUID]*models.Organization),
	}
}

// CreateUserWithOrganization atomically creates an organization and its
// first user. The email check and both writes happen under one lock so a
// duplicate email leaves no partial state.
func (s *IdentityStore) CreateUserWithOrganization(ctx context.Context, org *models.Organization, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[user.Email]; exists {
		return store.ErrEmailTaken
	}

	// Clone to avoid external modifications
	orgClone := *org
	userClone := *user
	s.organizations[org.OrgID] = &orgClone
	s.usersByEmail[user.Email] = &userClone

	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *IdentityStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByEmail[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

// GetOrganization retrieves an organization by ID.
func (s *IdentityStore) GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, exists := s.organizations[orgID]
	if !exists {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *org
	return &clone, nil
}
