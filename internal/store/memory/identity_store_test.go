package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

func newSignup(t *testing.T, email, orgName string) (*models.Organization, *models.User) {
	t.Helper()
	orgID, err := uuid.NewV7()
	require.NoError(t, err)
	userID, err := uuid.NewV7()
	require.NoError(t, err)
	now := time.Now()

	org := &models.Organization{
		OrgID:     orgID,
		Name:      orgName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &models.User{
		UserID:       userID,
		OrgID:        orgID,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return org, user
}

func TestMemoryIdentityStore_CreateUserWithOrganization(t *testing.T) {
	t.Run("creates user and organization", func(t *testing.T) {
		st := NewIdentityStore()
		ctx := context.Background()

		org, user := newSignup(t, "jane@example.com", "Acme")
		require.NoError(t, st.CreateUserWithOrganization(ctx, org, user))

		got, err := st.GetUserByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.Equal(t, user.UserID, got.UserID)
		require.Equal(t, org.OrgID, got.OrgID)

		gotOrg, err := st.GetOrganization(ctx, org.OrgID)
		require.NoError(t, err)
		require.Equal(t, "Acme", gotOrg.Name)
	})

	t.Run("duplicate email leaves no partial rows", func(t *testing.T) {
		st := NewIdentityStore()
		ctx := context.Background()

		org, user := newSignup(t, "jane@example.com", "Acme")
		require.NoError(t, st.CreateUserWithOrganization(ctx, org, user))

		org2, user2 := newSignup(t, "jane@example.com", "Other Co")
		err := st.CreateUserWithOrganization(ctx, org2, user2)
		require.ErrorIs(t, err, store.ErrEmailTaken)

		// The second organization must not exist
		_, err = st.GetOrganization(ctx, org2.OrgID)
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)

		// The original binding is untouched
		got, err := st.GetUserByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.Equal(t, org.OrgID, got.OrgID)
	})
}

func TestMemoryIdentityStore_GetUserByEmail(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		st := NewIdentityStore()

		_, err := st.GetUserByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
