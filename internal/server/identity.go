package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/stockroom/internal/auth"
	"github.com/wolfeidau/stockroom/internal/models"
	"github.com/wolfeidau/stockroom/internal/store"
)

type signupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organizationName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// handleSignup creates an organization and its first user in one store
// operation, then issues a token bound to the new organization.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.OrganizationName == "" {
		writeError(w, http.StatusBadRequest, "email, password and organizationName are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	orgID, err := uuid.NewV7()
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	userID, err := uuid.NewV7()
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	now := time.Now().UTC()

	org := &models.Organization{
		OrgID:     orgID,
		Name:      req.OrganizationName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	user := &models.User{
		UserID:       userID,
		OrgID:        orgID,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.identity.CreateUserWithOrganization(r.Context(), org, user); err != nil {
		writeStoreError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("org_id", orgID.String()).
		Str("user_id", userID.String()).
		Msg("organization signed up")

	token, err := s.tokens.Issue(user.UserID, user.OrgID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// handleLogin verifies credentials and issues a token. Unknown emails and
// wrong passwords produce the same response so neither leaks which one was
// at fault.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.identity.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		writeStoreError(w, r, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.UserID, user.OrgID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// handleOrganization returns the caller's organization record, resolved from
// the verified token identity.
func (s *Server) handleOrganization(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	org, err := s.identity.GetOrganization(r.Context(), identity.OrgID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}
