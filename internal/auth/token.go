package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "stockroom"

// DefaultTokenTTL is how long an issued token remains valid.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned when a token fails verification for any
// reason: bad signature, wrong algorithm, malformed claims, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the user/organization binding carried by a verified token.
// It is the sole source of tenant identity for the remainder of a request.
type Identity struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies the signed bearer tokens that bind a user to
// exactly one organization. Tokens are HS256 JWTs signed with a server-held
// secret; nothing is stored server-side.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier. The secret must be at least
// 32 bytes (256 bits) for HMAC-SHA256.
func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) < 32 {
		return nil, errors.New("token signing secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Tokens{secret: secret, ttl: ttl}, nil
}

// Issue creates a signed token binding the user to its organization.
func (t *Tokens) Issue(userID, orgID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		UserID: userID.String(),
		OrgID:  orgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks a token's signature, algorithm and expiry and returns the
// identity it carries. All failures collapse into ErrInvalidToken; the
// caller should not reveal which check failed.
func (t *Tokens) Verify(tokenString string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user_id claim", ErrInvalidToken)
	}

	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad org_id claim", ErrInvalidToken)
	}

	return &Identity{UserID: userID, OrgID: orgID}, nil
}
