// ABOUTME: Session token issuance and parsing for Yi Connect actors.
// ABOUTME: Always enforces HS256 and expiration — never call jwt.Parse directly.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is what the platform's session layer resolves an actor to:
// their identity, assigned role names, home chapter, and — for external
// coordinators — the institution their rows are scoped to.
type SessionClaims struct {
	jwt.RegisteredClaims
	// UserID is the authenticated actor's UUID. The json:"sub" tag
	// intentionally shadows RegisteredClaims.Subject so "sub" serializes as a
	// UUID string; encoding/json picks the outermost field on tag collision.
	UserID uuid.UUID `json:"sub"`
	// Roles holds the actor's assigned role names, validated downstream by
	// the authz package. An actor commonly holds more than one.
	Roles []string `json:"roles"`
	// ChapterID is the actor's home chapter.
	ChapterID uuid.UUID `json:"chapter_id"`
	// InstitutionID is set only for external coordinator actors; data-access
	// code filters their rows to this institution.
	InstitutionID *uuid.UUID `json:"institution_id,omitempty"`
}

// IssueSessionToken creates a signed HS256 session token for an actor.
// The registered claims are set here; callers fill only the actor fields.
func IssueSessionToken(secret []byte, claims SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates and parses an HS256 session token. Returns an
// error if the token is expired, uses a wrong algorithm, or is malformed.
func ParseSessionToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return claims, nil
}
