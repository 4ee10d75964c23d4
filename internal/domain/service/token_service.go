package service

import (
	"vyapkart/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims defines the custom claims for session tokens.
type SessionClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *SessionClaims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// SessionIssuer mints and decodes locally scoped session credentials.
type SessionIssuer interface {
	// Issue signs a credential for the account carrying the given roles in order.
	Issue(account *entity.Account, roles entity.Roles) (*entity.SessionCredential, error)

	// Decode validates a credential and returns its claims. Every failure is reported as
	// ErrInvalidCredential from the domain errors package.
	Decode(token string) (*SessionClaims, error)
}
