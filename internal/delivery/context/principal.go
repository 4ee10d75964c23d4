package context

import (
	"context"

	"vyapkart/internal/domain/entity"

	"github.com/google/uuid"
)

// KeyPrincipal is the key for storing the authenticated caller in context.Context.
const KeyPrincipal ContextKey = "principal"

// Principal is the caller identified by a valid session credential.
type Principal struct {
	AccountID uuid.UUID
	Email     string
	Roles     entity.Roles
}

// HasRole reports whether the principal holds role.
func (p *Principal) HasRole(role entity.RoleName) bool {
	return p != nil && p.Roles.Contains(role)
}

// WithPrincipal returns a new context carrying the principal.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, KeyPrincipal, principal)
}

// GetPrincipal returns the authenticated caller, or false for an anonymous request.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(KeyPrincipal).(*Principal)

	return principal, ok && principal != nil
}
