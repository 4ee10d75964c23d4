package repository

import (
	"context"
	"errors"

	"vyapkart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a role name is not in the catalog.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository manages the role catalog and role assignments.
type RoleRepository interface {
	// FindByName looks a role up in the catalog.
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)

	// AssignRole inserts the (account, role) pair. Assigning a role the account already holds is a no-op.
	AssignRole(ctx context.Context, accountID uuid.UUID, roleID int64) error

	// ListByAccountID returns the roles held by an account in assignment order.
	ListByAccountID(ctx context.Context, accountID uuid.UUID) (entity.Roles, error)
}
