// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vyapkart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when no account matches the lookup key.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// Returned accounts have Roles populated. Writes that lose a race (a unique index rejects the
// row or a compare-and-set matches nothing) fail with domain errors.ErrStorageConflict; callers
// may retry the whole unit of work.
type AccountRepository interface {
	// FindByID retrieves a single account by its local ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByExternalID retrieves the account linked to an identity provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. ID, CreatedAt and UpdatedAt are filled in on success.
	// A duplicate email or external id is a storage conflict.
	Create(ctx context.Context, account *entity.Account) error

	// LinkExternalID attaches externalID to an account that has none, optionally overwriting
	// the full name and phone when they are non-empty. It is a compare-and-set: if the account
	// was linked meanwhile (or externalID belongs to another account) a storage conflict is returned.
	LinkExternalID(ctx context.Context, id uuid.UUID, externalID, fullName, phone string) error
}
