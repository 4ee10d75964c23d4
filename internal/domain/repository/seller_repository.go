package repository

import (
	"context"
	"errors"

	"vyapkart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSellerProfileNotFound is returned when an account has no seller profile.
var ErrSellerProfileNotFound = errors.New("seller profile not found")

// SellerRepository persists seller profiles. There is at most one profile per account.
type SellerRepository interface {
	// ExistsByAccountID reports whether the account already owns a seller profile.
	ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error)

	// Create persists a new seller profile. A second profile for the same account is a storage conflict.
	Create(ctx context.Context, profile *entity.SellerProfile) error

	// FindByAccountID retrieves the seller profile of an account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.SellerProfile, error)
}
