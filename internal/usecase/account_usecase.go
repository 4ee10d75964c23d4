package usecase

import (
	"context"

	"vyapkart/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountProfile is the caller's own view of their account.
type AccountProfile struct {
	Account *entity.Account
	// Seller is nil unless the account holds the SELLER role and a profile exists.
	Seller *entity.SellerProfile
}

// AccountUsecase defines read operations on the authenticated caller's account.
type AccountUsecase interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*AccountProfile, error)
}
