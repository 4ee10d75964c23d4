package entity

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus tracks the review state of a seller application.
type SellerStatus string

const (
	// SellerStatusPending is the state of every newly provisioned seller profile.
	SellerStatusPending SellerStatus = "PENDING"
	// SellerStatusApproved sellers may list products.
	SellerStatusApproved SellerStatus = "APPROVED"
	// SellerStatusRejected applications were declined by the back office.
	SellerStatusRejected SellerStatus = "REJECTED"
)

// SellerProfile holds the business data of an account with the SELLER role.
// There is at most one profile per account.
type SellerProfile struct {
	ID             uuid.UUID
	AccountID      uuid.UUID    // One-to-one link to Account.ID.
	BusinessName   string       // Registered business name, at most 255 characters.
	TaxID          string       // Optional tax identifier (GSTIN by default).
	Status         SellerStatus // Review state.
	OnboardedAt    *time.Time   // Set by the back office on approval.
	RejectedReason string       // Set by the back office on rejection.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
