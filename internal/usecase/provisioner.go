package usecase

import (
	"context"

	"vyapkart/internal/domain/entity"
	"vyapkart/internal/domain/repository"
)

// ProvisionResult describes what Provision wrote.
type ProvisionResult struct {
	// Roles is the account's full role set after provisioning, in assignment order.
	Roles entity.Roles
	// SellerProfile is the profile created by this call, nil when none was created.
	SellerProfile *entity.SellerProfile
}

// Provisioner validates requested roles and seller details and writes role assignments and
// seller profiles. It never commits on its own: writes go through the supplied repositories.
type Provisioner interface {
	// ValidateRole canonicalises name and checks it is self-assignable and present in the catalog.
	ValidateRole(ctx context.Context, roles repository.RoleRepository, name string) (*entity.Role, error)

	// ValidateSellerFields checks the business name and optional tax id.
	ValidateSellerFields(businessName, taxID string) error

	// Provision assigns the payload's role and, for sellers, creates a pending seller profile
	// when the account has none.
	Provision(ctx context.Context, repos repository.RepositoryFactory, account *entity.Account, payload *RegistrationPayload) (*ProvisionResult, error)
}
