package impl

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"vyapkart/config"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"
)

type provisioner struct {
	taxIDPattern          *regexp.Regexp
	businessNameMaxLength int
}

// NewProvisioner builds the role and seller provisioner from the seller section of the config.
func NewProvisioner(cfg *config.Config) (usecase.Provisioner, error) {
	if cfg == nil || cfg.Seller == nil {
		return nil, errors.New("seller config is required")
	}

	pattern, err := regexp.Compile(cfg.Seller.TaxIDPattern)
	if err != nil {
		return nil, errors.Wrap(err, "invalid seller tax id pattern")
	}

	return &provisioner{
		taxIDPattern:          pattern,
		businessNameMaxLength: cfg.Seller.BusinessNameMaxLength,
	}, nil
}

func (p *provisioner) ValidateRole(ctx context.Context, roles repository.RoleRepository, name string) (*entity.Role, error) {
	roleName := entity.ParseRoleName(name)
	if roleName == "" {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("role is required")
	}
	if roleName.IsPrivileged() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("role cannot be self-assigned")
	}

	role, err := roles.FindByName(ctx, roleName)
	if errors.Is(err, repository.ErrRoleNotFound) {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("role is not in the catalog")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up role")
	}

	return role, nil
}

func (p *provisioner) ValidateSellerFields(businessName, taxID string) error {
	businessName = strings.TrimSpace(businessName)
	if businessName == "" {
		return domainerrors.ErrInvalidSellerData.WithDetails("businessName is required")
	}
	if utf8.RuneCountInString(businessName) > p.businessNameMaxLength {
		return domainerrors.ErrInvalidSellerData.WithDetails("businessName is too long")
	}

	taxID = strings.TrimSpace(taxID)
	if taxID != "" && !p.taxIDPattern.MatchString(taxID) {
		return domainerrors.ErrInvalidSellerData.WithDetails("taxId has an invalid format")
	}

	return nil
}

func (p *provisioner) Provision(
	ctx context.Context,
	repos repository.RepositoryFactory,
	account *entity.Account,
	payload *usecase.RegistrationPayload,
) (*usecase.ProvisionResult, error) {
	roleRepo := repos.NewRoleRepository()

	role, err := p.ValidateRole(ctx, roleRepo, payload.Role)
	if err != nil {
		return nil, err
	}
	if role.Name == entity.RoleSeller {
		if err := p.ValidateSellerFields(payload.BusinessName, payload.TaxID); err != nil {
			return nil, err
		}
	}

	if err := roleRepo.AssignRole(ctx, account.ID, role.ID); err != nil {
		return nil, errors.Wrap(err, "failed to assign role")
	}

	result := &usecase.ProvisionResult{}

	if role.Name == entity.RoleSeller {
		profile, err := p.ensureSellerProfile(ctx, repos.NewSellerRepository(), account, payload)
		if err != nil {
			return nil, err
		}
		result.SellerProfile = profile
	}

	roles, err := roleRepo.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list account roles")
	}
	result.Roles = roles

	return result, nil
}

// ensureSellerProfile returns the profile it created, or nil when the account already had one.
func (p *provisioner) ensureSellerProfile(
	ctx context.Context,
	sellerRepo repository.SellerRepository,
	account *entity.Account,
	payload *usecase.RegistrationPayload,
) (*entity.SellerProfile, error) {
	exists, err := sellerRepo.ExistsByAccountID(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check seller profile")
	}
	if exists {
		return nil, nil
	}

	profile := &entity.SellerProfile{
		AccountID:    account.ID,
		BusinessName: strings.TrimSpace(payload.BusinessName),
		TaxID:        strings.TrimSpace(payload.TaxID),
		Status:       entity.SellerStatusPending,
	}
	if err := sellerRepo.Create(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to create seller profile")
	}

	return profile, nil
}
