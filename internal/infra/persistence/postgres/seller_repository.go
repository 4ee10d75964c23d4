package postgres

import (
	"context"

	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// sellerRepository implements the domain.SellerRepository interface using GORM.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

// ExistsByAccountID reports whether the account already owns a seller profile.
func (repo *sellerRepository) ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.SellerProfileModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check seller profile")
	}

	return count > 0, nil
}

// Create persists a new seller profile.
func (repo *sellerRepository) Create(ctx context.Context, profile *entity.SellerProfile) error {
	if profile.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate seller profile id")
		}
		profile.ID = id
	}
	if profile.Status == "" {
		profile.Status = entity.SellerStatusPending
	}

	profileM := fromSellerProfileDomain(profile)
	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStorageConflict.WrapMessage("seller profile already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStorageConflict.WrapMessage("account no longer exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create seller profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByAccountID retrieves the seller profile of an account.
func (repo *sellerRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.SellerProfile, error) {
	var profileM model.SellerProfileModel
	if err := repo.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller profile")
	}

	return toSellerProfileDomain(&profileM), nil
}

// toSellerProfileDomain converts a GORM SellerProfileModel to a domain SellerProfile entity.
func toSellerProfileDomain(data *model.SellerProfileModel) *entity.SellerProfile {
	if data == nil {
		return nil
	}

	return &entity.SellerProfile{
		ID:             data.ID,
		AccountID:      data.AccountID,
		BusinessName:   data.BusinessName,
		TaxID:          derefString(data.TaxID),
		Status:         entity.SellerStatus(data.Status),
		OnboardedAt:    data.OnboardedAt,
		RejectedReason: derefString(data.RejectedReason),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromSellerProfileDomain converts a domain SellerProfile entity to a GORM SellerProfileModel.
func fromSellerProfileDomain(data *entity.SellerProfile) *model.SellerProfileModel {
	if data == nil {
		return nil
	}

	return &model.SellerProfileModel{
		ID:             data.ID,
		AccountID:      data.AccountID,
		BusinessName:   data.BusinessName,
		TaxID:          nullableString(data.TaxID),
		Status:         string(data.Status),
		OnboardedAt:    data.OnboardedAt,
		RejectedReason: nullableString(data.RejectedReason),
	}
}
