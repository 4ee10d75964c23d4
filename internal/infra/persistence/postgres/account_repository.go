// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its local ID, together with its roles.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByExternalID retrieves the account linked to an identity provider subject.
func (repo *accountRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Account, error) {
	return repo.findOne(ctx, "external_id = ?", externalID)
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// findOne reads from the primary: reconciliation must observe rows committed by a concurrent
// request before deciding to create or link.
func (repo *accountRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where(query, args...).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	roles, err := listRoles(ctx, repo.db, accountM.ID)
	if err != nil {
		return nil, err
	}

	account := toAccountDomain(&accountM)
	account.Roles = roles

	return account, nil
}

// Create persists a new account. Roles are not written here; see RoleRepository.AssignRole.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}
	if account.Status == "" {
		account.Status = entity.AccountStatusActive
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStorageConflict.WrapMessage("account email or external id already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// LinkExternalID is a compare-and-set on external_id IS NULL.
func (repo *accountRepository) LinkExternalID(ctx context.Context, id uuid.UUID, externalID, fullName, phone string) error {
	updates := map[string]any{
		"external_id": externalID,
		"updated_at":  time.Now(),
	}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if phone != "" {
		updates["phone"] = phone
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ? AND external_id IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrStorageConflict.WrapMessage("external id already linked to another account")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to link external id")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrStorageConflict.WrapMessage("account was linked concurrently")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:        data.ID,
		Email:     data.Email,
		FullName:  data.FullName,
		Phone:     data.Phone,
		Status:    entity.AccountStatus(data.Status),
		Roles:     entity.Roles{},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.ExternalID != nil {
		account.ExternalID = *data.ExternalID
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
// An empty external id is stored as NULL so the unique index ignores unlinked accounts.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:         data.ID,
		ExternalID: nullableString(data.ExternalID),
		Email:      data.Email,
		FullName:   data.FullName,
		Phone:      data.Phone,
		Status:     data.Status.String(),
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
