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
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// FindByName looks a role up in the catalog.
func (repo *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name.String()).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role")
	}

	return &entity.Role{ID: roleM.ID, Name: entity.RoleName(roleM.Name)}, nil
}

// AssignRole inserts the (account, role) pair, ignoring an already-present pair.
func (repo *roleRepository) AssignRole(ctx context.Context, accountID uuid.UUID, roleID int64) error {
	assignment := &model.AccountRoleModel{AccountID: accountID, RoleID: roleID}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(assignment).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStorageConflict.WrapMessage("account or role no longer exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role")
	}

	return nil
}

// ListByAccountID returns the roles held by an account in assignment order.
func (repo *roleRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) (entity.Roles, error) {
	return listRoles(ctx, repo.db, accountID)
}

func listRoles(ctx context.Context, db *gorm.DB, accountID uuid.UUID) (entity.Roles, error) {
	var names []string
	err := db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.AccountRoleModel{}).
		Joins("JOIN roles ON roles.id = account_roles.role_id").
		Where("account_roles.account_id = ?", accountID).
		Order("account_roles.assigned_at, roles.id").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list account roles")
	}

	roles := make(entity.Roles, 0, len(names))
	for _, name := range names {
		roles = append(roles, entity.RoleName(name))
	}

	return roles, nil
}

// SeedRoles inserts every catalog role that is missing. It is safe to run on every start.
func SeedRoles(ctx context.Context, db *gorm.DB, catalog []entity.RoleName) error {
	for _, name := range catalog {
		roleM := &model.RoleModel{Name: name.String()}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(roleM).Error
		if err != nil {
			return errors.Wrapf(err, "failed to seed role %s", name)
		}
	}

	return nil
}
