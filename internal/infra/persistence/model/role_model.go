package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleModel mirrors the 'roles' catalog table.
type RoleModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(32);uniqueIndex:idx_roles_name;not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// AccountRoleModel mirrors the 'account_roles' join table. The composite primary key keeps
// each (account, role) pair unique.
type AccountRoleModel struct {
	AccountID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     int64     `gorm:"primaryKey"`
	AssignedAt time.Time `gorm:"autoCreateTime"`

	Account *AccountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Role    *RoleModel    `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (AccountRoleModel) TableName() string {
	return "account_roles"
}
