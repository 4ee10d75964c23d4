package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 generated by the repository.
type AccountModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID *string   `gorm:"type:varchar(128);uniqueIndex:idx_accounts_external_id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex:idx_accounts_email;not null"`
	FullName   string    `gorm:"type:varchar(255)"`
	Phone      string    `gorm:"type:varchar(20)"`
	Status     string    `gorm:"type:varchar(16);not null;default:ACTIVE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
