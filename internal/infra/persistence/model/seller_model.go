package model

import (
	"time"

	"github.com/google/uuid"
)

// SellerProfileModel mirrors the 'seller_profiles' table. AccountID references accounts.id (UUID)
// and is unique, so an account owns at most one profile.
type SellerProfileModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID      uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_seller_profiles_account_id;not null"`
	BusinessName   string     `gorm:"type:varchar(255);not null"`
	TaxID          *string    `gorm:"type:varchar(32)"`
	Status         string     `gorm:"type:varchar(16);not null;default:PENDING"`
	OnboardedAt    *time.Time
	RejectedReason *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}
