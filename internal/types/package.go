package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AsceticismPackage is a published collection of practices.
type AsceticismPackage struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null;column:creator_id" json:"creator_id"`
	IsPublished bool           `gorm:"not null;default:false;column:is_published" json:"is_published"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Items       []PackageItem  `gorm:"constraint:OnDelete:CASCADE;foreignKey:PackageID;references:ID" json:"items,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (AsceticismPackage) TableName() string { return "asceticism_package" }

type PackageItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"package_id"`
	AsceticismID uuid.UUID      `gorm:"type:uuid;not null" json:"asceticism_id"`
	Asceticism   *Asceticism    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AsceticismID;references:ID" json:"asceticism,omitempty"`
	Order        int            `gorm:"not null;default:0;column:item_order" json:"order"`
	Notes        string         `gorm:"column:notes" json:"notes,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
}

func (PackageItem) TableName() string { return "package_item" }
