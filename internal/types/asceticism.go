package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tracking types for a practice. Boolean practices record done/not-done,
// numeric ones carry a value per day, text ones carry notes only.
const (
	TrackingBoolean = "boolean"
	TrackingNumeric = "numeric"
	TrackingText    = "text"
)

// Asceticism is a trackable practice definition, either a shared template
// or a user-created custom practice.
type Asceticism struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Category    string         `gorm:"not null;index;column:category" json:"category"`
	Icon        string         `gorm:"column:icon" json:"icon,omitempty"`
	IsTemplate  bool           `gorm:"not null;default:false;column:is_template" json:"is_template"`
	CreatorID   *uuid.UUID     `gorm:"type:uuid;column:creator_id" json:"creator_id,omitempty"`
	Creator     *User          `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Type        string         `gorm:"not null;default:'boolean';column:type" json:"type"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Asceticism) TableName() string { return "asceticism" }
