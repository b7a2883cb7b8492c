package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Commitment lifecycle states. Analytics only ever read "active" rows;
// rows are archived rather than deleted in normal flow.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// UserAsceticism is a user's adoption of a practice: the commitment that
// owns the daily logs.
type UserAsceticism struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AsceticismID uuid.UUID      `gorm:"type:uuid;not null;index" json:"asceticism_id"`
	Asceticism   *Asceticism    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AsceticismID;references:ID" json:"asceticism,omitempty"`
	Status       string         `gorm:"not null;default:'active';column:status" json:"status"`
	StartDate    time.Time      `gorm:"not null;column:start_date" json:"start_date"`
	EndDate      *time.Time     `gorm:"column:end_date" json:"end_date,omitempty"`
	TargetValue  *float64       `gorm:"column:target_value" json:"target_value,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Logs         []AsceticismLog `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserAsceticismID;references:ID" json:"logs,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserAsceticism) TableName() string { return "user_asceticism" }
