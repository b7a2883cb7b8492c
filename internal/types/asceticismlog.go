package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AsceticismLog is one day's recorded outcome for a commitment. The unique
// compound index on (user_asceticism_id, date) is the upsert anchor: at
// most one row per commitment and calendar day. Date is always UTC
// midnight.
type AsceticismLog struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserAsceticismID uuid.UUID       `gorm:"type:uuid;not null;index:idx_commitment_day,unique" json:"user_asceticism_id"`
	UserAsceticism   *UserAsceticism `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserAsceticismID;references:ID" json:"user_asceticism,omitempty"`
	Date             time.Time       `gorm:"not null;index:idx_commitment_day,unique;column:date" json:"date"`
	Completed        bool            `gorm:"not null;default:false;column:completed" json:"completed"`
	Value            *float64        `gorm:"column:value" json:"value,omitempty"`
	Notes            *string         `gorm:"column:notes" json:"notes,omitempty"`
	Metadata         datatypes.JSON  `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (AsceticismLog) TableName() string { return "asceticism_log" }

// LogPatch is the partial-update shape for the daily log upsert. A nil
// pointer leaves the stored field untouched; Completed always has a value
// and is always refreshed.
type LogPatch struct {
	Completed bool
	Value     *float64
	Notes     *string
	Metadata  datatypes.JSON
}
