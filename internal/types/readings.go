package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MassReading caches one day's readings fetched from the Universalis API.
type MassReading struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time      `gorm:"not null;uniqueIndex;column:date" json:"date"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null;column:data" json:"data"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (MassReading) TableName() string { return "mass_reading" }

// DailyReadingNote is a user's note on a day's readings, one per
// (user, day).
type DailyReadingNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_reading_day,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date      time.Time `gorm:"not null;index:idx_user_reading_day,unique;column:date" json:"date"`
	Notes     string    `gorm:"not null;column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (DailyReadingNote) TableName() string { return "daily_reading_note" }
