package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Program is a structured schedule of practices over a day range.
type Program struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	IsPublic    bool           `gorm:"not null;default:false;column:is_public" json:"is_public"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null;column:creator_id" json:"creator_id"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Items       []ProgramItem  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramID;references:ID" json:"items,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Program) TableName() string { return "program" }

type ProgramItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"program_id"`
	AsceticismID uuid.UUID      `gorm:"type:uuid;not null" json:"asceticism_id"`
	Asceticism   *Asceticism    `gorm:"foreignKey:AsceticismID;references:ID" json:"asceticism,omitempty"`
	DayStart     int            `gorm:"not null;default:1;column:day_start" json:"day_start"`
	DayEnd       *int           `gorm:"column:day_end" json:"day_end,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
}

func (ProgramItem) TableName() string { return "program_item" }

type UserProgram struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ProgramID uuid.UUID      `gorm:"type:uuid;not null;index" json:"program_id"`
	Program   *Program       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	StartDate time.Time      `gorm:"not null;column:start_date" json:"start_date"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (UserProgram) TableName() string { return "user_program" }
