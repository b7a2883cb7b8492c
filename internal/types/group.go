package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
	GroupRoleMentor = "mentor"
)

type Group struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	InviteCode  *string        `gorm:"uniqueIndex;column:invite_code" json:"invite_code,omitempty"`
	Avatar      string         `gorm:"column:avatar" json:"avatar,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Members     []GroupMember  `gorm:"constraint:OnDelete:CASCADE;foreignKey:GroupID;references:ID" json:"members,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Group) TableName() string { return "group" }

type GroupMember struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_group_user,unique" json:"group_id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_group_user,unique" json:"user_id"`
	User     *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Role     string         `gorm:"not null;default:'member';column:role" json:"role"`
	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
}

func (GroupMember) TableName() string { return "group_member" }
