package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Group) (*types.Group, error)
	GetByInviteCode(ctx context.Context, tx *gorm.DB, code string) (*types.Group, error)
	AddMember(ctx context.Context, tx *gorm.DB, row *types.GroupMember) (*types.GroupMember, error)
	CountMembershipsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	repoLog := baseLog.With("repo", "GroupRepo")
	return &groupRepo{db: db, log: repoLog}
}

func (r *groupRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Group) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *groupRepo) GetByInviteCode(ctx context.Context, tx *gorm.DB, code string) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Group
	err := transaction.WithContext(ctx).
		Preload("Members").
		Where("invite_code = ?", code).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *groupRepo) AddMember(ctx context.Context, tx *gorm.DB, row *types.GroupMember) (*types.GroupMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *groupRepo) CountMembershipsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.GroupMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
