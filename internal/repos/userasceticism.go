package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type UserAsceticismRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UserAsceticism) (*types.UserAsceticism, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserAsceticism, error)
	GetActiveLink(ctx context.Context, tx *gorm.DB, userID, asceticismID uuid.UUID) (*types.UserAsceticism, error)
	GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAsceticism, error)
	GetActiveByUserWithLogs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rangeStart, rangeEnd time.Time) ([]*types.UserAsceticism, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	UpdateTargetValue(ctx context.Context, tx *gorm.DB, id uuid.UUID, target *float64) error
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type userAsceticismRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAsceticismRepo(db *gorm.DB, baseLog *logger.Logger) UserAsceticismRepo {
	repoLog := baseLog.With("repo", "UserAsceticismRepo")
	return &userAsceticismRepo{db: db, log: repoLog}
}

func (r *userAsceticismRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserAsceticism) (*types.UserAsceticism, error) {
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

func (r *userAsceticismRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserAsceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserAsceticism
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userAsceticismRepo) GetActiveLink(ctx context.Context, tx *gorm.DB, userID, asceticismID uuid.UUID) (*types.UserAsceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserAsceticism
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND asceticism_id = ? AND status = ?", userID, asceticismID, types.StatusActive).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userAsceticismRepo) GetActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAsceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserAsceticism
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Asceticism").
		Where("user_id = ? AND status = ?", userID, types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveByUserWithLogs loads a user's active commitments joined with
// their practice definitions and the logs falling inside
// [rangeStart, rangeEnd], logs ordered by day ascending.
func (r *userAsceticismRepo) GetActiveByUserWithLogs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rangeStart, rangeEnd time.Time) ([]*types.UserAsceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserAsceticism
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Asceticism").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ? AND date <= ?", rangeStart, rangeEnd).Order("date ASC")
		}).
		Where("user_id = ? AND status = ?", userID, types.StatusActive).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userAsceticismRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserAsceticism{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *userAsceticismRepo) UpdateTargetValue(ctx context.Context, tx *gorm.DB, id uuid.UUID, target *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserAsceticism{}).
		Where("id = ?", id).
		Update("target_value", target).Error
}

func (r *userAsceticismRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserAsceticism{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FullDeleteByIDs removes commitments and relies on the cascade FK to drop
// their logs. Administrative path only; normal flow archives instead.
func (r *userAsceticismRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.UserAsceticism{}).Error
}
