package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type AsceticismRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Asceticism) (*types.Asceticism, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Asceticism, error)
	ListTemplates(ctx context.Context, tx *gorm.DB, category string) ([]*types.Asceticism, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type asceticismRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAsceticismRepo(db *gorm.DB, baseLog *logger.Logger) AsceticismRepo {
	repoLog := baseLog.With("repo", "AsceticismRepo")
	return &asceticismRepo{db: db, log: repoLog}
}

func (r *asceticismRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Asceticism) (*types.Asceticism, error) {
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

func (r *asceticismRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Asceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Asceticism
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *asceticismRepo) ListTemplates(ctx context.Context, tx *gorm.DB, category string) ([]*types.Asceticism, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("is_template = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var results []*types.Asceticism
	if err := query.Order("title ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *asceticismRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Asceticism{}).Error
}
