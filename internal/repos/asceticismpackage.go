package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type AsceticismPackageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AsceticismPackage) (*types.AsceticismPackage, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AsceticismPackage, error)
	ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.AsceticismPackage, error)
}

type asceticismPackageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAsceticismPackageRepo(db *gorm.DB, baseLog *logger.Logger) AsceticismPackageRepo {
	repoLog := baseLog.With("repo", "AsceticismPackageRepo")
	return &asceticismPackageRepo{db: db, log: repoLog}
}

func (r *asceticismPackageRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AsceticismPackage) (*types.AsceticismPackage, error) {
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

func (r *asceticismPackageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AsceticismPackage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AsceticismPackage
	err := transaction.WithContext(ctx).
		Preload("Items.Asceticism").
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

func (r *asceticismPackageRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.AsceticismPackage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AsceticismPackage
	if err := transaction.WithContext(ctx).
		Preload("Items.Asceticism").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
