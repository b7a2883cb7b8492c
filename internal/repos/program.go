package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type ProgramRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Program, error)
	ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Program, error)
	Enroll(ctx context.Context, tx *gorm.DB, row *types.UserProgram) (*types.UserProgram, error)
	ListEnrollmentsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgram, error)
}

type programRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgramRepo(db *gorm.DB, baseLog *logger.Logger) ProgramRepo {
	repoLog := baseLog.With("repo", "ProgramRepo")
	return &programRepo{db: db, log: repoLog}
}

func (r *programRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Program
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

func (r *programRepo) ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Program, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Program
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("is_public = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *programRepo) Enroll(ctx context.Context, tx *gorm.DB, row *types.UserProgram) (*types.UserProgram, error) {
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

func (r *programRepo) ListEnrollmentsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgram, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProgram
	if err := transaction.WithContext(ctx).
		Preload("Program").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
