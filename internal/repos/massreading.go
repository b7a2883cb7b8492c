package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type MassReadingRepo interface {
	GetByDate(ctx context.Context, tx *gorm.DB, day time.Time) (*types.MassReading, error)
	UpsertByDate(ctx context.Context, tx *gorm.DB, row *types.MassReading) error
}

type massReadingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMassReadingRepo(db *gorm.DB, baseLog *logger.Logger) MassReadingRepo {
	repoLog := baseLog.With("repo", "MassReadingRepo")
	return &massReadingRepo{db: db, log: repoLog}
}

func (r *massReadingRepo) GetByDate(ctx context.Context, tx *gorm.DB, day time.Time) (*types.MassReading, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.MassReading
	err := transaction.WithContext(ctx).
		Where("date = ?", day).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *massReadingRepo) UpsertByDate(ctx context.Context, tx *gorm.DB, row *types.MassReading) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(row).Error
}
