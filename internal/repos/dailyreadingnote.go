package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/types"
)

type DailyReadingNoteRepo interface {
	UpsertByUserAndDate(ctx context.Context, tx *gorm.DB, row *types.DailyReadingNote) (*types.DailyReadingNote, error)
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.DailyReadingNote, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailyReadingNote, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyReadingNote, error)
	FullDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type dailyReadingNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyReadingNoteRepo(db *gorm.DB, baseLog *logger.Logger) DailyReadingNoteRepo {
	repoLog := baseLog.With("repo", "DailyReadingNoteRepo")
	return &dailyReadingNoteRepo{db: db, log: repoLog}
}

func (r *dailyReadingNoteRepo) UpsertByUserAndDate(ctx context.Context, tx *gorm.DB, row *types.DailyReadingNote) (*types.DailyReadingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByUserAndDate(ctx, transaction, row.UserID, row.Date)
}

func (r *dailyReadingNoteRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.DailyReadingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.DailyReadingNote
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *dailyReadingNoteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailyReadingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.DailyReadingNote
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

func (r *dailyReadingNoteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyReadingNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 30
	}

	var results []*types.DailyReadingNote
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyReadingNoteRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.DailyReadingNote{}).Error
}
