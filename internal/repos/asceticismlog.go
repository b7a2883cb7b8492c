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

type AsceticismLogRepo interface {
	UpsertByDay(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, day time.Time, patch types.LogPatch) (*types.AsceticismLog, error)
	GetByKey(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, day time.Time) (*types.AsceticismLog, error)
	GetByCommitmentAndRange(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, rangeStart, rangeEnd time.Time) ([]*types.AsceticismLog, error)
	CountByCommitment(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID) (int64, error)
}

type asceticismLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAsceticismLogRepo(db *gorm.DB, baseLog *logger.Logger) AsceticismLogRepo {
	repoLog := baseLog.With("repo", "AsceticismLogRepo")
	return &asceticismLogRepo{db: db, log: repoLog}
}

// UpsertByDay writes one day's outcome as a single
// INSERT ... ON CONFLICT (user_asceticism_id, date) DO UPDATE, so two
// concurrent calls for the same key cannot both create a row. Only the
// fields present in patch are overwritten on conflict; completed and
// updated_at are always refreshed.
func (r *asceticismLogRepo) UpsertByDay(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, day time.Time, patch types.LogPatch) (*types.AsceticismLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	row := &types.AsceticismLog{
		ID:               uuid.New(),
		UserAsceticismID: commitmentID,
		Date:             day,
		Completed:        patch.Completed,
		Value:            patch.Value,
		Notes:            patch.Notes,
		Metadata:         patch.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	assignments := map[string]interface{}{
		"completed":  patch.Completed,
		"updated_at": now,
	}
	if patch.Value != nil {
		assignments["value"] = *patch.Value
	}
	if patch.Notes != nil {
		assignments["notes"] = *patch.Notes
	}
	if patch.Metadata != nil {
		assignments["metadata"] = patch.Metadata
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_asceticism_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// Reload by key: on conflict the insert struct does not reflect the
	// merged row (retained notes/value, original id and created_at).
	return r.GetByKey(ctx, transaction, commitmentID, day)
}

func (r *asceticismLogRepo) GetByKey(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, day time.Time) (*types.AsceticismLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AsceticismLog
	err := transaction.WithContext(ctx).
		Where("user_asceticism_id = ? AND date = ?", commitmentID, day).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *asceticismLogRepo) GetByCommitmentAndRange(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID, rangeStart, rangeEnd time.Time) ([]*types.AsceticismLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AsceticismLog
	if err := transaction.WithContext(ctx).
		Where("user_asceticism_id = ? AND date >= ? AND date <= ?", commitmentID, rangeStart, rangeEnd).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *asceticismLogRepo) CountByCommitment(ctx context.Context, tx *gorm.DB, commitmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AsceticismLog{}).
		Where("user_asceticism_id = ?", commitmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
