package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/normalization"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/stats"
	"github.com/projectdesert/backend/internal/types"
)

const storageTimeout = 5 * time.Second

// RecordDayInput is one day's outcome for a commitment. Nil optional
// fields leave the stored values untouched on update.
type RecordDayInput struct {
	UserAsceticismID uuid.UUID
	Date             string
	Completed        bool
	Value            *float64
	Notes            *string
	Metadata         datatypes.JSON
}

// PracticeSummary is the slice of the practice definition echoed in a
// progress report.
type PracticeSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Icon     string    `json:"icon,omitempty"`
	Type     string    `json:"type"`
}

// ReportLogEntry is one day's log echoed in a progress report.
type ReportLogEntry struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Value     *float64  `json:"value,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// CommitmentReport is the per-commitment block of a progress report.
type CommitmentReport struct {
	UserAsceticismID uuid.UUID        `json:"userAsceticismId"`
	Asceticism       PracticeSummary  `json:"asceticism"`
	StartDate        time.Time        `json:"startDate"`
	Stats            stats.Stats      `json:"stats"`
	Logs             []ReportLogEntry `json:"logs"`
}

type ProgressService interface {
	RecordDay(ctx context.Context, userID uuid.UUID, in RecordDayInput) (*types.AsceticismLog, error)
	BuildReport(ctx context.Context, userID uuid.UUID, startRaw, endRaw string) ([]*CommitmentReport, error)
}

type progressService struct {
	db       *gorm.DB
	log      *logger.Logger
	uaRepo   repos.UserAsceticismRepo
	logsRepo repos.AsceticismLogRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, uaRepo repos.UserAsceticismRepo, logsRepo repos.AsceticismLogRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:       db,
		log:      serviceLog,
		uaRepo:   uaRepo,
		logsRepo: logsRepo,
	}
}

// RecordDay upserts the daily log for (commitment, day). Identical calls
// are idempotent: the unique compound key turns a concurrent duplicate
// insert into an update. A transient storage failure is retried once
// before surfacing.
func (ps *progressService) RecordDay(ctx context.Context, userID uuid.UUID, in RecordDayInput) (*types.AsceticismLog, error) {
	day, err := normalization.ParseDay(in.Date)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	commitment, err := ps.uaRepo.GetByID(ctx, nil, in.UserAsceticismID)
	if err != nil {
		return nil, ps.storeError("lookup commitment", err)
	}
	if commitment == nil || commitment.UserID != userID {
		return nil, apierr.CommitmentNotFound(fmt.Errorf("commitment %s not found", in.UserAsceticismID))
	}

	patch := types.LogPatch{
		Completed: in.Completed,
		Value:     in.Value,
		Notes:     in.Notes,
		Metadata:  in.Metadata,
	}

	row, err := ps.logsRepo.UpsertByDay(ctx, nil, commitment.ID, day, patch)
	if err != nil && repos.IsRetryableWriteError(err) {
		ps.log.Warn("Retrying log upsert after transient conflict", "commitment_id", commitment.ID, "day", day, "error", err)
		row, err = ps.logsRepo.UpsertByDay(ctx, nil, commitment.ID, day, patch)
	}
	if err != nil {
		return nil, ps.storeError("upsert daily log", err)
	}
	return row, nil
}

// BuildReport assembles per-commitment progress over [start, end] for all
// of the user's active commitments, in commitment retrieval order.
// Aggregation fans out per commitment and stops early once the caller's
// context is gone.
func (ps *progressService) BuildReport(ctx context.Context, userID uuid.UUID, startRaw, endRaw string) ([]*CommitmentReport, error) {
	rangeStart, err := normalization.ParseDay(startRaw)
	if err != nil {
		return nil, err
	}
	rangeEnd, err := normalization.ParseDay(endRaw)
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	commitments, err := ps.uaRepo.GetActiveByUserWithLogs(loadCtx, nil, userID, rangeStart, rangeEnd)
	if err != nil {
		return nil, ps.storeError("load active commitments", err)
	}

	reports := make([]*CommitmentReport, len(commitments))
	g, gctx := errgroup.WithContext(ctx)
	for i, ua := range commitments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = buildCommitmentReport(ua, rangeStart, rangeEnd)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func buildCommitmentReport(ua *types.UserAsceticism, rangeStart, rangeEnd time.Time) *CommitmentReport {
	entries := make([]stats.Entry, 0, len(ua.Logs))
	echoed := make([]ReportLogEntry, 0, len(ua.Logs))
	for _, l := range ua.Logs {
		entries = append(entries, stats.Entry{Day: l.Date, Completed: l.Completed})
		echoed = append(echoed, ReportLogEntry{
			Date:      l.Date,
			Completed: l.Completed,
			Value:     l.Value,
			Notes:     l.Notes,
		})
	}

	report := &CommitmentReport{
		UserAsceticismID: ua.ID,
		StartDate:        ua.StartDate,
		Stats:            stats.Aggregate(entries, rangeStart, rangeEnd),
		Logs:             echoed,
	}
	if ua.Asceticism != nil {
		report.Asceticism = PracticeSummary{
			ID:       ua.Asceticism.ID,
			Title:    ua.Asceticism.Title,
			Category: ua.Asceticism.Category,
			Icon:     ua.Asceticism.Icon,
			Type:     ua.Asceticism.Type,
		}
	}
	return report
}

func (ps *progressService) storeError(op string, err error) error {
	if repos.IsRetryableWriteError(err) {
		return apierr.TransientStoreFailure(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
