package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/pointers"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/types"
)

type progressFixture struct {
	db      *gorm.DB
	service ProgressService
	userID  uuid.UUID
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.User{},
		&types.Asceticism{},
		&types.UserAsceticism{},
		&types.AsceticismLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    "ascetic@example.com",
		Password: "hashed",
		Role:     types.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	uaRepo := repos.NewUserAsceticismRepo(db, log)
	logsRepo := repos.NewAsceticismLogRepo(db, log)
	return &progressFixture{
		db:      db,
		service: NewProgressService(db, log, uaRepo, logsRepo),
		userID:  user.ID,
	}
}

func (f *progressFixture) addCommitment(t *testing.T, title string) uuid.UUID {
	t.Helper()

	practice := &types.Asceticism{
		ID:         uuid.New(),
		Title:      title,
		Category:   "prayer",
		IsTemplate: true,
		Type:       types.TrackingBoolean,
	}
	if err := f.db.Create(practice).Error; err != nil {
		t.Fatalf("seed practice: %v", err)
	}

	commitment := &types.UserAsceticism{
		ID:           uuid.New(),
		UserID:       f.userID,
		AsceticismID: practice.ID,
		Status:       types.StatusActive,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := f.db.Create(commitment).Error; err != nil {
		t.Fatalf("seed commitment: %v", err)
	}
	return commitment.ID
}

func TestRecordDayNormalizesTimestamps(t *testing.T) {
	f := newProgressFixture(t)
	commitmentID := f.addCommitment(t, "Night prayer")
	ctx := context.Background()

	// A bare date and a full timestamp on the same calendar day must land
	// on the same row.
	first, err := f.service.RecordDay(ctx, f.userID, RecordDayInput{
		UserAsceticismID: commitmentID,
		Date:             "2024-01-15",
		Completed:        true,
	})
	if err != nil {
		t.Fatalf("record bare date: %v", err)
	}

	second, err := f.service.RecordDay(ctx, f.userID, RecordDayInput{
		UserAsceticismID: commitmentID,
		Date:             "2024-01-15T22:45:00Z",
		Completed:        true,
		Notes:            pointers.String("late entry"),
	})
	if err != nil {
		t.Fatalf("record timestamp: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("same calendar day produced two rows")
	}
	if second.Notes == nil || *second.Notes != "late entry" {
		t.Fatalf("notes not applied on update: %v", second.Notes)
	}
}

func TestRecordDayRejectsMalformedDate(t *testing.T) {
	f := newProgressFixture(t)
	commitmentID := f.addCommitment(t, "Fasting")

	_, err := f.service.RecordDay(context.Background(), f.userID, RecordDayInput{
		UserAsceticismID: commitmentID,
		Date:             "01/15/2024",
		Completed:        true,
	})
	if err == nil {
		t.Fatalf("expected error for malformed date")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeInvalidDateFormat {
		t.Fatalf("want %s, got %v", apierr.CodeInvalidDateFormat, err)
	}
}

func TestRecordDayUnknownCommitment(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.service.RecordDay(context.Background(), f.userID, RecordDayInput{
		UserAsceticismID: uuid.New(),
		Date:             "2024-01-15",
		Completed:        true,
	})
	if err == nil {
		t.Fatalf("expected error for unknown commitment")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeCommitmentNotFound {
		t.Fatalf("want %s, got %v", apierr.CodeCommitmentNotFound, err)
	}
}

func TestRecordDayEnforcesOwnership(t *testing.T) {
	f := newProgressFixture(t)
	commitmentID := f.addCommitment(t, "Silence")

	stranger := uuid.New()
	_, err := f.service.RecordDay(context.Background(), stranger, RecordDayInput{
		UserAsceticismID: commitmentID,
		Date:             "2024-01-15",
		Completed:        true,
	})
	if err == nil {
		t.Fatalf("expected error for foreign commitment")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeCommitmentNotFound {
		t.Fatalf("foreign commitment must look like a missing one, got %v", err)
	}
}

func TestBuildReportAggregatesWindow(t *testing.T) {
	f := newProgressFixture(t)
	commitmentID := f.addCommitment(t, "Cold showers")
	ctx := context.Background()

	// Completed Jan 1, 2 and 4; Jan 3 and 5 unlogged.
	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-04"} {
		if _, err := f.service.RecordDay(ctx, f.userID, RecordDayInput{
			UserAsceticismID: commitmentID,
			Date:             date,
			Completed:        true,
		}); err != nil {
			t.Fatalf("record %s: %v", date, err)
		}
	}

	reports, err := f.service.BuildReport(ctx, f.userID, "2024-01-01", "2024-01-05")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("want 1 commitment report, got %d", len(reports))
	}

	report := reports[0]
	if report.UserAsceticismID != commitmentID {
		t.Fatalf("report for wrong commitment")
	}
	if report.Asceticism.Title != "Cold showers" {
		t.Fatalf("practice summary missing, got %+v", report.Asceticism)
	}
	if len(report.Logs) != 3 {
		t.Fatalf("want 3 echoed logs, got %d", len(report.Logs))
	}

	st := report.Stats
	if st.TotalDays != 5 || st.CompletedDays != 3 {
		t.Fatalf("day counts wrong: %+v", st)
	}
	if st.CompletionRate != 60.0 {
		t.Fatalf("want 60.0 completion, got %v", st.CompletionRate)
	}
	if st.CurrentStreak != 1 || st.LongestStreak != 2 {
		t.Fatalf("streaks wrong: current=%d longest=%d", st.CurrentStreak, st.LongestStreak)
	}
}

func TestBuildReportScopesLogsToRange(t *testing.T) {
	f := newProgressFixture(t)
	commitmentID := f.addCommitment(t, "Scripture reading")
	ctx := context.Background()

	for _, date := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		if _, err := f.service.RecordDay(ctx, f.userID, RecordDayInput{
			UserAsceticismID: commitmentID,
			Date:             date,
			Completed:        true,
		}); err != nil {
			t.Fatalf("record %s: %v", date, err)
		}
	}

	reports, err := f.service.BuildReport(ctx, f.userID, "2024-02-01", "2024-02-29")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("want 1 report, got %d", len(reports))
	}
	if len(reports[0].Logs) != 1 {
		t.Fatalf("logs outside the window leaked in: %d", len(reports[0].Logs))
	}
	if reports[0].Stats.CompletedDays != 1 {
		t.Fatalf("stats should only count in-window days: %+v", reports[0].Stats)
	}
}

func TestBuildReportMultipleCommitments(t *testing.T) {
	f := newProgressFixture(t)
	firstID := f.addCommitment(t, "Alpha")
	secondID := f.addCommitment(t, "Beta")
	ctx := context.Background()

	if _, err := f.service.RecordDay(ctx, f.userID, RecordDayInput{
		UserAsceticismID: secondID,
		Date:             "2024-01-02",
		Completed:        true,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	reports, err := f.service.BuildReport(ctx, f.userID, "2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("want a report per active commitment, got %d", len(reports))
	}
	// Creation order is preserved.
	if reports[0].UserAsceticismID != firstID || reports[1].UserAsceticismID != secondID {
		t.Fatalf("report order does not follow commitment creation order")
	}
	if reports[0].Stats.CompletedDays != 0 {
		t.Fatalf("untouched commitment should report zero completions")
	}
	if reports[1].Stats.CompletedDays != 1 {
		t.Fatalf("logged commitment should report one completion")
	}
}

func TestBuildReportRejectsBadBounds(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.service.BuildReport(context.Background(), f.userID, "not-a-date", "2024-01-05")
	if err == nil {
		t.Fatalf("expected error for malformed start date")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeInvalidDateFormat {
		t.Fatalf("want %s, got %v", apierr.CodeInvalidDateFormat, err)
	}
}
