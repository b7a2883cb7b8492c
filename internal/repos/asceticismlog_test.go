package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/pointers"
	"github.com/projectdesert/backend/internal/types"
)

func seedCommitment(t *testing.T, db *gorm.DB) *types.UserAsceticism {
	t.Helper()

	user := &types.User{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@example.com",
		Password: "hashed",
		Role:     types.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	practice := &types.Asceticism{
		ID:         uuid.New(),
		Title:      "Morning fast",
		Category:   "fasting",
		IsTemplate: true,
		Type:       types.TrackingBoolean,
	}
	if err := db.Create(practice).Error; err != nil {
		t.Fatalf("seed practice: %v", err)
	}

	commitment := &types.UserAsceticism{
		ID:           uuid.New(),
		UserID:       user.ID,
		AsceticismID: practice.ID,
		Status:       types.StatusActive,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(commitment).Error; err != nil {
		t.Fatalf("seed commitment: %v", err)
	}
	return commitment
}

func TestUpsertByDayCreatesThenUpdates(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	repo := NewAsceticismLogRepo(db, log)
	commitment := seedCommitment(t, db)

	ctx := context.Background()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	first, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{Completed: true})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !first.Completed {
		t.Fatalf("expected completed row")
	}

	second, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{Completed: false})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("same day must resolve to the same row: %s vs %s", second.ID, first.ID)
	}
	if second.Completed {
		t.Fatalf("second upsert should have flipped completed to false")
	}

	count, err := repo.CountByCommitment(ctx, nil, commitment.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("want exactly one row for the day, got %d", count)
	}
}

func TestUpsertByDayLeavesOmittedFieldsUntouched(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	repo := NewAsceticismLogRepo(db, log)
	commitment := seedCommitment(t, db)

	ctx := context.Background()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{
		Completed: true,
		Value:     pointers.Float64(3.5),
		Notes:     pointers.String("ok"),
	}); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	// Completed-only patch: value and notes must survive.
	updated, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{Completed: true})
	if err != nil {
		t.Fatalf("completed-only upsert: %v", err)
	}
	if updated.Value == nil || *updated.Value != 3.5 {
		t.Fatalf("value lost on partial update: %v", updated.Value)
	}
	if updated.Notes == nil || *updated.Notes != "ok" {
		t.Fatalf("notes lost on partial update: %v", updated.Notes)
	}

	// Supplied fields overwrite.
	overwritten, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{
		Completed: false,
		Notes:     pointers.String("skipped"),
	})
	if err != nil {
		t.Fatalf("overwrite upsert: %v", err)
	}
	if overwritten.Notes == nil || *overwritten.Notes != "skipped" {
		t.Fatalf("notes not overwritten: %v", overwritten.Notes)
	}
	if overwritten.Value == nil || *overwritten.Value != 3.5 {
		t.Fatalf("value should still be retained: %v", overwritten.Value)
	}
}

func TestUpsertByDayDistinctDaysStayDistinct(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	repo := NewAsceticismLogRepo(db, log)
	commitment := seedCommitment(t, db)

	ctx := context.Background()
	for dayOffset := 0; dayOffset < 3; dayOffset++ {
		day := time.Date(2024, 3, 1+dayOffset, 0, 0, 0, 0, time.UTC)
		if _, err := repo.UpsertByDay(ctx, nil, commitment.ID, day, types.LogPatch{Completed: true}); err != nil {
			t.Fatalf("upsert day %d: %v", dayOffset, err)
		}
	}

	logs, err := repo.GetByCommitmentAndRange(ctx, nil, commitment.ID,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("want 3 rows, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if !logs[i-1].Date.Before(logs[i].Date) {
			t.Fatalf("range query not ordered by date ascending")
		}
	}
}

func TestGetByKeyMissingRow(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	repo := NewAsceticismLogRepo(db, log)
	commitment := seedCommitment(t, db)

	row, err := repo.GetByKey(context.Background(), nil, commitment.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil for an unlogged day, got %+v", row)
	}
}
