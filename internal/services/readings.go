package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	redisclient "github.com/projectdesert/backend/internal/clients/redis"
	"github.com/projectdesert/backend/internal/clients/universalis"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/normalization"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/types"
)

const readingsCacheTTL = 24 * time.Hour

type ReadingsService interface {
	GetMassReadings(ctx context.Context, compactDate string) (json.RawMessage, error)
	UpsertNote(ctx context.Context, userID uuid.UUID, dateRaw, notes string) (*types.DailyReadingNote, error)
	GetNoteByDate(ctx context.Context, userID uuid.UUID, dateRaw string) (*types.DailyReadingNote, error)
	ListNotes(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyReadingNote, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type readingsService struct {
	db          *gorm.DB
	log         *logger.Logger
	cache       redisclient.Cache
	readingRepo repos.MassReadingRepo
	noteRepo    repos.DailyReadingNoteRepo
	fetcher     universalis.Client
}

// NewReadingsService builds the cache-aside readings layer. cache may be
// nil; the service then falls through to Postgres and the upstream API.
func NewReadingsService(db *gorm.DB, log *logger.Logger, cache redisclient.Cache, readingRepo repos.MassReadingRepo, noteRepo repos.DailyReadingNoteRepo, fetcher universalis.Client) ReadingsService {
	serviceLog := log.With("service", "ReadingsService")
	return &readingsService{
		db:          db,
		log:         serviceLog,
		cache:       cache,
		readingRepo: readingRepo,
		noteRepo:    noteRepo,
		fetcher:     fetcher,
	}
}

// GetMassReadings resolves a day's readings: redis, then the mass_reading
// table, then the Universalis API, writing back through each layer.
func (s *readingsService) GetMassReadings(ctx context.Context, compactDate string) (json.RawMessage, error) {
	day, err := normalization.ParseCompactDay(compactDate)
	if err != nil {
		return nil, err
	}

	cacheKey := "readings:" + day.Format("2006-01-02")
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			return json.RawMessage(cached), nil
		} else if err != nil {
			s.log.Warn("Readings cache read failed", "key", cacheKey, "error", err)
		}
	}

	stored, err := s.readingRepo.GetByDate(ctx, nil, day)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		s.cacheReadings(ctx, cacheKey, stored.Data)
		return json.RawMessage(stored.Data), nil
	}

	fetched, err := s.fetcher.FetchMass(ctx, day)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeUpstreamFailure, fmt.Errorf("failed to fetch readings: %w", err))
	}

	row := &types.MassReading{
		ID:   uuid.New(),
		Date: day,
		Data: datatypes.JSON(fetched),
	}
	if err := s.readingRepo.UpsertByDate(ctx, nil, row); err != nil {
		s.log.Warn("Failed to store fetched readings", "day", day, "error", err)
	}
	s.cacheReadings(ctx, cacheKey, datatypes.JSON(fetched))
	return fetched, nil
}

func (s *readingsService) cacheReadings(ctx context.Context, key string, data datatypes.JSON) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, []byte(data), readingsCacheTTL); err != nil {
		s.log.Warn("Readings cache write failed", "key", key, "error", err)
	}
}

func (s *readingsService) UpsertNote(ctx context.Context, userID uuid.UUID, dateRaw, notes string) (*types.DailyReadingNote, error) {
	day, err := normalization.ParseDay(dateRaw)
	if err != nil {
		return nil, err
	}
	if notes == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("notes required"))
	}

	row := &types.DailyReadingNote{
		ID:     uuid.New(),
		UserID: userID,
		Date:   day,
		Notes:  notes,
	}
	return s.noteRepo.UpsertByUserAndDate(ctx, nil, row)
}

func (s *readingsService) GetNoteByDate(ctx context.Context, userID uuid.UUID, dateRaw string) (*types.DailyReadingNote, error) {
	day, err := normalization.ParseDay(dateRaw)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByUserAndDate(ctx, nil, userID, day)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("no note found for this date"))
	}
	return note, nil
}

func (s *readingsService) ListNotes(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyReadingNote, error) {
	return s.noteRepo.ListByUser(ctx, nil, userID, limit)
}

func (s *readingsService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, nil, noteID)
	if err != nil {
		return err
	}
	if note == nil || note.UserID != userID {
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("note not found"))
	}
	return s.noteRepo.FullDeleteByID(ctx, nil, noteID)
}
