package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/normalization"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/types"
)

// CreateAsceticismInput mirrors the practice-definition create form. A
// definition with no creator is a shared template.
type CreateAsceticismInput struct {
	Title       string
	Description string
	Category    string
	Icon        string
	Type        string
	Metadata    datatypes.JSON
	CreatorID   *uuid.UUID
}

type JoinAsceticismInput struct {
	AsceticismID uuid.UUID
	TargetValue  *float64
	Metadata     datatypes.JSON
}

type AsceticismService interface {
	ListTemplates(ctx context.Context, category string) ([]*types.Asceticism, error)
	CreateAsceticism(ctx context.Context, in CreateAsceticismInput) (*types.Asceticism, error)
	ListUserAsceticisms(ctx context.Context, userID uuid.UUID) ([]*types.UserAsceticism, error)
	JoinAsceticism(ctx context.Context, userID uuid.UUID, in JoinAsceticismInput) (*types.UserAsceticism, error)
	UpdateCommitmentStatus(ctx context.Context, userID, commitmentID uuid.UUID, status string) error
	UpdateCommitmentTarget(ctx context.Context, userID, commitmentID uuid.UUID, target *float64) error
	DeleteCommitment(ctx context.Context, userID, commitmentID uuid.UUID) error
}

type asceticismService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.AsceticismRepo
	uaRepo repos.UserAsceticismRepo
}

func NewAsceticismService(db *gorm.DB, log *logger.Logger, repo repos.AsceticismRepo, uaRepo repos.UserAsceticismRepo) AsceticismService {
	serviceLog := log.With("service", "AsceticismService")
	return &asceticismService{db: db, log: serviceLog, repo: repo, uaRepo: uaRepo}
}

func (s *asceticismService) ListTemplates(ctx context.Context, category string) ([]*types.Asceticism, error) {
	return s.repo.ListTemplates(ctx, nil, category)
}

func (s *asceticismService) CreateAsceticism(ctx context.Context, in CreateAsceticismInput) (*types.Asceticism, error) {
	if in.Title == "" || in.Category == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("title and category required"))
	}

	trackingType := in.Type
	if trackingType == "" {
		trackingType = types.TrackingBoolean
	}
	switch trackingType {
	case types.TrackingBoolean, types.TrackingNumeric, types.TrackingText:
	default:
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("unknown tracking type %q", trackingType))
	}

	row := &types.Asceticism{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Icon:        in.Icon,
		IsTemplate:  in.CreatorID == nil,
		CreatorID:   in.CreatorID,
		Type:        trackingType,
		Metadata:    in.Metadata,
	}
	return s.repo.Create(ctx, nil, row)
}

func (s *asceticismService) ListUserAsceticisms(ctx context.Context, userID uuid.UUID) ([]*types.UserAsceticism, error) {
	return s.uaRepo.GetActiveByUser(ctx, nil, userID)
}

// JoinAsceticism subscribes the user to a practice. Joining an already
// active practice returns the existing commitment unchanged, keeping one
// active adoption per (user, practice).
func (s *asceticismService) JoinAsceticism(ctx context.Context, userID uuid.UUID, in JoinAsceticismInput) (*types.UserAsceticism, error) {
	definitions, err := s.repo.GetByIDs(ctx, nil, []uuid.UUID{in.AsceticismID})
	if err != nil {
		return nil, err
	}
	if len(definitions) == 0 {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("asceticism %s not found", in.AsceticismID))
	}

	var out *types.UserAsceticism
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.uaRepo.GetActiveLink(ctx, tx, userID, in.AsceticismID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = existing
			return nil
		}

		row := &types.UserAsceticism{
			ID:           uuid.New(),
			UserID:       userID,
			AsceticismID: in.AsceticismID,
			Status:       types.StatusActive,
			StartDate:    normalization.Day(time.Now()),
			TargetValue:  in.TargetValue,
			Metadata:     in.Metadata,
		}
		created, err := s.uaRepo.Create(ctx, tx, row)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *asceticismService) UpdateCommitmentStatus(ctx context.Context, userID, commitmentID uuid.UUID, status string) error {
	switch status {
	case types.StatusActive, types.StatusPaused, types.StatusCompleted, types.StatusArchived:
	default:
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("unknown status %q", status))
	}

	commitment, err := s.uaRepo.GetByID(ctx, nil, commitmentID)
	if err != nil {
		return err
	}
	if commitment == nil || commitment.UserID != userID {
		return apierr.CommitmentNotFound(fmt.Errorf("commitment %s not found", commitmentID))
	}
	return s.uaRepo.UpdateStatus(ctx, nil, commitmentID, status)
}

// UpdateCommitmentTarget changes the numeric goal; nil clears it.
func (s *asceticismService) UpdateCommitmentTarget(ctx context.Context, userID, commitmentID uuid.UUID, target *float64) error {
	commitment, err := s.uaRepo.GetByID(ctx, nil, commitmentID)
	if err != nil {
		return err
	}
	if commitment == nil || commitment.UserID != userID {
		return apierr.CommitmentNotFound(fmt.Errorf("commitment %s not found", commitmentID))
	}
	return s.uaRepo.UpdateTargetValue(ctx, nil, commitmentID, target)
}

// DeleteCommitment is the administrative hard delete; the cascade FK
// removes the commitment's logs with it.
func (s *asceticismService) DeleteCommitment(ctx context.Context, userID, commitmentID uuid.UUID) error {
	commitment, err := s.uaRepo.GetByID(ctx, nil, commitmentID)
	if err != nil {
		return err
	}
	if commitment == nil || commitment.UserID != userID {
		return apierr.CommitmentNotFound(fmt.Errorf("commitment %s not found", commitmentID))
	}
	return s.uaRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{commitmentID})
}
