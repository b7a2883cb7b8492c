package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/normalization"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/types"
)

// CatalogService exposes the published package/program/group plumbing the
// frontend browses. No scheduling logic lives here; the progress engine
// never calls into this service.
type CatalogService interface {
	ListPackages(ctx context.Context) ([]*types.AsceticismPackage, error)
	ListPrograms(ctx context.Context) ([]*types.Program, error)
	EnrollInProgram(ctx context.Context, userID, programID uuid.UUID) (*types.UserProgram, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.UserProgram, error)
	JoinGroupByInvite(ctx context.Context, userID uuid.UUID, inviteCode string) (*types.GroupMember, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	packageRepo repos.AsceticismPackageRepo
	programRepo repos.ProgramRepo
	groupRepo   repos.GroupRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, packageRepo repos.AsceticismPackageRepo, programRepo repos.ProgramRepo, groupRepo repos.GroupRepo) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:          db,
		log:         serviceLog,
		packageRepo: packageRepo,
		programRepo: programRepo,
		groupRepo:   groupRepo,
	}
}

func (s *catalogService) ListPackages(ctx context.Context) ([]*types.AsceticismPackage, error) {
	return s.packageRepo.ListPublished(ctx, nil)
}

func (s *catalogService) ListPrograms(ctx context.Context) ([]*types.Program, error) {
	return s.programRepo.ListPublic(ctx, nil)
}

func (s *catalogService) EnrollInProgram(ctx context.Context, userID, programID uuid.UUID) (*types.UserProgram, error) {
	program, err := s.programRepo.GetByID(ctx, nil, programID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("program %s not found", programID))
	}

	row := &types.UserProgram{
		ID:        uuid.New(),
		UserID:    userID,
		ProgramID: programID,
		StartDate: normalization.Day(time.Now()),
	}
	return s.programRepo.Enroll(ctx, nil, row)
}

func (s *catalogService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.UserProgram, error) {
	return s.programRepo.ListEnrollmentsByUser(ctx, nil, userID)
}

func (s *catalogService) JoinGroupByInvite(ctx context.Context, userID uuid.UUID, inviteCode string) (*types.GroupMember, error) {
	group, err := s.groupRepo.GetByInviteCode(ctx, nil, inviteCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("invalid invite code"))
	}

	for _, m := range group.Members {
		if m.UserID == userID {
			member := m
			return &member, nil
		}
	}

	row := &types.GroupMember{
		ID:      uuid.New(),
		GroupID: group.ID,
		UserID:  userID,
		Role:    types.GroupRoleMember,
	}
	return s.groupRepo.AddMember(ctx, nil, row)
}
