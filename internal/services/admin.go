package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/types"
)

// AdminUserRow is one user in the admin listing, with activity counts.
type AdminUserRow struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Image                string    `json:"image,omitempty"`
	Role                 string    `json:"role"`
	IsBanned             bool      `json:"is_banned"`
	UserAsceticismsCount int64     `json:"user_asceticisms_count"`
	GroupMembersCount    int64     `json:"group_members_count"`
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]*AdminUserRow, error)
	UpdateRole(ctx context.Context, targetID uuid.UUID, newRole string) error
	ToggleBan(ctx context.Context, targetID uuid.UUID, isBanned bool) error
}

type adminService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	uaRepo    repos.UserAsceticismRepo
	groupRepo repos.GroupRepo
}

func NewAdminService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, uaRepo repos.UserAsceticismRepo, groupRepo repos.GroupRepo) AdminService {
	serviceLog := log.With("service", "AdminService")
	return &adminService{
		db:        db,
		log:       serviceLog,
		userRepo:  userRepo,
		uaRepo:    uaRepo,
		groupRepo: groupRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*AdminUserRow, error) {
	users, err := s.userRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]*AdminUserRow, 0, len(users))
	for _, u := range users {
		uaCount, err := s.uaRepo.CountByUserID(ctx, nil, u.ID)
		if err != nil {
			return nil, err
		}
		gmCount, err := s.groupRepo.CountMembershipsByUser(ctx, nil, u.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &AdminUserRow{
			ID:                   u.ID,
			Name:                 u.Name,
			Email:                u.Email,
			Image:                u.Image,
			Role:                 u.Role,
			IsBanned:             u.IsBanned,
			UserAsceticismsCount: uaCount,
			GroupMembersCount:    gmCount,
		})
	}
	return rows, nil
}

// UpdateRole changes a user's role. Admins cannot demote themselves, so a
// deployment always keeps at least the acting admin.
func (s *adminService) UpdateRole(ctx context.Context, targetID uuid.UUID, newRole string) error {
	switch newRole {
	case types.RoleUser, types.RoleModerator, types.RoleAdmin:
	default:
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("unknown role %q", newRole))
	}

	rd := requestdata.GetRequestData(ctx)
	if rd != nil && rd.UserID == targetID && newRole != types.RoleAdmin {
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("admins cannot demote themselves"))
	}

	found, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{targetID})
	if err != nil {
		return err
	}
	if len(found) == 0 || found[0] == nil {
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("user not found"))
	}
	return s.userRepo.UpdateRole(ctx, nil, targetID, newRole)
}

func (s *adminService) ToggleBan(ctx context.Context, targetID uuid.UUID, isBanned bool) error {
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && rd.UserID == targetID && isBanned {
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("admins cannot ban themselves"))
	}

	found, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{targetID})
	if err != nil {
		return err
	}
	if len(found) == 0 || found[0] == nil {
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("user not found"))
	}
	return s.userRepo.UpdateBan(ctx, nil, targetID, isBanned)
}
