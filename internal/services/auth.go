package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/repos"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/types"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, name string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo, jwtSecretKey string, accessTTL, refreshTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, email, password, name string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("valid email required"))
	}
	if len(password) < 8 {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("password must be at least 8 characters"))
	}

	existing, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.New(http.StatusConflict, apierr.CodeInvalidArgument, fmt.Errorf("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Role:     types.RoleUser,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid credentials"))
	}
	if user.IsBanned {
		return "", "", apierr.New(http.StatusForbidden, apierr.CodeForbidden, fmt.Errorf("user is banned"))
	}

	return as.issueTokens(ctx, user)
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	hash := hashToken(refreshToken)

	stored, err := as.userTokenRepo.GetByHash(ctx, nil, hash)
	if err != nil {
		return "", "", err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return "", "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid refresh token"))
	}

	found, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{stored.UserID})
	if err != nil {
		return "", "", err
	}
	if len(found) == 0 || found[0] == nil {
		return "", "", apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("user no longer exists"))
	}

	var access, refresh string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.RevokeByUserID(ctx, tx, stored.UserID); err != nil {
			return err
		}
		a, r, err := as.issueTokensTx(ctx, tx, found[0])
		if err != nil {
			return err
		}
		access, refresh = a, r
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
	}
	return as.userTokenRepo.RevokeByUserID(ctx, nil, rd.UserID)
}

// SetContextFromToken validates an access token and loads the caller's
// identity into the request context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}

	found, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return ctx, err
	}
	if len(found) == 0 || found[0] == nil {
		return ctx, fmt.Errorf("user not found")
	}
	user := found[0]

	rd := &requestdata.RequestData{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsBanned: user.IsBanned,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, user *types.User) (string, string, error) {
	return as.issueTokensTx(ctx, nil, user)
}

func (as *authService) issueTokensTx(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(as.accessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", err
	}

	refresh, err := randomToken()
	if err != nil {
		return "", "", err
	}
	row := &types.UserToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, row); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
