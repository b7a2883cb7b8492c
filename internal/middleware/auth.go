package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/handlers"
	"github.com/projectdesert/backend/internal/logger"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/services"
	"github.com/projectdesert/backend/internal/types"
)

type AuthMiddleware struct {
	authService services.AuthService
	log         *logger.Logger
}

func NewAuthMiddleware(authService services.AuthService, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log.With("middleware", "AuthMiddleware"),
	}
}

// RequireAuth validates the bearer token, loads the caller into the
// request context, and rejects banned accounts.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			handlers.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("missing bearer token"))
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		ctx, err := m.authService.SetContextFromToken(c.Request.Context(), token)
		if err != nil {
			handlers.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("invalid or expired token"))
			c.Abort()
			return
		}

		rd := requestdata.GetRequestData(ctx)
		if rd == nil {
			handlers.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
			c.Abort()
			return
		}
		if rd.IsBanned {
			handlers.RespondError(c, http.StatusForbidden, apierr.CodeForbidden, fmt.Errorf("account is banned"))
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin gates admin routes. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			handlers.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
			c.Abort()
			return
		}
		if rd.Role != types.RoleAdmin {
			handlers.RespondError(c, http.StatusForbidden, apierr.CodeForbidden, fmt.Errorf("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
