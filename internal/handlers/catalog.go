package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalogService.ListPackages(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, packages)
}

func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	programs, err := h.catalogService.ListPrograms(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, programs)
}

func (h *CatalogHandler) Enroll(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid program id"))
		return
	}

	enrollment, err := h.catalogService.EnrollInProgram(c.Request.Context(), rd.UserID, programID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, enrollment)
}

func (h *CatalogHandler) ListEnrollments(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	enrollments, err := h.catalogService.ListEnrollments(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, enrollments)
}

type joinGroupRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

func (h *CatalogHandler) JoinGroup(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	var req joinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	member, err := h.catalogService.JoinGroupByInvite(c.Request.Context(), rd.UserID, req.InviteCode)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, member)
}
