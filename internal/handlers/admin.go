package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rows)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid user id"))
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	if err := h.adminService.UpdateRole(c.Request.Context(), targetID, req.Role); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": targetID, "role": req.Role})
}

type toggleBanRequest struct {
	IsBanned *bool `json:"is_banned" binding:"required"`
}

func (h *AdminHandler) ToggleBan(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid user id"))
		return
	}

	var req toggleBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	if err := h.adminService.ToggleBan(c.Request.Context(), targetID, *req.IsBanned); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": targetID, "is_banned": *req.IsBanned})
}
