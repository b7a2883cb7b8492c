package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/services"
)

type AsceticismHandler struct {
	asceticismService services.AsceticismService
}

func NewAsceticismHandler(asceticismService services.AsceticismService) *AsceticismHandler {
	return &AsceticismHandler{asceticismService: asceticismService}
}

func (h *AsceticismHandler) ListTemplates(c *gin.Context) {
	templates, err := h.asceticismService.ListTemplates(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, templates)
}

type createAsceticismRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"required"`
	Icon        string         `json:"icon"`
	Type        string         `json:"type"`
	Metadata    datatypes.JSON `json:"metadata"`
}

func (h *AsceticismHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	var req createAsceticismRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	creatorID := rd.UserID
	created, err := h.asceticismService.CreateAsceticism(c.Request.Context(), services.CreateAsceticismInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Icon:        req.Icon,
		Type:        req.Type,
		Metadata:    req.Metadata,
		CreatorID:   &creatorID,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (h *AsceticismHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	commitments, err := h.asceticismService.ListUserAsceticisms(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, commitments)
}

type joinAsceticismRequest struct {
	TargetValue *float64       `json:"target_value"`
	Metadata    datatypes.JSON `json:"metadata"`
}

// Join handles POST /api/asceticisms/:id/join where :id is the practice
// definition to adopt.
func (h *AsceticismHandler) Join(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	asceticismID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid asceticism id"))
		return
	}

	req := joinAsceticismRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
			return
		}
	}

	commitment, err := h.asceticismService.JoinAsceticism(c.Request.Context(), rd.UserID, services.JoinAsceticismInput{
		AsceticismID: asceticismID,
		TargetValue:  req.TargetValue,
		Metadata:     req.Metadata,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, commitment)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AsceticismHandler) UpdateStatus(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid commitment id"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	if err := h.asceticismService.UpdateCommitmentStatus(c.Request.Context(), rd.UserID, commitmentID, req.Status); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": req.Status})
}

type updateTargetRequest struct {
	TargetValue *float64 `json:"target_value"`
}

func (h *AsceticismHandler) UpdateTarget(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid commitment id"))
		return
	}

	var req updateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	if err := h.asceticismService.UpdateCommitmentTarget(c.Request.Context(), rd.UserID, commitmentID, req.TargetValue); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": commitmentID, "target_value": req.TargetValue})
}

func (h *AsceticismHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	commitmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid commitment id"))
		return
	}

	if err := h.asceticismService.DeleteCommitment(c.Request.Context(), rd.UserID, commitmentID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": commitmentID})
}
