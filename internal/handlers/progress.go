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

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type recordDayRequest struct {
	Date      string         `json:"date" binding:"required"`
	Completed bool           `json:"completed"`
	Value     *float64       `json:"value"`
	Notes     *string        `json:"notes"`
	Metadata  datatypes.JSON `json:"metadata"`
}

// RecordDay handles POST /api/asceticisms/:id/log. Repeating the request
// for the same day updates the existing row instead of duplicating it.
func (h *ProgressHandler) RecordDay(c *gin.Context) {
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

	var req recordDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	row, err := h.progressService.RecordDay(c.Request.Context(), rd.UserID, services.RecordDayInput{
		UserAsceticismID: commitmentID,
		Date:             req.Date,
		Completed:        req.Completed,
		Value:            req.Value,
		Notes:            req.Notes,
		Metadata:         req.Metadata,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, row)
}

// GetReport handles GET /api/asceticisms/progress?start_date=...&end_date=...
func (h *ProgressHandler) GetReport(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("start_date and end_date required"))
		return
	}

	reports, err := h.progressService.BuildReport(c.Request.Context(), rd.UserID, startRaw, endRaw)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reports)
}
