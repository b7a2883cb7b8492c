package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projectdesert/backend/internal/apierr"
	"github.com/projectdesert/backend/internal/requestdata"
	"github.com/projectdesert/backend/internal/services"
)

type ReadingsHandler struct {
	readingsService services.ReadingsService
}

func NewReadingsHandler(readingsService services.ReadingsService) *ReadingsHandler {
	return &ReadingsHandler{readingsService: readingsService}
}

// GetMass handles GET /api/daily-readings/:date where :date is YYYYMMDD,
// matching the upstream Universalis URL shape.
func (h *ReadingsHandler) GetMass(c *gin.Context) {
	payload, err := h.readingsService.GetMassReadings(c.Request.Context(), c.Param("date"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

type upsertNoteRequest struct {
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes" binding:"required"`
}

func (h *ReadingsHandler) UpsertNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	var req upsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}

	note, err := h.readingsService.UpsertNote(c.Request.Context(), rd.UserID, req.Date, req.Notes)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, note)
}

func (h *ReadingsHandler) GetNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	note, err := h.readingsService.GetNoteByDate(c.Request.Context(), rd.UserID, c.Param("date"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, note)
}

func (h *ReadingsHandler) ListNotes(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid limit"))
			return
		}
		limit = parsed
	}

	notes, err := h.readingsService.ListNotes(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notes)
}

func (h *ReadingsHandler) DeleteNote(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("not authenticated"))
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid note id"))
		return
	}

	if err := h.readingsService.DeleteNote(c.Request.Context(), rd.UserID, noteID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": noteID})
}
