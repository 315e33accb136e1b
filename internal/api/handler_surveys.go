package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset-registry-backend/internal/listing"
	"asset-registry-backend/internal/model"
	"asset-registry-backend/internal/reconcile"
	"asset-registry-backend/internal/store"
	"asset-registry-backend/internal/survey"
)

type createSurveyLine struct {
	AssetID   int64  `json:"asset_id" binding:"required"`
	Condition string `json:"condition" binding:"required"`
	Note      string `json:"note"`
}

type createSurveyRequest struct {
	LocationID  int64              `json:"location_id" binding:"required"`
	SubmitterID int64              `json:"submitter_id" binding:"required"`
	Date        string             `json:"date" binding:"required"`
	Lines       []createSurveyLine `json:"lines" binding:"required"`
}

// SurveyLineResponse is one observation within a survey response.
type SurveyLineResponse struct {
	Position  int             `json:"position"`
	AssetID   int64           `json:"asset_id"`
	Condition model.Condition `json:"condition"`
	Note      string          `json:"note,omitempty"`
}

// SurveyResponse represents a survey in list and detail responses.
type SurveyResponse struct {
	ID        int64                `json:"id"`
	Date      string               `json:"date"`
	Location  string               `json:"location"`
	Submitter string               `json:"submitter"`
	Reviewed  bool                 `json:"reviewed"`
	Lines     []SurveyLineResponse `json:"lines"`
}

func toSurveyResponse(s model.InventorySurvey) SurveyResponse {
	lines := make([]SurveyLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SurveyLineResponse{
			Position:  l.Position,
			AssetID:   l.AssetID,
			Condition: l.Condition,
			Note:      l.Note,
		})
	}
	return SurveyResponse{
		ID:        s.ID,
		Date:      s.Date,
		Location:  s.Location.Name,
		Submitter: s.Submitter.Name,
		Reviewed:  s.Reviewed,
		Lines:     lines,
	}
}

// CreateSurvey handles POST /api/inventory: a field user submits one
// walk-through of a location.
func (h *Handler) CreateSurvey(c *gin.Context) {
	var req createSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.builder.Begin(c.Request.Context(), req.LocationID, req.SubmitterID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, survey.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	for _, line := range req.Lines {
		condition, err := model.ParseCondition(line.Condition)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := draft.Attach(line.AssetID, condition, line.Note); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.builder.Finalize(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, survey.ErrEmptySurvey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "survey has no observations"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// ListSurveys handles GET /api/inventory with optional date, location and
// submitter substring filters.
func (h *Handler) ListSurveys(c *gin.Context) {
	surveys, err := h.store.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve surveys"})
		return
	}

	filter := listing.Filter{
		Date:      c.Query("date"),
		Location:  c.Query("location"),
		Submitter: c.Query("submitter"),
	}

	matched := listing.Apply(surveys, filter)
	responses := make([]SurveyResponse, 0, len(matched))
	for _, s := range matched {
		responses = append(responses, toSurveyResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}

type reconcileRequest struct {
	Decisions []bool `json:"decisions"`
}

// ReconcileSurvey handles POST /api/inventory/{id}/reconcile. Per-line
// failures come back in the report body with a 200: they are a business
// outcome, not a transport error.
func (h *Handler) ReconcileSurvey(c *gin.Context) {
	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey id"})
		return
	}

	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.engine.Reconcile(c.Request.Context(), surveyID, req.Decisions)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSurveyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
		case errors.Is(err, reconcile.ErrDecisionMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
