package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset-registry-backend/internal/model"
	"asset-registry-backend/internal/store"
)

// LocationResponse represents the API response for a single location.
type LocationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AssetResponse represents one candidate asset for a survey.
type AssetResponse struct {
	ID        int64           `json:"id"`
	Tag       string          `json:"tag"`
	Name      string          `json:"name"`
	Condition model.Condition `json:"condition"`
}

// GetLocations handles GET /api/locations.
func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.store.GetLocations(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve locations"})
		return
	}

	responses := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, LocationResponse{ID: l.ID, Name: l.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// GetLocationAssets handles GET /api/locations/{location_id}/assets, the
// candidate list the survey UI is built from.
func (h *Handler) GetLocationAssets(c *gin.Context) {
	locationID, err := strconv.ParseInt(c.Param("location_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	assets, err := h.store.GetAssetsByLocation(c.Request.Context(), locationID)
	if err != nil {
		if errors.Is(err, store.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assets"})
		}
		return
	}

	responses := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		responses = append(responses, AssetResponse{ID: a.ID, Tag: a.Tag, Name: a.Name, Condition: a.Condition})
	}
	c.JSON(http.StatusOK, responses)
}
