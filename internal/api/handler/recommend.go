package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrolytics/cropsense/internal/advisor"
	"github.com/agrolytics/cropsense/internal/api/response"
	"github.com/agrolytics/cropsense/pkg/models"
)

// Recommender defines the interface the recommendation handler depends on.
type Recommender interface {
	Recommend(ctx context.Context, q advisor.Query) (models.Report, error)
}

// NewRecommendHandler returns an http.HandlerFunc for POST /api/v1/recommendations.
func NewRecommendHandler(svc Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Latitude   *float64 `json:"latitude"`
			Longitude  *float64 `json:"longitude"`
			LandAreaHa float64  `json:"land_area_hectares"`
			Crops      []string `json:"crops"`
			TopN       int      `json:"top_n"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Latitude == nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "latitude is required", nil)
			return
		}
		if req.Longitude == nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "longitude is required", nil)
			return
		}

		area := req.LandAreaHa
		if area == 0 {
			area = 1
		}

		report, err := svc.Recommend(r.Context(), advisor.Query{
			Latitude:   *req.Latitude,
			Longitude:  *req.Longitude,
			LandAreaHa: area,
			Crops:      req.Crops,
			TopN:       req.TopN,
		})
		if err != nil {
			writeAdvisorError(w, err)
			return
		}

		response.JSON(w, report)
	}
}

// writeAdvisorError maps advisor errors to HTTP error envelopes.
func writeAdvisorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advisor.ErrInvalidCoordinate):
		response.Error(w, http.StatusBadRequest, "INVALID_COORDINATE", err.Error(), nil)
	case errors.Is(err, advisor.ErrInvalidArea):
		response.Error(w, http.StatusBadRequest, "INVALID_AREA", err.Error(), nil)
	case errors.Is(err, advisor.ErrUnknownCrop):
		response.Error(w, http.StatusNotFound, "UNKNOWN_CROP", err.Error(), nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}
