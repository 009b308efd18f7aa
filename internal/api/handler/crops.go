package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agrolytics/cropsense/internal/analysis"
	"github.com/agrolytics/cropsense/internal/api/response"
	"github.com/agrolytics/cropsense/pkg/models"
)

// CropCatalog defines the catalog operations the crop handlers depend on.
type CropCatalog interface {
	Names() []string
	Get(name string) (models.CropRequirement, bool)
}

// ProfitabilityAnalyzer defines the interface the profitability handler
// depends on.
type ProfitabilityAnalyzer interface {
	CropProfitability(ctx context.Context, crop string, areaHa float64) (models.ProfitabilityRecord, error)
}

// NewListCropsHandler returns an http.HandlerFunc for GET /api/v1/crops.
func NewListCropsHandler(cat CropCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := cat.Names()
		crops := make([]models.CropRequirement, 0, len(names))
		for _, name := range names {
			if req, ok := cat.Get(name); ok {
				crops = append(crops, req)
			}
		}
		response.Collection(w, crops, response.CollectionMeta{Count: len(crops)})
	}
}

// NewGetCropHandler returns an http.HandlerFunc for GET /api/v1/crops/{crop}.
func NewGetCropHandler(cat CropCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "crop")
		req, ok := cat.Get(name)
		if !ok {
			response.Error(w, http.StatusNotFound, "UNKNOWN_CROP",
				"Crop not found in catalog", map[string]string{"crop": name})
			return
		}
		response.JSON(w, req)
	}
}

// NewProfitabilityHandler returns an http.HandlerFunc for
// GET /api/v1/crops/{crop}/profitability?area=.
func NewProfitabilityHandler(svc ProfitabilityAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "crop")

		area := 1.0
		if raw := r.URL.Query().Get("area"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"area must be a number", nil)
				return
			}
			area = parsed
		}

		record, err := svc.CropProfitability(r.Context(), name, area)
		if err != nil {
			if errors.Is(err, analysis.ErrInsufficientData) {
				response.Error(w, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA",
					"Market data is unavailable for this crop", nil)
				return
			}
			writeAdvisorError(w, err)
			return
		}
		response.JSON(w, record)
	}
}
