package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/agrolytics/cropsense/internal/api/middleware"
	"github.com/agrolytics/cropsense/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler        http.HandlerFunc
	RecommendHandler     http.HandlerFunc
	ListCropsHandler     http.HandlerFunc
	GetCropHandler       http.HandlerFunc
	ProfitabilityHandler http.HandlerFunc
	PricesHandler        http.HandlerFunc
	ForecastHandler      http.HandlerFunc
	OutletsHandler       http.HandlerFunc
	HistoryHandler       http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/recommendations", orNotImplemented(deps.RecommendHandler))

		r.Get("/api/v1/crops", orNotImplemented(deps.ListCropsHandler))
		r.Get("/api/v1/crops/{crop}", orNotImplemented(deps.GetCropHandler))
		r.Get("/api/v1/crops/{crop}/profitability", orNotImplemented(deps.ProfitabilityHandler))

		r.Get("/api/v1/market/prices", orNotImplemented(deps.PricesHandler))
		r.Get("/api/v1/market/{crop}/forecast", orNotImplemented(deps.ForecastHandler))
		r.Get("/api/v1/market/{crop}/outlets", orNotImplemented(deps.OutletsHandler))
		r.Get("/api/v1/market/{crop}/history", orNotImplemented(deps.HistoryHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
