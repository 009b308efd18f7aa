package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrolytics/cropsense/internal/api/response"
	"github.com/agrolytics/cropsense/internal/cache"
	"github.com/agrolytics/cropsense/internal/source"
	"github.com/agrolytics/cropsense/pkg/models"
)

// forecastMonthsMax bounds the seasonal forecast horizon.
const forecastMonthsMax = 12

// historyDaysMax bounds the price history window.
const historyDaysMax = 365

// MarketData defines the market operations the market handlers depend on.
type MarketData interface {
	Prices(ctx context.Context, crops []string) ([]models.PriceQuote, error)
	SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error)
	Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error)
	History(ctx context.Context, crop string, days int) (models.PriceHistory, error)
}

// NewPricesHandler returns an http.HandlerFunc for
// GET /api/v1/market/prices?crops=a,b. Without a filter it quotes the
// whole catalog.
func NewPricesHandler(market MarketData, cat CropCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		crops := cat.Names()
		if raw := r.URL.Query().Get("crops"); raw != "" {
			crops = nil
			for _, name := range strings.Split(raw, ",") {
				name = strings.ToLower(strings.TrimSpace(name))
				if name == "" {
					continue
				}
				if _, ok := cat.Get(name); !ok {
					response.Error(w, http.StatusNotFound, "UNKNOWN_CROP",
						"Crop not found in catalog", map[string]string{"crop": name})
					return
				}
				crops = append(crops, name)
			}
		}

		quotes, err := market.Prices(r.Context(), crops)
		if err != nil {
			writeMarketError(w, err)
			return
		}
		response.Collection(w, quotes, response.CollectionMeta{Count: len(quotes)})
	}
}

// NewForecastHandler returns an http.HandlerFunc for
// GET /api/v1/market/{crop}/forecast?months=. Forecasts are cached per
// crop and horizon; the TTL keeps cached entries from straddling a
// month boundary for long.
func NewForecastHandler(market MarketData, cat CropCatalog, c cache.Cache, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "crop")
		req, ok := cat.Get(name)
		if !ok {
			response.Error(w, http.StatusNotFound, "UNKNOWN_CROP",
				"Crop not found in catalog", map[string]string{"crop": name})
			return
		}

		months, ok := queryInt(w, r, "months", 6, 1, forecastMonthsMax)
		if !ok {
			return
		}

		key := cache.ForecastKey(req.Name, months)
		if payload, found, err := c.Get(r.Context(), key); err == nil && found {
			var cached models.PriceForecast
			if json.Unmarshal(payload, &cached) == nil {
				response.JSON(w, cached)
				return
			}
			c.Delete(r.Context(), key)
		}

		forecast, err := market.SeasonalForecast(r.Context(), req.Name, months, time.Now().UTC())
		if err != nil {
			writeMarketError(w, err)
			return
		}

		if payload, err := json.Marshal(forecast); err == nil {
			c.Set(r.Context(), key, payload, ttl)
		}
		response.JSON(w, forecast)
	}
}

// NewOutletsHandler returns an http.HandlerFunc for
// GET /api/v1/market/{crop}/outlets?max_distance_km=.
func NewOutletsHandler(market MarketData, cat CropCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "crop")
		req, ok := cat.Get(name)
		if !ok {
			response.Error(w, http.StatusNotFound, "UNKNOWN_CROP",
				"Crop not found in catalog", map[string]string{"crop": name})
			return
		}

		maxDistance := 100.0
		if raw := r.URL.Query().Get("max_distance_km"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed <= 0 {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"max_distance_km must be a positive number", nil)
				return
			}
			maxDistance = parsed
		}

		outlets, err := market.Outlets(r.Context(), req.Name, maxDistance)
		if err != nil {
			writeMarketError(w, err)
			return
		}
		response.Collection(w, outlets, response.CollectionMeta{Count: len(outlets)})
	}
}

// NewHistoryHandler returns an http.HandlerFunc for
// GET /api/v1/market/{crop}/history?days=.
func NewHistoryHandler(market MarketData, cat CropCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "crop")
		req, ok := cat.Get(name)
		if !ok {
			response.Error(w, http.StatusNotFound, "UNKNOWN_CROP",
				"Crop not found in catalog", map[string]string{"crop": name})
			return
		}

		days, ok := queryInt(w, r, "days", 30, 1, historyDaysMax)
		if !ok {
			return
		}

		history, err := market.History(r.Context(), req.Name, days)
		if err != nil {
			writeMarketError(w, err)
			return
		}
		response.JSON(w, history)
	}
}

// queryInt parses an optional integer query parameter, clamping to
// [min, max]. Writes a 400 and returns false on a malformed value.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
			name+" must be an integer", nil)
		return 0, false
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v, true
}

func writeMarketError(w http.ResponseWriter, err error) {
	if errors.Is(err, source.ErrUnavailable) {
		response.Error(w, http.StatusServiceUnavailable, "MARKET_UNAVAILABLE",
			"Market data is temporarily unavailable", nil)
		return
	}
	response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
		"An unexpected error occurred", nil)
}
