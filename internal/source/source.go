// Package source defines the contracts for external environmental and
// market data providers, the documented defaults substituted when a
// provider fails, and the circuit-breaker fallback policy wrapping them.
package source

import (
	"context"
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
)

// Market status labels reported in the environmental summary.
const (
	MarketStable   = "stable"
	MarketVolatile = "volatile"
	MarketBullish  = "bullish"
	MarketBearish  = "bearish"
)

// EnvironmentalSource provides weather, soil and climate readings for a
// coordinate. Implementations must be safe for concurrent use.
type EnvironmentalSource interface {
	Weather(ctx context.Context, lat, lon float64) (models.WeatherReading, error)
	Soil(ctx context.Context, lat, lon float64) (models.SoilReading, error)
	Climate(ctx context.Context, lat, lon float64) (models.ClimateStats, error)
}

// MarketSource provides crop price and market data. Implementations
// must be safe for concurrent use.
type MarketSource interface {
	Prices(ctx context.Context, crops []string) ([]models.PriceQuote, error)
	Economics(ctx context.Context, crop string) (models.CropEconomics, error)
	History(ctx context.Context, crop string, days int) (models.PriceHistory, error)
	SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error)
	Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error)
	Status(ctx context.Context) (string, error)
}

// Refresher is implemented by sources whose data can be re-sampled on a
// schedule.
type Refresher interface {
	Refresh(ctx context.Context) error
}
