package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrolytics/cropsense/pkg/models"
)

// DefaultTimeout bounds a single provider call made through the
// fallback policy.
const DefaultTimeout = 3 * time.Second

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})
}

// FallbackEnvironment wraps an EnvironmentalSource with per-concern
// circuit breakers and a bounded timeout. It never returns an error: a
// failed or slow call is logged and the documented default reading is
// substituted.
type FallbackEnvironment struct {
	inner   EnvironmentalSource
	timeout time.Duration
	log     *slog.Logger

	weather *gobreaker.CircuitBreaker
	soil    *gobreaker.CircuitBreaker
	climate *gobreaker.CircuitBreaker
}

func NewFallbackEnvironment(inner EnvironmentalSource, timeout time.Duration, log *slog.Logger) *FallbackEnvironment {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FallbackEnvironment{
		inner:   inner,
		timeout: timeout,
		log:     log,
		weather: newBreaker("weather"),
		soil:    newBreaker("soil"),
		climate: newBreaker("climate"),
	}
}

func (f *FallbackEnvironment) Weather(ctx context.Context, lat, lon float64) (models.WeatherReading, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.weather.Execute(func() (interface{}, error) {
		return f.inner.Weather(ctx, lat, lon)
	})
	if err != nil {
		f.log.Warn("weather source failed, substituting defaults",
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.Any("error", err))
		return DefaultWeather(time.Now().UTC()), nil
	}
	return v.(models.WeatherReading), nil
}

func (f *FallbackEnvironment) Soil(ctx context.Context, lat, lon float64) (models.SoilReading, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.soil.Execute(func() (interface{}, error) {
		return f.inner.Soil(ctx, lat, lon)
	})
	if err != nil {
		f.log.Warn("soil source failed, substituting defaults",
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.Any("error", err))
		return DefaultSoil(), nil
	}
	return v.(models.SoilReading), nil
}

func (f *FallbackEnvironment) Climate(ctx context.Context, lat, lon float64) (models.ClimateStats, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.climate.Execute(func() (interface{}, error) {
		return f.inner.Climate(ctx, lat, lon)
	})
	if err != nil {
		f.log.Warn("climate source failed, substituting defaults",
			slog.Float64("lat", lat), slog.Float64("lon", lon), slog.Any("error", err))
		return DefaultClimate(), nil
	}
	return v.(models.ClimateStats), nil
}

// FallbackMarket wraps a MarketSource with a circuit breaker. Prices,
// Economics and Status degrade to the baseline tables on failure; the
// detail operations (History, SeasonalForecast, Outlets) propagate
// errors wrapped as ErrUnavailable so callers can report them.
type FallbackMarket struct {
	inner   MarketSource
	timeout time.Duration
	log     *slog.Logger
	breaker *gobreaker.CircuitBreaker
}

func NewFallbackMarket(inner MarketSource, timeout time.Duration, log *slog.Logger) *FallbackMarket {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FallbackMarket{
		inner:   inner,
		timeout: timeout,
		log:     log,
		breaker: newBreaker("market"),
	}
}

func (f *FallbackMarket) Prices(ctx context.Context, crops []string) ([]models.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.Prices(ctx, crops)
	})
	if err != nil {
		f.log.Warn("market source failed, substituting baseline prices", slog.Any("error", err))
		now := time.Now().UTC()
		quotes := make([]models.PriceQuote, 0, len(crops))
		for _, crop := range crops {
			if q, ok := BaselineQuote(crop, now); ok {
				quotes = append(quotes, q)
			}
		}
		return quotes, nil
	}
	return v.([]models.PriceQuote), nil
}

func (f *FallbackMarket) Economics(ctx context.Context, crop string) (models.CropEconomics, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.Economics(ctx, crop)
	})
	if err != nil {
		f.log.Warn("market source failed, substituting baseline economics",
			slog.String("crop", crop), slog.Any("error", err))
		eco, _ := BaselineEconomics(crop)
		return eco, nil
	}
	return v.(models.CropEconomics), nil
}

func (f *FallbackMarket) Status(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.Status(ctx)
	})
	if err != nil {
		return MarketStable, nil
	}
	return v.(string), nil
}

func (f *FallbackMarket) History(ctx context.Context, crop string, days int) (models.PriceHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.History(ctx, crop, days)
	})
	if err != nil {
		return models.PriceHistory{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v.(models.PriceHistory), nil
}

func (f *FallbackMarket) SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.SeasonalForecast(ctx, crop, months, from)
	})
	if err != nil {
		return models.PriceForecast{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v.(models.PriceForecast), nil
}

func (f *FallbackMarket) Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := f.breaker.Execute(func() (interface{}, error) {
		return f.inner.Outlets(ctx, crop, maxDistanceKm)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v.([]models.MarketOutlet), nil
}
