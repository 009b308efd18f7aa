package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolytics/cropsense/pkg/models"
)

type failingEnvironment struct{}

func (failingEnvironment) Weather(ctx context.Context, lat, lon float64) (models.WeatherReading, error) {
	return models.WeatherReading{}, ErrUnavailable
}

func (failingEnvironment) Soil(ctx context.Context, lat, lon float64) (models.SoilReading, error) {
	return models.SoilReading{}, ErrUnavailable
}

func (failingEnvironment) Climate(ctx context.Context, lat, lon float64) (models.ClimateStats, error) {
	return models.ClimateStats{}, ErrUnavailable
}

type healthyEnvironment struct{}

func (healthyEnvironment) Weather(ctx context.Context, lat, lon float64) (models.WeatherReading, error) {
	return models.WeatherReading{AvgTempC: 25, Source: "test"}, nil
}

func (healthyEnvironment) Soil(ctx context.Context, lat, lon float64) (models.SoilReading, error) {
	return models.SoilReading{Type: "clay", Source: "test"}, nil
}

func (healthyEnvironment) Climate(ctx context.Context, lat, lon float64) (models.ClimateStats, error) {
	return models.ClimateStats{TempVarianceC: 7}, nil
}

type failingMarket struct{}

func (failingMarket) Prices(ctx context.Context, crops []string) ([]models.PriceQuote, error) {
	return nil, ErrUnavailable
}

func (failingMarket) Economics(ctx context.Context, crop string) (models.CropEconomics, error) {
	return models.CropEconomics{}, ErrUnavailable
}

func (failingMarket) History(ctx context.Context, crop string, days int) (models.PriceHistory, error) {
	return models.PriceHistory{}, ErrUnavailable
}

func (failingMarket) SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error) {
	return models.PriceForecast{}, ErrUnavailable
}

func (failingMarket) Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error) {
	return nil, ErrUnavailable
}

func (failingMarket) Status(ctx context.Context) (string, error) {
	return "", ErrUnavailable
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFallbackEnvironment_SubstitutesDefaults(t *testing.T) {
	f := NewFallbackEnvironment(failingEnvironment{}, time.Second, discardLogger())
	ctx := context.Background()

	weather, err := f.Weather(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, "default", weather.Source)
	assert.Equal(t, 20.0, weather.AvgTempC)
	assert.Equal(t, 10.0, weather.RainfallWeekMm)
	assert.Len(t, weather.DailyRainfallMm, 7)

	soil, err := f.Soil(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, "loam", soil.Type)
	assert.Equal(t, 6.5, soil.PH)

	climate, err := f.Climate(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, 3.0, climate.TempVarianceC)
	assert.Equal(t, 5.0, climate.RainfallVarianceMm)
}

func TestFallbackEnvironment_PassesThroughHealthySource(t *testing.T) {
	f := NewFallbackEnvironment(healthyEnvironment{}, time.Second, discardLogger())
	ctx := context.Background()

	weather, err := f.Weather(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, "test", weather.Source)
	assert.Equal(t, 25.0, weather.AvgTempC)

	soil, err := f.Soil(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, "clay", soil.Type)

	climate, err := f.Climate(ctx, 40, -95)
	require.NoError(t, err)
	assert.Equal(t, 7.0, climate.TempVarianceC)
}

func TestFallbackMarket_SubstitutesBaselines(t *testing.T) {
	f := NewFallbackMarket(failingMarket{}, time.Second, discardLogger())
	ctx := context.Background()

	quotes, err := f.Prices(ctx, []string{"wheat", "corn", "durian"})
	require.NoError(t, err)
	require.Len(t, quotes, 2, "unknown crops are dropped from baseline quotes")
	assert.Equal(t, 250.0, quotes[0].CurrentPrice)
	assert.Equal(t, quotes[0].BasePrice, quotes[0].CurrentPrice)

	eco, err := f.Economics(ctx, "wheat")
	require.NoError(t, err)
	assert.Equal(t, 400.0, eco.ProductionCostPerHa)
	assert.Equal(t, 3.0, eco.TypicalYieldPerHa)

	status, err := f.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, MarketStable, status)
}

func TestFallbackMarket_DetailOperationsPropagateErrors(t *testing.T) {
	f := NewFallbackMarket(failingMarket{}, time.Second, discardLogger())
	ctx := context.Background()

	_, err := f.History(ctx, "wheat", 30)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = f.SeasonalForecast(ctx, "wheat", 6, time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = f.Outlets(ctx, "wheat", 100)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// brokenMarket fails with an error that is not the sentinel, the way a
// timed-out or refused provider call would.
type brokenMarket struct {
	failingMarket
}

func (brokenMarket) History(ctx context.Context, crop string, days int) (models.PriceHistory, error) {
	return models.PriceHistory{}, errors.New("connection refused")
}

func (brokenMarket) SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error) {
	return models.PriceForecast{}, errors.New("connection refused")
}

func (brokenMarket) Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error) {
	return nil, errors.New("connection refused")
}

func TestFallbackMarket_DetailOperationsWrapUnderlyingErrors(t *testing.T) {
	f := NewFallbackMarket(brokenMarket{}, time.Second, discardLogger())
	ctx := context.Background()

	_, err := f.History(ctx, "wheat", 30)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = f.SeasonalForecast(ctx, "wheat", 6, time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = f.Outlets(ctx, "wheat", 100)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBaselineEconomics_UnknownCrop(t *testing.T) {
	_, ok := BaselineEconomics("durian")
	assert.False(t, ok)
}

func TestBasePrice_FallsBackForUnknownCrop(t *testing.T) {
	assert.Equal(t, 100.0, BasePrice("durian"))
	assert.Equal(t, 250.0, BasePrice("wheat"))
}
