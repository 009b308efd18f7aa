package source

import (
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
)

// defaultSource labels readings substituted by the fallback policy.
const defaultSource = "default"

// basePrices holds per-ton reference prices in USD.
var basePrices = map[string]float64{
	"wheat":    250,
	"corn":     200,
	"rice":     400,
	"soybeans": 450,
	"cotton":   1600,
	"tomatoes": 800,
	"potatoes": 300,
	"carrots":  350,
}

// productionCosts holds per-hectare production costs in USD.
var productionCosts = map[string]float64{
	"wheat":    400,
	"corn":     500,
	"rice":     800,
	"soybeans": 450,
	"cotton":   1200,
	"tomatoes": 2000,
	"potatoes": 1500,
	"carrots":  1200,
}

// typicalYields holds tons per hectare under average conditions.
var typicalYields = map[string]float64{
	"wheat":    3.0,
	"corn":     9.0,
	"rice":     4.5,
	"soybeans": 2.8,
	"cotton":   1.5,
	"tomatoes": 50.0,
	"potatoes": 25.0,
	"carrots":  30.0,
}

// DefaultWeather is the reading substituted when the weather provider
// is unavailable: mild temperate conditions with light rain.
func DefaultWeather(now time.Time) models.WeatherReading {
	daily := make([]float64, 7)
	for i := range daily {
		daily[i] = 1.5
	}
	return models.WeatherReading{
		CurrentTempC:    22,
		AvgTempC:        20,
		RainfallWeekMm:  10,
		WindSpeedMS:     5,
		DailyRainfallMm: daily,
		Source:          defaultSource,
		ObservedAt:      now,
	}
}

// DefaultSoil is the reading substituted when the soil provider is
// unavailable: average loam.
func DefaultSoil() models.SoilReading {
	return models.SoilReading{
		Type:             "loam",
		PH:               6.5,
		OrganicMatterPct: 2.5,
		NitrogenMgKg:     25,
		PhosphorusMgKg:   15,
		PotassiumMgKg:    120,
		Drainage:         "moderate",
		Source:           defaultSource,
	}
}

// DefaultClimate is the volatility substituted when climate statistics
// are unavailable: moderate, below every risk threshold.
func DefaultClimate() models.ClimateStats {
	return models.ClimateStats{
		TempVarianceC:      3,
		RainfallVarianceMm: 5,
	}
}

// BaselineQuote returns the reference price for a crop, reported as
// both current and base price. The second return is false for crops
// outside the reference table.
func BaselineQuote(crop string, now time.Time) (models.PriceQuote, bool) {
	base, ok := basePrices[crop]
	if !ok {
		return models.PriceQuote{}, false
	}
	return models.PriceQuote{
		Crop:         crop,
		CurrentPrice: base,
		BasePrice:    base,
		Currency:     "USD",
		Unit:         "ton",
		UpdatedAt:    now,
	}, true
}

// BaselineEconomics returns the reference cost and yield assumptions
// for a crop. The second return is false for unknown crops.
func BaselineEconomics(crop string) (models.CropEconomics, bool) {
	cost, ok := productionCosts[crop]
	if !ok {
		return models.CropEconomics{}, false
	}
	return models.CropEconomics{
		ProductionCostPerHa: cost,
		TypicalYieldPerHa:   typicalYields[crop],
	}, true
}

// BasePrice returns the reference per-ton price for a crop, or the
// generic fallback price for crops outside the table.
func BasePrice(crop string) float64 {
	if base, ok := basePrices[crop]; ok {
		return base
	}
	return 100
}
