// Package sim provides simulated environmental and market data
// sources. Readings are sampled from seeded distributions so runs are
// reproducible under a fixed seed.
package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
)

const simSource = "simulated"

// Environment generates plausible weather, soil and climate readings
// for a coordinate.
type Environment struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEnvironment(seed int64) *Environment {
	return &Environment{rng: rand.New(rand.NewSource(seed))}
}

func (e *Environment) Weather(ctx context.Context, lat, lon float64) (models.WeatherReading, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherReading{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// Warmer toward the equator, with day-to-day noise.
	avg := 28 - math.Abs(lat)/3 + e.normal(0, 2)
	daily := make([]float64, 7)
	week := 0.0
	for i := range daily {
		daily[i] = math.Max(0, e.normal(1.8, 1.5))
		week += daily[i]
	}

	return models.WeatherReading{
		CurrentTempC:    avg + e.normal(0, 1.5),
		AvgTempC:        avg,
		RainfallWeekMm:  week,
		WindSpeedMS:     math.Abs(e.normal(4, 2)),
		DailyRainfallMm: daily,
		Source:          simSource,
		ObservedAt:      time.Now().UTC(),
	}, nil
}

func (e *Environment) Soil(ctx context.Context, lat, lon float64) (models.SoilReading, error) {
	if err := ctx.Err(); err != nil {
		return models.SoilReading{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	soilType, ph := e.soilBand(lat, lon)
	return models.SoilReading{
		Type:             soilType,
		PH:               ph,
		OrganicMatterPct: math.Max(0.1, e.normal(2.5, 0.5)),
		NitrogenMgKg:     math.Max(1, e.normal(25, 5)),
		PhosphorusMgKg:   math.Max(1, e.normal(15, 3)),
		PotassiumMgKg:    math.Max(10, e.normal(120, 20)),
		Drainage:         drainageFor(soilType),
		Source:           simSource,
	}, nil
}

func (e *Environment) Climate(ctx context.Context, lat, lon float64) (models.ClimateStats, error) {
	if err := ctx.Err(); err != nil {
		return models.ClimateStats{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return models.ClimateStats{
		TempVarianceC:      math.Abs(e.normal(3, 1)),
		RainfallVarianceMm: math.Abs(e.normal(15, 10)),
	}, nil
}

// soilBand picks a soil type and pH by latitude band, roughly matching
// temperate-zone survey data.
func (e *Environment) soilBand(lat, lon float64) (string, float64) {
	abs := math.Abs(lat)
	switch {
	case abs >= 25 && abs < 35:
		if lon >= -100 && lon <= -80 {
			return "clay loam", e.normal(5.8, 0.3)
		}
		return "sandy loam", e.normal(5.8, 0.3)
	case abs >= 35 && abs < 45:
		return "loam", e.normal(6.5, 0.4)
	case abs >= 45 && abs < 50:
		return "silt loam", e.normal(6.2, 0.3)
	default:
		return "loam", e.normal(6.2, 0.3)
	}
}

func drainageFor(soilType string) string {
	switch soilType {
	case "sandy loam":
		return "good"
	case "clay loam":
		return "slow"
	case "clay":
		return "poor"
	default:
		return "moderate"
	}
}

// normal samples N(mean, std). Callers hold e.mu.
func (e *Environment) normal(mean, std float64) float64 {
	return e.rng.NormFloat64()*std + mean
}
