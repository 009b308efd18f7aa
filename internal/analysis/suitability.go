// Package analysis implements the scoring, ranking and report-building
// core: crop suitability, profitability, risk classification, combined
// ranking and the planting calendar.
package analysis

import (
	"math"
	"strings"

	"github.com/agrolytics/cropsense/pkg/models"
	"github.com/agrolytics/cropsense/pkg/units"
)

// Factor weights for the suitability score. When a snapshot field is
// missing its factor is skipped and the remaining weights are
// renormalized, so partial snapshots still score on a 0-100 scale.
const (
	weightTemperature = 0.30
	weightRainfall    = 0.25
	weightSoilPH      = 0.20
	weightSoilType    = 0.15
	weightSeason      = 0.10
)

// soilTypeMismatchScore is the flat score for a soil type outside the
// crop's compatible set. Mismatched soil is workable with amendments,
// hence partial credit rather than zero.
const soilTypeMismatchScore = 50

// SuitabilityScore rates how well a crop's requirements match an
// environmental snapshot, on a 0-100 scale. currentMonth (1-12) feeds
// the seasonal-timing factor; values outside 1-12 skip that factor.
// Returns 0 when no factor could be evaluated.
func SuitabilityScore(req models.CropRequirement, snap models.EnvironmentalSnapshot, currentMonth int) float64 {
	var total, weights float64

	if snap.TempC != nil {
		total += temperatureScore(req, *snap.TempC) * weightTemperature
		weights += weightTemperature
	}
	if snap.AnnualRainfallMm != nil {
		total += rainfallScore(req, *snap.AnnualRainfallMm) * weightRainfall
		weights += weightRainfall
	}
	if snap.SoilPH != nil {
		total += soilPHScore(req, *snap.SoilPH) * weightSoilPH
		weights += weightSoilPH
	}
	if snap.SoilType != "" {
		total += soilTypeScore(req, snap.SoilType) * weightSoilType
		weights += weightSoilType
	}
	if currentMonth >= 1 && currentMonth <= 12 {
		total += seasonScore(req, currentMonth) * weightSeason
		weights += weightSeason
	}

	if weights == 0 {
		return 0
	}
	return total / weights
}

// temperatureScore is 100 inside the optimal range and loses 5 points
// per degree of distance to the nearest bound outside it.
func temperatureScore(req models.CropRequirement, tempC float64) float64 {
	switch {
	case tempC < req.TempMinC:
		return clampScore(100 - (req.TempMinC-tempC)*5)
	case tempC > req.TempMaxC:
		return clampScore(100 - (tempC-req.TempMaxC)*5)
	default:
		return 100
	}
}

// rainfallScore penalizes deviation relative to the violated bound.
// A deficit is penalized at 50 points per unit of min, an excess at 30
// points per unit of max: too little water hurts a crop more than too
// much.
func rainfallScore(req models.CropRequirement, annualMm float64) float64 {
	switch {
	case annualMm < req.RainfallMinMm:
		if req.RainfallMinMm == 0 {
			return 100
		}
		return clampScore(100 - (req.RainfallMinMm-annualMm)/req.RainfallMinMm*50)
	case annualMm > req.RainfallMaxMm:
		if req.RainfallMaxMm == 0 {
			return 0
		}
		return clampScore(100 - (annualMm-req.RainfallMaxMm)/req.RainfallMaxMm*30)
	default:
		return 100
	}
}

// soilPHScore is 100 inside the range, otherwise loses 20 points per pH
// unit of distance from the range midpoint.
func soilPHScore(req models.CropRequirement, ph float64) float64 {
	if ph >= req.SoilPHMin && ph <= req.SoilPHMax {
		return 100
	}
	mid := (req.SoilPHMin + req.SoilPHMax) / 2
	return clampScore(100 - math.Abs(ph-mid)*20)
}

func soilTypeScore(req models.CropRequirement, soilType string) float64 {
	soilType = strings.ToLower(strings.TrimSpace(soilType))
	for _, t := range req.SoilTypes {
		if strings.ToLower(t) == soilType {
			return 100
		}
	}
	return soilTypeMismatchScore
}

// seasonScore is 100 in a planting month, otherwise loses 20 points per
// month of circular distance to the nearest planting month.
func seasonScore(req models.CropRequirement, currentMonth int) float64 {
	if len(req.PlantingMonths) == 0 {
		return 0
	}
	if req.PlantsIn(currentMonth) {
		return 100
	}
	closest := monthDistance(currentMonth, req.PlantingMonths[0])
	for _, m := range req.PlantingMonths[1:] {
		if d := monthDistance(currentMonth, m); d < closest {
			closest = d
		}
	}
	return clampScore(100 - float64(closest)*20)
}

// monthDistance is the circular distance between two months, wrapping
// at 12 (December and January are 1 apart).
func monthDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if 12-d < d {
		return 12 - d
	}
	return d
}

func clampScore(v float64) float64 {
	return units.Clamp(v, 0, 100)
}
