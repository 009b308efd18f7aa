package analysis

import (
	"math"

	"github.com/agrolytics/cropsense/pkg/models"
)

// SoilQuality scores a soil reading on pH, nutrient balance and
// organic matter, each 0-100, with the overall score their mean.
func SoilQuality(soil models.SoilReading) models.SoilQuality {
	q := models.SoilQuality{
		PHScore:            soilPHQuality(soil.PH),
		NutrientScore:      nutrientQuality(soil.NitrogenMgKg, soil.PhosphorusMgKg, soil.PotassiumMgKg),
		OrganicMatterScore: organicMatterQuality(soil.OrganicMatterPct),
	}
	q.OverallScore = (q.PHScore + q.NutrientScore + q.OrganicMatterScore) / 3
	return q
}

// Crop-agnostic pH bands: 6.0-7.0 suits most crops.
func soilPHQuality(ph float64) float64 {
	switch {
	case ph >= 6.0 && ph <= 7.0:
		return 100
	case (ph >= 5.5 && ph < 6.0) || (ph > 7.0 && ph <= 7.5):
		return 80
	case (ph >= 5.0 && ph < 5.5) || (ph > 7.5 && ph <= 8.0):
		return 60
	default:
		return 40
	}
}

func nutrientQuality(n, p, k float64) float64 {
	nScore := bandScore(n, 20, 40, 30, 3)
	pScore := bandScore(p, 10, 25, 17.5, 4)
	kScore := bandScore(k, 100, 150, 125, 1)
	return (nScore + pScore + kScore) / 3
}

// bandScore is 100 inside [lo, hi] and decays linearly with distance
// from the band midpoint outside it.
func bandScore(v, lo, hi, mid, slope float64) float64 {
	if v >= lo && v <= hi {
		return 100
	}
	return clampScore(100 - math.Abs(v-mid)*slope)
}

func organicMatterQuality(pct float64) float64 {
	switch {
	case pct >= 3.0:
		return 100
	case pct >= 2.0:
		return 80
	case pct >= 1.0:
		return 60
	default:
		return 40
	}
}

// SoilRecommendations lists amendments for a soil reading. Always
// returns at least one entry.
func SoilRecommendations(soil models.SoilReading) []string {
	var recs []string

	if soil.PH < 6.0 {
		recs = append(recs, "Apply lime to increase soil pH")
	} else if soil.PH > 7.5 {
		recs = append(recs, "Apply sulfur or organic matter to lower soil pH")
	}

	if soil.OrganicMatterPct < 2.0 {
		recs = append(recs, "Add compost or organic matter to improve soil structure")
	}

	if soil.NitrogenMgKg < 20 {
		recs = append(recs, "Apply nitrogen fertilizer or nitrogen-fixing cover crops")
	} else if soil.NitrogenMgKg > 40 {
		recs = append(recs, "Reduce nitrogen inputs to prevent leaching")
	}

	if soil.PhosphorusMgKg < 10 {
		recs = append(recs, "Apply phosphorus fertilizer")
	}
	if soil.PotassiumMgKg < 100 {
		recs = append(recs, "Apply potassium fertilizer or potash")
	}

	if len(recs) == 0 {
		recs = append(recs, "Soil conditions are good for most crops")
	}

	return recs
}
