package analysis

import "github.com/agrolytics/cropsense/pkg/models"

// perishableCrops have strong seasonal price swings and short shelf
// lives, which puts their market risk at high regardless of signals.
var perishableCrops = map[string]bool{
	"tomatoes": true,
	"potatoes": true,
	"carrots":  true,
}

// riskScoreScale maps the 1-3 average level onto a 0-100 score.
const riskScoreScale = 33.33

// AssessRisk classifies cultivation risk for a crop from environmental
// volatility signals. Pest risk is a constant low: no pest model is
// implemented. Rules are independent and evaluated in order; the
// rainfall rule can upgrade weather risk set by the temperature rule.
func AssessRisk(crop string, sig models.VolatilitySignals) models.RiskRecord {
	rec := models.RiskRecord{
		Weather: models.RiskLow,
		Market:  models.RiskMedium,
		Pest:    models.RiskLow,
		Overall: models.RiskLow,
	}

	if sig.TempVariance != nil {
		switch {
		case *sig.TempVariance > 5:
			rec.Weather = models.RiskHigh
			rec.Factors = append(rec.Factors, "High temperature variability")
		case *sig.TempVariance > 3:
			rec.Weather = models.RiskMedium
			rec.Factors = append(rec.Factors, "Moderate temperature variability")
		}
	}
	if sig.RainfallUncertainty != nil && *sig.RainfallUncertainty > 30 {
		rec.Weather = models.RiskHigh
		rec.Factors = append(rec.Factors, "High rainfall uncertainty")
	}

	if perishableCrops[crop] {
		rec.Market = models.RiskHigh
		rec.Factors = append(rec.Factors, "Seasonal price volatility")
	}

	avg := (rec.Weather.Weight() + rec.Market.Weight() + rec.Pest.Weight()) / 3
	switch {
	case avg >= 2.5:
		rec.Overall = models.RiskHigh
	case avg >= 1.5:
		rec.Overall = models.RiskMedium
	}
	rec.Score = avg * riskScoreScale

	return rec
}
