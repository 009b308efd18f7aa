package analysis

import (
	"testing"

	"github.com/agrolytics/cropsense/pkg/models"
)

func TestAssessRisk_WeatherRules(t *testing.T) {
	tests := []struct {
		name     string
		sig      models.VolatilitySignals
		expected models.RiskLevel
	}{
		{name: "no signals", sig: models.VolatilitySignals{}, expected: models.RiskLow},
		{name: "low variance", sig: models.VolatilitySignals{TempVariance: fptr(2)}, expected: models.RiskLow},
		{name: "variance just above 3", sig: models.VolatilitySignals{TempVariance: fptr(3.5)}, expected: models.RiskMedium},
		{name: "variance at 5", sig: models.VolatilitySignals{TempVariance: fptr(5)}, expected: models.RiskMedium},
		{name: "variance above 5", sig: models.VolatilitySignals{TempVariance: fptr(5.1)}, expected: models.RiskHigh},
		{name: "rainfall uncertainty above 30", sig: models.VolatilitySignals{RainfallUncertainty: fptr(31)}, expected: models.RiskHigh},
		{name: "rainfall upgrades medium to high", sig: models.VolatilitySignals{TempVariance: fptr(4), RainfallUncertainty: fptr(40)}, expected: models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AssessRisk("wheat", tt.sig)
			if rec.Weather != tt.expected {
				t.Errorf("weather risk: expected %s, got %s", tt.expected, rec.Weather)
			}
		})
	}
}

func TestAssessRisk_MarketRules(t *testing.T) {
	for _, crop := range []string{"tomatoes", "potatoes", "carrots"} {
		rec := AssessRisk(crop, models.VolatilitySignals{})
		if rec.Market != models.RiskHigh {
			t.Errorf("%s: expected high market risk, got %s", crop, rec.Market)
		}
		if !contains(rec.Factors, "Seasonal price volatility") {
			t.Errorf("%s: missing seasonal volatility factor", crop)
		}
	}

	rec := AssessRisk("wheat", models.VolatilitySignals{})
	if rec.Market != models.RiskMedium {
		t.Errorf("wheat: expected medium market risk, got %s", rec.Market)
	}
}

func TestAssessRisk_PestAlwaysLow(t *testing.T) {
	rec := AssessRisk("tomatoes", models.VolatilitySignals{TempVariance: fptr(9), RainfallUncertainty: fptr(50)})
	if rec.Pest != models.RiskLow {
		t.Errorf("expected low pest risk, got %s", rec.Pest)
	}
}

func TestAssessRisk_OverallAndScore(t *testing.T) {
	tests := []struct {
		name          string
		crop          string
		sig           models.VolatilitySignals
		expectOverall models.RiskLevel
		expectScore   float64
	}{
		{
			// weather low (1), market medium (2), pest low (1): avg 4/3.
			name: "wheat calm", crop: "wheat", sig: models.VolatilitySignals{},
			expectOverall: models.RiskLow, expectScore: 4.0 / 3.0 * 33.33,
		},
		{
			// weather high (3), market high (3), pest low (1): avg 7/3 >= 1.5.
			name: "tomatoes volatile", crop: "tomatoes",
			sig:           models.VolatilitySignals{TempVariance: fptr(6)},
			expectOverall: models.RiskMedium, expectScore: 7.0 / 3.0 * 33.33,
		},
		{
			// weather medium (2), market high (3), pest low (1): avg 2.
			name: "carrots moderate weather", crop: "carrots",
			sig:           models.VolatilitySignals{TempVariance: fptr(4)},
			expectOverall: models.RiskMedium, expectScore: 2 * 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AssessRisk(tt.crop, tt.sig)
			if rec.Overall != tt.expectOverall {
				t.Errorf("overall: expected %s, got %s", tt.expectOverall, rec.Overall)
			}
			if !approxEqual(rec.Score, tt.expectScore) {
				t.Errorf("score: expected %v, got %v", tt.expectScore, rec.Score)
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
