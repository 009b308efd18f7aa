package models

import "time"

// WeatherReading is a normalized weather observation for a coordinate.
type WeatherReading struct {
	CurrentTempC    float64   `json:"current_temp_c"`
	AvgTempC        float64   `json:"avg_temp_c"`
	RainfallWeekMm  float64   `json:"rainfall_week_mm"` // observed over the last 7 days
	WindSpeedMS     float64   `json:"wind_speed_ms"`
	DailyRainfallMm []float64 `json:"daily_rainfall_mm,omitempty"`
	Source          string    `json:"source"`
	ObservedAt      time.Time `json:"observed_at"`
}

// FavorableDays counts days with light enough rainfall for field work (<5mm).
func (w WeatherReading) FavorableDays() int {
	n := 0
	for _, mm := range w.DailyRainfallMm {
		if mm < 5 {
			n++
		}
	}
	return n
}

// SoilReading is a normalized soil observation for a coordinate.
type SoilReading struct {
	Type             string  `json:"type"` // lowercase label, e.g. "loam"
	PH               float64 `json:"ph"`
	OrganicMatterPct float64 `json:"organic_matter_pct"`
	NitrogenMgKg     float64 `json:"nitrogen_mg_kg"`
	PhosphorusMgKg   float64 `json:"phosphorus_mg_kg"`
	PotassiumMgKg    float64 `json:"potassium_mg_kg"`
	Drainage         string  `json:"drainage"`
	Source           string  `json:"source"`
}

// ClimateStats summarizes recent climate volatility for a coordinate.
type ClimateStats struct {
	TempVarianceC      float64 `json:"temp_variance_c"`
	RainfallVarianceMm float64 `json:"rainfall_variance_mm"`
}

// EnvironmentalSnapshot bundles the readings a suitability evaluation runs
// against. Optional fields are pointers; a nil field is excluded from
// scoring and its weight redistributed. Snapshots are built fresh per
// query and owned by that query.
type EnvironmentalSnapshot struct {
	TempC            *float64 `json:"temp_c,omitempty"`
	AnnualRainfallMm *float64 `json:"annual_rainfall_mm,omitempty"`
	SoilPH           *float64 `json:"soil_ph,omitempty"`
	SoilType         string   `json:"soil_type,omitempty"`
	WindSpeedMS      float64  `json:"wind_speed_ms,omitempty"`
}

// VolatilitySignals carries the environmental volatility inputs to risk
// assessment. Nil fields mean the signal was not observed.
type VolatilitySignals struct {
	TempVariance        *float64
	RainfallUncertainty *float64
}

// SoilQuality holds 0-100 quality scores derived from a soil reading.
type SoilQuality struct {
	PHScore            float64 `json:"ph_score"`
	NutrientScore      float64 `json:"nutrient_score"`
	OrganicMatterScore float64 `json:"organic_matter_score"`
	OverallScore       float64 `json:"overall_score"`
}
