package models

import (
	"time"

	"github.com/google/uuid"
)

// BestCropNone is the summary sentinel when no crop could be ranked.
const BestCropNone = "none"

// ReportSummary is the headline of a recommendation report.
type ReportSummary struct {
	BestCrop        string  `json:"best_crop"`
	ExpectedProfit  float64 `json:"expected_profit"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// PlantingAdvice is crop-specific guidance attached to a recommendation.
type PlantingAdvice struct {
	BestPlantingTime string `json:"best_planting_time"`
	LandPreparation  string `json:"land_preparation"`
	IrrigationAdvice string `json:"irrigation_advice"`
	FertilizerAdvice string `json:"fertilizer_recommendations"`
}

// Recommendation is one ranked entry in a report. Rank is 1-based and
// matches the entry's position in the list. Notes carry profit
// commentary or an insufficient-data marker.
type Recommendation struct {
	Rank             int                  `json:"rank"`
	CropName         string               `json:"crop_name"`
	SuitabilityScore float64              `json:"suitability_score"`
	CombinedScore    float64              `json:"combined_score"`
	ProfitAnalysis   *ProfitabilityRecord `json:"profit_analysis,omitempty"`
	RiskAssessment   RiskRecord           `json:"risk_assessment"`
	PlantingAdvice   PlantingAdvice       `json:"planting_advice"`
	Notes            []string             `json:"notes,omitempty"`
}

// CalendarCrop is one crop listed for a calendar month.
type CalendarCrop struct {
	Name             string  `json:"name"`
	SuitabilityScore float64 `json:"suitability_score"`
	ExpectedProfit   float64 `json:"expected_profit"`
}

// CalendarMonth lists the crops plantable in one calendar month.
type CalendarMonth struct {
	MonthName        string         `json:"month_name"` // e.g. "March 2026"
	RecommendedCrops []CalendarCrop `json:"recommended_crops"`
}

// PlantingCalendar maps "YYYY-MM" keys to their month entries.
type PlantingCalendar map[string]CalendarMonth

// LocationInfo echoes the queried coordinate back in the report.
type LocationInfo struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	LandAreaHa        float64 `json:"land_area_hectares"`
	RegionDescription string  `json:"region_description,omitempty"`
}

// EnvironmentalSummary bundles the raw readings a report was based on.
type EnvironmentalSummary struct {
	Weather             WeatherReading `json:"weather"`
	Soil                SoilReading    `json:"soil"`
	SoilQuality         SoilQuality    `json:"soil_quality_scores"`
	SoilRecommendations []string       `json:"soil_recommendations,omitempty"`
	Climate             ClimateStats   `json:"climate"`
	MarketStatus        string         `json:"market_status,omitempty"`
}

// Report is the full recommendation payload. Its shape is the stable
// contract between the analysis core and any presentation layer.
type Report struct {
	ID                   uuid.UUID            `json:"id"`
	GeneratedAt          time.Time            `json:"timestamp"`
	TotalCropsAnalyzed   int                  `json:"total_crops_analyzed"`
	Summary              ReportSummary        `json:"summary"`
	TopRecommendations   []Recommendation     `json:"top_recommendations"`
	Location             LocationInfo         `json:"location"`
	EnvironmentalSummary EnvironmentalSummary `json:"environmental_summary"`
	PlantingCalendar     PlantingCalendar     `json:"planting_calendar"`
	NextSteps            []string             `json:"next_steps"`
}
