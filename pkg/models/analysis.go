package models

// RiskLevel is a coarse risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Weight returns the numeric weight of a level on the 1-3 scale used to
// compute overall risk. Unknown levels count as medium.
func (l RiskLevel) Weight() float64 {
	switch l {
	case RiskLow:
		return 1
	case RiskHigh:
		return 3
	default:
		return 2
	}
}

// ProfitabilityRecord holds the derived financials for one crop on a
// given land area. Values are kept unrounded; rounding happens at the
// presentation boundary.
type ProfitabilityRecord struct {
	GrossRevenue    float64 `json:"gross_revenue"`
	TotalCosts      float64 `json:"total_costs"`
	NetProfit       float64 `json:"net_profit"`
	ProfitMarginPct float64 `json:"profit_margin"`
	ROIPct          float64 `json:"roi_percentage"`
	ProfitPerHa     float64 `json:"profit_per_hectare"`
	BreakevenPrice  float64 `json:"breakeven_price"`
	TotalYieldTons  float64 `json:"expected_yield_tons"`
	YieldPerHa      float64 `json:"yield_per_hectare"`
	PricePerUnit    float64 `json:"current_price_per_ton"`
}

// RiskRecord classifies cultivation risk for one crop.
type RiskRecord struct {
	Weather RiskLevel `json:"weather_risk"`
	Market  RiskLevel `json:"market_risk"`
	Pest    RiskLevel `json:"pest_risk"`
	Overall RiskLevel `json:"overall_risk"`
	Factors []string  `json:"risk_factors"`
	Score   float64   `json:"risk_score"` // 0-100
}

// CropAnalysis is the per-crop working record of one recommendation
// query. Profitability is nil when the market source had insufficient
// data for the crop. Combined is assigned during ranking; everything
// else is written once and then read-only.
type CropAnalysis struct {
	Crop              string               `json:"crop_name"`
	Suitability       float64              `json:"suitability_score"`
	Profitability     *ProfitabilityRecord `json:"profit_analysis,omitempty"`
	Risk              RiskRecord           `json:"risk_assessment"`
	Combined          float64              `json:"combined_score"`
	PlantingMonths    []int                `json:"planting_months"`
	GrowingSeasonDays int                  `json:"growing_season_days"`
}
