package analysis

import (
	"fmt"
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
)

// PlantingAdvice produces crop-specific guidance for a recommendation
// entry, anchored to the current month.
func PlantingAdvice(crop models.CropAnalysis, now time.Time) models.PlantingAdvice {
	advice := models.PlantingAdvice{
		BestPlantingTime: "Next suitable season",
		LandPreparation:  fmt.Sprintf("Prepare land according to %s requirements", crop.Crop),
		IrrigationAdvice: "Ensure adequate water supply",
		FertilizerAdvice: "Use appropriate fertilizers for soil type",
	}

	month := int(now.Month())
	if plantsIn(crop.PlantingMonths, month) {
		advice.BestPlantingTime = "This month is within the planting window"
	} else if next, ok := nextPlantingMonth(crop.PlantingMonths, month); ok {
		advice.BestPlantingTime = fmt.Sprintf("Next planting window opens in %s", time.Month(next))
	}

	return advice
}

// ProfitNotes generates commentary for a recommendation: profit outlook
// by ROI band, hedging advice under high market risk, and an explicit
// marker when profitability could not be computed.
func ProfitNotes(crop models.CropAnalysis) []string {
	var notes []string

	if crop.Profitability == nil {
		notes = append(notes, "Insufficient market data to estimate profitability")
	} else {
		switch {
		case crop.Profitability.NetProfit <= 0:
			notes = append(notes, "Consider alternative crops for better profitability")
		case crop.Profitability.ROIPct > 20:
			notes = append(notes, "Excellent profit potential - consider this crop")
		case crop.Profitability.ROIPct > 10:
			notes = append(notes, "Good profit potential with acceptable returns")
		default:
			notes = append(notes, "Modest profits expected")
		}
	}

	if crop.Risk.Market == models.RiskHigh {
		notes = append(notes, "Consider price hedging or forward contracts")
	}

	return notes
}

// NextSteps produces the actionable checklist at the end of a report,
// based on the top-ranked crops.
func NextSteps(top []models.CropAnalysis, now time.Time) []string {
	if len(top) == 0 {
		return []string{"No suitable crops found for current conditions"}
	}

	best := top[0]
	steps := []string{
		fmt.Sprintf("Consider planting %s as your primary crop", best.Crop),
		fmt.Sprintf("Prepare land according to %s soil requirements", best.Crop),
		"Test soil pH and nutrients to confirm suitability",
		"Check local suppliers for quality seeds",
		"Plan irrigation system if needed",
		"Research local markets and establish buyer connections",
	}

	month := int(now.Month())
	var timing string
	if plantsIn(best.PlantingMonths, month) {
		timing = "Current month is optimal for planting - act quickly!"
	} else if next, ok := nextPlantingMonth(best.PlantingMonths, month); ok {
		timing = fmt.Sprintf("Plan to plant in %s for optimal timing", time.Month(next))
	}
	if timing != "" {
		steps = append(steps[:1], append([]string{timing}, steps[1:]...)...)
	}

	return steps
}

// WeatherAdvice produces field-activity guidance from a weather
// reading: the favorable-day window and temperature cautions.
func WeatherAdvice(w models.WeatherReading) []string {
	var advice []string

	if len(w.DailyRainfallMm) > 0 {
		if w.FavorableDays() >= 10 {
			advice = append(advice, "Good weather window for field activities")
		} else {
			advice = append(advice, "Limited good weather days - plan activities carefully")
		}
	}

	switch {
	case w.AvgTempC > 30:
		advice = append(advice, "High temperatures - ensure adequate irrigation")
	case w.AvgTempC < 10:
		advice = append(advice, "Cold conditions - consider crop protection measures")
	}

	return advice
}

// nextPlantingMonth returns the planting month with the smallest
// forward distance from the current month, wrapping over year end.
func nextPlantingMonth(months []int, current int) (int, bool) {
	if len(months) == 0 {
		return 0, false
	}
	best := months[0]
	bestDist := forwardMonthDistance(current, best)
	for _, m := range months[1:] {
		if d := forwardMonthDistance(current, m); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, true
}

func forwardMonthDistance(from, to int) int {
	return ((to-from)%12 + 12) % 12
}
