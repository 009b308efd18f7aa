package analysis

import (
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
	"github.com/agrolytics/cropsense/pkg/units"
)

// calendarKeyFormat and calendarNameFormat are the wire formats for
// calendar keys ("2026-03") and display names ("March 2026").
const (
	calendarKeyFormat  = "2006-01"
	calendarNameFormat = "January 2006"
)

// BuildCalendar projects ranked crops onto a month-by-month planting
// calendar covering monthsAhead months from start. A crop appears in
// every month that is in its planting-month set; a crop with no
// planting months simply never appears. Crops within a month keep rank
// order.
func BuildCalendar(ranked []models.CropAnalysis, monthsAhead int, start time.Time) models.PlantingCalendar {
	cal := make(models.PlantingCalendar, monthsAhead)

	// Anchor to the first of the month so adding months never skips one
	// (Jan 31 + 1 month would land in March).
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < monthsAhead; i++ {
		month := base.AddDate(0, i, 0)
		entry := models.CalendarMonth{
			MonthName:        month.Format(calendarNameFormat),
			RecommendedCrops: []models.CalendarCrop{},
		}

		monthNum := int(month.Month())
		for _, crop := range ranked {
			if !plantsIn(crop.PlantingMonths, monthNum) {
				continue
			}
			profit := 0.0
			if crop.Profitability != nil {
				profit = crop.Profitability.NetProfit
			}
			entry.RecommendedCrops = append(entry.RecommendedCrops, models.CalendarCrop{
				Name:             crop.Crop,
				SuitabilityScore: units.Round1(crop.Suitability),
				ExpectedProfit:   units.Round2(profit),
			})
		}

		cal[month.Format(calendarKeyFormat)] = entry
	}

	return cal
}

func plantsIn(months []int, month int) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}
