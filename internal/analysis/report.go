package analysis

import (
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
	"github.com/agrolytics/cropsense/pkg/units"
)

// DefaultTopN is the number of recommendations a report carries unless
// the caller asks for a different count.
const DefaultTopN = 5

// FormatRecommendations turns a ranked analysis list into the summary
// and top-N recommendation entries of a report. Scores are rounded to
// one decimal and money to two here, at the presentation boundary;
// intermediate computation stays unrounded. An empty ranked list yields
// the "none" sentinel summary and an empty (non-nil) recommendation
// slice.
func FormatRecommendations(ranked []models.CropAnalysis, topN int, now time.Time) (models.ReportSummary, []models.Recommendation) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	summary := models.ReportSummary{BestCrop: models.BestCropNone}
	if len(ranked) > 0 {
		best := ranked[0]
		summary.BestCrop = best.Crop
		summary.ConfidenceScore = units.Round1(best.Combined)
		if best.Profitability != nil {
			summary.ExpectedProfit = units.Round2(best.Profitability.NetProfit)
		}
	}

	if topN > len(ranked) {
		topN = len(ranked)
	}
	recs := make([]models.Recommendation, 0, topN)
	for i, crop := range ranked[:topN] {
		rec := models.Recommendation{
			Rank:             i + 1,
			CropName:         crop.Crop,
			SuitabilityScore: units.Round1(crop.Suitability),
			CombinedScore:    units.Round1(crop.Combined),
			ProfitAnalysis:   RoundProfitability(crop.Profitability),
			RiskAssessment:   roundRisk(crop.Risk),
			PlantingAdvice:   PlantingAdvice(crop, now),
			Notes:            ProfitNotes(crop),
		}
		recs = append(recs, rec)
	}

	return summary, recs
}

// RoundProfitability copies a record with all monetary and percentage
// fields rounded to two decimal places. Returns nil for nil input.
func RoundProfitability(p *models.ProfitabilityRecord) *models.ProfitabilityRecord {
	if p == nil {
		return nil
	}
	r := models.ProfitabilityRecord{
		GrossRevenue:    units.Round2(p.GrossRevenue),
		TotalCosts:      units.Round2(p.TotalCosts),
		NetProfit:       units.Round2(p.NetProfit),
		ProfitMarginPct: units.Round2(p.ProfitMarginPct),
		ROIPct:          units.Round2(p.ROIPct),
		ProfitPerHa:     units.Round2(p.ProfitPerHa),
		BreakevenPrice:  units.Round2(p.BreakevenPrice),
		TotalYieldTons:  units.Round2(p.TotalYieldTons),
		YieldPerHa:      p.YieldPerHa,
		PricePerUnit:    units.Round2(p.PricePerUnit),
	}
	return &r
}

func roundRisk(r models.RiskRecord) models.RiskRecord {
	r.Score = units.Round2(r.Score)
	return r
}
