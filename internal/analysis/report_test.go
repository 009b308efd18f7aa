package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/agrolytics/cropsense/pkg/models"
)

func rankedFixture() []models.CropAnalysis {
	return []models.CropAnalysis{
		{
			Crop:        "wheat",
			Suitability: 87.345,
			Combined:    78.912,
			Profitability: &models.ProfitabilityRecord{
				GrossRevenue:    7500,
				TotalCosts:      4000,
				NetProfit:       3500.005,
				ProfitMarginPct: 46.666666,
				ROIPct:          87.5,
				ProfitPerHa:     350.0005,
				BreakevenPrice:  133.33333,
				TotalYieldTons:  30,
				YieldPerHa:      3.0,
				PricePerUnit:    250,
			},
			Risk: models.RiskRecord{
				Weather: models.RiskLow,
				Market:  models.RiskLow,
				Pest:    models.RiskLow,
				Overall: models.RiskLow,
				Score:   33.33,
			},
			PlantingMonths: []int{3, 4, 10, 11},
		},
		{Crop: "corn", Suitability: 70, Combined: 65},
		{Crop: "rice", Suitability: 60, Combined: 55},
	}
}

func TestFormatRecommendations_Empty(t *testing.T) {
	summary, recs := FormatRecommendations(nil, DefaultTopN, time.Now())

	if summary.BestCrop != models.BestCropNone {
		t.Errorf("expected best crop %q, got %q", models.BestCropNone, summary.BestCrop)
	}
	if summary.ExpectedProfit != 0 {
		t.Errorf("expected profit 0, got %v", summary.ExpectedProfit)
	}
	if summary.ConfidenceScore != 0 {
		t.Errorf("expected confidence 0, got %v", summary.ConfidenceScore)
	}
	if recs == nil {
		t.Fatal("recommendations should be empty, not nil")
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %d", len(recs))
	}
}

func TestFormatRecommendations_SummaryMatchesTopEntry(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	summary, recs := FormatRecommendations(rankedFixture(), DefaultTopN, now)

	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	top := recs[0]
	if summary.BestCrop != top.CropName {
		t.Errorf("summary best crop %q != top recommendation %q", summary.BestCrop, top.CropName)
	}
	if summary.ConfidenceScore != top.CombinedScore {
		t.Errorf("summary confidence %v != top combined %v", summary.ConfidenceScore, top.CombinedScore)
	}
	if top.ProfitAnalysis == nil {
		t.Fatal("top recommendation missing profit analysis")
	}
	if summary.ExpectedProfit != top.ProfitAnalysis.NetProfit {
		t.Errorf("summary profit %v != top net profit %v", summary.ExpectedProfit, top.ProfitAnalysis.NetProfit)
	}
}

func TestFormatRecommendations_Rounding(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, recs := FormatRecommendations(rankedFixture(), 1, now)

	top := recs[0]
	if top.SuitabilityScore != 87.3 {
		t.Errorf("expected suitability 87.3, got %v", top.SuitabilityScore)
	}
	if top.CombinedScore != 78.9 {
		t.Errorf("expected combined 78.9, got %v", top.CombinedScore)
	}
	p := top.ProfitAnalysis
	if p.NetProfit != 3500.01 {
		t.Errorf("expected net profit 3500.01, got %v", p.NetProfit)
	}
	if p.ProfitMarginPct != 46.67 {
		t.Errorf("expected margin 46.67, got %v", p.ProfitMarginPct)
	}
	if p.BreakevenPrice != 133.33 {
		t.Errorf("expected breakeven 133.33, got %v", p.BreakevenPrice)
	}
}

func TestFormatRecommendations_TopNTruncates(t *testing.T) {
	now := time.Now()
	_, recs := FormatRecommendations(rankedFixture(), 2, now)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, rec.Rank)
		}
	}
}

func TestFormatRecommendations_MissingProfitability(t *testing.T) {
	ranked := []models.CropAnalysis{{Crop: "corn", Suitability: 70, Combined: 42}}
	summary, recs := FormatRecommendations(ranked, DefaultTopN, time.Now())

	if summary.ExpectedProfit != 0 {
		t.Errorf("expected profit 0 without profitability data, got %v", summary.ExpectedProfit)
	}
	if recs[0].ProfitAnalysis != nil {
		t.Error("expected nil profit analysis")
	}
	found := false
	for _, note := range recs[0].Notes {
		if note == "Insufficient market data to estimate profitability" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected insufficient-data note, got %v", recs[0].Notes)
	}
}

func TestFormatRecommendations_JSONRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	summary, recs := FormatRecommendations(rankedFixture(), DefaultTopN, now)

	raw, err := json.Marshal(struct {
		Summary models.ReportSummary    `json:"summary"`
		Recs    []models.Recommendation `json:"top_recommendations"`
	}{summary, recs})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Summary models.ReportSummary    `json:"summary"`
		Recs    []models.Recommendation `json:"top_recommendations"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Summary != summary {
		t.Errorf("summary changed across JSON round trip: %+v vs %+v", decoded.Summary, summary)
	}
	if decoded.Recs[0].CropName != recs[0].CropName ||
		decoded.Recs[0].CombinedScore != recs[0].CombinedScore {
		t.Error("top recommendation changed across JSON round trip")
	}
}
