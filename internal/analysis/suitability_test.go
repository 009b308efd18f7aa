package analysis

import (
	"math"
	"testing"

	"github.com/agrolytics/cropsense/pkg/models"
)

func fptr(v float64) *float64 { return &v }

// wheatReq mirrors the built-in wheat requirement.
func wheatReq() models.CropRequirement {
	return models.CropRequirement{
		Name: "wheat", TempMinC: 15, TempMaxC: 25,
		RainfallMinMm: 450, RainfallMaxMm: 650,
		SoilPHMin: 6.0, SoilPHMax: 7.5,
		SoilTypes:      []string{"loam", "clay loam", "sandy loam"},
		PlantingMonths: []int{3, 4, 10, 11},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSuitabilityScore_PerfectMatch(t *testing.T) {
	snap := models.EnvironmentalSnapshot{
		TempC:            fptr(20),
		AnnualRainfallMm: fptr(550),
		SoilPH:           fptr(6.5),
		SoilType:         "loam",
	}

	got := SuitabilityScore(wheatReq(), snap, 3)
	if !approxEqual(got, 100) {
		t.Errorf("expected 100, got %v", got)
	}
}

func TestSuitabilityScore_Subscores(t *testing.T) {
	tests := []struct {
		name     string
		snap     models.EnvironmentalSnapshot
		month    int
		expected float64
	}{
		{
			// Only temperature present, 3 degrees below min: 100-15=85.
			// Seasonal factor also present (month 3 is a planting month).
			// (85*0.30 + 100*0.10) / 0.40 = 88.75
			name:     "temperature below range",
			snap:     models.EnvironmentalSnapshot{TempC: fptr(12)},
			month:    3,
			expected: 88.75,
		},
		{
			// 5 degrees above max: 100-25=75. (75*0.30+100*0.10)/0.40 = 81.25
			name:     "temperature above range",
			snap:     models.EnvironmentalSnapshot{TempC: fptr(30)},
			month:    3,
			expected: 81.25,
		},
		{
			// Rainfall deficit: 100 - (450-225)/450*50 = 75.
			// (75*0.25 + 100*0.10) / 0.35 = 82.142857...
			name:     "rainfall below range",
			snap:     models.EnvironmentalSnapshot{AnnualRainfallMm: fptr(225)},
			month:    3,
			expected: (75*0.25 + 100*0.10) / 0.35,
		},
		{
			// Rainfall excess: 100 - (975-650)/650*30 = 85.
			name:     "rainfall above range",
			snap:     models.EnvironmentalSnapshot{AnnualRainfallMm: fptr(975)},
			month:    3,
			expected: (85*0.25 + 100*0.10) / 0.35,
		},
		{
			// pH 5.25, midpoint 6.75: 100 - 1.5*20 = 70.
			name:     "soil ph below range",
			snap:     models.EnvironmentalSnapshot{SoilPH: fptr(5.25)},
			month:    3,
			expected: (70*0.20 + 100*0.10) / 0.30,
		},
		{
			// Soil type mismatch scores a flat 50.
			name:     "soil type mismatch",
			snap:     models.EnvironmentalSnapshot{SoilType: "clay"},
			month:    3,
			expected: (50*0.15 + 100*0.10) / 0.25,
		},
		{
			// Month 7: circular distances to {3,4,10,11} are 4,3,3,4.
			// Seasonal = 100 - 3*20 = 40; only factor present.
			name:     "off-season month only",
			snap:     models.EnvironmentalSnapshot{},
			month:    7,
			expected: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuitabilityScore(wheatReq(), tt.snap, tt.month)
			if !approxEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSuitabilityScore_AsymmetricRainfallPenalty(t *testing.T) {
	req := wheatReq()

	// Same relative deviation on each side of the range: 50% below min
	// vs 50% above max. The deficit must be penalized more harshly.
	below := SuitabilityScore(req, models.EnvironmentalSnapshot{AnnualRainfallMm: fptr(225)}, 7)
	above := SuitabilityScore(req, models.EnvironmentalSnapshot{AnnualRainfallMm: fptr(975)}, 7)
	if below >= above {
		t.Errorf("deficit should score lower than excess: below=%v above=%v", below, above)
	}
}

func TestSuitabilityScore_NoFactors(t *testing.T) {
	got := SuitabilityScore(wheatReq(), models.EnvironmentalSnapshot{}, 0)
	if got != 0 {
		t.Errorf("expected 0 with no evaluable factors, got %v", got)
	}
}

func TestSuitabilityScore_AlwaysInRange(t *testing.T) {
	extremes := []models.EnvironmentalSnapshot{
		{TempC: fptr(-60), AnnualRainfallMm: fptr(0), SoilPH: fptr(1), SoilType: "gravel"},
		{TempC: fptr(60), AnnualRainfallMm: fptr(10000), SoilPH: fptr(14), SoilType: "loam"},
		{TempC: fptr(20), AnnualRainfallMm: fptr(550), SoilPH: fptr(6.5), SoilType: "loam"},
	}
	for _, snap := range extremes {
		for month := 1; month <= 12; month++ {
			got := SuitabilityScore(wheatReq(), snap, month)
			if got < 0 || got > 100 {
				t.Errorf("score %v out of [0,100] for snap %+v month %d", got, snap, month)
			}
		}
	}
}

func TestSuitabilityScore_CaseInsensitiveSoilType(t *testing.T) {
	snap := models.EnvironmentalSnapshot{SoilType: "Clay Loam"}
	got := SuitabilityScore(wheatReq(), snap, 7)
	// Matching soil: (100*0.15 + 40*0.10) / 0.25
	want := (100*0.15 + 40*0.10) / 0.25
	if !approxEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMonthDistance_WrapsAtYearEnd(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{1, 12, 1},
		{12, 1, 1},
		{1, 7, 6},
		{3, 3, 0},
		{2, 11, 3},
	}
	for _, tt := range tests {
		if got := monthDistance(tt.a, tt.b); got != tt.expected {
			t.Errorf("monthDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}
