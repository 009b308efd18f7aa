// Package models contains shared data models used across the CropSense codebase.
package models

// CropRequirement describes the agronomic needs of a single crop.
// Requirements are reference data: loaded once at startup and never mutated.
type CropRequirement struct {
	Name              string   `json:"name"`
	TempMinC          float64  `json:"temp_min_c"`
	TempMaxC          float64  `json:"temp_max_c"`
	RainfallMinMm     float64  `json:"rainfall_min_mm"` // annual
	RainfallMaxMm     float64  `json:"rainfall_max_mm"` // annual
	SoilPHMin         float64  `json:"soil_ph_min"`
	SoilPHMax         float64  `json:"soil_ph_max"`
	SoilTypes         []string `json:"soil_types"`      // lowercase labels
	PlantingMonths    []int    `json:"planting_months"` // 1-12
	GrowingSeasonDays int      `json:"growing_season_days"`
}

// PlantsIn reports whether month (1-12) is in the crop's planting window.
func (r CropRequirement) PlantsIn(month int) bool {
	for _, m := range r.PlantingMonths {
		if m == month {
			return true
		}
	}
	return false
}
