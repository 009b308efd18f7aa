package analysis

import (
	"sort"

	"github.com/agrolytics/cropsense/pkg/models"
)

// Combined-score blend: suitability dominates, profitability adjusts.
const (
	suitabilityWeight = 0.6
	roiWeight         = 0.4
	roiCap            = 100 // one extreme-ROI crop must not dominate the ranking
)

// Rank assigns each analysis its combined score and returns a new slice
// sorted by combined score descending. The sort is stable: crops with
// equal scores keep their input order, which makes ranking
// deterministic for a fixed catalog order. The input slice is not
// modified.
func Rank(analyses []models.CropAnalysis) []models.CropAnalysis {
	ranked := make([]models.CropAnalysis, len(analyses))
	copy(ranked, analyses)

	for i := range ranked {
		roi := 0.0
		if ranked[i].Profitability != nil {
			roi = ranked[i].Profitability.ROIPct
			if roi > roiCap {
				roi = roiCap
			}
		}
		ranked[i].Combined = ranked[i].Suitability*suitabilityWeight + roi*roiWeight
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Combined > ranked[j].Combined
	})

	return ranked
}
