package analysis

import "github.com/agrolytics/cropsense/pkg/models"

// Profitability derives revenue, cost and margin figures for one crop
// on a given land area. price is per ton, cost per hectare, yield in
// tons per hectare. Returns ErrInsufficientData when price, cost or
// yield is zero or negative. Results are unrounded; rounding happens
// at the presentation boundary.
func Profitability(pricePerTon, costPerHa, yieldPerHa, areaHa float64) (models.ProfitabilityRecord, error) {
	if pricePerTon <= 0 || costPerHa <= 0 || yieldPerHa <= 0 || areaHa <= 0 {
		return models.ProfitabilityRecord{}, ErrInsufficientData
	}

	totalYield := yieldPerHa * areaHa
	grossRevenue := totalYield * pricePerTon
	totalCosts := costPerHa * areaHa
	netProfit := grossRevenue - totalCosts

	rec := models.ProfitabilityRecord{
		GrossRevenue:   grossRevenue,
		TotalCosts:     totalCosts,
		NetProfit:      netProfit,
		ProfitPerHa:    netProfit / areaHa,
		TotalYieldTons: totalYield,
		YieldPerHa:     yieldPerHa,
		PricePerUnit:   pricePerTon,
	}
	if grossRevenue > 0 {
		rec.ProfitMarginPct = netProfit / grossRevenue * 100
	}
	if totalCosts > 0 {
		rec.ROIPct = netProfit / totalCosts * 100
	}
	if totalYield > 0 {
		rec.BreakevenPrice = totalCosts / totalYield
	}
	return rec, nil
}
