package models

import "time"

// PriceQuote is a current market price for one crop.
type PriceQuote struct {
	Crop         string    `json:"crop"`
	CurrentPrice float64   `json:"current_price"`
	BasePrice    float64   `json:"base_price"`
	ChangePct    float64   `json:"price_change_percent"`
	Currency     string    `json:"currency"`
	Unit         string    `json:"unit"`
	UpdatedAt    time.Time `json:"last_updated"`
}

// CropEconomics holds the cost and yield assumptions used for
// profitability analysis. Zero values mean the crop is unknown to the
// market source.
type CropEconomics struct {
	ProductionCostPerHa float64 `json:"production_cost_per_ha"`
	TypicalYieldPerHa   float64 `json:"typical_yield_per_ha"` // tons
}

// PriceHistory is a simulated daily price series with summary statistics.
type PriceHistory struct {
	Crop   string       `json:"crop"`
	Points []PricePoint `json:"points"`
	Stats  PriceStats   `json:"statistics"`
}

// PricePoint is one day in a price series.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// PriceStats summarizes a price series.
type PriceStats struct {
	Average    float64 `json:"average_price"`
	Volatility float64 `json:"volatility"` // standard deviation
	Trend      string  `json:"trend"`      // "increasing" or "decreasing"
	Min        float64 `json:"min_price"`
	Max        float64 `json:"max_price"`
}

// PriceForecast projects seasonal price movement for a crop.
type PriceForecast struct {
	Crop              string          `json:"crop"`
	Months            []ForecastMonth `json:"price_forecast"`
	BestSellingMonths []string        `json:"best_selling_months"`
}

// ForecastMonth is one month in a seasonal price forecast.
type ForecastMonth struct {
	Month     string  `json:"month"`      // YYYY-MM
	MonthName string  `json:"month_name"` // e.g. "March 2026"
	Price     float64 `json:"forecasted_price"`
	Trend     string  `json:"price_trend"` // "up", "down", "stable"
}

// MarketOutlet is a nearby buyer for a crop, with the effective price
// after transport costs.
type MarketOutlet struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"` // farmers_market, wholesale, processor, export
	DistanceKm      float64 `json:"distance_km"`
	PricePremium    float64 `json:"price_premium"`
	PotentialPrice  float64 `json:"potential_price"`
	TransportCost   float64 `json:"transport_cost"`
	NetPrice        float64 `json:"net_price"`
	ProfitPotential string  `json:"profit_potential"` // "high" or "medium"
	Contact         string  `json:"contact"`
	Requirements    string  `json:"requirements"`
}
