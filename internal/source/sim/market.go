package sim

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/agrolytics/cropsense/internal/source"
	"github.com/agrolytics/cropsense/pkg/models"
)

// transportCostPerKm is the flat haulage rate applied to outlet prices.
const transportCostPerKm = 0.5

// seasonalPatterns holds six-month price multiplier cycles per crop.
// Crops without a pattern trade flat.
var seasonalPatterns = map[string][]float64{
	"wheat":    {1.1, 1.05, 1.0, 0.95, 0.9, 0.95},
	"corn":     {0.95, 1.0, 1.05, 1.1, 1.05, 1.0},
	"rice":     {1.0, 1.0, 1.05, 1.1, 1.05, 1.0},
	"tomatoes": {1.2, 1.1, 1.0, 0.9, 1.0, 1.1},
	"potatoes": {1.0, 1.05, 1.1, 1.05, 1.0, 0.95},
}

type outletSpec struct {
	name         string
	typ          string
	distanceKm   float64
	premium      float64
	contact      string
	requirements string
}

var outletSpecs = []outletSpec{
	{"Local Farmers Market", "farmers_market", 15, 1.2, "info@localmarket.com", "Organic certification preferred"},
	{"Regional Wholesale Market", "wholesale", 45, 1.1, "buyers@regionalwholesale.com", "Minimum 5 tons"},
	{"Processing Plant", "processor", 80, 0.95, "procurement@processor.com", "Contract required, bulk quantities"},
	{"Export Terminal", "export", 120, 1.15, "export@terminal.com", "International quality standards"},
}

var marketStatuses = []string{
	source.MarketStable,
	source.MarketVolatile,
	source.MarketBullish,
	source.MarketBearish,
}

// Market simulates a commodity market: per-crop price volatility around
// baseline prices, seasonal forecasts, daily history and nearby
// outlets. Refresh resamples volatility and market status.
type Market struct {
	mu          sync.Mutex
	rng         *rand.Rand
	multipliers map[string]float64
	status      string
	updatedAt   time.Time
}

func NewMarket(seed int64) *Market {
	m := &Market{
		rng:         rand.New(rand.NewSource(seed)),
		multipliers: make(map[string]float64),
	}
	m.resample()
	return m
}

// Refresh resamples price volatility and market status. Implements
// source.Refresher.
func (m *Market) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resample()
	return nil
}

// resample rolls new volatility multipliers and a market status.
// Callers other than NewMarket hold m.mu.
func (m *Market) resample() {
	for crop := range m.multipliers {
		m.multipliers[crop] = m.volatility()
	}
	m.status = marketStatuses[m.rng.Intn(len(marketStatuses))]
	m.updatedAt = time.Now().UTC()
}

func (m *Market) Prices(ctx context.Context, crops []string) ([]models.PriceQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	quotes := make([]models.PriceQuote, 0, len(crops))
	for _, crop := range crops {
		q, ok := source.BaselineQuote(crop, m.updatedAt)
		if !ok {
			continue
		}
		mult := m.multiplierLocked(crop)
		q.CurrentPrice = round2(q.BasePrice * mult)
		q.ChangePct = round2((mult - 1) * 100)
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (m *Market) Economics(ctx context.Context, crop string) (models.CropEconomics, error) {
	if err := ctx.Err(); err != nil {
		return models.CropEconomics{}, err
	}
	eco, _ := source.BaselineEconomics(crop)
	return eco, nil
}

func (m *Market) Status(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, nil
}

func (m *Market) History(ctx context.Context, crop string, days int) (models.PriceHistory, error) {
	if err := ctx.Err(); err != nil {
		return models.PriceHistory{}, err
	}
	if days <= 0 {
		days = 30
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	base := source.BasePrice(crop)
	today := time.Now().UTC()
	points := make([]models.PricePoint, days)
	for i := 0; i < days; i++ {
		// Mild upward drift over the window plus daily noise.
		trend := 1 + (float64(i)/float64(days))*0.1
		price := base * trend * m.normal(1, 0.05)
		points[i] = models.PricePoint{
			Date:  today.AddDate(0, 0, i-days+1).Format("2006-01-02"),
			Price: round2(math.Max(price, base*0.5)),
		}
	}

	return models.PriceHistory{
		Crop:   crop,
		Points: points,
		Stats:  summarize(points),
	}, nil
}

func (m *Market) SeasonalForecast(ctx context.Context, crop string, months int, from time.Time) (models.PriceForecast, error) {
	if err := ctx.Err(); err != nil {
		return models.PriceForecast{}, err
	}
	if months <= 0 {
		months = 6
	}
	m.mu.Lock()
	current := source.BasePrice(crop) * m.multiplierLocked(crop)
	m.mu.Unlock()

	pattern, ok := seasonalPatterns[crop]
	if !ok {
		pattern = []float64{1, 1, 1, 1, 1, 1}
	}

	base := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := models.PriceForecast{
		Crop:   crop,
		Months: make([]models.ForecastMonth, 0, months),
	}

	prev := current
	maxPrice := 0.0
	for i := 0; i < months; i++ {
		month := base.AddDate(0, i+1, 0)
		price := current * pattern[i%len(pattern)]
		out.Months = append(out.Months, models.ForecastMonth{
			Month:     month.Format("2006-01"),
			MonthName: month.Format("January 2006"),
			Price:     round2(price),
			Trend:     trendLabel(price, prev),
		})
		if price > maxPrice {
			maxPrice = price
		}
		prev = price
	}

	for _, fm := range out.Months {
		if fm.Price >= round2(maxPrice*0.98) {
			out.BestSellingMonths = append(out.BestSellingMonths, fm.MonthName)
		}
	}
	return out, nil
}

func (m *Market) Outlets(ctx context.Context, crop string, maxDistanceKm float64) ([]models.MarketOutlet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = 100
	}
	m.mu.Lock()
	current := source.BasePrice(crop) * m.multiplierLocked(crop)
	m.mu.Unlock()

	outlets := make([]models.MarketOutlet, 0, len(outletSpecs))
	for _, spec := range outletSpecs {
		if spec.distanceKm > maxDistanceKm {
			continue
		}
		potential := current * spec.premium
		transport := spec.distanceKm * transportCostPerKm
		net := potential - transport
		profit := "medium"
		if net > current {
			profit = "high"
		}
		outlets = append(outlets, models.MarketOutlet{
			Name:            spec.name,
			Type:            spec.typ,
			DistanceKm:      spec.distanceKm,
			PricePremium:    spec.premium,
			PotentialPrice:  round2(potential),
			TransportCost:   round2(transport),
			NetPrice:        round2(net),
			ProfitPotential: profit,
			Contact:         spec.contact,
			Requirements:    spec.requirements,
		})
	}
	sort.SliceStable(outlets, func(i, j int) bool {
		return outlets[i].NetPrice > outlets[j].NetPrice
	})
	return outlets, nil
}

// multiplierLocked returns the current volatility multiplier for a
// crop, sampling one on first use. Callers hold m.mu.
func (m *Market) multiplierLocked(crop string) float64 {
	mult, ok := m.multipliers[crop]
	if !ok {
		mult = m.volatility()
		m.multipliers[crop] = mult
	}
	return mult
}

// volatility samples a price multiplier around parity. Callers hold m.mu.
func (m *Market) volatility() float64 {
	return math.Max(0.5, m.normal(1.0, 0.1))
}

func (m *Market) normal(mean, std float64) float64 {
	return m.rng.NormFloat64()*std + mean
}

func summarize(points []models.PricePoint) models.PriceStats {
	if len(points) == 0 {
		return models.PriceStats{}
	}
	sum := 0.0
	min, max := points[0].Price, points[0].Price
	for _, p := range points {
		sum += p.Price
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	avg := sum / float64(len(points))

	variance := 0.0
	for _, p := range points {
		d := p.Price - avg
		variance += d * d
	}
	variance /= float64(len(points))

	trend := "decreasing"
	if points[len(points)-1].Price > points[0].Price {
		trend = "increasing"
	}

	return models.PriceStats{
		Average:    round2(avg),
		Volatility: round2(math.Sqrt(variance)),
		Trend:      trend,
		Min:        min,
		Max:        max,
	}
}

func trendLabel(price, prev float64) string {
	switch {
	case price > prev*1.01:
		return "up"
	case price < prev*0.99:
		return "down"
	default:
		return "stable"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
