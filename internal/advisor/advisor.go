// Package advisor orchestrates crop recommendation: it gathers
// environmental and market data, fans analysis out across the crop
// catalog, and assembles the final report.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrolytics/cropsense/internal/analysis"
	"github.com/agrolytics/cropsense/internal/cache"
	"github.com/agrolytics/cropsense/internal/catalog"
	"github.com/agrolytics/cropsense/internal/geo"
	"github.com/agrolytics/cropsense/internal/source"
	"github.com/agrolytics/cropsense/pkg/models"
	"github.com/agrolytics/cropsense/pkg/units"
)

// calendarMonths is the planting-calendar horizon of a report.
const calendarMonths = 12

// calendarTopCrops bounds how many ranked crops feed the calendar.
const calendarTopCrops = 5

// Query is one recommendation request.
type Query struct {
	Latitude   float64
	Longitude  float64
	LandAreaHa float64
	Crops      []string
	TopN       int
}

// Service produces recommendation reports. All fields are required
// except locator.
type Service struct {
	catalog *catalog.Catalog
	env     source.EnvironmentalSource
	market  source.MarketSource
	cache   cache.Cache
	locator *geo.Locator
	ttl     time.Duration
	log     *slog.Logger

	now func() time.Time
}

func New(cat *catalog.Catalog, env source.EnvironmentalSource, market source.MarketSource, c cache.Cache, locator *geo.Locator, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		catalog: cat,
		env:     env,
		market:  market,
		cache:   c,
		locator: locator,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// Recommend validates the query, analyzes every selected crop and
// returns the assembled report. Environmental data is fetched once per
// query; per-crop analyses run concurrently but land in catalog order
// so equal scores rank deterministically.
func (s *Service) Recommend(ctx context.Context, q Query) (models.Report, error) {
	if err := geo.ValidateCoordinate(q.Latitude, q.Longitude); err != nil {
		return models.Report{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, err)
	}
	if q.LandAreaHa <= 0 {
		return models.Report{}, fmt.Errorf("%w: got %v", ErrInvalidArea, q.LandAreaHa)
	}
	topN := q.TopN
	if topN <= 0 {
		topN = analysis.DefaultTopN
	}

	selected, err := s.selectCrops(q.Crops)
	if err != nil {
		return models.Report{}, err
	}

	key := cache.ReportKey(q.Latitude, q.Longitude, q.LandAreaHa, selected, topN)
	if report, ok := s.cachedReport(ctx, key); ok {
		return report, nil
	}

	now := s.now().UTC()
	weather, soil, climate := s.snapshot(ctx, q.Latitude, q.Longitude)
	quotes := s.quotes(ctx, selected)

	annual := units.AnnualizeWeeklyRainfall(weather.RainfallWeekMm)
	snap := models.EnvironmentalSnapshot{
		TempC:            &weather.AvgTempC,
		AnnualRainfallMm: &annual,
		SoilPH:           &soil.PH,
		SoilType:         soil.Type,
		WindSpeedMS:      weather.WindSpeedMS,
	}
	sig := models.VolatilitySignals{
		TempVariance:        &climate.TempVarianceC,
		RainfallUncertainty: &climate.RainfallVarianceMm,
	}

	results := make([]models.CropAnalysis, len(selected))
	var wg sync.WaitGroup
	for i, name := range selected {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = s.analyzeCrop(ctx, name, q.LandAreaHa, snap, sig, quotes[name], int(now.Month()))
		}(i, name)
	}
	wg.Wait()

	ranked := analysis.Rank(results)
	summary, recs := analysis.FormatRecommendations(ranked, topN, now)

	top := ranked
	if len(top) > calendarTopCrops {
		top = top[:calendarTopCrops]
	}

	steps := analysis.NextSteps(top, now)
	steps = append(steps, analysis.WeatherAdvice(weather)...)

	status, err := s.market.Status(ctx)
	if err != nil {
		status = ""
	}

	report := models.Report{
		ID:                 uuid.New(),
		GeneratedAt:        now,
		TotalCropsAnalyzed: len(selected),
		Summary:            summary,
		TopRecommendations: recs,
		Location: models.LocationInfo{
			Latitude:          q.Latitude,
			Longitude:         q.Longitude,
			LandAreaHa:        q.LandAreaHa,
			RegionDescription: s.describe(q.Latitude, q.Longitude),
		},
		EnvironmentalSummary: models.EnvironmentalSummary{
			Weather:             weather,
			Soil:                soil,
			SoilQuality:         analysis.SoilQuality(soil),
			SoilRecommendations: analysis.SoilRecommendations(soil),
			Climate:             climate,
			MarketStatus:        status,
		},
		PlantingCalendar: analysis.BuildCalendar(top, calendarMonths, now),
		NextSteps:        steps,
	}

	s.storeReport(ctx, key, report)
	return report, nil
}

// CropProfitability computes the profit analysis for a single crop and
// land area at current market prices.
func (s *Service) CropProfitability(ctx context.Context, crop string, areaHa float64) (models.ProfitabilityRecord, error) {
	if areaHa <= 0 {
		return models.ProfitabilityRecord{}, fmt.Errorf("%w: got %v", ErrInvalidArea, areaHa)
	}
	req, ok := s.catalog.Get(crop)
	if !ok {
		return models.ProfitabilityRecord{}, fmt.Errorf("%w: %q", ErrUnknownCrop, crop)
	}

	price := 0.0
	quotes, err := s.market.Prices(ctx, []string{req.Name})
	if err == nil && len(quotes) > 0 {
		price = quotes[0].CurrentPrice
	}
	eco, err := s.market.Economics(ctx, req.Name)
	if err != nil {
		eco = models.CropEconomics{}
	}

	record, err := analysis.Profitability(price, eco.ProductionCostPerHa, eco.TypicalYieldPerHa, areaHa)
	if err != nil {
		return models.ProfitabilityRecord{}, err
	}
	return *analysis.RoundProfitability(&record), nil
}

// Catalog exposes the crop catalog for read-only handlers.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// selectCrops resolves the query's crop filter against the catalog,
// preserving catalog order. An empty filter selects everything.
func (s *Service) selectCrops(filter []string) ([]string, error) {
	if len(filter) == 0 {
		return s.catalog.Names(), nil
	}

	requested := make(map[string]bool, len(filter))
	for _, name := range filter {
		req, ok := s.catalog.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCrop, name)
		}
		requested[req.Name] = true
	}

	selected := make([]string, 0, len(requested))
	for _, name := range s.catalog.Names() {
		if requested[name] {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// snapshot fetches the three environmental readings. Errors degrade to
// the documented defaults so a query always completes.
func (s *Service) snapshot(ctx context.Context, lat, lon float64) (models.WeatherReading, models.SoilReading, models.ClimateStats) {
	weather, err := s.env.Weather(ctx, lat, lon)
	if err != nil {
		s.log.Warn("weather unavailable, using defaults", slog.Any("error", err))
		weather = source.DefaultWeather(s.now().UTC())
	}
	soil, err := s.env.Soil(ctx, lat, lon)
	if err != nil {
		s.log.Warn("soil unavailable, using defaults", slog.Any("error", err))
		soil = source.DefaultSoil()
	}
	climate, err := s.env.Climate(ctx, lat, lon)
	if err != nil {
		s.log.Warn("climate unavailable, using defaults", slog.Any("error", err))
		climate = source.DefaultClimate()
	}
	return weather, soil, climate
}

// quotes fetches current prices keyed by crop. A failed fetch yields an
// empty map; profitability then reports insufficient data per crop.
func (s *Service) quotes(ctx context.Context, crops []string) map[string]models.PriceQuote {
	out := make(map[string]models.PriceQuote, len(crops))
	quotes, err := s.market.Prices(ctx, crops)
	if err != nil {
		s.log.Warn("market prices unavailable", slog.Any("error", err))
		return out
	}
	for _, q := range quotes {
		out[q.Crop] = q
	}
	return out
}

func (s *Service) analyzeCrop(ctx context.Context, name string, areaHa float64, snap models.EnvironmentalSnapshot, sig models.VolatilitySignals, quote models.PriceQuote, month int) models.CropAnalysis {
	req, _ := s.catalog.Get(name)

	result := models.CropAnalysis{
		Crop:              name,
		Suitability:       analysis.SuitabilityScore(req, snap, month),
		Risk:              analysis.AssessRisk(name, sig),
		PlantingMonths:    req.PlantingMonths,
		GrowingSeasonDays: req.GrowingSeasonDays,
	}

	eco, err := s.market.Economics(ctx, name)
	if err != nil {
		eco = models.CropEconomics{}
	}
	record, err := analysis.Profitability(quote.CurrentPrice, eco.ProductionCostPerHa, eco.TypicalYieldPerHa, areaHa)
	if err != nil {
		s.log.Debug("profitability skipped", slog.String("crop", name), slog.Any("error", err))
	} else {
		result.Profitability = &record
	}
	return result
}

func (s *Service) cachedReport(ctx context.Context, key string) (models.Report, bool) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("report cache read failed", slog.Any("error", err))
		return models.Report{}, false
	}
	if !found {
		return models.Report{}, false
	}
	var report models.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		s.log.Warn("cached report corrupt, discarding", slog.Any("error", err))
		_ = s.cache.Delete(ctx, key)
		return models.Report{}, false
	}
	return report, true
}

func (s *Service) storeReport(ctx context.Context, key string, report models.Report) {
	raw, err := json.Marshal(report)
	if err != nil {
		s.log.Warn("report marshal failed", slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("report cache write failed", slog.Any("error", err))
	}
}

func (s *Service) describe(lat, lon float64) string {
	if s.locator == nil {
		return ""
	}
	return s.locator.Describe(lat, lon)
}
