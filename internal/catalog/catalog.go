// Package catalog provides the static crop requirement table. The
// catalog is loaded once at startup and treated as immutable afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agrolytics/cropsense/pkg/models"
)

// Catalog is an immutable, ordered collection of crop requirements.
// Order is significant: it fixes the tie-break order during ranking.
type Catalog struct {
	crops map[string]models.CropRequirement
	order []string
}

// defaultCrops is the built-in requirement table. Temperature in °C,
// rainfall in mm/year, months 1-12.
var defaultCrops = []models.CropRequirement{
	{
		Name: "wheat", TempMinC: 15, TempMaxC: 25,
		RainfallMinMm: 450, RainfallMaxMm: 650,
		SoilPHMin: 6.0, SoilPHMax: 7.5,
		SoilTypes:      []string{"loam", "clay loam", "sandy loam"},
		PlantingMonths: []int{3, 4, 10, 11}, GrowingSeasonDays: 120,
	},
	{
		Name: "corn", TempMinC: 20, TempMaxC: 30,
		RainfallMinMm: 500, RainfallMaxMm: 800,
		SoilPHMin: 6.0, SoilPHMax: 6.8,
		SoilTypes:      []string{"loam", "sandy loam", "silt loam"},
		PlantingMonths: []int{4, 5, 6}, GrowingSeasonDays: 90,
	},
	{
		Name: "rice", TempMinC: 20, TempMaxC: 35,
		RainfallMinMm: 1000, RainfallMaxMm: 2000,
		SoilPHMin: 5.5, SoilPHMax: 7.0,
		SoilTypes:      []string{"clay", "clay loam"},
		PlantingMonths: []int{6, 7, 8}, GrowingSeasonDays: 105,
	},
	{
		Name: "soybeans", TempMinC: 20, TempMaxC: 30,
		RainfallMinMm: 450, RainfallMaxMm: 700,
		SoilPHMin: 6.0, SoilPHMax: 7.0,
		SoilTypes:      []string{"loam", "sandy loam", "silt loam"},
		PlantingMonths: []int{4, 5, 6}, GrowingSeasonDays: 100,
	},
	{
		Name: "cotton", TempMinC: 23, TempMaxC: 32,
		RainfallMinMm: 500, RainfallMaxMm: 1000,
		SoilPHMin: 5.8, SoilPHMax: 8.0,
		SoilTypes:      []string{"sandy loam", "clay loam"},
		PlantingMonths: []int{4, 5, 6}, GrowingSeasonDays: 160,
	},
	{
		Name: "tomatoes", TempMinC: 18, TempMaxC: 26,
		RainfallMinMm: 400, RainfallMaxMm: 600,
		SoilPHMin: 6.0, SoilPHMax: 6.8,
		SoilTypes:      []string{"loam", "sandy loam"},
		PlantingMonths: []int{3, 4, 5}, GrowingSeasonDays: 75,
	},
	{
		Name: "potatoes", TempMinC: 15, TempMaxC: 20,
		RainfallMinMm: 400, RainfallMaxMm: 600,
		SoilPHMin: 5.0, SoilPHMax: 6.0,
		SoilTypes:      []string{"sandy loam", "loam"},
		PlantingMonths: []int{3, 4, 8, 9}, GrowingSeasonDays: 90,
	},
	{
		Name: "carrots", TempMinC: 16, TempMaxC: 20,
		RainfallMinMm: 350, RainfallMaxMm: 500,
		SoilPHMin: 6.0, SoilPHMax: 7.0,
		SoilTypes:      []string{"sandy loam", "loam"},
		PlantingMonths: []int{3, 4, 7, 8}, GrowingSeasonDays: 70,
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := build(defaultCrops)
	if err != nil {
		// The built-in table is validated by tests; this cannot happen
		// at runtime.
		panic(err)
	}
	return c
}

// LoadFile reads a JSON array of crop requirements and builds a catalog
// from it, replacing the built-in table entirely.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading crop catalog: %w", err)
	}
	var crops []models.CropRequirement
	if err := json.Unmarshal(data, &crops); err != nil {
		return nil, fmt.Errorf("parsing crop catalog: %w", err)
	}
	return build(crops)
}

func build(crops []models.CropRequirement) (*Catalog, error) {
	c := &Catalog{crops: make(map[string]models.CropRequirement, len(crops))}
	for _, cr := range crops {
		name := strings.ToLower(strings.TrimSpace(cr.Name))
		if name == "" {
			return nil, fmt.Errorf("crop requirement with empty name")
		}
		if _, dup := c.crops[name]; dup {
			return nil, fmt.Errorf("duplicate crop %q in catalog", name)
		}
		if err := validate(cr); err != nil {
			return nil, fmt.Errorf("crop %q: %w", name, err)
		}
		cr.Name = name
		c.crops[name] = cr
		c.order = append(c.order, name)
	}
	if len(c.order) == 0 {
		return nil, fmt.Errorf("crop catalog is empty")
	}
	return c, nil
}

func validate(cr models.CropRequirement) error {
	if cr.TempMinC > cr.TempMaxC {
		return fmt.Errorf("temperature range inverted")
	}
	if cr.RainfallMinMm > cr.RainfallMaxMm {
		return fmt.Errorf("rainfall range inverted")
	}
	if cr.RainfallMinMm < 0 {
		return fmt.Errorf("negative rainfall requirement")
	}
	if cr.SoilPHMin > cr.SoilPHMax {
		return fmt.Errorf("soil pH range inverted")
	}
	for _, m := range cr.PlantingMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("planting month %d out of range", m)
		}
	}
	if cr.GrowingSeasonDays <= 0 {
		return fmt.Errorf("growing season must be positive")
	}
	return nil
}

// Get returns the requirement for a crop name (case-insensitive).
func (c *Catalog) Get(name string) (models.CropRequirement, bool) {
	cr, ok := c.crops[strings.ToLower(strings.TrimSpace(name))]
	return cr, ok
}

// Names returns crop names in catalog order. The caller must not
// modify the returned slice.
func (c *Catalog) Names() []string {
	return c.order
}

// Len returns the number of crops in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}
