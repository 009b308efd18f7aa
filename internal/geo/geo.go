// Package geo validates coordinates and resolves human-readable place
// descriptions via reverse geocoding.
package geo

import (
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// ValidateCoordinate checks that a latitude/longitude pair is on the
// globe.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

// Locator resolves place descriptions for coordinates. Without an API
// key it degrades to empty descriptions; reports then carry only the
// raw coordinates.
type Locator struct {
	enabled bool
}

// NewLocator configures the geocoding backend. An empty API key
// disables lookups.
func NewLocator(apiKey string) *Locator {
	if apiKey == "" {
		return &Locator{}
	}
	geocoder.ApiKey = apiKey
	return &Locator{enabled: true}
}

// Describe returns a short region label for a coordinate, like
// "Lincoln, Nebraska, United States". Returns "" when lookups are
// disabled or fail; the coordinate is still usable without it.
func (l *Locator) Describe(lat, lon float64) string {
	if !l.enabled {
		return ""
	}
	addrs, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil || len(addrs) == 0 {
		return ""
	}

	addr := addrs[0]
	parts := make([]string, 0, 3)
	for _, p := range []string{addr.City, addr.State, addr.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
