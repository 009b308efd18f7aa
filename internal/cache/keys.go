package cache

import (
	"fmt"
	"sort"
	"strings"
)

// ReportKey identifies a cached recommendation report. The crop filter
// is sorted so equivalent queries share an entry regardless of request
// order. Coordinates are truncated to four decimals (~11m), close
// enough that neighboring queries reuse the same environmental data.
func ReportKey(lat, lon, areaHa float64, crops []string, topN int) string {
	filter := "all"
	if len(crops) > 0 {
		sorted := make([]string, len(crops))
		copy(sorted, crops)
		sort.Strings(sorted)
		filter = strings.Join(sorted, ",")
	}
	return fmt.Sprintf("report:%.4f:%.4f:%.2f:%s:%d", lat, lon, areaHa, filter, topN)
}

// ForecastKey identifies a cached seasonal price forecast.
func ForecastKey(crop string, months int) string {
	return fmt.Sprintf("forecast:%s:%d", crop, months)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
