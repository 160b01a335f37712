package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// RateUnavailable is rendered where a per-mile rate cannot be computed.
const RateUnavailable = "unavailable"

// ParseCurrency strips a leading currency symbol and thousands separators
// from a backend price string like "$23.50" and parses the remainder as a
// decimal number.
func ParseCurrency(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimLeft(trimmed, "$€£₹")
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" {
		return 0, fmt.Errorf("empty price string %q", s)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price string %q: %w", s, err)
	}
	return v, nil
}

// FormatDuration renders a duration in seconds as "1h 5m" above one hour
// and "{m} minutes" below it.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// RatePerMile derives a display dollars-per-mile figure from a price string
// and a distance. A zero distance or an unparseable price yields
// RateUnavailable rather than a divide-by-zero artifact.
func RatePerMile(priceEstimate string, distanceMiles float64) string {
	price, err := ParseCurrency(priceEstimate)
	if err != nil || distanceMiles <= 0 {
		return RateUnavailable
	}
	return fmt.Sprintf("$%.2f/mi", price/distanceMiles)
}
