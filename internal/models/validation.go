package models

import (
	"math"
	"strings"
)

// Coordinate and query guards applied at the API boundary. Messages are an
// external contract and must not be reworded.

// ValidateLatitude checks that lat is a finite number in [-90, 90].
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return &ValidationError{
			Field:   "latitude",
			Message: "Latitude must be a number between -90 and 90",
		}
	}
	return nil
}

// ValidateLongitude checks that lon is a finite number in [-180, 180].
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return &ValidationError{
			Field:   "longitude",
			Message: "Longitude must be a number between -180 and 180",
		}
	}
	return nil
}

// ValidateDays checks the forecast day count range.
func ValidateDays(days int) error {
	if days < 1 || days > 16 {
		return &ValidationError{
			Field:   "days",
			Message: "Days parameter must be between 1 and 16",
		}
	}
	return nil
}

// ValidateSearchQuery trims the query and checks the minimum length.
// The trimmed query is returned and must be used for the upstream call.
func ValidateSearchQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 2 {
		return "", &ValidationError{
			Field:   "query",
			Message: "Search query must be at least 2 characters long",
		}
	}
	return trimmed, nil
}
