package models

// WeatherSample represents a single normalized weather reading.
// All numeric fields are in metric units (°C, m/s, mm); Time is the
// upstream ISO-8601 timestamp passed through untouched.
type WeatherSample struct {
	Temperature   float64 `json:"temperature"`
	WeatherCode   int     `json:"weatherCode"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
	Time          string  `json:"time"`
}

// Forecast groups the current reading with hourly and daily series
// as returned by the upstream gateway.
type Forecast struct {
	Current WeatherSample   `json:"current"`
	Hourly  []WeatherSample `json:"hourly"`
	Daily   []WeatherSample `json:"daily"`
}

// City represents a geocoding search result.
type City struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Activity names are a fixed external contract consumed by clients and tests.
const (
	ActivitySkiing             = "Skiing"
	ActivitySurfing            = "Surfing"
	ActivityIndoorSightseeing  = "Indoor Sightseeing"
	ActivityOutdoorSightseeing = "Outdoor Sightseeing"
)

// ActivityScore is the verdict for one activity given a weather sample.
// Score is an integer in [0, 100].
type ActivityScore struct {
	Activity    string `json:"activity"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Error classification codes surfaced to GraphQL clients via extensions.
const (
	CodeBadInput        = "BAD_INPUT"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
)

// ValidationError represents a caller input error. The message itself is
// part of the API contract, so it is surfaced verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Extensions implements the gqlerrors.ExtendedError contract so the
// classification code reaches the GraphQL error response.
func (e *ValidationError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":  CodeBadInput,
		"field": e.Field,
	}
}

// UpstreamError wraps a gateway/network failure. Not retried, not recovered;
// the operation-specific prefix is added by the service layer.
type UpstreamError struct {
	Operation string
	Err       error
}

func (e *UpstreamError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Extensions implements the gqlerrors.ExtendedError contract.
func (e *UpstreamError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": CodeUpstreamFailure,
	}
}
