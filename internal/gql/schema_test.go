package gql

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/graphql-go/graphql"

	"weather-advisor/internal/models"
	"weather-advisor/internal/services"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

// One collector per test binary; promauto registers on the default registry.
var testMetrics = metrics.NewCollector("gql_test")

// stubProvider is a canned upstream gateway for schema tests
type stubProvider struct {
	cities   []models.City
	forecast *models.Forecast
	err      error
}

func (s *stubProvider) FetchCities(ctx context.Context, query string, limit int) ([]models.City, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cities, nil
}

func (s *stubProvider) FetchForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.forecast, nil
}

func newTestSchema(t *testing.T, provider *stubProvider) graphql.Schema {
	t.Helper()

	logger := logging.NewStructuredLogger("test", "0.0.0", logging.FatalLevel)
	logger.SetOutput(io.Discard)

	schema, err := NewSchema(services.NewWeatherService(provider, logger, testMetrics))
	if err != nil {
		t.Fatalf("NewSchema returned error: %v", err)
	}
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string, variables map[string]interface{}) *graphql.Result {
	t.Helper()

	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        context.Background(),
	})
}

// TestSearchCitiesQuery verifies the happy path and field resolution
func TestSearchCitiesQuery(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{
		cities: []models.City{
			{ID: "2950159", Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.41},
		},
	})

	result := execute(t, schema, `{ searchCities(query: "Berlin") { id name country latitude longitude } }`, nil)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})
	cities := data["searchCities"].([]interface{})
	if len(cities) != 1 {
		t.Fatalf("len = %d, want 1", len(cities))
	}

	city := cities[0].(map[string]interface{})
	if city["name"] != "Berlin" || city["country"] != "Germany" {
		t.Errorf("unexpected city: %v", city)
	}
	if city["latitude"] != 52.52 {
		t.Errorf("latitude = %v, want 52.52", city["latitude"])
	}
}

// TestSearchCitiesQuery_Validation verifies the BAD_INPUT error contract
func TestSearchCitiesQuery_Validation(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{})

	result := execute(t, schema, `{ searchCities(query: "a") { id } }`, nil)
	if !result.HasErrors() {
		t.Fatal("expected a validation error")
	}

	gqlErr := result.Errors[0]
	if gqlErr.Message != "Search query must be at least 2 characters long" {
		t.Errorf("message = %q, want the contract message", gqlErr.Message)
	}
	if gqlErr.Extensions["code"] != models.CodeBadInput {
		t.Errorf("extensions code = %v, want %q", gqlErr.Extensions["code"], models.CodeBadInput)
	}
}

// TestGetWeatherForecastQuery verifies the forecast shape over the wire
func TestGetWeatherForecastQuery(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{
		forecast: &models.Forecast{
			Current: models.WeatherSample{Temperature: 18.4, WeatherCode: 2, WindSpeed: 6.1, Precipitation: 0.3, Time: "2024-03-01T12:00"},
			Hourly:  []models.WeatherSample{{Temperature: 17}, {Temperature: 18}},
			Daily:   []models.WeatherSample{{Temperature: 15.5}},
		},
	})

	query := `query Forecast($lat: Float!, $lon: Float!) {
		getWeatherForecast(latitude: $lat, longitude: $lon, days: 2) {
			current { temperature weatherCode windSpeed precipitation time }
			hourly { temperature }
			daily { temperature }
		}
	}`

	result := execute(t, schema, query, map[string]interface{}{"lat": 52.52, "lon": 13.41})
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	forecast := result.Data.(map[string]interface{})["getWeatherForecast"].(map[string]interface{})
	current := forecast["current"].(map[string]interface{})
	if current["temperature"] != 18.4 {
		t.Errorf("temperature = %v, want 18.4", current["temperature"])
	}
	if current["weatherCode"] != 2 {
		t.Errorf("weatherCode = %v, want 2", current["weatherCode"])
	}
	if current["time"] != "2024-03-01T12:00" {
		t.Errorf("time = %v, want passthrough timestamp", current["time"])
	}
	if hourly := forecast["hourly"].([]interface{}); len(hourly) != 2 {
		t.Errorf("hourly length = %d, want 2", len(hourly))
	}
}

// TestGetWeatherForecastQuery_InvalidCoordinates verifies boundary rejection
func TestGetWeatherForecastQuery_InvalidCoordinates(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{})

	tests := []struct {
		name        string
		latitude    float64
		longitude   float64
		wantMessage string
	}{
		{"latitude too high", 91, 0, "Latitude must be a number between -90 and 90"},
		{"latitude too low", -91, 0, "Latitude must be a number between -90 and 90"},
		{"longitude too high", 0, 181, "Longitude must be a number between -180 and 180"},
		{"longitude too low", 0, -181, "Longitude must be a number between -180 and 180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := fmt.Sprintf(`{ getWeatherForecast(latitude: %v, longitude: %v) { current { temperature } } }`, tt.latitude, tt.longitude)
			result := execute(t, schema, query, nil)
			if !result.HasErrors() {
				t.Fatal("expected a validation error")
			}
			if result.Errors[0].Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", result.Errors[0].Message, tt.wantMessage)
			}
		})
	}
}

// TestGetRecommendedActivitiesQuery verifies ranked output end to end
func TestGetRecommendedActivitiesQuery(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{
		forecast: &models.Forecast{
			Current: models.WeatherSample{Temperature: -5, WeatherCode: 71, WindSpeed: 5, Precipitation: 2},
		},
	})

	result := execute(t, schema, `{ getRecommendedActivities(latitude: 46.5, longitude: 9.8) { activity score description } }`, nil)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	activities := result.Data.(map[string]interface{})["getRecommendedActivities"].([]interface{})
	if len(activities) != 4 {
		t.Fatalf("len = %d, want 4", len(activities))
	}

	top := activities[0].(map[string]interface{})
	if top["activity"] != models.ActivitySkiing {
		t.Errorf("top activity = %v, want Skiing", top["activity"])
	}
	if top["score"] != 92 {
		t.Errorf("top score = %v, want 92", top["score"])
	}
}

// TestGetRecommendedActivitiesQuery_UpstreamFailure verifies the error contract
func TestGetRecommendedActivitiesQuery_UpstreamFailure(t *testing.T) {
	schema := newTestSchema(t, &stubProvider{err: fmt.Errorf("connection reset")})

	result := execute(t, schema, `{ getRecommendedActivities(latitude: 0, longitude: 0) { activity } }`, nil)
	if !result.HasErrors() {
		t.Fatal("expected an upstream error")
	}

	gqlErr := result.Errors[0]
	if gqlErr.Message != "Failed to generate activity recommendations: connection reset" {
		t.Errorf("message = %q, want prefixed upstream failure", gqlErr.Message)
	}
	if gqlErr.Extensions["code"] != models.CodeUpstreamFailure {
		t.Errorf("extensions code = %v, want %q", gqlErr.Extensions["code"], models.CodeUpstreamFailure)
	}
}

// TestDefaultArguments verifies schema-level defaults reach the resolvers
func TestDefaultArguments(t *testing.T) {
	provider := &recordingProvider{}
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.FatalLevel)
	logger.SetOutput(io.Discard)

	schema, err := NewSchema(services.NewWeatherService(provider, logger, testMetrics))
	if err != nil {
		t.Fatalf("NewSchema returned error: %v", err)
	}

	result := execute(t, schema, `{ getWeatherForecast(latitude: 0, longitude: 0) { current { temperature } } }`, nil)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if provider.lastDays != 7 {
		t.Errorf("days = %d, want default 7", provider.lastDays)
	}

	result = execute(t, schema, `{ searchCities(query: "Berlin") { id } }`, nil)
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if provider.lastLimit != 10 {
		t.Errorf("limit = %d, want default 10", provider.lastLimit)
	}
}

// recordingProvider records the arguments forwarded by resolvers
type recordingProvider struct {
	lastLimit int
	lastDays  int
}

func (r *recordingProvider) FetchCities(ctx context.Context, query string, limit int) ([]models.City, error) {
	r.lastLimit = limit
	return nil, nil
}

func (r *recordingProvider) FetchForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error) {
	r.lastDays = days
	return &models.Forecast{}, nil
}
