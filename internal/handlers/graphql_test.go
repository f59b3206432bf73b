package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"weather-advisor/internal/gql"
	"weather-advisor/internal/models"
	"weather-advisor/internal/services"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

// One collector per test binary; promauto registers on the default registry.
var testMetrics = metrics.NewCollector("handlers_test")

// stubProvider serves a fixed snowy forecast
type stubProvider struct{}

func (stubProvider) FetchCities(ctx context.Context, query string, limit int) ([]models.City, error) {
	return []models.City{{ID: "1", Name: "Davos", Country: "Switzerland", Latitude: 46.8, Longitude: 9.8}}, nil
}

func (stubProvider) FetchForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error) {
	return &models.Forecast{
		Current: models.WeatherSample{Temperature: -5, WeatherCode: 71, WindSpeed: 5, Precipitation: 2, Time: "2024-03-01T12:00"},
	}, nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	logger := logging.NewStructuredLogger("test", "0.0.0", logging.FatalLevel)
	logger.SetOutput(io.Discard)

	schema, err := gql.NewSchema(services.NewWeatherService(stubProvider{}, logger, testMetrics))
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}

	router := mux.NewRouter()
	router.Use(RequestID)
	NewGraphQLHandler(schema, logger, testMetrics).RegisterRoutes(router)
	return router
}

// TestQueryEndpoint verifies a full GraphQL round trip over HTTP
func TestQueryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"query": "{ getRecommendedActivities(latitude: 46.8, longitude: 9.8) { activity score } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID response header")
	}

	var response struct {
		Data struct {
			Activities []models.ActivityScore `json:"getRecommendedActivities"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Data.Activities) != 4 {
		t.Fatalf("len = %d, want 4", len(response.Data.Activities))
	}
	if response.Data.Activities[0].Activity != models.ActivitySkiing {
		t.Errorf("top activity = %q, want Skiing", response.Data.Activities[0].Activity)
	}
}

// TestQueryEndpoint_ValidationErrorShape verifies errors ride in a 200 response
func TestQueryEndpoint_ValidationErrorShape(t *testing.T) {
	router := newTestRouter(t)

	body := `{"query": "{ searchCities(query: \"a\") { id } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (GraphQL errors are in-band)", rec.Code)
	}

	var response struct {
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Errors) == 0 {
		t.Fatal("expected errors in response")
	}
	if response.Errors[0].Message != "Search query must be at least 2 characters long" {
		t.Errorf("message = %q, want the contract message", response.Errors[0].Message)
	}
	if response.Errors[0].Extensions["code"] != models.CodeBadInput {
		t.Errorf("extensions code = %v, want %q", response.Errors[0].Extensions["code"], models.CodeBadInput)
	}
}

// TestQueryEndpoint_MalformedBody verifies a 400 for non-JSON input
func TestQueryEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != http.StatusBadRequest {
		t.Errorf("body code = %d, want 400", response.Code)
	}
}

// TestHealthEndpoint verifies the health check
func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var status map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", status["status"])
	}
}

// TestPlaygroundAndSchemaEndpoints verifies the companion GET pages
func TestPlaygroundAndSchemaEndpoints(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("playground status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "graphiql") {
		t.Error("playground page does not embed GraphiQL")
	}

	req = httptest.NewRequest(http.MethodGet, "/graphql/schema", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("schema status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "getRecommendedActivities") {
		t.Error("SDL does not list the query operations")
	}
}

// TestRequestID_PropagatesInbound verifies an inbound correlation ID is kept
func TestRequestID_PropagatesInbound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-1234")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-1234" {
		t.Errorf("X-Request-ID = %q, want inbound value preserved", got)
	}
}
