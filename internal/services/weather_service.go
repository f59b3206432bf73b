package services

import (
	"context"

	"weather-advisor/internal/models"
	"weather-advisor/internal/scoring"
	"weather-advisor/internal/upstream"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

// defaultSearchLimit caps city search results when the caller does not
// specify a limit.
const defaultSearchLimit = 10

// WeatherService handles city search, forecasts and activity recommendations
type WeatherService struct {
	provider upstream.Provider
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider upstream.Provider, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *WeatherService {
	return &WeatherService{
		provider: provider,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// SearchCities validates the query and searches the geocoding gateway.
// Validation failures are returned as-is; gateway failures are wrapped
// with the operation prefix.
func (s *WeatherService) SearchCities(ctx context.Context, query string, limit int) ([]models.City, error) {
	trimmed, err := models.ValidateSearchQuery(query)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	cities, err := s.provider.FetchCities(ctx, trimmed, limit)
	if err != nil {
		s.logger.Error(ctx, "[SEARCH_CITIES_ERROR] City search failed", logging.Fields{
			"query": trimmed,
			"limit": limit,
		}, err)
		return nil, &models.UpstreamError{Operation: "Failed to search cities", Err: err}
	}

	return cities, nil
}

// GetForecast validates coordinates and the day count, then fetches the
// forecast from the gateway.
func (s *WeatherService) GetForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error) {
	if err := s.validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if err := models.ValidateDays(days); err != nil {
		return nil, err
	}

	forecast, err := s.provider.FetchForecast(ctx, latitude, longitude, days)
	if err != nil {
		s.logger.Error(ctx, "[GET_FORECAST_ERROR] Forecast fetch failed", logging.Fields{
			"latitude":  latitude,
			"longitude": longitude,
			"days":      days,
		}, err)
		return nil, &models.UpstreamError{Operation: "Failed to fetch weather forecast", Err: err}
	}

	return forecast, nil
}

// RecommendActivities fetches the current weather for the coordinates and
// scores every activity against it, ranked by score descending.
func (s *WeatherService) RecommendActivities(ctx context.Context, latitude, longitude float64) ([]models.ActivityScore, error) {
	if err := s.validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	forecast, err := s.provider.FetchForecast(ctx, latitude, longitude, 1)
	if err != nil {
		s.logger.Error(ctx, "[RECOMMEND_ERROR] Forecast fetch failed", logging.Fields{
			"latitude":  latitude,
			"longitude": longitude,
		}, err)
		return nil, &models.UpstreamError{Operation: "Failed to generate activity recommendations", Err: err}
	}

	timer := s.metrics.NewTimer(s.metrics.ScoringDuration)
	scores := scoring.ScoreAll(forecast.Current)
	timer.ObserveDuration()

	s.logger.Debug(ctx, "[RECOMMEND_COMPLETE] Activities ranked", logging.Fields{
		"latitude":     latitude,
		"longitude":    longitude,
		"top_activity": scores[0].Activity,
		"top_score":    scores[0].Score,
	})

	return scores, nil
}

func (s *WeatherService) validateCoordinates(latitude, longitude float64) error {
	if err := models.ValidateLatitude(latitude); err != nil {
		return err
	}
	return models.ValidateLongitude(longitude)
}
