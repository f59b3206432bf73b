// Package upstream implements the weather data gateway: geocoding search
// and forecast retrieval against the Open-Meteo public APIs, normalized
// into the domain models.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-advisor/internal/models"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

// hourlyLimit caps the hourly series exposed to clients: the first 24
// entries of the upstream response.
const hourlyLimit = 24

// Provider is the gateway consumed by the service layer.
type Provider interface {
	// FetchCities searches for cities matching a free-text query.
	FetchCities(ctx context.Context, query string, limit int) ([]models.City, error)
	// FetchForecast retrieves the current/hourly/daily forecast for coordinates.
	FetchForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error)
}

// OpenMeteoClient calls the Open-Meteo forecast and geocoding APIs.
type OpenMeteoClient struct {
	httpClient       *http.Client
	forecastBaseURL  string
	geocodingBaseURL string
	logger           *logging.StructuredLogger
	metrics          *metrics.Collector
}

// NewOpenMeteoClient creates a gateway client. Base URLs come from
// configuration so tests can point the client at a local server.
func NewOpenMeteoClient(
	forecastBaseURL, geocodingBaseURL string,
	timeout time.Duration,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *OpenMeteoClient {
	return &OpenMeteoClient{
		httpClient:       &http.Client{Timeout: timeout},
		forecastBaseURL:  forecastBaseURL,
		geocodingBaseURL: geocodingBaseURL,
		logger:           logger,
		metrics:          metricsCollector,
	}
}

// geocodingResponse is the relevant subset of the geocoding API response.
type geocodingResponse struct {
	Results []struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// forecastResponse is the relevant subset of the forecast API response.
// Hourly and daily metrics arrive as parallel arrays keyed by time.
type forecastResponse struct {
	Current struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		Precipitation float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
		WindSpeed     []float64 `json:"wind_speed_10m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weather_code"`
		WindSpeedMax   []float64 `json:"wind_speed_10m_max"`
		Precipitation  []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// FetchCities searches the geocoding API. The query must already be
// validated and trimmed by the caller.
func (c *OpenMeteoClient) FetchCities(ctx context.Context, query string, limit int) ([]models.City, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("language", "en")
	params.Set("format", "json")

	requestURL := fmt.Sprintf("%s/v1/search?%s", c.geocodingBaseURL, params.Encode())

	var decoded geocodingResponse
	if err := c.getJSON(ctx, "geocoding", requestURL, &decoded); err != nil {
		return nil, err
	}

	cities := make([]models.City, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		cities = append(cities, models.City{
			ID:        strconv.FormatInt(result.ID, 10),
			Name:      result.Name,
			Country:   result.Country,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
		})
	}

	c.logger.Debug(ctx, "[UPSTREAM_GEOCODING] City search completed", logging.Fields{
		"query":   query,
		"results": len(cities),
	})

	return cities, nil
}

// FetchForecast retrieves and normalizes a forecast. Coordinates and day
// count must already be validated by the caller.
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, latitude, longitude float64, days int) (*models.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("current", "temperature_2m,weather_code,wind_speed_10m,precipitation")
	params.Set("hourly", "temperature_2m,weather_code,wind_speed_10m,precipitation")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code,wind_speed_10m_max,precipitation_sum")
	params.Set("wind_speed_unit", "ms")
	params.Set("timezone", "auto")

	requestURL := fmt.Sprintf("%s/v1/forecast?%s", c.forecastBaseURL, params.Encode())

	var decoded forecastResponse
	if err := c.getJSON(ctx, "forecast", requestURL, &decoded); err != nil {
		return nil, err
	}

	forecast := &models.Forecast{
		Current: models.WeatherSample{
			Temperature:   decoded.Current.Temperature,
			WeatherCode:   decoded.Current.WeatherCode,
			WindSpeed:     decoded.Current.WindSpeed,
			Precipitation: decoded.Current.Precipitation,
			Time:          decoded.Current.Time,
		},
		Hourly: mapHourly(decoded),
		Daily:  mapDaily(decoded),
	}

	c.logger.Debug(ctx, "[UPSTREAM_FORECAST] Forecast retrieved", logging.Fields{
		"latitude":     latitude,
		"longitude":    longitude,
		"days":         days,
		"hourly_count": len(forecast.Hourly),
		"daily_count":  len(forecast.Daily),
	})

	return forecast, nil
}

// getJSON performs a GET request and decodes the JSON body, recording
// upstream metrics. Any failure is returned as a models.UpstreamError.
func (c *OpenMeteoClient) getJSON(ctx context.Context, api, requestURL string, dest interface{}) error {
	startTime := time.Now()
	defer func() {
		c.metrics.UpstreamRequestDuration.WithLabelValues(api).Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &models.UpstreamError{Operation: api + " request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamError(api, "transport")
		c.logger.Error(ctx, "[UPSTREAM_ERROR] Request failed", logging.Fields{
			"api": api,
		}, err)
		return &models.UpstreamError{Operation: api + " request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordUpstreamError(api, "status")
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		c.logger.Error(ctx, "[UPSTREAM_ERROR] Non-OK response", logging.Fields{
			"api":    api,
			"status": resp.StatusCode,
		}, err)
		return &models.UpstreamError{Operation: api + " request", Err: err}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.metrics.RecordUpstreamError(api, "decode")
		return &models.UpstreamError{Operation: api + " response decoding", Err: err}
	}

	c.metrics.UpstreamRequestsTotal.WithLabelValues(api).Inc()
	return nil
}

// mapHourly converts the parallel hourly arrays into samples, truncated
// to the first hourlyLimit entries. Array lengths are clamped to the
// shortest series so a ragged upstream payload cannot panic.
func mapHourly(decoded forecastResponse) []models.WeatherSample {
	h := decoded.Hourly
	count := minLen(len(h.Time), len(h.Temperature), len(h.WeatherCode), len(h.WindSpeed), len(h.Precipitation))
	if count > hourlyLimit {
		count = hourlyLimit
	}

	samples := make([]models.WeatherSample, 0, count)
	for i := 0; i < count; i++ {
		samples = append(samples, models.WeatherSample{
			Temperature:   h.Temperature[i],
			WeatherCode:   h.WeatherCode[i],
			WindSpeed:     h.WindSpeed[i],
			Precipitation: h.Precipitation[i],
			Time:          h.Time[i],
		})
	}
	return samples
}

// mapDaily converts the parallel daily arrays into samples. The daily
// temperature is the mean of that day's max and min.
func mapDaily(decoded forecastResponse) []models.WeatherSample {
	d := decoded.Daily
	count := minLen(len(d.Time), len(d.TemperatureMax), len(d.TemperatureMin), len(d.WeatherCode), len(d.WindSpeedMax), len(d.Precipitation))

	samples := make([]models.WeatherSample, 0, count)
	for i := 0; i < count; i++ {
		samples = append(samples, models.WeatherSample{
			Temperature:   (d.TemperatureMax[i] + d.TemperatureMin[i]) / 2,
			WeatherCode:   d.WeatherCode[i],
			WindSpeed:     d.WindSpeedMax[i],
			Precipitation: d.Precipitation[i],
			Time:          d.Time[i],
		})
	}
	return samples
}

func minLen(lengths ...int) int {
	min := lengths[0]
	for _, l := range lengths[1:] {
		if l < min {
			min = l
		}
	}
	return min
}
