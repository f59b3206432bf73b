package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"weather-advisor/internal/config"
	"weather-advisor/internal/models"
	"weather-advisor/internal/services"
	"weather-advisor/internal/upstream"
	"weather-advisor/pkg/logging"
	"weather-advisor/pkg/metrics"
)

func main() {
	// Parse command-line flags
	cityQuery := flag.String("city", "", "City name to resolve coordinates for")
	latitude := flag.Float64("lat", 0, "Latitude (ignored when -city is set)")
	longitude := flag.Float64("lon", 0, "Longitude (ignored when -city is set)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger; the CLI keeps log output quiet unless something breaks
	logger := logging.NewStructuredLogger("weather-advisor-cli", "1.0.0", logging.ErrorLevel)
	logger.SetOutput(os.Stderr)

	ctx := context.Background()

	// Initialize metrics collector (unused endpoint-wise, required by the stack)
	metricsCollector := metrics.NewCollector("weather_advisor_cli")

	// Initialize upstream gateway and service
	provider := upstream.NewOpenMeteoClient(
		cfg.Upstream.ForecastBaseURL,
		cfg.Upstream.GeocodingBaseURL,
		cfg.Upstream.Timeout,
		logger,
		metricsCollector,
	)
	weatherService := services.NewWeatherService(provider, logger, metricsCollector)

	lat, lon := *latitude, *longitude

	// Resolve coordinates from a city name if requested
	if *cityQuery != "" {
		cities, err := weatherService.SearchCities(ctx, *cityQuery, 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if len(cities) == 0 {
			fmt.Fprintf(os.Stderr, "No city found for %q\n", *cityQuery)
			os.Exit(1)
		}

		city := cities[0]
		lat, lon = city.Latitude, city.Longitude
		fmt.Printf("Resolved %s, %s (%.4f, %.4f)\n\n", city.Name, city.Country, lat, lon)
	}

	scores, err := weatherService.RecommendActivities(ctx, lat, lon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	printScores(scores)
}

func printScores(scores []models.ActivityScore) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tSCORE\tVERDICT")
	for _, score := range scores {
		fmt.Fprintf(w, "%s\t%d\t%s\n", score.Activity, score.Score, score.Description)
	}
	w.Flush()
}
