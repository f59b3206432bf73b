// Package scoring implements the activity recommendation engine: pure
// functions mapping one weather sample to suitability scores for a fixed
// set of activities. No I/O, no shared state; every finite input produces
// an integer score in [0, 100].
package scoring

import (
	"math"
	"sort"

	"weather-advisor/internal/models"
)

// Verdict descriptions are an external contract consumed by clients and tests.
const (
	DescSkiingGood  = "Perfect conditions for skiing with fresh snow!"
	DescSkiingBad   = "Skiing conditions are not ideal right now."
	DescSurfingGood = "Good waves for surfing!"
	DescSurfingBad  = "Waves might be too calm for surfing."
	DescIndoorGood  = "Great day to explore indoor attractions!"
	DescIndoorBad   = "Consider outdoor activities instead."
	DescOutdoorGood = "Perfect weather for exploring outdoors!"
	DescOutdoorBad  = "Weather conditions might not be ideal for outdoor sightseeing."
)

// isSnowing reports whether the weather code denotes snowfall
// (WMO codes 71-77, 85 and 86).
func isSnowing(code int) bool {
	return (code >= 71 && code <= 77) || code == 85 || code == 86
}

// clampScore clamps to [0, 100] and rounds half away from zero.
func clampScore(raw float64) int {
	return int(math.Round(math.Min(100, math.Max(0, raw))))
}

// Skiing rewards cold temperatures near -5°C and snow-coded weather,
// and penalizes wind.
func Skiing(sample models.WeatherSample) models.ActivityScore {
	snowing := isSnowing(sample.WeatherCode)
	tempScore := math.Max(0, 1-math.Abs(-5-sample.Temperature)/20)
	windPenalty := math.Min(1, sample.WindSpeed/30)

	var raw float64
	if snowing {
		raw = 70 + tempScore*30
	} else {
		raw = tempScore * 50
	}
	raw *= 1 - windPenalty*0.5

	desc := DescSkiingBad
	if snowing {
		desc = DescSkiingGood
	}

	return models.ActivityScore{
		Activity:    models.ActivitySkiing,
		Score:       clampScore(raw),
		Description: desc,
	}
}

// Surfing rewards moderate-to-strong wind and warmth, and penalizes
// heavy rain. The temperature ramp caps at 20°C.
func Surfing(sample models.WeatherSample) models.ActivityScore {
	windScore := math.Min(1, sample.WindSpeed/15) * 50
	tempScore := math.Min(1, sample.Temperature/20) * 50

	var rainPenalty float64
	if sample.Precipitation > 5 {
		rainPenalty = 20
	}

	desc := DescSurfingBad
	if sample.WindSpeed > 8 {
		desc = DescSurfingGood
	}

	return models.ActivityScore{
		Activity:    models.ActivitySurfing,
		Score:       clampScore(windScore + tempScore - rainPenalty),
		Description: desc,
	}
}

// IndoorSightseeing rewards poor outdoor weather: rain, snow, or
// temperature extremes.
func IndoorSightseeing(sample models.WeatherSample) models.ActivityScore {
	badWeather := sample.Precipitation > 2 ||
		sample.Temperature < 0 ||
		sample.Temperature > 30 ||
		(sample.WeatherCode >= 51 && sample.WeatherCode <= 86)

	score := 30
	desc := DescIndoorBad
	if badWeather {
		score = 80
		desc = DescIndoorGood
	}

	return models.ActivityScore{
		Activity:    models.ActivityIndoorSightseeing,
		Score:       score,
		Description: desc,
	}
}

// OutdoorSightseeing rewards clear skies, low precipitation and
// temperatures near 21.5°C, and penalizes wind.
func OutdoorSightseeing(sample models.WeatherSample) models.ActivityScore {
	goodWeather := sample.WeatherCode >= 0 && sample.WeatherCode <= 2 &&
		sample.Precipitation < 2 &&
		sample.Temperature >= 15 && sample.Temperature <= 28

	base := 30.0
	desc := DescOutdoorBad
	if goodWeather {
		base = 80.0
		desc = DescOutdoorGood
	}

	tempScore := (1 - math.Abs(21.5-sample.Temperature)/20) * 100
	windPenalty := math.Min(30, sample.WindSpeed*2)
	raw := math.Max(0, (base+tempScore)/2-windPenalty)

	return models.ActivityScore{
		Activity:    models.ActivityOutdoorSightseeing,
		Score:       clampScore(raw),
		Description: desc,
	}
}

// ScoreAll evaluates every activity against the sample and returns the
// results sorted by score descending. The sort is stable, so ties keep
// the evaluation order: Skiing, Surfing, Indoor Sightseeing, Outdoor
// Sightseeing.
func ScoreAll(sample models.WeatherSample) []models.ActivityScore {
	scores := []models.ActivityScore{
		Skiing(sample),
		Surfing(sample),
		IndoorSightseeing(sample),
		OutdoorSightseeing(sample),
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}
