// Package gql declares the GraphQL schema and wires its resolvers to the
// weather service.
package gql

import (
	"math"

	"github.com/graphql-go/graphql"

	"weather-advisor/internal/services"
)

var cityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "City",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"country":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"latitude":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"longitude": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var weatherSampleType = graphql.NewObject(graphql.ObjectConfig{
	Name: "WeatherSample",
	Fields: graphql.Fields{
		"temperature":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"weatherCode":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"windSpeed":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"precipitation": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"time":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var forecastType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Forecast",
	Fields: graphql.Fields{
		"current": &graphql.Field{Type: graphql.NewNonNull(weatherSampleType)},
		"hourly":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(weatherSampleType)))},
		"daily":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(weatherSampleType)))},
	},
})

var activityScoreType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ActivityScore",
	Fields: graphql.Fields{
		"activity":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"score":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// NewSchema builds the executable schema backed by the given service.
func NewSchema(weatherService *services.WeatherService) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"searchCities": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(cityType)),
				Description: "Search for cities by name",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					query, _ := p.Args["query"].(string)
					limit, _ := p.Args["limit"].(int)
					return weatherService.SearchCities(p.Context, query, limit)
				},
			},
			"getWeatherForecast": &graphql.Field{
				Type:        forecastType,
				Description: "Fetch the current, hourly and daily forecast for coordinates",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"days":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 7},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					days, _ := p.Args["days"].(int)
					return weatherService.GetForecast(p.Context, floatArg(p.Args, "latitude"), floatArg(p.Args, "longitude"), days)
				},
			},
			"getRecommendedActivities": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(activityScoreType)),
				Description: "Rank activities by suitability for the current weather at coordinates",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return weatherService.RecommendActivities(p.Context, floatArg(p.Args, "latitude"), floatArg(p.Args, "longitude"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// floatArg coerces a numeric argument to float64. Missing or non-numeric
// values yield NaN so that coordinate validation rejects them with the
// contract message.
func floatArg(args map[string]interface{}, name string) float64 {
	switch v := args[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return math.NaN()
}
