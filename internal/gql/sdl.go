package gql

// SDL is the schema definition served at /graphql/schema for API consumers.
// It must stay in sync with the executable schema in schema.go.
const SDL = `type City {
  id: String!
  name: String!
  country: String!
  latitude: Float!
  longitude: Float!
}

type WeatherSample {
  temperature: Float!
  weatherCode: Int!
  windSpeed: Float!
  precipitation: Float!
  time: String!
}

type Forecast {
  current: WeatherSample!
  hourly: [WeatherSample!]!
  daily: [WeatherSample!]!
}

type ActivityScore {
  activity: String!
  score: Int!
  description: String!
}

type Query {
  searchCities(query: String!, limit: Int = 10): [City!]
  getWeatherForecast(latitude: Float!, longitude: Float!, days: Int = 7): Forecast
  getRecommendedActivities(latitude: Float!, longitude: Float!): [ActivityScore!]
}
`
