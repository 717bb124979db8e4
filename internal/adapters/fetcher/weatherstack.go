package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"
)

const DefaultWeatherstackURL = "http://api.weatherstack.com"

// weatherstack error codes for a query that matched no location
const (
	weatherstackNotFound      = 615
	weatherstackInvalidSearch = 601
)

type Weatherstack struct {
	client  JSONGetter
	baseURL string
	apiKey  string
}

func NewWeatherstack(client JSONGetter, baseURL, apiKey string) *Weatherstack {
	if baseURL == "" {
		baseURL = DefaultWeatherstackURL
	}

	return &Weatherstack{client: client, baseURL: baseURL, apiKey: apiKey}
}

type weatherstackResponse struct {
	Error *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		Temperature         float64  `json:"temperature"`
		WeatherDescriptions []string `json:"weather_descriptions"`
		Humidity            float64  `json:"humidity"`
		WindSpeed           float64  `json:"wind_speed"`
		FeelsLike           float64  `json:"feelslike"`
	} `json:"current"`
}

func (w *Weatherstack) CurrentWeather(ctx context.Context, location string) (port.Weather, error) {
	query := url.Values{}
	query.Set("access_key", w.apiKey)
	query.Set("query", location)

	var resp weatherstackResponse
	if err := w.client.GetJSON(ctx, w.baseURL+"/current?"+query.Encode(), nil, &resp); err != nil {
		return port.Weather{}, fmt.Errorf("weatherstack: %w", err)
	}

	if resp.Error != nil {
		if resp.Error.Code == weatherstackNotFound || resp.Error.Code == weatherstackInvalidSearch {
			return port.Weather{}, fmt.Errorf("weatherstack %q: %w", location, domain.ErrNotFound)
		}
		return port.Weather{}, fmt.Errorf("weatherstack error %d: %s", resp.Error.Code, resp.Error.Type)
	}

	var description string
	if len(resp.Current.WeatherDescriptions) > 0 {
		description = resp.Current.WeatherDescriptions[0]
	}

	return port.Weather{
		Name:        resp.Location.Name,
		Region:      resp.Location.Region,
		Country:     resp.Location.Country,
		Temperature: resp.Current.Temperature,
		Description: description,
		Humidity:    resp.Current.Humidity,
		WindSpeed:   resp.Current.WindSpeed,
		FeelsLike:   resp.Current.FeelsLike,
	}, nil
}
