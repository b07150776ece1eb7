package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var errNoForecast = errors.New("no forecast for today")

// forecastResponse mirrors the OpenWeatherMap forecast payload, reduced
// to the fields the snapshot needs.
type forecastResponse struct {
	List []struct {
		DtTxt   string `json:"dt_txt"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// WeatherService fetches a free-text weather snapshot for new tasks.
// It is best-effort: every failure degrades to an empty snapshot.
type WeatherService struct {
	client *resty.Client
	apiKey string
	cityID string
}

// NewWeatherService creates a WeatherService against the given base URL.
func NewWeatherService(baseURL, apiKey, cityID string) *WeatherService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)

	return &WeatherService{
		client: client,
		apiKey: apiKey,
		cityID: cityID,
	}
}

// Today returns the description of today's first forecast entry, or an
// empty string when the lookup fails for any reason.
func (s *WeatherService) Today(ctx context.Context) string {
	description, err := s.fetchToday(ctx)
	if err != nil {
		return ""
	}
	return description
}

func (s *WeatherService) fetchToday(ctx context.Context) (string, error) {
	var forecast forecastResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("id", s.cityID).
		SetQueryParam("appid", s.apiKey).
		SetResult(&forecast).
		Get("/data/2.5/forecast")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", errNoForecast
	}

	today := time.Now().UTC().Format("2006-01-02")
	for _, entry := range forecast.List {
		if strings.HasPrefix(entry.DtTxt, today) && len(entry.Weather) > 0 {
			return entry.Weather[0].Description, nil
		}
	}

	return "", errNoForecast
}
