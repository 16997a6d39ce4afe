package weather

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type client interface {
	FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error)
	FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ServiceProvider is what the widget talks to: current conditions fail loudly,
// the forecast degrades to an empty sequence.
type ServiceProvider struct {
	logger       zerolog.Logger
	client       client
	forecastDays int
}

func NewService(logger zerolog.Logger, cl client, forecastDays int) *ServiceProvider {
	return &ServiceProvider{logger: logger, client: cl, forecastDays: forecastDays}
}

func (s *ServiceProvider) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	s.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Msg("calling FetchCurrent")

	data, err := s.client.FetchCurrent(ctx, query)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("query", query).
			Err(err).
			Msg("current weather fetch failed")
		return models.CurrentWeather{}, err
	}
	return data, nil
}

func (s *ServiceProvider) FetchForecast(ctx context.Context, location string) []models.ForecastDay {
	days, err := s.client.FetchForecast(ctx, location, s.forecastDays)
	if err != nil {
		s.logger.Warn().
			Ctx(ctx).
			Str("location", location).
			Err(err).
			Msg("forecast unavailable, continuing without it")
		return []models.ForecastDay{}
	}
	return days
}
