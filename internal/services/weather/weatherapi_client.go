package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

const (
	currentEndpoint  = "/current.json"
	forecastEndpoint = "/forecast.json"
)

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC float64 `json:"avgtemp_c"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClientWeatherAPI fetches current conditions and forecasts from WeatherAPI.com.
type ClientWeatherAPI struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientWeatherAPI constructs a WeatherAPI.com client. apiURL is the
// version root, e.g. https://api.weatherapi.com/v1.
func NewClientWeatherAPI(apiKey, apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientWeatherAPI {
	return &ClientWeatherAPI{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// FetchCurrent retrieves current conditions for a free-text location or a
// "lat,lon" pair.
func (s *ClientWeatherAPI) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	start := time.Now()

	var raw currentResponse
	if err := s.get(ctx, currentEndpoint, url.Values{"q": {query}}, &raw); err != nil {
		return models.CurrentWeather{}, err
	}

	data := models.CurrentWeather{
		TemperatureCelsius: raw.Current.TempC,
		Condition:          raw.Current.Condition.Text,
		LocationName:       raw.Location.Name,
		Unit:               models.Celsius,
	}

	s.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Str("location", data.LocationName).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched current weather")

	return data, nil
}

// FetchForecast retrieves up to days daily averages for location, in the
// order the provider returns them.
func (s *ClientWeatherAPI) FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error) {
	start := time.Now()

	params := url.Values{
		"q":    {location},
		"days": {strconv.Itoa(days)},
	}

	var raw forecastResponse
	if err := s.get(ctx, forecastEndpoint, params, &raw); err != nil {
		return nil, err
	}

	forecast := make([]models.ForecastDay, 0, len(raw.Forecast.ForecastDay))
	for _, day := range raw.Forecast.ForecastDay {
		if len(forecast) == days {
			break
		}
		forecast = append(forecast, models.ForecastDay{
			Date:                  day.Date,
			AvgTemperatureCelsius: day.Day.AvgTempC,
		})
	}

	s.logger.Info().
		Ctx(ctx).
		Str("location", location).
		Int("days", len(forecast)).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched forecast")

	return forecast, nil
}

func (s *ClientWeatherAPI) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if s.APIKey == "" {
		s.logger.Error().
			Ctx(ctx).
			Str("endpoint", endpoint).
			Msg("refusing to call WeatherAPI without an API key")
		return models.ErrMissingAPIKey
	}

	params.Set("key", s.APIKey)
	reqURL := s.apiURL + endpoint + "?" + params.Encode()

	s.logger.Debug().
		Ctx(ctx).
		Str("endpoint", endpoint).
		Str("q", params.Get("q")).
		Msg("starting WeatherAPI request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Msg("failed to create HTTP request")
		return fmt.Errorf("%w: %w", models.ErrProviderUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Msg("error sending HTTP request to WeatherAPI")
		return fmt.Errorf("%w: %w", models.ErrProviderUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		s.logger.Error().
			Ctx(ctx).
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Int("api_code", apiErr.Error.Code).
			Str("api_message", apiErr.Error.Message).
			Msg("WeatherAPI returned non-200 status")

		// WeatherAPI answers 400 with code 1006 when no location matches.
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: status %s", models.ErrLocationNotFound, resp.Status)
		}
		return fmt.Errorf("%w: status %s", models.ErrProviderUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Msg("failed to decode WeatherAPI response")
		return fmt.Errorf("%w: decode: %w", models.ErrProviderUnavailable, err)
	}

	return nil
}
