package weather_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/weather"
)

var breakerCfg = weather.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	args := m.Called(ctx, query)
	data, ok := args.Get(0).(models.CurrentWeather)
	if !ok {
		return models.CurrentWeather{}, args.Error(1)
	}
	return data, args.Error(1)
}

func (m *mockWrapped) FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error) {
	args := m.Called(ctx, location, days)
	data, ok := args.Get(0).([]models.ForecastDay)
	if !ok {
		return nil, args.Error(1)
	}
	return data, args.Error(1)
}

const (
	breakerName = "TestAPI"
	city        = "Lviv"
)

func TestBreakerClient_Success(t *testing.T) {
	wrapped := new(mockWrapped)
	expected := models.CurrentWeather{LocationName: city, TemperatureCelsius: 20, Condition: "Clear", Unit: models.Celsius}

	wrapped.
		On("FetchCurrent", mock.Anything, city).
		Return(expected, nil).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.FetchCurrent(context.Background(), city)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_ForecastPassThrough(t *testing.T) {
	wrapped := new(mockWrapped)
	expected := []models.ForecastDay{{Date: "2024-01-01", AvgTemperatureCelsius: -3}}

	wrapped.
		On("FetchForecast", mock.Anything, city, 7).
		Return(expected, nil).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	days, err := bc.FetchForecast(context.Background(), city, 7)
	assert.NoError(t, err)
	assert.Equal(t, expected, days)

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_UnderlyingErrorBeforeTrip(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("service down")

	wrapped.
		On("FetchCurrent", mock.Anything, city).
		Return(models.CurrentWeather{}, underlyingErr).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.FetchCurrent(context.Background(), city)
	assert.Error(t, err)
	assert.Empty(t, data)
	assert.ErrorIs(t, err, underlyingErr)
	assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_TripCircuitAfterFiveFailures(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("timeout")

	wrapped.
		On("FetchCurrent", mock.Anything, city).
		Return(models.CurrentWeather{}, underlyingErr).
		Times(5)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bc.FetchCurrent(context.Background(), city)
		assert.Error(t, err, "call #%d should error before trip", i)
		assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())
	}

	_, err := bc.FetchCurrent(context.Background(), city)
	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
	assert.True(t,
		strings.Contains(err.Error(), "circuit breaker is open"),
		"6th call should return open-circuit error",
	)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "FetchCurrent", 5)
}

func TestBreakerClient_NotFoundDoesNotTrip(t *testing.T) {
	wrapped := new(mockWrapped)
	notFound := fmt.Errorf("%w: status 400", models.ErrLocationNotFound)

	wrapped.
		On("FetchCurrent", mock.Anything, "Atlantis").
		Return(models.CurrentWeather{}, notFound).
		Times(10)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 0; i < 10; i++ {
		_, err := bc.FetchCurrent(context.Background(), "Atlantis")
		assert.ErrorIs(t, err, models.ErrLocationNotFound)
	}

	wrapped.AssertNumberOfCalls(t, "FetchCurrent", 10)
}
