package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		// an unknown city says nothing about provider health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrLocationNotFound)
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	return execute(b, func() (models.CurrentWeather, error) {
		return b.wrapped.FetchCurrent(ctx, query)
	})
}

func (b *BreakerClient) FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error) {
	return execute(b, func() ([]models.ForecastDay, error) {
		return b.wrapped.FetchForecast(ctx, location, days)
	})
}

func execute[T any](b *BreakerClient, fn func() (T, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s unavailable: %w: %w", b.name, models.ErrProviderUnavailable, err)
		}
		return zero, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	res, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}
