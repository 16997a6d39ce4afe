package decorators

import (
	"context"
	"errors"
	"time"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

const (
	opCurrent  = "current"
	opForecast = "forecast"
)

type weatherClient interface {
	FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error)
	FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error)
}

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(metric string, labels ...string)
}

// MetricsClient records latency and outcome of every provider operation.
type MetricsClient struct {
	next      weatherClient
	collector metricsCollector
}

func NewMetricsClient(next weatherClient, collector metricsCollector) *MetricsClient {
	return &MetricsClient{next: next, collector: collector}
}

func (m *MetricsClient) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	start := time.Now()
	data, err := m.next.FetchCurrent(ctx, query)
	m.observe(opCurrent, time.Since(start), err)
	return data, err
}

func (m *MetricsClient) FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error) {
	start := time.Now()
	data, err := m.next.FetchForecast(ctx, location, days)
	m.observe(opForecast, time.Since(start), err)
	return data, err
}

func (m *MetricsClient) observe(op string, d time.Duration, err error) {
	m.collector.ObserveLatency(op, d)
	m.collector.IncrementCounter(op, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrLocationNotFound):
		return "not_found"
	case errors.Is(err, models.ErrMissingAPIKey):
		return "missing_key"
	default:
		return "error"
	}
}
