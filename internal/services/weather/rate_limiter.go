package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

// RateLimitedClient keeps provider calls under the plan's request rate.
type RateLimitedClient struct {
	wrapped client
	limiter *rate.Limiter
}

// NewRateLimitedClient allows rps requests per second (fractions allowed)
// with bursts of up to burst requests.
func NewRateLimitedClient(wrapped client, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		wrapped: wrapped,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.wrapped.FetchCurrent(ctx, query)
}

func (r *RateLimitedClient) FetchForecast(ctx context.Context, location string, days int) ([]models.ForecastDay, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.wrapped.FetchForecast(ctx, location, days)
}
