package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-widget/internal/config"
	handlers "github.com/Nazarious-ucu/weather-widget/internal/handlers/http"
	loggerT "github.com/Nazarious-ucu/weather-widget/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-widget/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-widget/internal/services/weather"
	"github.com/Nazarious-ucu/weather-widget/internal/services/weather/decorators"
	"github.com/Nazarious-ucu/weather-widget/internal/widget"
	fLogger "github.com/Nazarious-ucu/weather-widget/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// ServiceContainer holds the initialized dependencies of the HTTP server.
type ServiceContainer struct {
	Registry *widget.Registry
	Router   *gin.Engine
	Srv      *http.Server

	fileLogger *zap.Logger
}

// App ties together config, logger and metrics for startup and shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start serves the widget API until ctx is cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	srvContainer := a.init(fLogger.NewFileLogger(a.cfg.HTTPLogsPath))

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("weather widget server running")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather widget")
	case err, ok := <-serveErr:
		if ok {
			a.l.Error().Err(err).Msg("http server failed")
			_ = a.Shutdown(srvContainer)
			return err
		}
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the HTTP server, unmounts every widget and syncs the
// provider request log.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather widget…")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srvContainer.Srv.Shutdown(ctx)
	if err != nil {
		a.l.Error().Err(err).Msg("http shutdown error")
	}

	srvContainer.Registry.Close()
	a.m.SetSessions(srvContainer.Registry.Len())
	a.l.Info().Msg("widgets unmounted")

	if syncErr := srvContainer.fileLogger.Sync(); syncErr != nil {
		a.l.Warn().Err(syncErr).Msg("failed to sync file logger")
	}

	a.l.Info().Msg("shutdown complete")
	return err
}

// init builds the provider client chain, the widget registry and the router
// without starting anything.
func (a *App) init(fileLogger *zap.Logger) ServiceContainer {
	a.l.Info().
		Str("provider", a.cfg.WeatherAPIURL).
		Int("forecast_days", a.cfg.Widget.ForecastDays).
		Bool("api_key_set", a.cfg.WeatherAPIKey != "").
		Msg("initializing weather widget")

	if a.cfg.WeatherAPIKey == "" {
		a.l.Warn().Msg("WEATHER_API_KEY is not set, every weather fetch will fail")
	}

	httpLogClient := &http.Client{Transport: loggerT.NewRoundTripper(fileLogger)}
	source := a.newWeatherSource(httpLogClient)

	registry := widget.NewRegistry(source, a.l, widget.Options{
		DefaultLocation: a.cfg.Widget.DefaultLocation,
		ForecastTimeout: time.Duration(a.cfg.Widget.FetchTimeout) * time.Second,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(a.m.HTTPMiddleware())
	router.GET("/metrics", gin.WrapH(a.m.Handler()))

	handlers.NewHandler(registry, a.m, a.l, time.Duration(a.cfg.Widget.FetchTimeout)*time.Second).
		Register(router.Group("/api"))

	httpServer := &http.Server{
		Addr:              a.cfg.ServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		Registry:   registry,
		Router:     router,
		Srv:        httpServer,
		fileLogger: fileLogger,
	}
}

// newWeatherSource decorates the weatherapi.com client. Innermost first:
// breaker, rate limiter, metrics.
func (a *App) newWeatherSource(httpClient serviceWeather.HTTPClient) *serviceWeather.ServiceProvider {
	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}

	weatherAPI := serviceWeather.NewClientWeatherAPI(a.cfg.WeatherAPIKey, a.cfg.WeatherAPIURL, httpClient, a.l)
	breaker := serviceWeather.NewBreakerClient("WeatherAPI", breakerCfg, weatherAPI)
	limited := serviceWeather.NewRateLimitedClient(breaker, a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst)
	instrumented := decorators.NewMetricsClient(limited,
		metricsSvc.NewPromCollector("weather_widget", a.m.Registerer()))

	return serviceWeather.NewService(a.l, instrumented, a.cfg.Widget.ForecastDays)
}
