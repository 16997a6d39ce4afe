package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/app"
	"github.com/Nazarious-ucu/weather-widget/internal/config"
	"github.com/Nazarious-ucu/weather-widget/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-widget/pkg/logger"
)

const serviceName = "weather_widget"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("unknown log level %q, using info", cfg.LogLevel)
		level = zerolog.InfoLevel
	}
	l := logger.NewLogger(cfg.LogsPath, serviceName, level)

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, metrics.NewMetrics(serviceName))
	if err := application.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("application failed to run")
	}
}
