package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Host        string `envconfig:"WIDGET_SERVER_HOST" default:"localhost"`
	Port        string `envconfig:"WIDGET_SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"WIDGET_SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type RateLimit struct {
	RPS   float64 `envconfig:"WEATHER_API_RPS" default:"5"`
	Burst int     `envconfig:"WEATHER_API_BURST" default:"5"`
}

type Widget struct {
	DefaultLocation string `envconfig:"WIDGET_DEFAULT_LOCATION"`
	ForecastDays    int    `envconfig:"WIDGET_FORECAST_DAYS" default:"7"`
	FetchTimeout    int    `envconfig:"WIDGET_FETCH_TIMEOUT" default:"10"`
}

type Config struct {
	// Absence of the key is not fatal at startup; every fetch fails instead.
	WeatherAPIKey string `envconfig:"WEATHER_API_KEY"`
	WeatherAPIURL string `envconfig:"WEATHER_API_URL" default:"https://api.weatherapi.com/v1"`

	Server    Server
	Breaker   Breaker
	RateLimit RateLimit
	Widget    Widget

	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-widget.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/weather-provider.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}
