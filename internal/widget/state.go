package widget

import (
	"context"
	"strconv"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

// WidgetState is everything the presentation layer needs to draw the widget.
type WidgetState struct {
	LocationQuery     string                 `json:"locationQuery"`
	Current           *models.CurrentWeather `json:"current"`
	Forecast          []models.ForecastDay   `json:"forecast"`
	Error             string                 `json:"error,omitempty"`
	IsLoading         bool                   `json:"isLoading"`
	DisplayUnit       models.Unit            `json:"displayUnit"`
	DarkMode          bool                   `json:"darkMode"`
	ShowForecastTable bool                   `json:"showForecastTable"`
}

func newWidgetState() WidgetState {
	return WidgetState{
		Forecast:    []models.ForecastDay{},
		DisplayUnit: models.Celsius,
	}
}

func (s WidgetState) clone() WidgetState {
	out := s
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	out.Forecast = append([]models.ForecastDay{}, s.Forecast...)
	return out
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Query renders the coordinates the way the provider accepts them: "lat,lon".
func (c Coordinates) Query() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Geolocator supplies the device position; it fails when access is denied
// or unsupported.
type Geolocator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Sharer hands text to the host's native share capability. It returns
// ErrShareUnsupported when the host has none.
type Sharer interface {
	Share(ctx context.Context, text string) error
}
