package http

import (
	"context"
	"errors"

	"github.com/Nazarious-ucu/weather-widget/internal/widget"
)

var errNoPosition = errors.New("position missing from request")

// geolocationRequest carries what the host's geolocation capability reported:
// either a position or the reason it could not get one.
type geolocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (r geolocationRequest) locator() widget.Geolocator {
	return reportedPosition(r)
}

type reportedPosition geolocationRequest

func (p reportedPosition) Locate(context.Context) (widget.Coordinates, error) {
	if p.Error != "" {
		return widget.Coordinates{}, errors.New(p.Error)
	}
	if p.Latitude == nil || p.Longitude == nil {
		return widget.Coordinates{}, errNoPosition
	}
	return widget.Coordinates{Latitude: *p.Latitude, Longitude: *p.Longitude}, nil
}

// hostSharer accepts the text; the host shows its native share sheet once
// the response arrives.
type hostSharer struct{}

func (hostSharer) Share(context.Context, string) error {
	return nil
}
