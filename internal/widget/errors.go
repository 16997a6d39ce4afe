package widget

import "errors"

// User-facing messages stored in WidgetState.Error or returned as notices.
const (
	MsgInvalidLocation  = "Please enter a valid location."
	MsgCityNotFound     = "City not found. Please try again."
	MsgGeolocation      = "Unable to retrieve your location. Please enter a city."
	MsgShareUnsupported = "Sharing is not supported on this device."
)

var (
	ErrValidation       = errors.New("location query is empty")
	ErrFetchFailed      = errors.New("current weather fetch failed")
	ErrGeolocation      = errors.New("geolocation unavailable")
	ErrSuperseded       = errors.New("request superseded by a newer one")
	ErrShareUnsupported = errors.New("share capability unavailable")
	ErrNothingToShare   = errors.New("no weather to share")
	ErrUnknownWidget    = errors.New("widget not found")
)
