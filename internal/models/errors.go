package models

import "errors"

var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrMissingAPIKey       = errors.New("weather API key is not configured")
)
