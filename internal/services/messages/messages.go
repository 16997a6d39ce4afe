// Package messages derives the human-readable lines shown by the widget.
package messages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

const (
	nightStartHour = 18
	nightEndHour   = 6
)

// band upper bounds (exclusive) for freezing, quite cold, comfortable, pleasant
var (
	celsiusBands    = [4]float64{0, 10, 20, 30}
	fahrenheitBands = [4]float64{32, 50, 68, 86}
)

var conditionMessages = map[string]string{
	"sunny":         "It's a beautiful sunny day!",
	"partly cloudy": "Expect some clouds and sunshine.",
	"cloudy":        "It's cloudy today.",
	"overcast":      "The sky is overcast.",
	"rain":          "Don't forget your umbrella! It's raining.",
	"thunderstorm":  "Thunderstorms are expected today.",
	"snow":          "Bundle up! It's snowing.",
	"mist":          "It's misty outside.",
	"fog":           "Be careful, there's fog outside.",
}

// TemperatureMessage picks one of five phrasings by the unit's threshold bands.
func TemperatureMessage(value float64, unit models.Unit) string {
	bands := celsiusBands
	if unit == models.Fahrenheit {
		bands = fahrenheitBands
	}
	t := FormatTemperature(value, unit)

	switch {
	case value < bands[0]:
		return fmt.Sprintf("It's freezing at %s! Bundle up!", t)
	case value < bands[1]:
		return fmt.Sprintf("It's quite cold at %s. Wear warm clothes.", t)
	case value < bands[2]:
		return fmt.Sprintf("The temperature is %s. Comfortable for a light jacket.", t)
	case value < bands[3]:
		return fmt.Sprintf("It's a pleasant %s. Enjoy the nice weather!", t)
	default:
		return fmt.Sprintf("It's hot at %s. Stay hydrated!", t)
	}
}

// ConditionMessage maps a provider condition to a sentence; unknown
// conditions are returned as is.
func ConditionMessage(condition string) string {
	if msg, ok := conditionMessages[strings.ToLower(condition)]; ok {
		return msg
	}
	return condition
}

// LocationMessage tags the location with the time of day of now.
func LocationMessage(location string, now time.Time) string {
	hour := now.Hour()
	if hour >= nightStartHour || hour < nightEndHour {
		return location + " at Night"
	}
	return location + " During the Day"
}

// ShareText is the one-line summary handed to the host's share capability.
func ShareText(location string, temperature float64, unit models.Unit, condition string) string {
	return fmt.Sprintf("The current weather in %s is %s with %s.",
		location, FormatTemperature(temperature, unit), condition)
}

// FormatTemperature renders 22 as "22°C" and 22.5 as "22.5°C".
func FormatTemperature(value float64, unit models.Unit) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "°" + string(unit)
}
