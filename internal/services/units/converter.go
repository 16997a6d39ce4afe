package units

import (
	"math"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

// Convert expresses value (given in from) in the to unit. Converted values are
// floored, not rounded; a same-unit call returns value untouched.
func Convert(value float64, from, to models.Unit) float64 {
	switch {
	case from == to:
		return value
	case from == models.Celsius && to == models.Fahrenheit:
		return math.Floor(value*9/5 + 32)
	case from == models.Fahrenheit && to == models.Celsius:
		return math.Floor((value - 32) * 5 / 9)
	default:
		return value
	}
}
