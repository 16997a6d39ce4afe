package models

// Unit is a temperature unit symbol.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// Other returns the unit the display toggles to.
func (u Unit) Other() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// CurrentWeather is a current-conditions snapshot. TemperatureCelsius always
// holds the provider value; Unit only tracks how it is displayed.
type CurrentWeather struct {
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	Condition          string  `json:"condition"`
	LocationName       string  `json:"location"`
	Unit               Unit    `json:"unit"`
}

type ForecastDay struct {
	Date                  string  `json:"date"`
	AvgTemperatureCelsius float64 `json:"avgTemperatureCelsius"`
}
