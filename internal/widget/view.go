package widget

import (
	"time"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/messages"
	"github.com/Nazarious-ucu/weather-widget/internal/services/units"
)

// View is the state plus everything derived from it for display.
type View struct {
	WidgetState

	Temperature        *float64      `json:"temperature,omitempty"`
	TemperatureMessage string        `json:"temperatureMessage,omitempty"`
	ConditionMessage   string        `json:"conditionMessage,omitempty"`
	LocationMessage    string        `json:"locationMessage,omitempty"`
	ForecastTable      []ForecastRow `json:"forecastTable"`
}

type ForecastRow struct {
	Date        string      `json:"date"`
	Temperature float64     `json:"temperature"`
	Unit        models.Unit `json:"unit"`
}

func newView(state WidgetState, now time.Time) View {
	v := View{
		WidgetState:   state,
		ForecastTable: make([]ForecastRow, 0, len(state.Forecast)),
	}

	for _, day := range state.Forecast {
		v.ForecastTable = append(v.ForecastTable, ForecastRow{
			Date:        day.Date,
			Temperature: units.Convert(day.AvgTemperatureCelsius, models.Celsius, state.DisplayUnit),
			Unit:        state.DisplayUnit,
		})
	}

	if state.Current == nil {
		return v
	}

	t := displayTemperature(*state.Current)
	v.Temperature = &t
	v.TemperatureMessage = messages.TemperatureMessage(t, state.Current.Unit)
	v.ConditionMessage = messages.ConditionMessage(state.Current.Condition)
	v.LocationMessage = messages.LocationMessage(state.Current.LocationName, now)

	return v
}

func displayTemperature(cur models.CurrentWeather) float64 {
	return units.Convert(cur.TemperatureCelsius, models.Celsius, cur.Unit)
}
