package env

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Sample is a die temperature reading of a motion sensor.
type Sample struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	Temperature  float64 `json:"temp_c"` // °C
	TemperatureF float64 `json:"temp_f"`
}

// FromCelsius builds a Sample stamped with the current time.
func FromCelsius(source string, degC float32) Sample {
	t := physic.ZeroCelsius + physic.Temperature(float64(degC)*float64(physic.Kelvin))
	return Sample{
		Source:       source,
		Timestamp:    time.Now(),
		Temperature:  t.Celsius(),
		TemperatureF: t.Fahrenheit(),
	}
}

// Physic returns the reading as a periph temperature.
func (s Sample) Physic() physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(s.Temperature*float64(physic.Kelvin))
}
