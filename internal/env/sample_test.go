package env

import (
	"math"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestFromCelsius(t *testing.T) {
	tests := []struct {
		c, f float64
	}{
		{0, 32},
		{25, 77},
		{-40, -40},
		{100, 212},
	}
	for _, tc := range tests {
		s := FromCelsius("die", float32(tc.c))
		if math.Abs(s.Temperature-tc.c) > 1e-6 || math.Abs(s.TemperatureF-tc.f) > 1e-4 {
			t.Errorf("FromCelsius(%g) = %g °C %g °F", tc.c, s.Temperature, s.TemperatureF)
		}
		if s.Source != "die" || s.Timestamp.IsZero() {
			t.Errorf("sample = %+v", s)
		}
	}
}

func TestPhysic(t *testing.T) {
	s := Sample{Temperature: 25}
	if got := s.Physic(); got != physic.ZeroCelsius+25*physic.Kelvin {
		t.Errorf("Physic() = %s", got)
	}
}
