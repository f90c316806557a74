// Package metrics exports sensor readings to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relabs-tech/mems_sensors/internal/env"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
)

const namespace = "sensors"

// Sensor holds the collectors of one accelerometer.
type Sensor struct {
	reg *prometheus.Registry

	acc         *prometheus.GaugeVec
	tilt        *prometheus.GaugeVec
	odr         prometheus.Gauge
	fullScale   prometheus.Gauge
	temperature prometheus.Gauge
	steps       prometheus.Gauge
	events      *prometheus.CounterVec
	readErrors  *prometheus.CounterVec
	selfTest    prometheus.Gauge
}

// NewSensor registers the collectors for the named sensor on a fresh
// registry.
func NewSensor(name string) *Sensor {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	labels := prometheus.Labels{"sensor": name}
	return &Sensor{
		reg: reg,
		acc: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "acceleration_mg",
			ConstLabels: labels,
		}, []string{"axis"}),
		tilt: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "tilt_degrees",
			ConstLabels: labels,
		}, []string{"angle"}),
		odr: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "output_data_rate_hz",
			ConstLabels: labels,
		}),
		fullScale: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "full_scale_g",
			ConstLabels: labels,
		}),
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "temperature_celsius",
			ConstLabels: labels,
		}),
		steps: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "steps",
			ConstLabels: labels,
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "events_total",
			ConstLabels: labels,
		}, []string{"event"}),
		readErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "read_errors_total",
			ConstLabels: labels,
		}, []string{"reading"}),
		selfTest: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lis2duxs12",
			Name:        "self_test_pass",
			Help:        "1 after a passing self-test, 0 after a failing one.",
			ConstLabels: labels,
		}),
	}
}

func (s *Sensor) ObserveSample(smp motion.Sample) {
	s.acc.WithLabelValues("x").Set(float64(smp.Acc.X))
	s.acc.WithLabelValues("y").Set(float64(smp.Acc.Y))
	s.acc.WithLabelValues("z").Set(float64(smp.Acc.Z))
	s.odr.Set(float64(smp.ODR))
	s.fullScale.Set(float64(smp.FullScale))
}

func (s *Sensor) ObservePose(p orientation.Pose) {
	s.tilt.WithLabelValues("roll").Set(p.Roll)
	s.tilt.WithLabelValues("pitch").Set(p.Pitch)
}

func (s *Sensor) ObserveTemperature(t env.Sample) {
	s.temperature.Set(t.Temperature)
}

func (s *Sensor) ObserveSteps(n uint16) {
	s.steps.Set(float64(n))
}

// ObserveEvents counts each flag that is set.
func (s *Sensor) ObserveEvents(st motion.EventStatus) {
	for _, e := range []struct {
		name string
		set  bool
	}{
		{"wake_up", st.WakeUp},
		{"6d", st.D6DOrientation},
		{"free_fall", st.FreeFall},
		{"sleep", st.Sleep},
	} {
		if e.set {
			s.events.WithLabelValues(e.name).Inc()
		}
	}
}

// ReadError counts a failed read of the given kind ("sample", "events", ...).
func (s *Sensor) ReadError(reading string) {
	s.readErrors.WithLabelValues(reading).Inc()
}

func (s *Sensor) ObserveSelfTest(pass bool) {
	if pass {
		s.selfTest.Set(1)
		return
	}
	s.selfTest.Set(0)
}

// Handler serves the registry in the Prometheus text format.
func (s *Sensor) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})
}
