package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/env"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/metrics"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

// sensorReader is the part of sensors.Manager the producer reads.
type sensorReader interface {
	Name() string
	ReadSample() (motion.Sample, error)
	ReadTemperature() (env.Sample, error)
	EventStatus() (motion.EventStatus, error)
	Orientation() (motion.SixDOrientation, error)
	StepCount() (uint16, error)
	DrainFIFO(limit int) ([]lis2duxs12.FIFOSample, error)
}

// publisher is satisfied by mqtt.Client.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// EventReport is published on TopicEvents.
type EventReport struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	motion.EventStatus
	Face orientation.Face `json:"face,omitempty"`
}

// StepReport is published on TopicSteps.
type StepReport struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Steps     uint16    `json:"steps"`
}

// FIFOReport is published on TopicFIFO for every drained batch. Acc holds
// one entry per accelerometer sample; 2x slots carry two.
type FIFOReport struct {
	Source    string       `json:"source"`
	Timestamp time.Time    `json:"timestamp"`
	Slots     int          `json:"slots"`
	Acc       [][3]float32 `json:"acc_mg"`
	Steps     *uint16      `json:"steps,omitempty"`
}

func newFIFOReport(source string, t time.Time, batch []lis2duxs12.FIFOSample) FIFOReport {
	r := FIFOReport{Source: source, Timestamp: t, Slots: len(batch)}
	for _, s := range batch {
		switch s.Tag {
		case lis2duxs12.TagXLOnly2X, lis2duxs12.TagXLOnly2X2nd:
			r.Acc = append(r.Acc, s.XL[0].MG, s.XL[1].MG)
		case lis2duxs12.TagXLTemp, lis2duxs12.TagXLAndQvar:
			r.Acc = append(r.Acc, s.XL[0].MG)
		case lis2duxs12.TagStepCounter:
			steps := s.Pedo.Steps
			r.Steps = &steps
		}
	}
	return r
}

type sensorProducer struct {
	cfg     *config.Config
	src     sensorReader
	pub     publisher
	metrics *metrics.Sensor
	lastLog time.Time
}

func RunSensorProducer() error {
	log.Println("starting LIS2DUXS12 sensor producer")

	cfg := config.Get()

	mgr := sensors.NewManager(cfg)
	if err := mgr.Open(); err != nil {
		return err
	}
	defer mgr.Close()

	m := metrics.NewSensor(mgr.Name())
	go serveMetrics(cfg.MetricsPort, m)

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &sensorProducer{cfg: cfg, src: mgr, pub: client, metrics: m}

	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("sensor producer: shutting down")
			return nil
		case t := <-ticker.C:
			if err := p.tick(t); err != nil {
				log.Printf("%s LIS2DUXS12: %v", mgr.Name(), err)
			}
		}
	}
}

func serveMetrics(port int, m *metrics.Sensor) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	addr := fmt.Sprintf(":%d", port)
	log.Printf("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server: %v", err)
	}
}

// tick reads the sensor once and publishes every enabled topic. A failed
// sample read skips the rest of the tick.
func (p *sensorProducer) tick(t time.Time) error {
	// 1) Acceleration and pose
	sample, err := p.src.ReadSample()
	if err != nil {
		p.metrics.ReadError("sample")
		return err
	}
	p.metrics.ObserveSample(sample)
	if err := p.publish(p.cfg.TopicSample, sample); err != nil {
		return err
	}

	pose := orientation.PoseFromAxes(sample.Acc)
	p.metrics.ObservePose(pose)
	if err := p.publish(p.cfg.TopicPose, pose); err != nil {
		return err
	}

	// 2) Die temperature
	if temp, err := p.src.ReadTemperature(); err != nil {
		p.metrics.ReadError("temperature")
		log.Printf("%s LIS2DUXS12: temperature read error: %v", p.src.Name(), err)
	} else {
		p.metrics.ObserveTemperature(temp)
		if err := p.publish(p.cfg.TopicTemperature, temp); err != nil {
			return err
		}
	}

	// 3) Events
	if p.cfg.WakeUpEnabled || p.cfg.SixDEnabled || p.cfg.FreeFallEnabled {
		if err := p.publishEvents(t); err != nil {
			return err
		}
	}

	// 4) Pedometer
	if p.cfg.PedometerEnabled {
		n, err := p.src.StepCount()
		if err != nil {
			p.metrics.ReadError("steps")
			return err
		}
		p.metrics.ObserveSteps(n)
		if err := p.publish(p.cfg.TopicSteps, StepReport{Source: p.src.Name(), Timestamp: t, Steps: n}); err != nil {
			return err
		}
	}

	// 5) FIFO batch
	if p.cfg.FIFOWatermark > 0 {
		batch, err := p.src.DrainFIFO(int(p.cfg.FIFOWatermark))
		if err != nil {
			p.metrics.ReadError("fifo")
			return err
		}
		if len(batch) > 0 {
			if err := p.publish(p.cfg.TopicFIFO, newFIFOReport(p.src.Name(), t, batch)); err != nil {
				return err
			}
		}
	}

	if t.Sub(p.lastLog) >= time.Duration(p.cfg.ConsoleLogInterval)*time.Millisecond {
		p.lastLog = t
		log.Printf("%s tick: acc x=%d y=%d z=%d mg | pose R=%.2f P=%.2f | %g Hz ±%dg",
			t.Format(time.RFC3339),
			sample.Acc.X, sample.Acc.Y, sample.Acc.Z,
			pose.Roll, pose.Pitch,
			sample.ODR, sample.FullScale,
		)
	}
	return nil
}

func (p *sensorProducer) publishEvents(t time.Time) error {
	st, err := p.src.EventStatus()
	if err != nil {
		p.metrics.ReadError("events")
		return err
	}
	p.metrics.ObserveEvents(st)
	report := EventReport{Source: p.src.Name(), Timestamp: t, EventStatus: st}
	if p.cfg.SixDEnabled && st.D6DOrientation {
		o, err := p.src.Orientation()
		if err != nil {
			p.metrics.ReadError("events")
			return err
		}
		report.Face = orientation.FaceFromSixD(o)
	}
	if st.Any() {
		log.Printf("%s LIS2DUXS12: events %+v", p.src.Name(), st)
	}
	return p.publish(p.cfg.TopicEvents, report)
}

// publish sends v as retained JSON.
func (p *sensorProducer) publish(topic string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal error (%s): %w", topic, err)
	}
	if token := p.pub.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish error (%s): %w", topic, token.Error())
	}
	return nil
}
