package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/mems_sensors/internal/env"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

var errBus = errors.New("bus error")

// fakeDevice implements registerDevice, sensorReader and SelfTestRunner.
type fakeDevice struct {
	regs    map[byte]byte
	reinits int
	failAll bool

	sample  motion.Sample
	events  motion.EventStatus
	sixD    motion.SixDOrientation
	steps   uint16
	fifo    []lis2duxs12.FIFOSample
	stErr   error
	stDelta motion.Axes
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		regs:   map[byte]byte{0x0F: 0x47, 0x10: 0x00, 0x14: 0x80},
		sample: motion.Sample{Source: "fake", Acc: motion.Axes{Z: 1000}, ODR: 100, FullScale: 2},
	}
}

func (f *fakeDevice) Name() string { return "fake" }

func (f *fakeDevice) GetRegisterMap() []sensors.RegisterInfo {
	return []sensors.RegisterInfo{
		{Address: "0x0F", Name: "WHO_AM_I", Access: "R"},
		{Address: "0x10", Name: "CTRL1", Access: "RW"},
		{Address: "0x14", Name: "CTRL5", Access: "RW"},
	}
}

func (f *fakeDevice) ReadRegister(addr byte) (byte, error) {
	if f.failAll {
		return 0, errBus
	}
	return f.regs[addr], nil
}

func (f *fakeDevice) WriteRegister(addr, value byte) error {
	if f.failAll {
		return errBus
	}
	f.regs[addr] = value
	return nil
}

func (f *fakeDevice) ReadAllRegisters() (map[byte]byte, error) {
	if f.failAll {
		return nil, errBus
	}
	out := make(map[byte]byte)
	for k, v := range f.regs {
		out[k] = v
	}
	return out, nil
}

func (f *fakeDevice) ExportRegisterConfig() (map[byte]byte, error) {
	return map[byte]byte{0x10: f.regs[0x10], 0x14: f.regs[0x14]}, nil
}

func (f *fakeDevice) Reinitialize() error {
	f.reinits++
	return nil
}

func (f *fakeDevice) ReadSample() (motion.Sample, error) {
	if f.failAll {
		return motion.Sample{}, errBus
	}
	return f.sample, nil
}

func (f *fakeDevice) ReadTemperature() (env.Sample, error) {
	return env.FromCelsius("fake", 25), nil
}

func (f *fakeDevice) EventStatus() (motion.EventStatus, error) { return f.events, nil }

func (f *fakeDevice) Orientation() (motion.SixDOrientation, error) { return f.sixD, nil }

func (f *fakeDevice) StepCount() (uint16, error) { return f.steps, nil }

func (f *fakeDevice) DrainFIFO(limit int) ([]lis2duxs12.FIFOSample, error) {
	n := min(limit, len(f.fifo))
	out := f.fifo[:n]
	f.fifo = f.fifo[n:]
	return out, nil
}

func (f *fakeDevice) SelfTest(ctx context.Context) (sensors.SelfTestResult, error) {
	res := sensors.SelfTestResult{Delta: f.stDelta, Pass: f.stErr == nil}
	return res, f.stErr
}

// fakeToken is a completed MQTT token.
type fakeToken struct{ err error }

func (t fakeToken) Wait() bool                     { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	retained bool
	payload  []byte
}

// fakePublisher records every Publish call.
type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	b, ok := payload.([]byte)
	if !ok {
		return fakeToken{err: fmt.Errorf("payload type %T", payload)}
	}
	p.msgs = append(p.msgs, published{topic: topic, retained: retained, payload: b})
	return fakeToken{err: p.err}
}

func (p *fakePublisher) topics() []string {
	var out []string
	for _, m := range p.msgs {
		out = append(out, m.topic)
	}
	return out
}

// fakeMessage is an incoming MQTT message.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return true }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}
