// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

var errMockNotInitialized = errors.New("mock: not initialized")

// MockSensor is an accelerometer without hardware. It reports gravity for
// a slowly swaying pose, and a fixed offset while the self-test is on.
type MockSensor struct {
	// Now drives the simulated motion; time.Now when nil.
	Now func() time.Time
	// SelfTestDelta is added to every axis reading (in mg) while the
	// positive self-test runs, and subtracted for the negative one.
	SelfTestDelta motion.Axes
	// Still freezes the pose at level.
	Still bool

	start       time.Time
	initialized bool
	enabled     bool
	odr         float32
	fs          int32
	selfTest    motion.SelfTestMode
	regs        [256]uint8
}

var _ motion.Sensor = (*MockSensor)(nil)
var _ motion.Thermometer = (*MockSensor)(nil)
var _ motion.SelfTester = (*MockSensor)(nil)

// MockDeviceID is returned by MockSensor.ReadID.
const MockDeviceID = 0x4D

func NewMockSensor() *MockSensor {
	return &MockSensor{SelfTestDelta: motion.Axes{X: 200, Y: 200, Z: 200}}
}

func (m *MockSensor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MockSensor) Init() error {
	m.start = m.now()
	m.initialized = true
	m.odr = 100
	m.fs = 2
	return nil
}

func (m *MockSensor) DeInit() error {
	m.enabled = false
	m.initialized = false
	m.odr = 0
	return nil
}

func (m *MockSensor) ReadID() (uint8, error) { return MockDeviceID, nil }

func (m *MockSensor) GetCapabilities() motion.Capabilities {
	return motion.Capabilities{Acc: true, LowPower: true, AccMaxFS: 16, AccMaxOdr: 800}
}

func (m *MockSensor) Enable() error {
	if !m.initialized {
		return errMockNotInitialized
	}
	m.enabled = true
	return nil
}

func (m *MockSensor) Disable() error {
	m.enabled = false
	return nil
}

// GetAxes returns gravity in mg for roll = 20·sin(t), pitch = 15·cos(0.7t).
func (m *MockSensor) GetAxes() (motion.Axes, error) {
	if !m.enabled {
		return motion.Axes{}, fmt.Errorf("mock: disabled")
	}
	var roll, pitch float64
	if !m.Still {
		t := m.now().Sub(m.start).Seconds()
		roll = 20 * math.Sin(t) * math.Pi / 180
		pitch = 15 * math.Cos(t*0.7) * math.Pi / 180
	}
	a := motion.Axes{
		X: int32(math.Round(-1000 * math.Sin(pitch))),
		Y: int32(math.Round(1000 * math.Sin(roll) * math.Cos(pitch))),
		Z: int32(math.Round(1000 * math.Cos(roll) * math.Cos(pitch))),
	}
	switch m.selfTest {
	case motion.SelfTestPositive:
		a.X += m.SelfTestDelta.X
		a.Y += m.SelfTestDelta.Y
		a.Z += m.SelfTestDelta.Z
	case motion.SelfTestNegative:
		a.X -= m.SelfTestDelta.X
		a.Y -= m.SelfTestDelta.Y
		a.Z -= m.SelfTestDelta.Z
	}
	lim := m.fs * 1000
	a.X = clamp(a.X, lim)
	a.Y = clamp(a.Y, lim)
	a.Z = clamp(a.Z, lim)
	return a, nil
}

func clamp(v, lim int32) int32 {
	return max(-lim, min(lim, v))
}

func (m *MockSensor) GetAxesRaw() (motion.AxesRaw, error) {
	a, err := m.GetAxes()
	if err != nil {
		return motion.AxesRaw{}, err
	}
	sens, _ := m.GetSensitivity()
	conv := func(v int32) int16 { return int16(math.Round(float64(v) / float64(sens))) }
	return motion.AxesRaw{X: conv(a.X), Y: conv(a.Y), Z: conv(a.Z)}, nil
}

// GetSensitivity is in mg/LSB, 0.061 at 2g.
func (m *MockSensor) GetSensitivity() (float32, error) {
	return 0.061 * float32(m.fs) / 2, nil
}

func (m *MockSensor) GetOutputDataRate() (float32, error) {
	if !m.enabled {
		return 0, nil
	}
	return m.odr, nil
}

func (m *MockSensor) SetOutputDataRate(hz float32) error {
	if hz <= 0 {
		return fmt.Errorf("mock: output data rate %g", hz)
	}
	m.odr = min(hz, 800)
	return nil
}

func (m *MockSensor) GetFullScale() (int32, error) { return m.fs, nil }

func (m *MockSensor) SetFullScale(g int32) error {
	switch {
	case g <= 2:
		m.fs = 2
	case g <= 4:
		m.fs = 4
	case g <= 8:
		m.fs = 8
	default:
		m.fs = 16
	}
	return nil
}

func (m *MockSensor) ReadReg(reg uint8) (uint8, error) { return m.regs[reg], nil }

func (m *MockSensor) WriteReg(reg, val uint8) error {
	m.regs[reg] = val
	return nil
}

func (m *MockSensor) GetDRDYStatus() (bool, error) { return m.enabled, nil }

func (m *MockSensor) GetTemperature() (float32, error) {
	if !m.initialized {
		return 0, errMockNotInitialized
	}
	return 25 + float32(math.Sin(m.now().Sub(m.start).Seconds()/60)), nil
}

func (m *MockSensor) SetSelfTest(mode motion.SelfTestMode) error {
	if mode > motion.SelfTestNegative {
		return fmt.Errorf("mock: self-test mode %d", mode)
	}
	m.selfTest = mode
	return nil
}
