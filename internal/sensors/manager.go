// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/bus"
	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/env"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// Instance is the registry id of the configured sensor.
const Instance uint32 = 0

// fifoSlotRegister is never read through the register tools: reading it
// pops a slot.
const fifoSlotRegister = lis2duxs12.RegFIFODataOutTag

// ErrReadPopsFIFO is returned for register reads that would consume FIFO
// data.
var ErrReadPopsFIFO = errors.New("sensors: reading this register pops a FIFO slot, use DrainFIFO")

// ReadPopsFIFO reports whether reading addr consumes a FIFO slot.
func ReadPopsFIFO(addr byte) bool { return addr == fifoSlotRegister }

// Manager owns the configured LIS2DUXS12 and its bus.
type Manager struct {
	cfg      *config.Config
	name     string
	registry *Registry
	dev      *lis2duxs12.Device
	closer   io.Closer
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg, name: cfg.SensorName, registry: NewRegistry()}
}

// Open opens the configured bus and brings the sensor up.
func (m *Manager) Open() error {
	t, closer, err := bus.Open(m.cfg.BusOptions())
	if err != nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
	}
	log.Printf("%s LIS2DUXS12: %s bus opened (%s driver)", m.name, m.cfg.SensorBusType, m.cfg.SensorBusDriver)
	if err := m.Attach(t, m.cfg.SensorBusType, bus.Sleep, closer); err != nil {
		closer.Close()
		return err
	}
	return nil
}

// Attach brings the sensor up over an already open transport. closer may
// be nil. On error the manager keeps nothing and closer is not called.
func (m *Manager) Attach(t bus.Transport, typ bus.Type, delay bus.DelayFunc, closer io.Closer) error {
	dev := lis2duxs12.New()
	if err := dev.RegisterBusIO(t, typ, delay); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: register bus: %w", m.name, err)
	}
	if err := dev.ExitDeepPowerDown(); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: exit deep power down: %w", m.name, err)
	}
	if err := dev.CheckID(); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
	}
	log.Printf("%s LIS2DUXS12: WHO_AM_I = 0x%02X", m.name, lis2duxs12.DeviceID)

	if err := m.registry.Register(Instance, m.name, dev); err != nil {
		return err
	}
	m.dev = dev
	m.closer = closer

	if err := m.bringUp(); err != nil {
		m.detach()
		return err
	}
	return nil
}

func (m *Manager) bringUp() error {
	if err := m.registry.Init(Instance, motion.Accelero); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
	}
	return m.configure()
}

// detach forgets a sensor whose bring-up failed. The part is powered down
// if the bus still answers; the closer stays with the caller.
func (m *Manager) detach() {
	if m.dev.GetInitStatus() {
		if err := m.dev.DeInit(); err != nil {
			log.Printf("%s LIS2DUXS12: power down after failed attach: %v", m.name, err)
		}
	}
	m.registry.Unregister(Instance)
	m.dev = nil
	m.closer = nil
}

// configure applies events, the operating point and FIFO from config.
// Detector enables program their own rate and range, so they run first and
// the thresholds, which depend on the range, run last.
func (m *Manager) configure() error {
	cfg := m.cfg
	return m.registry.Do(Instance, func(motion.Sensor) error {
		d := m.dev
		if cfg.WakeUpEnabled {
			if err := d.EnableWakeUpDetection(cfg.EventIntPin); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: wake-up: %w", m.name, err)
			}
		}
		if cfg.SixDEnabled {
			if err := d.Enable6DOrientation(cfg.EventIntPin); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: 6D: %w", m.name, err)
			}
		}
		if cfg.FreeFallEnabled {
			if err := d.EnableFreeFallDetection(cfg.EventIntPin); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: free-fall: %w", m.name, err)
			}
			log.Printf("%s LIS2DUXS12: free-fall on %s", m.name, cfg.EventIntPin)
		}
		if cfg.PedometerEnabled {
			if err := d.EnablePedometer(cfg.EventIntPin); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: pedometer: %w", m.name, err)
			}
			log.Printf("%s LIS2DUXS12: pedometer on %s", m.name, cfg.EventIntPin)
		}

		if err := d.SetOutputDataRateWithMode(cfg.SensorODRHz, cfg.SensorPowerMode); err != nil {
			return fmt.Errorf("%s LIS2DUXS12: set ODR: %w", m.name, err)
		}
		if err := d.SetFullScale(cfg.SensorFullScaleG); err != nil {
			return fmt.Errorf("%s LIS2DUXS12: set full scale: %w", m.name, err)
		}
		if err := d.Enable(); err != nil {
			return fmt.Errorf("%s LIS2DUXS12: enable: %w", m.name, err)
		}
		odr, err := d.GetOutputDataRate()
		if err != nil {
			return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
		}
		log.Printf("%s LIS2DUXS12: %g Hz %s, ±%dg", m.name, odr, cfg.SensorPowerMode, cfg.SensorFullScaleG)

		if cfg.WakeUpEnabled {
			if err := d.SetWakeUpThreshold(cfg.WakeUpThresholdMg); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: wake-up threshold: %w", m.name, err)
			}
			if err := d.SetWakeUpDuration(cfg.WakeUpDuration); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: wake-up duration: %w", m.name, err)
			}
			log.Printf("%s LIS2DUXS12: wake-up on %s at %d mg", m.name, cfg.EventIntPin, cfg.WakeUpThresholdMg)
		}
		if cfg.SixDEnabled {
			if err := d.Set6DOrientationThreshold(cfg.SixDThreshold); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: 6D threshold: %w", m.name, err)
			}
			log.Printf("%s LIS2DUXS12: 6D orientation on %s", m.name, cfg.EventIntPin)
		}
		if cfg.FIFOWatermark > 0 {
			fm := lis2duxs12.FIFOMode{
				Operation: lis2duxs12.FIFOStream,
				Store:     lis2duxs12.FIFO1X,
				Watermark: cfg.FIFOWatermark,
			}
			if err := d.ConfigureFIFO(fm); err != nil {
				return fmt.Errorf("%s LIS2DUXS12: fifo: %w", m.name, err)
			}
			log.Printf("%s LIS2DUXS12: FIFO stream, watermark %d", m.name, cfg.FIFOWatermark)
		}
		return nil
	})
}

func (m *Manager) Name() string { return m.name }

// Registry exposes the sensor registry.
func (m *Manager) Registry() *Registry { return m.registry }

func (m *Manager) ready() error {
	if m.dev == nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, ErrUnknownInstance)
	}
	return nil
}

// ReadSample reads one acceleration sample.
func (m *Manager) ReadSample() (motion.Sample, error) {
	s := motion.Sample{Source: m.name}
	err := m.registry.Do(Instance, func(sn motion.Sensor) error {
		var err error
		if s.Acc, err = sn.GetAxes(); err != nil {
			return err
		}
		if s.Raw, err = sn.GetAxesRaw(); err != nil {
			return err
		}
		if s.ODR, err = sn.GetOutputDataRate(); err != nil {
			return err
		}
		s.FullScale, err = sn.GetFullScale()
		return err
	})
	if err != nil {
		return motion.Sample{}, fmt.Errorf("%s LIS2DUXS12 sample: %w", m.name, err)
	}
	s.Timestamp = time.Now()
	return s, nil
}

// ReadTemperature reads the die temperature.
func (m *Manager) ReadTemperature() (env.Sample, error) {
	var degC float32
	err := m.registry.Do(Instance, func(sn motion.Sensor) error {
		th, ok := sn.(motion.Thermometer)
		if !ok {
			return fmt.Errorf("%w: temperature", ErrFunctionNotSupported)
		}
		var err error
		degC, err = th.GetTemperature()
		return err
	})
	if err != nil {
		return env.Sample{}, fmt.Errorf("%s LIS2DUXS12 temperature: %w", m.name, err)
	}
	return env.FromCelsius(m.name, degC), nil
}

// EventStatus reads the routed event flags.
func (m *Manager) EventStatus() (motion.EventStatus, error) {
	return m.registry.GetEventStatus(Instance, motion.Accelero)
}

// Orientation reads the 6D detector state.
func (m *Manager) Orientation() (motion.SixDOrientation, error) {
	if err := m.ready(); err != nil {
		return motion.SixDOrientation{}, err
	}
	var o motion.SixDOrientation
	err := m.registry.Do(Instance, func(motion.Sensor) error {
		var err error
		o, err = m.dev.Get6DOrientation()
		return err
	})
	return o, err
}

// StepCount reads the pedometer.
func (m *Manager) StepCount() (uint16, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	var n uint16
	err := m.registry.Do(Instance, func(motion.Sensor) error {
		var err error
		n, err = m.dev.StepCount()
		return err
	})
	return n, err
}

// DrainFIFO reads up to limit FIFO slots.
func (m *Manager) DrainFIFO(limit int) ([]lis2duxs12.FIFOSample, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	var out []lis2duxs12.FIFOSample
	err := m.registry.Do(Instance, func(motion.Sensor) error {
		var err error
		out, err = m.dev.ReadFIFO(limit)
		return err
	})
	return out, err
}

// SelfTest runs the accelerometer self-test with the configured limits.
func (m *Manager) SelfTest(ctx context.Context) (SelfTestResult, error) {
	opts := LIS2DUXS12SelfTest(m.cfg.SelfTestMinMg, m.cfg.SelfTestMaxMg, m.cfg.SelfTestSamples,
		time.Duration(m.cfg.SelfTestSettleMs)*time.Millisecond)
	var res SelfTestResult
	err := m.registry.Do(Instance, func(sn motion.Sensor) error {
		var err error
		res, err = RunAccelSelfTest(ctx, sn, opts)
		return err
	})
	return res, err
}

// Register access for the debug tool.

func (m *Manager) GetRegisterMap() []RegisterInfo { return lis2duxs12RegisterMap() }

func (m *Manager) ReadRegister(addr byte) (byte, error) {
	if ReadPopsFIFO(addr) {
		return 0, fmt.Errorf("0x%02X: %w", addr, ErrReadPopsFIFO)
	}
	return m.registry.ReadRegister(Instance, addr)
}

func (m *Manager) WriteRegister(addr, value byte) error {
	return m.registry.WriteRegister(Instance, addr, value)
}

// ReadAllRegisters reads every mapped register except the FIFO tag.
func (m *Manager) ReadAllRegisters() (map[byte]byte, error) {
	return m.readMapped(func(RegisterInfo) bool { return true })
}

// ExportRegisterConfig reads the writable registers.
func (m *Manager) ExportRegisterConfig() (map[byte]byte, error) {
	return m.readMapped(RegisterInfo.Writable)
}

func (m *Manager) readMapped(keep func(RegisterInfo) bool) (map[byte]byte, error) {
	out := make(map[byte]byte)
	err := m.registry.Do(Instance, func(sn motion.Sensor) error {
		for _, r := range lis2duxs12RegisterMap() {
			if !keep(r) {
				continue
			}
			addr, err := ParseAddress(r.Address)
			if err != nil {
				return err
			}
			if ReadPopsFIFO(addr) {
				continue
			}
			v, err := sn.ReadReg(addr)
			if err != nil {
				return fmt.Errorf("read %s: %w", r.Name, err)
			}
			out[addr] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reinitialize runs DeInit, Init and the configuration again.
func (m *Manager) Reinitialize() error {
	if err := m.ready(); err != nil {
		return err
	}
	if err := m.registry.DeInit(Instance); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
	}
	if err := m.registry.Init(Instance, motion.Accelero); err != nil {
		return fmt.Errorf("%s LIS2DUXS12: %w", m.name, err)
	}
	log.Printf("%s LIS2DUXS12: reinitialized", m.name)
	return m.configure()
}

// Close powers the sensor down and releases the bus.
func (m *Manager) Close() error {
	if m.dev == nil {
		return nil
	}
	err := m.registry.DeInit(Instance)
	if m.closer != nil {
		if cerr := m.closer.Close(); err == nil {
			err = cerr
		}
	}
	m.dev = nil
	return err
}

// ParseAddress parses a register address such as "0x1F" or "31".
func ParseAddress(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid register address %q: %w", s, err)
	}
	return byte(v), nil
}
