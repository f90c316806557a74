// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"
	"io"
	"sync"

	"gobot.io/x/gobot/sysfs"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Driver names accepted in Options.Driver.
const (
	DriverPeriph = "periph"
	DriverSysfs  = "sysfs"
)

// Options selects and parameterizes a bus.
type Options struct {
	Driver     string // "periph" (default) or "sysfs"
	Type       Type
	I2CBus     string // periph bus name ("" = first) or sysfs device path
	I2CAddr    uint16 // 7-bit address
	SPIDevice  string
	SPISpeedHz int64
}

var (
	hostOnce    sync.Once
	hostInitErr error
)

func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostInitErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	return hostInitErr
}

// Open opens the bus described by opts. The returned Closer releases the
// underlying bus or port.
func Open(opts Options) (Transport, io.Closer, error) {
	if opts.Type == I3C {
		return nil, nil, fmt.Errorf("open %s: %w", opts.Type, ErrUnsupported)
	}

	if opts.Driver == DriverSysfs {
		if opts.Type != I2C {
			return nil, nil, fmt.Errorf("sysfs driver with %s: %w", opts.Type, ErrUnsupported)
		}
		dev, err := sysfs.NewI2cDevice(opts.I2CBus)
		if err != nil {
			return nil, nil, fmt.Errorf("sysfs i2c open %s: %w", opts.I2CBus, err)
		}
		return NewSMBus(dev, int(opts.I2CAddr)), dev, nil
	}

	if err := initHost(); err != nil {
		return nil, nil, err
	}

	switch opts.Type {
	case I2C:
		b, err := i2creg.Open(opts.I2CBus)
		if err != nil {
			return nil, nil, fmt.Errorf("i2c open %q: %w", opts.I2CBus, err)
		}
		return NewPeriphI2C(b, opts.I2CAddr), b, nil

	case SPI4Wire, SPI3Wire:
		p, err := spireg.Open(opts.SPIDevice)
		if err != nil {
			return nil, nil, fmt.Errorf("spi open %q: %w", opts.SPIDevice, err)
		}
		mode := spi.Mode3
		if opts.Type == SPI3Wire {
			mode |= spi.HalfDuplex
		}
		c, err := p.Connect(physic.Frequency(opts.SPISpeedHz)*physic.Hertz, mode, 8)
		if err != nil {
			p.Close()
			return nil, nil, fmt.Errorf("spi connect %q: %w", opts.SPIDevice, err)
		}
		return NewPeriphSPI(c), p, nil
	}

	return nil, nil, fmt.Errorf("open %s: %w", opts.Type, ErrUnsupported)
}
