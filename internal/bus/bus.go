// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package bus provides the register transports used by the sensor drivers.
//
// A Transport moves raw register bytes; it knows nothing about bit fields or
// units. Drivers compose every operation from ReadReg and WriteReg.
package bus

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type identifies the physical interface a sensor is wired on.
type Type uint8

const (
	I2C Type = iota
	SPI4Wire
	SPI3Wire
	I3C
)

func (t Type) String() string {
	switch t {
	case I2C:
		return "i2c"
	case SPI4Wire:
		return "spi4"
	case SPI3Wire:
		return "spi3"
	case I3C:
		return "i3c"
	}
	return fmt.Sprintf("bus(%d)", uint8(t))
}

// ParseType maps a config value ("i2c", "spi4", "spi3", "i3c") to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "i2c":
		return I2C, nil
	case "spi", "spi4":
		return SPI4Wire, nil
	case "spi3":
		return SPI3Wire, nil
	case "i3c":
		return I3C, nil
	}
	return 0, fmt.Errorf("unknown bus type %q", s)
}

// Transport is a synchronous register read/write capability.
// Implementations are single-owner; callers serialize access.
type Transport interface {
	ReadReg(reg byte, buf []byte) error
	WriteReg(reg byte, data []byte) error
}

// DelayFunc blocks for the given number of milliseconds.
type DelayFunc func(ms uint32)

// Sleep is the production DelayFunc.
func Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

var (
	ErrEmptyBuffer = errors.New("empty register buffer")
	ErrUnsupported = errors.New("bus type not supported on this host")
)
