// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// spiReadFlag is set on the address byte of an SPI read transaction.
const spiReadFlag = 0x80

// PeriphI2C talks to a device through a periph I2C bus.
type PeriphI2C struct {
	dev i2c.Dev
}

// NewPeriphI2C binds a transport to the 7-bit address addr on b.
func NewPeriphI2C(b i2c.Bus, addr uint16) *PeriphI2C {
	return &PeriphI2C{dev: i2c.Dev{Addr: addr, Bus: b}}
}

func (t *PeriphI2C) String() string {
	return fmt.Sprintf("i2c@0x%02X", t.dev.Addr)
}

// ReadReg writes the register address then reads len(buf) bytes in one
// transaction.
func (t *PeriphI2C) ReadReg(reg byte, buf []byte) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}
	if err := t.dev.Tx([]byte{reg}, buf); err != nil {
		return fmt.Errorf("%s read 0x%02X: %w", t, reg, err)
	}
	return nil
}

// WriteReg writes the register address followed by data.
func (t *PeriphI2C) WriteReg(reg byte, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyBuffer
	}
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg)
	w = append(w, data...)
	if err := t.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("%s write 0x%02X: %w", t, reg, err)
	}
	return nil
}

// PeriphSPI talks to a device through a periph SPI connection.
// Half-duplex connections (3-wire) write the address and then clock in the
// reply; full-duplex ones drop the byte received while the address went out.
type PeriphSPI struct {
	c spi.Conn
}

func NewPeriphSPI(c spi.Conn) *PeriphSPI {
	return &PeriphSPI{c: c}
}

func (t *PeriphSPI) String() string {
	return "spi:" + t.c.String()
}

func (t *PeriphSPI) ReadReg(reg byte, buf []byte) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}
	if t.c.Duplex() == conn.Half {
		if err := t.c.Tx([]byte{reg | spiReadFlag}, buf); err != nil {
			return fmt.Errorf("%s read 0x%02X: %w", t, reg, err)
		}
		return nil
	}
	w := make([]byte, len(buf)+1)
	w[0] = reg | spiReadFlag
	r := make([]byte, len(w))
	if err := t.c.Tx(w, r); err != nil {
		return fmt.Errorf("%s read 0x%02X: %w", t, reg, err)
	}
	copy(buf, r[1:])
	return nil
}

func (t *PeriphSPI) WriteReg(reg byte, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyBuffer
	}
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg&^spiReadFlag)
	w = append(w, data...)
	var r []byte
	if t.c.Duplex() != conn.Half {
		r = make([]byte, len(w))
	}
	if err := t.c.Tx(w, r); err != nil {
		return fmt.Errorf("%s write 0x%02X: %w", t, reg, err)
	}
	return nil
}
