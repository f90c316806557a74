package bus

import "fmt"

// A SMBusDevice is typically a *sysfs.I2cDevice (gobot.io/x/gobot/sysfs).
type SMBusDevice interface {
	SetAddress(address int) error
	ReadByteData(reg uint8) (val uint8, err error)
	WriteByteData(reg, val uint8) error
}

// SMBus accesses registers one byte at a time. Multi-byte transfers walk
// consecutive addresses, which matches what the sensor does with address
// auto-increment enabled.
type SMBus struct {
	dev  SMBusDevice
	addr int
}

func NewSMBus(dev SMBusDevice, addr int) *SMBus {
	return &SMBus{dev: dev, addr: addr}
}

func (t *SMBus) ReadReg(reg byte, buf []byte) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}
	if err := t.dev.SetAddress(t.addr); err != nil {
		return fmt.Errorf("set device address: %w", err)
	}
	for i := range buf {
		val, err := t.dev.ReadByteData(reg + byte(i))
		if err != nil {
			return fmt.Errorf("read byte register 0x%02X: %w", reg+byte(i), err)
		}
		buf[i] = val
	}
	return nil
}

func (t *SMBus) WriteReg(reg byte, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyBuffer
	}
	if err := t.dev.SetAddress(t.addr); err != nil {
		return fmt.Errorf("set device address: %w", err)
	}
	for i, val := range data {
		if err := t.dev.WriteByteData(reg+byte(i), val); err != nil {
			return fmt.Errorf("write byte register 0x%02X: %w", reg+byte(i), err)
		}
	}
	return nil
}
