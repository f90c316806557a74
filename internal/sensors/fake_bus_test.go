package sensors

import (
	"errors"

	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
)

var errNack = errors.New("nack")

// fakeBus is a LIS2DUXS12 register file with both banks and address
// auto-increment.
type fakeBus struct {
	main, emb [256]byte
	failRead  bool
	failWrite bool
	writes    map[byte]int
	reads     map[byte]int
	closed    bool
}

func newFakeBus() *fakeBus {
	f := &fakeBus{writes: map[byte]int{}, reads: map[byte]int{}}
	f.main[lis2duxs12.RegWhoAmI] = lis2duxs12.DeviceID
	f.main[lis2duxs12.RegStatus] = 0x01
	return f
}

func (f *fakeBus) page(reg byte) *[256]byte {
	if reg != lis2duxs12.RegFuncCfgAccess && f.main[lis2duxs12.RegFuncCfgAccess]&0x80 != 0 {
		return &f.emb
	}
	return &f.main
}

func (f *fakeBus) ReadReg(reg byte, buf []byte) error {
	if f.failRead {
		return errNack
	}
	for i := range buf {
		r := reg + byte(i)
		buf[i] = f.page(r)[r]
		f.reads[r]++
	}
	return nil
}

func (f *fakeBus) WriteReg(reg byte, data []byte) error {
	if f.failWrite {
		return errNack
	}
	for i, v := range data {
		r := reg + byte(i)
		p := f.page(r)
		p[r] = v
		if p == &f.main {
			f.writes[r]++
		}
	}
	return nil
}

func (f *fakeBus) Close() error {
	f.closed = true
	return nil
}

func noDelay(uint32) {}
