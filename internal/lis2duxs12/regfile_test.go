package lis2duxs12

import (
	"errors"
	"math"
	"testing"

	"github.com/relabs-tech/mems_sensors/internal/bus"
)

var errBus = errors.New("nack")

type access struct {
	reg   byte
	val   byte
	write bool
	emb   bool
}

// regFile emulates the two register pages with address auto-increment.
// FUNC_CFG_ACCESS is visible from both pages.
type regFile struct {
	main      [256]byte
	emb       [256]byte
	log       []access
	failRead  map[byte]bool
	failWrite map[byte]bool
	// fifo holds tag bytes popped from FIFO_DATA_OUT_TAG on each read.
	fifo [][7]byte
}

func newRegFile() *regFile {
	f := &regFile{failRead: map[byte]bool{}, failWrite: map[byte]bool{}}
	f.main[RegWhoAmI] = DeviceID
	return f
}

func (f *regFile) embSelected() bool { return f.main[RegFuncCfgAccess]&0x80 != 0 }

func (f *regFile) page(reg byte) (*[256]byte, bool) {
	if reg != RegFuncCfgAccess && f.embSelected() {
		return &f.emb, true
	}
	return &f.main, false
}

func (f *regFile) ReadReg(reg byte, buf []byte) error {
	if f.failRead[reg] {
		return errBus
	}
	if reg == RegFIFODataOutTag && !f.embSelected() && len(f.fifo) > 0 {
		slot := f.fifo[0]
		f.fifo = f.fifo[1:]
		copy(f.main[RegFIFODataOutTag:], slot[:])
	}
	for i := range buf {
		r := reg + byte(i)
		p, emb := f.page(r)
		buf[i] = p[r]
		f.log = append(f.log, access{reg: r, val: buf[i], emb: emb})
	}
	return nil
}

func (f *regFile) WriteReg(reg byte, data []byte) error {
	if f.failWrite[reg] {
		return errBus
	}
	for i, v := range data {
		r := reg + byte(i)
		p, emb := f.page(r)
		p[r] = v
		f.log = append(f.log, access{reg: r, val: v, write: true, emb: emb})
	}
	return nil
}

// writes returns the main-page registers written, in order.
func (f *regFile) writes() []byte {
	var out []byte
	for _, a := range f.log {
		if a.write && !a.emb {
			out = append(out, a.reg)
		}
	}
	return out
}

func (f *regFile) reads() []byte {
	var out []byte
	for _, a := range f.log {
		if !a.write && !a.emb {
			out = append(out, a.reg)
		}
	}
	return out
}

func (f *regFile) reset() { f.log = nil }

func sameBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

// newTestDevice returns an initialized device over a fresh register file and
// records the delays it requests.
func newTestDevice(t *testing.T) (*Device, *regFile, *[]uint32) {
	t.Helper()
	f := newRegFile()
	var delays []uint32
	d := New()
	if err := d.RegisterBusIO(f, bus.I2C, func(ms uint32) { delays = append(delays, ms) }); err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	f.reset()
	return d, f, &delays
}
