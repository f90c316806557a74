package bus

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		in  string
		out Type
		ok  bool
	}{
		{"i2c", I2C, true},
		{"SPI", SPI4Wire, true},
		{"spi4", SPI4Wire, true},
		{" spi3 ", SPI3Wire, true},
		{"i3c", I3C, true},
		{"uart", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseType(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseType(%q) error = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.out {
			t.Errorf("ParseType(%q) = %s, want %s", tc.in, got, tc.out)
		}
	}
}

func TestPeriphI2C(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x19, W: []byte{0x0F}, R: []byte{0x47}},
			{Addr: 0x19, W: []byte{0x14, 0x80}},
			{Addr: 0x19, W: []byte{0x28}, R: []byte{1, 2, 3, 4, 5, 6}},
		},
		DontPanic: true,
	}
	tr := NewPeriphI2C(pb, 0x19)

	id := make([]byte, 1)
	if err := tr.ReadReg(0x0F, id); err != nil {
		t.Fatal(err)
	}
	if id[0] != 0x47 {
		t.Errorf("id = 0x%02X", id[0])
	}
	if err := tr.WriteReg(0x14, []byte{0x80}); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 6)
	if err := tr.ReadReg(0x28, out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("out = %v", out)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}

func TestPeriphI2CEmptyBuffer(t *testing.T) {
	tr := NewPeriphI2C(&i2ctest.Playback{DontPanic: true}, 0x19)
	if err := tr.ReadReg(0x0F, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("ReadReg(nil) = %v", err)
	}
	if err := tr.WriteReg(0x0F, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("WriteReg(nil) = %v", err)
	}
}

// spiRecorder is a spi.Conn that echoes a fixed reply and records writes.
type spiRecorder struct {
	duplex conn.Duplex
	reply  []byte
	writes [][]byte
	reads  []int
	err    error
}

func (s *spiRecorder) String() string { return "spiRecorder" }
func (s *spiRecorder) Duplex() conn.Duplex { return s.duplex }
func (s *spiRecorder) Halt() error { return nil }
func (s *spiRecorder) TxPackets(p []spi.Packet) error {
	for _, pk := range p {
		if err := s.Tx(pk.W, pk.R); err != nil {
			return err
		}
	}
	return nil
}

func (s *spiRecorder) Tx(w, r []byte) error {
	if s.err != nil {
		return s.err
	}
	s.writes = append(s.writes, append([]byte(nil), w...))
	s.reads = append(s.reads, len(r))
	copy(r, s.reply)
	return nil
}

func TestPeriphSPIFullDuplex(t *testing.T) {
	rec := &spiRecorder{duplex: conn.Full, reply: []byte{0xFF, 0x11, 0x22}}
	tr := NewPeriphSPI(rec)

	buf := make([]byte, 2)
	if err := tr.ReadReg(0x28, buf); err != nil {
		t.Fatal(err)
	}
	if rec.writes[0][0] != 0xA8 || len(rec.writes[0]) != 3 {
		t.Errorf("read frame = %v", rec.writes[0])
	}
	if buf[0] != 0x11 || buf[1] != 0x22 {
		t.Errorf("buf = %v", buf)
	}

	if err := tr.WriteReg(0x94, []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rec.writes[1], []byte{0x14, 0x01}) {
		t.Errorf("write frame = %v", rec.writes[1])
	}
}

func TestPeriphSPIHalfDuplex(t *testing.T) {
	rec := &spiRecorder{duplex: conn.Half, reply: []byte{0x47}}
	tr := NewPeriphSPI(rec)

	buf := make([]byte, 1)
	if err := tr.ReadReg(0x0F, buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rec.writes[0], []byte{0x8F}) || rec.reads[0] != 1 {
		t.Errorf("half duplex read: w=%v r=%d", rec.writes[0], rec.reads[0])
	}
	if buf[0] != 0x47 {
		t.Errorf("buf = %v", buf)
	}
	if err := tr.WriteReg(0x10, []byte{0x50}); err != nil {
		t.Fatal(err)
	}
	if rec.reads[1] != 0 {
		t.Errorf("half duplex write asked for %d reply bytes", rec.reads[1])
	}
}

func TestPeriphSPIError(t *testing.T) {
	boom := errors.New("boom")
	tr := NewPeriphSPI(&spiRecorder{duplex: conn.Full, err: boom})
	if err := tr.ReadReg(0x0F, make([]byte, 1)); !errors.Is(err, boom) {
		t.Errorf("ReadReg error = %v, want wrapped boom", err)
	}
}

// fakeSMBus mimics the gobot sysfs device: a flat register file keyed by
// the selected address.
type fakeSMBus struct {
	addr int
	regs map[uint8]uint8
	fail uint8
}

func (f *fakeSMBus) SetAddress(a int) error { f.addr = a; return nil }

func (f *fakeSMBus) ReadByteData(reg uint8) (uint8, error) {
	if f.fail != 0 && reg == f.fail {
		return 0, errors.New("nack")
	}
	return f.regs[reg], nil
}

func (f *fakeSMBus) WriteByteData(reg, val uint8) error {
	f.regs[reg] = val
	return nil
}

func TestSMBus(t *testing.T) {
	dev := &fakeSMBus{regs: map[uint8]uint8{0x28: 0x10, 0x29: 0x20, 0x2A: 0x30}}
	tr := NewSMBus(dev, 0x19)

	buf := make([]byte, 3)
	if err := tr.ReadReg(0x28, buf); err != nil {
		t.Fatal(err)
	}
	if dev.addr != 0x19 {
		t.Errorf("address = 0x%02X", dev.addr)
	}
	if !bytes.Equal(buf, []byte{0x10, 0x20, 0x30}) {
		t.Errorf("buf = %v", buf)
	}

	if err := tr.WriteReg(0x10, []byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}
	if dev.regs[0x10] != 0xAA || dev.regs[0x11] != 0xBB {
		t.Errorf("regs = %v", dev.regs)
	}

	dev.fail = 0x29
	if err := tr.ReadReg(0x28, buf); err == nil {
		t.Error("expected error from failing register")
	}
}

func TestOpenRejectsI3C(t *testing.T) {
	if _, _, err := Open(Options{Type: I3C}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Open(i3c) = %v", err)
	}
	if _, _, err := Open(Options{Driver: DriverSysfs, Type: SPI4Wire}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Open(sysfs spi) = %v", err)
	}
}
