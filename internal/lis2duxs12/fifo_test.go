package lis2duxs12

import (
	"errors"
	"testing"
)

func TestDecodeFIFOSample(t *testing.T) {
	packed := [6]byte{0x10, 0x32, 0x54, 0x76, 0x98, 0xBA}

	t.Run("xl-2x", func(t *testing.T) {
		for _, tag := range []FIFOTag{TagXLOnly2X, TagXLOnly2X2nd} {
			s := DecodeFIFOSample(tag, [6]byte{1, 2, 3, 0xFF, 0x80, 0}, false, FS2g)
			if s.XL[0].Raw != [3]int16{256, 512, 768} {
				t.Errorf("%s first = %v", tag, s.XL[0].Raw)
			}
			if s.XL[1].Raw != [3]int16{-256, -32768, 0} {
				t.Errorf("%s second = %v", tag, s.XL[1].Raw)
			}
			if !approx(s.XL[0].MG[0], 256*0.061) {
				t.Errorf("%s mg = %v", tag, s.XL[0].MG)
			}
		}
	})

	t.Run("xl-temp", func(t *testing.T) {
		s := DecodeFIFOSample(TagXLTemp, packed, false, FS4g)
		if s.XL[0].Raw != [3]int16{8448, 21552, -32650} {
			t.Errorf("raw = %v", s.XL[0].Raw)
		}
		if s.Heat.Raw != -17776 || !approx(s.Heat.DegC, -17776/355.5+25) {
			t.Errorf("heat = %+v", s.Heat)
		}
		if s.AhQvar != (AhQvarData{}) {
			t.Errorf("qvar set on temperature slot: %+v", s.AhQvar)
		}
		if !approx(s.XL[0].MG[1], 21552*0.122) {
			t.Errorf("mg = %v", s.XL[0].MG)
		}
	})

	t.Run("xl-qvar", func(t *testing.T) {
		s := DecodeFIFOSample(TagXLAndQvar, packed, false, FS2g)
		if s.AhQvar.Raw != -17776 || !approx(s.AhQvar.MV, -17776/74.4) {
			t.Errorf("qvar = %+v", s.AhQvar)
		}
	})

	t.Run("xl-only", func(t *testing.T) {
		s := DecodeFIFOSample(TagXLTemp, packed, true, FS2g)
		if s.XL[0].Raw != [3]int16{12816, 30258, -17836} {
			t.Errorf("raw = %v", s.XL[0].Raw)
		}
		if s.Heat != (HeatData{}) {
			t.Errorf("heat set in xl-only mode: %+v", s.Heat)
		}
	})

	t.Run("timestamp", func(t *testing.T) {
		s := DecodeFIFOSample(TagTimestamp, [6]byte{0xC3, 0xCD, 0x78, 0x56, 0x34, 0x12}, false, FS2g)
		want := CfgChange{
			CfgChange: true, ODR: 8, BW: 1, LPHP: true,
			QvarEn: true, FS: 2, DecTS: 1, ODRXLBatch: 5,
			Timestamp: 0x12345678,
		}
		if s.CfgChg != want {
			t.Errorf("cfg = %+v, want %+v", s.CfgChg, want)
		}
	})

	t.Run("step-counter", func(t *testing.T) {
		s := DecodeFIFOSample(TagStepCounter, [6]byte{0x34, 0x12, 1, 0, 0, 0}, false, FS2g)
		if s.Pedo != (Pedo{Steps: 0x1234, Timestamp: 1}) {
			t.Errorf("pedo = %+v", s.Pedo)
		}
	})

	t.Run("no-payload", func(t *testing.T) {
		for _, tag := range []FIFOTag{TagEmpty, TagMLCResult, TagMLCFilter, TagMLCFeature, TagFSMResult, FIFOTag(0x11)} {
			s := DecodeFIFOSample(tag, packed, false, FS2g)
			if s != (FIFOSample{Tag: tag}) {
				t.Errorf("%s decoded to %+v", tag, s)
			}
		}
	})
}

func TestFIFOTagString(t *testing.T) {
	if TagXLTemp.String() != "xl-temp" {
		t.Errorf("TagXLTemp = %q", TagXLTemp.String())
	}
	if s := FIFOTag(0x11).String(); s != "tag(0x11)" {
		t.Errorf("unknown tag = %q", s)
	}
}

func TestFIFOModeSet(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	m := FIFOMode{
		Operation: FIFOStream,
		Store:     FIFO2X,
		Watermark: 32,
		Batch:     FIFOBatch{DecTS: DecTS8, BDRXL: BDRXLODRDiv2},
	}
	if err := c.FIFOModeSet(m); err != nil {
		t.Fatal(err)
	}
	if w := f.writes(); !sameBytes(w, []byte{RegFIFOBatchDec, RegFIFOWtm, RegFIFOCtrl, RegCtrl4}) {
		t.Errorf("write order % X", w)
	}
	checks := []struct {
		name string
		reg  byte
		want byte
	}{
		{"FIFO_BATCH_DEC", RegFIFOBatchDec, 0x11},
		{"FIFO_WTM", RegFIFOWtm, 0x20},
		{"FIFO_CTRL", RegFIFOCtrl, 0x4E},
		{"CTRL4", RegCtrl4, 0x08},
	}
	for _, ck := range checks {
		if f.main[ck.reg] != ck.want {
			t.Errorf("%s = 0x%02X, want 0x%02X", ck.name, f.main[ck.reg], ck.want)
		}
	}
	got, err := c.FIFOModeGet()
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("FIFOModeGet = %+v, want %+v", got, m)
	}

	if err := c.FIFOModeSet(FIFOMode{Operation: FIFOOff}); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl4]&0x08 != 0 {
		t.Error("fifo_en still set")
	}
	if got, _ := c.FIFOModeGet(); got.Operation != FIFOOff {
		t.Errorf("operation = %d, want off", got.Operation)
	}
}

func TestFIFOModeSetValidates(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	for _, m := range []FIFOMode{
		{Watermark: 200},
		{Operation: 2},
		{Operation: 5},
		{Store: 2},
		{Batch: FIFOBatch{BDRXL: 8}},
	} {
		if err := c.FIFOModeSet(m); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("FIFOModeSet(%+v) = %v", m, err)
		}
	}
	if len(f.log) != 0 {
		t.Error("rejected FIFOModeSet touched the bus")
	}
}

func fifoSlot(tag FIFOTag, payload ...byte) [7]byte {
	var s [7]byte
	s[0] = byte(tag) << 3
	copy(s[1:], payload)
	return s
}

func TestReadFIFO(t *testing.T) {
	d, f, _ := newTestDevice(t)
	f.main[RegFIFOStatus2] = 3
	f.fifo = [][7]byte{
		fifoSlot(TagXLOnly2X, 1, 0, 0, 2, 0, 0),
		fifoSlot(TagTimestamp, 0, 0, 0x10, 0, 0, 0),
		fifoSlot(TagEmpty),
	}
	got, err := d.ReadFIFO(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d samples, want 2", len(got))
	}
	if got[0].Tag != TagXLOnly2X || got[0].XL[1].Raw[0] != 512 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].CfgChg.Timestamp != 0x10 {
		t.Errorf("second = %+v", got[1])
	}

	f.main[RegFIFOStatus2] = 5
	f.fifo = [][7]byte{fifoSlot(TagStepCounter, 7), fifoSlot(TagStepCounter, 8)}
	got, err = d.ReadFIFO(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Pedo.Steps != 7 {
		t.Errorf("limited read = %+v", got)
	}
}
