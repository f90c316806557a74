package lis2duxs12

import "fmt"

// FIFOTag identifies the payload of one FIFO slot.
type FIFOTag uint8

const (
	TagEmpty       FIFOTag = 0x00
	TagXLTemp      FIFOTag = 0x02
	TagXLOnly2X    FIFOTag = 0x03
	TagTimestamp   FIFOTag = 0x04
	TagStepCounter FIFOTag = 0x12
	TagMLCResult   FIFOTag = 0x1A
	TagMLCFilter   FIFOTag = 0x1B
	TagMLCFeature  FIFOTag = 0x1C
	TagFSMResult   FIFOTag = 0x1D
	TagXLOnly2X2nd FIFOTag = 0x1E
	TagXLAndQvar   FIFOTag = 0x1F
)

func (t FIFOTag) String() string {
	switch t {
	case TagEmpty:
		return "empty"
	case TagXLTemp:
		return "xl-temp"
	case TagXLOnly2X:
		return "xl-2x"
	case TagTimestamp:
		return "timestamp"
	case TagStepCounter:
		return "step-counter"
	case TagMLCResult, TagMLCFilter, TagMLCFeature:
		return "mlc"
	case TagFSMResult:
		return "fsm"
	case TagXLOnly2X2nd:
		return "xl-2x-2nd"
	case TagXLAndQvar:
		return "xl-qvar"
	}
	return fmt.Sprintf("tag(0x%02X)", uint8(t))
}

// FIFOOperation is FIFO_CTRL.fifo_mode, plus FIFOOff which clears
// CTRL4.fifo_en instead.
type FIFOOperation uint8

const (
	FIFOBypass         FIFOOperation = 0
	FIFOOnly           FIFOOperation = 1
	FIFOStreamToFIFO   FIFOOperation = 3
	FIFOBypassToStream FIFOOperation = 4
	FIFOStream         FIFOOperation = 6
	FIFOBypassToFIFO   FIFOOperation = 7
	FIFOOff            FIFOOperation = 8
)

// FIFOStore selects one or two samples per slot.
type FIFOStore uint8

const (
	FIFO1X FIFOStore = iota
	FIFO2X
)

// DecTS is the timestamp batching decimation.
type DecTS uint8

const (
	DecTSOff DecTS = iota
	DecTS1
	DecTS8
	DecTS32
)

// BDRXL is the accelerometer batch data rate relative to the ODR.
type BDRXL uint8

const (
	BDRXLODR BDRXL = iota
	BDRXLODRDiv2
	BDRXLODRDiv4
	BDRXLODRDiv8
	BDRXLODRDiv16
	BDRXLODRDiv32
	BDRXLODRDiv64
	BDRXLOff
)

type FIFOBatch struct {
	DecTS DecTS
	BDRXL BDRXL
}

// FIFOMode is the complete FIFO configuration.
type FIFOMode struct {
	Operation       FIFOOperation
	Store           FIFOStore
	XLOnly          bool
	Watermark       uint8 // 0..127, 0 leaves the current threshold
	CfgChangeInFIFO bool
	Batch           FIFOBatch
}

// CfgChange is the configuration snapshot carried by a timestamp slot.
type CfgChange struct {
	CfgChange  bool
	ODR        uint8
	BW         uint8
	LPHP       bool
	QvarEn     bool
	FS         uint8
	DecTS      uint8
	ODRXLBatch uint8
	Timestamp  uint32
}

type Pedo struct {
	Steps     uint16
	Timestamp uint32
}

// FIFOSample is one decoded FIFO slot. Only the fields matching Tag are
// meaningful.
type FIFOSample struct {
	Tag    FIFOTag
	XL     [2]XLData
	Heat   HeatData
	AhQvar AhQvarData
	CfgChg CfgChange
	Pedo   Pedo
}

// FIFOModeSet writes the FIFO configuration. Batching is only updated when
// timestamp decimation is on and the watermark only when non-zero.
func (c *Codec) FIFOModeSet(m FIFOMode) error {
	if m.Watermark > 0x7F {
		return fmt.Errorf("%w: fifo watermark %d", ErrInvalidArgument, m.Watermark)
	}
	if m.Store > FIFO2X || m.Batch.DecTS > DecTS32 || m.Batch.BDRXL > BDRXLOff {
		return fmt.Errorf("%w: fifo mode %+v", ErrInvalidArgument, m)
	}
	switch m.Operation {
	case FIFOBypass, FIFOOnly, FIFOStreamToFIFO, FIFOBypassToStream, FIFOStream, FIFOBypassToFIFO, FIFOOff:
	default:
		return fmt.Errorf("%w: fifo operation %d", ErrInvalidArgument, m.Operation)
	}

	ctrl4, err := load(c, RegCtrl4, unpackCtrl4)
	if err != nil {
		return err
	}
	fctrl, err := load(c, RegFIFOCtrl, unpackFIFOCtrl)
	if err != nil {
		return err
	}
	batch, err := load(c, RegFIFOBatchDec, unpackFIFOBatchDec)
	if err != nil {
		return err
	}
	wtm, err := load(c, RegFIFOWtm, unpackFIFOWtm)
	if err != nil {
		return err
	}

	if m.Operation != FIFOOff {
		ctrl4.FIFOEn = true
		fctrl.FIFOMode = byte(m.Operation) & 0x07
	} else {
		ctrl4.FIFOEn = false
	}
	fctrl.FIFODepth = m.Store == FIFO2X
	wtm.XLOnlyFIFO = m.XLOnly
	if m.Batch.DecTS != DecTSOff {
		batch.DecTSBatch = byte(m.Batch.DecTS)
		batch.BDRXL = byte(m.Batch.BDRXL)
	}
	fctrl.CfgChgEn = m.CfgChangeInFIFO
	if m.Watermark > 0 {
		fctrl.StopOnFth = true
		wtm.Fth = m.Watermark
	}

	for _, w := range []struct {
		reg byte
		v   byte
	}{
		{RegFIFOBatchDec, batch.pack()},
		{RegFIFOWtm, wtm.pack()},
		{RegFIFOCtrl, fctrl.pack()},
		{RegCtrl4, ctrl4.pack()},
	} {
		if err := c.writeByte(w.reg, w.v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) FIFOModeGet() (FIFOMode, error) {
	ctrl4, err := load(c, RegCtrl4, unpackCtrl4)
	if err != nil {
		return FIFOMode{}, err
	}
	fctrl, err := load(c, RegFIFOCtrl, unpackFIFOCtrl)
	if err != nil {
		return FIFOMode{}, err
	}
	batch, err := load(c, RegFIFOBatchDec, unpackFIFOBatchDec)
	if err != nil {
		return FIFOMode{}, err
	}
	wtm, err := load(c, RegFIFOWtm, unpackFIFOWtm)
	if err != nil {
		return FIFOMode{}, err
	}
	m := FIFOMode{
		Operation:       FIFOOff,
		XLOnly:          wtm.XLOnlyFIFO,
		Watermark:       wtm.Fth,
		CfgChangeInFIFO: fctrl.CfgChgEn,
		Batch:           FIFOBatch{DecTS: DecTS(batch.DecTSBatch), BDRXL: BDRXL(batch.BDRXL)},
	}
	if ctrl4.FIFOEn {
		m.Operation = FIFOOperation(fctrl.FIFOMode)
	}
	if fctrl.FIFODepth {
		m.Store = FIFO2X
	}
	return m, nil
}

// FIFODataLevel is the number of unread slots.
func (c *Codec) FIFODataLevel() (uint16, error) {
	b, err := c.readByte(RegFIFOStatus2)
	return uint16(b), err
}

func (c *Codec) FIFOWatermarkFlag() (bool, error) {
	r, err := load(c, RegFIFOStatus1, unpackFIFOStatus1)
	return r.FIFOWtmIA, err
}

func (c *Codec) FIFOSensorTag() (FIFOTag, error) {
	b, err := c.readByte(RegFIFODataOutTag)
	return FIFOTag(b >> 3), err
}

func (c *Codec) FIFOOutRaw() ([6]byte, error) {
	var raw [6]byte
	err := c.ReadReg(RegFIFODataOutXL, raw[:])
	return raw, err
}

// FIFOData pops one slot and decodes it with the full scale of md and the
// xl_only setting of fm.
func (c *Codec) FIFOData(md Mode, fm FIFOMode) (FIFOSample, error) {
	tag, err := c.FIFOSensorTag()
	if err != nil {
		return FIFOSample{}, err
	}
	var raw [6]byte
	if tag.hasPayload() {
		if raw, err = c.FIFOOutRaw(); err != nil {
			return FIFOSample{Tag: tag}, err
		}
	}
	return DecodeFIFOSample(tag, raw, fm.XLOnly, md.FS), nil
}

func (t FIFOTag) hasPayload() bool {
	switch t {
	case TagXLOnly2X, TagXLOnly2X2nd, TagXLTemp, TagXLAndQvar, TagTimestamp, TagStepCounter:
		return true
	}
	return false
}

// DecodeFIFOSample unpacks a slot. Empty and unknown tags decode to a zero
// sample carrying only the tag.
func DecodeFIFOSample(tag FIFOTag, raw [6]byte, xlOnly bool, fs FullScale) FIFOSample {
	s := FIFOSample{Tag: tag}
	r := func(i int) int32 { return int32(raw[i]) }

	switch tag {
	case TagXLOnly2X, TagXLOnly2X2nd:
		// two 8-bit triplets at ODR/2
		for i := 0; i < 3; i++ {
			s.XL[0].Raw[i] = int16(r(i) * 256)
			s.XL[1].Raw[i] = int16(r(3+i) * 256)
		}
	case TagXLTemp, TagXLAndQvar:
		if !xlOnly {
			// 12-bit axes plus a 12-bit temperature or QVAR channel
			s.XL[0].Raw[0] = int16((r(0) + r(1)*256) * 16)
			s.XL[0].Raw[1] = int16((r(1)/16 + r(2)*16) * 16)
			s.XL[0].Raw[2] = int16(r(3) + (r(4)*256)*16)
			heat := int16((r(4)/16 + r(5)*16) * 16)
			s.Heat.Raw = heat
			if tag == TagXLTemp {
				s.Heat.DegC = FromLSBToCelsius(heat)
			} else {
				s.AhQvar.Raw = heat
				s.AhQvar.MV = FromLSBToMv(heat)
			}
		} else {
			s.XL[0].Raw[0] = int16(r(0) + r(1)*256)
			s.XL[0].Raw[1] = int16(r(1) + r(3)*256)
			s.XL[0].Raw[2] = int16(r(2) + r(5)*256)
		}
	case TagTimestamp:
		s.CfgChg = CfgChange{
			CfgChange:  raw[0]>>7 != 0,
			ODR:        (raw[0] >> 3) & 0x0F,
			BW:         (raw[0] >> 1) & 0x03,
			LPHP:       raw[0]&0x01 != 0,
			QvarEn:     raw[1]>>7 != 0,
			FS:         (raw[1] >> 5) & 0x03,
			DecTS:      (raw[1] >> 3) & 0x03,
			ODRXLBatch: raw[1] & 0x07,
			Timestamp:  le32(raw[2:6]),
		}
	case TagStepCounter:
		s.Pedo = Pedo{
			Steps:     uint16(raw[1])<<8 | uint16(raw[0]),
			Timestamp: le32(raw[2:6]),
		}
	}

	for i := 0; i < 3; i++ {
		s.XL[0].MG[i] = ConvertRawToMg(s.XL[0].Raw[i], fs)
		s.XL[1].MG[i] = ConvertRawToMg(s.XL[1].Raw[i], fs)
	}
	return s
}
