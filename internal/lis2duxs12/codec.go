// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lis2duxs12 drives the ST LIS2DUXS12 three-axis accelerometer.
//
// Codec holds the register-level operations: every bit field is changed by
// read-modify-write over a bus.Transport and every operation stops at the
// first failed transfer. Device layers the enable/disable state machine,
// rate snapping and the event helpers on top of it.
package lis2duxs12

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/mems_sensors/internal/bus"
)

var (
	ErrTransport       = errors.New("lis2duxs12: transport error")
	ErrInvalidArgument = errors.New("lis2duxs12: invalid argument")
	ErrUnknownODR      = errors.New("lis2duxs12: unknown output data rate code")
	ErrNotInitialized  = errors.New("lis2duxs12: device not initialized")
	ErrWrongDeviceID   = errors.New("lis2duxs12: unexpected WHO_AM_I")
)

// Sensitivities in mg/LSB per full scale.
const (
	sens2g  = 0.061
	sens4g  = 0.122
	sens8g  = 0.244
	sens16g = 0.488
)

func FromFS2gToMg(lsb int16) float32  { return float32(lsb) * sens2g }
func FromFS4gToMg(lsb int16) float32  { return float32(lsb) * sens4g }
func FromFS8gToMg(lsb int16) float32  { return float32(lsb) * sens8g }
func FromFS16gToMg(lsb int16) float32 { return float32(lsb) * sens16g }

// FromLSBToCelsius converts an OUT_T sample.
func FromLSBToCelsius(lsb int16) float32 { return float32(lsb)/355.5 + 25.0 }

// FromLSBToMv converts an AH_QVAR sample.
func FromLSBToMv(lsb int16) float32 { return float32(lsb) / 74.4 }

// ConvertRawToMg scales a raw sample for the given full scale. An unknown
// full scale yields 0.
func ConvertRawToMg(raw int16, fs FullScale) float32 {
	switch fs {
	case FS2g:
		return FromFS2gToMg(raw)
	case FS4g:
		return FromFS4gToMg(raw)
	case FS8g:
		return FromFS8gToMg(raw)
	case FS16g:
		return FromFS16gToMg(raw)
	}
	return 0
}

// Sensitivity returns the mg/LSB constant for fs, or 0 for an unknown code.
func Sensitivity(fs FullScale) float32 {
	switch fs {
	case FS2g:
		return sens2g
	case FS4g:
		return sens4g
	case FS8g:
		return sens8g
	case FS16g:
		return sens16g
	}
	return 0
}

// Codec is the register-level interface to one LIS2DUXS12. It is not safe
// for concurrent use.
type Codec struct {
	t bus.Transport
}

func NewCodec(t bus.Transport) *Codec {
	return &Codec{t: t}
}

// ReadReg reads len(buf) consecutive registers starting at reg.
func (c *Codec) ReadReg(reg byte, buf []byte) error {
	if c.t == nil {
		return fmt.Errorf("%w: no transport bound", ErrTransport)
	}
	if err := c.t.ReadReg(reg, buf); err != nil {
		return fmt.Errorf("%w: read 0x%02X: %w", ErrTransport, reg, err)
	}
	return nil
}

// WriteReg writes data to consecutive registers starting at reg.
func (c *Codec) WriteReg(reg byte, data []byte) error {
	if c.t == nil {
		return fmt.Errorf("%w: no transport bound", ErrTransport)
	}
	if err := c.t.WriteReg(reg, data); err != nil {
		return fmt.Errorf("%w: write 0x%02X: %w", ErrTransport, reg, err)
	}
	return nil
}

func (c *Codec) readByte(reg byte) (byte, error) {
	var b [1]byte
	err := c.ReadReg(reg, b[:])
	return b[0], err
}

func (c *Codec) writeByte(reg, v byte) error {
	return c.WriteReg(reg, []byte{v})
}

// update is the read-modify-write primitive behind every field setter.
func (c *Codec) update(reg byte, fn func(byte) byte) error {
	b, err := c.readByte(reg)
	if err != nil {
		return err
	}
	return c.writeByte(reg, fn(b))
}

type packer interface{ pack() byte }

func load[R any](c *Codec, reg byte, unpack func(byte) R) (R, error) {
	b, err := c.readByte(reg)
	if err != nil {
		var zero R
		return zero, err
	}
	return unpack(b), nil
}

func modify[R packer](c *Codec, reg byte, unpack func(byte) R, fn func(*R)) error {
	return c.update(reg, func(b byte) byte {
		r := unpack(b)
		fn(&r)
		return r.pack()
	})
}

// DeviceID reads WHO_AM_I.
func (c *Codec) DeviceID() (uint8, error) {
	return c.readByte(RegWhoAmI)
}

// InitSet runs one of the boot, reset or sensor-on sequences.
func (c *Codec) InitSet(m InitMode) error {
	ctrl1, err := load(c, RegCtrl1, unpackCtrl1)
	if err != nil {
		return err
	}
	ctrl4, err := load(c, RegCtrl4, unpackCtrl4)
	if err != nil {
		return err
	}
	switch m {
	case InitBoot:
		ctrl4.Boot = true
		return c.writeByte(RegCtrl4, ctrl4.pack())
	case InitReset:
		ctrl1.SwReset = true
		return c.writeByte(RegCtrl1, ctrl1.pack())
	case InitSensorOnlyOn, InitSensorEmbFuncOn:
		ctrl4.EmbFuncEn = m == InitSensorEmbFuncOn
		ctrl4.BDU = true
		ctrl1.IfAddInc = true
		if err := c.writeByte(RegCtrl4, ctrl4.pack()); err != nil {
			return err
		}
		return c.writeByte(RegCtrl1, ctrl1.pack())
	}
	return fmt.Errorf("%w: init mode %d", ErrInvalidArgument, m)
}

// Status reports the reset, boot and data-ready flags.
func (c *Codec) Status() (Status, error) {
	st, err := load(c, RegStatus, unpackStatus)
	if err != nil {
		return Status{}, err
	}
	ctrl1, err := load(c, RegCtrl1, unpackCtrl1)
	if err != nil {
		return Status{}, err
	}
	ctrl4, err := load(c, RegCtrl4, unpackCtrl4)
	if err != nil {
		return Status{}, err
	}
	return Status{SwReset: ctrl1.SwReset, Boot: ctrl4.Boot, Drdy: st.Drdy}, nil
}

// EmbeddedStatus reads EMB_FUNC_STATUS from the embedded bank.
func (c *Codec) EmbeddedStatus() (EmbeddedStatus, error) {
	var out EmbeddedStatus
	err := c.withEmbeddedBank(func() error {
		s, err := load(c, RegEmbFuncStatus, unpackEmbFuncStatus)
		if err != nil {
			return err
		}
		out = EmbeddedStatus{StepDetected: s.IsStepDet, Tilt: s.IsTilt, SignificantMotion: s.IsSigMot}
		return nil
	})
	return out, err
}

func (c *Codec) DataReadyModeSet(m DataReadyMode) error {
	return modify(c, RegCtrl1, unpackCtrl1, func(r *Ctrl1) { r.DrdyPulsed = m == DataReadyPulsed })
}

func (c *Codec) DataReadyModeGet() (DataReadyMode, error) {
	r, err := load(c, RegCtrl1, unpackCtrl1)
	if err != nil {
		return 0, err
	}
	if r.DrdyPulsed {
		return DataReadyPulsed, nil
	}
	return DataReadyLatched, nil
}

// bandwidthCode maps a bandwidth request to the CTRL5.bw value. Rates
// without an anti-aliasing filter always get 0, and the slow low-power
// rates only accept the wider settings.
func bandwidthCode(odr ODR, bw Bandwidth) (byte, error) {
	if bw > BWDiv16 {
		return 0, fmt.Errorf("%w: bandwidth %d", ErrInvalidArgument, bw)
	}
	switch odr {
	case ODROff, ODR1Hz6ULP, ODR3HzULP, ODR25HzULP:
		return 0, nil
	case ODR6HzLP:
		if bw == BWDiv2 {
			return 3, nil
		}
	case ODR12Hz5LP:
		if bw <= BWDiv4 {
			return byte(bw) + 2, nil
		}
	case ODR25HzLP:
		if bw <= BWDiv8 {
			return byte(bw) + 1, nil
		}
	case ODR50HzLP, ODR100HzLP, ODR200HzLP, ODR400HzLP, ODR800HzLP,
		ODRTrigPin, ODRTrigSW,
		ODR6HzHP, ODR12Hz5HP, ODR25HzHP, ODR50HzHP,
		ODR100HzHP, ODR200HzHP, ODR400HzHP, ODR800HzHP:
		return byte(bw), nil
	default:
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownODR, uint8(odr))
	}
	return 0, fmt.Errorf("%w: bandwidth %d not available at %s", ErrInvalidArgument, bw, odr)
}

// bandwidthFromCode is the inverse of bandwidthCode for the rates whose
// field is offset.
func bandwidthFromCode(odr ODR, code byte) Bandwidth {
	switch odr {
	case ODR6HzLP:
		return BWDiv2
	case ODR12Hz5LP:
		if code >= 2 {
			return Bandwidth(code - 2)
		}
		return BWDiv2
	case ODR25HzLP:
		if code >= 1 {
			return Bandwidth(code - 1)
		}
		return BWDiv2
	}
	return Bandwidth(code)
}

// ModeSet writes ODR, full scale and bandwidth to CTRL5 and the
// high-performance flag to CTRL3.
func (c *Codec) ModeSet(m Mode) error {
	bw, err := bandwidthCode(m.ODR, m.BW)
	if err != nil {
		return err
	}
	ctrl5, err := load(c, RegCtrl5, unpackCtrl5)
	if err != nil {
		return err
	}
	ctrl3, err := load(c, RegCtrl3, unpackCtrl3)
	if err != nil {
		return err
	}
	ctrl5.ODR = byte(m.ODR) & 0x0F
	ctrl5.FS = byte(m.FS)
	ctrl5.BW = bw
	ctrl3.HPEn = m.ODR.HighPerformance()
	if err := c.writeByte(RegCtrl5, ctrl5.pack()); err != nil {
		return err
	}
	return c.writeByte(RegCtrl3, ctrl3.pack())
}

// ModeGet reads back the operating point. Codes the part does not define
// decode as ODROff.
func (c *Codec) ModeGet() (Mode, error) {
	ctrl5, err := load(c, RegCtrl5, unpackCtrl5)
	if err != nil {
		return Mode{}, err
	}
	ctrl3, err := load(c, RegCtrl3, unpackCtrl3)
	if err != nil {
		return Mode{}, err
	}
	var odr ODR
	switch n := ODR(ctrl5.ODR); {
	case n <= ODR6HzLP:
		odr = n
	case n <= ODR800HzLP:
		odr = n
		if ctrl3.HPEn {
			odr |= 0x10
		}
	case n == ODRTrigPin&0x0F:
		odr = ODRTrigPin
	case n == ODRTrigSW&0x0F:
		odr = ODRTrigSW
	default:
		odr = ODROff
	}
	return Mode{ODR: odr, FS: FullScale(ctrl5.FS), BW: bandwidthFromCode(odr, ctrl5.BW)}, nil
}

// EnterDeepPowerDown sets or clears SLEEP.deep_pd.
func (c *Codec) EnterDeepPowerDown(on bool) error {
	return c.update(RegSleep, func(b byte) byte { return b&^0x01 | flag(on, 0) })
}

// ExitDeepPowerDown writes IF_WAKE_UP with only soft_pd set.
func (c *Codec) ExitDeepPowerDown() error {
	return c.writeByte(RegIfWakeUp, 0x01)
}

// TriggerSW starts a one-shot conversion when m selects the software
// trigger; any other mode is a no-op.
func (c *Codec) TriggerSW(m Mode) error {
	if m.ODR != ODRTrigSW {
		return nil
	}
	return modify(c, RegCtrl4, unpackCtrl4, func(r *Ctrl4) { r.SOC = true })
}

// AllSources reads STATUS and, when the global interrupt flag is set, the
// wake-up, tap and 6D sources.
func (c *Codec) AllSources() (AllSources, error) {
	st, err := load(c, RegStatus, unpackStatus)
	if err != nil {
		return AllSources{}, err
	}
	out := AllSources{Drdy: st.Drdy}
	if !st.IntGlobal {
		return out, nil
	}
	six, err := load(c, RegSixDSrc, unpackSixDSrc)
	if err != nil {
		return AllSources{}, err
	}
	wu, err := load(c, RegWakeUpSrc, unpackWakeUpSrc)
	if err != nil {
		return AllSources{}, err
	}
	tap, err := load(c, RegTapSrc, unpackTapSrc)
	if err != nil {
		return AllSources{}, err
	}

	out.FreeFall = wu.FFIA
	out.WakeUp = wu.WUIA
	out.WakeUpZ, out.WakeUpY, out.WakeUpX = wu.ZWU, wu.YWU, wu.XWU
	out.SleepChange = wu.SleepChangeIA
	out.SleepState = wu.SleepState
	out.SingleTap = tap.SingleTapIA
	out.DoubleTap = tap.DoubleTapIA
	out.TripleTap = tap.TripleTapIA
	out.SixD = six.D6DIA
	out.SixDXL, out.SixDXH = six.XL, six.XH
	out.SixDYL, out.SixDYH = six.YL, six.YH
	out.SixDZL, out.SixDZH = six.ZL, six.ZH
	return out, nil
}

func le16(lo, hi byte) int16 { return int16(uint16(hi)<<8 | uint16(lo)) }

// XLData reads the three output axes and converts them with fs.
func (c *Codec) XLData(fs FullScale) (XLData, error) {
	var buf [6]byte
	if err := c.ReadReg(RegOutXL, buf[:]); err != nil {
		return XLData{}, err
	}
	var d XLData
	for i := 0; i < 3; i++ {
		d.Raw[i] = le16(buf[2*i], buf[2*i+1])
		d.MG[i] = ConvertRawToMg(d.Raw[i], fs)
	}
	return d, nil
}

// OutTData reads the die temperature channel.
func (c *Codec) OutTData() (HeatData, error) {
	var buf [2]byte
	if err := c.ReadReg(RegOutTAhQvarL, buf[:]); err != nil {
		return HeatData{}, err
	}
	raw := le16(buf[0], buf[1])
	return HeatData{Raw: raw, DegC: FromLSBToCelsius(raw)}, nil
}

// AhQvarData reads the same output pair as OutTData, scaled to mV.
func (c *Codec) AhQvarData() (AhQvarData, error) {
	var buf [2]byte
	if err := c.ReadReg(RegOutTAhQvarL, buf[:]); err != nil {
		return AhQvarData{}, err
	}
	raw := le16(buf[0], buf[1])
	return AhQvarData{Raw: raw, MV: FromLSBToMv(raw)}, nil
}

func (c *Codec) AhQvarModeSet(m AhQvarMode) error {
	if m.Gain > Gain4x || m.Zin > Zin75MOhm || m.Notch > Notch60Hz {
		return fmt.Errorf("%w: ah_qvar mode %+v", ErrInvalidArgument, m)
	}
	return modify(c, RegAhQvarCfg, unpackAhQvarCfg, func(r *AhQvarCfg) {
		r.Gain = byte(m.Gain)
		r.CZin = byte(m.Zin)
		r.NotchCutoff = m.Notch == Notch60Hz
		r.NotchEn = m.NotchEnable
		r.En = m.Enable
	})
}

func (c *Codec) AhQvarModeGet() (AhQvarMode, error) {
	r, err := load(c, RegAhQvarCfg, unpackAhQvarCfg)
	if err != nil {
		return AhQvarMode{}, err
	}
	m := AhQvarMode{
		Enable:      r.En,
		NotchEnable: r.NotchEn,
		Zin:         AhQvarZin(r.CZin),
		Gain:        AhQvarGain(r.Gain),
	}
	if r.NotchCutoff {
		m.Notch = Notch60Hz
	}
	return m, nil
}

// SelfTestSignSet programs the excitation direction. Positive drives X and
// Y, negative drives Z.
func (c *Codec) SelfTestSignSet(positive bool) error {
	ctrl3, err := load(c, RegCtrl3, unpackCtrl3)
	if err != nil {
		return err
	}
	dur, err := load(c, RegWakeUpDur, unpackWakeUpDur)
	if err != nil {
		return err
	}
	ctrl3.STSignX = positive
	ctrl3.STSignY = positive
	dur.STSignZ = !positive
	if err := c.writeByte(RegCtrl3, ctrl3.pack()); err != nil {
		return err
	}
	return c.writeByte(RegWakeUpDur, dur.pack())
}

// SelfTestStart writes SELF_TEST.st; step must be 1 or 2.
func (c *Codec) SelfTestStart(step uint8) error {
	if step != 1 && step != 2 {
		return fmt.Errorf("%w: self-test step %d", ErrInvalidArgument, step)
	}
	return modify(c, RegSelfTest, unpackSelfTest, func(r *SelfTestReg) { r.ST = step })
}

func (c *Codec) SelfTestStop() error {
	return modify(c, RegSelfTest, unpackSelfTest, func(r *SelfTestReg) { r.ST = 0 })
}

func (c *Codec) I3CConfigureSet(cfg I3CConfig) error {
	if cfg.BusActSel > I3CBusAvail25ms {
		return fmt.Errorf("%w: i3c bus available time %d", ErrInvalidArgument, cfg.BusActSel)
	}
	return modify(c, RegI3CIfCtrl, unpackI3CIfCtrl, func(r *I3CIfCtrl) {
		r.BusActSel = byte(cfg.BusActSel)
		r.DisDrstdaa = cfg.DrstdaaEn
		r.AsfOn = cfg.AsfOn
	})
}

func (c *Codec) I3CConfigureGet() (I3CConfig, error) {
	r, err := load(c, RegI3CIfCtrl, unpackI3CIfCtrl)
	if err != nil {
		return I3CConfig{}, err
	}
	return I3CConfig{BusActSel: I3CBusAvailTime(r.BusActSel), AsfOn: r.AsfOn, DrstdaaEn: r.DisDrstdaa}, nil
}

// MemBankSet selects the main or the embedded functions register page.
func (c *Codec) MemBankSet(b MemBank) error {
	if b > EmbedFuncMemBank {
		return fmt.Errorf("%w: memory bank %d", ErrInvalidArgument, b)
	}
	return modify(c, RegFuncCfgAccess, unpackFuncCfgAccess, func(r *FuncCfgAccess) {
		r.EmbFuncRegAccess = b == EmbedFuncMemBank
	})
}

func (c *Codec) MemBankGet() (MemBank, error) {
	r, err := load(c, RegFuncCfgAccess, unpackFuncCfgAccess)
	if err != nil {
		return 0, err
	}
	if r.EmbFuncRegAccess {
		return EmbedFuncMemBank, nil
	}
	return MainMemBank, nil
}

// withEmbeddedBank runs fn with the embedded page selected and always
// switches back to the main page. A failure to switch back is reported
// only when fn succeeded.
func (c *Codec) withEmbeddedBank(fn func() error) error {
	if err := c.MemBankSet(EmbedFuncMemBank); err != nil {
		return err
	}
	ferr := fn()
	rerr := c.MemBankSet(MainMemBank)
	if ferr != nil {
		return ferr
	}
	return rerr
}

// InterruptConfigSet programs INTERRUPT_CFG.
func (c *Codec) InterruptConfigSet(cfg InterruptConfig) error {
	if cfg.Mode > IntLatched {
		return fmt.Errorf("%w: interrupt mode %d", ErrInvalidArgument, cfg.Mode)
	}
	return modify(c, RegInterruptCfg, unpackInterruptCfg, func(r *InterruptCfg) {
		switch cfg.Mode {
		case IntDisabled:
			r.InterruptsEnable = false
		case IntLevel:
			r.InterruptsEnable = true
			r.LIR = false
		case IntLatched:
			r.InterruptsEnable = true
			r.LIR = true
		}
		r.DisRstLIRAllInt = cfg.DisRstLIRAllInt
		r.SleepStatusOnInt = cfg.SleepStatusOnInt
	})
}

func (c *Codec) InterruptConfigGet() (InterruptConfig, error) {
	r, err := load(c, RegInterruptCfg, unpackInterruptCfg)
	if err != nil {
		return InterruptConfig{}, err
	}
	cfg := InterruptConfig{DisRstLIRAllInt: r.DisRstLIRAllInt, SleepStatusOnInt: r.SleepStatusOnInt}
	switch {
	case !r.InterruptsEnable:
		cfg.Mode = IntDisabled
	case !r.LIR:
		cfg.Mode = IntLevel
	default:
		cfg.Mode = IntLatched
	}
	return cfg, nil
}

// PinInt1RouteSet routes signals to INT1 through CTRL1, CTRL2 and MD1_CFG.
func (c *Codec) PinInt1RouteSet(rt PinIntRoute) error {
	if err := modify(c, RegCtrl1, unpackCtrl1, func(r *Ctrl1) { r.Int1OnRes = rt.IntOnRes }); err != nil {
		return err
	}
	err := modify(c, RegCtrl2, unpackCtrl2, func(r *Ctrl2) {
		r.Int1Drdy = rt.Drdy
		r.Int1FIFOOvr = rt.FIFOOvr
		r.Int1FIFOTh = rt.FIFOTh
		r.Int1FIFOFull = rt.FIFOFull
		r.Int1Boot = rt.Boot
	})
	if err != nil {
		return err
	}
	return modify(c, RegMD1Cfg, unpackMDCfg, func(r *MDCfg) { rt.applyMD(r) })
}

func (c *Codec) PinInt1RouteGet() (PinIntRoute, error) {
	ctrl1, err := load(c, RegCtrl1, unpackCtrl1)
	if err != nil {
		return PinIntRoute{}, err
	}
	ctrl2, err := load(c, RegCtrl2, unpackCtrl2)
	if err != nil {
		return PinIntRoute{}, err
	}
	md, err := load(c, RegMD1Cfg, unpackMDCfg)
	if err != nil {
		return PinIntRoute{}, err
	}
	rt := routeFromMD(md)
	rt.IntOnRes = ctrl1.Int1OnRes
	rt.Drdy = ctrl2.Int1Drdy
	rt.FIFOOvr = ctrl2.Int1FIFOOvr
	rt.FIFOTh = ctrl2.Int1FIFOTh
	rt.FIFOFull = ctrl2.Int1FIFOFull
	rt.Boot = ctrl2.Int1Boot
	return rt, nil
}

// PinInt2RouteSet routes signals to INT2 through CTRL3 and MD2_CFG.
// IntOnRes is ignored.
func (c *Codec) PinInt2RouteSet(rt PinIntRoute) error {
	err := modify(c, RegCtrl3, unpackCtrl3, func(r *Ctrl3) {
		r.Int2Drdy = rt.Drdy
		r.Int2FIFOOvr = rt.FIFOOvr
		r.Int2FIFOTh = rt.FIFOTh
		r.Int2FIFOFull = rt.FIFOFull
		r.Int2Boot = rt.Boot
	})
	if err != nil {
		return err
	}
	return modify(c, RegMD2Cfg, unpackMDCfg, func(r *MDCfg) { rt.applyMD(r) })
}

func (c *Codec) PinInt2RouteGet() (PinIntRoute, error) {
	ctrl3, err := load(c, RegCtrl3, unpackCtrl3)
	if err != nil {
		return PinIntRoute{}, err
	}
	md, err := load(c, RegMD2Cfg, unpackMDCfg)
	if err != nil {
		return PinIntRoute{}, err
	}
	rt := routeFromMD(md)
	rt.Drdy = ctrl3.Int2Drdy
	rt.FIFOOvr = ctrl3.Int2FIFOOvr
	rt.FIFOTh = ctrl3.Int2FIFOTh
	rt.FIFOFull = ctrl3.Int2FIFOFull
	rt.Boot = ctrl3.Int2Boot
	return rt, nil
}

func (rt PinIntRoute) applyMD(r *MDCfg) {
	r.FF = rt.FreeFall
	r.SixD = rt.SixD
	r.Tap = rt.Tap
	r.WU = rt.WakeUp
	r.SleepChange = rt.SleepChange
	r.EmbFunc = rt.EmbFunction
	r.Timestamp = rt.Timestamp
}

func routeFromMD(r MDCfg) PinIntRoute {
	return PinIntRoute{
		FreeFall:    r.FF,
		SixD:        r.SixD,
		Tap:         r.Tap,
		WakeUp:      r.WU,
		SleepChange: r.SleepChange,
		EmbFunction: r.EmbFunc,
		Timestamp:   r.Timestamp,
	}
}

// TimestampSet enables the internal timestamp counter.
func (c *Codec) TimestampSet(on bool) error {
	return modify(c, RegInterruptCfg, unpackInterruptCfg, func(r *InterruptCfg) { r.TimestampEn = on })
}

// TimestampRaw reads the 32-bit timestamp counter.
func (c *Codec) TimestampRaw() (uint32, error) {
	var buf [4]byte
	if err := c.ReadReg(RegTimestamp0, buf[:]); err != nil {
		return 0, err
	}
	return le32(buf[:]), nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
