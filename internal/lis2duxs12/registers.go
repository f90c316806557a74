// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lis2duxs12

// I2C addresses (7-bit) for SA0 low and high, and the WHO_AM_I value.
const (
	I2CAddrLow  = 0x18
	I2CAddrHigh = 0x19
	DeviceID    = 0x47
)

// Main bank register addresses.
const (
	RegPinCtrl         = 0x0C
	RegWakeUpDurExt    = 0x0E
	RegWhoAmI          = 0x0F
	RegCtrl1           = 0x10
	RegCtrl2           = 0x11
	RegCtrl3           = 0x12
	RegCtrl4           = 0x13
	RegCtrl5           = 0x14
	RegFIFOCtrl        = 0x15
	RegFIFOWtm         = 0x16
	RegInterruptCfg    = 0x17
	RegSixD            = 0x18
	RegWakeUpThs       = 0x1C
	RegWakeUpDur       = 0x1D
	RegFreeFall        = 0x1E
	RegMD1Cfg          = 0x1F
	RegMD2Cfg          = 0x20
	RegWakeUpSrc       = 0x21
	RegTapSrc          = 0x22
	RegSixDSrc         = 0x23
	RegAllIntSrc       = 0x24
	RegStatus          = 0x25
	RegFIFOStatus1     = 0x26
	RegFIFOStatus2     = 0x27
	RegOutXL           = 0x28
	RegOutXH           = 0x29
	RegOutYL           = 0x2A
	RegOutYH           = 0x2B
	RegOutZL           = 0x2C
	RegOutZH           = 0x2D
	RegOutTAhQvarL     = 0x2E
	RegOutTAhQvarH     = 0x2F
	RegAhQvarCfg       = 0x31
	RegSelfTest        = 0x32
	RegI3CIfCtrl       = 0x33
	RegEmbFuncStatusMP = 0x34
	RegFSMStatusMP     = 0x35
	RegMLCStatusMP     = 0x36
	RegSleep           = 0x3D
	RegIfWakeUp        = 0x3E
	RegFuncCfgAccess   = 0x3F
	RegFIFODataOutTag  = 0x40
	RegFIFODataOutXL   = 0x41
	RegFIFOBatchDec    = 0x47
	RegTapCfg0         = 0x6F
	RegTapCfg6         = 0x75
	RegTimestamp0      = 0x7A
	RegTimestamp3      = 0x7D
)

// Embedded functions bank register addresses (valid while
// FUNC_CFG_ACCESS.emb_func_reg_access is set).
const (
	RegPageSel       = 0x02
	RegEmbFuncEnA    = 0x04
	RegEmbFuncEnB    = 0x05
	RegEmbFuncInt1   = 0x0A
	RegEmbFuncInt2   = 0x0E
	RegEmbFuncStatus = 0x12
	RegEmbFuncFIFOEn = 0x18
	RegStepCounterL  = 0x28
	RegStepCounterH  = 0x29
	RegEmbFuncSrc    = 0x2A
	RegEmbFuncInitA  = 0x2C
)

func bit(b byte, pos uint) bool { return b&(1<<pos) != 0 }

func flag(on bool, pos uint) byte {
	if on {
		return 1 << pos
	}
	return 0
}

func field(b byte, pos, width uint) byte {
	return (b >> pos) & (1<<width - 1)
}

func putField(v byte, pos, width uint) byte {
	return (v & (1<<width - 1)) << pos
}

// PinCtrl is PIN_CTRL (0x0C).
type PinCtrl struct {
	SIM       bool // SPI 3-wire
	PPOD      bool // open drain on INT pins
	CSPuDis   bool
	HLActive  bool
	PdDisInt1 bool
	PdDisInt2 bool
	SDAPuEn   bool
	SDOPuEn   bool
}

func unpackPinCtrl(b byte) PinCtrl {
	return PinCtrl{
		SIM: bit(b, 0), PPOD: bit(b, 1), CSPuDis: bit(b, 2), HLActive: bit(b, 3),
		PdDisInt1: bit(b, 4), PdDisInt2: bit(b, 5), SDAPuEn: bit(b, 6), SDOPuEn: bit(b, 7),
	}
}

func (r PinCtrl) pack() byte {
	return flag(r.SIM, 0) | flag(r.PPOD, 1) | flag(r.CSPuDis, 2) | flag(r.HLActive, 3) |
		flag(r.PdDisInt1, 4) | flag(r.PdDisInt2, 5) | flag(r.SDAPuEn, 6) | flag(r.SDOPuEn, 7)
}

// WakeUpDurExt is WAKE_UP_DUR_EXT (0x0E).
type WakeUpDurExt struct {
	WuDurExtended bool
	rsvd          byte
}

func unpackWakeUpDurExt(b byte) WakeUpDurExt {
	return WakeUpDurExt{WuDurExtended: bit(b, 4), rsvd: b &^ 0x10}
}

func (r WakeUpDurExt) pack() byte { return r.rsvd | flag(r.WuDurExtended, 4) }

// Ctrl1 is CTRL1 (0x10).
type Ctrl1 struct {
	WuZEn      bool
	WuYEn      bool
	WuXEn      bool
	DrdyPulsed bool
	IfAddInc   bool
	SwReset    bool
	Int1OnRes  bool
	rsvd       byte
}

func unpackCtrl1(b byte) Ctrl1 {
	return Ctrl1{
		WuZEn: bit(b, 0), WuYEn: bit(b, 1), WuXEn: bit(b, 2), DrdyPulsed: bit(b, 3),
		IfAddInc: bit(b, 4), SwReset: bit(b, 5), Int1OnRes: bit(b, 6),
		rsvd: b & 0x80,
	}
}

func (r Ctrl1) pack() byte {
	return r.rsvd | flag(r.WuZEn, 0) | flag(r.WuYEn, 1) | flag(r.WuXEn, 2) | flag(r.DrdyPulsed, 3) |
		flag(r.IfAddInc, 4) | flag(r.SwReset, 5) | flag(r.Int1OnRes, 6)
}

// Ctrl2 is CTRL2 (0x11): INT1 routing of data and FIFO signals.
type Ctrl2 struct {
	Int1Drdy     bool
	Int1FIFOOvr  bool
	Int1FIFOTh   bool
	Int1FIFOFull bool
	Int1Boot     bool
	rsvd         byte
}

func unpackCtrl2(b byte) Ctrl2 {
	return Ctrl2{
		Int1Drdy: bit(b, 3), Int1FIFOOvr: bit(b, 4), Int1FIFOTh: bit(b, 5),
		Int1FIFOFull: bit(b, 6), Int1Boot: bit(b, 7),
		rsvd: b & 0x07,
	}
}

func (r Ctrl2) pack() byte {
	return r.rsvd | flag(r.Int1Drdy, 3) | flag(r.Int1FIFOOvr, 4) | flag(r.Int1FIFOTh, 5) |
		flag(r.Int1FIFOFull, 6) | flag(r.Int1Boot, 7)
}

// Ctrl3 is CTRL3 (0x12): self-test sign, high-performance enable and INT2
// routing.
type Ctrl3 struct {
	STSignX      bool
	STSignY      bool
	HPEn         bool
	Int2Drdy     bool
	Int2FIFOOvr  bool
	Int2FIFOTh   bool
	Int2FIFOFull bool
	Int2Boot     bool
}

func unpackCtrl3(b byte) Ctrl3 {
	return Ctrl3{
		STSignX: bit(b, 0), STSignY: bit(b, 1), HPEn: bit(b, 2), Int2Drdy: bit(b, 3),
		Int2FIFOOvr: bit(b, 4), Int2FIFOTh: bit(b, 5), Int2FIFOFull: bit(b, 6), Int2Boot: bit(b, 7),
	}
}

func (r Ctrl3) pack() byte {
	return flag(r.STSignX, 0) | flag(r.STSignY, 1) | flag(r.HPEn, 2) | flag(r.Int2Drdy, 3) |
		flag(r.Int2FIFOOvr, 4) | flag(r.Int2FIFOTh, 5) | flag(r.Int2FIFOFull, 6) | flag(r.Int2Boot, 7)
}

// Ctrl4 is CTRL4 (0x13).
type Ctrl4 struct {
	Boot      bool
	SOC       bool
	FIFOEn    bool
	EmbFuncEn bool
	BDU       bool
	InactODR  byte // 2 bits
	rsvd      byte
}

func unpackCtrl4(b byte) Ctrl4 {
	return Ctrl4{
		Boot: bit(b, 0), SOC: bit(b, 1), FIFOEn: bit(b, 3), EmbFuncEn: bit(b, 4),
		BDU: bit(b, 5), InactODR: field(b, 6, 2),
		rsvd: b & 0x04,
	}
}

func (r Ctrl4) pack() byte {
	return r.rsvd | flag(r.Boot, 0) | flag(r.SOC, 1) | flag(r.FIFOEn, 3) | flag(r.EmbFuncEn, 4) |
		flag(r.BDU, 5) | putField(r.InactODR, 6, 2)
}

// Ctrl5 is CTRL5 (0x14): fs[1:0], bw[3:2], odr[7:4].
type Ctrl5 struct {
	FS  byte
	BW  byte
	ODR byte
}

func unpackCtrl5(b byte) Ctrl5 {
	return Ctrl5{FS: field(b, 0, 2), BW: field(b, 2, 2), ODR: field(b, 4, 4)}
}

func (r Ctrl5) pack() byte {
	return putField(r.FS, 0, 2) | putField(r.BW, 2, 2) | putField(r.ODR, 4, 4)
}

// FIFOCtrl is FIFO_CTRL (0x15).
type FIFOCtrl struct {
	FIFOMode  byte // 3 bits
	StopOnFth bool
	FIFODepth bool
	CfgChgEn  bool
	rsvd      byte
}

func unpackFIFOCtrl(b byte) FIFOCtrl {
	return FIFOCtrl{
		FIFOMode: field(b, 0, 3), StopOnFth: bit(b, 3), FIFODepth: bit(b, 6), CfgChgEn: bit(b, 7),
		rsvd: b & 0x30,
	}
}

func (r FIFOCtrl) pack() byte {
	return r.rsvd | putField(r.FIFOMode, 0, 3) | flag(r.StopOnFth, 3) | flag(r.FIFODepth, 6) | flag(r.CfgChgEn, 7)
}

// FIFOWtm is FIFO_WTM (0x16).
type FIFOWtm struct {
	Fth        byte // 7 bits
	XLOnlyFIFO bool
}

func unpackFIFOWtm(b byte) FIFOWtm {
	return FIFOWtm{Fth: field(b, 0, 7), XLOnlyFIFO: bit(b, 7)}
}

func (r FIFOWtm) pack() byte { return putField(r.Fth, 0, 7) | flag(r.XLOnlyFIFO, 7) }

// InterruptCfg is INTERRUPT_CFG (0x17).
type InterruptCfg struct {
	InterruptsEnable bool
	LIR              bool
	DisRstLIRAllInt  bool
	SleepStatusOnInt bool
	WakeThsW         bool
	TimestampEn      bool
	rsvd             byte
}

func unpackInterruptCfg(b byte) InterruptCfg {
	return InterruptCfg{
		InterruptsEnable: bit(b, 0), LIR: bit(b, 1), DisRstLIRAllInt: bit(b, 2),
		SleepStatusOnInt: bit(b, 3), WakeThsW: bit(b, 5), TimestampEn: bit(b, 7),
		rsvd: b & 0x50,
	}
}

func (r InterruptCfg) pack() byte {
	return r.rsvd | flag(r.InterruptsEnable, 0) | flag(r.LIR, 1) | flag(r.DisRstLIRAllInt, 2) |
		flag(r.SleepStatusOnInt, 3) | flag(r.WakeThsW, 5) | flag(r.TimestampEn, 7)
}

// SixD is SIXD (0x18).
type SixD struct {
	D6DThs byte // 2 bits
	D4DEn  bool
	rsvd   byte
}

func unpackSixD(b byte) SixD {
	return SixD{D6DThs: field(b, 5, 2), D4DEn: bit(b, 7), rsvd: b & 0x1F}
}

func (r SixD) pack() byte { return r.rsvd | putField(r.D6DThs, 5, 2) | flag(r.D4DEn, 7) }

// WakeUpThs is WAKE_UP_THS (0x1C).
type WakeUpThs struct {
	WkThs   byte // 6 bits
	SleepOn bool
	rsvd    byte
}

func unpackWakeUpThs(b byte) WakeUpThs {
	return WakeUpThs{WkThs: field(b, 0, 6), SleepOn: bit(b, 6), rsvd: b & 0x80}
}

func (r WakeUpThs) pack() byte { return r.rsvd | putField(r.WkThs, 0, 6) | flag(r.SleepOn, 6) }

// WakeUpDur is WAKE_UP_DUR (0x1D).
type WakeUpDur struct {
	SleepDur byte // 4 bits
	STSignZ  bool
	WakeDur  byte // 2 bits
	FFDur    bool // bit 5 of the 6-bit free-fall duration
}

func unpackWakeUpDur(b byte) WakeUpDur {
	return WakeUpDur{SleepDur: field(b, 0, 4), STSignZ: bit(b, 4), WakeDur: field(b, 5, 2), FFDur: bit(b, 7)}
}

func (r WakeUpDur) pack() byte {
	return putField(r.SleepDur, 0, 4) | flag(r.STSignZ, 4) | putField(r.WakeDur, 5, 2) | flag(r.FFDur, 7)
}

// FreeFall is FREE_FALL (0x1E).
type FreeFall struct {
	FFThs byte // 3 bits
	FFDur byte // low 5 bits of the free-fall duration
}

func unpackFreeFall(b byte) FreeFall {
	return FreeFall{FFThs: field(b, 0, 3), FFDur: field(b, 3, 5)}
}

func (r FreeFall) pack() byte { return putField(r.FFThs, 0, 3) | putField(r.FFDur, 3, 5) }

// MDCfg is the layout shared by MD1_CFG (0x1F) and MD2_CFG (0x20): event
// routing to INT1 or INT2.
type MDCfg struct {
	EmbFunc     bool
	Timestamp   bool
	SixD        bool
	Tap         bool
	FF          bool
	WU          bool
	SleepChange bool
	rsvd        byte
}

func unpackMDCfg(b byte) MDCfg {
	return MDCfg{
		EmbFunc: bit(b, 0), Timestamp: bit(b, 1), SixD: bit(b, 2), Tap: bit(b, 3),
		FF: bit(b, 4), WU: bit(b, 5), SleepChange: bit(b, 7),
		rsvd: b & 0x40,
	}
}

func (r MDCfg) pack() byte {
	return r.rsvd | flag(r.EmbFunc, 0) | flag(r.Timestamp, 1) | flag(r.SixD, 2) | flag(r.Tap, 3) |
		flag(r.FF, 4) | flag(r.WU, 5) | flag(r.SleepChange, 7)
}

// WakeUpSrc is WAKE_UP_SRC (0x21), read only.
type WakeUpSrc struct {
	ZWU           bool
	YWU           bool
	XWU           bool
	WUIA          bool
	SleepState    bool
	FFIA          bool
	SleepChangeIA bool
}

func unpackWakeUpSrc(b byte) WakeUpSrc {
	return WakeUpSrc{
		ZWU: bit(b, 0), YWU: bit(b, 1), XWU: bit(b, 2), WUIA: bit(b, 3),
		SleepState: bit(b, 4), FFIA: bit(b, 5), SleepChangeIA: bit(b, 6),
	}
}

// TapSrc is TAP_SRC (0x22), read only.
type TapSrc struct {
	TripleTapIA bool
	DoubleTapIA bool
	SingleTapIA bool
	TapIA       bool
}

func unpackTapSrc(b byte) TapSrc {
	return TapSrc{TripleTapIA: bit(b, 4), DoubleTapIA: bit(b, 5), SingleTapIA: bit(b, 6), TapIA: bit(b, 7)}
}

// SixDSrc is SIXD_SRC (0x23), read only.
type SixDSrc struct {
	XL, XH bool
	YL, YH bool
	ZL, ZH bool
	D6DIA  bool
}

func unpackSixDSrc(b byte) SixDSrc {
	return SixDSrc{
		XL: bit(b, 0), XH: bit(b, 1), YL: bit(b, 2), YH: bit(b, 3),
		ZL: bit(b, 4), ZH: bit(b, 5), D6DIA: bit(b, 6),
	}
}

// AllIntSrc is ALL_INT_SRC (0x24), read only.
type AllIntSrc struct {
	FFIAAll          bool
	WUIAAll          bool
	SingleTapAll     bool
	DoubleTapAll     bool
	TripleTapAll     bool
	D6DIAAll         bool
	SleepChangeIAAll bool
}

func unpackAllIntSrc(b byte) AllIntSrc {
	return AllIntSrc{
		FFIAAll: bit(b, 0), WUIAAll: bit(b, 1), SingleTapAll: bit(b, 2), DoubleTapAll: bit(b, 3),
		TripleTapAll: bit(b, 4), D6DIAAll: bit(b, 5), SleepChangeIAAll: bit(b, 6),
	}
}

// StatusReg is STATUS (0x25), read only.
type StatusReg struct {
	Drdy      bool
	IntGlobal bool
}

func unpackStatus(b byte) StatusReg {
	return StatusReg{Drdy: bit(b, 0), IntGlobal: bit(b, 5)}
}

// FIFOStatus1 is FIFO_STATUS1 (0x26), read only.
type FIFOStatus1 struct {
	FIFOOvrIA bool
	FIFOWtmIA bool
}

func unpackFIFOStatus1(b byte) FIFOStatus1 {
	return FIFOStatus1{FIFOOvrIA: bit(b, 6), FIFOWtmIA: bit(b, 7)}
}

// AhQvarCfg is AH_QVAR_CFG (0x31).
type AhQvarCfg struct {
	Gain        byte // 2 bits
	CZin        byte // 2 bits
	NotchCutoff bool
	NotchEn     bool
	En          bool
	rsvd        byte
}

func unpackAhQvarCfg(b byte) AhQvarCfg {
	return AhQvarCfg{
		Gain: field(b, 1, 2), CZin: field(b, 3, 2), NotchCutoff: bit(b, 5),
		NotchEn: bit(b, 6), En: bit(b, 7),
		rsvd: b & 0x01,
	}
}

func (r AhQvarCfg) pack() byte {
	return r.rsvd | putField(r.Gain, 1, 2) | putField(r.CZin, 3, 2) | flag(r.NotchCutoff, 5) |
		flag(r.NotchEn, 6) | flag(r.En, 7)
}

// SelfTestReg is SELF_TEST (0x32).
type SelfTestReg struct {
	ST   byte // 2 bits
	rsvd byte
}

func unpackSelfTest(b byte) SelfTestReg {
	return SelfTestReg{ST: field(b, 4, 2), rsvd: b &^ 0x30}
}

func (r SelfTestReg) pack() byte { return r.rsvd | putField(r.ST, 4, 2) }

// I3CIfCtrl is I3C_IF_CTRL (0x33).
type I3CIfCtrl struct {
	BusActSel  byte // 2 bits
	AsfOn      bool
	DisDrstdaa bool
	rsvd       byte
}

func unpackI3CIfCtrl(b byte) I3CIfCtrl {
	return I3CIfCtrl{BusActSel: field(b, 0, 2), AsfOn: bit(b, 5), DisDrstdaa: bit(b, 6), rsvd: b & 0x9C}
}

func (r I3CIfCtrl) pack() byte {
	return r.rsvd | putField(r.BusActSel, 0, 2) | flag(r.AsfOn, 5) | flag(r.DisDrstdaa, 6)
}

// FuncCfgAccess is FUNC_CFG_ACCESS (0x3F).
type FuncCfgAccess struct {
	FSMWrCtrlEn      bool
	EmbFuncRegAccess bool
	rsvd             byte
}

func unpackFuncCfgAccess(b byte) FuncCfgAccess {
	return FuncCfgAccess{FSMWrCtrlEn: bit(b, 0), EmbFuncRegAccess: bit(b, 7), rsvd: b & 0x7E}
}

func (r FuncCfgAccess) pack() byte {
	return r.rsvd | flag(r.FSMWrCtrlEn, 0) | flag(r.EmbFuncRegAccess, 7)
}

// FIFOBatchDec is FIFO_BATCH_DEC (0x47).
type FIFOBatchDec struct {
	BDRXL      byte // 3 bits
	DecTSBatch byte // 2 bits
	rsvd       byte
}

func unpackFIFOBatchDec(b byte) FIFOBatchDec {
	return FIFOBatchDec{BDRXL: field(b, 0, 3), DecTSBatch: field(b, 3, 2), rsvd: b & 0xE0}
}

func (r FIFOBatchDec) pack() byte {
	return r.rsvd | putField(r.BDRXL, 0, 3) | putField(r.DecTSBatch, 3, 2)
}

// EmbFuncEnA is EMB_FUNC_EN_A (embedded bank 0x04).
type EmbFuncEnA struct {
	PedoEn         bool
	TiltEn         bool
	SignMotionEn   bool
	MLCBeforeFSMEn bool
	rsvd           byte
}

func unpackEmbFuncEnA(b byte) EmbFuncEnA {
	return EmbFuncEnA{
		PedoEn: bit(b, 3), TiltEn: bit(b, 4), SignMotionEn: bit(b, 5), MLCBeforeFSMEn: bit(b, 7),
		rsvd: b & 0x47,
	}
}

func (r EmbFuncEnA) pack() byte {
	return r.rsvd | flag(r.PedoEn, 3) | flag(r.TiltEn, 4) | flag(r.SignMotionEn, 5) | flag(r.MLCBeforeFSMEn, 7)
}

// EmbFuncInt is the layout shared by EMB_FUNC_INT1 and EMB_FUNC_INT2.
type EmbFuncInt struct {
	StepDet bool
	Tilt    bool
	SigMot  bool
	FSMLC   bool
	rsvd    byte
}

func unpackEmbFuncInt(b byte) EmbFuncInt {
	return EmbFuncInt{StepDet: bit(b, 3), Tilt: bit(b, 4), SigMot: bit(b, 5), FSMLC: bit(b, 7), rsvd: b & 0x47}
}

func (r EmbFuncInt) pack() byte {
	return r.rsvd | flag(r.StepDet, 3) | flag(r.Tilt, 4) | flag(r.SigMot, 5) | flag(r.FSMLC, 7)
}

// EmbFuncStatus is EMB_FUNC_STATUS (embedded 0x12, mirrored at main 0x34).
type EmbFuncStatus struct {
	IsStepDet bool
	IsTilt    bool
	IsSigMot  bool
	IsFSMLC   bool
}

func unpackEmbFuncStatus(b byte) EmbFuncStatus {
	return EmbFuncStatus{IsStepDet: bit(b, 3), IsTilt: bit(b, 4), IsSigMot: bit(b, 5), IsFSMLC: bit(b, 7)}
}

// EmbFuncFIFOEn is EMB_FUNC_FIFO_EN (embedded 0x18).
type EmbFuncFIFOEn struct {
	StepCounterFIFOEn bool
	rsvd              byte
}

func unpackEmbFuncFIFOEn(b byte) EmbFuncFIFOEn {
	return EmbFuncFIFOEn{StepCounterFIFOEn: bit(b, 0), rsvd: b &^ 0x01}
}

func (r EmbFuncFIFOEn) pack() byte { return r.rsvd | flag(r.StepCounterFIFOEn, 0) }

// EmbFuncSrc is EMB_FUNC_SRC (embedded 0x2A).
type EmbFuncSrc struct {
	StepCounterBitSet bool
	StepOverflow      bool
	StepCountDeltaIA  bool
	StepDetected      bool
	PedoRstStep       bool
	rsvd              byte
}

func unpackEmbFuncSrc(b byte) EmbFuncSrc {
	return EmbFuncSrc{
		StepCounterBitSet: bit(b, 2), StepOverflow: bit(b, 3), StepCountDeltaIA: bit(b, 4),
		StepDetected: bit(b, 5), PedoRstStep: bit(b, 7),
		rsvd: b & 0x43,
	}
}

func (r EmbFuncSrc) pack() byte {
	return r.rsvd | flag(r.StepCounterBitSet, 2) | flag(r.StepOverflow, 3) | flag(r.StepCountDeltaIA, 4) |
		flag(r.StepDetected, 5) | flag(r.PedoRstStep, 7)
}
