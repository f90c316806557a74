package lis2duxs12

import "fmt"

// ODR is the output data rate code as stored by the driver. The low nibble
// goes to CTRL5.odr; 0x10 marks the high-performance variant (CTRL3.hp_en)
// and 0x20 the single-shot trigger modes.
type ODR uint8

const (
	ODROff     ODR = 0x00
	ODR1Hz6ULP ODR = 0x01
	ODR3HzULP  ODR = 0x02
	ODR25HzULP ODR = 0x03
	ODR6HzLP   ODR = 0x04
	ODR12Hz5LP ODR = 0x05
	ODR25HzLP  ODR = 0x06
	ODR50HzLP  ODR = 0x07
	ODR100HzLP ODR = 0x08
	ODR200HzLP ODR = 0x09
	ODR400HzLP ODR = 0x0A
	ODR800HzLP ODR = 0x0B
	ODR6HzHP   ODR = 0x14
	ODR12Hz5HP ODR = 0x15
	ODR25HzHP  ODR = 0x16
	ODR50HzHP  ODR = 0x17
	ODR100HzHP ODR = 0x18
	ODR200HzHP ODR = 0x19
	ODR400HzHP ODR = 0x1A
	ODR800HzHP ODR = 0x1B
	ODRTrigPin ODR = 0x2E // single shot on INT2
	ODRTrigSW  ODR = 0x2F // single shot on CTRL4.soc
)

var odrHz = map[ODR]float32{
	ODR1Hz6ULP: 1.6, ODR3HzULP: 3, ODR25HzULP: 25,
	ODR6HzLP: 6, ODR12Hz5LP: 12.5, ODR25HzLP: 25, ODR50HzLP: 50,
	ODR100HzLP: 100, ODR200HzLP: 200, ODR400HzLP: 400, ODR800HzLP: 800,
	ODR6HzHP: 6, ODR12Hz5HP: 12.5, ODR25HzHP: 25, ODR50HzHP: 50,
	ODR100HzHP: 100, ODR200HzHP: 200, ODR400HzHP: 400, ODR800HzHP: 800,
}

// Hz returns the nominal rate of an active sampling code. OFF and the
// trigger modes report false.
func (o ODR) Hz() (float32, bool) {
	hz, ok := odrHz[o]
	return hz, ok
}

// HighPerformance reports whether the code selects CTRL3.hp_en.
func (o ODR) HighPerformance() bool { return o&0x30 == 0x10 }

func (o ODR) String() string {
	switch o {
	case ODROff:
		return "off"
	case ODRTrigPin:
		return "trigger-pin"
	case ODRTrigSW:
		return "trigger-sw"
	}
	if hz, ok := o.Hz(); ok {
		switch {
		case o <= ODR25HzULP:
			return fmt.Sprintf("%gHz-ulp", hz)
		case o.HighPerformance():
			return fmt.Sprintf("%gHz-hp", hz)
		default:
			return fmt.Sprintf("%gHz-lp", hz)
		}
	}
	return fmt.Sprintf("odr(0x%02X)", uint8(o))
}

// FullScale is the CTRL5.fs code.
type FullScale uint8

const (
	FS2g FullScale = iota
	FS4g
	FS8g
	FS16g
)

// G returns the range in g, or 0 for an unknown code.
func (fs FullScale) G() int32 {
	switch fs {
	case FS2g:
		return 2
	case FS4g:
		return 4
	case FS8g:
		return 8
	case FS16g:
		return 16
	}
	return 0
}

// Bandwidth is the anti-aliasing filter setting as a fraction of the ODR.
type Bandwidth uint8

const (
	BWDiv2 Bandwidth = iota
	BWDiv4
	BWDiv8
	BWDiv16
)

// Mode is the operating point written to CTRL5 and CTRL3.
type Mode struct {
	ODR ODR
	FS  FullScale
	BW  Bandwidth
}

// PowerMode selects which rate table SetOutputDataRateWithMode snaps to.
type PowerMode uint8

const (
	UltraLowPower PowerMode = iota
	LowPower
	HighPerformance
)

func (p PowerMode) String() string {
	switch p {
	case UltraLowPower:
		return "ultra-low-power"
	case LowPower:
		return "low-power"
	case HighPerformance:
		return "high-performance"
	}
	return fmt.Sprintf("power(%d)", uint8(p))
}

// ParsePowerMode accepts "ulp", "lp", "hp" and the String forms.
func ParsePowerMode(s string) (PowerMode, error) {
	switch s {
	case "ulp", "ultra-low-power":
		return UltraLowPower, nil
	case "lp", "low-power":
		return LowPower, nil
	case "hp", "high-performance":
		return HighPerformance, nil
	}
	return 0, fmt.Errorf("%w: power mode %q", ErrInvalidArgument, s)
}

// InitMode selects the InitSet sequence.
type InitMode uint8

const (
	InitSensorOnlyOn InitMode = iota
	InitBoot
	InitReset
	InitSensorEmbFuncOn
)

// Status is the device state reported by Status.
type Status struct {
	SwReset bool
	Boot    bool
	Drdy    bool
}

// EmbeddedStatus reports embedded function events.
type EmbeddedStatus struct {
	StepDetected      bool
	Tilt              bool
	SignificantMotion bool
}

// DataReadyMode selects latched or pulsed DRDY signalling.
type DataReadyMode uint8

const (
	DataReadyLatched DataReadyMode = iota
	DataReadyPulsed
)

// MemBank selects the register page.
type MemBank uint8

const (
	MainMemBank MemBank = iota
	EmbedFuncMemBank
)

// I3CBusAvailTime is I3C_IF_CTRL.bus_act_sel.
type I3CBusAvailTime uint8

const (
	I3CBusAvail20us I3CBusAvailTime = iota
	I3CBusAvail50us
	I3CBusAvail1ms
	I3CBusAvail25ms
)

// I3CConfig is the I3C interface configuration.
type I3CConfig struct {
	BusActSel I3CBusAvailTime
	AsfOn     bool
	DrstdaaEn bool
}

// IntMode is the interrupt signalling mode.
type IntMode uint8

const (
	IntDisabled IntMode = iota
	IntLevel
	IntLatched
)

// InterruptConfig is the INTERRUPT_CFG view used by InterruptConfigSet.
type InterruptConfig struct {
	Mode             IntMode
	SleepStatusOnInt bool
	DisRstLIRAllInt  bool
}

// PinIntRoute lists the signals routed to one interrupt pin. IntOnRes only
// applies to INT1.
type PinIntRoute struct {
	IntOnRes    bool
	Drdy        bool
	Boot        bool
	FIFOTh      bool
	FIFOOvr     bool
	FIFOFull    bool
	FreeFall    bool
	SixD        bool
	Tap         bool
	WakeUp      bool
	SleepChange bool
	EmbFunction bool
	Timestamp   bool
}

// AllSources is the snapshot read by AllSources. Event fields are only
// populated when STATUS.int_global is set.
type AllSources struct {
	Drdy        bool
	FreeFall    bool
	WakeUp      bool
	WakeUpZ     bool
	WakeUpY     bool
	WakeUpX     bool
	SingleTap   bool
	DoubleTap   bool
	TripleTap   bool
	SixD        bool
	SixDXL      bool
	SixDXH      bool
	SixDYL      bool
	SixDYH      bool
	SixDZL      bool
	SixDZH      bool
	SleepChange bool
	SleepState  bool
}

// XLData is one acceleration sample.
type XLData struct {
	MG  [3]float32
	Raw [3]int16
}

// HeatData is a temperature sample.
type HeatData struct {
	DegC float32
	Raw  int16
}

// AhQvarData is an AH_QVAR sample.
type AhQvarData struct {
	MV  float32
	Raw int16
}

// AhQvarNotch is the notch filter cutoff.
type AhQvarNotch uint8

const (
	Notch50Hz AhQvarNotch = iota
	Notch60Hz
)

// AhQvarZin is the input impedance.
type AhQvarZin uint8

const (
	Zin520MOhm AhQvarZin = iota
	Zin175MOhm
	Zin310MOhm
	Zin75MOhm
)

// AhQvarGain is the AH_QVAR amplifier gain.
type AhQvarGain uint8

const (
	Gain0x5 AhQvarGain = iota
	Gain1x
	Gain2x
	Gain4x
)

// AhQvarMode configures the analog hub / QVAR channel.
type AhQvarMode struct {
	Enable      bool
	NotchEnable bool
	Notch       AhQvarNotch
	Zin         AhQvarZin
	Gain        AhQvarGain
}
