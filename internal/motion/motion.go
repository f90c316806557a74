// Package motion defines the sensor-independent view of a motion sensor:
// the capability interface every part driver implements and the sample
// types the apps publish.
package motion

import (
	"fmt"
	"time"
)

// Function is a sensing function of a component; instances may combine them.
type Function uint8

const (
	Gyro Function = 1 << iota
	Accelero
	Magneto
)

func (f Function) String() string {
	switch f {
	case Gyro:
		return "gyro"
	case Accelero:
		return "accelero"
	case Magneto:
		return "magneto"
	}
	return fmt.Sprintf("functions(0x%X)", uint8(f))
}

// Axes is a three-axis reading in engineering units (mg, mdps or mgauss).
type Axes struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// AxesRaw is a three-axis reading in raw LSB.
type AxesRaw struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	Z int16 `json:"z"`
}

// Capabilities are the static limits of a part.
type Capabilities struct {
	Acc        bool    `json:"acc"`
	Gyro       bool    `json:"gyro"`
	Magneto    bool    `json:"magneto"`
	LowPower   bool    `json:"low_power"`
	GyroMaxFS  int32   `json:"gyro_max_fs"`
	AccMaxFS   int32   `json:"acc_max_fs"`
	MagMaxFS   int32   `json:"mag_max_fs"`
	GyroMaxOdr float32 `json:"gyro_max_odr"`
	AccMaxOdr  float32 `json:"acc_max_odr"`
	MagMaxOdr  float32 `json:"mag_max_odr"`
}

// Functions returns the function mask matching the capability flags.
func (c Capabilities) Functions() Function {
	var f Function
	if c.Gyro {
		f |= Gyro
	}
	if c.Acc {
		f |= Accelero
	}
	if c.Magneto {
		f |= Magneto
	}
	return f
}

// IntPin selects the interrupt pad an event is routed to.
type IntPin uint8

const (
	Int1Pin IntPin = iota
	Int2Pin
)

func (p IntPin) String() string {
	switch p {
	case Int1Pin:
		return "INT1"
	case Int2Pin:
		return "INT2"
	}
	return fmt.Sprintf("INT?(%d)", uint8(p))
}

// ParseIntPin accepts 1 or 2.
func ParseIntPin(n int) (IntPin, error) {
	switch n {
	case 1:
		return Int1Pin, nil
	case 2:
		return Int2Pin, nil
	}
	return 0, fmt.Errorf("interrupt pin must be 1 or 2, got %d", n)
}

// SelfTestMode is the self-test excitation applied to the proof mass.
type SelfTestMode uint8

const (
	SelfTestDisable SelfTestMode = iota
	SelfTestPositive
	SelfTestNegative
)

// EventStatus reports events that are both routed to an interrupt pin and
// flagged by the part.
type EventStatus struct {
	WakeUp         bool `json:"wake_up"`
	D6DOrientation bool `json:"d6d_orientation"`
	FreeFall       bool `json:"free_fall"`
	Sleep          bool `json:"sleep"`
}

// Any reports whether at least one event is active.
func (e EventStatus) Any() bool {
	return e.WakeUp || e.D6DOrientation || e.FreeFall || e.Sleep
}

// SixDOrientation is the per-axis high/low threshold state of the 6D
// detector.
type SixDOrientation struct {
	XL bool `json:"xl"`
	XH bool `json:"xh"`
	YL bool `json:"yl"`
	YH bool `json:"yh"`
	ZL bool `json:"zl"`
	ZH bool `json:"zh"`
}

// Sample is a single published acceleration reading.
type Sample struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	Acc       Axes    `json:"acc_mg"`
	Raw       AxesRaw `json:"raw"`
	ODR       float32 `json:"odr_hz"`
	FullScale int32   `json:"fs_g"`
}

// Sensor is the capability set shared by every motion part driver.
// Implementations are not safe for concurrent use.
type Sensor interface {
	Init() error
	DeInit() error
	ReadID() (uint8, error)
	GetCapabilities() Capabilities

	Enable() error
	Disable() error
	GetAxes() (Axes, error)
	GetAxesRaw() (AxesRaw, error)
	GetSensitivity() (float32, error)
	GetOutputDataRate() (float32, error)
	SetOutputDataRate(hz float32) error
	GetFullScale() (int32, error)
	SetFullScale(g int32) error

	ReadReg(reg uint8) (uint8, error)
	WriteReg(reg, val uint8) error
	GetDRDYStatus() (bool, error)
}

// EventDetector is implemented by parts with embedded motion event logic.
type EventDetector interface {
	GetEventStatus() (EventStatus, error)

	EnableWakeUpDetection(pin IntPin) error
	DisableWakeUpDetection() error
	SetWakeUpThreshold(mg uint32) error
	SetWakeUpDuration(d uint8) error

	Enable6DOrientation(pin IntPin) error
	Disable6DOrientation() error
	Set6DOrientationThreshold(code uint8) error
	Get6DOrientation() (SixDOrientation, error)

	EnableFreeFallDetection(pin IntPin) error
	DisableFreeFallDetection() error
}

// Thermometer is implemented by parts exposing a die temperature.
type Thermometer interface {
	GetTemperature() (float32, error)
}

// SelfTester is implemented by parts with an electrostatic self-test.
type SelfTester interface {
	SetSelfTest(mode SelfTestMode) error
}
