// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lis2duxs12

import (
	"errors"
	"fmt"

	"github.com/relabs-tech/mems_sensors/internal/bus"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// Rate tables the requested ODR snaps to: the smallest entry not below the
// request, clamped to the last entry.
var (
	ulpRates = []float32{1.6, 3, 25}
	lpRates  = []float32{6, 12.5, 25, 50, 100, 200, 400, 800}
)

const (
	deepPowerDownExitMs = 25
	odrStepDownMs       = 3
	stepDownAboveHz     = 400
)

// SnapODR returns the rate the part will actually run at for a request.
func SnapODR(hz float32, pm PowerMode) (float32, error) {
	_, snapped, err := odrFor(hz, pm)
	return snapped, err
}

func odrFor(hz float32, pm PowerMode) (ODR, float32, error) {
	var table []float32
	var first ODR
	switch pm {
	case UltraLowPower:
		table, first = ulpRates, ODR1Hz6ULP
	case LowPower:
		table, first = lpRates, ODR6HzLP
	case HighPerformance:
		table, first = lpRates, ODR6HzHP
	default:
		return 0, 0, fmt.Errorf("%w: power mode %d", ErrInvalidArgument, pm)
	}
	for i, r := range table {
		if hz <= r {
			return first + ODR(i), r, nil
		}
	}
	last := len(table) - 1
	return first + ODR(last), table[last], nil
}

// Device is a LIS2DUXS12 handle. It is not safe for concurrent use.
type Device struct {
	codec   *Codec
	busType bus.Type
	delay   bus.DelayFunc

	initialized bool
	accEnabled  bool
	accODR      float32
	powerMode   PowerMode
}

var _ motion.Sensor = (*Device)(nil)
var _ motion.EventDetector = (*Device)(nil)
var _ motion.Thermometer = (*Device)(nil)
var _ motion.SelfTester = (*Device)(nil)

// New returns an unbound handle. Call RegisterBusIO before anything else.
func New() *Device {
	return &Device{codec: NewCodec(nil), delay: bus.Sleep, powerMode: LowPower}
}

// Codec exposes the register-level operations.
func (d *Device) Codec() *Codec { return d.codec }

// RegisterBusIO binds the transport. On a 3-wire SPI bus the first
// registration of an uninitialized device switches the part to 3-wire mode.
func (d *Device) RegisterBusIO(t bus.Transport, typ bus.Type, delay bus.DelayFunc) error {
	if t == nil {
		return fmt.Errorf("%w: nil transport", ErrInvalidArgument)
	}
	if delay == nil {
		delay = bus.Sleep
	}
	d.codec = NewCodec(t)
	d.busType = typ
	d.delay = delay

	if typ == bus.SPI3Wire && !d.initialized {
		// 3-wire enable value
		if err := d.codec.writeByte(RegCtrl1, 0x50); err != nil {
			return err
		}
	}
	return nil
}

// ExitDeepPowerDownI2C wakes the part on I2C/I3C with a dummy WHO_AM_I
// read. The read is expected to NACK while the part is asleep.
func (d *Device) ExitDeepPowerDownI2C() {
	_, _ = d.codec.DeviceID()
	d.delay(deepPowerDownExitMs)
}

// ExitDeepPowerDownSPI wakes the part on SPI through IF_WAKE_UP.
func (d *Device) ExitDeepPowerDownSPI() error {
	if err := d.codec.ExitDeepPowerDown(); err != nil {
		return err
	}
	d.delay(deepPowerDownExitMs)
	return nil
}

// ExitDeepPowerDown picks the wake-up sequence for the bound bus type.
func (d *Device) ExitDeepPowerDown() error {
	switch d.busType {
	case bus.SPI4Wire, bus.SPI3Wire:
		return d.ExitDeepPowerDownSPI()
	}
	d.ExitDeepPowerDownI2C()
	return nil
}

// Init puts the part in a known disabled state: I3C off (unless wired on
// I3C), main bank, auto-increment with BDU, FIFO bypass, power down at 2g.
func (d *Device) Init() error {
	if d.busType != bus.I3C {
		cfg, err := d.codec.I3CConfigureGet()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		cfg.AsfOn = true
		if err := d.codec.I3CConfigureSet(cfg); err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}
	if err := d.codec.MemBankSet(MainMemBank); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := d.codec.InitSet(InitSensorOnlyOn); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := d.codec.FIFOModeSet(FIFOMode{Operation: FIFOBypass, Store: FIFO1X}); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	d.accODR = 100
	d.powerMode = LowPower

	if err := d.codec.ModeSet(Mode{ODR: ODROff, FS: FS2g}); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	d.initialized = true
	return nil
}

// DeInit disables sensing and forgets the cached rate. The handle can be
// initialized again.
func (d *Device) DeInit() error {
	if err := d.Disable(); err != nil {
		return err
	}
	d.accODR = 0
	d.powerMode = LowPower
	d.initialized = false
	return nil
}

func (d *Device) GetInitStatus() bool { return d.initialized }

func (d *Device) IsEnabled() bool { return d.accEnabled }

func (d *Device) ReadID() (uint8, error) {
	return d.codec.DeviceID()
}

// CheckID reads WHO_AM_I and compares it with DeviceID.
func (d *Device) CheckID() error {
	id, err := d.ReadID()
	if err != nil {
		return err
	}
	if id != DeviceID {
		return fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrWrongDeviceID, id, DeviceID)
	}
	return nil
}

func (d *Device) GetCapabilities() motion.Capabilities {
	return motion.Capabilities{
		Acc:       true,
		LowPower:  true,
		AccMaxFS:  16,
		AccMaxOdr: 800,
	}
}

// Enable starts sampling at the cached rate and power mode.
func (d *Device) Enable() error {
	if d.accEnabled {
		return nil
	}
	if !d.initialized {
		return ErrNotInitialized
	}
	if err := d.setODRWhenEnabled(d.accODR, d.powerMode); err != nil {
		return err
	}
	d.accEnabled = true
	return nil
}

// Disable powers the accelerometer down. Rates above 400 Hz are first
// stepped down to 400 Hz for a few milliseconds. The cached rate is kept.
func (d *Device) Disable() error {
	if !d.accEnabled {
		return nil
	}
	mode, err := d.codec.ModeGet()
	if err != nil {
		return err
	}
	if hz, ok := mode.ODR.Hz(); ok && hz > stepDownAboveHz {
		step := mode
		step.ODR = ODR400HzLP
		if mode.ODR.HighPerformance() {
			step.ODR = ODR400HzHP
		}
		if err := d.codec.ModeSet(step); err != nil {
			return err
		}
		d.delay(odrStepDownMs)
	}
	mode.ODR = ODROff
	if err := d.codec.ModeSet(mode); err != nil {
		return err
	}
	d.accEnabled = false
	return nil
}

// GetOutputDataRate reads the rate from the part. Power down and the
// trigger modes read as 0.
func (d *Device) GetOutputDataRate() (float32, error) {
	mode, err := d.codec.ModeGet()
	if err != nil {
		return 0, err
	}
	switch mode.ODR {
	case ODROff, ODRTrigPin, ODRTrigSW:
		return 0, nil
	}
	hz, ok := mode.ODR.Hz()
	if !ok {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownODR, uint8(mode.ODR))
	}
	return hz, nil
}

// CachedOutputDataRate is the rate Enable will apply.
func (d *Device) CachedOutputDataRate() (float32, PowerMode) {
	return d.accODR, d.powerMode
}

// SetOutputDataRate selects a low-power rate.
func (d *Device) SetOutputDataRate(hz float32) error {
	return d.SetOutputDataRateWithMode(hz, LowPower)
}

// SetOutputDataRateWithMode writes the rate when enabled and only caches it
// otherwise.
func (d *Device) SetOutputDataRateWithMode(hz float32, pm PowerMode) error {
	if d.accEnabled {
		return d.setODRWhenEnabled(hz, pm)
	}
	return d.setODRWhenDisabled(hz, pm)
}

func (d *Device) setODRWhenEnabled(hz float32, pm PowerMode) error {
	code, _, err := odrFor(hz, pm)
	if err != nil {
		return err
	}
	mode, err := d.codec.ModeGet()
	if err != nil {
		return err
	}
	mode.ODR = code
	if _, err := bandwidthCode(code, mode.BW); errors.Is(err, ErrInvalidArgument) {
		mode.BW = BWDiv2
	}
	if err := d.codec.ModeSet(mode); err != nil {
		return err
	}
	applied, ok := code.Hz()
	if !ok {
		return fmt.Errorf("%w: 0x%02X", ErrUnknownODR, uint8(code))
	}
	d.accODR = applied
	d.powerMode = pm
	return nil
}

func (d *Device) setODRWhenDisabled(hz float32, pm PowerMode) error {
	_, snapped, err := odrFor(hz, pm)
	if err != nil {
		return err
	}
	d.accODR = snapped
	d.powerMode = pm
	return nil
}

// GetFullScale returns the range in g.
func (d *Device) GetFullScale() (int32, error) {
	mode, err := d.codec.ModeGet()
	if err != nil {
		return 0, err
	}
	g := mode.FS.G()
	if g == 0 {
		return 0, fmt.Errorf("%w: full scale code %d", ErrInvalidArgument, mode.FS)
	}
	return g, nil
}

// SetFullScale picks the smallest range covering g.
func (d *Device) SetFullScale(g int32) error {
	mode, err := d.codec.ModeGet()
	if err != nil {
		return err
	}
	switch {
	case g <= 2:
		mode.FS = FS2g
	case g <= 4:
		mode.FS = FS4g
	case g <= 8:
		mode.FS = FS8g
	default:
		mode.FS = FS16g
	}
	return d.codec.ModeSet(mode)
}

// GetSensitivity returns mg/LSB for the current range.
func (d *Device) GetSensitivity() (float32, error) {
	mode, err := d.codec.ModeGet()
	if err != nil {
		return 0, err
	}
	s := Sensitivity(mode.FS)
	if s == 0 {
		return 0, fmt.Errorf("%w: full scale code %d", ErrInvalidArgument, mode.FS)
	}
	return s, nil
}

func (d *Device) readXL() (XLData, error) {
	mode, err := d.codec.ModeGet()
	if err != nil {
		return XLData{}, err
	}
	return d.codec.XLData(mode.FS)
}

func (d *Device) GetAxesRaw() (motion.AxesRaw, error) {
	xl, err := d.readXL()
	if err != nil {
		return motion.AxesRaw{}, err
	}
	return motion.AxesRaw{X: xl.Raw[0], Y: xl.Raw[1], Z: xl.Raw[2]}, nil
}

// GetAxes returns acceleration in mg, truncated toward zero.
func (d *Device) GetAxes() (motion.Axes, error) {
	xl, err := d.readXL()
	if err != nil {
		return motion.Axes{}, err
	}
	return motion.Axes{X: int32(xl.MG[0]), Y: int32(xl.MG[1]), Z: int32(xl.MG[2])}, nil
}

// GetTemperature returns the die temperature in degC.
func (d *Device) GetTemperature() (float32, error) {
	t, err := d.codec.OutTData()
	if err != nil {
		return 0, err
	}
	return t.DegC, nil
}

func (d *Device) ReadReg(reg uint8) (uint8, error) {
	return d.codec.readByte(reg)
}

func (d *Device) WriteReg(reg, val uint8) error {
	return d.codec.writeByte(reg, val)
}

func (d *Device) GetDRDYStatus() (bool, error) {
	st, err := d.codec.Status()
	if err != nil {
		return false, err
	}
	return st.Drdy, nil
}

// SetInterruptLatch selects latched (true) or level interrupts.
func (d *Device) SetInterruptLatch(latched bool) error {
	return modify(d.codec, RegInterruptCfg, unpackInterruptCfg, func(r *InterruptCfg) { r.LIR = latched })
}

// EnableDRDYInterrupt routes latched data-ready to INT1.
func (d *Device) EnableDRDYInterrupt() error {
	if err := d.codec.DataReadyModeSet(DataReadyLatched); err != nil {
		return err
	}
	return modify(d.codec, RegCtrl2, unpackCtrl2, func(r *Ctrl2) { r.Int1Drdy = true })
}

func (d *Device) DisableDRDYInterrupt() error {
	return modify(d.codec, RegCtrl2, unpackCtrl2, func(r *Ctrl2) { r.Int1Drdy = false })
}

// SetSelfTest starts or stops the electrostatic self-test.
func (d *Device) SetSelfTest(m motion.SelfTestMode) error {
	switch m {
	case motion.SelfTestDisable:
		return d.codec.SelfTestStop()
	case motion.SelfTestPositive:
		if err := d.codec.SelfTestSignSet(true); err != nil {
			return err
		}
		return d.codec.SelfTestStart(1)
	case motion.SelfTestNegative:
		if err := d.codec.SelfTestSignSet(false); err != nil {
			return err
		}
		return d.codec.SelfTestStart(2)
	}
	return fmt.Errorf("%w: self-test mode %d", ErrInvalidArgument, m)
}

func (d *Device) SetMemBank(b MemBank) error {
	return d.codec.MemBankSet(b)
}

// ConfigureFIFO applies a FIFO configuration.
func (d *Device) ConfigureFIFO(m FIFOMode) error {
	return d.codec.FIFOModeSet(m)
}

// ReadFIFO drains up to limit slots using the current full scale and FIFO
// settings. It stops early when the FIFO reports empty.
func (d *Device) ReadFIFO(limit int) ([]FIFOSample, error) {
	level, err := d.codec.FIFODataLevel()
	if err != nil {
		return nil, err
	}
	n := int(level)
	if limit > 0 && n > limit {
		n = limit
	}
	if n == 0 {
		return nil, nil
	}
	md, err := d.codec.ModeGet()
	if err != nil {
		return nil, err
	}
	fm, err := d.codec.FIFOModeGet()
	if err != nil {
		return nil, err
	}
	out := make([]FIFOSample, 0, n)
	for i := 0; i < n; i++ {
		s, err := d.codec.FIFOData(md, fm)
		if err != nil {
			return out, err
		}
		if s.Tag == TagEmpty {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *Device) enableInterrupts() error {
	return modify(d.codec, RegInterruptCfg, unpackInterruptCfg, func(r *InterruptCfg) { r.InterruptsEnable = true })
}
