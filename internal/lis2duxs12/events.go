package lis2duxs12

import (
	"fmt"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// wakeUpLSB is the wake-up threshold step in mg for each full scale. The
// fine step applies when INTERRUPT_CFG.wake_ths_w is set.
var wakeUpLSB = map[int32]struct{ fine, coarse float32 }{
	2:  {7.8125, 31.25},
	4:  {15.625, 62.5},
	8:  {31.25, 125},
	16: {62.5, 250},
}

const maxWakeUpCode = 63

// wakeUpCode quantizes a threshold in mg for the given range.
func wakeUpCode(mg uint32, fsG int32) (code uint8, fine bool, err error) {
	lsb, ok := wakeUpLSB[fsG]
	if !ok {
		return 0, false, fmt.Errorf("%w: full scale %dg", ErrInvalidArgument, fsG)
	}
	switch {
	case mg < uint32(lsb.fine*maxWakeUpCode):
		return uint8(float32(mg) / lsb.fine), true, nil
	case mg < uint32(lsb.coarse*maxWakeUpCode):
		return uint8(float32(mg) / lsb.coarse), false, nil
	}
	return maxWakeUpCode, false, nil
}

// wakeUpDurations maps the accepted durations to wake_dur and the
// extended-range flag.
var wakeUpDurations = map[uint8]struct {
	dur uint8
	ext bool
}{
	0: {0, false}, 1: {1, false}, 2: {2, false},
	3: {0, true}, 7: {1, true}, 11: {2, true}, 15: {3, true},
}

func checkPin(pin motion.IntPin) error {
	if pin != motion.Int1Pin && pin != motion.Int2Pin {
		return fmt.Errorf("%w: interrupt pin %s", ErrInvalidArgument, pin)
	}
	return nil
}

func mdReg(pin motion.IntPin) byte {
	if pin == motion.Int2Pin {
		return RegMD2Cfg
	}
	return RegMD1Cfg
}

// routeEvent sets one MDx_CFG bit on pin and enables interrupts.
func (d *Device) routeEvent(pin motion.IntPin, set func(*MDCfg)) error {
	if err := modify(d.codec, mdReg(pin), unpackMDCfg, set); err != nil {
		return err
	}
	return d.enableInterrupts()
}

// unrouteEvent clears one MDx_CFG bit on both pins.
func (d *Device) unrouteEvent(unset func(*MDCfg)) error {
	if err := modify(d.codec, RegMD1Cfg, unpackMDCfg, unset); err != nil {
		return err
	}
	return modify(d.codec, RegMD2Cfg, unpackMDCfg, unset)
}

// GetEventStatus reports each event that is routed to a pin and flagged in
// ALL_INT_SRC.
func (d *Device) GetEventStatus() (motion.EventStatus, error) {
	var st motion.EventStatus
	src, err := load(d.codec, RegAllIntSrc, unpackAllIntSrc)
	if err != nil {
		return st, err
	}
	md1, err := load(d.codec, RegMD1Cfg, unpackMDCfg)
	if err != nil {
		return st, err
	}
	md2, err := load(d.codec, RegMD2Cfg, unpackMDCfg)
	if err != nil {
		return st, err
	}
	st.WakeUp = (md1.WU || md2.WU) && src.WUIAAll
	st.D6DOrientation = (md1.SixD || md2.SixD) && src.D6DIAAll
	st.FreeFall = (md1.FF || md2.FF) && src.FFIAAll
	st.Sleep = (md1.SleepChange || md2.SleepChange) && src.SleepChangeIAAll
	return st, nil
}

// EnableWakeUpDetection configures 200 Hz, 2g, a 63 mg threshold and
// routes wake-up on all three axes to pin.
func (d *Device) EnableWakeUpDetection(pin motion.IntPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if err := d.SetOutputDataRate(200); err != nil {
		return err
	}
	if err := d.SetFullScale(2); err != nil {
		return err
	}
	if err := d.SetWakeUpThreshold(63); err != nil {
		return err
	}
	if err := d.SetWakeUpDuration(0); err != nil {
		return err
	}
	err := modify(d.codec, RegCtrl1, unpackCtrl1, func(r *Ctrl1) {
		r.WuXEn, r.WuYEn, r.WuZEn = true, true, true
	})
	if err != nil {
		return err
	}
	return d.routeEvent(pin, func(r *MDCfg) { r.WU = true })
}

func (d *Device) DisableWakeUpDetection() error {
	if err := d.unrouteEvent(func(r *MDCfg) { r.WU = false }); err != nil {
		return err
	}
	err := modify(d.codec, RegCtrl1, unpackCtrl1, func(r *Ctrl1) {
		r.WuXEn, r.WuYEn, r.WuZEn = false, false, false
	})
	if err != nil {
		return err
	}
	if err := d.SetWakeUpThreshold(0); err != nil {
		return err
	}
	return d.SetWakeUpDuration(0)
}

// SetWakeUpThreshold sets the threshold in mg, saturating at the largest
// code for the current range.
func (d *Device) SetWakeUpThreshold(mg uint32) error {
	fs, err := d.GetFullScale()
	if err != nil {
		return err
	}
	code, fine, err := wakeUpCode(mg, fs)
	if err != nil {
		return err
	}
	icfg, err := load(d.codec, RegInterruptCfg, unpackInterruptCfg)
	if err != nil {
		return err
	}
	ths, err := load(d.codec, RegWakeUpThs, unpackWakeUpThs)
	if err != nil {
		return err
	}
	icfg.WakeThsW = fine
	ths.WkThs = code
	if err := d.codec.writeByte(RegInterruptCfg, icfg.pack()); err != nil {
		return err
	}
	return d.codec.writeByte(RegWakeUpThs, ths.pack())
}

// SetWakeUpDuration accepts 0, 1, 2, 3, 7, 11 or 15 ODR cycles.
func (d *Device) SetWakeUpDuration(n uint8) error {
	v, ok := wakeUpDurations[n]
	if !ok {
		return fmt.Errorf("%w: wake-up duration %d", ErrInvalidArgument, n)
	}
	dur, err := load(d.codec, RegWakeUpDur, unpackWakeUpDur)
	if err != nil {
		return err
	}
	ext, err := load(d.codec, RegWakeUpDurExt, unpackWakeUpDurExt)
	if err != nil {
		return err
	}
	dur.WakeDur = v.dur
	ext.WuDurExtended = v.ext
	if err := d.codec.writeByte(RegWakeUpDur, dur.pack()); err != nil {
		return err
	}
	return d.codec.writeByte(RegWakeUpDurExt, ext.pack())
}

// Enable6DOrientation configures 400 Hz, 2g, threshold code 2 and routes
// the 6D event to pin.
func (d *Device) Enable6DOrientation(pin motion.IntPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if err := d.SetOutputDataRate(400); err != nil {
		return err
	}
	if err := d.SetFullScale(2); err != nil {
		return err
	}
	if err := d.Set6DOrientationThreshold(2); err != nil {
		return err
	}
	return d.routeEvent(pin, func(r *MDCfg) { r.SixD = true })
}

func (d *Device) Disable6DOrientation() error {
	if err := d.Set6DOrientationThreshold(0); err != nil {
		return err
	}
	return d.unrouteEvent(func(r *MDCfg) { r.SixD = false })
}

// Set6DOrientationThreshold writes SIXD.d6d_ths (0..3).
func (d *Device) Set6DOrientationThreshold(code uint8) error {
	if code > 3 {
		return fmt.Errorf("%w: 6D threshold %d", ErrInvalidArgument, code)
	}
	return modify(d.codec, RegSixD, unpackSixD, func(r *SixD) { r.D6DThs = code })
}

func (d *Device) Get6DOrientation() (motion.SixDOrientation, error) {
	s, err := load(d.codec, RegSixDSrc, unpackSixDSrc)
	if err != nil {
		return motion.SixDOrientation{}, err
	}
	return motion.SixDOrientation{XL: s.XL, XH: s.XH, YL: s.YL, YH: s.YH, ZL: s.ZL, ZH: s.ZH}, nil
}

func (d *Device) Get6DOrientationXL() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.XL }) }
func (d *Device) Get6DOrientationXH() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.XH }) }
func (d *Device) Get6DOrientationYL() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.YL }) }
func (d *Device) Get6DOrientationYH() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.YH }) }
func (d *Device) Get6DOrientationZL() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.ZL }) }
func (d *Device) Get6DOrientationZH() (bool, error) { return d.sixDBit(func(s SixDSrc) bool { return s.ZH }) }

func (d *Device) sixDBit(pick func(SixDSrc) bool) (bool, error) {
	s, err := load(d.codec, RegSixDSrc, unpackSixDSrc)
	if err != nil {
		return false, err
	}
	return pick(s), nil
}

// EnableFreeFallDetection configures 400 Hz, 2g, the lowest threshold and a
// short duration, and routes free-fall to pin.
func (d *Device) EnableFreeFallDetection(pin motion.IntPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if err := d.SetOutputDataRate(400); err != nil {
		return err
	}
	if err := d.SetFullScale(2); err != nil {
		return err
	}
	if err := d.SetFreeFallThreshold(0); err != nil {
		return err
	}
	if err := d.SetFreeFallDuration(3); err != nil {
		return err
	}
	return d.routeEvent(pin, func(r *MDCfg) { r.FF = true })
}

func (d *Device) DisableFreeFallDetection() error {
	if err := d.unrouteEvent(func(r *MDCfg) { r.FF = false }); err != nil {
		return err
	}
	if err := d.SetFreeFallThreshold(0); err != nil {
		return err
	}
	return d.SetFreeFallDuration(0)
}

// SetFreeFallThreshold writes FREE_FALL.ff_ths (0..7).
func (d *Device) SetFreeFallThreshold(code uint8) error {
	if code > 7 {
		return fmt.Errorf("%w: free-fall threshold %d", ErrInvalidArgument, code)
	}
	return modify(d.codec, RegFreeFall, unpackFreeFall, func(r *FreeFall) { r.FFThs = code })
}

// SetFreeFallDuration writes the 6-bit duration split across WAKE_UP_DUR
// (MSB) and FREE_FALL (low five bits).
func (d *Device) SetFreeFallDuration(n uint8) error {
	if n > 0x3F {
		return fmt.Errorf("%w: free-fall duration %d", ErrInvalidArgument, n)
	}
	if err := modify(d.codec, RegWakeUpDur, unpackWakeUpDur, func(r *WakeUpDur) { r.FFDur = n&0x20 != 0 }); err != nil {
		return err
	}
	return modify(d.codec, RegFreeFall, unpackFreeFall, func(r *FreeFall) { r.FFDur = n & 0x1F })
}

// EnableSleepChangeDetection routes activity/inactivity transitions to pin.
func (d *Device) EnableSleepChangeDetection(pin motion.IntPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if err := modify(d.codec, RegWakeUpThs, unpackWakeUpThs, func(r *WakeUpThs) { r.SleepOn = true }); err != nil {
		return err
	}
	return d.routeEvent(pin, func(r *MDCfg) { r.SleepChange = true })
}

func (d *Device) DisableSleepChangeDetection() error {
	if err := d.unrouteEvent(func(r *MDCfg) { r.SleepChange = false }); err != nil {
		return err
	}
	return modify(d.codec, RegWakeUpThs, unpackWakeUpThs, func(r *WakeUpThs) { r.SleepOn = false })
}
