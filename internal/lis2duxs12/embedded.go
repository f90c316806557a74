package lis2duxs12

import (
	"fmt"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// StepCounterMode is the pedometer configuration.
type StepCounterMode struct {
	Enable bool
	InFIFO bool
}

// EmbIntRoute selects the embedded function events routed to one pin.
type EmbIntRoute struct {
	StepDet bool
	Tilt    bool
	SigMot  bool
	FSMLC   bool
}

// StepCounterModeSet enables the pedometer and its FIFO batching.
func (c *Codec) StepCounterModeSet(m StepCounterMode) error {
	return c.withEmbeddedBank(func() error {
		err := modify(c, RegEmbFuncFIFOEn, unpackEmbFuncFIFOEn, func(r *EmbFuncFIFOEn) {
			r.StepCounterFIFOEn = m.InFIFO
		})
		if err != nil {
			return err
		}
		return modify(c, RegEmbFuncEnA, unpackEmbFuncEnA, func(r *EmbFuncEnA) { r.PedoEn = m.Enable })
	})
}

func (c *Codec) StepCounterModeGet() (StepCounterMode, error) {
	var m StepCounterMode
	err := c.withEmbeddedBank(func() error {
		en, err := load(c, RegEmbFuncEnA, unpackEmbFuncEnA)
		if err != nil {
			return err
		}
		fifo, err := load(c, RegEmbFuncFIFOEn, unpackEmbFuncFIFOEn)
		if err != nil {
			return err
		}
		m = StepCounterMode{Enable: en.PedoEn, InFIFO: fifo.StepCounterFIFOEn}
		return nil
	})
	return m, err
}

// StepCounterSteps reads the 16-bit step count.
func (c *Codec) StepCounterSteps() (uint16, error) {
	var steps uint16
	err := c.withEmbeddedBank(func() error {
		var buf [2]byte
		if err := c.ReadReg(RegStepCounterL, buf[:]); err != nil {
			return err
		}
		steps = uint16(buf[1])<<8 | uint16(buf[0])
		return nil
	})
	return steps, err
}

// StepCounterReset clears the step count.
func (c *Codec) StepCounterReset() error {
	return c.withEmbeddedBank(func() error {
		return modify(c, RegEmbFuncSrc, unpackEmbFuncSrc, func(r *EmbFuncSrc) { r.PedoRstStep = true })
	})
}

func (c *Codec) TiltModeSet(on bool) error {
	return c.withEmbeddedBank(func() error {
		return modify(c, RegEmbFuncEnA, unpackEmbFuncEnA, func(r *EmbFuncEnA) { r.TiltEn = on })
	})
}

func (c *Codec) SigMotModeSet(on bool) error {
	return c.withEmbeddedBank(func() error {
		return modify(c, RegEmbFuncEnA, unpackEmbFuncEnA, func(r *EmbFuncEnA) { r.SignMotionEn = on })
	})
}

// EmbPinIntRouteSet routes embedded events to pin and sets the matching
// MDx_CFG.emb_func bit.
func (c *Codec) EmbPinIntRouteSet(pin motion.IntPin, rt EmbIntRoute) error {
	intReg, mdReg := byte(RegEmbFuncInt1), byte(RegMD1Cfg)
	switch pin {
	case motion.Int1Pin:
	case motion.Int2Pin:
		intReg, mdReg = RegEmbFuncInt2, RegMD2Cfg
	default:
		return fmt.Errorf("%w: interrupt pin %s", ErrInvalidArgument, pin)
	}
	err := c.withEmbeddedBank(func() error {
		return modify(c, intReg, unpackEmbFuncInt, func(r *EmbFuncInt) {
			r.StepDet = rt.StepDet
			r.Tilt = rt.Tilt
			r.SigMot = rt.SigMot
			r.FSMLC = rt.FSMLC
		})
	})
	if err != nil {
		return err
	}
	return modify(c, mdReg, unpackMDCfg, func(r *MDCfg) { r.EmbFunc = true })
}

func (c *Codec) EmbPinIntRouteGet(pin motion.IntPin) (EmbIntRoute, error) {
	intReg := byte(RegEmbFuncInt1)
	switch pin {
	case motion.Int1Pin:
	case motion.Int2Pin:
		intReg = RegEmbFuncInt2
	default:
		return EmbIntRoute{}, fmt.Errorf("%w: interrupt pin %s", ErrInvalidArgument, pin)
	}
	var rt EmbIntRoute
	err := c.withEmbeddedBank(func() error {
		r, err := load(c, intReg, unpackEmbFuncInt)
		if err != nil {
			return err
		}
		rt = EmbIntRoute{StepDet: r.StepDet, Tilt: r.Tilt, SigMot: r.SigMot, FSMLC: r.FSMLC}
		return nil
	})
	return rt, err
}

// EnablePedometer turns on the embedded functions block, the step counter
// and step-detection routing to pin.
func (d *Device) EnablePedometer(pin motion.IntPin) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	if err := modify(d.codec, RegCtrl4, unpackCtrl4, func(r *Ctrl4) { r.EmbFuncEn = true }); err != nil {
		return err
	}
	if err := d.codec.StepCounterModeSet(StepCounterMode{Enable: true}); err != nil {
		return err
	}
	rt, err := d.codec.EmbPinIntRouteGet(pin)
	if err != nil {
		return err
	}
	rt.StepDet = true
	if err := d.codec.EmbPinIntRouteSet(pin, rt); err != nil {
		return err
	}
	return d.enableInterrupts()
}

// DisablePedometer stops the step counter and drops its routing on both
// pins.
func (d *Device) DisablePedometer() error {
	if err := d.codec.StepCounterModeSet(StepCounterMode{}); err != nil {
		return err
	}
	return d.codec.withEmbeddedBank(func() error {
		for _, reg := range []byte{RegEmbFuncInt1, RegEmbFuncInt2} {
			if err := modify(d.codec, reg, unpackEmbFuncInt, func(r *EmbFuncInt) { r.StepDet = false }); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Device) StepCount() (uint16, error) {
	return d.codec.StepCounterSteps()
}

func (d *Device) ResetStepCounter() error {
	return d.codec.StepCounterReset()
}
