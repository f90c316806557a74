package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

var ErrSelfTestFailed = errors.New("sensors: self-test out of limits")

// SelfTestOptions parameterizes RunAccelSelfTest.
type SelfTestOptions struct {
	// LowMg and HighMg bound |ST - noST| on every axis.
	LowMg  float32
	HighMg float32
	// Samples averaged per phase, after one discarded sample.
	Samples int

	FullScaleG int32
	ODRHz      float32

	PowerUpDelay  time.Duration
	SelfTestDelay time.Duration
	// PollInterval is the data-ready polling period.
	PollInterval time.Duration

	// SaveRegs are read before the test and written back afterwards.
	SaveRegs []uint8
}

// LIS2DUXS12SelfTest returns the options used for the LIS2DUXS12: 4g at
// 200 Hz, self-test sign bits saved and restored.
func LIS2DUXS12SelfTest(lowMg, highMg float32, samples int, settle time.Duration) SelfTestOptions {
	return SelfTestOptions{
		LowMg:         lowMg,
		HighMg:        highMg,
		Samples:       samples,
		FullScaleG:    4,
		ODRHz:         200,
		PowerUpDelay:  settle,
		SelfTestDelay: settle,
		PollInterval:  time.Millisecond,
		SaveRegs:      []uint8{lis2duxs12.RegCtrl3, lis2duxs12.RegWakeUpDur, lis2duxs12.RegSelfTest},
	}
}

// SelfTestResult holds the averaged readings in mg.
type SelfTestResult struct {
	NoST  motion.Axes `json:"no_st"`
	ST    motion.Axes `json:"st"`
	Delta motion.Axes `json:"delta"`
	Pass  bool        `json:"pass"`
}

func (r SelfTestResult) axisPass(lo, hi float32) [3]bool {
	var ok [3]bool
	for i, d := range []int32{r.Delta.X, r.Delta.Y, r.Delta.Z} {
		ok[i] = float32(d) >= lo && float32(d) <= hi
	}
	return ok
}

// RunAccelSelfTest measures the accelerometer output with and without the
// positive electrostatic self-test and compares the difference against
// the limits. The sensor must be initialized; its full scale, rate, power
// mode and enable state are restored on return. The device must be kept
// still.
func RunAccelSelfTest(ctx context.Context, s motion.Sensor, opts SelfTestOptions) (SelfTestResult, error) {
	st, ok := s.(motion.SelfTester)
	if !ok {
		return SelfTestResult{}, fmt.Errorf("%w: self-test", ErrFunctionNotSupported)
	}
	if opts.Samples <= 0 {
		return SelfTestResult{}, fmt.Errorf("self-test: samples must be positive, got %d", opts.Samples)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Millisecond
	}

	prev, err := saveOperatingPoint(s)
	if err != nil {
		return SelfTestResult{}, fmt.Errorf("self-test: %w", err)
	}
	saved := make([]uint8, len(opts.SaveRegs))
	for i, reg := range opts.SaveRegs {
		if saved[i], err = s.ReadReg(reg); err != nil {
			return SelfTestResult{}, fmt.Errorf("self-test: save 0x%02X: %w", reg, err)
		}
	}

	res, runErr := runSelfTest(ctx, s, st, opts)

	// restore even when the measurement failed
	restoreErr := restore(s, st, opts.SaveRegs, saved, prev)
	if runErr != nil {
		return res, runErr
	}
	if restoreErr != nil {
		return res, restoreErr
	}

	if pass := res.axisPass(opts.LowMg, opts.HighMg); !pass[0] || !pass[1] || !pass[2] {
		return res, fmt.Errorf("%w: delta %+v mg, limits [%g, %g]", ErrSelfTestFailed, res.Delta, opts.LowMg, opts.HighMg)
	}
	res.Pass = true
	return res, nil
}

func runSelfTest(ctx context.Context, s motion.Sensor, st motion.SelfTester, opts SelfTestOptions) (SelfTestResult, error) {
	var res SelfTestResult
	if err := s.SetFullScale(opts.FullScaleG); err != nil {
		return res, fmt.Errorf("self-test: %w", err)
	}
	if err := s.SetOutputDataRate(opts.ODRHz); err != nil {
		return res, fmt.Errorf("self-test: %w", err)
	}
	if err := s.Enable(); err != nil {
		return res, fmt.Errorf("self-test: %w", err)
	}
	if err := sleepCtx(ctx, opts.PowerUpDelay); err != nil {
		return res, err
	}

	var err error
	if res.NoST, err = averageAxes(ctx, s, opts); err != nil {
		return res, fmt.Errorf("self-test: without excitation: %w", err)
	}

	if err := st.SetSelfTest(motion.SelfTestPositive); err != nil {
		return res, fmt.Errorf("self-test: %w", err)
	}
	if err := sleepCtx(ctx, opts.SelfTestDelay); err != nil {
		return res, err
	}
	if res.ST, err = averageAxes(ctx, s, opts); err != nil {
		return res, fmt.Errorf("self-test: with excitation: %w", err)
	}

	res.Delta = motion.Axes{
		X: abs32(res.ST.X - res.NoST.X),
		Y: abs32(res.ST.Y - res.NoST.Y),
		Z: abs32(res.ST.Z - res.NoST.Z),
	}
	return res, nil
}

// powerModeSensor is a sensor whose rate table depends on a power mode. Its
// rate must be put back together with the mode.
type powerModeSensor interface {
	IsEnabled() bool
	CachedOutputDataRate() (float32, lis2duxs12.PowerMode)
	SetOutputDataRateWithMode(hz float32, pm lis2duxs12.PowerMode) error
}

// operatingPoint is the state the self-test changes and restores.
type operatingPoint struct {
	fs      int32
	odr     float32
	pm      lis2duxs12.PowerMode
	enabled bool
	// withMode is set when odr and pm are the cached intent of a
	// powerModeSensor rather than a hardware rate.
	withMode bool
}

func saveOperatingPoint(s motion.Sensor) (operatingPoint, error) {
	fs, err := s.GetFullScale()
	if err != nil {
		return operatingPoint{}, err
	}
	if pms, ok := s.(powerModeSensor); ok {
		odr, pm := pms.CachedOutputDataRate()
		return operatingPoint{fs: fs, odr: odr, pm: pm, enabled: pms.IsEnabled(), withMode: true}, nil
	}
	odr, err := s.GetOutputDataRate()
	if err != nil {
		return operatingPoint{}, err
	}
	return operatingPoint{fs: fs, odr: odr, enabled: odr != 0}, nil
}

func (op operatingPoint) apply(s motion.Sensor) error {
	if err := s.SetFullScale(op.fs); err != nil {
		return err
	}
	if pms, ok := s.(powerModeSensor); ok && op.withMode {
		// a disabled part only takes the rate into its cache
		if !op.enabled {
			if err := s.Disable(); err != nil {
				return err
			}
		}
		return pms.SetOutputDataRateWithMode(op.odr, op.pm)
	}
	if !op.enabled {
		return s.Disable()
	}
	return s.SetOutputDataRate(op.odr)
}

func restore(s motion.Sensor, st motion.SelfTester, regs, saved []uint8, prev operatingPoint) error {
	if err := st.SetSelfTest(motion.SelfTestDisable); err != nil {
		return fmt.Errorf("self-test: restore: %w", err)
	}
	for i, reg := range regs {
		if err := s.WriteReg(reg, saved[i]); err != nil {
			return fmt.Errorf("self-test: restore 0x%02X: %w", reg, err)
		}
	}
	if err := prev.apply(s); err != nil {
		return fmt.Errorf("self-test: restore: %w", err)
	}
	return nil
}

// averageAxes discards one sample then averages opts.Samples readings,
// each taken after data-ready.
func averageAxes(ctx context.Context, s motion.Sensor, opts SelfTestOptions) (motion.Axes, error) {
	if _, err := readFresh(ctx, s, opts.PollInterval); err != nil {
		return motion.Axes{}, err
	}
	var sx, sy, sz int64
	for i := 0; i < opts.Samples; i++ {
		a, err := readFresh(ctx, s, opts.PollInterval)
		if err != nil {
			return motion.Axes{}, err
		}
		sx += int64(a.X)
		sy += int64(a.Y)
		sz += int64(a.Z)
	}
	n := int64(opts.Samples)
	return motion.Axes{X: int32(sx / n), Y: int32(sy / n), Z: int32(sz / n)}, nil
}

func readFresh(ctx context.Context, s motion.Sensor, poll time.Duration) (motion.Axes, error) {
	for {
		ready, err := s.GetDRDYStatus()
		if err != nil {
			return motion.Axes{}, err
		}
		if ready {
			return s.GetAxes()
		}
		if err := sleepCtx(ctx, poll); err != nil {
			return motion.Axes{}, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
