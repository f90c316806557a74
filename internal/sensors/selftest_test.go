package sensors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/bus"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

func quickOptions() SelfTestOptions {
	return SelfTestOptions{LowMg: 50, HighMg: 700, Samples: 5, FullScaleG: 4, ODRHz: 200}
}

func enabledMock(t *testing.T) *MockSensor {
	t.Helper()
	m := NewMockSensor()
	m.Still = true
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if err := m.Enable(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRunAccelSelfTestPass(t *testing.T) {
	m := enabledMock(t)
	m.SetOutputDataRate(25)
	res, err := RunAccelSelfTest(context.Background(), m, quickOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Pass || res.Delta != (motion.Axes{X: 200, Y: 200, Z: 200}) {
		t.Errorf("result = %+v", res)
	}
	if res.NoST != (motion.Axes{Z: 1000}) {
		t.Errorf("NoST = %+v", res.NoST)
	}
	if fs, _ := m.GetFullScale(); fs != 2 {
		t.Errorf("full scale not restored: %d", fs)
	}
	if odr, _ := m.GetOutputDataRate(); odr != 25 {
		t.Errorf("rate not restored: %g", odr)
	}
	if a, _ := m.GetAxes(); a != (motion.Axes{Z: 1000}) {
		t.Errorf("self-test left on: %+v", a)
	}
}

func TestRunAccelSelfTestLimits(t *testing.T) {
	tests := []struct {
		name  string
		delta motion.Axes
	}{
		{"too small", motion.Axes{X: 200, Y: 10, Z: 200}},
		{"too large", motion.Axes{X: 200, Y: 200, Z: 900}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := enabledMock(t)
			m.SetFullScale(16)
			m.SelfTestDelta = tc.delta
			res, err := RunAccelSelfTest(context.Background(), m, quickOptions())
			if !errors.Is(err, ErrSelfTestFailed) {
				t.Fatalf("err = %v", err)
			}
			if res.Pass || res.Delta != tc.delta {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestRunAccelSelfTestRestoresDisabled(t *testing.T) {
	m := NewMockSensor()
	m.Still = true
	m.Init()
	if _, err := RunAccelSelfTest(context.Background(), m, quickOptions()); err != nil {
		t.Fatal(err)
	}
	if ready, _ := m.GetDRDYStatus(); ready {
		t.Error("sensor left enabled")
	}
}

type plainSensor struct{ motion.Sensor }

func TestRunAccelSelfTestUnsupported(t *testing.T) {
	_, err := RunAccelSelfTest(context.Background(), plainSensor{enabledMock(t)}, quickOptions())
	if !errors.Is(err, ErrFunctionNotSupported) {
		t.Errorf("err = %v", err)
	}
	opts := quickOptions()
	opts.Samples = 0
	if _, err := RunAccelSelfTest(context.Background(), enabledMock(t), opts); err == nil {
		t.Error("zero samples accepted")
	}
}

// neverReady never reports data-ready.
type neverReady struct{ *MockSensor }

func (neverReady) GetDRDYStatus() (bool, error) { return false, nil }

func TestRunAccelSelfTestContext(t *testing.T) {
	m := enabledMock(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := RunAccelSelfTest(ctx, neverReady{m}, quickOptions())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
	if fs, _ := m.GetFullScale(); fs != 2 {
		t.Errorf("full scale not restored after timeout: %d", fs)
	}
}

func TestRunAccelSelfTestLIS2DUXS12Registers(t *testing.T) {
	f := newFakeBus()
	d := lis2duxs12.New()
	if err := d.RegisterBusIO(f, bus.I2C, noDelay); err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Enable(); err != nil {
		t.Fatal(err)
	}
	f.main[lis2duxs12.RegWakeUpDur] = 0x05
	before := [3]byte{f.main[lis2duxs12.RegCtrl3], f.main[lis2duxs12.RegWakeUpDur], f.main[lis2duxs12.RegSelfTest]}
	ctrl5 := f.main[lis2duxs12.RegCtrl5]

	opts := LIS2DUXS12SelfTest(50, 700, 3, 0)
	_, err := RunAccelSelfTest(context.Background(), d, opts)
	// outputs never change on the fake
	if !errors.Is(err, ErrSelfTestFailed) {
		t.Fatalf("err = %v", err)
	}
	after := [3]byte{f.main[lis2duxs12.RegCtrl3], f.main[lis2duxs12.RegWakeUpDur], f.main[lis2duxs12.RegSelfTest]}
	if after != before {
		t.Errorf("saved registers % X, restored % X", before, after)
	}
	if f.main[lis2duxs12.RegCtrl5] != ctrl5 {
		t.Errorf("CTRL5 = 0x%02X, want 0x%02X", f.main[lis2duxs12.RegCtrl5], ctrl5)
	}
	if f.writes[lis2duxs12.RegSelfTest] == 0 {
		t.Error("self-test never started")
	}
}

func TestRunAccelSelfTestRestoresPowerMode(t *testing.T) {
	tests := []struct {
		name    string
		hz      float32
		pm      lis2duxs12.PowerMode
		enabled bool
		ctrl5   byte // ODR nibble on the part after the test
		hpEn    bool
	}{
		{"high performance", 100, lis2duxs12.HighPerformance, true, 0x08, true},
		{"ultra low power", 1.6, lis2duxs12.UltraLowPower, true, 0x01, false},
		{"disabled high performance", 50, lis2duxs12.HighPerformance, false, 0x00, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeBus()
			d := lis2duxs12.New()
			if err := d.RegisterBusIO(f, bus.I2C, noDelay); err != nil {
				t.Fatal(err)
			}
			if err := d.Init(); err != nil {
				t.Fatal(err)
			}
			if err := d.SetOutputDataRateWithMode(tc.hz, tc.pm); err != nil {
				t.Fatal(err)
			}
			if tc.enabled {
				if err := d.Enable(); err != nil {
					t.Fatal(err)
				}
			}

			_, err := RunAccelSelfTest(context.Background(), d, LIS2DUXS12SelfTest(0, 100000, 2, 0))
			if err != nil {
				t.Fatal(err)
			}

			if hz, pm := d.CachedOutputDataRate(); hz != tc.hz || pm != tc.pm {
				t.Errorf("cached operating point = %g Hz %v, want %g Hz %v", hz, pm, tc.hz, tc.pm)
			}
			if d.IsEnabled() != tc.enabled {
				t.Errorf("enabled = %v, want %v", d.IsEnabled(), tc.enabled)
			}
			if odr := f.main[lis2duxs12.RegCtrl5] >> 4; odr != tc.ctrl5 {
				t.Errorf("CTRL5.odr = 0x%X, want 0x%X", odr, tc.ctrl5)
			}
			if hp := f.main[lis2duxs12.RegCtrl3]&0x04 != 0; hp != tc.hpEn {
				t.Errorf("CTRL3.hp_en = %v, want %v", hp, tc.hpEn)
			}
			if fs, _ := d.GetFullScale(); fs != 2 {
				t.Errorf("full scale = %d, want 2", fs)
			}
		})
	}
}
