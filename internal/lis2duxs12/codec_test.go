package lis2duxs12

import (
	"errors"
	"testing"
)

func TestConvertRawToMg(t *testing.T) {
	cases := []struct {
		raw int16
		fs  FullScale
		mg  float32
	}{
		{1000, FS2g, 61},
		{-1000, FS2g, -61},
		{1000, FS4g, 122},
		{1000, FS8g, 244},
		{1000, FS16g, 488},
		{1000, FullScale(7), 0},
	}
	for _, tc := range cases {
		if got := ConvertRawToMg(tc.raw, tc.fs); !approx(got, tc.mg) {
			t.Errorf("ConvertRawToMg(%d, %d) = %f, want %f", tc.raw, tc.fs, got, tc.mg)
		}
	}

	for _, fs := range []FullScale{FS2g, FS4g, FS8g, FS16g} {
		if got := ConvertRawToMg(0, fs); got != 0 {
			t.Errorf("ConvertRawToMg(0, %d) = %f", fs, got)
		}
		for _, raw := range []int16{1, 37, 1200, 16000} {
			one, two := ConvertRawToMg(raw, fs), ConvertRawToMg(2*raw, fs)
			if !approx(two, 2*one) {
				t.Errorf("fs %d: f(2*%d) = %f, 2*f(%d) = %f", fs, raw, two, raw, 2*one)
			}
		}
	}
}

func TestTemperatureAndQvarScale(t *testing.T) {
	if got := FromLSBToCelsius(0); got != 25 {
		t.Errorf("FromLSBToCelsius(0) = %f", got)
	}
	if got := FromLSBToCelsius(711); !approx(got, 27) {
		t.Errorf("FromLSBToCelsius(711) = %f", got)
	}
	if got := FromLSBToMv(744); !approx(got, 10) {
		t.Errorf("FromLSBToMv(744) = %f", got)
	}
}

func TestReadModifyWritePreservesBits(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)

	f.main[RegCtrl1] = 0x80 | 0x08
	if err := c.DataReadyModeSet(DataReadyLatched); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl1] != 0x80 {
		t.Errorf("CTRL1 = 0x%02X, want 0x80", f.main[RegCtrl1])
	}

	f.main[RegSelfTest] = 0xCF
	if err := c.SelfTestStart(2); err != nil {
		t.Fatal(err)
	}
	if f.main[RegSelfTest] != 0xEF {
		t.Errorf("SELF_TEST = 0x%02X, want 0xEF", f.main[RegSelfTest])
	}

	f.main[RegSleep] = 0xF0
	if err := c.EnterDeepPowerDown(true); err != nil {
		t.Fatal(err)
	}
	if f.main[RegSleep] != 0xF1 {
		t.Errorf("SLEEP = 0x%02X, want 0xF1", f.main[RegSleep])
	}
}

func TestModeSetGet(t *testing.T) {
	cases := []struct {
		in    Mode
		ctrl5 byte
		hp    bool
		back  Mode
	}{
		{Mode{ODR100HzLP, FS2g, BWDiv4}, 0x84, false, Mode{ODR100HzLP, FS2g, BWDiv4}},
		{Mode{ODR200HzHP, FS8g, BWDiv2}, 0x92, true, Mode{ODR200HzHP, FS8g, BWDiv2}},
		{Mode{ODR12Hz5LP, FS4g, BWDiv4}, 0x5D, false, Mode{ODR12Hz5LP, FS4g, BWDiv4}},
		{Mode{ODR25HzLP, FS16g, BWDiv8}, 0x6F, false, Mode{ODR25HzLP, FS16g, BWDiv8}},
		{Mode{ODR6HzLP, FS2g, BWDiv2}, 0x4C, false, Mode{ODR6HzLP, FS2g, BWDiv2}},
		{Mode{ODR25HzULP, FS2g, BWDiv16}, 0x30, false, Mode{ODR25HzULP, FS2g, BWDiv2}},
		{Mode{ODRTrigSW, FS2g, BWDiv2}, 0xF0, false, Mode{ODRTrigSW, FS2g, BWDiv2}},
		{Mode{ODRTrigPin, FS4g, BWDiv2}, 0xE1, false, Mode{ODRTrigPin, FS4g, BWDiv2}},
	}
	for _, tc := range cases {
		f := newRegFile()
		c := NewCodec(f)
		if err := c.ModeSet(tc.in); err != nil {
			t.Errorf("ModeSet(%+v): %v", tc.in, err)
			continue
		}
		if f.main[RegCtrl5] != tc.ctrl5 {
			t.Errorf("ModeSet(%+v): CTRL5 = 0x%02X, want 0x%02X", tc.in, f.main[RegCtrl5], tc.ctrl5)
		}
		if hp := f.main[RegCtrl3]&0x04 != 0; hp != tc.hp {
			t.Errorf("ModeSet(%+v): hp_en = %v", tc.in, hp)
		}
		if w := f.writes(); !sameBytes(w, []byte{RegCtrl5, RegCtrl3}) {
			t.Errorf("ModeSet(%+v): writes % X", tc.in, w)
		}
		got, err := c.ModeGet()
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.back {
			t.Errorf("ModeGet after %+v = %+v, want %+v", tc.in, got, tc.back)
		}
	}
}

func TestModeSetRejectsBandwidth(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	for _, m := range []Mode{
		{ODR: ODR6HzLP, BW: BWDiv4},
		{ODR: ODR12Hz5LP, BW: BWDiv8},
		{ODR: ODR25HzLP, BW: BWDiv16},
		{ODR: ODR100HzLP, BW: Bandwidth(4)},
	} {
		if err := c.ModeSet(m); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ModeSet(%+v) = %v, want ErrInvalidArgument", m, err)
		}
	}
	if err := c.ModeSet(Mode{ODR: ODR(0x0C)}); !errors.Is(err, ErrUnknownODR) {
		t.Errorf("ModeSet(0x0C) = %v", err)
	}
	if len(f.log) != 0 {
		t.Errorf("rejected ModeSet touched the bus: %v", f.log)
	}
}

func TestModeGetUnknownCode(t *testing.T) {
	f := newRegFile()
	f.main[RegCtrl5] = 0xC0
	m, err := NewCodec(f).ModeGet()
	if err != nil {
		t.Fatal(err)
	}
	if m.ODR != ODROff {
		t.Errorf("ODR = %s, want off", m.ODR)
	}
}

func TestInitSet(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	if err := c.InitSet(InitMode(9)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("InitSet(9) = %v", err)
	}
	if len(f.writes()) != 0 {
		t.Error("invalid InitSet wrote registers")
	}

	if err := c.InitSet(InitSensorOnlyOn); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl4]&0x20 == 0 || f.main[RegCtrl4]&0x10 != 0 {
		t.Errorf("CTRL4 = 0x%02X, want bdu set and emb_func_en clear", f.main[RegCtrl4])
	}
	if f.main[RegCtrl1]&0x10 == 0 {
		t.Errorf("CTRL1 = 0x%02X, want if_add_inc", f.main[RegCtrl1])
	}

	if err := c.InitSet(InitReset); err != nil {
		t.Fatal(err)
	}
	st, err := c.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !st.SwReset || st.Boot {
		t.Errorf("Status = %+v", st)
	}
}

func TestAllSources(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)

	f.main[RegStatus] = 0x01
	f.main[RegWakeUpSrc] = 0x28
	s, err := c.AllSources()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Drdy || s.WakeUp || s.FreeFall {
		t.Errorf("without int_global: %+v", s)
	}
	if r := f.reads(); !sameBytes(r, []byte{RegStatus}) {
		t.Errorf("reads % X", r)
	}

	f.reset()
	f.main[RegStatus] = 0x21
	f.main[RegSixDSrc] = 0x41
	f.main[RegTapSrc] = 0x40
	s, err = c.AllSources()
	if err != nil {
		t.Fatal(err)
	}
	want := AllSources{Drdy: true, WakeUp: true, FreeFall: true, SingleTap: true, SixD: true, SixDXL: true}
	if s != want {
		t.Errorf("AllSources = %+v, want %+v", s, want)
	}
	if r := f.reads(); !sameBytes(r, []byte{RegStatus, RegSixDSrc, RegWakeUpSrc, RegTapSrc}) {
		t.Errorf("reads % X", r)
	}
}

func TestTransportErrors(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)

	f.failRead[RegCtrl5] = true
	_, err := c.ModeGet()
	if !errors.Is(err, ErrTransport) || !errors.Is(err, errBus) {
		t.Errorf("ModeGet = %v, want transport error wrapping the bus error", err)
	}

	f.failRead[RegCtrl5] = false
	f.failWrite[RegCtrl3] = true
	if err := c.ModeSet(Mode{ODR: ODR100HzLP}); !errors.Is(err, ErrTransport) {
		t.Errorf("ModeSet = %v", err)
	}

	if _, err := NewCodec(nil).DeviceID(); !errors.Is(err, ErrTransport) {
		t.Errorf("unbound DeviceID = %v", err)
	}
}

func TestEmbeddedBankRestoredOnError(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	f.failRead[RegStepCounterL] = true

	if _, err := c.StepCounterSteps(); !errors.Is(err, errBus) {
		t.Errorf("StepCounterSteps = %v", err)
	}
	if b, _ := c.MemBankGet(); b != MainMemBank {
		t.Error("embedded bank left selected")
	}
}

func TestSelfTestSign(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)

	if err := c.SelfTestSignSet(true); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl3]&0x03 != 0x03 || f.main[RegWakeUpDur]&0x10 != 0 {
		t.Errorf("positive: CTRL3 = 0x%02X WAKE_UP_DUR = 0x%02X", f.main[RegCtrl3], f.main[RegWakeUpDur])
	}
	if err := c.SelfTestSignSet(false); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl3]&0x03 != 0 || f.main[RegWakeUpDur]&0x10 == 0 {
		t.Errorf("negative: CTRL3 = 0x%02X WAKE_UP_DUR = 0x%02X", f.main[RegCtrl3], f.main[RegWakeUpDur])
	}
	for _, step := range []uint8{0, 3} {
		if err := c.SelfTestStart(step); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SelfTestStart(%d) = %v", step, err)
		}
	}
}

func TestPinRoutes(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)

	rt1 := PinIntRoute{IntOnRes: true, Drdy: true, FIFOTh: true, WakeUp: true, SixD: true}
	if err := c.PinInt1RouteSet(rt1); err != nil {
		t.Fatal(err)
	}
	got, err := c.PinInt1RouteGet()
	if err != nil {
		t.Fatal(err)
	}
	if got != rt1 {
		t.Errorf("INT1 route = %+v, want %+v", got, rt1)
	}

	rt2 := PinIntRoute{IntOnRes: true, Boot: true, FreeFall: true, SleepChange: true}
	if err := c.PinInt2RouteSet(rt2); err != nil {
		t.Fatal(err)
	}
	got, err = c.PinInt2RouteGet()
	if err != nil {
		t.Fatal(err)
	}
	rt2.IntOnRes = false
	if got != rt2 {
		t.Errorf("INT2 route = %+v, want %+v", got, rt2)
	}
}

func TestInterruptConfig(t *testing.T) {
	c := NewCodec(newRegFile())
	for _, cfg := range []InterruptConfig{
		{Mode: IntLatched, SleepStatusOnInt: true},
		{Mode: IntLevel, DisRstLIRAllInt: true},
		{Mode: IntDisabled},
	} {
		if err := c.InterruptConfigSet(cfg); err != nil {
			t.Fatal(err)
		}
		got, err := c.InterruptConfigGet()
		if err != nil {
			t.Fatal(err)
		}
		if got != cfg {
			t.Errorf("InterruptConfigGet = %+v, want %+v", got, cfg)
		}
	}
	if err := c.InterruptConfigSet(InterruptConfig{Mode: 5}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("mode 5 = %v", err)
	}
}

func TestAhQvarMode(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	m := AhQvarMode{Enable: true, NotchEnable: true, Notch: Notch60Hz, Zin: Zin310MOhm, Gain: Gain2x}
	if err := c.AhQvarModeSet(m); err != nil {
		t.Fatal(err)
	}
	got, err := c.AhQvarModeGet()
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("AhQvarModeGet = %+v, want %+v", got, m)
	}
	if err := c.AhQvarModeSet(AhQvarMode{Gain: 4}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("gain 4 = %v", err)
	}
}

func TestI3CConfigure(t *testing.T) {
	f := newRegFile()
	f.main[RegI3CIfCtrl] = 0x80
	c := NewCodec(f)
	cfg := I3CConfig{BusActSel: I3CBusAvail1ms, AsfOn: true}
	if err := c.I3CConfigureSet(cfg); err != nil {
		t.Fatal(err)
	}
	if f.main[RegI3CIfCtrl] != 0xA2 {
		t.Errorf("I3C_IF_CTRL = 0x%02X, want 0xA2", f.main[RegI3CIfCtrl])
	}
	got, err := c.I3CConfigureGet()
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("I3CConfigureGet = %+v", got)
	}
}

func TestOutputData(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	copy(f.main[RegOutXL:], []byte{0xE8, 0x03, 0x18, 0xFC, 0x00, 0x00, 0xC7, 0x02})
	xl, err := c.XLData(FS2g)
	if err != nil {
		t.Fatal(err)
	}
	if xl.Raw != [3]int16{1000, -1000, 0} {
		t.Errorf("raw = %v", xl.Raw)
	}
	if !approx(xl.MG[0], 61) || !approx(xl.MG[1], -61) || xl.MG[2] != 0 {
		t.Errorf("mg = %v", xl.MG)
	}
	heat, err := c.OutTData()
	if err != nil {
		t.Fatal(err)
	}
	if heat.Raw != 711 || !approx(heat.DegC, 27) {
		t.Errorf("heat = %+v", heat)
	}
}

func TestTimestamp(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	copy(f.main[RegTimestamp0:], []byte{0x01, 0x02, 0x03, 0x04})
	ts, err := c.TimestampRaw()
	if err != nil {
		t.Fatal(err)
	}
	if ts != 0x04030201 {
		t.Errorf("timestamp = 0x%08X", ts)
	}
	if err := c.TimestampSet(true); err != nil {
		t.Fatal(err)
	}
	if f.main[RegInterruptCfg]&0x80 == 0 {
		t.Error("timestamp_en not set")
	}
}

func TestTriggerSW(t *testing.T) {
	f := newRegFile()
	c := NewCodec(f)
	if err := c.TriggerSW(Mode{ODR: ODR100HzLP}); err != nil {
		t.Fatal(err)
	}
	if len(f.log) != 0 {
		t.Error("TriggerSW touched the bus outside trigger mode")
	}
	if err := c.TriggerSW(Mode{ODR: ODRTrigSW}); err != nil {
		t.Fatal(err)
	}
	if f.main[RegCtrl4]&0x02 == 0 {
		t.Error("soc not set")
	}
}

func TestExitDeepPowerDown(t *testing.T) {
	f := newRegFile()
	if err := NewCodec(f).ExitDeepPowerDown(); err != nil {
		t.Fatal(err)
	}
	if f.main[RegIfWakeUp] != 0x01 {
		t.Errorf("IF_WAKE_UP = 0x%02X", f.main[RegIfWakeUp])
	}
}
