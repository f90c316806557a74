package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relabs-tech/mems_sensors/internal/bus"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

const minimal = `
# broker
MQTT_BROKER=tcp://localhost:1883
SAMPLE_INTERVAL=50
CONSOLE_LOG_INTERVAL=1000
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(minimal))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MQTTBroker != "tcp://localhost:1883" || cfg.SampleInterval != 50 {
		t.Errorf("parsed %+v", cfg)
	}
	if cfg.SensorBusType != bus.I2C || cfg.SensorI2CAddr != 0x19 || cfg.SensorBusDriver != bus.DriverPeriph {
		t.Errorf("bus defaults = %v 0x%X %q", cfg.SensorBusType, cfg.SensorI2CAddr, cfg.SensorBusDriver)
	}
	if cfg.SensorODRHz != 100 || cfg.SensorFullScaleG != 2 || cfg.SensorPowerMode != lis2duxs12.LowPower {
		t.Errorf("operating point defaults = %g Hz %d g %v", cfg.SensorODRHz, cfg.SensorFullScaleG, cfg.SensorPowerMode)
	}
}

func TestParseSensorKeys(t *testing.T) {
	in := minimal + `
SENSOR_BUS_TYPE=spi3
SENSOR_SPI_DEVICE=/dev/spidev0.1
SENSOR_SPI_SPEED_HZ=4000000
SENSOR_ODR_HZ=12.5
SENSOR_POWER_MODE=hp
SENSOR_FULL_SCALE_G=8
FIFO_WATERMARK=32
EVENT_INT_PIN=2
WAKE_UP_ENABLED=true
WAKE_UP_THRESHOLD_MG=63
WAKE_UP_DURATION=3
SIXD_ENABLED=1
SIXD_THRESHOLD=2
FREE_FALL_ENABLED=false
PEDOMETER_ENABLED=true
REGISTER_DEBUG_ALLOWED_RANGES=0x10-0x1F, 0x3F
DISPLAY_CONTENT=events
`
	cfg, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	opts := cfg.BusOptions()
	if opts.Type != bus.SPI3Wire || opts.SPIDevice != "/dev/spidev0.1" || opts.SPISpeedHz != 4_000_000 {
		t.Errorf("bus options = %+v", opts)
	}
	if cfg.SensorODRHz != 12.5 || cfg.SensorPowerMode != lis2duxs12.HighPerformance || cfg.SensorFullScaleG != 8 {
		t.Errorf("operating point = %g %v %d", cfg.SensorODRHz, cfg.SensorPowerMode, cfg.SensorFullScaleG)
	}
	if cfg.EventIntPin != motion.Int2Pin || !cfg.WakeUpEnabled || cfg.WakeUpThresholdMg != 63 || cfg.WakeUpDuration != 3 {
		t.Errorf("wake-up = %v %v %d %d", cfg.EventIntPin, cfg.WakeUpEnabled, cfg.WakeUpThresholdMg, cfg.WakeUpDuration)
	}
	if !cfg.SixDEnabled || cfg.SixDThreshold != 2 || cfg.FreeFallEnabled || !cfg.PedometerEnabled {
		t.Errorf("events = %+v", cfg)
	}
	if cfg.FIFOWatermark != 32 || cfg.DisplayContent != "events" {
		t.Errorf("fifo %d display %q", cfg.FIFOWatermark, cfg.DisplayContent)
	}
	if cfg.RegisterDebugAllowedRanges != "0x10-0x1F, 0x3F" {
		t.Errorf("ranges = %q", cfg.RegisterDebugAllowedRanges)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"no equals", "SENSOR_NAME", "invalid config line"},
		{"unknown key", "IMU_LEFT_CS_PIN=GPIO8", "unknown config key"},
		{"bus type", "SENSOR_BUS_TYPE=can", "SENSOR_BUS_TYPE"},
		{"bus driver", "SENSOR_BUS_DRIVER=libusb", "SENSOR_BUS_DRIVER"},
		{"i2c addr", "SENSOR_I2C_ADDR=0x80", "SENSOR_I2C_ADDR"},
		{"full scale", "SENSOR_FULL_SCALE_G=3", "SENSOR_FULL_SCALE_G"},
		{"power mode", "SENSOR_POWER_MODE=turbo", "SENSOR_POWER_MODE"},
		{"negative odr", "SENSOR_ODR_HZ=-1", "SENSOR_ODR_HZ"},
		{"watermark", "FIFO_WATERMARK=128", "FIFO_WATERMARK must be 0-127"},
		{"int pin", "EVENT_INT_PIN=3", "interrupt pin"},
		{"sixd", "SIXD_THRESHOLD=4", "SIXD_THRESHOLD"},
		{"duration", "WAKE_UP_DURATION=x", "invalid WAKE_UP_DURATION"},
		{"bool", "WAKE_UP_ENABLED=maybe", "WAKE_UP_ENABLED"},
		{"port", "METRICS_PORT=70000", "METRICS_PORT"},
		{"display", "DISPLAY_CONTENT=gps", "DISPLAY_CONTENT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(minimal + tc.line + "\n"))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing broker", "SAMPLE_INTERVAL=1\nCONSOLE_LOG_INTERVAL=1\n", "MQTT_BROKER"},
		{"missing interval", "MQTT_BROKER=x\nCONSOLE_LOG_INTERVAL=1\n", "SAMPLE_INTERVAL"},
		{"spi without device", minimal + "SENSOR_BUS_TYPE=spi4\n", "SENSOR_SPI_DEVICE"},
		{"sysfs spi", minimal + "SENSOR_BUS_TYPE=spi4\nSENSOR_SPI_DEVICE=x\nSENSOR_BUS_DRIVER=sysfs\n", "only supports i2c"},
		{"sysfs without bus", minimal + "SENSOR_BUS_DRIVER=sysfs\n", "SENSOR_I2C_BUS"},
		{"self-test limits", minimal + "SELF_TEST_MIN_MG=800\n", "SELF_TEST_MIN_MG"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestLoadAndGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	if err := os.WriteFile(path, []byte(minimal+"SENSOR_NAME=left\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
	if err := InitGlobal(path); err != nil {
		t.Fatal(err)
	}
	if got := Get(); got == nil || got.SensorName != "left" {
		t.Fatalf("Get() = %+v", got)
	}
	// later calls keep the first configuration
	if err := InitGlobal(filepath.Join(t.TempDir(), "other.env")); err != nil {
		t.Errorf("second InitGlobal = %v", err)
	}
	if Get().SensorName != "left" {
		t.Error("global config replaced")
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "mems_config.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SensorI2CAddr != 0x19 || cfg.TopicFIFO != "mems/fifo" || cfg.RegisterDebugAllowedRanges != "" {
		t.Errorf("shipped config = %+v", cfg)
	}
}
