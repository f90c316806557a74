package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/mems_sensors/internal/bus"
	"github.com/relabs-tech/mems_sensors/internal/lis2duxs12"
	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicSample      string
	TopicPose        string
	TopicEvents      string
	TopicTemperature string
	TopicSteps       string
	TopicFIFO        string

	// Sensor bus
	SensorName       string
	SensorBusDriver  string // "periph" or "sysfs"
	SensorBusType    bus.Type
	SensorI2CBus     string
	SensorI2CAddr    uint16
	SensorSPIDevice  string
	SensorSPISpeedHz int64

	// Sensor operating point
	SensorODRHz      float32
	SensorPowerMode  lis2duxs12.PowerMode
	SensorFullScaleG int32
	FIFOWatermark    uint8 // 0 keeps the FIFO in bypass

	// Events
	EventIntPin       motion.IntPin
	WakeUpEnabled     bool
	WakeUpThresholdMg uint32
	WakeUpDuration    uint8 // 0-3
	SixDEnabled       bool
	SixDThreshold     uint8 // 0=80°, 1=70°, 2=60°, 3=50°
	FreeFallEnabled   bool
	PedometerEnabled  bool

	// Self-test
	SelfTestMinMg    float32
	SelfTestMaxMg    float32
	SelfTestSamples  int
	SelfTestSettleMs int

	// Timing
	SampleInterval     int // milliseconds
	ConsoleLogInterval int // milliseconds

	// Servers
	WebServerPort              int
	MetricsPort                int
	RegisterDebugPort          int
	RegisterDebugAllowedRanges string // e.g. "0x10-0x1F,0x3F"; empty allows all RW registers

	// Display
	DisplayI2CBus         string
	DisplayI2CAddr        uint16
	DisplayUpdateInterval int    // milliseconds
	DisplayContent        string // what to show: "sample", "pose", "events"
}

// DisplayContents lists the accepted DISPLAY_CONTENT values.
var DisplayContents = []string{"sample", "pose", "events"}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: only reachable through Get, so every reader takes the lock.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// defaults returns the values used for keys missing from the file.
func defaults() *Config {
	return &Config{
		MQTTClientIDProducer: "mems-sensor-producer",
		MQTTClientIDConsole:  "mems-console-subscriber",
		MQTTClientIDWeb:      "mems-web-subscriber",
		MQTTClientIDDisplay:  "mems-display-subscriber",

		TopicSample:      "mems/sample",
		TopicPose:        "mems/pose",
		TopicEvents:      "mems/events",
		TopicTemperature: "mems/temperature",
		TopicSteps:       "mems/steps",
		TopicFIFO:        "mems/fifo",

		SensorName:       "lis2duxs12",
		SensorBusDriver:  bus.DriverPeriph,
		SensorBusType:    bus.I2C,
		SensorI2CAddr:    0x19,
		SensorSPISpeedHz: 1_000_000,
		SensorODRHz:      100,
		SensorPowerMode:  lis2duxs12.LowPower,
		SensorFullScaleG: 2,
		EventIntPin:      motion.Int1Pin,
		SelfTestMinMg:    50,
		SelfTestMaxMg:    700,
		SelfTestSamples:  5,
		SelfTestSettleMs: 100,

		WebServerPort:     8080,
		RegisterDebugPort: 8081,
		MetricsPort:       9100,

		DisplayI2CAddr:        0x3C,
		DisplayUpdateInterval: 500,
		DisplayContent:        "sample",
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads KEY=VALUE lines from r. Missing keys keep their defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := defaults()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intInRange(key, value string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be %d-%d, got %d", key, lo, hi, v)
	}
	return v, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func parseFloat(key, value string) (float32, error) {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return float32(f), nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_SAMPLE":
		c.TopicSample = value
	case "TOPIC_POSE":
		c.TopicPose = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value
	case "TOPIC_TEMPERATURE":
		c.TopicTemperature = value
	case "TOPIC_STEPS":
		c.TopicSteps = value
	case "TOPIC_FIFO":
		c.TopicFIFO = value

	// Sensor bus
	case "SENSOR_NAME":
		c.SensorName = value
	case "SENSOR_BUS_DRIVER":
		if value != bus.DriverPeriph && value != bus.DriverSysfs {
			return fmt.Errorf("SENSOR_BUS_DRIVER must be %q or %q, got %q", bus.DriverPeriph, bus.DriverSysfs, value)
		}
		c.SensorBusDriver = value
	case "SENSOR_BUS_TYPE":
		t, err := bus.ParseType(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_BUS_TYPE: %w", err)
		}
		c.SensorBusType = t
	case "SENSOR_I2C_BUS":
		c.SensorI2CBus = value
	case "SENSOR_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 7)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_I2C_ADDR %q: %w", value, err)
		}
		c.SensorI2CAddr = uint16(addr)
	case "SENSOR_SPI_DEVICE":
		c.SensorSPIDevice = value
	case "SENSOR_SPI_SPEED_HZ":
		hz, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_SPI_SPEED_HZ %q: %w", value, err)
		}
		if hz <= 0 || hz > 10_000_000 {
			return fmt.Errorf("SENSOR_SPI_SPEED_HZ must be 1-10000000, got %d", hz)
		}
		c.SensorSPISpeedHz = hz

	// Sensor operating point
	case "SENSOR_ODR_HZ":
		hz, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if hz < 0 {
			return fmt.Errorf("SENSOR_ODR_HZ must not be negative, got %g", hz)
		}
		c.SensorODRHz = hz
	case "SENSOR_POWER_MODE":
		pm, err := lis2duxs12.ParsePowerMode(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_POWER_MODE: %w", err)
		}
		c.SensorPowerMode = pm
	case "SENSOR_FULL_SCALE_G":
		g, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SENSOR_FULL_SCALE_G %q: %w", value, err)
		}
		switch g {
		case 2, 4, 8, 16:
		default:
			return fmt.Errorf("SENSOR_FULL_SCALE_G must be 2, 4, 8 or 16, got %d", g)
		}
		c.SensorFullScaleG = int32(g)
	case "FIFO_WATERMARK":
		v, err := intInRange(key, value, 0, 127)
		if err != nil {
			return err
		}
		c.FIFOWatermark = uint8(v)

	// Events
	case "EVENT_INT_PIN":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid EVENT_INT_PIN %q: %w", value, err)
		}
		pin, err := motion.ParseIntPin(n)
		if err != nil {
			return err
		}
		c.EventIntPin = pin
	case "WAKE_UP_ENABLED":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.WakeUpEnabled = b
	case "WAKE_UP_THRESHOLD_MG":
		v, err := intInRange(key, value, 0, 16000)
		if err != nil {
			return err
		}
		c.WakeUpThresholdMg = uint32(v)
	case "WAKE_UP_DURATION":
		v, err := intInRange(key, value, 0, 3)
		if err != nil {
			return err
		}
		c.WakeUpDuration = uint8(v)
	case "SIXD_ENABLED":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.SixDEnabled = b
	case "SIXD_THRESHOLD":
		v, err := intInRange(key, value, 0, 3)
		if err != nil {
			return err
		}
		c.SixDThreshold = uint8(v)
	case "FREE_FALL_ENABLED":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.FreeFallEnabled = b
	case "PEDOMETER_ENABLED":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.PedometerEnabled = b

	// Self-test
	case "SELF_TEST_MIN_MG":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		c.SelfTestMinMg = v
	case "SELF_TEST_MAX_MG":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		c.SelfTestMaxMg = v
	case "SELF_TEST_SAMPLES":
		v, err := intInRange(key, value, 1, 100)
		if err != nil {
			return err
		}
		c.SelfTestSamples = v
	case "SELF_TEST_SETTLE_MS":
		v, err := intInRange(key, value, 0, 5000)
		if err != nil {
			return err
		}
		c.SelfTestSettleMs = v

	// Timing
	case "SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.SampleInterval = interval
	case "CONSOLE_LOG_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CONSOLE_LOG_INTERVAL %q: %w", value, err)
		}
		c.ConsoleLogInterval = interval

	// Servers
	case "WEB_SERVER_PORT":
		port, err := intInRange(key, value, 1, 65535)
		if err != nil {
			return err
		}
		c.WebServerPort = port
	case "METRICS_PORT":
		port, err := intInRange(key, value, 1, 65535)
		if err != nil {
			return err
		}
		c.MetricsPort = port
	case "REGISTER_DEBUG_PORT":
		port, err := intInRange(key, value, 1, 65535)
		if err != nil {
			return err
		}
		c.RegisterDebugPort = port
	case "REGISTER_DEBUG_ALLOWED_RANGES":
		c.RegisterDebugAllowedRanges = value

	// Display
	case "DISPLAY_I2C_BUS":
		c.DisplayI2CBus = value
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval
	case "DISPLAY_CONTENT":
		for _, dc := range DisplayContents {
			if value == dc {
				c.DisplayContent = value
				return nil
			}
		}
		return fmt.Errorf("DISPLAY_CONTENT must be one of %v, got %q", DisplayContents, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	switch c.SensorBusType {
	case bus.I2C:
		if c.SensorBusDriver == bus.DriverSysfs && c.SensorI2CBus == "" {
			return fmt.Errorf("SENSOR_I2C_BUS is required with the sysfs driver")
		}
	case bus.SPI4Wire, bus.SPI3Wire:
		if c.SensorBusDriver == bus.DriverSysfs {
			return fmt.Errorf("SENSOR_BUS_DRIVER=sysfs only supports i2c")
		}
		if c.SensorSPIDevice == "" {
			return fmt.Errorf("SENSOR_SPI_DEVICE is required for %s", c.SensorBusType)
		}
	}
	if c.SelfTestMinMg >= c.SelfTestMaxMg {
		return fmt.Errorf("SELF_TEST_MIN_MG (%g) must be below SELF_TEST_MAX_MG (%g)", c.SelfTestMinMg, c.SelfTestMaxMg)
	}
	if c.SampleInterval == 0 {
		return fmt.Errorf("SAMPLE_INTERVAL is required")
	}
	if c.ConsoleLogInterval == 0 {
		return fmt.Errorf("CONSOLE_LOG_INTERVAL is required")
	}
	return nil
}

// BusOptions returns the options for opening the sensor bus.
func (c *Config) BusOptions() bus.Options {
	return bus.Options{
		Driver:     c.SensorBusDriver,
		Type:       c.SensorBusType,
		I2CBus:     c.SensorI2CBus,
		I2CAddr:    c.SensorI2CAddr,
		SPIDevice:  c.SensorSPIDevice,
		SPISpeedHz: c.SensorSPISpeedHz,
	}
}

// InitGlobal initializes the global configuration from file.
// Only the first call loads; later calls return nil.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
