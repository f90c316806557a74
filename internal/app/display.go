package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
)

// DisplayData holds the latest data for display
type DisplayData struct {
	mu sync.RWMutex

	sample     motion.Sample
	haveSample bool

	pose     orientation.Pose
	havePose bool

	events     EventReport
	haveEvents bool
}

// addrBus sends every transaction to addr; ssd1306.NewI2C always targets
// 0x3C.
type addrBus struct {
	i2c.Bus
	addr uint16
}

func (b addrBus) Tx(_ uint16, w, r []byte) error { return b.Bus.Tx(b.addr, w, r) }

func RunDisplay() error {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(cfg.DisplayI2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(addrBus{Bus: bus, addr: cfg.DisplayI2CAddr}, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized at 0x%02X", cfg.DisplayI2CAddr)

	if err := dev.Draw(dev.Bounds(), renderSplash(cfg.SensorName), image.Point{}); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &DisplayData{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	topic, err := contentTopic(cfg, cfg.DisplayContent)
	if err != nil {
		return err
	}
	token := client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		if err := data.update(cfg.DisplayContent, msg.Payload()); err != nil {
			log.Printf("display: %s unmarshal error: %v", cfg.DisplayContent, err)
		}
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: subscribed to %s", topic)

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		img, err := data.render(cfg.DisplayContent)
		if err != nil {
			return err
		}
		if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}
	return nil
}

func contentTopic(cfg *config.Config, content string) (string, error) {
	switch content {
	case "sample":
		return cfg.TopicSample, nil
	case "pose":
		return cfg.TopicPose, nil
	case "events":
		return cfg.TopicEvents, nil
	}
	return "", fmt.Errorf("unknown display content type: %s", content)
}

// update stores a message for content.
func (d *DisplayData) update(content string, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch content {
	case "sample":
		if err := json.Unmarshal(payload, &d.sample); err != nil {
			return err
		}
		d.haveSample = true
	case "pose":
		if err := json.Unmarshal(payload, &d.pose); err != nil {
			return err
		}
		d.havePose = true
	case "events":
		if err := json.Unmarshal(payload, &d.events); err != nil {
			return err
		}
		d.haveEvents = true
	default:
		return fmt.Errorf("unknown display content type: %s", content)
	}
	return nil
}

func (d *DisplayData) render(content string) (*image1bit.VerticalLSB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	switch content {
	case "sample":
		if !d.haveSample {
			return renderLines("Acceleration", "Waiting..."), nil
		}
		a := d.sample.Acc
		return renderLines(
			fmt.Sprintf("X:%6d mg", a.X),
			fmt.Sprintf("Y:%6d mg", a.Y),
			fmt.Sprintf("Z:%6d mg", a.Z),
			fmt.Sprintf("%gHz %dg", d.sample.ODR, d.sample.FullScale),
		), nil
	case "pose":
		if !d.havePose {
			return renderLines("Orientation", "Waiting..."), nil
		}
		return renderLines(
			fmt.Sprintf("R: %6.1f", d.pose.Roll),
			fmt.Sprintf("P: %6.1f", d.pose.Pitch),
		), nil
	case "events":
		if !d.haveEvents {
			return renderLines("Events", "Waiting..."), nil
		}
		e := d.events
		return renderLines(
			"WU:"+onOff(e.WakeUp)+" FF:"+onOff(e.FreeFall),
			"6D:"+onOff(e.D6DOrientation)+" SL:"+onOff(e.Sleep),
			string(e.Face),
		), nil
	}
	return nil, fmt.Errorf("unknown display content type: %s", content)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "--"
}

// renderLines draws up to four lines of 7x13 text on a 128x64 image.
func renderLines(lines ...string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		if i == 4 {
			break
		}
		drawer.Dot = fixed.P(0, 13*(i+1))
		drawer.DrawBytes([]byte(line))
	}
	return img
}

func renderSplash(name string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("MEMS sensors"))

	drawer.Dot = fixed.P(10, 43)
	drawer.DrawBytes([]byte(name))

	return img
}
