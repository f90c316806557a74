package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/env"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
)

// consoleLine formats one message for the console. Each topic kind has its
// own payload type.
func consoleLine(kind string, payload []byte) (string, error) {
	switch kind {
	case "sample":
		var s motion.Sample
		if err := json.Unmarshal(payload, &s); err != nil {
			return "", err
		}
		return fmt.Sprintf("[ACC ] %s ax=%6d ay=%6d az=%6d mg  raw=%6d %6d %6d  %g Hz ±%dg",
			s.Source, s.Acc.X, s.Acc.Y, s.Acc.Z, s.Raw.X, s.Raw.Y, s.Raw.Z, s.ODR, s.FullScale), nil
	case "pose":
		var p orientation.Pose
		if err := json.Unmarshal(payload, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("[POSE]  ROLL=%6.2f  PITCH=%6.2f", p.Roll, p.Pitch), nil
	case "temperature":
		var t env.Sample
		if err := json.Unmarshal(payload, &t); err != nil {
			return "", err
		}
		return fmt.Sprintf("[TEMP] %s %.2f°C (%.2f°F)", t.Source, t.Temperature, t.TemperatureF), nil
	case "events":
		var e EventReport
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("[EVT ] %s wake_up=%v 6d=%v free_fall=%v sleep=%v face=%s",
			e.Source, e.WakeUp, e.D6DOrientation, e.FreeFall, e.Sleep, e.Face), nil
	case "steps":
		var s StepReport
		if err := json.Unmarshal(payload, &s); err != nil {
			return "", err
		}
		return fmt.Sprintf("[STEP] %s steps=%d", s.Source, s.Steps), nil
	case "fifo":
		var f FIFOReport
		if err := json.Unmarshal(payload, &f); err != nil {
			return "", err
		}
		return fmt.Sprintf("[FIFO] %s slots=%d acc_samples=%d", f.Source, f.Slots, len(f.Acc)), nil
	}
	return "", fmt.Errorf("unknown message kind %q", kind)
}

func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	for _, sub := range []struct{ kind, topic string }{
		{"sample", cfg.TopicSample},
		{"pose", cfg.TopicPose},
		{"temperature", cfg.TopicTemperature},
		{"events", cfg.TopicEvents},
		{"steps", cfg.TopicSteps},
		{"fifo", cfg.TopicFIFO},
	} {
		kind := sub.kind
		token := client.Subscribe(sub.topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			line, err := consoleLine(kind, msg.Payload())
			if err != nil {
				log.Printf("console: %s unmarshal error: %v", kind, err)
				return
			}
			fmt.Println(line)
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("console: subscribed to %s", sub.topic)
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
