package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
)

// webState keeps the latest message of each topic.
type webState struct {
	mu         sync.RWMutex
	lastPose   orientation.Pose
	havePose   bool
	lastSample motion.Sample
	haveSample bool
	lastEvents EventReport
	haveEvents bool
}

func (s *webState) onPose(_ mqtt.Client, msg mqtt.Message) {
	var p orientation.Pose
	if err := json.Unmarshal(msg.Payload(), &p); err != nil {
		log.Printf("MQTT payload unmarshal error (pose): %v", err)
		return
	}
	s.mu.Lock()
	s.lastPose, s.havePose = p, true
	s.mu.Unlock()
}

func (s *webState) onSample(_ mqtt.Client, msg mqtt.Message) {
	var smp motion.Sample
	if err := json.Unmarshal(msg.Payload(), &smp); err != nil {
		log.Printf("MQTT payload unmarshal error (sample): %v", err)
		return
	}
	s.mu.Lock()
	s.lastSample, s.haveSample = smp, true
	s.mu.Unlock()
}

func (s *webState) onEvents(_ mqtt.Client, msg mqtt.Message) {
	var e EventReport
	if err := json.Unmarshal(msg.Payload(), &e); err != nil {
		log.Printf("MQTT payload unmarshal error (events): %v", err)
		return
	}
	s.mu.Lock()
	s.lastEvents, s.haveEvents = e, true
	s.mu.Unlock()
}

// serveLatest encodes v when have is set, 503 otherwise.
func (s *webState) serveLatest(pick func() (interface{}, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		v, have := pick()
		s.mu.RUnlock()

		if !have {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("json encode error: %v", err)
		}
	}
}

func (s *webState) routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/orientation", s.serveLatest(func() (interface{}, bool) { return s.lastPose, s.havePose }))
	mux.HandleFunc("/api/sample", s.serveLatest(func() (interface{}, bool) { return s.lastSample, s.haveSample }))
	mux.HandleFunc("/api/events", s.serveLatest(func() (interface{}, bool) { return s.lastEvents, s.haveEvents }))
}

func RunWeb() error {
	cfg := config.Get()
	state := &webState{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("connected to MQTT broker at %s", cfg.MQTTBroker)

	for topic, handler := range map[string]mqtt.MessageHandler{
		cfg.TopicPose:   state.onPose,
		cfg.TopicSample: state.onSample,
		cfg.TopicEvents: state.onEvents,
	} {
		token := client.Subscribe(topic, 0, handler)
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("subscribed to MQTT topic %s", topic)
	}

	mux := http.NewServeMux()
	state.routes(mux)

	// Static files from ./web as the root
	mux.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
