// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// SelfTestRunner is implemented by sensors.Manager.
type SelfTestRunner interface {
	Name() string
	SelfTest(ctx context.Context) (sensors.SelfTestResult, error)
}

// SelfTestHandler runs the accelerometer self-test from the browser and
// saves each report under Dir.
type SelfTestHandler struct {
	Runner SelfTestRunner
	Dir    string
	// OnResult is called after every completed run.
	OnResult func(sensors.SelfTestResult)

	mu sync.Mutex // one self-test at a time
}

// SelfTestReport is the saved JSON file.
type SelfTestReport struct {
	Version   int                    `json:"version"`
	Sensor    string                 `json:"sensor"`
	Timestamp time.Time              `json:"timestamp"`
	Result    sensors.SelfTestResult `json:"result"`
	Error     string                 `json:"error,omitempty"`
}

// WebSocket message types
type WSMessage struct {
	Action string `json:"action"` // start, cancel
}

type WSResponse struct {
	Type    string      `json:"type"` // phase, complete, error
	Phase   string      `json:"phase,omitempty"`
	Results interface{} `json:"results,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ServeWS handles the WebSocket connection for the self-test.
func (h *SelfTestHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("selftest: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("selftest: websocket read error: %v", err)
			}
			return
		}

		switch msg.Action {
		case "start":
			h.run(r.Context(), conn)
		case "cancel":
			log.Printf("selftest: cancelled by user")
			return
		default:
			conn.WriteJSON(WSResponse{Type: "error", Message: fmt.Sprintf("unknown action: %s", msg.Action)})
		}
	}
}

func (h *SelfTestHandler) run(ctx context.Context, conn *websocket.Conn) {
	if !h.mu.TryLock() {
		conn.WriteJSON(WSResponse{Type: "error", Message: "self-test already running"})
		return
	}
	defer h.mu.Unlock()

	conn.WriteJSON(WSResponse{Type: "phase", Phase: "running", Message: "keep the sensor still"})

	res, runErr := h.Runner.SelfTest(ctx)
	if runErr != nil && !errors.Is(runErr, sensors.ErrSelfTestFailed) {
		conn.WriteJSON(WSResponse{Type: "error", Message: runErr.Error()})
		return
	}
	if h.OnResult != nil {
		h.OnResult(res)
	}

	filename, err := h.save(res, runErr)
	if err != nil {
		conn.WriteJSON(WSResponse{Type: "error", Message: err.Error()})
		return
	}
	log.Printf("selftest: %s pass=%v delta=%+v mg, saved %s", h.Runner.Name(), res.Pass, res.Delta, filename)

	conn.WriteJSON(WSResponse{
		Type:    "complete",
		Results: map[string]interface{}{"filename": filename, "result": res},
	})
}

func (h *SelfTestHandler) save(res sensors.SelfTestResult, runErr error) (string, error) {
	report := SelfTestReport{
		Version:   1,
		Sensor:    h.Runner.Name(),
		Timestamp: time.Now(),
		Result:    res,
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal self-test report: %w", err)
	}

	dir := h.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	filename := fmt.Sprintf("%s_%d_selftest.json", report.Sensor, report.Timestamp.UnixNano())
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write self-test report: %w", err)
	}
	return filename, nil
}
