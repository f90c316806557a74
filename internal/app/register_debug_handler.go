// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

// registerDevice is the part of sensors.Manager the debugger drives.
type registerDevice interface {
	Name() string
	GetRegisterMap() []sensors.RegisterInfo
	ReadRegister(addr byte) (byte, error)
	WriteRegister(addr, value byte) error
	ReadAllRegisters() (map[byte]byte, error)
	ExportRegisterConfig() (map[byte]byte, error)
	Reinitialize() error
	ReadSample() (motion.Sample, error)
}

// RegisterDebugHandler serves the register debugger for one sensor.
type RegisterDebugHandler struct {
	dev      registerDevice
	allowed  []addrRange
	writable map[byte]bool
}

// RegisterDebugSession holds WebSocket connection state for register debugging
type RegisterDebugSession struct {
	Conn *websocket.Conn
	h    *RegisterDebugHandler
}

// RegisterCmd is any command sent by the debugger page.
type RegisterCmd struct {
	Action  string `json:"action"` // get_map, read, read_all, write, init, export_config
	Address string `json:"addr,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Response types
type RegisterResponse struct {
	Type        string                 `json:"type"` // "register_data", "register_map", "status", "error"
	Device      string                 `json:"device,omitempty"`
	Address     string                 `json:"addr,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Registers   map[string]string      `json:"registers,omitempty"` // for bulk read
	Timestamp   string                 `json:"timestamp,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Status      string                 `json:"status,omitempty"`
	RegisterMap []sensors.RegisterInfo `json:"register_map,omitempty"`
}

// RegisterConfigFile represents the JSON structure for exported register configuration
type RegisterConfigFile struct {
	Version   int               `json:"version"`
	Device    string            `json:"device"`
	Sensor    string            `json:"sensor"`
	Timestamp string            `json:"timestamp"`
	Registers map[string]string `json:"registers"` // hex address -> hex value
}

const debugDevice = "lis2duxs12"

// NewRegisterDebugHandler parses allowedRanges ("0x10-0x1F,0x3F"). Writes
// must hit a writable register of the map and, when ranges are given, one
// of the ranges.
func NewRegisterDebugHandler(dev registerDevice, allowedRanges string) (*RegisterDebugHandler, error) {
	allowed, err := parseAddrRanges(allowedRanges)
	if err != nil {
		return nil, err
	}
	writable := make(map[byte]bool)
	for _, r := range dev.GetRegisterMap() {
		addr, err := sensors.ParseAddress(r.Address)
		if err != nil {
			return nil, err
		}
		writable[addr] = r.Writable()
	}
	return &RegisterDebugHandler{dev: dev, allowed: allowed, writable: writable}, nil
}

// ServeWS handles the WebSocket connection for register debugging
func (h *RegisterDebugHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("register_debug: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &RegisterDebugSession{Conn: conn, h: h}

	// Send register map on connection
	if err := session.sendRegisterMap(); err != nil {
		log.Printf("register_debug: error sending register map: %v", err)
		return
	}

	for {
		var cmd RegisterCmd
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("register_debug: websocket error: %v", err)
			}
			break
		}

		switch cmd.Action {
		case "":
			session.sendError("missing or invalid action field")
		case "get_map":
			session.sendRegisterMap()
		case "read":
			session.handleRead(cmd)
		case "read_all":
			session.handleReadAll()
		case "write":
			session.handleWrite(cmd)
		case "init":
			session.handleInit()
		case "export_config":
			session.handleExportConfig()
		default:
			session.sendError(fmt.Sprintf("unknown action: %s", cmd.Action))
		}
	}
}

func (s *RegisterDebugSession) handleRead(cmd RegisterCmd) {
	if cmd.Address == "" {
		s.sendError("missing addr field")
		return
	}
	addr, err := sensors.ParseAddress(cmd.Address)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	if sensors.ReadPopsFIFO(addr) {
		s.sendError(fmt.Sprintf("register 0x%02X not readable: %v", addr, sensors.ErrReadPopsFIFO))
		return
	}
	value, err := s.h.dev.ReadRegister(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}
	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Device:    debugDevice,
		Address:   hexByte(addr),
		Value:     hexByte(value),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *RegisterDebugSession) handleReadAll() {
	registers, err := s.h.dev.ReadAllRegisters()
	if err != nil {
		s.sendError(fmt.Sprintf("read all error: %v", err))
		return
	}
	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Device:    debugDevice,
		Registers: hexMap(registers),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *RegisterDebugSession) handleWrite(cmd RegisterCmd) {
	if cmd.Address == "" || cmd.Value == "" {
		s.sendError("missing addr or value field")
		return
	}
	addr, err := sensors.ParseAddress(cmd.Address)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	value, err := sensors.ParseAddress(cmd.Value)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", cmd.Value))
		return
	}
	if !s.h.isRegisterWritable(addr) {
		s.sendError(fmt.Sprintf("register 0x%02X not in allowed write ranges", addr))
		return
	}
	if err := s.h.dev.WriteRegister(addr, value); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}
	log.Printf("register_debug: wrote 0x%02X to 0x%02X", value, addr)

	s.Conn.WriteJSON(RegisterResponse{
		Type:      "register_data",
		Device:    debugDevice,
		Address:   hexByte(addr),
		Value:     hexByte(value),
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	})
}

func (s *RegisterDebugSession) handleInit() {
	if err := s.h.dev.Reinitialize(); err != nil {
		s.sendError(fmt.Sprintf("reinit error: %v", err))
		return
	}
	s.Conn.WriteJSON(RegisterResponse{
		Type:    "status",
		Device:  debugDevice,
		Status:  "initialized",
		Message: "sensor reinitialized successfully",
	})
}

func (s *RegisterDebugSession) handleExportConfig() {
	registers, err := s.h.dev.ExportRegisterConfig()
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}

	now := time.Now()
	configFile := RegisterConfigFile{
		Version:   1,
		Device:    debugDevice,
		Sensor:    s.h.dev.Name(),
		Timestamp: now.Format(time.RFC3339),
		Registers: hexMap(registers),
	}
	configJSON, err := json.Marshal(configFile)
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}
	s.Conn.WriteJSON(map[string]interface{}{
		"type":     "export_config",
		"message":  "config exported",
		"config":   string(configJSON),
		"filename": fmt.Sprintf("%s_%s_registers.json", s.h.dev.Name(), now.Format("20060102_150405")),
	})
}

func (s *RegisterDebugSession) sendRegisterMap() error {
	return s.Conn.WriteJSON(RegisterResponse{
		Type:        "register_map",
		Device:      debugDevice,
		RegisterMap: s.h.dev.GetRegisterMap(),
	})
}

func (s *RegisterDebugSession) sendError(message string) {
	s.Conn.WriteJSON(RegisterResponse{
		Type:    "error",
		Message: message,
	})
}

// ServeSensor serves one live sample as JSON.
func (h *RegisterDebugHandler) ServeSensor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sample, err := h.dev.ReadSample()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(sample)
}

// isRegisterWritable checks if a register address is in the allowed write ranges
func (h *RegisterDebugHandler) isRegisterWritable(addr byte) bool {
	if !h.writable[addr] {
		return false
	}
	if len(h.allowed) == 0 {
		return true
	}
	for _, r := range h.allowed {
		if addr >= r.lo && addr <= r.hi {
			return true
		}
	}
	return false
}

type addrRange struct{ lo, hi byte }

// parseAddrRanges parses "0x10-0x1F, 0x3F". Empty input gives no ranges.
func parseAddrRanges(s string) ([]addrRange, error) {
	var out []addrRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := sensors.ParseAddress(lo)
		if err != nil {
			return nil, fmt.Errorf("allowed ranges: %w", err)
		}
		b := a
		if isRange {
			if b, err = sensors.ParseAddress(hi); err != nil {
				return nil, fmt.Errorf("allowed ranges: %w", err)
			}
		}
		if b < a {
			return nil, fmt.Errorf("allowed ranges: %q ends before it starts", part)
		}
		out = append(out, addrRange{a, b})
	}
	return out, nil
}

func hexByte(b byte) string { return fmt.Sprintf("0x%02X", b) }

func hexMap(regs map[byte]byte) map[string]string {
	out := make(map[string]string, len(regs))
	for addr, value := range regs {
		out[hexByte(addr)] = hexByte(value)
	}
	return out
}
