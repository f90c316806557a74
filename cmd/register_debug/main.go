// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/relabs-tech/mems_sensors/internal/app"
	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/metrics"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

func main() {
	configPath := flag.String("config", "./mems_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting LIS2DUXS12 register debug tool (standalone)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Get()

	log.Println("Initializing sensor manager...")
	mgr := sensors.NewManager(cfg)
	if err := mgr.Open(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	defer mgr.Close()

	debug, err := app.NewRegisterDebugHandler(mgr, cfg.RegisterDebugAllowedRanges)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	m := metrics.NewSensor(mgr.Name())
	selfTest := &app.SelfTestHandler{
		Runner:   mgr,
		OnResult: func(res sensors.SelfTestResult) { m.ObserveSelfTest(res.Pass) },
	}

	http.HandleFunc("/ws", debug.ServeWS)
	http.HandleFunc("/ws/selftest", selfTest.ServeWS)

	// API endpoint for live sensor data
	http.HandleFunc("/api/sensor", debug.ServeSensor)
	http.Handle("/metrics", m.Handler())

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/register_debug.html")
	})

	addr := fmt.Sprintf(":%d", cfg.RegisterDebugPort)
	log.Printf("Register debug tool listening on %s", addr)
	log.Printf("Open http://localhost%s in your browser", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
