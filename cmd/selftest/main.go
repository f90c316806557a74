// ./cmd/selftest/main.go
//
// Runs the LIS2DUXS12 accelerometer self-test once from the command line.
// The board must lie still. Prints the averaged readings as JSON and
// exits with status 1 when any axis is out of limits.
//
// Run:
//
//	sudo ./selftest -config ./mems_config.txt
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/config"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

func main() {
	configPath := flag.String("config", "./mems_config.txt", "path to configuration file")
	timeout := flag.Duration("timeout", 10*time.Second, "abort the self-test after this long")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	mgr := sensors.NewManager(config.Get())
	if err := mgr.Open(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	defer mgr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("%s: running self-test, keep the sensor still", mgr.Name())
	res, err := mgr.SelfTest(ctx)
	if err != nil && !errors.Is(err, sensors.ErrSelfTestFailed) {
		mgr.Close()
		log.Fatalf("self-test: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(res); encErr != nil {
		log.Printf("json encode error: %v", encErr)
	}

	if err != nil {
		log.Printf("FAIL: %v", err)
		mgr.Close()
		os.Exit(1)
	}
	log.Println("PASS")
}
