package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/mems_sensors/internal/app"
	"github.com/relabs-tech/mems_sensors/internal/config"
)

func main() {
	configPath := flag.String("config", "./mems_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting mems-sensors console (MQTT subscriber)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsoleMQTT(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
