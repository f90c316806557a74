// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/motion"
	"github.com/relabs-tech/mems_sensors/internal/orientation"
	"github.com/relabs-tech/mems_sensors/internal/sensors"
)

const mockInstance uint32 = 0

// RunMockConsole prints readings of a simulated accelerometer, driven
// through the sensor registry, until interrupted.
func RunMockConsole() error {
	reg := sensors.NewRegistry()
	if err := reg.Register(mockInstance, "mock", sensors.NewMockSensor()); err != nil {
		return err
	}
	if err := reg.Init(mockInstance, motion.Accelero); err != nil {
		return err
	}
	if err := reg.Enable(mockInstance, motion.Accelero); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if err := printMockReading(os.Stdout, reg); err != nil {
			return err
		}
	}
	return nil
}

func printMockReading(w io.Writer, reg *sensors.Registry) error {
	acc, err := reg.GetAxes(mockInstance, motion.Accelero)
	if err != nil {
		return err
	}
	raw, err := reg.GetAxesRaw(mockInstance, motion.Accelero)
	if err != nil {
		return err
	}
	pose := orientation.PoseFromAxes(acc)
	_, err = fmt.Fprintf(w,
		"ax=%6d ay=%6d az=%6d mg  raw=%6d %6d %6d  ROLL=%6.2f  PITCH=%6.2f\n",
		acc.X, acc.Y, acc.Z,
		raw.X, raw.Y, raw.Z,
		pose.Roll,
		pose.Pitch,
	)
	return err
}
