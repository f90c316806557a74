// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
	"time"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock orientation source for a board swaying
// around level. Poses go through a simulated mg reading, so they carry the
// same 1 mg quantization as a real sensor.
func NewMockSource() Source {
	return newMockSourceAt(time.Now)
}

func newMockSourceAt(now func() time.Time) *mockSource {
	return &mockSource{start: now(), now: now}
}

// gravity returns the reading in mg of a still board at roll and pitch
// (degrees).
func gravity(roll, pitch float64) motion.Axes {
	r := roll * math.Pi / 180
	p := pitch * math.Pi / 180
	return motion.Axes{
		X: int32(math.Round(-1000 * math.Sin(p))),
		Y: int32(math.Round(1000 * math.Sin(r) * math.Cos(p))),
		Z: int32(math.Round(1000 * math.Cos(r) * math.Cos(p))),
	}
}

func (m *mockSource) Next() (Pose, error) {
	elapsed := m.now().Sub(m.start).Seconds()
	return PoseFromAxes(gravity(20*math.Sin(elapsed), 15*math.Cos(elapsed*0.7))), nil
}
