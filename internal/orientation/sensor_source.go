package orientation

import (
	"fmt"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// SampleReader is implemented by sensors.Manager.
type SampleReader interface {
	ReadSample() (motion.Sample, error)
}

type sensorSource struct {
	r SampleReader
}

// NewSensorSource returns a Source that estimates tilt from each
// accelerometer sample.
func NewSensorSource(r SampleReader) Source {
	return &sensorSource{r: r}
}

func (s *sensorSource) Next() (Pose, error) {
	sample, err := s.r.ReadSample()
	if err != nil {
		return Pose{}, fmt.Errorf("pose: %w", err)
	}
	return PoseFromAxes(sample.Acc), nil
}
