package orientation

import (
	"math"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

// Pose is the tilt of the board in degrees. Yaw stays 0: an accelerometer
// alone cannot observe heading.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Source is anything that can provide poses over time.
type Source interface {
	Next() (Pose, error)
}

// ComputePoseFromAccel computes roll and pitch from accelerometer data in
// any unit:
//
//	roll  = atan2(ay, az)
//	pitch = atan2(-ax, sqrt(ay² + az²))
func ComputePoseFromAccel(ax, ay, az float64) Pose {
	rollRad := math.Atan2(ay, az)
	pitchRad := math.Atan2(-ax, math.Sqrt(ay*ay+az*az))

	return Pose{
		Roll:  rollRad * 180.0 / math.Pi,
		Pitch: pitchRad * 180.0 / math.Pi,
	}
}

// PoseFromAxes is ComputePoseFromAccel for a reading in mg.
func PoseFromAxes(a motion.Axes) Pose {
	return ComputePoseFromAccel(float64(a.X), float64(a.Y), float64(a.Z))
}

// Face is the board face pointing up, as reported by the 6D detector.
type Face string

const (
	FaceUnknown Face = "unknown"
	FaceXUp     Face = "x_up"
	FaceXDown   Face = "x_down"
	FaceYUp     Face = "y_up"
	FaceYDown   Face = "y_down"
	FaceZUp     Face = "z_up"
	FaceZDown   Face = "z_down"
)

// FaceFromSixD maps the 6D source flags to a face. Zero or several flags
// give FaceUnknown.
func FaceFromSixD(o motion.SixDOrientation) Face {
	face := FaceUnknown
	n := 0
	for _, f := range []struct {
		set  bool
		face Face
	}{
		{o.XH, FaceXUp}, {o.XL, FaceXDown},
		{o.YH, FaceYUp}, {o.YL, FaceYDown},
		{o.ZH, FaceZUp}, {o.ZL, FaceZDown},
	} {
		if f.set {
			face = f.face
			n++
		}
	}
	if n != 1 {
		return FaceUnknown
	}
	return face
}
