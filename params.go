package fisheye

import (
	"fmt"
	"math"
)

// Default fisheye parameters used whenever no equisolid camera is available.
const (
	DefaultLens         = 18.0
	DefaultFOV          = math.Pi
	DefaultSensorWidth  = 32.0
	DefaultSensorHeight = 18.0
)

// Params describes an equisolid fisheye camera.
//
// Lens is the focal length in millimetres, FOV the full field of view in
// radians and SensorWidth/SensorHeight the effective sensor size after the
// sensor fit has been applied. The four fields are either all valid or the
// structure holds DefaultParams.
type Params struct {
	Lens         float64
	FOV          float64
	SensorWidth  float64
	SensorHeight float64
}

// DefaultParams returns the fallback parameters: 18mm, 180 degrees, 32x18.
func DefaultParams() Params {
	return Params{
		Lens:         DefaultLens,
		FOV:          DefaultFOV,
		SensorWidth:  DefaultSensorWidth,
		SensorHeight: DefaultSensorHeight,
	}
}

// Valid reports whether every field is in range:
// positive lens and sensor, fov in (0, 2π].
func (p Params) Valid() bool {
	return p.Lens > 0 &&
		p.FOV > 0 && p.FOV <= 2*math.Pi &&
		p.SensorWidth > 0 && p.SensorHeight > 0
}

// MaxRadius returns the radius of the valid image circle on the sensor,
// 2·lens·sin(fov/4).
func (p Params) MaxRadius() float64 {
	return MaxRadius(p.Lens, p.FOV)
}

// Aspect returns SensorWidth / SensorHeight, or 1 for a degenerate sensor.
func (p Params) Aspect() float64 {
	if p.SensorHeight <= 0 {
		return 1
	}
	return p.SensorWidth / p.SensorHeight
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("lens=%.2fmm fov=%.1f° sensor=%.2fx%.2f",
		p.Lens, p.FOV*180/math.Pi, p.SensorWidth, p.SensorHeight)
}
