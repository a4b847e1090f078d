package fisheye

import (
	"image/color"
	"math"
)

// MaxRadius returns the image circle radius 2·lens·sin(fov/4) of an
// equisolid lens.
func MaxRadius(lens, fov float64) float64 {
	return 2 * lens * math.Sin(fov/4)
}

// SensorPoint maps a texture coordinate (s, t) in [0,1]² to a point on the
// sensor, centred on the optical axis.
func SensorPoint(s, t float64, p Params) (u, v float64) {
	return (s - 0.5) * p.SensorWidth, (t - 0.5) * p.SensorHeight
}

// EquisolidAngles is the forward equisolid-angle fisheye projection.
//
// Given a sensor point (u, v) it returns the azimuth phi and the polar angle
// theta of the incoming ray, where r = 2·lens·sin(theta/2). valid is false
// when the point lies outside the image circle of radius MaxRadius(lens, fov);
// phi and theta are then zero.
//
// phi = acos(u/r), negated when v < 0, so phi takes the sign of v (and is 0
// at the centre). Callers expecting the opposite orientation negate it.
func EquisolidAngles(u, v, lens, fov float64) (phi, theta float64, valid bool) {
	if lens <= 0 {
		return 0, 0, false
	}
	r := math.Hypot(u, v)
	if r > MaxRadius(lens, fov) {
		return 0, 0, false
	}
	if r > 0 {
		phi = math.Acos(clampUnit(u / r))
		if v < 0 {
			phi = -phi
		}
	}
	theta = 2 * math.Asin(clampUnit(r/(2*lens)))
	return phi, theta, true
}

// Direction returns the unit ray for azimuth phi and polar angle theta,
// with +Z along the optical axis.
func Direction(phi, theta float64) (x, y, z float64) {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return st * cp, st * sp, ct
}

// ProjectPerspective projects the ray (x, y, z) into the texture space of a
// perspective image with horizontal field of view hfov and the given
// width/height aspect. ok is false for rays behind the camera or outside the
// image.
func ProjectPerspective(x, y, z, hfov, aspect float64) (s, t float64, ok bool) {
	if z <= 0 || hfov <= 0 || hfov >= math.Pi || aspect <= 0 {
		return 0, 0, false
	}
	tanHalf := math.Tan(hfov / 2)
	s = 0.5 + 0.5*x/(z*tanHalf)
	t = 0.5 + 0.5*y*aspect/(z*tanHalf)
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return 0, 0, false
	}
	return s, t, true
}

// DebugColor encodes the angles of a valid pixel as a colour: red carries
// phi over [-π, π], green carries theta over [0, π], blue is a constant tint.
// This is the diagnostic output of the fisheye shader's debug entry point.
func DebugColor(phi, theta float64) color.RGBA {
	return color.RGBA{
		R: unitByte(phi/(2*math.Pi) + 0.5),
		G: unitByte(theta / math.Pi),
		B: unitByte(DebugTint),
		A: 255,
	}
}

// DebugTint is the constant blue channel of DebugColor.
const DebugTint = 0.5

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func unitByte(x float64) uint8 {
	x = math.Max(0, math.Min(1, x))
	return uint8(math.Round(x * 255))
}
