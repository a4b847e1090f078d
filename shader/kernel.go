package shader

import (
	"image/color"

	"github.com/gogpu/fisheye"
)

// Uniforms holds the values a software host bound for one draw.
// Unbound names read as zero, like freshly linked GPU uniforms.
type Uniforms map[string]float64

// Params assembles fisheye parameters from the uniforms.
func (u Uniforms) Params() fisheye.Params {
	return fisheye.Params{
		Lens:         u[UniformLens],
		FOV:          u[UniformFOV],
		SensorWidth:  u[UniformSensorWidth],
		SensorHeight: u[UniformSensorHeight],
	}
}

// Kernel is the CPU form of a fragment entry point. It returns false where
// the fragment is clipped.
type Kernel func(u Uniforms, s, t float64, tex fisheye.Sampler) (color.RGBA, bool)

var kernels = map[string]Kernel{
	EntryDebug: debugKernel,
	EntryRemap: remapKernel,
}

// LookupKernel returns the CPU kernel for a fragment entry point.
func LookupKernel(entry string) (Kernel, bool) {
	k, ok := kernels[entry]
	return k, ok
}

func debugKernel(u Uniforms, s, t float64, _ fisheye.Sampler) (color.RGBA, bool) {
	p := u.Params()
	x, y := fisheye.SensorPoint(s, t, p)
	phi, theta, ok := fisheye.EquisolidAngles(x, y, p.Lens, p.FOV)
	if !ok {
		return color.RGBA{}, false
	}
	return fisheye.DebugColor(phi, theta), true
}

func remapKernel(u Uniforms, s, t float64, tex fisheye.Sampler) (color.RGBA, bool) {
	if tex == nil {
		return color.RGBA{}, false
	}
	return fisheye.RemapPixel(tex, s, t, u.Params(), u[UniformSourceFOV])
}
