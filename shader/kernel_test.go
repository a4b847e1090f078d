package shader

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/fisheye"
)

type solidSampler color.RGBA

func (s solidSampler) Sample(_, _ float64) color.RGBA { return color.RGBA(s) }

func defaultUniforms() Uniforms {
	p := fisheye.DefaultParams()
	return Uniforms{
		UniformLens:         p.Lens,
		UniformFOV:          p.FOV,
		UniformSensorWidth:  p.SensorWidth,
		UniformSensorHeight: p.SensorHeight,
		UniformSourceFOV:    math.Pi / 2,
	}
}

func TestDebugKernelCentre(t *testing.T) {
	k, ok := LookupKernel(EntryDebug)
	if !ok {
		t.Fatal("no kernel for fs_debug")
	}
	c, ok := k(defaultUniforms(), 0.5, 0.5, nil)
	if !ok {
		t.Fatal("centre fragment clipped")
	}
	if c != fisheye.DebugColor(0, 0) {
		t.Errorf("centre = %v, want %v", c, fisheye.DebugColor(0, 0))
	}
}

func TestDebugKernelClipsOutsideCircle(t *testing.T) {
	k, _ := LookupKernel(EntryDebug)
	u := defaultUniforms()
	u[UniformFOV] = math.Pi / 4 // rmax ≈ 7.0, corner radius ≈ 18.4
	if _, ok := k(u, 0, 0, nil); ok {
		t.Error("corner fragment outside the image circle was not clipped")
	}
}

func TestDebugKernelMissingFOV(t *testing.T) {
	k, _ := LookupKernel(EntryDebug)
	u := defaultUniforms()
	delete(u, UniformFOV)
	// rmax collapses to zero: only the exact centre survives.
	if _, ok := k(u, 0.5, 0.5, nil); !ok {
		t.Error("centre clipped with fov unbound")
	}
	if _, ok := k(u, 0.6, 0.5, nil); ok {
		t.Error("off-centre fragment drawn with fov unbound")
	}
}

func TestRemapKernel(t *testing.T) {
	k, ok := LookupKernel(EntryRemap)
	if !ok {
		t.Fatal("no kernel for fs_remap")
	}
	blue := solidSampler{B: 255, A: 255}
	c, ok := k(defaultUniforms(), 0.5, 0.5, blue)
	if !ok || c != color.RGBA(blue) {
		t.Errorf("centre = %v, %v; want %v", c, ok, color.RGBA(blue))
	}
	if _, ok := k(defaultUniforms(), 0, 0, blue); ok {
		t.Error("corner beyond the source field of view was drawn")
	}
	if _, ok := k(defaultUniforms(), 0.5, 0.5, nil); ok {
		t.Error("remap without a texture should clip")
	}
}

func TestRemapKernelKeepsTransparentTexels(t *testing.T) {
	k, _ := LookupKernel(EntryRemap)
	clear := solidSampler{}
	c, ok := k(defaultUniforms(), 0.5, 0.5, clear)
	if !ok {
		t.Error("transparent texel inside the source was clipped")
	}
	if c != (color.RGBA{}) {
		t.Errorf("centre = %v, want transparent", c)
	}
}

func TestLookupKernelUnknown(t *testing.T) {
	if _, ok := LookupKernel("fs_missing"); ok {
		t.Error("LookupKernel(fs_missing) = true")
	}
}
