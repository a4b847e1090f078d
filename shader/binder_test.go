package shader

import (
	"math"
	"testing"

	"github.com/gogpu/fisheye"
)

func TestBinderBindParams(t *testing.T) {
	gpu := newFakeGPU(UniformLens, UniformFOV, UniformSensorWidth, UniformSensorHeight, UniformSourceFOV, UniformColorBuffer)
	p, err := Build(gpu, Source, ModeRemap)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBinder(gpu, p)
	b.BindParams(fisheye.DefaultParams(), math.Pi/2)

	want := map[int]float32{0: 18, 1: math.Pi, 2: 32, 3: 18, 4: math.Pi / 2}
	for loc, v := range want {
		if gpu.floats[loc] != v {
			t.Errorf("uniform %d = %v, want %v", loc, gpu.floats[loc], v)
		}
	}

	if !b.SetTextureUnit(UniformColorBuffer, 0) {
		t.Error("SetTextureUnit(color_buffer) = false")
	}
	if v, ok := gpu.ints[5]; !ok || v != 0 {
		t.Errorf("color_buffer unit = %v (set=%v), want 0", v, ok)
	}
}

func TestBinderSkipsMissingUniform(t *testing.T) {
	// The host program lacks fov.
	gpu := newFakeGPU(UniformLens, UniformSensorWidth, UniformSensorHeight)
	p, err := Build(gpu, Source, ModeDebug)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBinder(gpu, p)

	if b.Has(UniformFOV) {
		t.Error("Has(fov) = true for a program without fov")
	}
	if b.SetFloat(UniformFOV, 1) {
		t.Error("SetFloat(fov) = true for a missing uniform")
	}
	b.BindParams(fisheye.DefaultParams(), 1)
	if len(gpu.floats) != 3 {
		t.Errorf("%d uniforms written, want 3: %v", len(gpu.floats), gpu.floats)
	}
	if b.SetTextureUnit(UniformColorBuffer, 0) {
		t.Error("SetTextureUnit() = true for a missing sampler")
	}
}
