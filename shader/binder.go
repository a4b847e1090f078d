package shader

import (
	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/host"
)

// Binder maps uniform names to setters for one program.
//
// Names the program does not expose have no setter and are skipped
// silently, so the overlay tolerates shader variants that drop a uniform.
type Binder struct {
	floats   map[string]func(float32)
	samplers map[string]func(int32)
}

// NewBinder resolves the uniform locations of p.
func NewBinder(gpu host.GPU, p *Program) *Binder {
	b := &Binder{
		floats:   map[string]func(float32){},
		samplers: map[string]func(int32){},
	}
	for _, name := range p.Reflection.Uniforms {
		if loc := gpu.UniformLocation(p.ID, name); loc >= 0 {
			b.floats[name] = func(v float32) { gpu.SetUniformFloat(loc, v) }
		}
	}
	for _, name := range p.Reflection.Textures {
		if loc := gpu.UniformLocation(p.ID, name); loc >= 0 {
			b.samplers[name] = func(v int32) { gpu.SetUniformInt(loc, v) }
		}
	}
	return b
}

// Has reports whether the program exposes the uniform.
func (b *Binder) Has(name string) bool {
	_, f := b.floats[name]
	_, s := b.samplers[name]
	return f || s
}

// SetFloat sets a float uniform, reporting whether it exists.
func (b *Binder) SetFloat(name string, v float64) bool {
	set, ok := b.floats[name]
	if ok {
		set(float32(v))
	}
	return ok
}

// SetTextureUnit points a texture uniform at a texture unit.
func (b *Binder) SetTextureUnit(name string, unit int) bool {
	set, ok := b.samplers[name]
	if ok {
		set(int32(unit))
	}
	return ok
}

// BindParams pushes the fisheye parameters and the source field of view.
func (b *Binder) BindParams(p fisheye.Params, sourceFOV float64) {
	b.SetFloat(UniformLens, p.Lens)
	b.SetFloat(UniformFOV, p.FOV)
	b.SetFloat(UniformSensorWidth, p.SensorWidth)
	b.SetFloat(UniformSensorHeight, p.SensorHeight)
	b.SetFloat(UniformSourceFOV, sourceFOV)
}
