package soft

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/host"
	"github.com/gogpu/fisheye/shader"
)

// ErrNoProgram is returned by DrawQuad when no program is in use.
var ErrNoProgram = errors.New("soft: draw without a program in use")

type shaderObject struct {
	stage  host.Stage
	entry  string
	source string
}

type program struct {
	entry     string
	kernel    shader.Kernel
	locations map[string]int
	values    map[int]float64
}

// TextureSource resolves texture handles for sampling.
type TextureSource interface {
	Texture(id host.TextureID) (*Pixmap, bool)
}

// GPU is a software implementation of host.GPU. Fragment entry points run
// as the CPU kernels registered in package shader; the WGSL source is
// reflected for its bindings and, when validation is enabled, compiled
// with naga.
type GPU struct {
	fb       *Pixmap
	textures TextureSource
	validate bool

	shaders  map[host.ShaderID]shaderObject
	programs map[host.ProgramID]*program
	nextID   uint32

	state host.RenderState
	draws int
}

// NewGPU creates a GPU drawing into fb and sampling from textures.
func NewGPU(fb *Pixmap, textures TextureSource) *GPU {
	full := host.Rect{W: fb.Width(), H: fb.Height()}
	return &GPU{
		fb:       fb,
		textures: textures,
		shaders:  map[host.ShaderID]shaderObject{},
		programs: map[host.ProgramID]*program{},
		state: host.RenderState{
			Viewport:   full,
			Scissor:    full,
			Projection: fisheye.Identity(),
			ModelView:  fisheye.Identity(),
			DepthTest:  true,
		},
	}
}

// SetValidation enables naga compilation of every shader source.
func (g *GPU) SetValidation(on bool) {
	g.validate = on
}

// Draws returns the number of quads drawn.
func (g *GPU) Draws() int {
	return g.draws
}

// Programs returns the number of live programs.
func (g *GPU) Programs() int {
	return len(g.programs)
}

// CompileShader implements host.GPU.
func (g *GPU) CompileShader(stage host.Stage, entry, source string) (host.ShaderID, error) {
	refl := shader.Reflect(source)
	if !refl.HasEntry(entry, stage) {
		return 0, fmt.Errorf("soft: %s entry point %q not found", stage, entry)
	}
	if stage == host.StageFragment {
		if _, ok := shader.LookupKernel(entry); !ok {
			return 0, fmt.Errorf("soft: no CPU kernel for fragment entry %q", entry)
		}
	}
	if g.validate {
		if _, err := shader.ToSPIRV(source); err != nil {
			return 0, err
		}
	}
	g.nextID++
	id := host.ShaderID(g.nextID)
	g.shaders[id] = shaderObject{stage: stage, entry: entry, source: source}
	return id, nil
}

// DeleteShader implements host.GPU.
func (g *GPU) DeleteShader(s host.ShaderID) {
	delete(g.shaders, s)
}

// LinkProgram implements host.GPU.
func (g *GPU) LinkProgram(vs, fs host.ShaderID) (host.ProgramID, error) {
	v, ok := g.shaders[vs]
	if !ok || v.stage != host.StageVertex {
		return 0, fmt.Errorf("soft: link: shader %d is not a vertex shader", vs)
	}
	f, ok := g.shaders[fs]
	if !ok || f.stage != host.StageFragment {
		return 0, fmt.Errorf("soft: link: shader %d is not a fragment shader", fs)
	}
	kernel, _ := shader.LookupKernel(f.entry)

	// Uniforms come from the fragment module; the vertex stage reads none.
	p := &program{
		entry:     f.entry,
		kernel:    kernel,
		locations: map[string]int{},
		values:    map[int]float64{},
	}
	for i, name := range shader.Reflect(f.source).Names() {
		p.locations[name] = i
	}

	g.nextID++
	id := host.ProgramID(g.nextID)
	g.programs[id] = p
	return id, nil
}

// DeleteProgram implements host.GPU.
func (g *GPU) DeleteProgram(p host.ProgramID) {
	delete(g.programs, p)
	if g.state.Program == p {
		g.state.Program = 0
	}
}

// UniformLocation implements host.GPU.
func (g *GPU) UniformLocation(p host.ProgramID, name string) int {
	prog, ok := g.programs[p]
	if !ok {
		return -1
	}
	loc, ok := prog.locations[name]
	if !ok {
		return -1
	}
	return loc
}

// SetUniformFloat implements host.GPU.
func (g *GPU) SetUniformFloat(location int, v float32) {
	if prog, ok := g.programs[g.state.Program]; ok && location >= 0 {
		prog.values[location] = float64(v)
	}
}

// SetUniformInt implements host.GPU.
func (g *GPU) SetUniformInt(location int, v int32) {
	if prog, ok := g.programs[g.state.Program]; ok && location >= 0 {
		prog.values[location] = float64(v)
	}
}

// UseProgram implements host.GPU.
func (g *GPU) UseProgram(p host.ProgramID) { g.state.Program = p }

// BindTexture implements host.GPU. Only unit 0 exists.
func (g *GPU) BindTexture(unit int, tex host.TextureID) {
	if unit == 0 {
		g.state.Texture = tex
	}
}

// SetViewport implements host.GPU.
func (g *GPU) SetViewport(r host.Rect) { g.state.Viewport = r }

// SetScissor implements host.GPU.
func (g *GPU) SetScissor(r host.Rect) { g.state.Scissor = r }

// SetMatrices implements host.GPU.
func (g *GPU) SetMatrices(projection, modelView fisheye.Matrix) {
	g.state.Projection, g.state.ModelView = projection, modelView
}

// SetDepthTest implements host.GPU.
func (g *GPU) SetDepthTest(enabled bool) { g.state.DepthTest = enabled }

// State implements host.GPU.
func (g *GPU) State() host.RenderState { return g.state }

// SetState implements host.GPU.
func (g *GPU) SetState(s host.RenderState) { g.state = s }

// DrawQuad implements host.GPU. The quad is transformed by projection ×
// model-view into normalized device coordinates, mapped to the viewport and
// clipped to the scissor rectangle. Each covered pixel runs the program's
// kernel and is composited source-over.
func (g *GPU) DrawQuad(q host.Quad) error {
	prog, ok := g.programs[g.state.Program]
	if !ok {
		return ErrNoProgram
	}
	inv, ok := g.state.Projection.Multiply(g.state.ModelView).Invert()
	if !ok {
		return fmt.Errorf("soft: singular transform")
	}

	minX, maxX, minY, maxY := quadBounds(q)
	if maxX <= minX || maxY <= minY {
		return nil
	}

	uniforms := shader.Uniforms{}
	for name, loc := range prog.locations {
		if v, ok := prog.values[loc]; ok {
			uniforms[name] = v
		}
	}
	var sampler fisheye.Sampler
	if tex, ok := g.textures.Texture(g.state.Texture); ok {
		sampler = fisheye.ImageSampler{Image: tex}
	}

	vp := g.state.Viewport
	clip := vp.Intersect(g.state.Scissor).Intersect(host.Rect{W: g.fb.Width(), H: g.fb.Height()})
	for y := clip.Y; y < clip.Y+clip.H; y++ {
		ny := 2*(float64(y-vp.Y)+0.5)/float64(vp.H) - 1
		for x := clip.X; x < clip.X+clip.W; x++ {
			nx := 2*(float64(x-vp.X)+0.5)/float64(vp.W) - 1
			obj := inv.TransformPoint(fisheye.Pt(nx, ny))
			fx := (obj.X - minX) / (maxX - minX)
			fy := (obj.Y - minY) / (maxY - minY)
			if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
				continue
			}
			s, t := interpolate(q, minX, maxX, minY, maxY, fx, fy)
			c, ok := prog.kernel(uniforms, s, t, sampler)
			if !ok {
				continue
			}
			// Viewport space has y up; pixmap rows run top-down.
			g.fb.BlendRGBA(x, g.fb.Height()-1-y, c)
		}
	}
	g.draws++
	return nil
}

func quadBounds(q host.Quad) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range q {
		minX = math.Min(minX, float64(v.X))
		maxX = math.Max(maxX, float64(v.X))
		minY = math.Min(minY, float64(v.Y))
		maxY = math.Max(maxY, float64(v.Y))
	}
	return minX, maxX, minY, maxY
}

// interpolate blends the vertex texture coordinates bilinearly at the
// normalized position (fx, fy) inside the quad's bounding box.
func interpolate(q host.Quad, minX, maxX, minY, maxY, fx, fy float64) (s, t float64) {
	for _, v := range q {
		cx := (float64(v.X) - minX) / (maxX - minX)
		cy := (float64(v.Y) - minY) / (maxY - minY)
		w := (1 - math.Abs(fx-cx)) * (1 - math.Abs(fy-cy))
		s += w * float64(v.S)
		t += w * float64(v.T)
	}
	return s, t
}

// Clear fills the framebuffer, ignoring viewport and scissor.
func (g *GPU) Clear(c color.RGBA) {
	g.fb.Clear(c)
}

var _ host.GPU = (*GPU)(nil)
