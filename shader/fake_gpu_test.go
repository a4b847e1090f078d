package shader

import (
	"errors"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/host"
)

// fakeGPU implements host.GPU for testing. Programs expose the uniforms
// listed in uniforms; compile and link failures are injected by entry name.
type fakeGPU struct {
	uniforms    []string
	failCompile map[string]string
	failLink    bool

	nextID          uint32
	deletedShaders  int
	deletedPrograms []host.ProgramID
	floats          map[int]float32
	ints            map[int]int32
	state           host.RenderState
}

func newFakeGPU(uniforms ...string) *fakeGPU {
	return &fakeGPU{
		uniforms:    uniforms,
		failCompile: map[string]string{},
		floats:      map[int]float32{},
		ints:        map[int]int32{},
	}
}

func (g *fakeGPU) CompileShader(_ host.Stage, entry, _ string) (host.ShaderID, error) {
	if log, ok := g.failCompile[entry]; ok {
		return 0, errors.New(log)
	}
	g.nextID++
	return host.ShaderID(g.nextID), nil
}

func (g *fakeGPU) DeleteShader(host.ShaderID) { g.deletedShaders++ }

func (g *fakeGPU) LinkProgram(_, _ host.ShaderID) (host.ProgramID, error) {
	if g.failLink {
		return 0, errors.New("varying texcoord not written")
	}
	g.nextID++
	return host.ProgramID(g.nextID), nil
}

func (g *fakeGPU) DeleteProgram(p host.ProgramID) { g.deletedPrograms = append(g.deletedPrograms, p) }

func (g *fakeGPU) UniformLocation(_ host.ProgramID, name string) int {
	for i, u := range g.uniforms {
		if u == name {
			return i
		}
	}
	return -1
}

func (g *fakeGPU) SetUniformFloat(loc int, v float32) { g.floats[loc] = v }
func (g *fakeGPU) SetUniformInt(loc int, v int32)     { g.ints[loc] = v }

func (g *fakeGPU) UseProgram(p host.ProgramID)           { g.state.Program = p }
func (g *fakeGPU) BindTexture(_ int, tex host.TextureID) { g.state.Texture = tex }
func (g *fakeGPU) SetViewport(r host.Rect)               { g.state.Viewport = r }
func (g *fakeGPU) SetScissor(r host.Rect)                { g.state.Scissor = r }
func (g *fakeGPU) SetDepthTest(on bool)                  { g.state.DepthTest = on }
func (g *fakeGPU) SetMatrices(p, mv fisheye.Matrix)      { g.state.Projection, g.state.ModelView = p, mv }
func (g *fakeGPU) DrawQuad(host.Quad) error              { return nil }
func (g *fakeGPU) State() host.RenderState               { return g.state }
func (g *fakeGPU) SetState(s host.RenderState)           { g.state = s }

var _ host.GPU = (*fakeGPU)(nil)
