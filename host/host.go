// Package host defines the services a host renderer provides to the overlay.
//
// The overlay never owns the scene, the camera matrices, the offscreen
// render or the GPU context; it reaches them only through these interfaces.
// All calls happen on the host's single render/event thread from inside the
// callbacks registered through Hooks.
package host

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/camera"
)

// Scene is the read side of the host scene graph.
type Scene interface {
	camera.Source

	// CameraMatrices returns the view and projection matrices the host
	// computed for the camera, column-major.
	CameraMatrices(id camera.ID) (view, proj [16]float32)
}

// TextureID is a host texture handle. Zero means no texture.
type TextureID uint32

// SurfaceDescriptor describes an offscreen colour buffer.
type SurfaceDescriptor struct {
	Label  string
	Size   gputypes.Extent3D
	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage
}

// Surface is a host-owned offscreen colour buffer.
// The overlay keeps the handle only; it never reads the pixels.
type Surface interface {
	Width() int
	Height() int
	// Texture returns the colour attachment as a bindable texture.
	Texture() TextureID
}

// Renderer renders the host scene into offscreen surfaces.
type Renderer interface {
	AllocateSurface(desc SurfaceDescriptor) (Surface, error)
	ReleaseSurface(s Surface)
	RenderSceneToSurface(s Surface, view, proj [16]float32) error
}

// Stage is a shader pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// ShaderID and ProgramID are host GPU handles. Zero is invalid.
type (
	ShaderID  uint32
	ProgramID uint32
)

// Rect is a pixel rectangle with its origin at the bottom-left corner of
// the window, as in GL viewport coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RenderState is the ambient GPU state the overlay touches and must restore.
type RenderState struct {
	Texture    TextureID
	Program    ProgramID
	Viewport   Rect
	Scissor    Rect
	Projection fisheye.Matrix
	ModelView  fisheye.Matrix
	// DepthTest is disabled while the overlay quad is drawn.
	DepthTest bool
}

// Vertex is one corner of a quad: position in object space and texture
// coordinate.
type Vertex struct {
	X, Y float32
	S, T float32
}

// Quad is a four-vertex fan.
type Quad [4]Vertex

// GPU is the immediate-mode GPU surface of the host.
type GPU interface {
	// CompileShader compiles one entry point of source for a stage. On
	// failure the error text carries the compiler log.
	CompileShader(stage Stage, entry, source string) (ShaderID, error)
	DeleteShader(s ShaderID)
	// LinkProgram links a vertex and fragment shader. The shaders may be
	// deleted once the program is linked.
	LinkProgram(vs, fs ShaderID) (ProgramID, error)
	DeleteProgram(p ProgramID)

	// UniformLocation returns -1 when the program has no such uniform.
	UniformLocation(p ProgramID, name string) int
	// SetUniformFloat and SetUniformInt apply to the program in use.
	// Location -1 is a no-op.
	SetUniformFloat(location int, v float32)
	SetUniformInt(location int, v int32)

	UseProgram(p ProgramID)
	BindTexture(unit int, tex TextureID)
	SetViewport(r Rect)
	SetScissor(r Rect)
	SetMatrices(projection, modelView fisheye.Matrix)
	SetDepthTest(enabled bool)
	DrawQuad(q Quad) error

	// State returns a snapshot of the ambient state; SetState restores it.
	State() RenderState
	SetState(s RenderState)
}

// FrameContext is passed to draw callbacks.
type FrameContext struct {
	// Frame is a monotonically increasing redraw counter.
	Frame uint64
	// Viewport is the region being redrawn.
	Viewport Rect
}

// Handle identifies a registered callback. Zero is never issued.
type Handle uint64

// Hooks is the host callback registry.
type Hooks interface {
	// AddDrawHandler registers fn to run once per viewport redraw.
	AddDrawHandler(fn func(FrameContext)) Handle
	// AddUpdateHandler registers fn to run once per scene mutation. Update
	// notifications are delivered before the next draw notification.
	AddUpdateHandler(fn func()) Handle
	// Remove deregisters a handler. Once Remove returns the handler never
	// runs again, even if a dispatch is in progress.
	Remove(h Handle)
}
