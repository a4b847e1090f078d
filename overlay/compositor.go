package overlay

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host"
	"github.com/gogpu/fisheye/shader"
)

// errNotInitialized is returned by RenderFrame before a successful Initialize.
var errNotInitialized = errors.New("fisheye: overlay not initialized")

// surfaceLabel names the offscreen surface in host diagnostics.
const surfaceLabel = "fisheye-offscreen"

// quad covers the overlay viewport in NDC. Texture coordinates put (0, 0)
// at the lower-left corner.
var quad = host.Quad{
	{X: 1, Y: 1, S: 1, T: 1},
	{X: -1, Y: 1, S: 0, T: 1},
	{X: -1, Y: -1, S: 0, T: 0},
	{X: 1, Y: -1, S: 1, T: 0},
}

// State is the externally observable overlay state.
type State struct {
	Enabled bool
	// TrackedCamera is the camera the parameters were last read from.
	TrackedCamera camera.ID
}

// Compositor is the fisheye overlay of one host session.
//
// It is not safe for concurrent use. Every method must run on the host
// render thread, which is also where the host dispatches the callbacks the
// compositor registers.
type Compositor struct {
	scene    host.Scene
	renderer host.Renderer
	gpu      host.GPU
	hooks    host.Hooks
	opts     options

	tracker *camera.Tracker
	enabled bool

	// Owned while initialized.
	surface host.Surface
	program *shader.Program
	binder  *shader.Binder

	// Owned while enabled.
	drawHook   host.Handle
	updateHook host.Handle
}

// New creates a disabled compositor on top of the host services.
func New(scene host.Scene, renderer host.Renderer, gpu host.GPU, hooks host.Hooks, opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Compositor{
		scene:    scene,
		renderer: renderer,
		gpu:      gpu,
		hooks:    hooks,
		opts:     o,
		tracker:  camera.NewTracker(),
	}
}

// Enabled reports whether the overlay is drawing.
func (c *Compositor) Enabled() bool {
	return c.enabled
}

// State returns a snapshot of the overlay state.
func (c *Compositor) State() State {
	return State{Enabled: c.enabled, TrackedCamera: c.tracker.Tracked()}
}

// Params returns the fisheye parameters the next frame will use.
func (c *Compositor) Params() fisheye.Params {
	return c.tracker.Params()
}

// Toggle flips the overlay on or off.
//
// Disabling always succeeds: both callbacks are removed and every GPU
// resource is released. Enabling runs Initialize; a failure is passed to
// the reporter once, returned, and leaves the overlay disabled with no
// callback registered.
func (c *Compositor) Toggle() error {
	if c.enabled {
		c.disable()
		return nil
	}
	if err := c.Initialize(); err != nil {
		fisheye.Logger().Error("fisheye: overlay activation failed", "error", err)
		c.opts.reporter(err)
		return err
	}
	c.updateHook = c.hooks.AddUpdateHandler(c.OnSceneUpdate)
	c.drawHook = c.hooks.AddDrawHandler(c.draw)
	c.enabled = true
	fisheye.Logger().Info("fisheye: overlay enabled",
		"mode", c.opts.mode, "camera", c.tracker.Tracked(), "params", c.tracker.Params().String())
	return nil
}

func (c *Compositor) disable() {
	c.hooks.Remove(c.drawHook)
	c.hooks.Remove(c.updateHook)
	c.drawHook, c.updateHook = 0, 0
	c.release()
	c.enabled = false
	fisheye.Logger().Info("fisheye: overlay disabled")
}

// release frees everything Initialize acquired. It is safe to call on a
// partially initialized compositor.
func (c *Compositor) release() {
	if c.opts.validator != nil {
		c.opts.validator.Release()
	}
	c.program.Release(c.gpu)
	c.program, c.binder = nil, nil
	if c.surface != nil {
		c.renderer.ReleaseSurface(c.surface)
		c.surface = nil
	}
}

// Initialize acquires the offscreen surface and the fisheye program and
// reads the active camera. Hosts normally reach it through Toggle.
//
// Surface failures wrap fisheye.ErrSurfaceAllocation; program failures are
// *fisheye.ShaderError values. Whatever was acquired before a failure is
// released again. An unsupported camera is not an error: the parameters
// fall back to fisheye.DefaultParams and a warning is logged.
func (c *Compositor) Initialize() error {
	c.release()

	width := c.opts.surfaceWidth
	height := max(1, int(math.Round(float64(width)/c.renderAspect())))
	s, err := c.renderer.AllocateSurface(host.SurfaceDescriptor{
		Label:  surfaceLabel,
		Size:   gputypes.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("%w: %dx%d: %w", fisheye.ErrSurfaceAllocation, width, height, err)
	}
	c.surface = s

	p, err := shader.Build(c.gpu, c.opts.source, c.opts.mode)
	if err != nil {
		c.release()
		return err
	}
	c.program = p
	c.binder = shader.NewBinder(c.gpu, p)

	if v := c.opts.validator; v != nil {
		if err := v.Validate(surfaceLabel, c.opts.source); err != nil {
			c.release()
			return &fisheye.ShaderError{Stage: "native", Entry: p.Entry, Log: err.Error(), Err: fisheye.ErrShaderCompile}
		}
	}

	if err := c.tracker.Sync(c.scene); err != nil {
		fisheye.Logger().Warn("fisheye: using default parameters", "reason", err)
	}
	return nil
}

// OnSceneUpdate is the scene-update callback. It resyncs the camera
// parameters when the active camera changed or was edited.
func (c *Compositor) OnSceneUpdate() {
	changed, err := c.tracker.Observe(c.scene)
	if !changed {
		return
	}
	if err != nil {
		fisheye.Logger().Warn("fisheye: using fallback parameters", "reason", err)
		return
	}
	fisheye.Logger().Debug("fisheye: camera changed",
		"camera", c.tracker.Tracked(), "params", c.tracker.Params().String())
}

func (c *Compositor) draw(fc host.FrameContext) {
	if err := c.RenderFrame(fc); err != nil {
		fisheye.Logger().Error("fisheye: overlay frame failed", "frame", fc.Frame, "error", err)
	}
}

// RenderFrame renders the scene into the offscreen surface and composites
// it through the fisheye program into the lower-left corner of the
// viewport. The overlay is scale × viewport width wide and keeps the render
// aspect ratio.
//
// The GPU state is restored before RenderFrame returns, whether or not a
// step failed.
func (c *Compositor) RenderFrame(fc host.FrameContext) error {
	if c.surface == nil || c.program == nil {
		return errNotInitialized
	}
	saved := c.gpu.State()
	defer c.gpu.SetState(saved)

	view, proj := c.scene.CameraMatrices(c.tracker.Tracked())
	if err := c.renderer.RenderSceneToSurface(c.surface, view, proj); err != nil {
		return fmt.Errorf("fisheye: render offscreen: %w", err)
	}

	c.gpu.UseProgram(c.program.ID)
	c.gpu.BindTexture(0, c.surface.Texture())
	c.binder.SetTextureUnit(shader.UniformColorBuffer, 0)
	c.binder.BindParams(c.tracker.Params(), sourceFOV(proj, c.opts.sourceFOV))

	r := c.overlayRect(fc.Viewport)
	if r.Empty() {
		return nil
	}
	c.gpu.SetDepthTest(false)
	c.gpu.SetViewport(r)
	c.gpu.SetScissor(r)
	c.gpu.SetMatrices(fisheye.Ortho(-1, 1, -1, 1), fisheye.Identity())
	if err := c.gpu.DrawQuad(quad); err != nil {
		return fmt.Errorf("fisheye: draw overlay: %w", err)
	}
	return nil
}

// overlayRect places the overlay at the viewport origin. The height follows
// the current render aspect ratio, which the host may change at any time.
func (c *Compositor) overlayRect(vp host.Rect) host.Rect {
	w := int(math.Round(c.opts.scale * float64(vp.W)))
	h := int(math.Round(float64(w) / c.renderAspect()))
	return host.Rect{X: vp.X, Y: vp.Y, W: w, H: h}
}

// renderAspect returns the render aspect ratio, or 1 when the host reports
// a degenerate one.
func (c *Compositor) renderAspect() float64 {
	a := c.scene.RenderSettings().AspectRatio()
	if a <= 0 || math.IsInf(a, 0) || math.IsNaN(a) {
		return 1
	}
	return a
}

// Close disables the overlay. It is called once at session shutdown.
func (c *Compositor) Close() error {
	if c.enabled {
		c.disable()
	}
	return nil
}

// sourceFOV reads the horizontal field of view from a column-major
// perspective projection. Other projections yield fallback.
func sourceFOV(proj [16]float32, fallback float64) float64 {
	if proj[11] != -1 || proj[15] != 0 || proj[0] <= 0 {
		return fallback
	}
	return 2 * math.Atan(1/float64(proj[0]))
}
