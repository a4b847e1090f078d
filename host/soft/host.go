// Package soft is a pure-Go host for the fisheye overlay.
//
// It renders into an in-memory framebuffer: the scene renderer scales a
// backdrop image into offscreen surfaces, the GPU interprets the fisheye
// program with CPU kernels, and Frame drives the update and draw callbacks
// the way an interactive host would. It backs the package tests and the
// fisheyedemo command.
package soft

import (
	"image"
	"image/color"

	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host"
)

// Background is the colour the viewport is cleared to before each frame.
var Background = color.RGBA{R: 48, G: 48, B: 48, A: 255}

// Option configures a Host during creation.
type Option func(*Host)

// WithBackdrop sets the image the scene renderer draws into surfaces.
func WithBackdrop(img image.Image) Option {
	return func(h *Host) {
		h.backdrop = img
	}
}

// WithShaderValidation compiles every shader source with naga before it is
// accepted.
func WithShaderValidation(on bool) Option {
	return func(h *Host) {
		h.validate = on
	}
}

// WithRenderSettings sets the initial render resolution settings.
func WithRenderSettings(rs camera.RenderSettings) Option {
	return func(h *Host) {
		h.settings = &rs
	}
}

// Host bundles a scene, renderer, GPU and hook registry around one
// framebuffer.
type Host struct {
	fb       *Pixmap
	scene    *Scene
	renderer *Renderer
	gpu      *GPU
	hooks    *Hooks

	backdrop image.Image
	validate bool
	settings *camera.RenderSettings
	frame    uint64
}

// NewHost creates a host with a width × height viewport.
func NewHost(width, height int, opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	h.fb = NewPixmap(width, height)
	h.scene = NewScene()
	if h.settings != nil {
		h.scene.SetRenderSettings(*h.settings)
	}
	h.renderer = NewRenderer(h.scene, h.backdrop)
	h.gpu = NewGPU(h.fb, h.renderer)
	h.gpu.SetValidation(h.validate)
	h.hooks = NewHooks()
	return h
}

// Scene returns the host scene.
func (h *Host) Scene() *Scene { return h.scene }

// Renderer returns the host scene renderer.
func (h *Host) Renderer() *Renderer { return h.renderer }

// GPU returns the host GPU.
func (h *Host) GPU() *GPU { return h.gpu }

// Hooks returns the host callback registry.
func (h *Host) Hooks() *Hooks { return h.hooks }

// Framebuffer returns the viewport pixels.
func (h *Host) Framebuffer() *Pixmap { return h.fb }

// Viewport returns the full window rectangle.
func (h *Host) Viewport() host.Rect {
	return host.Rect{W: h.fb.Width(), H: h.fb.Height()}
}

// Frame runs one host iteration: pending scene changes are announced to
// update handlers, the viewport is cleared, then draw handlers run.
func (h *Host) Frame() {
	if h.scene.takeChanged() {
		h.hooks.DispatchUpdate()
	}
	h.frame++
	h.gpu.Clear(Background)
	h.hooks.DispatchDraw(host.FrameContext{Frame: h.frame, Viewport: h.Viewport()})
}
