package overlay

import (
	"math"

	"github.com/gogpu/fisheye/shader"
)

const (
	// DefaultScale is the overlay width as a fraction of the viewport width.
	DefaultScale = 0.5

	// DefaultSurfaceWidth is the width of the offscreen surface in pixels.
	// The height follows the render aspect ratio.
	DefaultSurfaceWidth = 512

	// DefaultSourceFOV is the horizontal field of view assumed for the
	// offscreen render when the host projection is not a perspective one.
	DefaultSourceFOV = math.Pi / 2
)

// Validator compiles the program for a native device before activation.
// backend/halshader provides one on top of a wgpu HAL device.
type Validator interface {
	Validate(label, source string) error
	Release()
}

// Option configures a Compositor during creation.
type Option func(*options)

type options struct {
	scale        float64
	surfaceWidth int
	mode         shader.Mode
	source       string
	sourceFOV    float64
	reporter     func(error)
	validator    Validator
}

func defaultOptions() options {
	return options{
		scale:        DefaultScale,
		surfaceWidth: DefaultSurfaceWidth,
		mode:         shader.ModeDebug,
		source:       shader.Source,
		sourceFOV:    DefaultSourceFOV,
		reporter:     func(error) {},
	}
}

// WithScale sets the overlay width as a fraction of the viewport width.
// Values outside (0, 1] are ignored.
func WithScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 && scale <= 1 {
			o.scale = scale
		}
	}
}

// WithSurfaceWidth sets the offscreen surface width in pixels.
func WithSurfaceWidth(width int) Option {
	return func(o *options) {
		if width > 0 {
			o.surfaceWidth = width
		}
	}
}

// WithMode selects the fragment entry point.
//
//	overlay.New(scene, renderer, gpu, hooks, overlay.WithMode(shader.ModeRemap))
func WithMode(m shader.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithShaderSource replaces the built-in WGSL program. The source must
// provide the entry points named in package shader; uniforms it lacks are
// skipped.
func WithShaderSource(src string) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSourceFOV sets the fallback horizontal field of view of the offscreen
// render, used by the remap mode.
func WithSourceFOV(fov float64) Option {
	return func(o *options) {
		if fov > 0 && fov < math.Pi {
			o.sourceFOV = fov
		}
	}
}

// WithReporter sets the function that surfaces activation failures to the
// user. It is called exactly once per failed Toggle.
func WithReporter(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.reporter = fn
		}
	}
}

// WithValidator compiles the program on a native device during Initialize.
func WithValidator(v Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}
