package fisheye

import (
	"errors"
	"fmt"
)

// Error kinds reported by the overlay. Test with errors.Is.
var (
	// ErrSurfaceAllocation is returned when the host cannot provide an
	// offscreen surface. Activation is aborted.
	ErrSurfaceAllocation = errors.New("fisheye: offscreen surface allocation failed")

	// ErrShaderCompile is returned when a shader stage fails to compile.
	// The host compiler log is available through *ShaderError.
	ErrShaderCompile = errors.New("fisheye: shader compilation failed")

	// ErrShaderLink is returned when the compiled stages cannot be linked.
	ErrShaderLink = errors.New("fisheye: shader link failed")

	// ErrCameraUnsupported means the active camera is missing or not an
	// equisolid fisheye. It is recovered by using DefaultParams.
	ErrCameraUnsupported = errors.New("fisheye: camera is not an equisolid fisheye")
)

// ShaderError carries the host compiler or linker log for a failed stage.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "link".
	Stage string
	// Entry is the entry point being built.
	Entry string
	// Log is the text returned by the host compiler.
	Log string
	// Err is ErrShaderCompile or ErrShaderLink.
	Err error
}

func (e *ShaderError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%v (%s %s)", e.Err, e.Stage, e.Entry)
	}
	return fmt.Sprintf("%v (%s %s): %s", e.Err, e.Stage, e.Entry, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}
