// Package shader holds the fisheye GPU program and everything needed to
// drive it: WGSL reflection, SPIR-V compilation, program construction
// through a host GPU, capability-checked uniform binding and CPU kernels
// that mirror the fragment entry points for software hosts.
package shader

import (
	_ "embed"
	"fmt"
	"strings"
)

// Source is the WGSL source of the fisheye program.
//
//go:embed shaders/fisheye.wgsl
var Source string

// Entry points of Source.
const (
	EntryVertex = "vs_main"
	EntryDebug  = "fs_debug"
	EntryRemap  = "fs_remap"
)

// Uniform names of Source. Hosts that compile a variant without some of
// them keep working; see Binder.
const (
	UniformColorBuffer  = "color_buffer"
	UniformLens         = "lens"
	UniformFOV          = "fov"
	UniformSensorWidth  = "sensor_width"
	UniformSensorHeight = "sensor_height"
	UniformSourceFOV    = "source_fov"
)

// Mode selects the fragment entry point.
type Mode uint8

const (
	// ModeDebug visualizes the fisheye angles as colour.
	ModeDebug Mode = iota
	// ModeRemap resamples the offscreen image through the fisheye lens.
	ModeRemap
)

// Entry returns the fragment entry point for the mode.
func (m Mode) Entry() string {
	if m == ModeRemap {
		return EntryRemap
	}
	return EntryDebug
}

func (m Mode) String() string {
	switch m {
	case ModeDebug:
		return "debug"
	case ModeRemap:
		return "remap"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "debug" or "remap".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return ModeDebug, nil
	case "remap":
		return ModeRemap, nil
	default:
		return ModeDebug, fmt.Errorf("shader: unknown mode %q", s)
	}
}
