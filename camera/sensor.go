package camera

import (
	"fmt"
	"strings"
)

// SensorFit selects which sensor axis is fitted to the render resolution.
type SensorFit uint8

const (
	// SensorFitAuto fits the larger axis using the sensor width.
	SensorFitAuto SensorFit = iota
	// SensorFitHorizontal fits the sensor width to the horizontal axis.
	SensorFitHorizontal
	// SensorFitVertical fits the sensor height to the vertical axis.
	SensorFitVertical
)

func (f SensorFit) String() string {
	switch f {
	case SensorFitAuto:
		return "AUTO"
	case SensorFitHorizontal:
		return "HORIZONTAL"
	case SensorFitVertical:
		return "VERTICAL"
	default:
		return fmt.Sprintf("SensorFit(%d)", f)
	}
}

// ParseSensorFit parses "AUTO", "HORIZONTAL" or "VERTICAL", case-insensitive.
func ParseSensorFit(s string) (SensorFit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTO", "":
		return SensorFitAuto, nil
	case "HORIZONTAL":
		return SensorFitHorizontal, nil
	case "VERTICAL":
		return SensorFitVertical, nil
	default:
		return SensorFitAuto, fmt.Errorf("camera: unknown sensor fit %q", s)
	}
}

// DeriveSensor returns the effective sensor size for the render settings.
//
// The fit axis keeps its physical size and the other axis is scaled by the
// ratio of the pixel-aspect corrected resolutions. In AUTO mode the
// horizontal axis is fitted when its ratio is strictly larger and the
// sensor width is used as the fitted size either way.
func DeriveSensor(width, height float64, fit SensorFit, rs RenderSettings) (w, h float64) {
	xr, yr := rs.ratios()
	if xr <= 0 || yr <= 0 {
		return width, height
	}

	switch fit {
	case SensorFitHorizontal:
		return width, width * yr / xr
	case SensorFitVertical:
		return height * xr / yr, height
	default:
		if xr > yr {
			return width, width * yr / xr
		}
		return width * xr / yr, width
	}
}
