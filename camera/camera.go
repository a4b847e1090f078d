package camera

import "fmt"

// ID identifies a camera within a host scene. NoCamera is the null handle.
type ID uint64

// NoCamera is the ID reported when the scene has no active camera.
const NoCamera ID = 0

// Type is the projection type of a camera.
type Type uint8

const (
	Perspective Type = iota
	Orthographic
	Panoramic
)

func (t Type) String() string {
	switch t {
	case Perspective:
		return "PERSP"
	case Orthographic:
		return "ORTHO"
	case Panoramic:
		return "PANO"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// PanoramaType is the sub-type of a panoramic camera.
type PanoramaType uint8

const (
	Equirectangular PanoramaType = iota
	FisheyeEquidistant
	FisheyeEquisolid
	Mirrorball
)

func (p PanoramaType) String() string {
	switch p {
	case Equirectangular:
		return "EQUIRECTANGULAR"
	case FisheyeEquidistant:
		return "FISHEYE_EQUIDISTANT"
	case FisheyeEquisolid:
		return "FISHEYE_EQUISOLID"
	case Mirrorball:
		return "MIRRORBALL"
	default:
		return fmt.Sprintf("PanoramaType(%d)", p)
	}
}

// Info is a snapshot of the intrinsic settings of one camera.
type Info struct {
	ID       ID
	Name     string
	Type     Type
	Panorama PanoramaType

	// FisheyeLens is the equisolid focal length in millimetres.
	FisheyeLens float64
	// FisheyeFOV is the full field of view in radians.
	FisheyeFOV float64

	SensorWidth  float64
	SensorHeight float64
	SensorFit    SensorFit
}

// IsEquisolid reports whether the camera is a panoramic equisolid fisheye.
func (i Info) IsEquisolid() bool {
	return i.Type == Panoramic && i.Panorama == FisheyeEquisolid
}

// RenderSettings holds the global render resolution and pixel aspect.
type RenderSettings struct {
	ResolutionX  int
	ResolutionY  int
	PixelAspectX float64
	PixelAspectY float64
}

// DefaultRenderSettings returns 1920x1080 with square pixels.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{ResolutionX: 1920, ResolutionY: 1080, PixelAspectX: 1, PixelAspectY: 1}
}

// AspectRatio returns ResolutionX / ResolutionY, or 1 when either is unset.
func (rs RenderSettings) AspectRatio() float64 {
	if rs.ResolutionX <= 0 || rs.ResolutionY <= 0 {
		return 1
	}
	return float64(rs.ResolutionX) / float64(rs.ResolutionY)
}

// ratios returns the pixel-aspect corrected resolution of both axes.
// Unset pixel aspects count as 1.
func (rs RenderSettings) ratios() (x, y float64) {
	ax, ay := rs.PixelAspectX, rs.PixelAspectY
	if ax <= 0 {
		ax = 1
	}
	if ay <= 0 {
		ay = 1
	}
	return float64(rs.ResolutionX) * ax, float64(rs.ResolutionY) * ay
}

// Source is the read-only view of a host scene the tracker needs.
type Source interface {
	// ActiveCamera returns the scene camera, or false when there is none.
	ActiveCamera() (Info, bool)

	// CameraDirty reports whether the camera's data was modified since the
	// previous call for the same id.
	CameraDirty(id ID) bool

	// RenderSettings returns the current render resolution settings.
	RenderSettings() RenderSettings
}
