package camera

import (
	"fmt"

	"github.com/gogpu/fisheye"
)

// Tracker caches the fisheye parameters of the active camera.
//
// It is not safe for concurrent use; hosts call it from their single
// update/draw thread.
type Tracker struct {
	params    fisheye.Params
	tracked   ID
	synced    bool // at least one Observe/Sync has run
	succeeded bool // at least one Resync succeeded
}

// NewTracker returns a tracker holding fisheye.DefaultParams.
func NewTracker() *Tracker {
	return &Tracker{params: fisheye.DefaultParams()}
}

// Params returns the cached parameters.
func (t *Tracker) Params() fisheye.Params {
	return t.params
}

// Tracked returns the camera identity seen by the last Sync, or NoCamera.
func (t *Tracker) Tracked() ID {
	return t.tracked
}

// Succeeded reports whether any Resync has ever succeeded.
func (t *Tracker) Succeeded() bool {
	return t.succeeded
}

// Resync reads the camera's intrinsics into the cached parameters.
//
// It succeeds only for a non-nil panoramic equisolid fisheye camera whose
// derived parameters are Valid. On failure it returns false and leaves the
// parameters untouched.
func (t *Tracker) Resync(cam *Info, rs RenderSettings) bool {
	if cam == nil || !cam.IsEquisolid() {
		return false
	}
	w, h := DeriveSensor(cam.SensorWidth, cam.SensorHeight, cam.SensorFit, rs)
	p := fisheye.Params{
		Lens:         cam.FisheyeLens,
		FOV:          cam.FisheyeFOV,
		SensorWidth:  w,
		SensorHeight: h,
	}
	if !p.Valid() {
		return false
	}
	t.params = p
	t.succeeded = true
	return true
}

// Fallback unconditionally resets the parameters to fisheye.DefaultParams.
func (t *Tracker) Fallback() {
	t.params = fisheye.DefaultParams()
}

// Sync resyncs against the active camera of src and records its identity.
//
// Sync consumes the camera's dirty flag. When the camera is missing or unsupported and no Resync has ever
// succeeded, the defaults are installed. The returned error wraps
// fisheye.ErrCameraUnsupported and is a diagnostic, not a failure.
func (t *Tracker) Sync(src Source) error {
	info, ok := src.ActiveCamera()
	id := NoCamera
	var cam *Info
	if ok {
		id = info.ID
		cam = &info
		// The snapshot is fresh; drop any pending modification flag.
		src.CameraDirty(id)
	}
	t.tracked = id
	t.synced = true

	if t.Resync(cam, src.RenderSettings()) {
		fisheye.Logger().Debug("fisheye: camera resynced",
			"camera", id, "params", t.params.String())
		return nil
	}
	if !t.succeeded {
		t.Fallback()
	}
	if cam == nil {
		return fmt.Errorf("%w: no active camera", fisheye.ErrCameraUnsupported)
	}
	if cam.IsEquisolid() {
		return fmt.Errorf("%w: camera %q has invalid fisheye settings (lens %g, fov %g)", fisheye.ErrCameraUnsupported,
			cam.Name, cam.FisheyeLens, cam.FisheyeFOV)
	}
	return fmt.Errorf("%w: camera %q is %s/%s", fisheye.ErrCameraUnsupported,
		cam.Name, cam.Type, cam.Panorama)
}

// Observe is the per-notification diff step. It resyncs when the active
// camera identity differs from the tracked one or when the tracked camera
// was flagged dirty, and reports whether a resync ran.
func (t *Tracker) Observe(src Source) (changed bool, err error) {
	id := NoCamera
	if info, ok := src.ActiveCamera(); ok {
		id = info.ID
	}

	switch {
	case !t.synced || id != t.tracked:
	case id != NoCamera && src.CameraDirty(id):
	default:
		return false, nil
	}
	return true, t.Sync(src)
}
