// Package camera models the camera intrinsics a host exposes and keeps a
// cached set of fisheye.Params in sync with the active camera.
//
// The Tracker is the only stateful type. A host calls Tracker.Observe once
// per scene-update notification; the tracker re-reads the camera only when
// the active camera changed identity or the host flagged its data dirty, so
// draw callbacks can read Tracker.Params without re-validating every frame.
package camera
