// Package fisheye renders a live equisolid fisheye preview of a camera as a
// picture-in-picture overlay on top of a host-rendered viewport.
//
// # Overview
//
// The package root holds the projection math and the shared vocabulary:
//
//   - Params: lens, field of view and effective sensor size of a fisheye camera
//   - EquisolidAngles: the forward equisolid-angle mapping from sensor to ray angles
//   - Direction, ProjectPerspective: helpers for resampling a perspective image
//   - Matrix: the 2D affine transform used for the overlay quad
//
// The overlay itself lives in sub-packages:
//
//   - camera: camera intrinsics, sensor fit and the parameter tracker
//   - shader: the WGSL fisheye program, uniform binding and CPU kernels
//   - host: the interfaces a host renderer implements
//   - host/soft: a pure-Go software host for tests and headless previews
//   - overlay: the compositor that toggles the overlay and draws it each frame
//
// # Quick Start
//
//	h := soft.NewHost(1280, 720)
//	c := overlay.New(h.Scene(), h.Renderer(), h.GPU(), h.Hooks())
//	if err := c.Toggle(); err != nil {
//	    log.Fatal(err)
//	}
//	h.Frame()
//	h.Framebuffer().SavePNG("preview.png")
//
// # Logging
//
// By default nothing is logged. Call SetLogger with a *slog.Logger to see
// lifecycle events and camera fallbacks from every sub-package.
package fisheye
