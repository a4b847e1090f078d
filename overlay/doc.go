// Package overlay draws a live equisolid fisheye preview of the active
// camera in the corner of a host viewport.
//
// A Compositor is created once per session and toggled on and off by the
// host UI. While enabled it owns an offscreen surface, a linked fisheye
// program and two host callbacks: a scene-update handler that keeps the
// camera parameters current, and a draw handler that renders the scene into
// the surface and composites it through the fisheye shader.
//
// # Quick Start
//
//	h := soft.NewHost(1280, 720)
//	c := overlay.New(h.Scene(), h.Renderer(), h.GPU(), h.Hooks(),
//		overlay.WithMode(shader.ModeRemap),
//		overlay.WithReporter(func(err error) { log.Print(err) }),
//	)
//	defer c.Close()
//
//	if err := c.Toggle(); err != nil {
//		return err
//	}
//	h.Frame()
//
// # State
//
// Every piece of GPU state RenderFrame touches is restored before it
// returns, including when the offscreen render or the draw fails. Once
// Toggle disables the overlay no callback of the compositor runs again.
package overlay
