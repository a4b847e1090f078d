package soft

import (
	"fmt"

	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host"
)

var identity4 = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

type sceneCamera struct {
	info       camera.Info
	view, proj [16]float32
}

// Scene is an in-memory scene implementing host.Scene.
//
// Every mutation marks the scene changed so the owning Host dispatches an
// update notification before its next draw.
type Scene struct {
	cameras map[camera.ID]*sceneCamera
	active  camera.ID
	dirty   map[camera.ID]bool
	render  camera.RenderSettings
	nextID  camera.ID
	changed bool
}

// NewScene returns an empty scene with default render settings.
func NewScene() *Scene {
	return &Scene{
		cameras: map[camera.ID]*sceneCamera{},
		dirty:   map[camera.ID]bool{},
		render:  camera.DefaultRenderSettings(),
	}
}

// AddCamera stores a camera and returns its assigned ID. The ID field of
// info is ignored.
func (s *Scene) AddCamera(info camera.Info) camera.ID {
	s.nextID++
	info.ID = s.nextID
	s.cameras[info.ID] = &sceneCamera{info: info, view: identity4, proj: identity4}
	s.changed = true
	return info.ID
}

// SetActiveCamera makes id the scene camera. NoCamera clears it.
func (s *Scene) SetActiveCamera(id camera.ID) error {
	if id != camera.NoCamera {
		if _, ok := s.cameras[id]; !ok {
			return fmt.Errorf("soft: unknown camera %d", id)
		}
	}
	s.active = id
	s.changed = true
	return nil
}

// UpdateCamera edits a camera in place and flags it dirty.
func (s *Scene) UpdateCamera(id camera.ID, edit func(*camera.Info)) error {
	c, ok := s.cameras[id]
	if !ok {
		return fmt.Errorf("soft: unknown camera %d", id)
	}
	edit(&c.info)
	c.info.ID = id
	s.dirty[id] = true
	s.changed = true
	return nil
}

// SetCameraMatrices stores the matrices reported by CameraMatrices.
func (s *Scene) SetCameraMatrices(id camera.ID, view, proj [16]float32) error {
	c, ok := s.cameras[id]
	if !ok {
		return fmt.Errorf("soft: unknown camera %d", id)
	}
	c.view, c.proj = view, proj
	s.dirty[id] = true
	s.changed = true
	return nil
}

// SetRenderSettings replaces the render resolution settings.
func (s *Scene) SetRenderSettings(rs camera.RenderSettings) {
	s.render = rs
	s.changed = true
}

// ActiveCamera implements camera.Source.
func (s *Scene) ActiveCamera() (camera.Info, bool) {
	c, ok := s.cameras[s.active]
	if !ok {
		return camera.Info{}, false
	}
	return c.info, true
}

// CameraDirty implements camera.Source. The flag is cleared by the query.
func (s *Scene) CameraDirty(id camera.ID) bool {
	d := s.dirty[id]
	delete(s.dirty, id)
	return d
}

// RenderSettings implements camera.Source.
func (s *Scene) RenderSettings() camera.RenderSettings {
	return s.render
}

// CameraMatrices implements host.Scene. Unknown cameras get identities.
func (s *Scene) CameraMatrices(id camera.ID) (view, proj [16]float32) {
	c, ok := s.cameras[id]
	if !ok {
		return identity4, identity4
	}
	return c.view, c.proj
}

// takeChanged reports and clears the pending-notification flag.
func (s *Scene) takeChanged() bool {
	c := s.changed
	s.changed = false
	return c
}

var _ host.Scene = (*Scene)(nil)
