package soft

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host"
)

func surfaceDesc(w, h uint32) host.SurfaceDescriptor {
	return host.SurfaceDescriptor{
		Label:  "test",
		Size:   gputypes.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
}

func TestRendererAllocateRelease(t *testing.T) {
	r := NewRenderer(NewScene(), nil)
	s, err := r.AllocateSurface(surfaceDesc(64, 36))
	if err != nil {
		t.Fatalf("AllocateSurface() = %v", err)
	}
	if s.Width() != 64 || s.Height() != 36 || s.Texture() == 0 {
		t.Errorf("surface = %dx%d tex %d", s.Width(), s.Height(), s.Texture())
	}
	if _, ok := r.Texture(s.Texture()); !ok {
		t.Error("Texture() cannot resolve the surface")
	}
	r.ReleaseSurface(s)
	if r.Live() != 0 {
		t.Errorf("Live() = %d after release", r.Live())
	}
	if err := r.RenderSceneToSurface(s, identity4, identity4); err == nil {
		t.Error("render into a released surface should fail")
	}
}

func TestRendererAllocateRejects(t *testing.T) {
	r := NewRenderer(NewScene(), nil)
	tests := []struct {
		name string
		desc host.SurfaceDescriptor
	}{
		{"zero size", surfaceDesc(0, 10)},
		{"too large", surfaceDesc(MaxSurfaceSize+1, 10)},
		{"format", func() host.SurfaceDescriptor {
			d := surfaceDesc(8, 8)
			d.Format = gputypes.TextureFormatBGRA8Unorm
			return d
		}()},
		{"usage", func() host.SurfaceDescriptor {
			d := surfaceDesc(8, 8)
			d.Usage = gputypes.TextureUsageTextureBinding
			return d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.AllocateSurface(tt.desc); err == nil {
				t.Error("AllocateSurface() succeeded")
			}
		})
	}

	boom := errors.New("out of video memory")
	r.SetAllocationError(boom)
	if _, err := r.AllocateSurface(surfaceDesc(8, 8)); !errors.Is(err, boom) {
		t.Errorf("AllocateSurface() = %v, want injected error", err)
	}
}

func TestRendererRenderScalesBackdrop(t *testing.T) {
	backdrop := image.NewRGBA(image.Rect(0, 0, 4, 4))
	orange := color.RGBA{R: 255, G: 128, A: 255}
	draw.Draw(backdrop, backdrop.Bounds(), &image.Uniform{C: orange}, image.Point{}, draw.Src)

	scene := NewScene()
	id := scene.AddCamera(camera.Info{Name: "Camera"})
	_ = scene.SetActiveCamera(id)

	r := NewRenderer(scene, backdrop)
	s, err := r.AllocateSurface(surfaceDesc(64, 32))
	if err != nil {
		t.Fatal(err)
	}
	view := identity4
	view[13] = 2
	if err := r.RenderSceneToSurface(s, view, identity4); err != nil {
		t.Fatalf("RenderSceneToSurface() = %v", err)
	}
	pm, _ := r.Texture(s.Texture())
	if got := pm.RGBAAt(50, 28); got != orange {
		t.Errorf("pixel away from the caption = %v, want %v", got, orange)
	}
	if v, _ := r.LastMatrices(); v[13] != 2 {
		t.Error("LastMatrices() did not record the view matrix")
	}
	if r.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", r.Renders())
	}

	// The caption changes some pixels in the top-left corner.
	changed := false
	for y := 0; y < 16 && !changed; y++ {
		for x := 0; x < 40; x++ {
			if pm.RGBAAt(x, y) != orange {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("caption not drawn")
	}
}

func TestRendererRenderError(t *testing.T) {
	r := NewRenderer(NewScene(), nil)
	s, _ := r.AllocateSurface(surfaceDesc(8, 8))
	boom := errors.New("device lost")
	r.SetRenderError(boom)
	if err := r.RenderSceneToSurface(s, identity4, identity4); !errors.Is(err, boom) {
		t.Errorf("RenderSceneToSurface() = %v, want injected error", err)
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(16, 16, 4)
	if img.RGBAAt(0, 0) == img.RGBAAt(4, 0) {
		t.Error("adjacent cells share a colour")
	}
	if c := img.RGBAAt(8, 8); c.R != 255 || c.G != 0 {
		t.Errorf("centre mark = %v, want red", c)
	}
}
