package soft

import (
	"image/color"
	"testing"

	"github.com/gogpu/fisheye/camera"
	"github.com/gogpu/fisheye/host"
)

func TestHostFrameOrdering(t *testing.T) {
	h := NewHost(10, 6)
	var events []string
	h.Hooks().AddUpdateHandler(func() { events = append(events, "update") })
	h.Hooks().AddDrawHandler(func(fc host.FrameContext) {
		events = append(events, "draw")
		if fc.Viewport != h.Viewport() {
			t.Errorf("viewport = %+v", fc.Viewport)
		}
	})

	h.Scene().AddCamera(camera.Info{Name: "cam"})
	h.Frame()
	h.Frame()

	want := []string{"update", "draw", "draw"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestHostFrameCounterAndClear(t *testing.T) {
	h := NewHost(4, 4)
	var frames []uint64
	h.Hooks().AddDrawHandler(func(fc host.FrameContext) { frames = append(frames, fc.Frame) })
	h.Framebuffer().SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	h.Frame()
	h.Frame()

	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("frames = %v, want [1 2]", frames)
	}
	if got := h.Framebuffer().RGBAAt(1, 1); got != Background {
		t.Errorf("pixel after Frame = %v, want Background", got)
	}
}

func TestHostOptions(t *testing.T) {
	rs := camera.RenderSettings{ResolutionX: 800, ResolutionY: 600, PixelAspectX: 1, PixelAspectY: 1}
	h := NewHost(8, 8, WithRenderSettings(rs), WithShaderValidation(false))
	if got := h.Scene().RenderSettings(); got != rs {
		t.Errorf("RenderSettings() = %+v, want %+v", got, rs)
	}
}
