package soft

import (
	"testing"

	"github.com/gogpu/fisheye/host"
)

func TestHooksDispatchByKind(t *testing.T) {
	h := NewHooks()
	var draws, updates int
	h.AddDrawHandler(func(host.FrameContext) { draws++ })
	h.AddUpdateHandler(func() { updates++ })

	h.DispatchUpdate()
	h.DispatchDraw(host.FrameContext{})
	h.DispatchDraw(host.FrameContext{})

	if draws != 2 || updates != 1 {
		t.Errorf("draws=%d updates=%d, want 2 and 1", draws, updates)
	}
}

func TestHooksRemove(t *testing.T) {
	h := NewHooks()
	calls := 0
	id := h.AddDrawHandler(func(host.FrameContext) { calls++ })
	if id == 0 {
		t.Fatal("AddDrawHandler returned the zero handle")
	}
	h.Remove(id)
	h.Remove(id)
	h.DispatchDraw(host.FrameContext{})
	if calls != 0 || h.Len() != 0 {
		t.Errorf("calls=%d len=%d after Remove", calls, h.Len())
	}
}

func TestHooksRemoveDuringDispatch(t *testing.T) {
	h := NewHooks()
	var second host.Handle
	secondCalls := 0
	h.AddDrawHandler(func(host.FrameContext) { h.Remove(second) })
	second = h.AddDrawHandler(func(host.FrameContext) { secondCalls++ })

	h.DispatchDraw(host.FrameContext{})
	if secondCalls != 0 {
		t.Error("handler removed earlier in the same dispatch still ran")
	}
}
