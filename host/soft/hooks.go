package soft

import "github.com/gogpu/fisheye/host"

type hookKind uint8

const (
	hookDraw hookKind = iota
	hookUpdate
)

type hookEntry struct {
	kind   hookKind
	draw   func(host.FrameContext)
	update func()
}

// Hooks is a single-threaded callback registry implementing host.Hooks.
type Hooks struct {
	next    host.Handle
	order   []host.Handle
	entries map[host.Handle]hookEntry
}

// NewHooks returns an empty registry.
func NewHooks() *Hooks {
	return &Hooks{entries: map[host.Handle]hookEntry{}}
}

// AddDrawHandler implements host.Hooks.
func (h *Hooks) AddDrawHandler(fn func(host.FrameContext)) host.Handle {
	return h.add(hookEntry{kind: hookDraw, draw: fn})
}

// AddUpdateHandler implements host.Hooks.
func (h *Hooks) AddUpdateHandler(fn func()) host.Handle {
	return h.add(hookEntry{kind: hookUpdate, update: fn})
}

func (h *Hooks) add(e hookEntry) host.Handle {
	h.next++
	h.entries[h.next] = e
	h.order = append(h.order, h.next)
	return h.next
}

// Remove implements host.Hooks. Unknown handles are ignored.
func (h *Hooks) Remove(handle host.Handle) {
	if _, ok := h.entries[handle]; !ok {
		return
	}
	delete(h.entries, handle)
	for i, id := range h.order {
		if id == handle {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered handlers.
func (h *Hooks) Len() int {
	return len(h.entries)
}

// DispatchUpdate runs every update handler in registration order.
func (h *Hooks) DispatchUpdate() {
	for _, id := range h.snapshot() {
		// Handlers removed by an earlier handler in this dispatch must not run.
		if e, ok := h.entries[id]; ok && e.kind == hookUpdate {
			e.update()
		}
	}
}

// DispatchDraw runs every draw handler in registration order.
func (h *Hooks) DispatchDraw(fc host.FrameContext) {
	for _, id := range h.snapshot() {
		if e, ok := h.entries[id]; ok && e.kind == hookDraw {
			e.draw(fc)
		}
	}
}

func (h *Hooks) snapshot() []host.Handle {
	return append([]host.Handle(nil), h.order...)
}

var _ host.Hooks = (*Hooks)(nil)
