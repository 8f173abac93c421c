package touch

import (
	"testing"
	"time"
)

// manualClock is a deterministic time source for scenes under test.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *manualClock) Now() time.Time { return c.now }

// harness drives a scene with hand-built raw events on a manual clock.
type harness struct {
	t     *testing.T
	scene *Scene
	clock *manualClock
}

func newHarness(t *testing.T, opts ...SceneOption) *harness {
	t.Helper()
	clock := newManualClock()
	opts = append([]SceneOption{WithClock(clock.Now)}, opts...)
	return &harness{t: t, scene: NewScene(opts...), clock: clock}
}

// box adds a 100x100 node at (x, y) under parent (the root when nil).
func (h *harness) box(name string, parent *Node, x, y float64) *Node {
	n := NewNode(name)
	n.X, n.Y = x, y
	n.Width, n.Height = 100, 100
	if parent == nil {
		parent = h.scene.Root()
	}
	parent.AddChild(n)
	return n
}

func (h *harness) start(target *Node, pts ...ContactPoint) {
	h.scene.Dispatch(target, TouchEvent{Type: EventTouchStart, Changed: pts, Timestamp: h.clock.now})
}

func (h *harness) move(pts ...ContactPoint) {
	h.scene.Dispatch(nil, TouchEvent{Type: EventTouchMove, Changed: pts, Timestamp: h.clock.now})
}

func (h *harness) end(pts ...ContactPoint) {
	h.scene.Dispatch(nil, TouchEvent{Type: EventTouchEnd, Changed: pts, Timestamp: h.clock.now})
}

func (h *harness) cancel(pts ...ContactPoint) {
	h.scene.Dispatch(nil, TouchEvent{Type: EventTouchCancel, Changed: pts, Timestamp: h.clock.now})
}

// wait advances the clock and runs due timers.
func (h *harness) wait(d time.Duration) {
	h.clock.now = h.clock.now.Add(d)
	h.scene.Tick(h.clock.now)
}

// gesture returns the named recognizer on n, building n's manager if needed.
func (h *harness) gesture(n *Node, name string) *Gesture {
	h.t.Helper()
	m := h.scene.managerFor(n)
	if m == nil {
		h.t.Fatalf("node %q has no gesture manager", n.Name)
	}
	g := m.Gesture(name)
	if g == nil {
		h.t.Fatalf("node %q has no %s recognizer", n.Name, name)
	}
	return g
}

// frame runs one Update without polling the device: timers, the attached
// TestRunner and one injected frame. It reports whether a frame was consumed.
func (h *harness) frame() bool {
	s := h.scene
	s.Tick(h.clock.now)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	return s.processInjectedInput(h.clock.now)
}

func pt(id int, x, y float64) ContactPoint {
	return ContactPoint{ID: ContactID(id), X: x, Y: y}
}

// recorder collects "<node>.<gesture><Phase>" strings from gesture handlers
// and "<node>.<event>" strings from raw handlers.
type recorder struct {
	calls []string
}

// handlers returns handlers for every phase of gesture that record the call
// and return accept.
func (r *recorder) handlers(node, gesture string, accept bool) GestureHandlers {
	rec := func(p Phase) GestureHandler {
		return func(*Gesture) bool {
			r.calls = append(r.calls, node+"."+gesture+p.String())
			return accept
		}
	}
	return GestureHandlers{
		Start:  rec(PhaseStart),
		Change: rec(PhaseChange),
		End:    rec(PhaseEnd),
		Cancel: rec(PhaseCancel),
	}
}

// raw installs raw touch handlers on n that record the event type.
func (r *recorder) raw(n *Node) {
	rec := func(ctx TouchContext) {
		r.calls = append(r.calls, ctx.Node.Name+"."+ctx.Type.String())
	}
	n.OnTouchStart = rec
	n.OnTouchMove = rec
	n.OnTouchEnd = rec
	n.OnTouchCancel = rec
}

func (r *recorder) reset() {
	r.calls = r.calls[:0]
}
