package touch

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPinchScaleAndVelocity(t *testing.T) {
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	n.Width = 300
	var rec recorder
	n.HandleGesture(GesturePinch, rec.handlers("n", GesturePinch, true))

	h.start(n, pt(1, 0, 50), pt(2, 100, 50))
	g := h.gesture(n, GesturePinch)
	if g.State() != StatePossible {
		t.Fatalf("state = %v, want possible", g.State())
	}

	h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	h.move(pt(2, 80, 50))

	if diff := cmp.Diff([]string{"n.pinchStart"}, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(g.Scale-0.8) > 1e-9 {
		t.Errorf("Scale = %v, want 0.8", g.Scale)
	}
	if math.Abs(g.Velocity+200) > 1e-6 {
		t.Errorf("Velocity = %v, want -200 px/s", g.Velocity)
	}

	// Scale is relative to the previous sample.
	h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	h.move(pt(2, 160, 50))
	if math.Abs(g.Scale-2) > 1e-9 {
		t.Errorf("Scale = %v, want 2", g.Scale)
	}
}

func TestPinchNeedsTwoContacts(t *testing.T) {
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	var rec recorder
	n.HandleGesture(GesturePinch, rec.handlers("n", GesturePinch, true))

	h.start(n, pt(1, 10, 10))
	g := h.gesture(n, GesturePinch)
	if !g.collecting() {
		t.Fatal("pinch should be collecting with one contact")
	}
	h.move(pt(1, 90, 90))
	h.end(pt(1, 90, 90))
	if len(rec.calls) != 0 {
		t.Errorf("unexpected calls %v", rec.calls)
	}
}

func TestPinchBelowThreshold(t *testing.T) {
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	var rec recorder
	n.HandleGesture(GesturePinch, rec.handlers("n", GesturePinch, true))
	n.SetGestureOptions(GesturePinch, Options{OptDeltaThreshold: 20})

	h.start(n, pt(1, 0, 50), pt(2, 100, 50))
	h.move(pt(2, 90, 50)) // 10px change
	if len(rec.calls) != 0 {
		t.Fatalf("pinch began below threshold: %v", rec.calls)
	}
	h.move(pt(2, 70, 50))
	if diff := cmp.Diff([]string{"n.pinchStart"}, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPinchRejectedRestoresScale(t *testing.T) {
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	n.HandleGesture(GesturePinch, GestureHandlers{
		Start:  func(*Gesture) bool { return true },
		Change: func(*Gesture) bool { return false },
	})

	h.start(n, pt(1, 0, 50), pt(2, 100, 50))
	h.move(pt(2, 50, 50))
	g := h.gesture(n, GesturePinch)
	if math.Abs(g.Scale-0.5) > 1e-9 {
		t.Fatalf("Scale = %v, want 0.5", g.Scale)
	}
	h.move(pt(2, 40, 50)) // rejected
	if math.Abs(g.Scale-0.5) > 1e-9 {
		t.Errorf("Scale after rejection = %v, want 0.5", g.Scale)
	}
}

func TestPinchRejectedStartRollsBackToNeutral(t *testing.T) {
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	accept := true
	n.HandleGesture(GesturePinch, GestureHandlers{
		Start: func(*Gesture) bool { return accept },
		End:   func(*Gesture) bool { return true },
	})
	g := h.gesture(n, GesturePinch)

	h.start(n, pt(1, 0, 50), pt(2, 100, 50))
	h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	h.move(pt(2, 50, 50))
	h.end(pt(1, 0, 50), pt(2, 50, 50))
	if math.Abs(g.Scale-0.5) > 1e-9 || math.Abs(g.Velocity+500) > 1e-6 {
		t.Fatalf("after first pinch: Scale = %v, Velocity = %v", g.Scale, g.Velocity)
	}

	accept = false
	h.start(n, pt(1, 0, 50), pt(2, 100, 50))
	h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	h.move(pt(2, 80, 50))
	if g.Scale != 1 || g.Velocity != 0 {
		t.Errorf("after rejected start: Scale = %v, Velocity = %v; want 1, 0", g.Scale, g.Velocity)
	}
}
