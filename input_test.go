package touch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- nodeContainsLocal tests ---

func TestNodeContainsLocal(t *testing.T) {
	sized := NewNode("sized")
	sized.Width, sized.Height = 100, 50

	shaped := NewNode("shaped")
	shaped.Width, shaped.Height = 64, 64
	shaped.HitShape = HitCircle{CenterX: 32, CenterY: 32, Radius: 16}

	empty := NewNode("empty")

	tests := []struct {
		name string
		n    *Node
		x, y float64
		want bool
	}{
		{"box center", sized, 50, 25, true},
		{"box corner", sized, 0, 0, true},
		{"box outside", sized, 101, 25, false},
		{"shape center", shaped, 32, 32, true},
		{"shape overrides box", shaped, 0, 0, false},
		{"no size no shape", empty, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeContainsLocal(tt.n, tt.x, tt.y); got != tt.want {
				t.Errorf("nodeContainsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// --- Hit test traversal tests ---

func TestHitTest_TopmostNode(t *testing.T) {
	h := newHarness(t)
	h.box("a", nil, 0, 0)
	b := h.box("b", nil, 0, 0)

	if hit := h.scene.HitTest(50, 50); hit != b {
		t.Errorf("expected topmost node b, got %v", hit)
	}
}

func TestHitTest_SkipsInvisibleAndNonInteractable(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	b := h.box("b", nil, 0, 0)
	c := h.box("c", nil, 0, 0)
	b.Visible = false
	c.Interactable = false

	if hit := h.scene.HitTest(50, 50); hit != a {
		t.Errorf("expected node a, got %v", hit)
	}
}

func TestHitTest_SkipsHiddenSubtree(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	group := NewNode("group")
	group.Visible = false
	h.scene.Root().AddChild(group)
	h.box("inner", group, 0, 0)

	if hit := h.scene.HitTest(50, 50); hit != a {
		t.Errorf("expected node a, got %v", hit)
	}
}

func TestHitTest_RespectsZIndex(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	h.box("b", nil, 0, 0)
	a.SetZIndex(10)

	if hit := h.scene.HitTest(50, 50); hit != a {
		t.Errorf("expected node a (higher ZIndex), got %v", hit)
	}
}

func TestHitTest_TransformedNode(t *testing.T) {
	h := newHarness(t)
	parent := NewNode("parent")
	parent.X, parent.Y = 100, 100
	parent.ScaleX, parent.ScaleY = 2, 2
	h.scene.Root().AddChild(parent)
	child := h.box("child", parent, 10, 10) // world (120,120)-(320,320)

	if h.scene.HitTest(110, 110) != nil {
		t.Error("expected miss before the child's origin")
	}
	if h.scene.HitTest(300, 300) != child {
		t.Error("expected hit inside the scaled child")
	}
	if h.scene.HitTest(200, 200) == nil {
		t.Fatal("expected a hit")
	}
	lx, ly := child.WorldToLocal(300, 300)
	if lx != 90 || ly != 90 {
		t.Errorf("WorldToLocal = (%v, %v), want (90, 90)", lx, ly)
	}
}

// --- Frame diffing ---

func TestFeedDiffsFrames(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	b := h.box("b", nil, 200, 0)
	var rec recorder
	rec.raw(a)
	rec.raw(b)

	now := h.clock.now
	h.scene.feed([]ContactPoint{pt(1, 10, 10), pt(2, 210, 10)}, now, false)
	h.scene.feed([]ContactPoint{pt(1, 10, 10), pt(2, 220, 10)}, now, false) // only 2 moves
	h.scene.feed([]ContactPoint{pt(2, 220, 10)}, now, false)                 // 1 lifts
	h.scene.feed(nil, now, true)                                             // 2 cancelled

	want := []string{
		"a.touchstart", "b.touchstart",
		"b.touchmove",
		"a.touchend",
		"b.touchcancel",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("raw events mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedFollowsCapturedNode(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	b := h.box("b", nil, 200, 0)
	var rec recorder
	rec.raw(a)
	rec.raw(b)

	now := h.clock.now
	h.scene.feed([]ContactPoint{pt(1, 10, 10)}, now, false)
	h.scene.feed([]ContactPoint{pt(1, 250, 10)}, now, false) // dragged over b
	h.scene.feed(nil, now, false)

	want := []string{"a.touchstart", "a.touchmove", "a.touchend"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("raw events mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedStartsMissingEverythingAreDropped(t *testing.T) {
	h := newHarness(t)
	a := h.box("a", nil, 0, 0)
	var rec recorder
	rec.raw(a)

	now := h.clock.now
	h.scene.feed([]ContactPoint{pt(1, 500, 500)}, now, false)
	h.scene.feed([]ContactPoint{pt(1, 50, 50)}, now, false)
	h.scene.feed(nil, now, false)

	if len(rec.calls) != 0 {
		t.Errorf("expected no raw events, got %v", rec.calls)
	}
}
