package touch

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the (0, 0, Width, Height) box. Nodes with
// neither are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree depth first in ZIndex order, appending
// hit-testable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Width != 0 || n.Height != 0 {
		buf = append(buf, n)
	}
	for _, child := range n.sortedChildList() {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// HitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) HitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward: later siblings and higher ZIndex are on top.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput polls ebiten for the contacts that are down this frame and
// dispatches the difference from the previous frame.
func (s *Scene) processInput(now time.Time) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	current := make([]ContactPoint, 0, len(s.touchIDs)+1)
	for _, tid := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		current = append(current, ContactPoint{ID: ContactID(tid), X: float64(tx), Y: float64(ty)})
	}
	if s.mouseAsTouch && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		current = append(current, ContactPoint{ID: mouseContactID, X: float64(mx), Y: float64(my)})
	}
	s.feed(current, now, false)
}

// feed compares the contacts down this frame with the previous frame and
// dispatches starts (grouped by hit node), then moves, then ends. With
// cancel set, contacts that disappeared are cancelled instead of ended.
func (s *Scene) feed(current []ContactPoint, now time.Time, cancel bool) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	var stats inputStats

	var started, moved, lifted []ContactPoint
	for _, p := range current {
		prev, ok := findContact(s.live, p.ID)
		switch {
		case !ok:
			started = append(started, p)
		case prev.X != p.X || prev.Y != p.Y:
			moved = append(moved, p)
		}
	}
	for _, p := range s.live {
		if !containsContact(current, p.ID) {
			lifted = append(lifted, p)
		}
	}
	s.live = append(s.live[:0], current...)

	if len(started) > 0 {
		type group struct {
			node   *Node
			points []ContactPoint
		}
		var groups []group
		for _, p := range started {
			n := s.HitTest(p.X, p.Y)
			if n == nil {
				continue
			}
			i := 0
			for i < len(groups) && groups[i].node != n {
				i++
			}
			if i == len(groups) {
				groups = append(groups, group{node: n})
			}
			groups[i].points = append(groups[i].points, p)
		}
		for _, g := range groups {
			s.Dispatch(g.node, TouchEvent{Type: EventTouchStart, Changed: g.points, Timestamp: now})
		}
		stats.starts = len(started)
	}
	if len(moved) > 0 {
		s.Dispatch(nil, TouchEvent{Type: EventTouchMove, Changed: moved, Timestamp: now})
		stats.moves = len(moved)
	}
	if len(lifted) > 0 {
		typ := EventTouchEnd
		if cancel {
			typ = EventTouchCancel
			stats.cancels = len(lifted)
		} else {
			stats.ends = len(lifted)
		}
		s.Dispatch(nil, TouchEvent{Type: typ, Changed: lifted, Timestamp: now})
	}

	if s.debug && stats.any() {
		stats.contacts = len(s.live)
		stats.timers = s.timers.Len()
		stats.dispatchTime = time.Since(t0)
		s.debugLog(stats)
	}
}

func findContact(points []ContactPoint, id ContactID) (ContactPoint, bool) {
	for _, p := range points {
		if p.ID == id {
			return p, true
		}
	}
	return ContactPoint{}, false
}
