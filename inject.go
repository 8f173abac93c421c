package touch

import "time"

// Contact IDs used by the injection helpers. They are negative so they never
// collide with device touch IDs.
const (
	InjectContactID   ContactID = -100
	InjectSecondaryID ContactID = -101
)

const (
	defaultInjectFrames  = 2
	minimumPinchDistance = 1.0
)

// injectFrame is the full set of contacts down during one injected frame.
// Contacts missing from the previous frame lift; with cancel set they are
// cancelled instead.
type injectFrame struct {
	points []ContactPoint
	cancel bool
}

// tail returns the contacts down after every queued frame has run.
func (s *Scene) tail() []ContactPoint {
	if len(s.injectQueue) == 0 {
		return s.live
	}
	return s.injectTail
}

func (s *Scene) pushFrame(points []ContactPoint, cancel bool) {
	s.injectQueue = append(s.injectQueue, injectFrame{points: points, cancel: cancel})
	s.injectTail = points
}

// InjectStart queues a frame in which contact id goes down at (x, y) in
// world coordinates. Contacts already down stay down. The frame is consumed
// by the next Update call, which skips device input for that frame.
func (s *Scene) InjectStart(id ContactID, x, y float64) {
	prev := s.tail()
	points := make([]ContactPoint, 0, len(prev)+1)
	for _, p := range prev {
		if p.ID != id {
			points = append(points, p)
		}
	}
	s.pushFrame(append(points, ContactPoint{ID: id, X: x, Y: y}), false)
}

// InjectMove queues a frame in which contact id is at (x, y).
func (s *Scene) InjectMove(id ContactID, x, y float64) {
	prev := s.tail()
	points := make([]ContactPoint, len(prev))
	copy(points, prev)
	for i := range points {
		if points[i].ID == id {
			points[i].X, points[i].Y = x, y
		}
	}
	s.pushFrame(points, false)
}

// InjectEnd queues a frame in which contact id lifts.
func (s *Scene) InjectEnd(id ContactID) {
	s.pushFrame(without(s.tail(), id), false)
}

// InjectCancel queues a frame in which contact id is cancelled.
func (s *Scene) InjectCancel(id ContactID) {
	s.pushFrame(without(s.tail(), id), true)
}

// InjectTap queues a tap at (x, y): a start followed by an end at the same
// position. Consumes two frames.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectStart(InjectContactID, x, y)
	s.InjectEnd(InjectContactID)
}

// InjectDrag queues a full drag sequence: start at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, a final
// move to (toX, toY) and the end. Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < defaultInjectFrames {
		frames = defaultInjectFrames
	}
	s.InjectStart(InjectContactID, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(InjectContactID, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMove(InjectContactID, toX, toY)
	s.InjectEnd(InjectContactID)
}

// InjectPinch queues a two-contact pinch centered on (cx, cy). The contacts
// sit on a horizontal line fromDist apart and move symmetrically until they
// are toDist apart, over frames-2 intermediate frames.
func (s *Scene) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < defaultInjectFrames {
		frames = defaultInjectFrames
	}
	fromDist = max(fromDist, minimumPinchDistance)
	toDist = max(toDist, minimumPinchDistance)

	prev := without(without(s.tail(), InjectContactID), InjectSecondaryID)
	pair := func(d float64) []ContactPoint {
		points := make([]ContactPoint, len(prev), len(prev)+2)
		copy(points, prev)
		return append(points,
			ContactPoint{ID: InjectContactID, X: cx - d/2, Y: cy},
			ContactPoint{ID: InjectSecondaryID, X: cx + d/2, Y: cy},
		)
	}

	s.pushFrame(pair(fromDist), false)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.pushFrame(pair(fromDist+(toDist-fromDist)*t), false)
	}
	s.pushFrame(pair(toDist), false)
	s.pushFrame(prev, false)
}

// processInjectedInput pops one frame from the inject queue and feeds it
// through the same diffing as device input. Returns true if a frame was
// consumed (device input should be skipped).
func (s *Scene) processInjectedInput(now time.Time) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	f := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = injectFrame{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.feed(f.points, now, f.cancel)
	return true
}

func without(points []ContactPoint, id ContactID) []ContactPoint {
	out := make([]ContactPoint, 0, len(points))
	for _, p := range points {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
