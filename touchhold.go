package touch

import "time"

const (
	defaultHoldPeriod        = 2000 * time.Millisecond
	defaultHoldMoveThreshold = 50.0 // pixels
)

// touchHoldRecognizer fires End on its own once the contacts have stayed
// down for holdPeriod. Moving moveThreshold or more from the starting
// centroid cancels it, and so does lifting early: the timer decides the
// outcome, never the end of the touch.
//
// Options: numberOfRequiredTouches (default 1), holdPeriod (default
// 2000ms), moveThreshold (default 50px).
type touchHoldRecognizer struct {
	BaseRecognizer
	holdPeriod    time.Duration
	moveThreshold float64

	initialLocation Vec2
	endTimer        *Timer
}

// NewTouchHoldRecognizer is the registry factory for "touchHold".
func NewTouchHoldRecognizer(opts Options) Recognizer {
	return &touchHoldRecognizer{
		BaseRecognizer: BaseRecognizer{
			Touches:    opts.Int(OptNumberOfRequiredTouches, 1, 1),
			IsDiscrete: true,
		},
		holdPeriod:    opts.Duration(OptHoldPeriod, defaultHoldPeriod),
		moveThreshold: opts.Float(OptMoveThreshold, defaultHoldMoveThreshold),
	}
}

func (h *touchHoldRecognizer) ShouldBegin(g *Gesture) bool {
	return len(g.Touches()) == g.NumberOfRequiredTouches()
}

func (h *touchHoldRecognizer) DidBegin(g *Gesture) {
	h.initialLocation = g.Centroid()
	h.disableEndTimer()
	h.endTimer = g.schedule(h.holdPeriod, func() { h.endFired(g) })
}

func (h *touchHoldRecognizer) DidChange(g *Gesture) {
	if distanceBetween(h.initialLocation, g.Centroid()) >= h.moveThreshold {
		h.disableEndTimer()
		g.setState(StateCancelled)
	}
}

// ShouldEnd is reached when the contacts lift before the timer fired.
func (h *touchHoldRecognizer) ShouldEnd(g *Gesture) bool {
	h.disableEndTimer()
	return false
}

func (h *touchHoldRecognizer) DidCancel(g *Gesture) {
	h.disableEndTimer()
}

// endFired runs on the scheduler. The contacts stay tracked until they
// lift so a late touch end finds the gesture resolved.
func (h *touchHoldRecognizer) endFired(g *Gesture) {
	h.endTimer = nil
	if g.state != StateBegan && g.state != StateChanged {
		return
	}
	g.setState(StateEnded)
	g.deliver(g.began, PhaseEnd)
}

func (h *touchHoldRecognizer) disableEndTimer() {
	h.endTimer.Stop()
	h.endTimer = nil
}
