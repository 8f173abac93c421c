package touch

import (
	"time"

	"go.uber.org/zap"
)

const (
	defaultTapMoveThreshold = 10.0 // pixels
	defaultMultiTapDelay    = 150 * time.Millisecond
)

// tapRecognizer recognizes one or more quick taps. Taps are discrete, so
// only End reaches the node. A tap fails if the contacts drift 10px or more
// before lifting.
//
// With numberOfTaps > 1 every tap but the last opens a window of
// multiTapDelay in which the next tap must start; End is delivered when the
// final tap lifts. A window that closes first abandons the sequence.
//
// Options: numberOfRequiredTouches (default 1), numberOfTaps (default 1),
// moveThreshold (default 10px), multiTapDelay (default 150ms).
type tapRecognizer struct {
	BaseRecognizer
	numberOfTaps  int
	moveThreshold float64
	delay         time.Duration

	initialLocation Vec2
	tapsReceived    int
	waiting         bool
	window          *Timer
}

// NewTapRecognizer is the registry factory for "tap".
func NewTapRecognizer(opts Options) Recognizer {
	return &tapRecognizer{
		BaseRecognizer: BaseRecognizer{
			Touches:    opts.Int(OptNumberOfRequiredTouches, 1, 1),
			IsDiscrete: true,
		},
		numberOfTaps:  opts.Int(OptNumberOfTaps, 1, 1),
		moveThreshold: opts.Float(OptMoveThreshold, defaultTapMoveThreshold),
		delay:         opts.Duration(OptMultiTapDelay, defaultMultiTapDelay),
	}
}

func (t *tapRecognizer) ShouldBegin(g *Gesture) bool {
	return len(g.Touches()) == g.NumberOfRequiredTouches()
}

func (t *tapRecognizer) DidBegin(g *Gesture) {
	t.initialLocation = g.Centroid()
	if t.waiting {
		// The next tap of the sequence arrived inside the window.
		t.window.Stop()
		t.window = nil
		t.waiting = false
	}
}

func (t *tapRecognizer) ShouldEnd(g *Gesture) bool {
	if distanceBetween(t.initialLocation, g.Centroid()) >= t.moveThreshold {
		return false
	}
	t.tapsReceived++
	if t.tapsReceived < t.numberOfTaps {
		t.waiting = true
		t.window = g.schedule(t.delay, func() { t.windowClosed(g) })
		return false
	}
	return true
}

func (t *tapRecognizer) awaitingMore() bool {
	return t.waiting
}

func (t *tapRecognizer) DidEnd(g *Gesture) {
	t.resetSequence()
}

func (t *tapRecognizer) DidCancel(g *Gesture) {
	t.resetSequence()
}

func (t *tapRecognizer) windowClosed(g *Gesture) {
	if !t.waiting {
		return
	}
	received := t.tapsReceived
	t.window = nil
	t.resetSequence()
	g.resolved = StateCancelled
	if sc := g.manager.scene; sc.debug {
		sc.log.Debug("multi-tap window closed",
			zap.String("node", g.manager.node.Name),
			zap.Int("taps", received),
			zap.Int("want", t.numberOfTaps),
		)
	}
}

func (t *tapRecognizer) resetSequence() {
	t.window.Stop()
	t.window = nil
	t.waiting = false
	t.tapsReceived = 0
}
