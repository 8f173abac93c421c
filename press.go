package touch

import "time"

const (
	defaultPressPeriod        = 500 * time.Millisecond
	defaultPressMoveThreshold = 10.0 // pixels
)

// pressRecognizer recognizes a press: contacts held in place for at least
// pressPeriodThreshold before lifting. Presses are discrete.
//
// Options: numberOfRequiredTouches (default 1), pressPeriodThreshold
// (default 500ms), moveThreshold (default 10px).
type pressRecognizer struct {
	BaseRecognizer
	period        time.Duration
	moveThreshold float64

	initialLocation  Vec2
	initialTimestamp time.Time
}

// NewPressRecognizer is the registry factory for "press".
func NewPressRecognizer(opts Options) Recognizer {
	return &pressRecognizer{
		BaseRecognizer: BaseRecognizer{
			Touches:    opts.Int(OptNumberOfRequiredTouches, 1, 1),
			IsDiscrete: true,
		},
		period:        opts.Duration(OptPressPeriodThreshold, defaultPressPeriod),
		moveThreshold: opts.Float(OptMoveThreshold, defaultPressMoveThreshold),
	}
}

func (p *pressRecognizer) ShouldBegin(g *Gesture) bool {
	return len(g.Touches()) == g.NumberOfRequiredTouches()
}

func (p *pressRecognizer) DidBegin(g *Gesture) {
	p.initialLocation = g.Centroid()
	p.initialTimestamp = g.Timestamp()
}

func (p *pressRecognizer) ShouldEnd(g *Gesture) bool {
	stayed := distanceBetween(p.initialLocation, g.Centroid()) < p.moveThreshold
	held := g.Timestamp().Sub(p.initialTimestamp) >= p.period
	return stayed && held
}

func (p *pressRecognizer) DidEnd(g *Gesture) {
	p.resetCounters()
}

func (p *pressRecognizer) DidCancel(g *Gesture) {
	p.resetCounters()
}

func (p *pressRecognizer) resetCounters() {
	p.initialLocation = Vec2{}
	p.initialTimestamp = time.Time{}
}
