package touch

import (
	"math"
	"time"
)

const defaultPinchThreshold = 5.0 // pixels

// pinchRecognizer recognizes a two-finger pinch. Gesture.Scale is the ratio
// of the current contact distance to the previous sample's, so a handler
// can multiply it straight into a node's scale. Gesture.Velocity is the
// distance change per second over the same interval.
//
// Options: deltaThreshold (default 5px distance change before the pinch
// begins).
type pinchRecognizer struct {
	BaseRecognizer
	threshold float64

	startingDistance  float64
	previousDistance  float64
	previousTimestamp time.Time
	previousScale     float64
	previousVelocity  float64
}

// NewPinchRecognizer is the registry factory for "pinch".
func NewPinchRecognizer(opts Options) Recognizer {
	return &pinchRecognizer{
		BaseRecognizer: BaseRecognizer{Touches: 2},
		threshold:      opts.Float(OptDeltaThreshold, defaultPinchThreshold),
		previousScale:  1,
	}
}

func (p *pinchRecognizer) DidBecomePossible(g *Gesture) {
	p.startingDistance = Distance(g.Touches())
	p.previousDistance = p.startingDistance
	p.previousTimestamp = g.Timestamp()
	p.previousScale, p.previousVelocity = 1, 0
	g.Scale, g.Velocity = 1, 0
}

func (p *pinchRecognizer) ShouldBegin(g *Gesture) bool {
	return math.Abs(Distance(g.Touches())-p.startingDistance) >= p.threshold
}

func (p *pinchRecognizer) DidChange(g *Gesture) {
	p.previousScale = g.Scale
	p.previousVelocity = g.Velocity

	current := Distance(g.Touches())
	elapsed := g.Timestamp().Sub(p.previousTimestamp).Seconds()

	g.Velocity = 0
	if elapsed > 0 {
		g.Velocity = (current - p.previousDistance) / elapsed
	}
	g.Scale = 1
	if p.previousDistance > 0 {
		g.Scale = current / p.previousDistance
	}

	p.previousTimestamp = g.Timestamp()
	p.previousDistance = current
}

func (p *pinchRecognizer) EventWasRejected(g *Gesture) {
	g.Scale = p.previousScale
	g.Velocity = p.previousVelocity
}
