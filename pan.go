package touch

const defaultPanThreshold = 5.0 // pixels

// panRecognizer recognizes a multi-touch pan. It tracks the centroid of the
// contacts and reports, on every change, how far it moved since the
// previous change in Gesture.Translation.
//
// Options: numberOfRequiredTouches (default 1), translationThreshold
// (default 5px of centroid movement before the pan begins).
type panRecognizer struct {
	BaseRecognizer
	threshold float64

	previousLocation    Vec2
	previousTranslation Vec2
}

// NewPanRecognizer is the registry factory for "pan".
func NewPanRecognizer(opts Options) Recognizer {
	return &panRecognizer{
		BaseRecognizer: BaseRecognizer{Touches: opts.Int(OptNumberOfRequiredTouches, 1, 1)},
		threshold:      opts.Float(OptTranslationThreshold, defaultPanThreshold),
	}
}

func (p *panRecognizer) DidBecomePossible(g *Gesture) {
	p.previousLocation = g.Centroid()
	p.previousTranslation = Vec2{}
	g.Translation = Vec2{}
}

func (p *panRecognizer) ShouldBegin(g *Gesture) bool {
	return distanceBetween(p.previousLocation, g.Centroid()) >= p.threshold
}

func (p *panRecognizer) DidChange(g *Gesture) {
	current := g.Centroid()
	p.previousTranslation = g.Translation
	g.Translation = current.Sub(p.previousLocation)
	p.previousLocation = current
}

func (p *panRecognizer) EventWasRejected(g *Gesture) {
	g.Translation = p.previousTranslation
}

func (p *panRecognizer) DidEnd(g *Gesture) {
	p.previousTranslation = Vec2{}
}

func (p *panRecognizer) DidCancel(g *Gesture) {
	p.previousTranslation = Vec2{}
}
