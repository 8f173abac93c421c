package touch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GestureHandler receives a semantic gesture callback. Returning false
// rejects the event: the recognizer rolls its outputs (Translation, Scale,
// Velocity) back to their values before the update. The state transition
// itself stands.
type GestureHandler func(g *Gesture) bool

// GestureHandlers declares which phases of one gesture a node wants. A node
// gets a recognizer for a gesture only if at least one handler is set.
type GestureHandlers struct {
	Start  GestureHandler
	Change GestureHandler
	End    GestureHandler
	Cancel GestureHandler
}

func (h GestureHandlers) defined() bool {
	return h.Start != nil || h.Change != nil || h.End != nil || h.Cancel != nil
}

func (h GestureHandlers) handler(p Phase) GestureHandler {
	switch p {
	case PhaseStart:
		return h.Start
	case PhaseChange:
		return h.Change
	case PhaseEnd:
		return h.End
	case PhaseCancel:
		return h.Cancel
	}
	return nil
}

// Recognizer supplies the gesture-specific hooks of the shared state
// machine. Hooks run synchronously while a raw event (or a timer) is
// processed and may read and write the Gesture's outputs.
type Recognizer interface {
	// Discrete gestures skip StatePossible and only ever deliver End.
	Discrete() bool
	// RequiredTouches is the number of contacts the gesture collects.
	RequiredTouches() int

	DidBecomePossible(g *Gesture)
	ShouldBegin(g *Gesture) bool
	DidBegin(g *Gesture)
	DidChange(g *Gesture)
	EventWasRejected(g *Gesture)
	ShouldEnd(g *Gesture) bool
	DidEnd(g *Gesture)
	DidCancel(g *Gesture)
}

// BaseRecognizer implements every Recognizer hook as a no-op. Embed it and
// override what the gesture needs.
type BaseRecognizer struct {
	Touches    int
	IsDiscrete bool
}

func (b *BaseRecognizer) Discrete() bool { return b.IsDiscrete }

func (b *BaseRecognizer) RequiredTouches() int {
	if b.Touches < 1 {
		return 1
	}
	return b.Touches
}

func (b *BaseRecognizer) DidBecomePossible(*Gesture) {}
func (b *BaseRecognizer) ShouldBegin(*Gesture) bool { return true }
func (b *BaseRecognizer) DidBegin(*Gesture) {}
func (b *BaseRecognizer) DidChange(*Gesture) {}
func (b *BaseRecognizer) EventWasRejected(*Gesture) {}
func (b *BaseRecognizer) ShouldEnd(*Gesture) bool { return true }
func (b *BaseRecognizer) DidEnd(*Gesture) {}
func (b *BaseRecognizer) DidCancel(*Gesture) {}

// awaiter is implemented by recognizers that can defer resolution past a
// touch end (multi-tap). When ShouldEnd is false and awaitingMore is true
// the gesture neither ends nor cancels.
type awaiter interface {
	awaitingMore() bool
}

// Gesture is one recognizer instance attached to one node. It owns the
// contact set, runs the shared lifecycle and exposes the computed outputs
// to the node's handlers.
type Gesture struct {
	// Translation is the centroid movement since the previous change (pan).
	Translation Vec2
	// Scale is the contact distance relative to the previous sample (pinch).
	Scale float64
	// Velocity is the contact distance change per second since the
	// previous sample (pinch).
	Velocity float64

	name           string
	state          GestureState
	resolved       GestureState
	touches        TouchSet
	required       int
	discrete       bool
	preventDefault bool
	enabled        bool
	began          *Node
	session        string
	impl           Recognizer
	manager        *GestureManager
}

func newGesture(name string, impl Recognizer, opts Options, m *GestureManager) *Gesture {
	g := &Gesture{
		Scale:          1,
		name:           name,
		state:          StateWaitingForTouches,
		resolved:       StateWaitingForTouches,
		required:       impl.RequiredTouches(),
		discrete:       impl.Discrete(),
		preventDefault: opts.Bool(OptPreventDefaultOnChange, false),
		enabled:        true,
		impl:           impl,
		manager:        m,
	}
	if g.required < 1 {
		g.required = 1
	}
	return g
}

// Name returns the registry name of the gesture ("pan", "tap", ...).
func (g *Gesture) Name() string { return g.name }

// State returns the current lifecycle state.
func (g *Gesture) State() GestureState { return g.state }

// Resolution returns the terminal state (StateEnded or StateCancelled) of
// the most recent recognition attempt. It is StateWaitingForTouches while
// an attempt is open, and stays so for an attempt abandoned without
// resolving, such as a pan whose contacts lift before it begins. The live
// state returns to StateWaitingForTouches as soon as contacts lift, so this
// is how callers learn how the attempt finished.
func (g *Gesture) Resolution() GestureState { return g.resolved }

// NumberOfRequiredTouches returns the contact count the gesture collects.
func (g *Gesture) NumberOfRequiredTouches() int { return g.required }

// Discrete reports whether the gesture only delivers End.
func (g *Gesture) Discrete() bool { return g.discrete }

// Enabled reports whether the gesture takes part in event delivery.
func (g *Gesture) Enabled() bool { return g.enabled }

// SetEnabled includes or excludes the gesture from event delivery.
// Disabling an in-flight gesture abandons it without callbacks.
func (g *Gesture) SetEnabled(enabled bool) {
	if g.enabled == enabled {
		return
	}
	g.enabled = enabled
	if !enabled {
		g.abort()
	}
}

// Touches returns the tracked contacts. The slice MUST NOT be mutated.
func (g *Gesture) Touches() []ContactPoint { return g.touches.Points() }

// Timestamp returns the time of the last contact update.
func (g *Gesture) Timestamp() time.Time { return g.touches.Timestamp }

// Centroid returns the mean position of the tracked contacts.
func (g *Gesture) Centroid() Vec2 { return Centroid(g.touches.Points()) }

// Node returns the node the current recognition attempt began on.
func (g *Gesture) Node() *Node { return g.began }

// Manager returns the manager that owns the gesture.
func (g *Gesture) Manager() *GestureManager { return g.manager }

// SessionID identifies the recognition attempt that most recently began.
// It is empty until the gesture first begins.
func (g *Gesture) SessionID() string { return g.session }

// Recognizer returns the gesture-specific hooks.
func (g *Gesture) Recognizer() Recognizer { return g.impl }

func (g *Gesture) String() string {
	return fmt.Sprintf("%s<%s>", g.name, g.state)
}

// collecting reports whether the gesture holds some, but not all, of its
// required contacts.
func (g *Gesture) collecting() bool {
	return g.state == StateWaitingForTouches && g.touches.Len() > 0
}

// --- Raw event handling ---

func (g *Gesture) handle(evt TouchEvent) {
	switch evt.Type {
	case EventTouchStart:
		g.touchStart(evt)
	case EventTouchMove:
		g.touchMove(evt)
	case EventTouchEnd:
		g.touchEnd(evt)
	case EventTouchCancel:
		g.touchCancel(evt)
	}
}

func (g *Gesture) touchStart(evt TouchEvent) {
	node := g.manager.node
	if g.state != StateWaitingForTouches {
		// Already tracking a full set; extra contacts belong to someone else.
		g.manager.Redispatch(node, evt, false)
		return
	}

	g.touches.Timestamp = evt.Timestamp
	for _, p := range evt.Changed {
		if g.touches.Len() >= g.required {
			break
		}
		g.touches.Add(p)
	}

	if g.touches.Len() >= g.required {
		g.resolved = StateWaitingForTouches
		if g.discrete {
			if g.impl.ShouldBegin(g) {
				g.begin(node)
			}
		} else {
			g.setState(StatePossible)
			g.impl.DidBecomePossible(g)
		}
	}

	g.manager.Redispatch(node, evt, false)
}

func (g *Gesture) touchMove(evt TouchEvent) {
	node := g.manager.node
	switch g.state {
	case StateWaitingForTouches, StateEnded, StateCancelled:
		g.manager.Redispatch(node, evt, false)
		return
	}
	if g.applyUpdates(evt) == 0 {
		g.manager.Redispatch(node, evt, false)
		return
	}

	prevented := false
	switch {
	case g.state == StatePossible && !g.discrete:
		if g.impl.ShouldBegin(g) {
			g.begin(node)
			// Let the gesture compute its outputs so Start carries them.
			g.impl.DidChange(g)
			prevented = g.preventDefault
			g.deliver(node, PhaseStart)
		}
	case g.state == StateBegan || g.state == StateChanged:
		g.setState(StateChanged)
		g.impl.DidChange(g)
		prevented = g.preventDefault
		if !g.discrete {
			g.deliver(node, PhaseChange)
		}
	}

	g.manager.Redispatch(node, evt, prevented)
}

func (g *Gesture) touchEnd(evt TouchEvent) {
	node := g.manager.node
	if g.touches.Len() == 0 || (len(evt.Changed) > 0 && g.applyUpdates(evt) == 0) {
		g.manager.Redispatch(node, evt, false)
		return
	}
	g.touches.Timestamp = evt.Timestamp

	consumed := false
	if g.state == StateBegan || g.state == StateChanged {
		switch {
		case g.impl.ShouldEnd(g):
			g.setState(StateEnded)
			g.impl.DidEnd(g)
			g.deliver(node, PhaseEnd)
			consumed = true
		case g.awaitingMore():
			// Part of a longer sequence; the next start continues it.
		case g.discrete:
			g.setState(StateCancelled)
			g.impl.DidCancel(g)
		}
	}

	if !consumed {
		g.manager.Redispatch(node, evt, false)
	}
	g.reset()
}

func (g *Gesture) touchCancel(evt TouchEvent) {
	node := g.manager.node
	if g.touches.Len() > 0 && len(evt.Changed) > 0 && !g.owns(evt) {
		g.manager.Redispatch(node, evt, false)
		return
	}

	switch g.state {
	case StatePossible, StateBegan, StateChanged:
		g.setState(StateCancelled)
		g.impl.DidCancel(g)
		if !g.discrete {
			// Best effort: a node without a Cancel handler is not an error.
			g.notify(node, PhaseCancel)
		}
	default:
		// Releases anything the recognizer still holds, such as timers.
		g.impl.DidCancel(g)
		g.manager.Redispatch(node, evt, false)
	}
	g.reset()
}

// applyUpdates copies the changed contacts this gesture tracks into its
// set and returns how many matched.
func (g *Gesture) applyUpdates(evt TouchEvent) int {
	matched := 0
	for _, p := range evt.Changed {
		if _, ok := g.touches.Find(p.ID); ok {
			g.touches.Update(p)
			matched++
		}
	}
	if matched > 0 {
		g.touches.Timestamp = evt.Timestamp
	}
	return matched
}

func (g *Gesture) owns(evt TouchEvent) bool {
	for _, p := range evt.Changed {
		if _, ok := g.touches.Find(p.ID); ok {
			return true
		}
	}
	return false
}

func (g *Gesture) awaitingMore() bool {
	a, ok := g.impl.(awaiter)
	return ok && a.awaitingMore()
}

func (g *Gesture) begin(node *Node) {
	g.setState(StateBegan)
	g.began = node
	g.session = uuid.NewString()
	g.impl.DidBegin(g)
}

// deliver notifies the node and rolls the outputs back if it declines.
func (g *Gesture) deliver(node *Node, phase Phase) {
	if !g.notify(node, phase) {
		g.impl.EventWasRejected(g)
	}
}

// notify invokes the node's handler for phase and reports whether it
// accepted. A missing handler counts as a rejection.
func (g *Gesture) notify(node *Node, phase Phase) bool {
	if node == nil || node.disposed {
		return false
	}
	handled := false
	if h := node.Gestures[g.name].handler(phase); h != nil {
		handled = h(g)
	}
	g.manager.scene.emitGesture(g, node, phase, handled)
	return handled
}

func (g *Gesture) setState(s GestureState) {
	if g.state == s {
		return
	}
	prev := g.state
	g.state = s
	if s == StateEnded || s == StateCancelled {
		g.resolved = s
	}
	if sc := g.manager.scene; sc.debug {
		sc.log.Debug("gesture state",
			zap.String("gesture", g.name),
			zap.String("node", g.manager.node.Name),
			zap.Stringer("from", prev),
			zap.Stringer("to", s),
			zap.String("session", g.session),
		)
	}
}

// reset clears the contacts and returns to collecting.
func (g *Gesture) reset() {
	g.touches.Clear()
	g.state = StateWaitingForTouches
}

// abort drops the gesture without callbacks, releasing recognizer
// resources. Used after a failure and when a gesture is disabled.
func (g *Gesture) abort() {
	g.reset()
	defer func() { _ = recover() }()
	g.impl.DidCancel(g)
}

// schedule posts fn to the scene scheduler d after the last contact update.
// fn is skipped if the gesture has since been disabled.
func (g *Gesture) schedule(d time.Duration, fn func()) *Timer {
	return g.manager.scene.timers.Schedule(g.touches.Timestamp.Add(d), func(time.Time) {
		if g.enabled {
			fn()
		}
	})
}
