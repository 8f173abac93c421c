package touch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrRecognizerPanic wraps a panic recovered while a recognizer (or a node
// handler it called) processed an event.
var ErrRecognizerPanic = errors.New("touch: recognizer panicked")

// InvokeResult is the isolated outcome of passing one event to one gesture.
type InvokeResult struct {
	Gesture *Gesture
	Err     error
}

// OK reports whether the gesture processed the event without failing.
func (r InvokeResult) OK() bool { return r.Err == nil }

// redispatchEntry is one raw event queued for delivery to a node's plain
// touch handlers at the end of a pass.
type redispatchEntry struct {
	node      *Node
	evt       TouchEvent
	prevented bool
}

// GestureManager owns the recognizers of one node. It relays raw events to
// them, decides which manager absorbs a new contact batch, and re-delivers
// the raw events the recognizers did not consume to the node's plain
// handlers.
type GestureManager struct {
	node     *Node
	scene    *Scene
	gestures []*Gesture
	queue    []redispatchEntry
}

// newGestureManager builds a recognizer for every registered gesture the
// node declares handlers for, in registry order. It returns nil when the
// node declares none.
func newGestureManager(s *Scene, n *Node, reg *Registry) *GestureManager {
	m := &GestureManager{node: n, scene: s}
	for _, name := range reg.Names() {
		if !n.Gestures[name].defined() {
			continue
		}
		opts := n.GestureOptions[name]
		if bad := opts.invalidKeys(); len(bad) > 0 {
			s.log.Warn("invalid gesture options, using defaults",
				zap.String("node", n.Name),
				zap.String("gesture", name),
				zap.Strings("keys", bad),
			)
		}
		impl, err := reg.New(name, opts)
		if err != nil {
			s.log.Error("building recognizer", zap.String("node", n.Name), zap.Error(err))
			continue
		}
		m.gestures = append(m.gestures, newGesture(name, impl, opts, m))
	}
	if len(m.gestures) == 0 {
		return nil
	}
	return m
}

// Node returns the node the manager is attached to.
func (m *GestureManager) Node() *Node { return m.node }

// Gestures returns the recognizers in delivery order. The returned slice
// MUST NOT be mutated by the caller.
func (m *GestureManager) Gestures() []*Gesture { return m.gestures }

// Gesture returns the recognizer registered under name, or nil.
func (m *GestureManager) Gesture(name string) *Gesture {
	for _, g := range m.gestures {
		if g.name == name {
			return g
		}
	}
	return nil
}

// claimStart returns the manager that takes a new contact batch landing on
// m's node: a collecting ancestor if there is one, otherwise the nearest
// manager that can process it.
func (m *GestureManager) claimStart() *GestureManager {
	if waiting := m.waitingAncestor(); waiting != nil {
		// An ancestor is still collecting contacts: the whole batch is
		// its, so no competing session starts down here.
		if m.scene.debug {
			m.scene.log.Debug("start redirected to collecting ancestor",
				zap.String("from", m.node.Name),
				zap.String("to", waiting.node.Name),
			)
		}
		return waiting
	}
	return m.claim()
}

// claim returns the nearest manager at or above m with an enabled gesture,
// or the topmost manager when none has one.
func (m *GestureManager) claim() *GestureManager {
	pm := m
	for !pm.active() {
		parent := m.scene.managerAbove(pm.node)
		if parent == nil {
			break
		}
		pm = parent
	}
	return pm
}

func (m *GestureManager) active() bool {
	for _, g := range m.gestures {
		if g.enabled {
			return true
		}
	}
	return false
}

// waitingAncestor returns the nearest ancestor manager holding a gesture
// that has some but not all of its contacts.
func (m *GestureManager) waitingAncestor() *GestureManager {
	for p := m.node.Parent; p != nil; p = p.Parent {
		pm := m.scene.managerFor(p)
		if pm == nil {
			continue
		}
		for _, g := range pm.gestures {
			if g.enabled && g.collecting() {
				return pm
			}
		}
	}
	return nil
}

// invoke runs one pass: every enabled gesture sees evt in order, each in
// isolation. With no enabled gesture the raw event goes to the nearest
// ancestor manager. The redispatch queue is flushed at the end. A pass
// started by a handler during another pass keeps its own queue.
func (m *GestureManager) invoke(evt TouchEvent) (*GestureManager, []InvokeResult) {
	outer := m.queue
	m.queue = nil
	defer func() { m.queue = outer }()

	absorbed := m
	wasCalled := false
	results := make([]InvokeResult, 0, len(m.gestures))
	for _, g := range m.gestures {
		if !g.enabled {
			continue
		}
		wasCalled = true
		results = append(results, m.invokeGesture(g, evt))
	}

	if !wasCalled {
		if parent := m.scene.managerAbove(m.node); parent != nil {
			var more []InvokeResult
			absorbed, more = parent.invoke(evt)
			results = append(results, more...)
		} else {
			m.Redispatch(m.node, evt, false)
		}
	}

	m.flush()
	return absorbed, results
}

func (m *GestureManager) invokeGesture(g *Gesture, evt TouchEvent) (res InvokeResult) {
	res.Gesture = g
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %s on %q during %s: %v", ErrRecognizerPanic, g.name, m.node.Name, evt.Type, r)
			m.scene.log.Error("recognizer failed",
				zap.String("gesture", g.name),
				zap.String("node", m.node.Name),
				zap.Stringer("event", evt.Type),
				zap.Error(res.Err),
			)
			g.abort()
		}
	}()
	g.handle(evt)
	return res
}

// Redispatch asks for evt to be re-delivered to node's plain touch handlers
// (bubbling to its ancestors) when the current pass finishes. Each node and
// event type is queued at most once per pass; prevented marks the delivered
// event as default-prevented if any request asked for it.
func (m *GestureManager) Redispatch(node *Node, evt TouchEvent, prevented bool) {
	for i := range m.queue {
		e := &m.queue[i]
		if e.node == node && e.evt.Type == evt.Type {
			e.prevented = e.prevented || prevented
			return
		}
	}
	m.queue = append(m.queue, redispatchEntry{node: node, evt: evt, prevented: prevented})
}

// flush delivers the queued raw events in the order they were requested.
// Handlers may dispatch new events, so the queue is detached first.
func (m *GestureManager) flush() {
	queue := m.queue
	m.queue = nil
	for _, e := range queue {
		m.scene.bubbleRaw(e.node, nil, e.evt, e.prevented)
	}
}

// dispose abandons every gesture, releasing pending timers.
func (m *GestureManager) dispose() {
	for _, g := range m.gestures {
		g.abort()
	}
	m.queue = nil
}
