package touch

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, every delivered gesture callback is forwarded to it.
type EntityStore interface {
	EmitEvent(event GestureEvent)
}

// GestureEvent describes one semantic callback delivered to a node. It is
// passed to scene-level OnGesture callbacks and to the EntityStore.
type GestureEvent struct {
	Gesture   string
	Phase     Phase
	State     GestureState
	NodeID    uint32
	EntityID  uint32
	SessionID string
	// Handled is false when the node declined the event or had no handler
	// for the phase.
	Handled bool

	Centroid    Vec2
	Translation Vec2
	Scale       float64
	Velocity    float64
	Timestamp   time.Time
}

// Scene is the top-level object that owns the node tree, the gesture
// registry, the timer scheduler and input state.
type Scene struct {
	root     *Node
	registry *Registry
	store    EntityStore
	log      *zap.Logger
	debug    bool
	clock    func() time.Time
	timers   Scheduler

	handlers handlerRegistry
	captures map[ContactID]capture

	// Input state
	live         []ContactPoint // device contacts down after the last frame
	touchIDs     []ebiten.TouchID
	hitBuf       []*Node
	mouseAsTouch bool
	injectQueue  []injectFrame
	injectTail   []ContactPoint
	testRunner   *TestRunner
}

// capture remembers where a contact started: the hit node and the node
// whose manager absorbed the start (nil when no manager did).
type capture struct {
	target *Node
	owner  *Node
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithRegistry sets the recognizer registry. It defaults to DefaultRegistry().
func WithRegistry(r *Registry) SceneOption {
	return func(s *Scene) { s.registry = r }
}

// WithLogger sets the scene's logger. It defaults to zap.NewNop().
func WithLogger(l *zap.Logger) SceneOption {
	return func(s *Scene) { s.log = l }
}

// WithClock sets the time source used by Update and by events without a
// timestamp. It defaults to time.Now.
func WithClock(now func() time.Time) SceneOption {
	return func(s *Scene) { s.clock = now }
}

// WithEntityStore sets the optional ECS bridge.
func WithEntityStore(store EntityStore) SceneOption {
	return func(s *Scene) { s.store = store }
}

// NewScene creates a new scene with a pre-created root node.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		root:     NewNode("root"),
		captures: make(map[ContactID]capture),
		clock:    time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = DefaultRegistry()
	}
	s.timers.onPanic = func(r any) {
		s.log.Error("timer task panicked", zap.Any("panic", r))
	}
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Registry returns the registry managers build recognizers from.
func (s *Scene) Registry() *Registry {
	return s.registry
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.log
}

// SetLogger replaces the scene's logger. A nil logger disables logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
	if s.debug {
		debugLogger = l
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetMouseAsTouch makes the left mouse button act as a single contact.
func (s *Scene) SetMouseAsTouch(enabled bool) {
	s.mouseAsTouch = enabled
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, gesture
// state transitions are logged at debug level and per-frame input stats
// are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.log
	} else {
		debugLogger = zap.NewNop()
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Timers returns the scheduler gesture timers run on.
func (s *Scene) Timers() *Scheduler {
	return &s.timers
}

// Tick runs every timer due at or before now.
func (s *Scene) Tick(now time.Time) int {
	return s.timers.Advance(now)
}

// Update advances timers, runs the attached TestRunner and processes one
// frame of input: an injected frame if one is queued, otherwise the device.
func (s *Scene) Update() {
	now := s.clock()
	s.Tick(now)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.processInjectedInput(now) {
		return
	}
	s.processInput(now)
}

// --- Dispatch ---

// Dispatch delivers a raw event. Starts go to target, which is usually the
// node hit by the contacts. Moves, ends and cancels follow each contact to
// where it started; contacts the scene has never seen start go to target,
// or are dropped when target is nil. Due timers run before the event.
func (s *Scene) Dispatch(target *Node, evt TouchEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = s.clock()
	}
	s.Tick(evt.Timestamp)

	if evt.Type == EventTouchStart {
		s.dispatchStart(target, evt)
		return
	}
	if len(evt.Changed) == 0 {
		if target != nil && !target.disposed {
			s.route(s.captureFor(target), evt)
		}
		return
	}

	type group struct {
		c      capture
		points []ContactPoint
	}
	var groups []group
	release := evt.Type == EventTouchEnd || evt.Type == EventTouchCancel
	for _, p := range evt.Changed {
		c, ok := s.captures[p.ID]
		if !ok {
			if target == nil || target.disposed {
				continue
			}
			c = s.captureFor(target)
		}
		if release {
			delete(s.captures, p.ID)
		}
		i := 0
		for i < len(groups) && groups[i].c != c {
			i++
		}
		if i == len(groups) {
			groups = append(groups, group{c: c})
		}
		groups[i].points = append(groups[i].points, p)
	}
	for _, g := range groups {
		s.route(g.c, TouchEvent{Type: evt.Type, Changed: g.points, Timestamp: evt.Timestamp})
	}
}

func (s *Scene) dispatchStart(target *Node, evt TouchEvent) {
	if target == nil || target.disposed || len(evt.Changed) == 0 {
		return
	}
	c := capture{target: target}
	m := s.managerAtOrAbove(target)
	if m == nil {
		s.bubbleRaw(target, nil, evt, false)
	} else {
		owner := m.claimStart()
		s.bubbleRaw(target, owner.node, evt, false)
		owner.invoke(evt)
		c.owner = owner.node
	}
	for _, p := range evt.Changed {
		s.captures[p.ID] = c
	}
}

// route delivers a captured event: raw handlers from the hit node up to the
// node of the manager that processes it, then that manager.
func (s *Scene) route(c capture, evt TouchEvent) {
	var m *GestureManager
	stop := c.owner
	if c.owner != nil {
		if m = s.managerFor(c.owner); m != nil {
			m = m.claim()
			stop = m.node
		}
	}
	if c.target != nil && !c.target.disposed {
		s.bubbleRaw(c.target, stop, evt, false)
	}
	if m != nil {
		m.invoke(evt)
	}
}

func (s *Scene) captureFor(target *Node) capture {
	c := capture{target: target}
	if m := s.managerAtOrAbove(target); m != nil {
		c.owner = m.node
	}
	return c
}

// CancelAll cancels every contact the scene is tracking, as a platform does
// when the app loses focus.
func (s *Scene) CancelAll() {
	if len(s.captures) == 0 {
		s.live = s.live[:0]
		return
	}
	points := make([]ContactPoint, 0, len(s.captures))
	for _, p := range s.live {
		if _, ok := s.captures[p.ID]; ok {
			points = append(points, p)
		}
	}
	for id := range s.captures {
		if !containsContact(points, id) {
			points = append(points, ContactPoint{ID: id})
		}
	}
	s.live = s.live[:0]
	s.Dispatch(nil, TouchEvent{Type: EventTouchCancel, Changed: points})
}

// --- Managers ---

// managerFor returns n's manager, building it on first use. Nodes without
// gesture handlers have none.
func (s *Scene) managerFor(n *Node) *GestureManager {
	if n == nil || n.disposed {
		return nil
	}
	if !n.managerBuilt {
		n.managerBuilt = true
		if len(n.Gestures) > 0 {
			n.manager = newGestureManager(s, n, s.registry)
		}
	}
	return n.manager
}

func (s *Scene) managerAtOrAbove(n *Node) *GestureManager {
	for p := n; p != nil; p = p.Parent {
		if m := s.managerFor(p); m != nil {
			return m
		}
	}
	return nil
}

// managerAbove returns the manager of n's nearest ancestor that has one.
func (s *Scene) managerAbove(n *Node) *GestureManager {
	if n == nil {
		return nil
	}
	return s.managerAtOrAbove(n.Parent)
}

// bubbleRaw calls the plain touch handler for evt on node and each ancestor,
// stopping before stopAt.
func (s *Scene) bubbleRaw(node, stopAt *Node, evt TouchEvent, prevented bool) {
	for p := node; p != nil && p != stopAt; p = p.Parent {
		if p.disposed {
			return
		}
		h := p.touchHandler(evt.Type)
		if h == nil {
			continue
		}
		h(TouchContext{
			Node:             p,
			Target:           node,
			EntityID:         p.EntityID,
			UserData:         p.UserData,
			Type:             evt.Type,
			Changed:          evt.Changed,
			Timestamp:        evt.Timestamp,
			DefaultPrevented: prevented,
		})
	}
}

// emitGesture forwards a delivered callback to scene-level listeners and
// the ECS bridge.
func (s *Scene) emitGesture(g *Gesture, node *Node, phase Phase, handled bool) {
	if len(s.handlers.gesture) == 0 && s.store == nil {
		return
	}
	evt := GestureEvent{
		Gesture:     g.name,
		Phase:       phase,
		State:       g.state,
		NodeID:      node.ID,
		EntityID:    node.EntityID,
		SessionID:   g.session,
		Handled:     handled,
		Centroid:    g.Centroid(),
		Translation: g.Translation,
		Scale:       g.Scale,
		Velocity:    g.Velocity,
		Timestamp:   g.touches.Timestamp,
	}
	for _, h := range s.handlers.gesture {
		h.fn(evt)
	}
	if s.store != nil {
		s.store.EmitEvent(evt)
	}
}

// --- Scene-level callbacks ---

type gestureCallback struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	gesture []gestureCallback
	nextID  uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.gesture
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureCallback{}
			h.reg.gesture = s[:len(s)-1]
			return
		}
	}
}

// OnGesture registers a callback fired for every semantic gesture callback
// delivered to any node in the scene, after the node's own handler.
func (s *Scene) OnGesture(fn func(GestureEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.gesture = append(s.handlers.gesture, gestureCallback{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers}
}

func containsContact(points []ContactPoint, id ContactID) bool {
	for _, p := range points {
		if p.ID == id {
			return true
		}
	}
	return false
}
