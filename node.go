package touch

import (
	"slices"
	"time"
)

// TouchContext carries a raw touch event to a node's plain handlers.
type TouchContext struct {
	// Node is the node whose handler is running.
	Node *Node
	// Target is the node the event was delivered to before bubbling.
	Target    *Node
	EntityID  uint32
	UserData  any
	Type      EventType
	Changed   []ContactPoint
	Timestamp time.Time
	// DefaultPrevented is set when a gesture that consumes moves asked for
	// the default behavior to be suppressed (preventDefaultOnChange).
	DefaultPrevented bool
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, the package is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the touch tree. Nodes are hit-tested against
// contact starts and carry the gesture handlers, gesture options and plain
// touch handlers the scene delivers to.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Only translation and scale take part in hit testing.
	X, Y           float64
	ScaleX, ScaleY float64
	Alpha          float64

	// Default hit area when HitShape is nil: (0, 0, Width, Height) in local
	// coordinates. A zero-size node without a HitShape is never hit.
	Width, Height float64
	HitShape      HitShape

	// Interaction
	Visible      bool
	Interactable bool
	ZIndex       int

	// Metadata
	UserData any
	EntityID uint32

	// Gestures declares the gesture phases this node handles, keyed by
	// gesture name. It is read once, when the node first receives a touch.
	Gestures map[string]GestureHandlers
	// GestureOptions overrides recognizer defaults, keyed by gesture name.
	GestureOptions map[string]Options

	// Plain touch handlers. They receive the raw events recognizers did not
	// consume, bubbling from the node the event was redispatched to.
	OnTouchStart  func(TouchContext)
	OnTouchMove   func(TouchContext)
	OnTouchEnd    func(TouchContext)
	OnTouchCancel func(TouchContext)

	// Internal
	manager        *GestureManager
	managerBuilt   bool
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// NewNode creates an interactable node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Visible:        true,
		Interactable:   true,
		childrenSorted: true,
	}
}

// HandleGesture declares handlers for the named gesture. It has no effect on
// a node that has already received touches.
func (n *Node) HandleGesture(name string, h GestureHandlers) {
	if n.Gestures == nil {
		n.Gestures = make(map[string]GestureHandlers)
	}
	n.Gestures[name] = h
}

// SetGestureOptions sets the options for the named gesture. Like
// HandleGesture it must be called before the node first receives touches.
func (n *Node) SetGestureOptions(name string, opts Options) {
	if n.GestureOptions == nil {
		n.GestureOptions = make(map[string]Options)
	}
	n.GestureOptions[name] = opts
}

// Manager returns the node's gesture manager, or nil if it has not been
// built yet or the node declares no gestures.
func (n *Node) Manager() *GestureManager {
	return n.manager
}

func (n *Node) touchHandler(t EventType) func(TouchContext) {
	switch t {
	case EventTouchStart:
		return n.OnTouchStart
	case EventTouchMove:
		return n.OnTouchMove
	case EventTouchEnd:
		return n.OnTouchEnd
	case EventTouchCancel:
		return n.OnTouchCancel
	}
	return nil
}

// --- Coordinates ---

// worldOrigin returns the world position of the node's local origin and
// its accumulated scale.
func (n *Node) worldOrigin() (ox, oy, sx, sy float64) {
	if n.Parent == nil {
		return n.X, n.Y, n.ScaleX, n.ScaleY
	}
	px, py, psx, psy := n.Parent.worldOrigin()
	return px + n.X*psx, py + n.Y*psy, psx * n.ScaleX, psy * n.ScaleY
}

// WorldToLocal converts world coordinates to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	ox, oy, sx, sy := n.worldOrigin()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	return (wx - ox) / sx, (wy - oy) / sy
}

// LocalToWorld converts local coordinates to world space.
func (n *Node) LocalToWorld(lx, ly float64) (float64, float64) {
	ox, oy, sx, sy := n.worldOrigin()
	return ox + lx*sx, oy + ly*sy
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("touch: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("touch: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("touch: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("touch: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("touch: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("touch: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("touch: child index out of range")
	}
	child := n.children[index]
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = false
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to index. Among siblings with equal ZIndex,
// later children are hit-tested first.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("touch: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("touch: child index out of range")
	}
	oldIndex := slices.Index(n.children, child)
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
// Higher ZIndex siblings are hit-tested first.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, abandons
// its gestures (cancelling their timers) and recursively disposes all
// descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	if n.manager != nil {
		n.manager.dispose()
		n.manager = nil
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.Gestures = nil
	n.GestureOptions = nil
	n.OnTouchStart = nil
	n.OnTouchMove = nil
	n.OnTouchEnd = nil
	n.OnTouchCancel = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			n.childrenSorted = false
			return
		}
	}
}

// sortedChildList returns the children in hit-test order: ascending ZIndex,
// insertion order among equals. The last entry is the topmost.
func (n *Node) sortedChildList() []*Node {
	if !n.childrenSorted {
		n.sortedChildren = append(n.sortedChildren[:0], n.children...)
		slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
			return a.ZIndex - b.ZIndex
		})
		n.childrenSorted = true
	}
	return n.sortedChildren
}
