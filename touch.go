package touch

import "time"

// Vec2 is a 2D vector used for positions, centroids and translations
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EventType identifies the phase of a raw touch event.
type EventType uint8

const (
	EventTouchStart  EventType = iota // one or more contacts went down
	EventTouchMove                    // tracked contacts moved
	EventTouchEnd                     // contacts lifted
	EventTouchCancel                  // the platform aborted the contacts
)

func (e EventType) String() string {
	switch e {
	case EventTouchStart:
		return "touchstart"
	case EventTouchMove:
		return "touchmove"
	case EventTouchEnd:
		return "touchend"
	case EventTouchCancel:
		return "touchcancel"
	default:
		return "unknown"
	}
}

// TouchEvent is a raw contact event as delivered by the host. Changed holds
// the contacts that started, moved, ended or were cancelled.
type TouchEvent struct {
	Type      EventType
	Changed   []ContactPoint
	Timestamp time.Time
}

// GestureState is the lifecycle state of a Gesture.
type GestureState uint8

const (
	StateWaitingForTouches GestureState = iota // collecting contacts
	StatePossible                              // continuous gestures only: contacts collected, not yet recognized
	StateBegan                                 // recognized
	StateChanged                               // recognized and updated at least once
	StateEnded                                 // resolved successfully
	StateCancelled                             // resolved unsuccessfully
)

func (s GestureState) String() string {
	switch s {
	case StateWaitingForTouches:
		return "waiting"
	case StatePossible:
		return "possible"
	case StateBegan:
		return "began"
	case StateChanged:
		return "changed"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Phase names a semantic callback on a node.
type Phase uint8

const (
	PhaseStart  Phase = iota // gesture recognized (continuous only)
	PhaseChange              // gesture updated (continuous only)
	PhaseEnd                 // gesture resolved successfully
	PhaseCancel              // gesture aborted after it started (continuous only)
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhaseChange:
		return "Change"
	case PhaseEnd:
		return "End"
	case PhaseCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Built-in gesture names.
const (
	GesturePinch     = "pinch"
	GesturePan       = "pan"
	GestureTap       = "tap"
	GesturePress     = "press"
	GestureTouchHold = "touchHold"
)
