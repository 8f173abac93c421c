package ecs

import (
	"github.com/phanxgames/touch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for touch gesture events.
// Subscribe to this in your ECS systems to receive gesture phases.
var GestureEventType = events.NewEventType[touch.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) touch.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event touch.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
