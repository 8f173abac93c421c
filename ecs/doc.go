// Package ecs provides ECS adapters for touch's gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges delivered gesture
// callbacks (pan, pinch, tap, press, touch-and-hold phases) into a
// [Donburi] world as typed events. Subscribe to [GestureEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
