// Package touch turns raw multi-touch contact events into semantic gestures
// (tap, press, pan, pinch, touch-and-hold) delivered to nodes in a tree,
// for [Ebitengine] games and any host that can produce contact events.
//
// # Quick start
//
// The simplest way to try gestures is [Run], which creates a window and
// game loop for you, with the mouse acting as a finger:
//
//	scene := touch.NewScene()
//	// ... add nodes ...
//	touch.Run(scene, touch.RunConfig{
//		Title: "Gestures", Width: 640, Height: 480,
//	})
//
// For full control, call [Scene.Update] from your own [ebiten.Game], or feed
// events from any source with [Scene.Dispatch]:
//
//	scene.Dispatch(node, touch.TouchEvent{
//		Type:      touch.EventTouchStart,
//		Changed:   []touch.ContactPoint{{ID: 1, X: 10, Y: 20}},
//		Timestamp: now,
//	})
//
// # Nodes and gestures
//
// A [Node] declares the gestures it wants by setting handlers for their
// phases. A recognizer is created for every registered gesture with at least
// one handler, the first time the node receives a touch:
//
//	box := touch.NewNode("box")
//	box.Width, box.Height = 80, 80
//	box.HandleGesture(touch.GesturePan, touch.GestureHandlers{
//		Change: func(g *touch.Gesture) bool {
//			box.X += g.Translation.X
//			box.Y += g.Translation.Y
//			return true
//		},
//	})
//	scene.Root().AddChild(box)
//
// Returning false from a handler rejects the update: the recognizer rolls
// Translation, Scale and Velocity back to their previous values.
//
// Recognizer defaults can be overridden per node with
// [Node.SetGestureOptions], or loaded from a TOML file with
// [LoadOptionsFile].
//
// # Delivery rules
//
// Contacts are hit-tested when they start and stay with the node that took
// them until they lift. When a node's recognizers are all busy or absent,
// the raw event bubbles to the nearest ancestor with recognizers. A start
// landing under an ancestor that is still collecting contacts for a
// multi-touch gesture goes to that ancestor instead. Raw events the
// recognizers do not consume are re-delivered to the plain OnTouchStart,
// OnTouchMove, OnTouchEnd and OnTouchCancel handlers, bubbling up the tree.
//
// Timers (multi-tap windows, touch-and-hold) run on the scene's [Scheduler],
// advanced before each event and on every Update, so nothing runs
// concurrently with event handling.
//
// # Key features
//
// Custom recognizers plug in through a [Registry], scripted input through
// [TestRunner] and the Inject helpers, tweens (via [gween]) through
// [TweenPosition] and friends, and ECS integration (via [Donburi] adapter in
// touch/ecs) through [EntityStore].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package touch
