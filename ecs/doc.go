// Package ecs bridges scene interaction events and puzzle session events into
// a [Donburi] world as typed events.
//
// [NewDonburiStore] plugs into [scene.Scene.SetEntityStore];
// [NewSessionSink] is passed as the session's event sink. Subscribe to
// [InteractionEventType] or [SessionEventType] and call [ProcessEvents]
// once per tick:
//
//	world := donburi.NewWorld()
//	s.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.SessionEventType.Subscribe(world, onSessionEvent)
//	sess, _ := cupcake.NewSession(cupcake.Options{Events: ecs.NewSessionSink(world), ...})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
