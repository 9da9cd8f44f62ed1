package ecs

import (
	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for scene interaction events.
// Subscribe to this in your ECS systems to receive pointer and drag events.
var InteractionEventType = events.NewEventType[scene.InteractionEvent]()

// SessionEventType is the Donburi event type for puzzle session events.
var SessionEventType = events.NewEventType[cupcake.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scene.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scene.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

type sessionSink struct {
	world donburi.World
}

// NewSessionSink creates a cupcake.EventSink that publishes session events
// to SessionEventType on world. Events queue until ProcessEvents runs.
func NewSessionSink(world donburi.World) cupcake.EventSink {
	return &sessionSink{world: world}
}

func (s *sessionSink) EmitEvent(event cupcake.Event) {
	SessionEventType.Publish(s.world, event)
}

// ProcessEvents delivers every queued interaction and session event to its
// subscribers. Interaction events go first.
func ProcessEvents(world donburi.World) {
	InteractionEventType.ProcessEvents(world)
	SessionEventType.ProcessEvents(world)
}
