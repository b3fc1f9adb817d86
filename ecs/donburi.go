package ecs

import (
	"github.com/phanxgames/graphview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for graphview interaction
// events. Subscribe to it in ECS systems to receive hover, click, drag, pan
// and zoom events.
var InteractionEventType = events.NewEventType[graphview.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes every interaction
// event to InteractionEventType in world. Events are queued until
// InteractionEventType.ProcessEvents runs.
func NewDonburiSink(world donburi.World) graphview.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event graphview.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Attach subscribes a Donburi sink for world to bus. Remove the returned
// subscription to detach.
func Attach(bus *graphview.EventBus, world donburi.World) graphview.Subscription {
	return bus.Subscribe(NewDonburiSink(world).Emit)
}
