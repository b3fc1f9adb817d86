// Package ecs bridges graphview interaction events into a [Donburi] world.
//
// [NewDonburiSink] publishes each semantic event (hover, click, drag, pan,
// zoom) as a typed Donburi event. Subscribe to [InteractionEventType] in
// your systems and drain the queue once per tick:
//
//	sub := ecs.Attach(canvas.Bus(), world)
//	defer sub.Remove()
//	ecs.InteractionEventType.Subscribe(world, onInteraction)
//	// each update:
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
