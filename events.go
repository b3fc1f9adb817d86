package graphview

// InteractionEvent is a semantic event emitted by the InteractionMachine.
// Which fields are meaningful depends on Type.
type InteractionEvent struct {
	Type EventType
	// NodeID is the target node for hover, click and drag events; empty
	// when the pointer is over the canvas background.
	NodeID string
	// Pointer position at the time of the event.
	ScreenX, ScreenY float64
	WorldX, WorldY   float64
	// StartX and StartY are the world position of the press that began a
	// drag or pan session.
	StartX, StartY float64
	// DeltaX and DeltaY are the screen-pixel movement since the previous
	// pan event (EventPan only).
	DeltaX, DeltaY float64
	// Factor is the multiplicative zoom change (EventZoom only).
	Factor    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// EventSink receives semantic interaction events.
type EventSink interface {
	Emit(ev InteractionEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(InteractionEvent)

// Emit calls f(ev).
func (f EventSinkFunc) Emit(ev InteractionEvent) { f(ev) }

type busHandler struct {
	id uint32
	fn func(InteractionEvent)
}

// EventBus fans interaction events out to subscribers in subscription
// order. Each Canvas owns its own bus.
type EventBus struct {
	handlers []busHandler
	nextID   uint32
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscription allows removing a registered handler.
type Subscription struct {
	id  uint32
	bus *EventBus
}

// Subscribe registers fn to receive every emitted event.
func (b *EventBus) Subscribe(fn func(InteractionEvent)) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, busHandler{id: id, fn: fn})
	return Subscription{id: id, bus: b}
}

// Unsubscribe removes a handler. Removing during Emit does not disturb the
// in-flight delivery.
func (b *EventBus) Unsubscribe(s Subscription) {
	for i := range b.handlers {
		if b.handlers[i].id == s.id {
			// Full-slice expression forces a copy so an Emit iterating the
			// old slice is unaffected.
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Remove unregisters this subscription so it no longer fires.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	s.bus.Unsubscribe(s)
}

// Len returns the number of subscribers.
func (b *EventBus) Len() int { return len(b.handlers) }

// Emit delivers ev to every subscriber.
func (b *EventBus) Emit(ev InteractionEvent) {
	for _, h := range b.handlers {
		h.fn(ev)
	}
}
