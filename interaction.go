package graphview

import "math"

const (
	// DefaultDragThreshold is the screen distance in pixels a press must
	// travel before it becomes a drag or pan. The distance is Euclidean and
	// must strictly exceed the threshold.
	DefaultDragThreshold = 3.0

	// wheelZoomBase is raised to the wheel delta to get the zoom factor.
	wheelZoomBase = 0.95
)

// InteractionState is a state of the pointer interaction machine.
type InteractionState uint8

const (
	StateIdle         InteractionState = iota // no button held
	StatePressing                             // button held, threshold not yet exceeded
	StateDraggingNode                         // moving a node
	StatePanning                              // moving the camera
)

func (s InteractionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressing:
		return "pressing"
	case StateDraggingNode:
		return "draggingNode"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// interactionContext is the transient state of one press session. It is
// reset on idle to pressing and zeroed on return to idle.
type interactionContext struct {
	startScreen Vec2
	startWorld  Vec2
	target      string // node hit at press time, "" for empty canvas
	lastScreen  Vec2
	button      MouseButton
	mods        KeyModifiers
}

// pointerInput is one raw event after coordinate normalization and hit
// testing.
type pointerInput struct {
	action PointerAction
	screen Vec2
	world  Vec2
	hit    string
	button MouseButton
	mods   KeyModifiers
	wheel  float64
}

func (in pointerInput) event(t EventType, node string, ctx *interactionContext) InteractionEvent {
	ev := InteractionEvent{
		Type:      t,
		NodeID:    node,
		ScreenX:   in.screen.X,
		ScreenY:   in.screen.Y,
		WorldX:    in.world.X,
		WorldY:    in.world.Y,
		Button:    in.button,
		Modifiers: in.mods,
	}
	if ctx != nil {
		ev.StartX, ev.StartY = ctx.startWorld.X, ctx.startWorld.Y
		ev.Button = ctx.button
	}
	return ev
}

// transition is the pure transition function of the interaction machine.
// It appends the emitted events to out and returns the next state and
// context.
func transition(state InteractionState, ctx interactionContext, in pointerInput,
	threshold float64, out []InteractionEvent) (InteractionState, interactionContext, []InteractionEvent) {

	if in.action == PointerWheel {
		ev := in.event(EventZoom, "", nil)
		ev.Factor = math.Pow(wheelZoomBase, in.wheel)
		return state, ctx, append(out, ev)
	}

	switch state {
	case StateIdle:
		switch in.action {
		case PointerDown:
			ctx = interactionContext{
				startScreen: in.screen,
				startWorld:  in.world,
				target:      in.hit,
				lastScreen:  in.screen,
				button:      in.button,
				mods:        in.mods,
			}
			return StatePressing, ctx, out
		case PointerMove:
			return StateIdle, ctx, append(out, in.event(EventHover, in.hit, nil))
		case PointerLeave:
			return StateIdle, ctx, append(out, in.event(EventHover, "", nil))
		}

	case StatePressing:
		switch in.action {
		case PointerMove:
			dx := in.screen.X - ctx.startScreen.X
			dy := in.screen.Y - ctx.startScreen.Y
			if math.Sqrt(dx*dx+dy*dy) <= threshold {
				return StatePressing, ctx, out
			}
			if ctx.target != "" {
				out = append(out,
					in.event(EventDragStart, ctx.target, &ctx),
					in.event(EventDrag, ctx.target, &ctx))
				ctx.lastScreen = in.screen
				return StateDraggingNode, ctx, out
			}
			start := in.event(EventPanStart, "", &ctx)
			pan := in.event(EventPan, "", &ctx)
			pan.DeltaX = in.screen.X - ctx.lastScreen.X
			pan.DeltaY = in.screen.Y - ctx.lastScreen.Y
			ctx.lastScreen = in.screen
			return StatePanning, ctx, append(out, start, pan)
		case PointerUp:
			ev := in.event(EventClick, ctx.target, &ctx)
			ev.Modifiers = ctx.mods
			return StateIdle, interactionContext{}, append(out, ev)
		case PointerLeave:
			return StateIdle, interactionContext{}, out
		}

	case StateDraggingNode:
		switch in.action {
		case PointerMove:
			ctx.lastScreen = in.screen
			return StateDraggingNode, ctx, append(out, in.event(EventDrag, ctx.target, &ctx))
		case PointerUp, PointerLeave:
			return StateIdle, interactionContext{}, append(out, in.event(EventDragEnd, ctx.target, &ctx))
		}

	case StatePanning:
		switch in.action {
		case PointerMove:
			ev := in.event(EventPan, "", &ctx)
			ev.DeltaX = in.screen.X - ctx.lastScreen.X
			ev.DeltaY = in.screen.Y - ctx.lastScreen.Y
			ctx.lastScreen = in.screen
			return StatePanning, ctx, append(out, ev)
		case PointerUp, PointerLeave:
			return StateIdle, interactionContext{}, append(out, in.event(EventPanEnd, "", &ctx))
		}
	}
	return state, ctx, out
}

// InteractionMachine turns raw pointer events into semantic interaction
// events. It reads the camera and spatial index for coordinate conversion
// and hit testing but never mutates them; all effects go through the sink.
type InteractionMachine struct {
	camera    *Camera
	index     *SpatialIndex
	sink      EventSink
	threshold float64
	tolerance float64

	state   InteractionState
	ctx     interactionContext
	buf     []InteractionEvent
	session uint64 // bumped whenever a session returns to idle
}

// NewInteractionMachine creates a machine in the idle state.
func NewInteractionMachine(camera *Camera, index *SpatialIndex, sink EventSink) *InteractionMachine {
	return &InteractionMachine{
		camera:    camera,
		index:     index,
		sink:      sink,
		threshold: DefaultDragThreshold,
		buf:       make([]InteractionEvent, 0, 4),
	}
}

// SetDragThreshold sets the screen-pixel distance a press must exceed to
// start a drag or pan. Negative values are treated as zero.
func (m *InteractionMachine) SetDragThreshold(px float64) {
	m.threshold = math.Max(px, 0)
}

// DragThreshold returns the current drag threshold in screen pixels.
func (m *InteractionMachine) DragThreshold() float64 { return m.threshold }

// SetHitTolerance grows node bounds by px screen pixels for hit testing.
func (m *InteractionMachine) SetHitTolerance(px float64) {
	m.tolerance = math.Max(px, 0)
}

// State returns the current state.
func (m *InteractionMachine) State() InteractionState { return m.state }

// HandlePointer feeds one normalized pointer event through the machine and
// emits the resulting semantic events in order.
func (m *InteractionMachine) HandlePointer(ev PointerEvent) {
	wx, wy := m.camera.ScreenToWorld(ev.X, ev.Y)
	in := pointerInput{
		action: ev.Action,
		screen: Vec2{ev.X, ev.Y},
		world:  Vec2{wx, wy},
		button: ev.Button,
		mods:   ev.Modifiers,
		wheel:  ev.WheelDelta,
	}
	if m.state == StateIdle && (ev.Action == PointerDown || ev.Action == PointerMove) {
		if n := m.index.Query(wx, wy, m.tolerance/m.camera.Zoom()); n != nil {
			in.hit = n.ID
		}
	}

	prev := m.state
	var events []InteractionEvent
	m.state, m.ctx, events = transition(m.state, m.ctx, in, m.threshold, m.buf[:0])
	if prev != StateIdle && m.state == StateIdle {
		m.session++
	}

	// A subscriber may re-enter the machine, e.g. Cancel from a graph
	// reload. The batch is detached from m.buf so nested calls cannot
	// overwrite it, and delivery stops once the session has ended.
	m.buf = nil
	session := m.session
	for _, out := range events {
		if m.session != session {
			break
		}
		m.sink.Emit(out)
	}
	if m.buf == nil {
		m.buf = events[:0]
	}
}

// Cancel aborts any session as if the pointer left the canvas.
func (m *InteractionMachine) Cancel() {
	if m.state == StateIdle {
		return
	}
	sx, sy := m.ctx.lastScreen.X, m.ctx.lastScreen.Y
	m.HandlePointer(PointerEvent{Action: PointerLeave, X: sx, Y: sy})
}
