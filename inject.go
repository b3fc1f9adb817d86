package graphview

// InjectPress queues a left-button press at the given screen coordinates.
// Queued events are consumed one per Update, exactly like host input.
func (c *Canvas) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{
		Action: PointerDown, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move at the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{
		Action: PointerMove, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{
		Action: PointerUp, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectWheel queues a wheel event of delta notches at (x, y).
func (c *Canvas) InjectWheel(x, y, delta float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{
		Action: PointerWheel, X: x, Y: y, WheelDelta: delta,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two updates.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate updates, and
// release at (toX, toY). The total sequence consumes frames updates; the
// minimum is 3 so at least one move reaches the machine.
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		c.InjectMove(x, y)
	}
	c.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (c *Canvas) PendingInput() int { return len(c.injectQueue) }

// processInjectedInput pops one queued event and feeds it to the
// interaction machine. Returns true if an event was consumed.
func (c *Canvas) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	c.HandlePointer(ev)
	return true
}
