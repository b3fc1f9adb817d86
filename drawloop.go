package graphview

import "time"

// FrameSource delivers the display refresh cadence. OnFrame registers fn
// to run once per refresh and returns a function that detaches it.
type FrameSource interface {
	OnFrame(fn func()) (cancel func())
}

type frameCallback struct {
	id uint32
	fn func()
}

// ManualFrames is a FrameSource driven by the host calling Tick once per
// refresh, e.g. from ebiten's Draw or a test.
type ManualFrames struct {
	callbacks []frameCallback
	nextID    uint32
}

// OnFrame registers fn. The returned cancel function is idempotent.
func (m *ManualFrames) OnFrame(fn func()) func() {
	m.nextID++
	id := m.nextID
	m.callbacks = append(m.callbacks, frameCallback{id: id, fn: fn})
	return func() {
		for i := range m.callbacks {
			if m.callbacks[i].id == id {
				m.callbacks = append(m.callbacks[:i:i], m.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Tick runs every registered callback once.
func (m *ManualFrames) Tick() {
	for _, cb := range m.callbacks {
		cb.fn()
	}
}

// DrawLoop renders only when the scene has changed. Mutators call
// MarkDirty; on each refresh tick a dirty loop renders once and clears the
// flag, a clean loop does nothing.
type DrawLoop struct {
	renderer   Renderer
	frames     FrameSource
	background func() Background

	dirty  bool
	cancel func()
	debug  bool
	stats  drawStats
}

// NewDrawLoop creates a stopped loop. It starts dirty so the first tick
// draws. background is read at render time; nil selects DefaultBackground.
func NewDrawLoop(renderer Renderer, frames FrameSource, background func() Background) *DrawLoop {
	if background == nil {
		background = DefaultBackground
	}
	return &DrawLoop{
		renderer:   renderer,
		frames:     frames,
		background: background,
		dirty:      true,
	}
}

// MarkDirty requests a render on the next tick. Idempotent.
func (d *DrawLoop) MarkDirty() { d.dirty = true }

// IsDirty reports whether a render is pending.
func (d *DrawLoop) IsDirty() bool { return d.dirty }

// Running reports whether the loop is attached to its frame source.
func (d *DrawLoop) Running() bool { return d.cancel != nil }

// Start attaches the loop to the frame source. Calling Start on a running
// loop is a no-op.
func (d *DrawLoop) Start() {
	if d.cancel != nil {
		return
	}
	d.cancel = d.frames.OnFrame(d.tick)
}

// Stop detaches the loop. Calling Stop on a stopped loop is a no-op.
func (d *DrawLoop) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.cancel = nil
}

// SetDebugMode enables per-frame debug logging of render statistics.
func (d *DrawLoop) SetDebugMode(on bool) { d.debug = on }

func (d *DrawLoop) tick() {
	d.stats.frames++
	if !d.dirty {
		return
	}
	d.RenderNow()
}

// RenderNow renders immediately regardless of the dirty flag and clears
// it. A render error is logged and returned; the flag is still cleared so
// a failing backend is not retried every frame.
func (d *DrawLoop) RenderNow() error {
	d.dirty = false
	t0 := time.Now()
	err := d.renderer.Render(d.background())
	d.stats.lastRender = time.Since(t0)
	if err != nil {
		d.stats.failures++
		Logger().Warn("render failed", "error", err)
		return err
	}
	d.stats.renders++
	if d.debug {
		d.debugLog()
	}
	return nil
}
