package graphview

import "fmt"

// DefaultFitPadding is the world-unit padding FitToView leaves around the
// graph.
const DefaultFitPadding = 100.0

// CanvasOptions configures a Canvas. Zero values select defaults.
type CanvasOptions struct {
	Width, Height int

	// DragThreshold is the press travel in screen pixels before a drag or
	// pan starts. Zero selects DefaultDragThreshold; negative means zero.
	DragThreshold float64
	// HitTolerance grows node bounds for picking, in screen pixels.
	HitTolerance float64

	FitPadding    float64
	RefitOnResize bool

	MinZoom, MaxZoom float64
	DisableMomentum  bool

	MaxNodes, MaxEdges int

	// Background overrides DefaultBackground when non-nil.
	Background *Background

	// Frames drives the draw loop. Nil selects a ManualFrames ticked by
	// Canvas.Frame.
	Frames FrameSource

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	Debug bool
}

// Canvas owns one independent set of camera, spatial index, scene,
// interaction machine, event bus, renderer and draw loop. Canvases share no
// mutable state with each other.
type Canvas struct {
	camera   *Camera
	index    *SpatialIndex
	scene    *Scene
	bus      *EventBus
	machine  *InteractionMachine
	renderer Renderer
	loop     *DrawLoop
	frames   FrameSource
	manual   *ManualFrames
	sceneSub Subscription

	fitPadding    float64
	refitOnResize bool

	injectQueue     []PointerEvent
	screenshotQueue []string
	screenshotDir   string
	testRunner      *TestRunner
	closed          bool
}

// NewCanvas builds a canvas over graph. newRenderer may be nil for a
// headless canvas that tracks state but never draws. If the renderer
// cannot be created the canvas is still returned, headless, together with
// the error, so camera, picking and scene state keep working.
func NewCanvas(graph *Graph, newRenderer RendererFactory, opts CanvasOptions) (*Canvas, error) {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.FitPadding == 0 {
		opts.FitPadding = DefaultFitPadding
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}

	c := &Canvas{
		camera:        NewCamera(float64(opts.Width), float64(opts.Height)),
		index:         NewSpatialIndex(),
		bus:           NewEventBus(),
		fitPadding:    opts.FitPadding,
		refitOnResize: opts.RefitOnResize,
		screenshotDir: opts.ScreenshotDir,
	}
	c.scene = NewScene(graph, c.camera, c.index, c.markDirty)
	if opts.Background != nil {
		c.scene.background = *opts.Background
	}
	if opts.MinZoom > 0 || opts.MaxZoom > 0 {
		lo, hi := c.scene.ZoomLimits()
		if opts.MinZoom > 0 {
			lo = opts.MinZoom
		}
		if opts.MaxZoom > 0 {
			hi = opts.MaxZoom
		}
		c.scene.SetZoomLimits(lo, hi)
	}
	c.scene.SetMomentum(!opts.DisableMomentum)

	c.machine = NewInteractionMachine(c.camera, c.index, c.bus)
	if opts.DragThreshold != 0 {
		c.machine.SetDragThreshold(opts.DragThreshold)
	}
	c.machine.SetHitTolerance(opts.HitTolerance)
	c.sceneSub = c.bus.Subscribe(c.scene.HandleInteraction)

	if newRenderer == nil {
		return c, nil
	}
	r, err := newRenderer(c.scene, opts.MaxNodes, opts.MaxEdges)
	if err != nil {
		Logger().Warn("renderer unavailable, canvas is headless", "error", err)
		return c, fmt.Errorf("create renderer: %w", err)
	}
	r.SetViewportSize(opts.Width, opts.Height)
	c.renderer = r

	c.frames = opts.Frames
	if c.frames == nil {
		c.manual = &ManualFrames{}
		c.frames = c.manual
	}
	c.loop = NewDrawLoop(r, c.frames, c.scene.Background)
	c.loop.SetDebugMode(opts.Debug)
	c.loop.Start()
	return c, nil
}

func (c *Canvas) markDirty() {
	if c.loop != nil {
		c.loop.MarkDirty()
	}
}

// Scene returns the canvas scene.
func (c *Canvas) Scene() *Scene { return c.scene }

// Camera returns the canvas camera.
func (c *Canvas) Camera() *Camera { return c.camera }

// Index returns the canvas spatial index.
func (c *Canvas) Index() *SpatialIndex { return c.index }

// Bus returns the canvas event bus. Extra subscribers see every semantic
// event after the scene has applied it.
func (c *Canvas) Bus() *EventBus { return c.bus }

// Machine returns the interaction machine.
func (c *Canvas) Machine() *InteractionMachine { return c.machine }

// Renderer returns the renderer, nil when headless.
func (c *Canvas) Renderer() Renderer { return c.renderer }

// DrawLoop returns the draw loop, nil when headless.
func (c *Canvas) DrawLoop() *DrawLoop { return c.loop }

// Headless reports whether the canvas has no renderer.
func (c *Canvas) Headless() bool { return c.renderer == nil }

// HandlePointer feeds a normalized pointer event to the interaction machine.
func (c *Canvas) HandlePointer(ev PointerEvent) {
	c.machine.HandlePointer(ev)
}

// Resize updates the camera and renderer viewports in one step and
// optionally refits the view.
func (c *Canvas) Resize(w, h int) {
	cw, ch := c.camera.ViewportSize()
	if int(cw) == w && int(ch) == h {
		return
	}
	c.scene.SetViewportSize(float64(w), float64(h))
	if c.renderer != nil {
		c.renderer.SetViewportSize(w, h)
	}
	if c.refitOnResize {
		c.scene.FitToView(c.fitPadding)
	}
}

// FitToView fits the whole graph using the configured padding.
func (c *Canvas) FitToView() {
	c.scene.FitToView(c.fitPadding)
}

// SetGraph replaces the graph and refits the view.
func (c *Canvas) SetGraph(g *Graph) {
	c.machine.Cancel()
	c.scene.UpdateGraph(g)
	c.scene.FitToView(c.fitPadding)
}

// Update advances one logical step of dt seconds: the test runner, one
// injected pointer event, then camera animation and momentum.
func (c *Canvas) Update(dt float32) {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()
	c.scene.Update(dt)
}

// Frame ticks the built-in frame source, rendering if dirty, then writes
// any queued screenshots. Hosts that supply their own FrameSource tick it
// themselves and only get the screenshot flush here.
func (c *Canvas) Frame() {
	if c.manual != nil {
		c.manual.Tick()
	}
	c.flushScreenshots()
}

// Close stops the draw loop, disposes the renderer and detaches the scene
// from the bus. Close is idempotent.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.machine.Cancel()
	if c.loop != nil {
		c.loop.Stop()
	}
	if c.renderer != nil {
		c.renderer.Dispose()
	}
	c.sceneSub.Remove()
}
