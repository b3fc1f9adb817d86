package gpu

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/graphview"
)

// keyZoomStep is the zoom factor applied per +/- key press.
const keyZoomStep = 1.2

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// App is an ebiten.Game hosting one graphview.Canvas. Update polls input
// and advances the canvas; Draw ticks the draw loop and copies the
// renderer's last frame to the screen.
//
// Keyboard: F fits the view, Escape clears the selection, +/- zoom about
// the viewport center.
type App struct {
	canvas    *graphview.Canvas
	renderer  *Renderer
	input     inputPoller
	posts     chan func(*graphview.Canvas)
	done      chan struct{}
	closeOnce sync.Once
	keys      bool
}

// NewApp creates an App over graph. opts.Frames is ignored; the App drives
// its canvas from ebiten's Draw.
func NewApp(graph *graphview.Graph, opts graphview.CanvasOptions) (*App, error) {
	a := &App{
		posts: make(chan func(*graphview.Canvas), 16),
		done:  make(chan struct{}),
		keys:  true,
	}
	opts.Frames = nil
	c, err := graphview.NewCanvas(graph, Factory(func(r *Renderer) { a.renderer = r }), opts)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}
	a.canvas = c
	c.FitToView()
	return a, nil
}

// Canvas returns the hosted canvas. Use it only from the game loop; other
// goroutines must go through Post.
func (a *App) Canvas() *graphview.Canvas { return a.canvas }

// Renderer returns the GPU renderer.
func (a *App) Renderer() *Renderer { return a.renderer }

// SetKeyboardShortcuts enables or disables the built-in key bindings.
func (a *App) SetKeyboardShortcuts(on bool) { a.keys = on }

// Post schedules fn to run on the game loop at the start of the next
// Update. Safe for concurrent use. It blocks while the queue is full and
// returns false without queuing once the App is closed.
func (a *App) Post(fn func(*graphview.Canvas)) bool {
	select {
	case <-a.done:
		return false
	default:
	}
	select {
	case a.posts <- fn:
		return true
	case <-a.done:
		return false
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	for drained := false; !drained; {
		select {
		case fn := <-a.posts:
			fn(a.canvas)
		default:
			drained = true
		}
	}

	w, h := a.canvas.Camera().ViewportSize()
	a.input.poll(int(w), int(h), a.canvas.HandlePointer)
	if a.keys {
		a.handleKeys()
	}
	a.canvas.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (a *App) handleKeys() {
	scene := a.canvas.Scene()
	w, h := scene.Camera().ViewportSize()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.canvas.FitToView()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		scene.ClearSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		scene.ZoomBy(keyZoomStep, w/2, h/2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		scene.ZoomBy(1/keyZoomStep, w/2, h/2)
	}
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.canvas.Frame()
	screen.DrawImage(a.renderer.Image(), nil)
}

// Layout implements ebiten.Game. The camera and renderer are resized
// together through the canvas.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.canvas.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close releases the canvas and its GPU resources.
// Pending Post calls return false. Safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.done)
		if a.canvas != nil {
			a.canvas.Close()
		}
	})
}

// Run opens a window and runs app until the window is closed.
func Run(app *App, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	defer app.Close()
	return ebiten.RunGame(app)
}
