// Package raster is a software graphview backend built on gogpu/gg. It
// renders without a window, which makes it the backend for snapshots, CI
// and any host where Ebitengine cannot open a context.
package raster

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/phanxgames/graphview"
)

// Renderer draws a graphview.Scene into a gg.Context.
type Renderer struct {
	scene   *graphview.Scene
	builder *graphview.InstanceBuilder
	style   graphview.Style
	dc      *gg.Context

	stats    graphview.RenderStats
	disposed bool
}

// NewRenderer creates a software renderer sized to the scene camera's
// viewport.
func NewRenderer(scene *graphview.Scene, maxNodes, maxEdges int) (*Renderer, error) {
	w, h := scene.Camera().ViewportSize()
	gg.SetLogger(graphview.Logger())
	return &Renderer{
		scene:   scene,
		builder: graphview.NewInstanceBuilder(maxNodes, maxEdges),
		style:   graphview.DefaultStyle(),
		dc:      gg.NewContext(max(int(w), 1), max(int(h), 1)),
	}, nil
}

// Factory adapts NewRenderer to graphview.RendererFactory. If created is
// non-nil it receives the renderer.
func Factory(created func(*Renderer)) graphview.RendererFactory {
	return func(scene *graphview.Scene, maxNodes, maxEdges int) (graphview.Renderer, error) {
		r, err := NewRenderer(scene, maxNodes, maxEdges)
		if err != nil {
			return nil, err
		}
		if created != nil {
			created(r)
		}
		return r, nil
	}
}

// SetStyle replaces the visual style.
func (r *Renderer) SetStyle(st graphview.Style) { r.style = st }

// SetViewportSize resizes the drawing surface.
func (r *Renderer) SetViewportSize(w, h int) {
	if r.disposed {
		return
	}
	if err := r.dc.Resize(max(w, 1), max(h, 1)); err != nil {
		graphview.Logger().Warn("raster resize", "error", err)
	}
}

// LastStats reports the counts of the last render.
func (r *Renderer) LastStats() graphview.RenderStats { return r.stats }

func setColor(dc *gg.Context, c graphview.Color) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// Render draws background, edges and nodes in paint order.
func (r *Renderer) Render(bg graphview.Background) error {
	if r.disposed {
		return graphview.ErrRendererDisposed
	}
	dc := r.dc
	cam := r.scene.Camera()
	nodes, edges := r.builder.Build(r.scene)
	calls := 0

	dc.ClearWithColor(gg.RGBA{R: bg.Color.R, G: bg.Color.G, B: bg.Color.B, A: bg.Color.A})
	if bg.Style == graphview.BackgroundDots {
		setColor(dc, bg.DotColor)
		bg.EachDot(float64(dc.Width()), float64(dc.Height()), func(x, y float64) {
			dc.DrawCircle(x, y, bg.DotRadius)
		})
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("raster background: %w", err)
		}
		calls++
	}

	for _, e := range edges {
		c, w := r.style.EdgeStroke(e)
		ax, ay := cam.WorldToScreen(e.From.X, e.From.Y)
		bx, by := cam.WorldToScreen(e.To.X, e.To.Y)
		setColor(dc, c)
		dc.SetLineWidth(w)
		dc.DrawLine(ax, ay, bx, by)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("raster edge %s: %w", e.ID, err)
		}
		calls++
	}

	for _, n := range nodes {
		sr := cam.WorldRectToScreen(graphview.Rect{
			X: n.Center.X - n.Width/2, Y: n.Center.Y - n.Height/2,
			Width: n.Width, Height: n.Height,
		})
		if n.State&graphview.NodeSelected != 0 {
			if err := fillRect(dc, sr.Expand(r.style.OutlineWidth), r.style.SelectionColor); err != nil {
				return err
			}
			calls++
		}
		if err := fillRect(dc, sr, r.style.NodeFill(n)); err != nil {
			return err
		}
		calls++
		if n.State&graphview.NodeExpanded != 0 {
			if err := fillRect(dc, r.style.ExpandedMarker(sr), r.style.ExpandedColor); err != nil {
				return err
			}
			calls++
		}
	}

	r.stats = graphview.RenderStats{Nodes: len(nodes), Edges: len(edges), DrawCalls: calls}
	return nil
}

func fillRect(dc *gg.Context, rect graphview.Rect, c graphview.Color) error {
	setColor(dc, c)
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("raster fill: %w", err)
	}
	return nil
}

// Snapshot returns the last rendered frame.
func (r *Renderer) Snapshot() (image.Image, error) {
	if r.disposed {
		return nil, graphview.ErrRendererDisposed
	}
	if err := r.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("raster flush: %w", err)
	}
	return r.dc.Image(), nil
}

// SavePNG writes the last rendered frame to path.
func (r *Renderer) SavePNG(path string) error {
	if r.disposed {
		return graphview.ErrRendererDisposed
	}
	return r.dc.SavePNG(path)
}

// EncodePNG writes the last rendered frame to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.disposed {
		return graphview.ErrRendererDisposed
	}
	return r.dc.EncodePNG(w)
}

// Dispose releases the drawing context. Safe to call more than once.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if err := r.dc.Close(); err != nil {
		graphview.Logger().Warn("raster close", "error", err)
	}
}
