package graphview

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strconv"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testGraph builds a graph of default-sized nodes at the given centers,
// named "n0", "n1", ...
func testGraph(t *testing.T, centers ...Vec2) *Graph {
	t.Helper()
	g := NewGraph()
	for i, c := range centers {
		if err := g.AddNode(&GraphNode{ID: nodeName(i), Position: c}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func nodeName(i int) string {
	return "n" + strconv.Itoa(i)
}

func mustAddEdge(t *testing.T, g *Graph, id, from, to string) {
	t.Helper()
	if err := g.AddEdge(&GraphEdge{ID: id, FromID: from, ToID: to}); err != nil {
		t.Fatal(err)
	}
}

// fakeRenderer records calls and can be told to fail.
type fakeRenderer struct {
	renders  int
	lastBG   Background
	width    int
	height   int
	fail     error
	disposed bool
	stats    RenderStats
}

func (f *fakeRenderer) SetViewportSize(w, h int) { f.width, f.height = w, h }

func (f *fakeRenderer) Render(bg Background) error {
	if f.disposed {
		return ErrRendererDisposed
	}
	f.renders++
	f.lastBG = bg
	return f.fail
}

func (f *fakeRenderer) Dispose() { f.disposed = true }

func (f *fakeRenderer) LastStats() RenderStats { return f.stats }

func (f *fakeRenderer) Snapshot() (image.Image, error) {
	if f.disposed {
		return nil, ErrRendererDisposed
	}
	img := image.NewNRGBA(image.Rect(0, 0, max(f.width, 1), max(f.height, 1)))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	return img, nil
}

func fakeFactory(fr *fakeRenderer) RendererFactory {
	return func(*Scene, int, int) (Renderer, error) { return fr, nil }
}

var errFake = errors.New("fake render failure")
