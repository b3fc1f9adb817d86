package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/graphview"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() graphview.KeyModifiers {
	var mods graphview.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= graphview.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= graphview.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= graphview.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= graphview.ModMeta
	}
	return mods
}

var pollButtons = [...]struct {
	eb ebiten.MouseButton
	gv graphview.MouseButton
}{
	{ebiten.MouseButtonLeft, graphview.MouseButtonLeft},
	{ebiten.MouseButtonRight, graphview.MouseButtonRight},
	{ebiten.MouseButtonMiddle, graphview.MouseButtonMiddle},
}

// inputPoller turns Ebitengine's polled mouse state into the edge-triggered
// pointer events graphview expects. Only the mouse is tracked; touch and
// multi-pointer gestures are not recognized.
type inputPoller struct {
	lastX, lastY int
	pressed      bool
	button       ebiten.MouseButton
	inside       bool
}

// poll emits the pointer events for this tick in order: leave, move,
// press or release, wheel. While a button is held the pointer stays
// captured even outside the viewport.
func (p *inputPoller) poll(w, h int, emit func(graphview.PointerEvent)) {
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	if !ebiten.IsFocused() {
		if p.pressed || p.inside {
			emit(graphview.PointerEvent{Action: graphview.PointerLeave, X: sx, Y: sy, Modifiers: mods})
		}
		p.pressed = false
		p.inside = false
		return
	}

	inside := mx >= 0 && my >= 0 && mx < w && my < h
	if !inside && !p.pressed {
		if p.inside {
			emit(graphview.PointerEvent{Action: graphview.PointerLeave, X: sx, Y: sy, Modifiers: mods})
		}
		p.inside = false
		p.lastX, p.lastY = mx, my
		return
	}
	p.inside = inside

	if mx != p.lastX || my != p.lastY {
		emit(graphview.PointerEvent{Action: graphview.PointerMove, X: sx, Y: sy, Modifiers: mods})
		p.lastX, p.lastY = mx, my
	}

	if !p.pressed {
		for _, b := range pollButtons {
			if inpututil.IsMouseButtonJustPressed(b.eb) {
				p.pressed = true
				p.button = b.eb
				emit(graphview.PointerEvent{Action: graphview.PointerDown, X: sx, Y: sy, Button: b.gv, Modifiers: mods})
				break
			}
		}
	} else if inpututil.IsMouseButtonJustReleased(p.button) || !ebiten.IsMouseButtonPressed(p.button) {
		p.pressed = false
		emit(graphview.PointerEvent{Action: graphview.PointerUp, X: sx, Y: sy, Modifiers: mods})
	}

	if _, wy := ebiten.Wheel(); wy != 0 && inside {
		// Ebitengine reports scrolling up as positive; graphview follows
		// the DOM convention where positive means scrolling down.
		emit(graphview.PointerEvent{Action: graphview.PointerWheel, X: sx, Y: sy, WheelDelta: -wy, Modifiers: mods})
	}
}
