package newtonaux

import (
	"fmt"

	"github.com/Robotechnic/newtonfractal"
	math "github.com/chewxy/math32"
)

const (
	// pickRadius is the distance in pixels from a root's center at which the cursor hovers it.
	pickRadius = markerRadius + 2
	// panStep is the fraction of the view moved per pan action.
	panStep = 0.05
	// zoomBase is the view scale factor per scroll step.
	zoomBase = 1.1
)

// editor translates viewer input into model edits. It holds no graphics state.
type editor struct {
	model   *newtonfractal.Model
	view    View
	cursorX float64
	cursorY float64
	// hovered and dragged are root indices or -1.
	hovered int
	dragged int
	// dirty is set when the frame must be redrawn.
	dirty bool
	log   func(args ...any)
}

func newEditor(model *newtonfractal.Model, view View, log func(args ...any)) *editor {
	if log == nil {
		log = func(...any) {}
	}
	return &editor{
		model:   model,
		view:    view,
		hovered: -1,
		dragged: -1,
		dirty:   true,
		log:     log,
	}
}

func (e *editor) pick(x, y float64) int {
	z := e.view.ToComplex(x, y)
	return NearestRoot(e.model.Roots(), z, float64(pickRadius*e.view.PixelSize()))
}

func (e *editor) setHovered(i int) {
	if i != e.hovered {
		e.hovered = i
		e.dirty = true
	}
}

func (e *editor) cursorMoved(x, y float64) error {
	e.cursorX, e.cursorY = x, y
	if e.dragged >= 0 {
		e.dirty = true
		return e.model.SetRoot(e.dragged, e.view.ToComplex(x, y))
	}
	e.setHovered(e.pick(x, y))
	return nil
}

func (e *editor) startDrag() {
	e.dragged = e.pick(e.cursorX, e.cursorY)
	e.setHovered(e.dragged)
}

func (e *editor) endDrag() {
	if e.dragged >= 0 {
		e.log("moved root", e.dragged, "to", e.model.Roots()[e.dragged])
	}
	e.dragged = -1
}

// addRoot adds a root under the cursor with the next palette color.
func (e *editor) addRoot() error {
	z := e.view.ToComplex(e.cursorX, e.cursorY)
	err := e.model.AddRoot(z, RootColor(e.model.Len()))
	if err != nil {
		return err
	}
	e.hovered = e.model.Len() - 1
	e.dirty = true
	e.log("added root", e.hovered, "at", z, "polynomial:", e.model.Polynomial())
	return nil
}

// removeHovered removes the root under the cursor, if any.
func (e *editor) removeHovered() error {
	if e.hovered < 0 {
		return nil
	}
	i := e.hovered
	err := e.model.RemoveRoot(i)
	if err != nil {
		return fmt.Errorf("root %d: %w", i, err)
	}
	e.dragged = -1
	e.hovered = -1
	e.setHovered(e.pick(e.cursorX, e.cursorY))
	e.dirty = true
	e.log("removed root", i, "polynomial:", e.model.Polynomial())
	return nil
}

func (e *editor) setView(v View) error {
	e.view = v
	e.dirty = true
	e.setHovered(e.pick(e.cursorX, e.cursorY))
	return e.model.SetView(v.Real, v.Imag)
}

func (e *editor) pan(fx, fy float32) error {
	return e.setView(e.view.Pan(fx, fy))
}

// zoom scales the view around the cursor. Positive steps zoom in.
func (e *editor) zoom(steps float64) error {
	factor := math.Pow(zoomBase, -float32(steps))
	center := e.view.ToComplex(e.cursorX, e.cursorY)
	return e.setView(e.view.Zoom(center, factor))
}

func (e *editor) resize(width, height int) error {
	if width == e.view.Width && height == e.view.Height {
		return nil
	}
	return e.setView(e.view.Resize(width, height))
}

// addIterations changes the iteration count by delta, never going below one.
func (e *editor) addIterations(delta int) error {
	n := max(e.model.MaxIterations()+delta, 1)
	if n == e.model.MaxIterations() {
		return nil
	}
	err := e.model.SetMaxIterations(n)
	if err != nil {
		return err
	}
	e.dirty = true
	e.log("max iterations:", n)
	return nil
}

// consumeDirty reports whether a redraw is needed and clears the flag.
func (e *editor) consumeDirty() bool {
	d := e.dirty
	e.dirty = false
	return d
}
