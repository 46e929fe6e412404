package newtonaux

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/Robotechnic/newtonfractal"
	"github.com/Robotechnic/newtonfractal/glbuild"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

type nopProgram struct{}

func (nopProgram) SetUniformi(string, int32) error    { return nil }
func (nopProgram) SetUniform2f(string, ms2.Vec) error { return nil }
func (nopProgram) SetUniform3f(string, ms3.Vec) error { return nil }
func (nopProgram) Delete()                            {}

func nopCompile(glbuild.ShaderSource, []glbuild.Uniform) (newtonfractal.Program, error) {
	return nopProgram{}, nil
}

// newTestEditor returns an editor over a 100x100 viewport showing [-2,2]x[-2,2].
func newTestEditor(t *testing.T, roots ...complex128) *editor {
	t.Helper()
	view := FitView(100, 100, 0, 2)
	m, err := newtonfractal.New(nopCompile, newtonfractal.Config{
		Roots:         roots,
		Colors:        DefaultColors(len(roots)),
		MaxIterations: 10,
		RealRange:     view.Real,
		ImagRange:     view.Imag,
	})
	if err != nil {
		t.Fatal(err)
	}
	return newEditor(m, view, t.Log)
}

func TestEditorHoverAndDrag(t *testing.T) {
	ed := newTestEditor(t, UnityRoots(3)...)
	// Root 1+0i is at pixel (75,50).
	ed.cursorMoved(76, 51)
	if ed.hovered != 0 {
		t.Fatalf("want root 0 hovered, got %d", ed.hovered)
	}
	ed.cursorMoved(10, 10)
	if ed.hovered != -1 {
		t.Fatalf("want no root hovered, got %d", ed.hovered)
	}
	ed.cursorMoved(75, 50)
	ed.startDrag()
	err := ed.cursorMoved(50, 25)
	if err != nil {
		t.Fatal(err)
	}
	if got := ed.model.Roots()[0]; cmplx.Abs(got-complex(0, 1)) > 1e-5 {
		t.Errorf("dragged root should be at i, got %v", got)
	}
	if cmplx.Abs(ed.model.Polynomial().Evaluate(ed.model.Roots()[0])) > 1e-9 {
		t.Error("polynomial not updated while dragging")
	}
	ed.endDrag()
	ed.cursorMoved(90, 90)
	if cmplx.Abs(ed.model.Roots()[0]-complex(0, 1)) > 1e-5 {
		t.Error("root moved after drag ended")
	}
}

func TestEditorAddRemove(t *testing.T) {
	ed := newTestEditor(t, UnityRoots(3)...)
	ed.cursorMoved(25, 25)
	err := ed.addRoot()
	if err != nil {
		t.Fatal(err)
	}
	if ed.model.Len() != 4 || ed.hovered != 3 {
		t.Fatalf("want 4 roots with the new one hovered, got %d and %d", ed.model.Len(), ed.hovered)
	}
	if got := ed.model.Roots()[3]; cmplx.Abs(got-complex(-1, 1)) > 1e-5 {
		t.Errorf("root added at %v, want -1+1i", got)
	}
	if ed.model.Colors()[3] != RootColor(3) {
		t.Error("new root should get next palette color")
	}
	err = ed.removeHovered()
	if err != nil {
		t.Fatal(err)
	}
	if ed.model.Len() != 3 || ed.hovered != -1 {
		t.Errorf("want 3 roots and none hovered, got %d and %d", ed.model.Len(), ed.hovered)
	}
	// Nothing hovered, nothing removed.
	err = ed.removeHovered()
	if err != nil || ed.model.Len() != 3 {
		t.Error("remove without hovered root should be a no-op")
	}
}

func TestEditorLastRoot(t *testing.T) {
	ed := newTestEditor(t, 0)
	ed.cursorMoved(50, 50)
	err := ed.removeHovered()
	if !errors.Is(err, newtonfractal.ErrLastRoot) {
		t.Fatalf("want ErrLastRoot, got %v", err)
	}
	if ed.model.Len() != 1 {
		t.Error("last root removed")
	}
}

func TestEditorViewControls(t *testing.T) {
	ed := newTestEditor(t, UnityRoots(4)...)
	ed.cursorMoved(75, 50)
	before := ed.view.ToComplex(75, 50)
	err := ed.zoom(2)
	if err != nil {
		t.Fatal(err)
	}
	if after := ed.view.ToComplex(75, 50); cmplx.Abs(after-before) > 1e-4 {
		t.Errorf("zoom moved point under cursor %v -> %v", before, after)
	}
	if ed.model.RealRange() != ed.view.Real || ed.model.ImagRange() != ed.view.Imag {
		t.Error("model view not updated on zoom")
	}
	err = ed.pan(panStep, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ed.model.RealRange() != ed.view.Real {
		t.Error("model view not updated on pan")
	}
	err = ed.resize(200, 100)
	if err != nil || ed.view.Width != 200 || ed.model.RealRange() != ed.view.Real {
		t.Error("resize not applied")
	}
	err = ed.addIterations(-1000)
	if err != nil || ed.model.MaxIterations() != 1 {
		t.Errorf("iterations should clamp at 1, got %d", ed.model.MaxIterations())
	}
	err = ed.addIterations(4)
	if err != nil || ed.model.MaxIterations() != 5 {
		t.Errorf("want 5 iterations, got %d", ed.model.MaxIterations())
	}
	if !ed.consumeDirty() || ed.consumeDirty() {
		t.Error("dirty flag should be set once and cleared on consume")
	}
}

func TestUIConfigDefaults(t *testing.T) {
	cfg, err := UIConfig{}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || len(cfg.Roots) != 3 || len(cfg.Colors) != 3 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ImagRange != (ms2.Vec{X: -2, Y: 2}) || cfg.SnapshotFormat != "png" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	_, err = UIConfig{Roots: []complex128{1}, Colors: DefaultColors(2)}.withDefaults()
	if !errors.Is(err, newtonfractal.ErrRootColorMismatch) {
		t.Errorf("want mismatch error, got %v", err)
	}
	_, err = UIConfig{SnapshotFormat: "gif"}.withDefaults()
	if err == nil {
		t.Error("expected error for unsupported snapshot format")
	}
}
