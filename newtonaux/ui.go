//go:build !tinygo && cgo

package newtonaux

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Robotechnic/newtonfractal"
	"github.com/Robotechnic/newtonfractal/glrender"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

func ui(cfg UIConfig) error {
	logf := func(args ...any) {
		if !cfg.Silent {
			log.Println(args...)
		}
	}
	window, term, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "Newton fractal",
		Version: [2]int{4, 6},
		Width:   cfg.Width,
		Height:  cfg.Height,
	})
	if err != nil {
		return fmt.Errorf("starting window: %w", err)
	}
	defer term()
	// SwapBuffers blocks until the frame is presented.
	glfw.SwapInterval(1)

	model, err := newtonfractal.New(glrender.CompileProgram, cfg.modelConfig())
	if err != nil {
		return err
	}
	defer model.Close()
	logf("polynomial:", model.Polynomial())
	quad, err := glrender.NewQuad()
	if err != nil {
		return err
	}
	defer quad.Delete()
	markers, err := newMarkerRenderer()
	if err != nil {
		return err
	}
	defer markers.Delete()
	annotator, err := NewAnnotator()
	if err != nil {
		return err
	}

	width, height := window.GetSize()
	ed := newEditor(model, View{Width: width, Height: height, Real: cfg.RealRange, Imag: cfg.ImagRange}, logf)
	// Edits failing to compile or apply leave the model as it was, so they are reported and skipped.
	report := func(err error) {
		if err != nil {
			log.Println("edit failed:", err)
		}
	}
	takeSnapshot := false

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		report(ed.cursorMoved(xpos, ypos))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		switch {
		case button == glfw.MouseButtonLeft && action == glfw.Press:
			ed.startDrag()
		case button == glfw.MouseButtonLeft && action == glfw.Release:
			ed.endDrag()
		case button == glfw.MouseButtonRight && action == glfw.Press:
			report(ed.addRoot())
		}
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		report(ed.zoom(yoff))
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		report(ed.resize(width, height))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		pressed := action == glfw.Press
		var err error
		switch key {
		case glfw.KeyA:
			if pressed {
				err = ed.addRoot()
			}
		case glfw.KeyDelete, glfw.KeyBackspace:
			if pressed {
				err = ed.removeHovered()
			}
		case glfw.KeyLeft:
			err = ed.pan(-panStep, 0)
		case glfw.KeyRight:
			err = ed.pan(panStep, 0)
		case glfw.KeyUp:
			err = ed.pan(0, panStep)
		case glfw.KeyDown:
			err = ed.pan(0, -panStep)
		case glfw.KeyEqual, glfw.KeyKPAdd:
			err = ed.addIterations(1)
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			err = ed.addIterations(-1)
		case glfw.KeyS:
			takeSnapshot = takeSnapshot || pressed
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
		if errors.Is(err, newtonfractal.ErrLastRoot) {
			logf("fractal needs at least one root")
			return
		}
		report(err)
	})

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		presented := false
		if ed.consumeDirty() {
			fbw, fbh := window.GetFramebufferSize()
			gl.Viewport(0, 0, int32(fbw), int32(fbh))
			gl.ClearColor(0, 0, 0, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			err = quad.Draw(model.Program().(*glrender.Program))
			if err != nil {
				return fmt.Errorf("drawing fractal: %w", err)
			}
			scale := float32(fbw) / float32(max(ed.view.Width, 1))
			err = markers.Draw(ed.view, model.Roots(), model.Colors(), ed.hovered, scale)
			if err != nil {
				return fmt.Errorf("drawing markers: %w", err)
			}
			window.SwapBuffers()
			presented = true
		}
		if takeSnapshot {
			takeSnapshot = false
			path, err := snapshot(cfg, ed, quad, annotator)
			if err != nil {
				log.Println("snapshot failed:", err)
			} else {
				logf("saved snapshot", path)
			}
			ed.dirty = true // Target rendering changed the viewport.
		}
		if presented {
			glfw.PollEvents()
		} else {
			// Nothing changed, wait for input instead of spinning.
			glfw.WaitEventsTimeout(1.0 / 60)
		}
	}
	return nil
}

// snapshot renders the fractal offscreen at the window size, annotates the roots and writes it to disk.
func snapshot(cfg UIConfig, ed *editor, quad *glrender.Quad, annotator *Annotator) (string, error) {
	target, err := glrender.NewTarget(ed.view.Width, ed.view.Height)
	if err != nil {
		return "", err
	}
	defer target.Delete()
	img, err := target.Render(quad, ed.model.Program().(*glrender.Program))
	if err != nil {
		return "", err
	}
	err = annotator.Annotate(img, ed.view, ed.model.Roots(), ed.model.Colors(), ed.hovered)
	if err != nil {
		return "", err
	}
	path := SnapshotPath(cfg.SnapshotDir, cfg.SnapshotFormat, time.Now())
	return path, SaveImage(path, img)
}

const markerVertex = `#version 300 es
precision highp float;
in vec2 aPos;
uniform float uSize;
void main() {
	gl_Position = vec4(aPos, 0.0, 1.0);
	gl_PointSize = uSize;
}
`

const markerFragment = `#version 300 es
precision highp float;
uniform vec3 uRing;
uniform vec3 uFill;
out vec4 fragColor;
void main() {
	float r = 2.0*length(gl_PointCoord - vec2(0.5));
	if (r > 1.0) {
		discard;
	}
	fragColor = vec4(r > 0.65 ? uRing : uFill, 1.0);
}
`

// markerRenderer draws root markers as round points over the fractal.
type markerRenderer struct {
	prog       glgl.Program
	vao, vbo   uint32
	sizeLoc    int32
	ringLoc    int32
	fillLoc    int32
	clipCoords []ms2.Vec
}

func newMarkerRenderer() (*markerRenderer, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   markerVertex + "\x00",
		Fragment: markerFragment + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling marker program: %w", err)
	}
	mr := &markerRenderer{prog: prog}
	mr.sizeLoc, err = prog.UniformLocation("uSize\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	mr.ringLoc, err = prog.UniformLocation("uRing\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	mr.fillLoc, err = prog.UniformLocation("uFill\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	posAttrib, err := prog.AttribLocation("aPos\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	gl.GenVertexArrays(1, &mr.vao)
	gl.BindVertexArray(mr.vao)
	gl.GenBuffers(1, &mr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mr.vbo)
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointerWithOffset(posAttrib, 2, gl.FLOAT, false, 0, 0)
	gl.BindVertexArray(0)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	err = glgl.Err()
	if err != nil {
		mr.Delete()
		return nil, err
	}
	return mr, nil
}

// Draw draws one marker per root. scale converts window pixels to framebuffer pixels.
func (mr *markerRenderer) Draw(view View, roots []complex128, colors []ms3.Vec, hovered int, scale float32) error {
	if len(roots) == 0 {
		return nil
	}
	mr.clipCoords = mr.clipCoords[:0]
	for _, r := range roots {
		mr.clipCoords = append(mr.clipCoords, view.ToClip(r))
	}
	mr.prog.Bind()
	defer mr.prog.Unbind()
	gl.BindVertexArray(mr.vao)
	defer gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, mr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 8*len(mr.clipCoords), gl.Ptr(mr.clipCoords), gl.DYNAMIC_DRAW)
	gl.Uniform1f(mr.sizeLoc, 2*markerRadius*scale)
	for i := range roots {
		ring := markerColor(i == hovered)
		fill := colors[i]
		gl.Uniform3f(mr.ringLoc, ring.X, ring.Y, ring.Z)
		gl.Uniform3f(mr.fillLoc, fill.X, fill.Y, fill.Z)
		gl.DrawArrays(gl.POINTS, int32(i), 1)
	}
	return glgl.Err()
}

func (mr *markerRenderer) Delete() {
	mr.prog.Delete()
	gl.DeleteBuffers(1, &mr.vbo)
	gl.DeleteVertexArrays(1, &mr.vao)
}
