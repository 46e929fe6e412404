// Package newtonaux contains helpers to get started with Newton fractals quickly:
// root presets and palettes, screen to complex plane mapping, snapshot export
// and an interactive viewer.
package newtonaux

import (
	"context"
	"fmt"

	"github.com/Robotechnic/newtonfractal"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// UIConfig configures the interactive viewer started by [UI].
// Zero values are replaced by defaults: an 800x600 window showing the cube
// roots of unity with [DefaultColors].
type UIConfig struct {
	Width, Height int
	// Roots and Colors are the initial root set. Colors may be nil to use [DefaultColors].
	Roots  []complex128
	Colors []ms3.Vec
	// MaxIterations defaults to [DefaultMaxIterations].
	MaxIterations int
	// RealRange and ImagRange set the initial view. If either is zero
	// a view centered at the origin is fit to the window.
	RealRange ms2.Vec
	ImagRange ms2.Vec
	// Silent disables informational logging. Errors are still logged.
	Silent bool
	// Context cancels the viewer loop when done.
	Context context.Context
	// SnapshotDir is where snapshots are written, defaults to the working directory.
	SnapshotDir string
	// SnapshotFormat is one of "png", "bmp" or "tiff". Defaults to "png".
	SnapshotFormat string
}

// UI opens a window rendering the fractal and blocks until it is closed.
// It must be called from the main thread. Controls:
//   - Left drag: move a root.
//   - Right click or A: add a root under the cursor.
//   - Delete or Backspace: remove the root under the cursor.
//   - Arrow keys: pan. Scroll: zoom around the cursor.
//   - + and -: change the iteration count.
//   - S: save a snapshot with root annotations.
func UI(cfg UIConfig) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}
	return ui(cfg)
}

func (cfg UIConfig) withDefaults() (UIConfig, error) {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Roots == nil {
		cfg.Roots = UnityRoots(3)
	}
	if cfg.Colors == nil {
		cfg.Colors = DefaultColors(len(cfg.Roots))
	}
	if len(cfg.Roots) != len(cfg.Colors) {
		return cfg, fmt.Errorf("%w: %d roots, %d colors", newtonfractal.ErrRootColorMismatch, len(cfg.Roots), len(cfg.Colors))
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	view := viewFromConfig(cfg.Width, cfg.Height, cfg.RealRange, cfg.ImagRange)
	cfg.RealRange, cfg.ImagRange = view.Real, view.Imag
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "."
	}
	if cfg.SnapshotFormat == "" {
		cfg.SnapshotFormat = "png"
	}
	_, err := FormatFromPath("snapshot." + cfg.SnapshotFormat)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg UIConfig) modelConfig() newtonfractal.Config {
	return newtonfractal.Config{
		Roots:         cfg.Roots,
		Colors:        cfg.Colors,
		MaxIterations: cfg.MaxIterations,
		RealRange:     cfg.RealRange,
		ImagRange:     cfg.ImagRange,
	}
}
