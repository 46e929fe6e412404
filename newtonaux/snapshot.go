package newtonaux

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Robotechnic/newtonfractal"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms3"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// Marker geometry in pixels.
const (
	markerRadius  = 6
	markerOutline = 2
	labelSize     = 12
)

// EncodeImage writes img to w in the named format: "png", "bmp" or "tiff".
func EncodeImage(w io.Writer, format string, img image.Image) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// FormatFromPath returns the image format implied by the file extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "bmp":
		return ext, nil
	case "tif", "tiff":
		return "tiff", nil
	case "":
		return "", errors.New("missing file extension")
	}
	return "", fmt.Errorf("unsupported image extension %q", ext)
}

// SaveImage creates the file at path and encodes img in the format implied by its extension.
func SaveImage(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		errClose := fp.Close()
		if err == nil {
			err = errClose
		}
	}()
	return EncodeImage(fp, format, img)
}

// SnapshotPath returns a time stamped file path in dir for a snapshot of the given format.
func SnapshotPath(dir, format string, t time.Time) string {
	return filepath.Join(dir, "newton-"+t.Format("20060102-150405.000")+"."+format)
}

// RenderFile renders the fractal described by cfg and saves it to path in the
// format implied by its extension. If annotate is set root markers and labels are drawn.
// A GL context must be current on the calling thread.
func RenderFile(path string, cfg newtonfractal.Config, width, height int, annotate bool) error {
	_, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := RenderImage(cfg, width, height)
	if err != nil {
		return err
	}
	if annotate {
		annotator, err := NewAnnotator()
		if err != nil {
			return err
		}
		view := View{Width: width, Height: height, Real: cfg.RealRange, Imag: cfg.ImagRange}
		err = annotator.Annotate(img, view, cfg.Roots, cfg.Colors, -1)
		if err != nil {
			return err
		}
	}
	return SaveImage(path, img)
}

// Annotator draws root markers and index labels over rendered fractals.
type Annotator struct {
	face font.Face
}

// NewAnnotator parses the embedded Go Regular font for labels.
func NewAnnotator() (*Annotator, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	return &Annotator{
		face: truetype.NewFace(ttf, &truetype.Options{Size: labelSize, Hinting: font.HintingFull}),
	}, nil
}

// Annotate draws a ring filled with the root's color at every root and its index
// next to it. Roots outside the view are skipped. The ring of the hovered root is white,
// the rest are black; pass -1 to highlight none.
func (a *Annotator) Annotate(dst draw.Image, view View, roots []complex128, colors []ms3.Vec, hovered int) error {
	if len(roots) != len(colors) {
		return fmt.Errorf("%d roots but %d colors", len(roots), len(colors))
	}
	bounds := dst.Bounds()
	var label []byte
	for i, r := range roots {
		fx, fy := view.ToScreen(r)
		x, y := bounds.Min.X+int(fx), bounds.Min.Y+int(fy)
		if !image.Pt(x, y).In(bounds.Inset(-markerRadius)) {
			continue
		}
		ring := RGBA(markerColor(i == hovered))
		fillDisk(dst, x, y, markerRadius, ring)
		fillDisk(dst, x, y, markerRadius-markerOutline, RGBA(colors[i]))

		label = strconv.AppendInt(label[:0], int64(i), 10)
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(ring),
			Face: a.face,
			Dot:  fixed.P(x+markerRadius+2, y-markerRadius),
		}
		d.DrawBytes(label)
	}
	return nil
}

func fillDisk(dst draw.Image, cx, cy, radius int, c color.Color) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				dst.Set(cx+dx, cy+dy, c)
			}
		}
	}
}
