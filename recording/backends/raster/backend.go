// Package raster provides a raster backend for the recording system.
// It renders frames to an *image.RGBA and encodes PNG.
//
// Shapes are scan-converted with golang.org/x/image/vector into a coverage
// mask local to the shape's bounding box, then composited pixel by pixel
// with the primitive's operator. Labels are drawn with
// golang.org/x/image/font using faces from a text.FontSource.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/stepper/recording/backends/raster"
//
//	// Create via registry
//	backend, _ := recording.NewBackend("raster")
//
//	// Or create directly
//	backend := raster.NewBackend(raster.WithBackground(stepper.White))
//
//	// Playback a frame
//	recording.Playback(frame, backend)
//
//	// Get output
//	backend.SavePNG("output.png")
//	img := backend.Image()
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/recording"
	"github.com/gogpu/stepper/text"
)

// ErrNotStarted is returned by output methods called before Begin.
var ErrNotStarted = errors.New("raster: backend not started")

func init() {
	recording.Register("raster", func() recording.Backend {
		return NewBackend()
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithFont sets the font used for labels. Defaults to text.DefaultSource().
func WithFont(src *text.FontSource) Option {
	return func(b *Backend) {
		if src != nil {
			b.font = src
		}
	}
}

// WithBackground fills the canvas with c on every Begin.
// The default is transparent.
func WithBackground(c stepper.RGBA) Option {
	return func(b *Backend) {
		b.background = c
	}
}

// Backend renders frames to a pixel image.
// It implements recording.Backend, recording.WriterBackend,
// recording.FileBackend, and recording.ImageBackend interfaces.
type Backend struct {
	img        *image.RGBA
	font       *text.FontSource
	background stepper.RGBA
	width      int
	height     int
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{font: text.DefaultSource()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin allocates a fresh width x height canvas.
func (b *Backend) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("raster: invalid canvas size %dx%d", width, height)
	}
	b.width = width
	b.height = height
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if b.background.A > 0 {
		b.fillBackground()
	}
	return nil
}

// End finalizes the rendering.
// After End is called, output methods (WriteTo, SaveToFile) can be used.
func (b *Backend) End() error {
	return nil
}

// DrawCircle fills the circle's outer disc with its color and operator.
func (b *Backend) DrawCircle(c stepper.Circle) {
	if b.img == nil || c.OuterRadius() <= 0 {
		return
	}
	m := circleMask(b.img.Bounds(), c.CX, c.CY, c.OuterRadius())
	b.composite(m, c.Color, modeFor(c.Composite))
}

// DrawLine strokes the segment with butt caps.
func (b *Backend) DrawLine(l stepper.Line) {
	if b.img == nil || l.Width <= 0 {
		return
	}
	m := lineMask(b.img.Bounds(), l)
	b.composite(m, l.Color, modeFor(l.Composite))
}

// FillGradient fills the rectangle, shading each column by its center.
func (b *Backend) FillGradient(g stepper.Gradient) {
	if b.img == nil || g.Rect.Width() <= 0 || g.Rect.Height() <= 0 {
		return
	}
	m := rectMask(b.img.Bounds(), g.Rect)
	b.compositeFunc(m, func(x int) stepper.RGBA {
		return g.ColorAt(float64(x) + 0.5)
	}, modeFor(stepper.CompositeSourceOver))
}

// DrawText draws the label in its color, source-over.
func (b *Backend) DrawText(t stepper.Text) {
	if b.img == nil || t.S == "" || t.Size <= 0 {
		return
	}
	if err := b.drawText(t); err != nil {
		stepper.Logger().Warn("raster: text skipped", "label", t.S, "error", err)
	}
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, ErrNotStarted
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	if b.img == nil {
		return ErrNotStarted
	}
	f, err := os.Create(path) // #nosec G304 -- output path is provided by the user
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := png.Encode(f, b.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// Image returns the rendered image.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// SavePNG is a convenience method to save the image as PNG.
func (b *Backend) SavePNG(path string) error {
	return b.SaveToFile(path)
}

// Width returns the backend width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the backend height.
func (b *Backend) Height() int {
	return b.height
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
