package recording

import (
	"image"
	"io"

	"github.com/gogpu/stepper"
)

// Backend is the interface that all export backends must implement.
// Backends receive primitives in paint order and translate them to their
// output format (raster pixels, SVG elements, terminal cells, ...).
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Honor the primitive's Composite mode where the format allows it
//  3. Treat Begin as a reset so a backend can be reused across frames
type Backend interface {
	// Begin initializes the backend for a width x height canvas.
	Begin(width, height int) error

	// End finalizes the output. After End, output methods can be used.
	End() error

	// DrawCircle paints a filled circle, grown by half its stroke width.
	DrawCircle(c stepper.Circle)

	// DrawLine strokes a straight segment with butt caps.
	DrawLine(l stepper.Line)

	// FillGradient fills a rectangle with a horizontal color ramp.
	FillGradient(g stepper.Gradient)

	// DrawText draws a label with its baseline origin at (t.X, t.Y).
	DrawText(t stepper.Text)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to w. Only valid after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to path. Only valid after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to rendered pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before Begin.
	Image() *image.RGBA
}
