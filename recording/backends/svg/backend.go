// Package svg provides an SVG backend for the recording system.
//
// Shadow primitives are collected into a single group whose opacity is
// the shadow alpha, with the shapes themselves painted opaque. Overlaps
// inside the group therefore keep one alpha, which is how the source
// operator of the shadow pass is expressed in SVG.
package svg

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/recording"
)

// ErrNotFinished is returned by output methods called before End.
var ErrNotFinished = errors.New("svg: document not finished")

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithFontFamily sets the font-family of label elements.
func WithFontFamily(family string) Option {
	return func(b *Backend) { b.family = family }
}

// WithBackground paints a full canvas rectangle before the frame.
func WithBackground(c stepper.RGBA) Option {
	return func(b *Backend) { b.background = c }
}

// Backend writes frames as SVG documents.
type Backend struct {
	buf        bytes.Buffer
	family     string
	background stepper.RGBA
	width      int
	height     int

	gradients int
	inShadow  bool
	shadowA   float64
	done      bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates an SVG backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{family: "sans-serif"}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin starts a new document.
func (b *Backend) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("svg: invalid canvas size %dx%d", width, height)
	}
	b.buf.Reset()
	b.width, b.height = width, height
	b.gradients = 0
	b.inShadow = false
	b.done = false

	fmt.Fprintf(&b.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	if b.background.A > 0 {
		fmt.Fprintf(&b.buf, `  <rect width="100%%" height="100%%" %s/>`+"\n", paint("fill", b.background))
	}
	return nil
}

// End closes the document.
func (b *Backend) End() error {
	b.closeShadow()
	b.buf.WriteString("</svg>\n")
	b.done = true
	return nil
}

// DrawCircle writes a <circle> with the outer radius.
func (b *Backend) DrawCircle(c stepper.Circle) {
	col := b.enter(c.Pass, c.Color)
	fmt.Fprintf(&b.buf, `%s<circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
		b.indent(), num(c.CX), num(c.CY), num(c.OuterRadius()), paint("fill", col))
}

// DrawLine writes a <line> with butt caps.
func (b *Backend) DrawLine(l stepper.Line) {
	col := b.enter(l.Pass, l.Color)
	fmt.Fprintf(&b.buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s" stroke-linecap="butt" %s/>`+"\n",
		b.indent(), num(l.X0), num(l.Y0), num(l.X1), num(l.Y1), num(l.Width), paint("stroke", col))
}

// FillGradient writes a <linearGradient> and the <rect> that uses it.
func (b *Backend) FillGradient(g stepper.Gradient) {
	b.closeShadow()
	b.gradients++
	id := "grad" + strconv.Itoa(b.gradients)

	fmt.Fprintf(&b.buf, `  <defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="0" x2="%s" y2="0">`,
		id, num(g.Rect.MinX), num(g.Rect.MaxX))
	fmt.Fprintf(&b.buf, `<stop offset="0" %s/><stop offset="1" %s/></linearGradient></defs>`+"\n",
		stop(g.From), stop(g.To))
	fmt.Fprintf(&b.buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="url(#%s)"/>`+"\n",
		num(g.Rect.MinX), num(g.Rect.MinY), num(g.Rect.Width()), num(g.Rect.Height()), id)
}

// DrawText writes a <text> element anchored at its baseline origin.
func (b *Backend) DrawText(t stepper.Text) {
	b.closeShadow()
	fmt.Fprintf(&b.buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s" %s>%s</text>`+"\n",
		num(t.X), num(t.Y), html.EscapeString(b.family), num(t.Size), paint("fill", t.Color), html.EscapeString(t.S))
}

// Width returns the canvas width of the current document.
func (b *Backend) Width() int { return b.width }

// Height returns the canvas height of the current document.
func (b *Backend) Height() int { return b.height }

// Bytes returns the finished document.
func (b *Backend) Bytes() []byte {
	if !b.done {
		return nil
	}
	return b.buf.Bytes()
}

// WriteTo writes the finished document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, ErrNotFinished
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the finished document to path.
func (b *Backend) SaveToFile(path string) error {
	if !b.done {
		return ErrNotFinished
	}
	if err := os.WriteFile(path, b.buf.Bytes(), 0o644); err != nil { // #nosec G306 -- output is a public image
		return fmt.Errorf("svg: write %s: %w", path, err)
	}
	return nil
}

// enter switches between the shadow group and the top level, returning
// the color to paint the element with.
func (b *Backend) enter(pass stepper.Layer, c stepper.RGBA) stepper.RGBA {
	if pass != stepper.LayerShadow {
		b.closeShadow()
		return c
	}
	if b.inShadow && b.shadowA != c.A {
		b.closeShadow()
	}
	if !b.inShadow {
		fmt.Fprintf(&b.buf, `  <g id="shadow" opacity="%s">`+"\n", num(c.A))
		b.inShadow = true
		b.shadowA = c.A
	}
	c.A = 1
	return c
}

func (b *Backend) closeShadow() {
	if b.inShadow {
		b.buf.WriteString("  </g>\n")
		b.inShadow = false
	}
}

func (b *Backend) indent() string {
	if b.inShadow {
		return "    "
	}
	return "  "
}

// paint formats an attribute pair for c, adding an opacity attribute only
// for translucent colors.
func paint(attr string, c stepper.RGBA) string {
	n := c.NRGBA()
	s := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, n.R, n.G, n.B)
	if n.A != 255 {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, num(float64(n.A)/255))
	}
	return s
}

func stop(c stepper.RGBA) string {
	n := c.NRGBA()
	return fmt.Sprintf(`stop-color="#%02x%02x%02x" stop-opacity="%s"`, n.R, n.G, n.B, num(float64(n.A)/255))
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
