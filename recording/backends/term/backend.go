// Package term provides a terminal backend for the recording system.
//
// One canvas unit maps to one terminal column and two canvas units map to
// one row: every cell shows two stacked pixels using an upper half block
// whose foreground is the top pixel and whose background is the bottom
// one. Colors are emitted through lipgloss, so the output degrades to the
// color profile of the writer.
//
// Coverage is point-sampled at pixel centers; there is no anti-aliasing
// at this resolution.
package term

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/recording"
)

const halfBlock = "▀"

func init() {
	recording.Register("term", func() recording.Backend {
		return NewBackend()
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithRenderer sets the lipgloss renderer used to style cells, which
// decides the color profile of the output.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(b *Backend) {
		if r != nil {
			b.renderer = r
		}
	}
}

// WithBackground fills the canvas with c on every Begin.
func WithBackground(c stepper.RGBA) Option {
	return func(b *Backend) { b.background = c }
}

// Backend paints frames into a grid of terminal cells.
type Backend struct {
	renderer   *lipgloss.Renderer
	background stepper.RGBA

	width, height int // in pixels
	pix           []stepper.RGBA
	labels        map[cellPos]label
}

type cellPos struct{ col, row int }

type label struct {
	r     rune
	color stepper.RGBA
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a terminal backend using the default lipgloss renderer.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin resets the grid to width columns and height/2 rows.
func (b *Backend) Begin(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("term: invalid canvas size %dx%d", width, height)
	}
	// Round up to whole rows.
	height += height % 2
	b.width, b.height = width, height
	b.pix = make([]stepper.RGBA, width*height)
	b.labels = make(map[cellPos]label)
	if b.background.A > 0 {
		for i := range b.pix {
			b.pix[i] = b.background
		}
	}
	return nil
}

// End finalizes the grid.
func (b *Backend) End() error { return nil }

// Columns returns the grid width in cells.
func (b *Backend) Columns() int { return b.width }

// Rows returns the grid height in cells.
func (b *Backend) Rows() int { return b.height / 2 }

// Pixel returns the color painted at canvas pixel (x, y).
func (b *Backend) Pixel(x, y int) stepper.RGBA {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return stepper.Transparent
	}
	return b.pix[y*b.width+x]
}

// DrawCircle paints every pixel whose center lies in the outer disc.
func (b *Backend) DrawCircle(c stepper.Circle) {
	r := c.OuterRadius()
	b.fill(c.Bounds(), c.Composite, func(x, y float64) (stepper.RGBA, bool) {
		dx, dy := x-c.CX, y-c.CY
		return c.Color, dx*dx+dy*dy <= r*r
	})
}

// DrawLine paints every pixel whose center lies in the stroked segment.
func (b *Backend) DrawLine(l stepper.Line) {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	length := math.Hypot(dx, dy)
	if length == 0 || l.Width <= 0 {
		return
	}
	ux, uy := dx/length, dy/length
	hw := l.Width / 2
	b.fill(l.Bounds(), l.Composite, func(x, y float64) (stepper.RGBA, bool) {
		px, py := x-l.X0, y-l.Y0
		along := px*ux + py*uy
		across := px*uy - py*ux
		return l.Color, along >= 0 && along <= length && math.Abs(across) <= hw
	})
}

// FillGradient shades each pixel by its column.
func (b *Backend) FillGradient(g stepper.Gradient) {
	b.fill(g.Rect, stepper.CompositeSourceOver, func(x, y float64) (stepper.RGBA, bool) {
		inside := x >= g.Rect.MinX && x <= g.Rect.MaxX && y >= g.Rect.MinY && y <= g.Rect.MaxY
		return g.ColorAt(x), inside
	})
}

// DrawText writes the label's runes into the row holding its baseline.
func (b *Backend) DrawText(t stepper.Text) {
	if t.S == "" {
		return
	}
	row := int(math.Floor(t.Y-1)) / 2
	if t.Y-1 < 0 || row >= b.Rows() {
		return
	}
	col := int(math.Round(t.X))
	for _, r := range t.S {
		w := lipgloss.Width(string(r))
		if col >= 0 && col < b.width {
			b.labels[cellPos{col, row}] = label{r: r, color: t.Color}
			// Wide runes occupy the next cell too.
			for i := 1; i < w && col+i < b.width; i++ {
				b.labels[cellPos{col + i, row}] = label{}
			}
		}
		col += max(w, 1)
	}
}

// String renders the grid, one line per row.
func (b *Backend) String() string {
	var sb strings.Builder
	for row := 0; row < b.Rows(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < b.width; col++ {
			sb.WriteString(b.cell(col, row))
		}
	}
	return sb.String()
}

// WriteTo writes the rendered grid followed by a newline.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String()+"\n")
	return int64(n), err
}

func (b *Backend) cell(col, row int) string {
	top, bottom := b.Pixel(col, 2*row), b.Pixel(col, 2*row+1)

	if l, ok := b.labels[cellPos{col, row}]; ok {
		if l.r == 0 {
			return ""
		}
		s := b.renderer.NewStyle().Foreground(termColor(l.color))
		if bg := top.Lerp(bottom, 0.5); bg.A > 0 {
			s = s.Background(termColor(bg))
		}
		return s.Render(string(l.r))
	}

	switch {
	case top.A == 0 && bottom.A == 0:
		return " "
	case bottom.A == 0:
		return b.renderer.NewStyle().Foreground(termColor(top)).Render(halfBlock)
	default:
		s := b.renderer.NewStyle().Background(termColor(bottom))
		if top.A > 0 {
			s = s.Foreground(termColor(top))
		}
		if top.A == 0 {
			return s.Render(" ")
		}
		return s.Render(halfBlock)
	}
}

// fill paints pixels in bounds for which inside reports true.
func (b *Backend) fill(bounds stepper.Rect, op stepper.Composite, inside func(x, y float64) (stepper.RGBA, bool)) {
	x0 := max(int(math.Floor(bounds.MinX)), 0)
	y0 := max(int(math.Floor(bounds.MinY)), 0)
	x1 := min(int(math.Ceil(bounds.MaxX)), b.width)
	y1 := min(int(math.Ceil(bounds.MaxY)), b.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c, ok := inside(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				continue
			}
			i := y*b.width + x
			if op == stepper.CompositeSource {
				b.pix[i] = c
			} else {
				b.pix[i] = over(c, b.pix[i])
			}
		}
	}
}

// over composites straight-alpha src over dst.
func over(src, dst stepper.RGBA) stepper.RGBA {
	a := src.A + dst.A*(1-src.A)
	if a == 0 {
		return stepper.Transparent
	}
	mix := func(s, d float64) float64 {
		return (s*src.A + d*dst.A*(1-src.A)) / a
	}
	return stepper.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: a}
}

// termColor flattens translucent colors against black, since terminal
// cells have no alpha.
func termColor(c stepper.RGBA) lipgloss.Color {
	flat := stepper.RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: 1}
	return lipgloss.Color(flat.HexString()[:7])
}
