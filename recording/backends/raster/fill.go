package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/internal/blend"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bézier curve: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498

// coverage is an anti-aliased mask whose pixel (0, 0) sits at origin on
// the canvas.
type coverage struct {
	alpha  *image.Alpha
	origin image.Point
}

// newRasterizer prepares a rasterizer covering the pixel box around
// (minX, minY)-(maxX, maxY). It returns nil if the box misses canvas.
func newRasterizer(canvas image.Rectangle, minX, minY, maxX, maxY float64) (*vector.Rasterizer, image.Point) {
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	if box.Empty() || !box.Overlaps(canvas) {
		return nil, image.Point{}
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.DrawOp = draw.Src
	return z, box.Min
}

// finish renders the accumulated path into a coverage mask.
func finish(z *vector.Rasterizer, origin image.Point) *coverage {
	size := z.Size()
	a := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	z.Draw(a, a.Bounds(), image.Opaque, image.Point{})
	return &coverage{alpha: a, origin: origin}
}

func circleMask(canvas image.Rectangle, cx, cy, r float64) *coverage {
	z, o := newRasterizer(canvas, cx-r, cy-r, cx+r, cy+r)
	if z == nil {
		return nil
	}
	x, y := float32(cx-float64(o.X)), float32(cy-float64(o.Y))
	rr, k := float32(r), float32(r*kappa)

	z.MoveTo(x+rr, y)
	z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	z.ClosePath()
	return finish(z, o)
}

func lineMask(canvas image.Rectangle, l stepper.Line) *coverage {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	// Offset perpendicular to the segment by half the width.
	nx, ny := -dy/length*l.Width/2, dx/length*l.Width/2

	b := l.Bounds()
	z, o := newRasterizer(canvas, b.MinX, b.MinY, b.MaxX, b.MaxY)
	if z == nil {
		return nil
	}
	ox, oy := float64(o.X), float64(o.Y)
	pt := func(x, y float64) (float32, float32) {
		return float32(x - ox), float32(y - oy)
	}

	z.MoveTo(pt(l.X0+nx, l.Y0+ny))
	z.LineTo(pt(l.X1+nx, l.Y1+ny))
	z.LineTo(pt(l.X1-nx, l.Y1-ny))
	z.LineTo(pt(l.X0-nx, l.Y0-ny))
	z.ClosePath()
	return finish(z, o)
}

func rectMask(canvas image.Rectangle, r stepper.Rect) *coverage {
	z, o := newRasterizer(canvas, r.MinX, r.MinY, r.MaxX, r.MaxY)
	if z == nil {
		return nil
	}
	x0, y0 := float32(r.MinX-float64(o.X)), float32(r.MinY-float64(o.Y))
	x1, y1 := float32(r.MaxX-float64(o.X)), float32(r.MaxY-float64(o.Y))

	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
	return finish(z, o)
}

// textMask renders the label's glyph coverage.
func (b *Backend) textMask(t stepper.Text) (*coverage, error) {
	face, err := b.font.Face(t.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, t.S)
	box := image.Rect(
		int(math.Floor(t.X+fixedToFloat64(bounds.Min.X))),
		int(math.Floor(t.Y+fixedToFloat64(bounds.Min.Y))),
		int(math.Ceil(t.X+fixedToFloat64(bounds.Max.X))),
		int(math.Ceil(t.Y+fixedToFloat64(bounds.Max.Y))),
	)
	if box.Empty() || !box.Overlaps(b.img.Bounds()) {
		return nil, nil
	}

	a := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	d := &font.Drawer{
		Dst:  a,
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(t.X - float64(box.Min.X)),
			Y: floatToFixed(t.Y - float64(box.Min.Y)),
		},
	}
	d.DrawString(t.S)
	return &coverage{alpha: a, origin: box.Min}, nil
}

func (b *Backend) drawText(t stepper.Text) error {
	m, err := b.textMask(t)
	if err != nil {
		return err
	}
	b.composite(m, t.Color, blend.ModeSourceOver)
	return nil
}

// composite paints a solid color through m.
func (b *Backend) composite(m *coverage, c stepper.RGBA, mode blend.Mode) {
	b.compositeFunc(m, func(int) stepper.RGBA { return c }, mode)
}

// compositeFunc paints through m with a color chosen per canvas column.
func (b *Backend) compositeFunc(m *coverage, colorAt func(x int) stepper.RGBA, mode blend.Mode) {
	if m == nil {
		return
	}
	canvas := b.img.Bounds()
	mb := m.alpha.Bounds()

	var (
		lastX          = math.MinInt
		sr, sg, sb, sa byte
	)
	for ly := 0; ly < mb.Dy(); ly++ {
		y := m.origin.Y + ly
		if y < canvas.Min.Y || y >= canvas.Max.Y {
			continue
		}
		row := m.alpha.Pix[ly*m.alpha.Stride:]
		for lx := 0; lx < mb.Dx(); lx++ {
			x := m.origin.X + lx
			if x < canvas.Min.X || x >= canvas.Max.X {
				continue
			}
			cov := row[lx]
			if cov == 0 {
				continue
			}
			if x != lastX {
				n := colorAt(x).NRGBA()
				sr, sg, sb, sa = blend.Premultiply(n.R, n.G, n.B, n.A)
				lastX = x
			}
			i := b.img.PixOffset(x, y)
			p := b.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = blend.Pixel(mode, sr, sg, sb, sa, p[0], p[1], p[2], p[3], cov)
		}
	}
}

func (b *Backend) fillBackground() {
	n := b.background.NRGBA()
	r, g, bl, a := blend.Premultiply(n.R, n.G, n.B, n.A)
	pix := b.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, bl, a
	}
}

func modeFor(c stepper.Composite) blend.Mode {
	if c == stepper.CompositeSource {
		return blend.ModeSource
	}
	return blend.ModeSourceOver
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
