package stepper

import "slices"

// Kind identifies the type of a draw primitive.
type Kind uint8

const (
	KindCircle   Kind = iota // Filled circle, optionally with a halo stroke
	KindLine                 // Straight stroked segment with butt caps
	KindGradient             // Rectangle filled with a horizontal color ramp
	KindText                 // Single line of text at a baseline origin
)

var kindNames = [...]string{
	KindCircle:   "Circle",
	KindLine:     "Line",
	KindGradient: "Gradient",
	KindText:     "Text",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Layer tells whether a primitive belongs to the shadow pass or to the
// foreground pass. Every shadow primitive precedes every foreground one.
type Layer uint8

const (
	LayerForeground Layer = iota
	LayerShadow
)

// String returns the layer name.
func (l Layer) String() string {
	if l == LayerShadow {
		return "shadow"
	}
	return "foreground"
}

// Composite is the compositing operator a backend applies for a primitive.
type Composite uint8

const (
	// CompositeSourceOver blends the source over the destination.
	CompositeSourceOver Composite = iota
	// CompositeSource replaces the destination where the primitive covers it,
	// so overlapping translucent shadows keep a single alpha.
	CompositeSource
)

// String returns the operator name.
func (c Composite) String() string {
	if c == CompositeSource {
		return "src"
	}
	return "src-over"
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Primitive is one atomic draw instruction. Each primitive carries its
// complete paint; executing a primitive never depends on a previous one
// beyond the pixels it leaves behind.
type Primitive interface {
	Kind() Kind
	Layer() Layer
	Bounds() Rect
}

// Circle fills a circle of Radius at (CX, CY). A non-zero StrokeWidth also
// strokes the outline, growing the painted disc by StrokeWidth/2.
type Circle struct {
	CX, CY      float64
	Radius      float64
	StrokeWidth float64
	Color       RGBA
	Composite   Composite
	Pass        Layer
}

// Kind implements Primitive.
func (Circle) Kind() Kind { return KindCircle }

// Layer implements Primitive.
func (c Circle) Layer() Layer { return c.Pass }

// OuterRadius returns the radius of the painted disc.
func (c Circle) OuterRadius() float64 { return c.Radius + c.StrokeWidth/2 }

// Bounds implements Primitive.
func (c Circle) Bounds() Rect {
	r := c.OuterRadius()
	return Rect{MinX: c.CX - r, MinY: c.CY - r, MaxX: c.CX + r, MaxY: c.CY + r}
}

// Line strokes a straight segment from (X0, Y0) to (X1, Y1).
type Line struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Color          RGBA
	Composite      Composite
	Pass           Layer
}

// Kind implements Primitive.
func (Line) Kind() Kind { return KindLine }

// Layer implements Primitive.
func (l Line) Layer() Layer { return l.Pass }

// Bounds implements Primitive.
func (l Line) Bounds() Rect {
	hw := l.Width / 2
	return Rect{
		MinX: min(l.X0, l.X1) - hw,
		MinY: min(l.Y0, l.Y1) - hw,
		MaxX: max(l.X0, l.X1) + hw,
		MaxY: max(l.Y0, l.Y1) + hw,
	}
}

// Gradient fills Rect with a horizontal ramp from From (at MinX) to To
// (at MaxX). Gradients are always foreground, source-over.
type Gradient struct {
	Rect     Rect
	From, To RGBA
}

// Kind implements Primitive.
func (Gradient) Kind() Kind { return KindGradient }

// Layer implements Primitive.
func (Gradient) Layer() Layer { return LayerForeground }

// Bounds implements Primitive.
func (g Gradient) Bounds() Rect { return g.Rect }

// ColorAt returns the ramp color at horizontal position x. Positions
// outside the rectangle take the nearest endpoint color.
func (g Gradient) ColorAt(x float64) RGBA {
	w := g.Rect.Width()
	if w <= 0 {
		return g.From
	}
	t := (x - g.Rect.MinX) / w
	switch {
	case t <= 0:
		return g.From
	case t >= 1:
		return g.To
	}
	return g.From.Lerp(g.To, t)
}

// Text draws S with its baseline origin at (X, Y).
type Text struct {
	S     string
	X, Y  float64
	Size  float64
	Width float64 // measured advance, used for centering and bounds
	Color RGBA
}

// Kind implements Primitive.
func (Text) Kind() Kind { return KindText }

// Layer implements Primitive.
func (Text) Layer() Layer { return LayerForeground }

// Bounds implements Primitive. The vertical extent is approximated by one
// em above the baseline.
func (t Text) Bounds() Rect {
	return Rect{MinX: t.X, MinY: t.Y - t.Size, MaxX: t.X + t.Width, MaxY: t.Y}
}

// Frame is the result of one layout pass: the ordered primitives plus the
// geometry they were derived from.
type Frame struct {
	Width, Height float64

	// Baseline is the width used as the 100% reference for text scaling.
	Baseline float64

	SideMargin        float64
	Pitch             float64
	EffectiveTextSize float64

	// Centers holds the x coordinate of every step's circle center.
	Centers []float64
	CenterY float64

	Primitives []Primitive
}

// Clone returns a copy of f that shares no slices with it.
func (f Frame) Clone() Frame {
	f.Centers = slices.Clone(f.Centers)
	f.Primitives = slices.Clone(f.Primitives)
	return f
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	return len(f.Primitives) == 0
}

// Count returns how many primitives of kind k the frame holds.
func (f Frame) Count(k Kind) int {
	n := 0
	for _, p := range f.Primitives {
		if p.Kind() == k {
			n++
		}
	}
	return n
}

// Filter returns the primitives of kind k in paint order.
func (f Frame) Filter(k Kind) []Primitive {
	var out []Primitive
	for _, p := range f.Primitives {
		if p.Kind() == k {
			out = append(out, p)
		}
	}
	return out
}

// InLayer returns the primitives of layer l in paint order.
func (f Frame) InLayer(l Layer) []Primitive {
	var out []Primitive
	for _, p := range f.Primitives {
		if p.Layer() == l {
			out = append(out, p)
		}
	}
	return out
}
