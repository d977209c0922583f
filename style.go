package stepper

import "math"

// TextPlacement selects which side of the circles labels are drawn on.
type TextPlacement uint8

const (
	// TextAbove draws labels above the circles.
	TextAbove TextPlacement = iota
	// TextBelow draws labels below the circles.
	TextBelow
)

// String returns the placement name.
func (p TextPlacement) String() string {
	switch p {
	case TextAbove:
		return "above"
	case TextBelow:
		return "below"
	default:
		return "unknown"
	}
}

// Style holds the resolved numeric style of a stepper. All lengths are in
// canvas units.
type Style struct {
	CircleRadius     float64
	StrokeWidth      float64
	ExtraPadding     float64
	TextSize         float64
	TextColor        RGBA
	TextBottomMargin float64
	TextPlacement    TextPlacement

	ShowShadow  bool
	ShadowColor RGBA
	ShadowWidth float64
	ShadowAlpha int

	ShowLines bool
	ShowText  bool

	// CircleDistance is the gap between circles when ShowLines is false.
	CircleDistance float64

	// TextScaleAutomatically shrinks labels once the canvas is narrower
	// than three quarters of the baseline width.
	TextScaleAutomatically bool
}

// DefaultStyle returns the stock stepper style.
func DefaultStyle() Style {
	return Style{
		CircleRadius:     30,
		StrokeWidth:      15,
		ExtraPadding:     0,
		TextSize:         30,
		TextColor:        Black,
		TextBottomMargin: 50,
		TextPlacement:    TextAbove,
		ShowShadow:       true,
		ShadowColor:      LightGray,
		ShadowWidth:      25,
		ShadowAlpha:      100,
		ShowLines:        true,
		ShowText:         true,
	}
}

// Validate reports the first field that cannot produce valid geometry.
// The returned error matches ErrInvalidGeometry.
func (s Style) Validate() error {
	if !positive(s.CircleRadius) {
		return &GeometryError{Field: "CircleRadius", Value: s.CircleRadius}
	}
	checks := []struct {
		field string
		value float64
	}{
		{"StrokeWidth", s.StrokeWidth},
		{"ExtraPadding", s.ExtraPadding},
		{"TextSize", s.TextSize},
		{"TextBottomMargin", s.TextBottomMargin},
		{"ShadowWidth", s.ShadowWidth},
		{"CircleDistance", s.CircleDistance},
	}
	for _, c := range checks {
		if !nonNegative(c.value) {
			return &GeometryError{Field: c.field, Value: c.value}
		}
	}
	if s.ShadowAlpha < 0 || s.ShadowAlpha > 255 {
		return &GeometryError{Field: "ShadowAlpha", Value: float64(s.ShadowAlpha)}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// StyleOption changes one aspect of a Style.
//
// Example:
//
//	r, _ := stepper.NewRenderer(m,
//	    stepper.WithCircleRadius(12),
//	    stepper.WithShadow(false),
//	)
type StyleOption func(*Style)

// Apply returns a copy of s with opts applied in order.
func (s Style) Apply(opts ...StyleOption) Style {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithStyle replaces the whole style.
func WithStyle(st Style) StyleOption {
	return func(s *Style) { *s = st }
}

// WithCircleRadius sets the circle radius.
func WithCircleRadius(r float64) StyleOption {
	return func(s *Style) { s.CircleRadius = r }
}

// WithStrokeWidth sets the segment thickness.
func WithStrokeWidth(w float64) StyleOption {
	return func(s *Style) { s.StrokeWidth = w }
}

// WithExtraPadding sets the symmetric horizontal inset.
func WithExtraPadding(p float64) StyleOption {
	return func(s *Style) { s.ExtraPadding = p }
}

// WithText configures label size, color and the gap between circle and baseline.
func WithText(size float64, c RGBA, bottomMargin float64) StyleOption {
	return func(s *Style) {
		s.TextSize = size
		s.TextColor = c
		s.TextBottomMargin = bottomMargin
	}
}

// WithTextPlacement selects above or below labels.
func WithTextPlacement(p TextPlacement) StyleOption {
	return func(s *Style) { s.TextPlacement = p }
}

// WithShowText toggles labels.
func WithShowText(show bool) StyleOption {
	return func(s *Style) { s.ShowText = show }
}

// WithShadow toggles the shadow pass.
func WithShadow(show bool) StyleOption {
	return func(s *Style) { s.ShowShadow = show }
}

// WithShadowStyle sets shadow color, halo width and alpha (0-255).
func WithShadowStyle(c RGBA, width float64, alpha int) StyleOption {
	return func(s *Style) {
		s.ShadowColor = c
		s.ShadowWidth = width
		s.ShadowAlpha = alpha
	}
}

// WithLines toggles connectors. Without lines circles use a fixed pitch
// of 2*CircleRadius + distance.
func WithLines(show bool, distance float64) StyleOption {
	return func(s *Style) {
		s.ShowLines = show
		s.CircleDistance = distance
	}
}

// WithTextScaling toggles shrink-to-fit labels.
func WithTextScaling(enabled bool) StyleOption {
	return func(s *Style) { s.TextScaleAutomatically = enabled }
}
