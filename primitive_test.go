package stepper

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindCircle, "Circle"},
		{KindLine, "Line"},
		{KindGradient, "Gradient"},
		{KindText, "Text"},
		{Kind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestGradientColorAt(t *testing.T) {
	g := Gradient{
		Rect: Rect{MinX: 100, MinY: 0, MaxX: 200, MaxY: 10},
		From: RGBA{0, 0, 0, 1},
		To:   RGBA{1, 1, 1, 0},
	}
	tests := []struct {
		name string
		x    float64
		want RGBA
	}{
		{"before start", 50, g.From},
		{"start", 100, g.From},
		{"quarter", 125, RGBA{0.25, 0.25, 0.25, 0.75}},
		{"middle", 150, RGBA{0.5, 0.5, 0.5, 0.5}},
		{"end", 200, g.To},
		{"past end", 260, g.To},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ColorAt(tt.x); !colorsEqual(got, tt.want, 1e-9) {
				t.Errorf("ColorAt(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}

	flat := Gradient{Rect: Rect{MinX: 5, MaxX: 5}, From: Red, To: Blue}
	if got := flat.ColorAt(5); got != Red {
		t.Errorf("zero-width gradient ColorAt = %v, want From", got)
	}
}

func TestPrimitiveBounds(t *testing.T) {
	c := Circle{CX: 50, CY: 50, Radius: 10, StrokeWidth: 4}
	if got, want := c.Bounds(), (Rect{38, 38, 62, 62}); got != want {
		t.Errorf("Circle.Bounds() = %v, want %v", got, want)
	}
	l := Line{X0: 30, Y0: 10, X1: 10, Y1: 10, Width: 6}
	if got, want := l.Bounds(), (Rect{7, 7, 33, 13}); got != want {
		t.Errorf("Line.Bounds() = %v, want %v", got, want)
	}
	tx := Text{X: 5, Y: 40, Size: 12, Width: 30}
	if got, want := tx.Bounds(), (Rect{5, 28, 35, 40}); got != want {
		t.Errorf("Text.Bounds() = %v, want %v", got, want)
	}
}

func TestPrimitiveLayers(t *testing.T) {
	if (Gradient{}).Layer() != LayerForeground || (Text{}).Layer() != LayerForeground {
		t.Error("gradients and text are always foreground")
	}
	if (Circle{Pass: LayerShadow}).Layer() != LayerShadow {
		t.Error("circle must report its pass")
	}
	if LayerShadow.String() != "shadow" || CompositeSource.String() != "src" {
		t.Error("unexpected layer/composite names")
	}
}
