package text

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measurer measures labels by summing glyph advances (with kerning) of an
// x/image face. It satisfies stepper.TextMeasurer.
//
// Measurer is safe for concurrent use.
type Measurer struct {
	source *FontSource

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewMeasurer creates a Measurer for source.
func NewMeasurer(source *FontSource) *Measurer {
	return &Measurer{source: source, faces: make(map[float64]font.Face)}
}

// MeasureText returns the advance width of s at size.
func (m *Measurer) MeasureText(s string, size float64) (float64, error) {
	if s == "" {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[size]
	if !ok {
		var err error
		face, err = m.source.Face(size)
		if err != nil {
			return 0, err
		}
		m.faces[size] = face
	}
	return fixedToFloat64(font.MeasureString(face, s)), nil
}

// Close releases the cached faces.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, face := range m.faces {
		_ = face.Close()
		delete(m.faces, size)
	}
	return nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
