package term

import "github.com/charmbracelet/lipgloss"

// Measurer measures labels in terminal columns. Glyphs occupy whole
// cells whatever the requested size, so size only decides whether a
// label is drawn at all.
type Measurer struct{}

// MeasureText returns the display width of s in cells.
func (Measurer) MeasureText(s string, _ float64) (float64, error) {
	return float64(lipgloss.Width(s)), nil
}
