// Package text loads fonts and measures stepper labels.
//
// A FontSource is the heavyweight, shared font resource. Two measurers
// sit on top of it, both satisfying stepper.TextMeasurer:
//
//   - Measurer: glyph advances plus kerning via golang.org/x/image/font.
//     Fast and good enough for Latin, Cyrillic, Greek and CJK labels.
//   - ShapingMeasurer: HarfBuzz shaping via go-text/typesetting, with
//     bidi run splitting from golang.org/x/text. Use it for scripts that
//     need ligatures or contextual forms.
//
// # Example
//
//	src := text.DefaultSource()
//	r, err := stepper.NewRenderer(text.NewMeasurer(src))
//
// The raster backend draws labels with faces from the same FontSource, so
// measured and drawn widths agree.
package text
