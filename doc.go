// Package stepper lays out and paints a horizontal progress stepper: a
// row of circles joined by line or gradient segments, with optional
// labels and an optional shadow halo.
//
// # Overview
//
// The package is a pure layout engine. It never touches pixels; instead a
// layout pass returns a [Frame] holding an ordered list of [Primitive]
// values (circles, lines, gradient segments, text). Hosts replay the frame
// on a backend from the recording package (raster, SVG, terminal) or on
// their own graphics surface.
//
// # Quick Start
//
//	steps := stepper.Sequence{
//	    {CircleColor: stepper.Green, LineColor: stepper.Green, Label: "No"},
//	    {CircleColor: stepper.Yellow, LineColor: stepper.Gray, Label: "Maybe"},
//	    {CircleColor: stepper.Gray, LineColor: stepper.Gray, Label: "Yes"},
//	}
//
//	r, err := stepper.NewRenderer(text.NewMeasurer(text.DefaultSource()))
//	if err != nil {
//	    return err
//	}
//	r.SetSteps(steps)
//	frame, err := r.Render(300, 100)
//
// # Paint Order
//
// When shadows are enabled, every shadow primitive is emitted before any
// foreground primitive, so no circle is ever covered by a shadow. Within
// the foreground pass each step emits its outgoing segment, then its
// circle, then its label.
//
// # Text Scaling
//
// The width of the first render is kept as the baseline. With
// [WithTextScaling] enabled, labels shrink linearly once the canvas is
// narrower than three quarters of the baseline, and disappear below a
// size of 5.
//
// # Coordinate System
//
// Origin at top-left, x grows right, y grows down. Circles sit on the
// horizontal center line of the canvas.
package stepper
