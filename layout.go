package stepper

import "math"

const (
	// scaleThreshold is the fraction of the baseline width below which
	// labels start to shrink.
	scaleThreshold = 0.75

	// minTextSize is the smallest legible label size. Scaled sizes below it
	// hide the labels instead.
	minTextSize = 5
)

// ComputeLayout lays out steps on a width x height canvas and returns the
// primitives to paint, in paint order.
//
// baseline is the width recorded by the first layout of a renderer, or 0
// if none happened yet; the returned value is the baseline to keep for the
// next call. measure may be nil, in which case every label measures 0.
//
// Layout rules:
//   - Side margin is the wider of the circle diameter and the first/last
//     label widths; with shadows each side also leaves room for the halo.
//   - With lines, circles are spread evenly over the usable width; without
//     lines they sit at a fixed pitch of 2*CircleRadius + CircleDistance.
//   - The shadow pass is emitted completely before the foreground pass.
func ComputeLayout(steps Sequence, width, height float64, style Style, measure TextMeasurer, baseline float64) (Frame, float64, error) {
	if !positive(width) {
		return Frame{}, baseline, &GeometryError{Field: "width", Value: width}
	}
	if !positive(height) {
		return Frame{}, baseline, &GeometryError{Field: "height", Value: height}
	}
	if baseline != 0 && !positive(baseline) {
		return Frame{}, baseline, &GeometryError{Field: "baseline", Value: baseline}
	}
	if err := style.Validate(); err != nil {
		return Frame{}, baseline, err
	}
	if baseline == 0 {
		baseline = width
	}

	f := Frame{
		Width:    width,
		Height:   height,
		Baseline: baseline,
		CenterY:  height / 2,
	}
	n := len(steps)
	if n == 0 {
		return f, baseline, nil
	}

	f.EffectiveTextSize = effectiveTextSize(style, width, baseline)

	var firstW, lastW float64
	if style.ShowText {
		firstW = measureLabel(measure, steps[0].Label, f.EffectiveTextSize)
		lastW = firstW
		if n > 1 {
			lastW = measureLabel(measure, steps[n-1].Label, f.EffectiveTextSize)
		}
	}
	f.SideMargin = sideMargin(style, max(firstW, lastW))

	usable := width - f.SideMargin - 2*style.ExtraPadding
	if usable < 0 {
		Logger().Debug("stepper: canvas narrower than margins", "width", width, "margin", f.SideMargin)
		usable = 0
	}
	start := f.SideMargin/2 + style.ExtraPadding

	f.Centers = make([]float64, n)
	switch {
	case !style.ShowLines:
		f.Pitch = 2*style.CircleRadius + style.CircleDistance
		for i := range f.Centers {
			f.Centers[i] = start + float64(i)*f.Pitch
		}
	case n == 1:
		f.Centers[0] = start
	default:
		segs := float64(n - 1)
		f.Pitch = usable / segs
		for i := range f.Centers {
			f.Centers[i] = start + usable*(float64(i)/segs)
		}
	}

	f.Primitives = emit(steps, style, f, measure, firstW, lastW)

	Logger().Debug("stepper: layout",
		"steps", n,
		"width", width,
		"margin", f.SideMargin,
		"pitch", f.Pitch,
		"textSize", f.EffectiveTextSize,
		"primitives", len(f.Primitives))

	return f, baseline, nil
}

// effectiveTextSize applies shrink-to-fit scaling against the baseline.
func effectiveTextSize(style Style, width, baseline float64) float64 {
	if !style.TextScaleAutomatically || baseline <= 0 || width >= scaleThreshold*baseline {
		return style.TextSize
	}
	size := style.TextSize * width / baseline
	if size < minTextSize {
		return 0
	}
	return size
}

// sideMargin returns the total horizontal margin (both sides together).
func sideMargin(style Style, labelWidth float64) float64 {
	m := math.Max(2*style.CircleRadius, labelWidth)
	if style.ShowShadow {
		m = math.Max(m, 2*(style.CircleRadius+style.ShadowWidth))
	}
	return m
}

func emit(steps Sequence, style Style, f Frame, measure TextMeasurer, firstW, lastW float64) []Primitive {
	n := len(steps)
	y := f.CenterY
	last := n - 1

	capacity := 3 * n
	if style.ShowShadow {
		capacity += 2 * n
	}
	out := make([]Primitive, 0, capacity)

	if style.ShowShadow {
		shadow := style.ShadowColor.WithAlpha8(uint8(style.ShadowAlpha))
		for i, x := range f.Centers {
			out = append(out, Circle{
				CX:          x,
				CY:          y,
				Radius:      style.CircleRadius,
				StrokeWidth: style.ShadowWidth,
				Color:       shadow,
				Composite:   CompositeSource,
				Pass:        LayerShadow,
			})
			if style.ShowLines && i < last {
				out = append(out, Line{
					X0: x, Y0: y, X1: f.Centers[i+1], Y1: y,
					Width:     style.StrokeWidth + style.ShadowWidth,
					Color:     shadow,
					Composite: CompositeSource,
					Pass:      LayerShadow,
				})
			}
		}
	}

	drawText := style.ShowText && f.EffectiveTextSize > 0
	textY := y - (style.CircleRadius + style.TextBottomMargin)
	if style.TextPlacement == TextBelow {
		textY = y + style.CircleRadius + style.TextBottomMargin
	}

	for i, step := range steps {
		x := f.Centers[i]

		if style.ShowLines && i < last {
			next := f.Centers[i+1]
			if step.UseGradient {
				hw := style.StrokeWidth / 2
				out = append(out, Gradient{
					Rect: Rect{MinX: x, MinY: y - hw, MaxX: next, MaxY: y + hw},
					From: step.CircleColor,
					To:   steps[i+1].CircleColor,
				})
			} else {
				out = append(out, Line{
					X0: x, Y0: y, X1: next, Y1: y,
					Width: style.StrokeWidth,
					Color: step.LineColor,
				})
			}
		}

		out = append(out, Circle{
			CX:     x,
			CY:     y,
			Radius: style.CircleRadius,
			Color:  step.CircleColor,
		})

		if drawText && step.HasLabel() {
			var w float64
			switch i {
			case 0:
				w = firstW
			case last:
				w = lastW
			default:
				w = measureLabel(measure, step.Label, f.EffectiveTextSize)
			}
			out = append(out, Text{
				S:     step.Label,
				X:     x - w/2,
				Y:     textY,
				Size:  f.EffectiveTextSize,
				Width: w,
				Color: style.TextColor,
			})
		}
	}

	return out
}
