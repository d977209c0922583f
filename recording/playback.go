package recording

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/stepper"
)

// ErrUnknownPrimitive is returned by Playback for primitive types it
// cannot dispatch.
var ErrUnknownPrimitive = errors.New("recording: unknown primitive")

// Playback executes frame on b: Begin with the frame size rounded up to
// whole pixels, every primitive in order, then End.
func Playback(frame stepper.Frame, b Backend) error {
	w, h := int(math.Ceil(frame.Width)), int(math.Ceil(frame.Height))
	if err := b.Begin(w, h); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}

	for i, p := range frame.Primitives {
		switch c := p.(type) {
		case stepper.Circle:
			b.DrawCircle(c)
		case stepper.Line:
			b.DrawLine(c)
		case stepper.Gradient:
			b.FillGradient(c)
		case stepper.Text:
			b.DrawText(c)
		default:
			return fmt.Errorf("%w: %T at index %d", ErrUnknownPrimitive, p, i)
		}
	}

	if err := b.End(); err != nil {
		return fmt.Errorf("recording: end: %w", err)
	}

	stepper.Logger().Debug("recording: playback done",
		"backend", fmt.Sprintf("%T", b), "primitives", len(frame.Primitives), "width", w, "height", h)
	return nil
}

// Render creates the named backend and plays frame on it.
func Render(frame stepper.Frame, name string) (Backend, error) {
	b, err := NewBackend(name)
	if err != nil {
		return nil, err
	}
	if err := Playback(frame, b); err != nil {
		return nil, err
	}
	return b, nil
}
