package stepper

// Step is one stage of a progress sequence, drawn as a circle plus the
// segment that connects it to the next step.
type Step struct {
	// CircleColor fills the step's circle.
	CircleColor RGBA

	// LineColor colors the segment to the next step. Ignored on the last
	// step and when UseGradient is set.
	LineColor RGBA

	// Label is drawn next to the circle. Empty means no label.
	Label string

	// UseGradient draws the segment to the next step as a ramp from this
	// step's CircleColor to the next step's CircleColor.
	UseGradient bool
}

// NewStep creates a step with a flat connector.
func NewStep(circle, line RGBA, label string) Step {
	return Step{CircleColor: circle, LineColor: line, Label: label}
}

// HasLabel reports whether the step carries text.
func (s Step) HasLabel() bool {
	return s.Label != ""
}

// Sequence is an ordered list of steps, rendered left to right.
type Sequence []Step

// Len returns the number of steps.
func (s Sequence) Len() int {
	return len(s)
}

// Segments returns the number of connectors, N-1, or 0 for an empty sequence.
func (s Sequence) Segments() int {
	if len(s) < 2 {
		return 0
	}
	return len(s) - 1
}

// First returns the first step. ok is false for an empty sequence.
func (s Sequence) First() (step Step, ok bool) {
	if len(s) == 0 {
		return Step{}, false
	}
	return s[0], true
}

// Last returns the last step. ok is false for an empty sequence.
func (s Sequence) Last() (step Step, ok bool) {
	if len(s) == 0 {
		return Step{}, false
	}
	return s[len(s)-1], true
}

// Clone returns a copy that shares no backing array with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
