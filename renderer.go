package stepper

import "sync"

// Renderer is the host-facing stepper. It owns the current steps, the
// style and the baseline width captured on the first render.
//
// A Renderer is meant to be driven from a single (UI) goroutine. Its
// fields are guarded so setters never expose a half-updated state, but
// concurrent Render calls are still out of contract.
type Renderer struct {
	mu       sync.Mutex
	measure  TextMeasurer
	steps    Sequence
	style    Style
	baseline float64

	cached  *Frame
	cachedW float64
	cachedH float64
}

// NewRenderer creates a renderer with DefaultStyle modified by opts.
// measure may be nil; labels then measure 0 and are still drawn.
func NewRenderer(measure TextMeasurer, opts ...StyleOption) (*Renderer, error) {
	style := DefaultStyle().Apply(opts...)
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{measure: measure, style: style}, nil
}

// SetSteps replaces the step sequence. The renderer keeps its own copy.
func (r *Renderer) SetSteps(steps Sequence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = steps.Clone()
	r.cached = nil
}

// Steps returns a copy of the current steps.
func (r *Renderer) Steps() Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps.Clone()
}

// SetStyle applies opts to the current style. If the result does not
// validate, the previous style is kept and the error is returned.
func (r *Renderer) SetStyle(opts ...StyleOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.style.Apply(opts...)
	if err := next.Validate(); err != nil {
		return err
	}
	r.style = next
	r.cached = nil
	return nil
}

// Style returns the current style.
func (r *Renderer) Style() Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// SetMeasurer swaps the text measurement backend.
func (r *Renderer) SetMeasurer(m TextMeasurer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measure = m
	r.cached = nil
}

// Baseline returns the width captured by the first render, or 0.
func (r *Renderer) Baseline() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.baseline
}

// ResetBaseline forgets the captured baseline; the next Render records a
// new one.
func (r *Renderer) ResetBaseline() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseline = 0
	r.cached = nil
}

// Render lays out the current steps on a width x height canvas. Hosts call
// it on first layout, on resize and on explicit redraw requests.
// Repeated calls with the same size and no intervening change return the
// cached frame. The returned frame is the caller's to modify.
func (r *Renderer) Render(width, height float64) (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.cachedW == width && r.cachedH == height {
		return r.cached.Clone(), nil
	}

	f, baseline, err := ComputeLayout(r.steps, width, height, r.style, r.measure, r.baseline)
	if err != nil {
		return Frame{}, err
	}
	r.baseline = baseline
	r.cached = &f
	r.cachedW, r.cachedH = width, height
	return f.Clone(), nil
}
