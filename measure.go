package stepper

import "github.com/gogpu/stepper/internal/cache"

// TextMeasurer measures the rendered width of a label at a given text size.
// Hosts inject one so the layout never depends on a font backend.
type TextMeasurer interface {
	MeasureText(s string, size float64) (float64, error)
}

// MeasureFunc adapts a plain function to TextMeasurer.
type MeasureFunc func(s string, size float64) (float64, error)

// MeasureText implements TextMeasurer.
func (f MeasureFunc) MeasureText(s string, size float64) (float64, error) {
	return f(s, size)
}

// measureLabel returns the label width, or 0 when there is nothing to
// measure or the backend fails.
func measureLabel(m TextMeasurer, s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	if m == nil {
		Logger().Warn("stepper: no text measurer", "label", s, "err", ErrMeasurementUnavailable)
		return 0
	}
	w, err := m.MeasureText(s, size)
	if err != nil || !nonNegative(w) {
		Logger().Warn("stepper: label measurement failed",
			"label", s, "size", size, "width", w, "err", err, "reason", ErrMeasurementUnavailable)
		return 0
	}
	return w
}

type labelKey struct {
	s    string
	size float64
}

// CachedMeasurer remembers label widths per (label, size), so repeated
// layouts during resizes skip the font backend. Failed measurements are
// not cached.
type CachedMeasurer struct {
	m     TextMeasurer
	cache *cache.Cache[labelKey, float64]
}

// NewCachedMeasurer wraps m with a cache holding about limit widths.
func NewCachedMeasurer(m TextMeasurer, limit int) *CachedMeasurer {
	return &CachedMeasurer{m: m, cache: cache.New[labelKey, float64](limit)}
}

// MeasureText implements TextMeasurer.
func (c *CachedMeasurer) MeasureText(s string, size float64) (float64, error) {
	k := labelKey{s, size}
	if w, ok := c.cache.Get(k); ok {
		return w, nil
	}
	if c.m == nil {
		return 0, ErrMeasurementUnavailable
	}
	w, err := c.m.MeasureText(s, size)
	if err != nil {
		return 0, err
	}
	c.cache.Set(k, w)
	return w, nil
}

// Len returns how many widths are cached.
func (c *CachedMeasurer) Len() int { return c.cache.Len() }
