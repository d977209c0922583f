package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// ShapingMeasurer measures labels with HarfBuzz shaping from
// go-text/typesetting, so ligatures, kerning and right-to-left runs are
// accounted for. Mixed-direction labels are split into bidi runs and each
// run is shaped on its own.
//
// ShapingMeasurer is safe for concurrent use. HarfbuzzShaper instances are
// pooled since they are not.
type ShapingMeasurer struct {
	source *FontSource
	lang   language.Language
	pool   sync.Pool
}

// NewShapingMeasurer creates a ShapingMeasurer for source. lang is a BCP 47
// tag such as "en"; empty means "en".
func NewShapingMeasurer(source *FontSource, lang string) *ShapingMeasurer {
	if lang == "" {
		lang = "en"
	}
	return &ShapingMeasurer{
		source: source,
		lang:   language.NewLanguage(lang),
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// MeasureText returns the shaped advance width of s at size.
func (m *ShapingMeasurer) MeasureText(s string, size float64) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if m.source == nil {
		return 0, ErrNoFont
	}
	f, err := m.source.shapingFont()
	if err != nil {
		return 0, err
	}

	// gotext.Face is not safe for concurrent use; it is cheap to create.
	face := gotext.NewFace(f)
	runes := []rune(s)

	hb := m.pool.Get().(*shaping.HarfbuzzShaper)
	defer m.pool.Put(hb)

	var total fixed.Int26_6
	for _, r := range splitRuns(s, len(runes)) {
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.start,
			RunEnd:    r.end,
			Direction: r.dir,
			Face:      face,
			Size:      floatToFixed(size),
			Script:    detectScript(runes[r.start:r.end]),
			Language:  m.lang,
		})
		adv := out.Advance
		if adv < 0 {
			adv = -adv
		}
		total += adv
	}
	return fixedToFloat64(total), nil
}

// run is a half-open rune range with a single direction.
type run struct {
	start, end int
	dir        di.Direction
}

// splitRuns splits s into directional runs. On any bidi failure the whole
// string is treated as one left-to-right run.
func splitRuns(s string, n int) []run {
	whole := []run{{start: 0, end: n, dir: di.DirectionLTR}}

	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return whole
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return whole
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		br := ordering.Run(i)
		// Pos returns inclusive rune indices.
		start, end := br.Pos()
		end++
		if start < 0 || end > n || start >= end {
			return whole
		}
		dir := di.DirectionLTR
		if br.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, run{start: start, end: end, dir: dir})
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
