package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file. One FontSource creates faces
// at any size and feeds both measurers and the raster backend.
//
// FontSource is heavyweight and should be shared. It is safe for
// concurrent use; the faces it returns are not.
type FontSource struct {
	data []byte
	sfnt *opentype.Font
	name string

	// shaped is the go-text view of the same data, parsed on first use.
	shapedOnce sync.Once
	shaped     *gotext.Font
	shapedErr  error
}

// NewFontSource creates a FontSource from TTF or OTF data.
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{data: dataCopy, sfnt: f}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

var (
	defaultOnce   sync.Once
	defaultSource *FontSource
)

// DefaultSource returns the embedded Go Regular font.
func DefaultSource() *FontSource {
	defaultOnce.Do(func() {
		s, err := NewFontSource(goregular.TTF)
		if err != nil {
			panic("text: embedded Go Regular font failed to parse: " + err.Error())
		}
		defaultSource = s
	})
	return defaultSource
}

// Name returns the font family name, or "" if the font has none.
func (s *FontSource) Name() string {
	return s.name
}

// Face creates an x/image face at size (in pixels, 72 DPI).
// The returned face is not safe for concurrent use.
func (s *FontSource) Face(size float64) (font.Face, error) {
	if s == nil {
		return nil, ErrNoFont
	}
	if !(size > 0) {
		return nil, fmt.Errorf("text: invalid face size %v", size)
	}
	face, err := opentype.NewFace(s.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return face, nil
}

// shapingFont returns the go-text font parsed from the same data.
func (s *FontSource) shapingFont() (*gotext.Font, error) {
	s.shapedOnce.Do(func() {
		face, err := gotext.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.shapedErr = fmt.Errorf("text: failed to parse font for shaping: %w", err)
			return
		}
		s.shaped = face.Font
	})
	return s.shaped, s.shapedErr
}
