package text

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultSource(t *testing.T) {
	s := DefaultSource()
	if s == nil {
		t.Fatal("DefaultSource() returned nil")
	}
	if s.Name() == "" {
		t.Error("Go Regular should report a family name")
	}
	if DefaultSource() != s {
		t.Error("DefaultSource() should return a shared instance")
	}
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) err = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("definitely not a font")); err == nil {
		t.Error("NewFontSource(garbage) should fail")
	}
	if _, err := NewFontSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("NewFontSourceFromFile(missing) should fail")
	}
}

func TestNewFontSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile: %v", err)
	}
	if s.Name() != DefaultSource().Name() {
		t.Errorf("Name() = %q, want %q", s.Name(), DefaultSource().Name())
	}
}

func TestFaceSize(t *testing.T) {
	s := DefaultSource()
	if _, err := s.Face(0); err == nil {
		t.Error("Face(0) should fail")
	}
	face, err := s.Face(24)
	if err != nil {
		t.Fatalf("Face(24): %v", err)
	}
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h < 20 || h > 40 {
		t.Errorf("line height at 24px = %d, want roughly 24-30", h)
	}

	var nilSource *FontSource
	if _, err := nilSource.Face(12); !errors.Is(err, ErrNoFont) {
		t.Errorf("nil source Face err = %v, want ErrNoFont", err)
	}
}
