package stepper

import (
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

const colorEpsilon = 0.01

func colorsEqual(c1, c2 RGBA, epsilon float64) bool {
	return math.Abs(c1.R-c2.R) < epsilon &&
		math.Abs(c1.G-c2.G) < epsilon &&
		math.Abs(c1.B-c2.B) < epsilon &&
		math.Abs(c1.A-c2.A) < epsilon
}

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", Black, 0, 0, 0, 65535},
		{"opaque white", White, 65535, 65535, 65535, 65535},
		{"opaque red", Red, 65535, 0, 0, 65535},
		{"transparent", Transparent, 0, 0, 0, 0},
		{"50% alpha red", RGBA{1, 0, 0, 0.5}, 32896, 0, 0, 32896},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if diff(r, tt.wantR) > 257 || diff(g, tt.wantG) > 257 || diff(b, tt.wantB) > 257 || diff(a, tt.wantA) > 257 {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBA
		wantErr bool
	}{
		{"#fff", White, false},
		{"000", Black, false},
		{"#f008", RGBA{1, 0, 0, 0x88 / 255.0}, false},
		{"#00ff00", Green, false},
		{"ffff0080", RGBA{1, 1, 0, 0x80 / 255.0}, false},
		{"", RGBA{}, true},
		{"#12345", RGBA{}, true},
		{"#gg0000", RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !colorsEqual(got, tt.want, colorEpsilon) {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexFallsBackToBlack(t *testing.T) {
	if got := Hex("not a color"); got != Black {
		t.Errorf("Hex(invalid) = %v, want black", got)
	}
}

func TestARGB32(t *testing.T) {
	tests := []struct {
		v    uint32
		want RGBA
	}{
		{0xff00ff00, Green},
		{0xffffff00, Yellow},
		{0x00000000, Transparent},
		{0x80ff0000, RGBA{1, 0, 0, 128.0 / 255}},
	}
	for _, tt := range tests {
		got := FromARGB32(tt.v)
		if !colorsEqual(got, tt.want, colorEpsilon) {
			t.Errorf("FromARGB32(%#08x) = %v, want %v", tt.v, got, tt.want)
		}
		if back := got.ARGB32(); back != tt.v {
			t.Errorf("ARGB32() = %#08x, want %#08x", back, tt.v)
		}
	}
}

func TestLerpIsStraightChannelwise(t *testing.T) {
	from := RGBA{0, 1, 0, 1}
	to := RGBA{1, 1, 0, 0.5}
	tests := []struct {
		t    float64
		want RGBA
	}{
		{0, from},
		{1, to},
		{0.5, RGBA{0.5, 1, 0, 0.75}},
		{0.25, RGBA{0.25, 1, 0, 0.875}},
	}
	for _, tt := range tests {
		if got := from.Lerp(to, tt.t); !colorsEqual(got, tt.want, 1e-9) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestWithAlpha8(t *testing.T) {
	c := Gray.WithAlpha8(100)
	if got := c.NRGBA(); got.A != 100 || got.R != 0x88 {
		t.Errorf("WithAlpha8(100) = %v", got)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, G: 128, B: 0, A: 128})
	want := RGBA{1, 128.0 / 255, 0, 128.0 / 255}
	if !colorsEqual(got, want, colorEpsilon) {
		t.Errorf("FromColor = %v, want %v", got, want)
	}
}

func TestHexString(t *testing.T) {
	if got := Hex("#3498db").HexString(); got != "#3498dbff" {
		t.Errorf("HexString() = %q", got)
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
