// Package config decodes stepper documents from YAML or TOML.
//
// A document holds an optional canvas size, style overrides, and the
// ordered steps:
//
//	canvas:
//	  width: 800
//	  height: 240
//	style:
//	  circle_radius: 24
//	  show_shadow: false
//	  text_color: "#333333"
//	steps:
//	  - label: Ordered
//	    circle: "#4caf50"
//	    line: "#4caf50"
//	  - label: Shipped
//	    circle: "#ffc107"
//	    gradient: true
//
// Style keys that are absent keep their stepper.DefaultStyle() value.
// Colors are hex strings ("#rgb", "#rgba", "#rrggbb" or "#rrggbbaa").
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/stepper"
)

// ErrUnknownFormat is returned for documents that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown document format")

// Format names a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ColorError reports a color value that is not a valid hex string.
type ColorError struct {
	Field string
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("config: invalid color %q for %s", e.Value, e.Field)
}

// Config is a decoded document.
type Config struct {
	// Width and Height are zero when the document names no canvas.
	Width, Height float64

	Style stepper.Style
	Steps stepper.Sequence
}

type document struct {
	Canvas canvasDoc `yaml:"canvas" toml:"canvas"`
	Style  styleDoc  `yaml:"style" toml:"style"`
	Steps  []stepDoc `yaml:"steps" toml:"steps"`
}

type canvasDoc struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// styleDoc uses pointers so absent keys can be told apart from zeros.
type styleDoc struct {
	CircleRadius     *float64 `yaml:"circle_radius" toml:"circle_radius"`
	StrokeWidth      *float64 `yaml:"stroke_width" toml:"stroke_width"`
	ExtraPadding     *float64 `yaml:"extra_padding" toml:"extra_padding"`
	TextSize         *float64 `yaml:"text_size" toml:"text_size"`
	TextColor        *string  `yaml:"text_color" toml:"text_color"`
	TextBottomMargin *float64 `yaml:"text_bottom_margin" toml:"text_bottom_margin"`
	TextPlacement    *string  `yaml:"text_placement" toml:"text_placement"`
	ShowShadow       *bool    `yaml:"show_shadow" toml:"show_shadow"`
	ShadowColor      *string  `yaml:"shadow_color" toml:"shadow_color"`
	ShadowWidth      *float64 `yaml:"shadow_width" toml:"shadow_width"`
	ShadowAlpha      *int     `yaml:"shadow_alpha" toml:"shadow_alpha"`
	ShowLines        *bool    `yaml:"show_lines" toml:"show_lines"`
	ShowText         *bool    `yaml:"show_text" toml:"show_text"`
	CircleDistance   *float64 `yaml:"circle_distance" toml:"circle_distance"`
	TextScale        *bool    `yaml:"text_scale" toml:"text_scale"`
}

type stepDoc struct {
	Label    string `yaml:"label" toml:"label"`
	Circle   string `yaml:"circle" toml:"circle"`
	Line     string `yaml:"line" toml:"line"`
	Gradient bool   `yaml:"gradient" toml:"gradient"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- document path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes a document in the given format and validates the
// resulting style.
func Decode(data []byte, format Format) (*Config, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	style, err := doc.Style.resolve(stepper.DefaultStyle())
	if err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	steps := make(stepper.Sequence, 0, len(doc.Steps))
	for i, sd := range doc.Steps {
		s, err := sd.resolve(i)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}

	return &Config{
		Width:  doc.Canvas.Width,
		Height: doc.Canvas.Height,
		Style:  style,
		Steps:  steps,
	}, nil
}

func (d styleDoc) resolve(s stepper.Style) (stepper.Style, error) {
	setFloat(&s.CircleRadius, d.CircleRadius)
	setFloat(&s.StrokeWidth, d.StrokeWidth)
	setFloat(&s.ExtraPadding, d.ExtraPadding)
	setFloat(&s.TextSize, d.TextSize)
	setFloat(&s.TextBottomMargin, d.TextBottomMargin)
	setFloat(&s.ShadowWidth, d.ShadowWidth)
	setFloat(&s.CircleDistance, d.CircleDistance)
	setBool(&s.ShowShadow, d.ShowShadow)
	setBool(&s.ShowLines, d.ShowLines)
	setBool(&s.ShowText, d.ShowText)
	setBool(&s.TextScaleAutomatically, d.TextScale)
	if d.ShadowAlpha != nil {
		s.ShadowAlpha = *d.ShadowAlpha
	}

	if err := setColor(&s.TextColor, "style.text_color", d.TextColor); err != nil {
		return s, err
	}
	if err := setColor(&s.ShadowColor, "style.shadow_color", d.ShadowColor); err != nil {
		return s, err
	}

	if d.TextPlacement != nil {
		switch strings.ToLower(*d.TextPlacement) {
		case "above":
			s.TextPlacement = stepper.TextAbove
		case "below":
			s.TextPlacement = stepper.TextBelow
		default:
			return s, fmt.Errorf("config: invalid text_placement %q (want above or below)", *d.TextPlacement)
		}
	}
	return s, nil
}

// resolve builds the step; a missing circle color falls back to gray and
// a missing line color follows the circle.
func (d stepDoc) resolve(i int) (stepper.Step, error) {
	circle := stepper.Gray
	if d.Circle != "" {
		c, err := stepper.ParseHex(d.Circle)
		if err != nil {
			return stepper.Step{}, &ColorError{Field: fmt.Sprintf("steps[%d].circle", i), Value: d.Circle}
		}
		circle = c
	}
	line := circle
	if d.Line != "" {
		c, err := stepper.ParseHex(d.Line)
		if err != nil {
			return stepper.Step{}, &ColorError{Field: fmt.Sprintf("steps[%d].line", i), Value: d.Line}
		}
		line = c
	}
	return stepper.Step{
		CircleColor: circle,
		LineColor:   line,
		Label:       d.Label,
		UseGradient: d.Gradient,
	}, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setColor(dst *stepper.RGBA, field string, v *string) error {
	if v == nil {
		return nil
	}
	c, err := stepper.ParseHex(*v)
	if err != nil {
		return &ColorError{Field: field, Value: *v}
	}
	*dst = c
	return nil
}
