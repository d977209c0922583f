package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/config"
	"github.com/gogpu/stepper/recording"
	"github.com/gogpu/stepper/recording/backends/raster"
	"github.com/gogpu/stepper/recording/backends/svg"
	"github.com/gogpu/stepper/recording/backends/term"
	"github.com/gogpu/stepper/text"
)

const (
	defaultWidth      = 800 // canvas width for image output
	defaultHeight     = 240 // canvas height for image output
	defaultTermWidth  = 80  // canvas width (columns) for terminal output
	defaultTermHeight = 24  // canvas height (two units per row) for terminal output
	measureCacheSize  = 256 // label widths kept between layouts
)

// outputOpts holds the flags shared by every command that writes a frame.
type outputOpts struct {
	output     string  // output file; empty writes to stdout
	backend    string  // backend name; empty picks one from the output extension
	width      float64 // canvas width, 0 for the document or default value
	height     float64 // canvas height, 0 for the document or default value
	fontPath   string  // font file for measuring and raster labels
	shaping    bool    // measure labels with HarfBuzz shaping
	lang       string  // BCP 47 language for shaping
	background string  // hex background color, empty for transparent
}

func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (.png, .svg); stdout when empty")
	cmd.Flags().StringVarP(&o.backend, "backend", "b", "", "backend name (raster, svg, term); inferred from --output")
	cmd.Flags().Float64Var(&o.width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&o.height, "height", 0, "canvas height")
	cmd.Flags().StringVar(&o.fontPath, "font", "", "TTF/OTF font file (default Go Regular)")
	cmd.Flags().BoolVar(&o.shaping, "shaping", false, "measure labels with text shaping")
	cmd.Flags().StringVar(&o.lang, "lang", "en", "label language for --shaping")
	cmd.Flags().StringVar(&o.background, "background", "", "background color as hex, transparent when empty")
}

// resolveBackend picks the backend name from the flag or the output file.
func (o *outputOpts) resolveBackend() (string, error) {
	name := o.backend
	if name == "" {
		switch strings.ToLower(filepath.Ext(o.output)) {
		case ".png":
			name = "raster"
		case ".svg":
			name = "svg"
		case "":
			name = "term"
		default:
			return "", fmt.Errorf("cannot infer backend from %q; use --backend", o.output)
		}
	}
	if !recording.IsRegistered(name) {
		return "", fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(recording.Backends(), ", "))
	}
	return name, nil
}

// size resolves the canvas size: flags first, then the document, then
// the backend default.
func (o *outputOpts) size(backend string, docW, docH float64) (float64, float64) {
	w, h := float64(defaultWidth), float64(defaultHeight)
	if backend == "term" {
		w, h = defaultTermWidth, defaultTermHeight
	}
	if docW > 0 {
		w = docW
	}
	if docH > 0 {
		h = docH
	}
	if o.width > 0 {
		w = o.width
	}
	if o.height > 0 {
		h = o.height
	}
	return w, h
}

// tools builds the measurer and backend for one render.
func (o *outputOpts) tools(name string) (stepper.TextMeasurer, recording.Backend, error) {
	var bg stepper.RGBA
	if o.background != "" {
		c, err := stepper.ParseHex(o.background)
		if err != nil {
			return nil, nil, err
		}
		bg = c
	}

	if name == "term" {
		return term.Measurer{}, term.NewBackend(term.WithBackground(bg)), nil
	}

	src := text.DefaultSource()
	if o.fontPath != "" {
		var err error
		if src, err = text.NewFontSourceFromFile(o.fontPath); err != nil {
			return nil, nil, err
		}
	}
	var m stepper.TextMeasurer = text.NewMeasurer(src)
	if o.shaping {
		m = text.NewShapingMeasurer(src, o.lang)
	}
	m = stepper.NewCachedMeasurer(m, measureCacheSize)

	switch name {
	case "raster":
		return m, raster.NewBackend(raster.WithFont(src), raster.WithBackground(bg)), nil
	case "svg":
		family := src.Name()
		if family == "" {
			family = "sans-serif"
		}
		return m, svg.NewBackend(svg.WithFontFamily(family), svg.WithBackground(bg)), nil
	default:
		b, err := recording.NewBackend(name)
		return m, b, err
	}
}

// renderSteps lays out steps and writes them with the selected backend.
func renderSteps(ctx context.Context, w io.Writer, steps stepper.Sequence, style stepper.Style, docW, docH float64, o *outputOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	name, err := o.resolveBackend()
	if err != nil {
		return err
	}
	measure, backend, err := o.tools(name)
	if err != nil {
		return err
	}

	r, err := stepper.NewRenderer(measure, stepper.WithStyle(style))
	if err != nil {
		return err
	}
	r.SetSteps(steps)

	width, height := o.size(name, docW, docH)
	frame, err := r.Render(width, height)
	if err != nil {
		return err
	}
	logger.Debug("Laid out frame", "steps", len(steps), "width", width, "height", height,
		"primitives", len(frame.Primitives), "textSize", frame.EffectiveTextSize)

	if err := recording.Playback(frame, backend); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if o.output != "" {
		fb, ok := backend.(recording.FileBackend)
		if !ok {
			return fmt.Errorf("backend %q cannot write files", name)
		}
		if err := fb.SaveToFile(o.output); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered %d steps to %s", len(steps), o.output))
		return nil
	}

	wb, ok := backend.(recording.WriterBackend)
	if !ok {
		return fmt.Errorf("backend %q cannot write to stdout", name)
	}
	_, err = wb.WriteTo(w)
	return err
}

type renderOpts struct {
	outputOpts
	textBelow bool
	noShadow  bool
}

// newRenderCmd creates the render command. Without a document it renders
// the three step sample.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a step document (YAML or TOML)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{Style: stepper.DefaultStyle(), Steps: sampleSteps()}
			if len(args) == 1 {
				var err error
				if cfg, err = config.Load(args[0]); err != nil {
					return err
				}
			}
			if opts.textBelow {
				cfg.Style.TextPlacement = stepper.TextBelow
			}
			if opts.noShadow {
				cfg.Style.ShowShadow = false
			}
			return renderSteps(cmd.Context(), cmd.OutOrStdout(), cfg.Steps, cfg.Style, cfg.Width, cfg.Height, &opts.outputOpts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.textBelow, "text-below", false, "draw labels below the circles")
	cmd.Flags().BoolVar(&opts.noShadow, "no-shadow", false, "disable the shadow pass")
	return cmd
}

// sampleSteps is the stock three step sequence.
func sampleSteps() stepper.Sequence {
	return stepper.Sequence{
		{CircleColor: stepper.Green, LineColor: stepper.Green, Label: "No", UseGradient: true},
		stepper.NewStep(stepper.Yellow, stepper.Gray, "Maybe"),
		stepper.NewStep(stepper.Gray, stepper.Gray, "Yes"),
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered output backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range recording.Backends() {
				fmt.Fprintln(cmd.OutOrStdout(), StyleValue.Render(name))
			}
			return nil
		},
	}
}
