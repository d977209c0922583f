package cli

import (
	"bytes"
	"context"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/stepper"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	t.Cleanup(func() { stepper.SetLogger(nil) })
	return stdout.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	defer SetVersion("", "", "")

	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("SetVersion did not update the build info: %q %q %q", version, commit, date)
	}
}

func TestBackendsCommand(t *testing.T) {
	out, err := run(t, "backends")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"raster", "svg", "term"} {
		if !strings.Contains(out, name) {
			t.Errorf("backends output missing %q:\n%s", name, out)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.png")
	if _, err := run(t, "render", "-o", path, "--width", "400", "--height", "150", "--background", "#ffffff"); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 150 {
		t.Errorf("bounds = %v, want 400x150", b)
	}
}

func TestRenderSVGDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "steps.yaml")
	err := os.WriteFile(doc, []byte(`
canvas:
  width: 500
  height: 200
steps:
  - label: Ordered
    circle: "#4caf50"
  - label: Shipped
    circle: "#ffc107"
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "steps.svg")
	if _, err := run(t, "render", doc, "-o", out, "--text-below", "--no-shadow"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `viewBox="0 0 500 200"`) {
		t.Error("document canvas size not used")
	}
	if strings.Count(s, "<circle ") != 2 || strings.Contains(s, `id="shadow"`) {
		t.Errorf("unexpected circles or shadow:\n%s", s)
	}
	if !strings.Contains(s, ">Shipped</text>") {
		t.Error("label missing")
	}
}

func TestRenderTermToStdout(t *testing.T) {
	out, err := run(t, "render", "--backend", "term", "--no-shadow")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != defaultTermHeight/2 {
		t.Errorf("got %d lines, want %d", len(lines), defaultTermHeight/2)
	}
}

func TestRandomCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "random.svg")
	if _, err := run(t, "random", "--seed", "7", "--count", "4", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "<linearGradient "); got != 3 {
		t.Errorf("got %d gradients, want 3", got)
	}
	if !strings.Contains(string(data), "Title is 3") {
		t.Error("last label missing")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown backend", []string{"render", "--backend", "pdf"}, "unknown backend"},
		{"unknown extension", []string{"render", "-o", "out.jpg"}, "cannot infer backend"},
		{"missing document", []string{"render", "missing.yaml"}, "read config"},
		{"bad background", []string{"render", "--backend", "term", "--background", "#zz"}, "invalid hex color"},
		{"term cannot write files", []string{"render", "--backend", "term", "-o", "out.txt"}, "cannot write files"},
		{"negative count", []string{"random", "--count", "-1"}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolveBackend(t *testing.T) {
	tests := []struct {
		output, backend string
		want            string
	}{
		{"a.png", "", "raster"},
		{"a.PNG", "", "raster"},
		{"a.svg", "", "svg"},
		{"", "", "term"},
		{"a.png", "svg", "svg"},
	}
	for _, tt := range tests {
		o := outputOpts{output: tt.output, backend: tt.backend}
		got, err := o.resolveBackend()
		if err != nil || got != tt.want {
			t.Errorf("resolveBackend(%q, %q) = %q, %v; want %q", tt.output, tt.backend, got, err, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         outputOpts
		backend      string
		docW, docH   float64
		wantW, wantH float64
	}{
		{"defaults", outputOpts{}, "raster", 0, 0, defaultWidth, defaultHeight},
		{"term defaults", outputOpts{}, "term", 0, 0, defaultTermWidth, defaultTermHeight},
		{"document", outputOpts{}, "svg", 500, 200, 500, 200},
		{"flags win", outputOpts{width: 300}, "svg", 500, 200, 300, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.opts.size(tt.backend, tt.docW, tt.docH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRandomSteps(t *testing.T) {
	a := randomSteps(rand.New(rand.NewPCG(1, 1)), 0)
	b := randomSteps(rand.New(rand.NewPCG(1, 1)), 0)
	if len(a) < minRandomSteps || len(a) > maxRandomSteps {
		t.Fatalf("len = %d, want %d-%d", len(a), minRandomSteps, maxRandomSteps)
	}
	if len(a) != len(b) {
		t.Fatal("same seed produced different counts")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d differs for the same seed", i)
		}
		if a[i].CircleColor != stepper.Green || !a[i].UseGradient || a[i].LineColor.A != 1 {
			t.Errorf("step %d = %+v", i, a[i])
		}
	}
	if a[0].Label != "Title is 0" {
		t.Errorf("first label = %q", a[0].Label)
	}
	if n := len(randomSteps(rand.New(rand.NewPCG(2, 2)), 5)); n != 5 {
		t.Errorf("explicit count gave %d steps", n)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDemoModel(t *testing.T) {
	m, err := newDemoModel(rand.New(rand.NewPCG(3, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if m.Init() != nil {
		t.Error("Init should not start a command")
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if m.err != nil {
		t.Fatalf("render: %v", m.err)
	}
	if !strings.Contains(m.canvas, "Title is") {
		t.Errorf("labels missing at full width:\n%s", m.canvas)
	}
	if !strings.Contains(m.View(), "steps") {
		t.Error("status line missing")
	}

	// Less than half of the first width scales the labels below the floor.
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	if strings.Contains(m.canvas, "Title") {
		t.Errorf("labels should vanish when narrow:\n%s", m.canvas)
	}

	m.Update(key("r"))
	if !strings.Contains(m.canvas, "Title") {
		t.Error("labels should return after resetting the baseline")
	}

	m.Update(key("s"))
	if m.renderer.Style().ShowShadow {
		t.Error("s should toggle the shadow off")
	}
	m.Update(key("l"))
	if m.renderer.Style().ShowLines {
		t.Error("l should toggle lines off")
	}
	m.Update(key("t"))
	if m.renderer.Style().ShowText {
		t.Error("t should toggle text off")
	}

	m.Update(key(" "))
	m.Update(key("enter"))
	if m.renderer.Steps().Len() == 0 {
		t.Error("regenerated sequence is empty")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("missing logger should fall back to the default")
	}
	var buf bytes.Buffer
	l := newLogger(&buf, 0)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("logger not retrieved from context")
	}
}
