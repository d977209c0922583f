package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gogpu/stepper"
	"github.com/gogpu/stepper/recording"
	"github.com/gogpu/stepper/recording/backends/term"
)

// demoStyle sizes the stepper in terminal cells. The large text size only
// matters for shrink-to-fit: labels disappear once the window is narrower
// than half of its first width.
func demoStyle() []stepper.StyleOption {
	return []stepper.StyleOption{
		stepper.WithCircleRadius(2),
		stepper.WithStrokeWidth(1),
		stepper.WithExtraPadding(1),
		stepper.WithText(10, stepper.White, 1),
		stepper.WithShadowStyle(stepper.Gray, 1, 100),
		stepper.WithTextScaling(true),
	}
}

func newDemoCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Interactive terminal preview",
		Long:  "Draws a random stepper sized to the terminal. Resize the window to watch labels scale; space regenerates, s/l/t toggle shadow, lines and text, q quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			m, err := newDemoModel(rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (time based when unset)")
	return cmd
}

// demoModel is the bubbletea model of the demo command.
type demoModel struct {
	renderer *stepper.Renderer
	rng      *rand.Rand
	backend  *term.Backend

	width, height int // terminal size in cells
	canvas        string
	err           error
}

func newDemoModel(rng *rand.Rand) (*demoModel, error) {
	r, err := stepper.NewRenderer(stepper.NewCachedMeasurer(term.Measurer{}, measureCacheSize), demoStyle()...)
	if err != nil {
		return nil, err
	}
	r.SetSteps(randomSteps(rng, 0))
	return &demoModel{renderer: r, rng: rng, backend: term.NewBackend()}, nil
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.redraw()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			m.renderer.SetSteps(randomSteps(m.rng, 0))
		case "s":
			m.toggle(func(s stepper.Style) stepper.StyleOption { return stepper.WithShadow(!s.ShowShadow) })
		case "l":
			m.toggle(func(s stepper.Style) stepper.StyleOption { return stepper.WithLines(!s.ShowLines, 2) })
		case "t":
			m.toggle(func(s stepper.Style) stepper.StyleOption { return stepper.WithShowText(!s.ShowText) })
		case "r":
			m.renderer.ResetBaseline()
		default:
			return m, nil
		}
		m.redraw()
	}
	return m, nil
}

func (m *demoModel) toggle(opt func(stepper.Style) stepper.StyleOption) {
	if err := m.renderer.SetStyle(opt(m.renderer.Style())); err != nil {
		m.err = err
	}
}

// redraw renders the frame for the current window, leaving two rows for
// the status line.
func (m *demoModel) redraw() {
	rows := m.height - 2
	if m.width <= 0 || rows <= 0 {
		m.canvas = ""
		return
	}
	frame, err := m.renderer.Render(float64(m.width), float64(2*rows))
	if err != nil {
		m.err = err
		return
	}
	if err := recording.Playback(frame, m.backend); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.canvas = m.backend.String()
}

func (m *demoModel) View() string {
	var b strings.Builder
	b.WriteString(m.canvas)
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleError.Render(m.err.Error()))
	} else {
		st := m.renderer.Style()
		b.WriteString(StyleTitle.Render(fmt.Sprintf("%d steps", m.renderer.Steps().Len())))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  space new · s shadow:%v · l lines:%v · t text:%v · r rescale · q quit",
			st.ShowShadow, st.ShowLines, st.ShowText)))
	}
	return b.String()
}
