package tui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tilemaze/internal/config"
	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/playback"
	"github.com/san-kum/tilemaze/internal/viz"
)

const (
	sidebarWidth    = 36
	historyCapacity = 120
	speedStep       = 5
	rotationStep    = 15
)

// Model is the interactive maze view: a canvas panel, a status panel and key
// hints that follow the controller's enabled controls.
type Model struct {
	cfg     config.Config
	engine  *maze.Engine
	sched   *Scheduler
	sess    *playback.Session
	canvas  *viz.Canvas
	theme   viz.Theme
	history []float64
	picker  *picker
	err     error
	width   int
	height  int
}

// NewModel opens a session sized to cfg.Width x cfg.Height characters. The
// first window size message resizes it to the terminal.
func NewModel(cfg config.Config, logger *log.Logger) (Model, error) {
	engine := maze.New(cfg.EngineConfig())
	sched := NewScheduler(cfg.FrameInterval)
	canvas := viz.NewCanvas(cfg.Width, cfg.Height)

	opts := cfg.PlaybackOptions()
	opts.Logger = logger
	w, h := canvas.PixelSize()
	sess, err := playback.Open(engine, sched, playback.Surface{Width: w, Height: h}, opts)
	if err != nil {
		return Model{}, err
	}
	if cfg.Tiling != "" && cfg.Tiling != sess.Catalog.Default() {
		if err := sess.Router.SetTiling(cfg.Tiling); err != nil {
			sess.Close()
			return Model{}, err
		}
	}

	return Model{
		cfg:     cfg,
		engine:  engine,
		sched:   sched,
		sess:    sess,
		canvas:  canvas,
		theme:   viz.GetTheme(cfg.Theme),
		history: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.sched.Cmd()
}

// Update routes keys to the controller and ticks to the scheduler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tickMsg:
		m.setErr(m.sched.Handle(msg))
		m.sample()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.sess.Close()
			return m, tea.Quit
		}
		if m.picker != nil {
			m.pickerKey(msg.String())
			break
		}
		if quit := m.key(msg.String()); quit {
			m.sess.Close()
			return m, tea.Quit
		}
	}
	return m, m.sched.Cmd()
}

func (m *Model) key(k string) bool {
	ctrl := m.sess.Controller
	controls := ctrl.Controls()
	status := ctrl.Status()

	switch k {
	case "q":
		return true
	case " ":
		if controls.Stop {
			ctrl.Stop()
		} else {
			if status.State == playback.Finished {
				m.history = m.history[:0]
			}
			m.setErr(ctrl.Start())
		}
	case "n":
		if controls.Step {
			m.setErr(ctrl.SingleStep())
			m.sample()
		}
	case "+", "=":
		m.setErr(ctrl.ChangeSpeed(min(status.Speed+speedStep, playback.MaxSpeed)))
	case "-", "_":
		m.setErr(ctrl.ChangeSpeed(max(status.Speed-speedStep, playback.MinSpeed)))
	case "]":
		if controls.Scale {
			m.restart(m.sess.Router.SetScale(status.Scale + 1))
		}
	case "[":
		if controls.Scale && status.Scale > 1 {
			m.restart(m.sess.Router.SetScale(status.Scale - 1))
		}
	case ".":
		if controls.Rotation {
			m.restart(m.sess.Router.SetRotation((status.Rotation + rotationStep) % 360))
		}
	case ",":
		if controls.Rotation {
			m.restart(m.sess.Router.SetRotation((status.Rotation - rotationStep + 360) % 360))
		}
	case "tab":
		if controls.Tiling {
			m.restart(m.sess.Router.SetTiling(m.sess.Catalog.After(status.Tiling)))
		}
	case "p":
		if controls.Tiling {
			m.picker = newPicker(m.sess.Catalog.Names(), status.Tiling)
		}
	case "r":
		m.restart(ctrl.Reset())
	case "t":
		m.theme = viz.NextTheme(m.theme.Name)
	}
	return false
}

func (m *Model) pickerKey(k string) {
	name, done := m.picker.key(k)
	if !done {
		return
	}
	m.picker = nil
	if name != "" {
		m.restart(m.sess.Router.SetTiling(name))
	}
}

// restart records the outcome of an operation that restarts generation.
func (m *Model) restart(err error) {
	m.setErr(err)
	m.history = m.history[:0]
}

func (m *Model) setErr(err error) { m.err = err }

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := max(width-sidebarWidth-2, 10)
	rows := max(height-3, 5)
	if cols == m.canvas.Width && rows == m.canvas.Height {
		return
	}
	canvas := viz.NewCanvas(cols, rows)
	w, h := canvas.PixelSize()
	surface := playback.Surface{Width: w, Height: h}
	err := m.sess.Controller.Reinitialize(surface)
	// The canvas follows whichever surface the session ended up on.
	if m.sess.Controller.Status().Surface == surface {
		m.canvas = canvas
	}
	m.restart(err)
}

func (m *Model) sample() {
	connected, total, err := m.engine.Progress(m.sess.Controller.Handle())
	if err != nil || total == 0 {
		return
	}
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, 100*float64(connected)/float64(total))
}

func (m Model) View() string {
	if s, err := m.engine.Session(m.sess.Controller.Handle()); err == nil {
		viz.Render(m.canvas, s.Maze())
	}
	canvasView := viz.Panel.Render(m.canvas.Styled(m.theme))

	side := m.status()
	if m.picker != nil {
		side = m.picker.view(m.theme)
	}
	statsView := viz.SidePanel.Width(sidebarWidth - 4).Render(side)
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	return mainView + "\n" + m.hints()
}

func (m Model) status() string {
	st := m.sess.Controller.Status()
	label := func(s string) string { return viz.MetricLabel.Width(10).Render(s) }
	value := func(format string, a ...any) string { return viz.MetricValue.Render(fmt.Sprintf(format, a...)) }

	var s strings.Builder
	s.WriteString(viz.Title(m.theme, "TILEMAZE") + "  " + viz.StateBadge(m.theme, st.State.String()) + "\n\n")
	s.WriteString(label("Tiling") + value("%s", st.Tiling) + "\n")
	s.WriteString(label("Speed") + value("%d", st.Speed) + viz.Subtle.Render(fmt.Sprintf("  %.1fms x%d", st.Timing.DelayMillis(), st.Timing.Iterations)) + "\n")
	s.WriteString(label("Scale") + value("%d", st.Scale) + "\n")
	s.WriteString(label("Rotation") + value("%d°", st.Rotation) + "\n")
	s.WriteString(label("Ticks") + value("%d", st.Ticks) + "\n")

	if sess, err := m.engine.Session(m.sess.Controller.Handle()); err == nil {
		connected, total, _ := m.engine.Progress(m.sess.Controller.Handle())
		s.WriteString(label("Walkers") + value("%d", sess.Walkers()) + "\n")
		s.WriteString(label("Cells") + value("%d/%d", connected, total) + "\n\n")
		pct := 0.0
		if total > 0 {
			pct = float64(connected) / float64(total)
		}
		s.WriteString(viz.ProgressBar(pct, sidebarWidth-12) + value(" %3.0f%%", 100*pct) + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(sidebarWidth-14),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.Caption("progress %"))
		s.WriteString("\n" + chart + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + viz.ErrorText.Render(m.err.Error()) + "\n")
	}
	return s.String()
}

func (m Model) hints() string {
	c := m.sess.Controller.Controls()
	runLabel := "run"
	if c.Stop {
		runLabel = "stop"
	}
	hints := []string{
		viz.Hint("space", runLabel, true),
		viz.Hint("n", "step", c.Step),
		viz.Hint("+/-", "speed", true),
		viz.Hint("[/]", "scale", c.Scale),
		viz.Hint(",/.", "rotate", c.Rotation),
		viz.Hint("tab", "tiling", c.Tiling),
		viz.Hint("p", "pick", c.Tiling),
		viz.Hint("r", "reset", true),
		viz.Hint("t", "theme", true),
		viz.Hint("q", "quit", true),
	}
	return " " + strings.Join(hints, "  ")
}

// Run starts the interactive program and blocks until it exits.
func Run(cfg config.Config, logger *log.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
