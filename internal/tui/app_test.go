package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tilemaze/internal/config"
	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/playback"
	"github.com/san-kum/tilemaze/internal/viz"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	m, err := NewModel(*cfg, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// fire delivers one tick for every live timer.
func fire(m Model) Model {
	for id := range m.sched.timers {
		next, _ := m.Update(tickMsg{id: id})
		m = next.(Model)
	}
	return m
}

func TestModel_RunToFinished(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller
	g.Expect(ctrl.State()).To(Equal(playback.Idle))

	m, cmd := press(m, " ")
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(ctrl.State()).To(Equal(playback.Running))
	g.Expect(m.sched.Active()).To(Equal(1))

	for i := 0; i < 10000 && ctrl.State() == playback.Running; i++ {
		m = fire(m)
	}
	g.Expect(ctrl.State()).To(Equal(playback.Finished))
	g.Expect(m.sched.Active()).To(Equal(0))
	g.Expect(m.err).NotTo(HaveOccurred())
	g.Expect(m.history).NotTo(BeEmpty())
	g.Expect(m.history[len(m.history)-1]).To(BeNumerically("==", 100))

	m, _ = press(m, " ")
	g.Expect(ctrl.State()).To(Equal(playback.Running), "space restarts a finished run")
	g.Expect(m.history).To(BeEmpty())
}

func TestModel_StopAndStep(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, "n")
	g.Expect(ctrl.Status().Steps).To(Equal(1))

	m, _ = press(m, " ")
	m, _ = press(m, "n")
	g.Expect(ctrl.Status().Steps).To(Equal(1), "step is disabled while running")

	m, _ = press(m, " ")
	g.Expect(ctrl.State()).To(Equal(playback.Idle))
	g.Expect(m.sched.Active()).To(Equal(0))
}

func TestModel_Speed(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, "+")
	g.Expect(ctrl.Speed()).To(Equal(55))
	m, _ = press(m, "-")
	m, _ = press(m, "-")
	g.Expect(ctrl.Speed()).To(Equal(45))

	g.Expect(ctrl.ChangeSpeed(98)).To(Succeed())
	m, _ = press(m, "+")
	g.Expect(ctrl.Speed()).To(Equal(playback.MaxSpeed))

	m, _ = press(m, " ")
	m, _ = press(m, "-")
	g.Expect(ctrl.Speed()).To(Equal(95))
	g.Expect(ctrl.State()).To(Equal(playback.Running))
	g.Expect(m.sched.Active()).To(Equal(1), "a speed change reschedules a single timer")
}

func TestModel_DisabledControlsWhileRunning(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, " ")
	for _, k := range []string{"]", "[", ".", ",", "tab", "p"} {
		m, _ = press(m, k)
	}
	st := ctrl.Status()
	g.Expect(st.State).To(Equal(playback.Running))
	g.Expect(st.Scale).To(Equal(playback.DefaultScale))
	g.Expect(st.Rotation).To(Equal(0))
	g.Expect(st.Tiling).To(Equal(maze.Square.Name))
	g.Expect(m.picker).To(BeNil())
}

func TestModel_Parameters(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, "]")
	g.Expect(ctrl.Status().Scale).To(Equal(playback.DefaultScale + 1))
	m, _ = press(m, "[")
	m, _ = press(m, "[")
	g.Expect(ctrl.Status().Scale).To(Equal(playback.DefaultScale - 1))

	m, _ = press(m, ",")
	g.Expect(ctrl.Status().Rotation).To(Equal(345))
	m, _ = press(m, ".")
	g.Expect(ctrl.Status().Rotation).To(Equal(0))

	s, err := m.engine.Session(ctrl.Handle())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Maze().Scale).To(BeNumerically("==", playback.DefaultScale-1))
}

func TestModel_TilingKeys(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, "tab")
	g.Expect(ctrl.Tiling()).To(Equal(maze.Tilings[1].Name))

	m, _ = press(m, "p")
	g.Expect(m.picker).NotTo(BeNil())
	g.Expect(m.View()).To(ContainSubstring("TILINGS"))

	m, _ = press(m, "j")
	m, _ = press(m, "enter")
	g.Expect(m.picker).To(BeNil())
	g.Expect(ctrl.Tiling()).To(Equal(maze.Tilings[2].Name))
	g.Expect(ctrl.State()).To(Equal(playback.Idle))

	m, _ = press(m, "p")
	m, _ = press(m, "k")
	m, _ = press(m, "esc")
	g.Expect(m.picker).To(BeNil())
	g.Expect(ctrl.Tiling()).To(Equal(maze.Tilings[2].Name), "esc keeps the tiling")

	m, _ = press(m, "p")
	m, _ = press(m, "q")
	g.Expect(m.picker).To(BeNil(), "q closes the picker without quitting")
	g.Expect(ctrl.ChangeSpeed(ctrl.Speed())).To(Succeed(), "the controller stays open")
}

func TestModel_ResetAndTheme(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller

	m, _ = press(m, " ")
	m = fire(m)
	m, _ = press(m, "r")
	g.Expect(ctrl.State()).To(Equal(playback.Idle))
	g.Expect(m.sched.Active()).To(Equal(0))
	g.Expect(m.history).To(BeEmpty())

	first := m.theme.Name
	m, _ = press(m, "t")
	g.Expect(m.theme.Name).NotTo(Equal(first))
	g.Expect(m.theme).To(Equal(viz.NextTheme(first)))
}

func TestModel_Resize(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	ctrl := m.sess.Controller
	before := ctrl.Handle()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	g.Expect(m.canvas.Width).To(Equal(120 - sidebarWidth - 2))
	g.Expect(m.canvas.Height).To(Equal(37))
	g.Expect(ctrl.Handle()).NotTo(BeIdenticalTo(before))
	w, h := m.canvas.PixelSize()
	g.Expect(ctrl.Status().Surface).To(Equal(playback.Surface{Width: w, Height: h}))

	same := ctrl.Handle()
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	g.Expect(ctrl.Handle()).To(BeIdenticalTo(same), "an unchanged size keeps the session")
}

func TestModel_ResizeRejected(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.Scale = 40
	m, err := NewModel(*cfg, nil)
	g.Expect(err).NotTo(HaveOccurred())
	ctrl := m.sess.Controller
	before := ctrl.Handle()
	width, height := m.canvas.Width, m.canvas.Height

	// The smallest canvas is 20x20 sub-pixels, too small for a 40px square.
	next, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	m = next.(Model)
	g.Expect(m.err).To(MatchError(maze.ErrEmpty))
	g.Expect(ctrl.Handle()).To(BeIdenticalTo(before))
	g.Expect(m.canvas.Width).To(Equal(width))
	g.Expect(m.canvas.Height).To(Equal(height))
	w, h := m.canvas.PixelSize()
	g.Expect(ctrl.Status().Surface).To(Equal(playback.Surface{Width: w, Height: h}))
	g.Expect(m.View()).NotTo(BeEmpty())
}

func TestModel_Quit(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	m, _ = press(m, " ")

	m, cmd := press(m, "q")
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.QuitMsg{}))
	g.Expect(m.sess.Controller.Start()).To(MatchError(playback.ErrClosed))
	g.Expect(m.sched.Active()).To(Equal(0))
}

func TestModel_View(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	m, _ = press(m, "n")

	view := m.View()
	for _, want := range []string{"TILEMAZE", "IDLE", "Square", "Walkers", "space"} {
		g.Expect(view).To(ContainSubstring(want))
	}

	m.sess.Controller.Close()
	m, _ = press(m, "n")
	g.Expect(m.err).To(MatchError(playback.ErrClosed))
	g.Expect(m.View()).To(ContainSubstring(playback.ErrClosed.Error()))
}

func TestNewModel_UnknownTiling(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tiling = "Penrose"
	if _, err := NewModel(*cfg, nil); err == nil {
		t.Fatal("expected error for unknown tiling")
	}
}

func TestLiveRenderer(t *testing.T) {
	g := NewWithT(t)
	m, err := maze.NewMaze(maze.Square, 40, 24, 8, 0)
	g.Expect(err).NotTo(HaveOccurred())

	var out bytes.Buffer
	now := time.Unix(0, 0)
	r := NewLiveRenderer(&out, viz.NewCanvas(20, 6), 10)
	r.now = func() time.Time { return now }

	st := playback.Status{Tiling: "Square", State: playback.Running, Speed: 50}
	g.Expect(r.Frame(m, st, false)).To(BeTrue())
	g.Expect(r.Frame(m, st, false)).To(BeFalse(), "frames inside the interval are dropped")
	g.Expect(r.Frame(m, st, true)).To(BeTrue())
	now = now.Add(100 * time.Millisecond)
	g.Expect(r.Frame(m, st, false)).To(BeTrue())

	s := out.String()
	g.Expect(strings.Count(s, clearScreen)).To(Equal(3))
	g.Expect(s).To(ContainSubstring("Square  running  speed=50"))
}
