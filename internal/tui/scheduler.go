package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tilemaze/internal/schedule"
)

type tickMsg struct {
	id int
}

// Scheduler delivers timer callbacks as tea messages, so every callback runs
// inside Update on the program's goroutine. Periods shorter than the frame
// interval are raised to it, the way browsers clamp zero-delay timers.
type Scheduler struct {
	frame   time.Duration
	seq     int
	timers  map[int]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	s      *Scheduler
	id     int
	period time.Duration
	fn     schedule.Func
}

func (t *teaTimer) Cancel() { delete(t.s.timers, t.id) }

func (t *teaTimer) Active() bool {
	_, ok := t.s.timers[t.id]
	return ok
}

var _ schedule.Scheduler = (*Scheduler)(nil)

func NewScheduler(frame time.Duration) *Scheduler {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	return &Scheduler{frame: frame, timers: make(map[int]*teaTimer)}
}

func (s *Scheduler) Every(period time.Duration, fn schedule.Func) schedule.Timer {
	s.seq++
	t := &teaTimer{s: s, id: s.seq, period: period, fn: fn}
	s.timers[t.id] = t
	s.arm(t)
	return t
}

func (s *Scheduler) interval(period time.Duration) time.Duration {
	if period < s.frame {
		return s.frame
	}
	return period
}

func (s *Scheduler) arm(t *teaTimer) {
	id := t.id
	s.pending = append(s.pending, tea.Tick(s.interval(t.period), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
}

// Cmd returns the ticks armed since the last call, or nil.
func (s *Scheduler) Cmd() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Handle runs the callback behind msg. Ticks of cancelled timers are
// dropped. A failing callback cancels its timer.
func (s *Scheduler) Handle(msg tickMsg) error {
	t, ok := s.timers[msg.id]
	if !ok {
		return nil
	}
	if err := t.fn(); err != nil {
		t.Cancel()
		return err
	}
	if t.Active() {
		s.arm(t)
	}
	return nil
}

// Active returns the number of live timers.
func (s *Scheduler) Active() int { return len(s.timers) }
