package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/tilemaze/internal/maze"
	"github.com/san-kum/tilemaze/internal/playback"
	"github.com/san-kum/tilemaze/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws a headless run in place on a plain terminal, at most
// fps times per second.
type LiveRenderer struct {
	out       io.Writer
	canvas    *viz.Canvas
	interval  time.Duration
	lastFrame time.Time
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, canvas *viz.Canvas, fps int) *LiveRenderer {
	if fps < 1 {
		fps = 30
	}
	return &LiveRenderer{
		out:      out,
		canvas:   canvas,
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
}

// Frame draws m unless the previous frame is too recent. force skips the
// throttle, for the final frame of a run.
func (r *LiveRenderer) Frame(m *maze.Maze, st playback.Status, force bool) bool {
	now := r.now()
	if !force && !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < r.interval {
		return false
	}
	r.lastFrame = now

	viz.Render(r.canvas, m)
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  %s  speed=%d  ticks=%d  cells=%d/%d\n",
		st.Tiling, st.State, st.Speed, st.Ticks, m.OpenCount(), m.Len())
	b.WriteString("  " + strings.Repeat("-", r.canvas.Width) + "\n")
	for _, line := range strings.Split(strings.TrimSuffix(r.canvas.String(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	io.WriteString(r.out, b.String())
	return true
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
