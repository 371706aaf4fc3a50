package schedule

import "time"

// DefaultResolution is the smallest step the virtual clock advances per firing.
const DefaultResolution = time.Millisecond

// Manual is a Scheduler on a virtual clock. Nothing fires until the owner
// drives it with Next, Advance or RunUntilIdle.
//
// Zero periods are honoured in firing order but advance the clock by the
// resolution, so Advance over a finite interval always terminates.
type Manual struct {
	now        time.Duration
	resolution time.Duration
	timers     []*manualTimer
	seq        int
	firing     bool
	fired      int
}

type manualTimer struct {
	id     int
	period time.Duration
	due    time.Duration
	fn     Func
	active bool
}

func (t *manualTimer) Cancel()      { t.active = false }
func (t *manualTimer) Active() bool { return t.active }

func NewManual() *Manual {
	return &Manual{resolution: DefaultResolution}
}

// SetResolution changes the clock step used for zero-period timers.
func (m *Manual) SetResolution(d time.Duration) {
	if d > 0 {
		m.resolution = d
	}
}

func (m *Manual) Every(period time.Duration, fn Func) Timer {
	m.seq++
	t := &manualTimer{
		id:     m.seq,
		period: period,
		due:    m.now + m.interval(period),
		fn:     fn,
		active: true,
	}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) interval(period time.Duration) time.Duration {
	if period < m.resolution {
		return m.resolution
	}
	return period
}

// Now returns the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration { return m.now }

// Fired returns how many callbacks have run so far.
func (m *Manual) Fired() int { return m.fired }

// Active returns the number of timers that can still fire.
func (m *Manual) Active() int {
	n := 0
	for _, t := range m.timers {
		if t.active {
			n++
		}
	}
	return n
}

// Next moves the clock to the earliest due timer and fires it. It reports
// false when no timer is active.
func (m *Manual) Next() (bool, error) {
	if m.firing {
		return false, ErrReentrant
	}
	t := m.earliest()
	if t == nil {
		return false, nil
	}
	if t.due > m.now {
		m.now = t.due
	}
	return true, m.fire(t)
}

// Advance fires every timer falling due within d, in order, then sets the
// clock to now+d.
func (m *Manual) Advance(d time.Duration) error {
	if m.firing {
		return ErrReentrant
	}
	deadline := m.now + d
	for {
		t := m.earliest()
		if t == nil || t.due > deadline {
			break
		}
		if t.due > m.now {
			m.now = t.due
		}
		if err := m.fire(t); err != nil {
			return err
		}
	}
	m.now = deadline
	return nil
}

// RunUntilIdle fires timers until none is active or limit firings happened.
// It returns the number of firings.
func (m *Manual) RunUntilIdle(limit int) (int, error) {
	n := 0
	for n < limit {
		ok, err := m.Next()
		if err != nil {
			return n + 1, err
		}
		if !ok {
			break
		}
		n++
	}
	return n, nil
}

func (m *Manual) earliest() *manualTimer {
	live := m.timers[:0]
	var next *manualTimer
	for _, t := range m.timers {
		if !t.active {
			continue
		}
		live = append(live, t)
		if next == nil || t.due < next.due {
			next = t
		}
	}
	m.timers = live
	return next
}

func (m *Manual) fire(t *manualTimer) error {
	m.firing = true
	err := t.fn()
	m.firing = false
	m.fired++
	if err != nil {
		t.active = false
		return err
	}
	if t.active {
		t.due = m.now + m.interval(t.period)
	}
	return nil
}
