package schedule

import (
	"context"
	"sync"
	"time"
)

// Loop is a wall-clock Scheduler. Callbacks run on the goroutine that calls
// Run; Every and Cancel may be called from any goroutine.
type Loop struct {
	mu      sync.Mutex
	timers  []*loopTimer
	wake    chan struct{}
	running bool
	now     func() time.Time
}

type loopTimer struct {
	loop   *Loop
	period time.Duration
	due    time.Time
	fn     Func
	active bool
}

func (t *loopTimer) Cancel() {
	t.loop.mu.Lock()
	t.active = false
	t.loop.mu.Unlock()
	t.loop.notify()
}

func (t *loopTimer) Active() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	return t.active
}

func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		now:  time.Now,
	}
}

func (l *Loop) Every(period time.Duration, fn Func) Timer {
	if period < 0 {
		period = 0
	}
	l.mu.Lock()
	t := &loopTimer{loop: l, period: period, due: l.now().Add(period), fn: fn, active: true}
	l.timers = append(l.timers, t)
	l.mu.Unlock()
	l.notify()
	return t
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drives the timeline until no timer is active, a callback fails or ctx
// is done. It returns the callback error or ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrReentrant
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t, wait := l.next()
		if t == nil {
			return nil
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-l.wake:
				timer.Stop()
				continue
			case <-timer.C:
			}
		}

		if !t.Active() {
			continue
		}
		if err := t.fn(); err != nil {
			t.Cancel()
			return err
		}
		l.mu.Lock()
		if t.active {
			t.due = l.now().Add(t.period)
		}
		l.mu.Unlock()
	}
}

func (l *Loop) next() (*loopTimer, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	live := l.timers[:0]
	var next *loopTimer
	for _, t := range l.timers {
		if !t.active {
			continue
		}
		live = append(live, t)
		if next == nil || t.due.Before(next.due) {
			next = t
		}
	}
	l.timers = live
	if next == nil {
		return nil, 0
	}
	return next, next.due.Sub(l.now())
}
