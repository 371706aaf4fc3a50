package schedule_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tilemaze/internal/schedule"
)

var _ = Describe("Loop", func() {
	var l *schedule.Loop

	BeforeEach(func() {
		l = schedule.NewLoop()
	})

	It("returns immediately with no timers", func() {
		Expect(l.Run(context.Background())).To(Succeed())
	})

	It("runs until the timer cancels itself", func() {
		calls := 0
		var t schedule.Timer
		t = l.Every(0, func() error {
			calls++
			if calls == 5 {
				t.Cancel()
			}
			return nil
		})

		Expect(l.Run(context.Background())).To(Succeed())
		Expect(calls).To(Equal(5))
	})

	It("waits the period between firings", func() {
		calls := 0
		var t schedule.Timer
		start := time.Now()
		t = l.Every(5*time.Millisecond, func() error {
			calls++
			if calls == 3 {
				t.Cancel()
			}
			return nil
		})

		Expect(l.Run(context.Background())).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 15*time.Millisecond))
	})

	It("returns the callback error", func() {
		boom := errors.New("boom")
		t := l.Every(0, func() error { return boom })

		Expect(l.Run(context.Background())).To(MatchError(boom))
		Expect(t.Active()).To(BeFalse())
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		l.Every(time.Hour, func() error { return nil })

		Expect(l.Run(ctx)).To(MatchError(context.DeadlineExceeded))
	})

	It("picks up a timer cancelled from another goroutine", func() {
		t := l.Every(time.Hour, func() error { return nil })
		go func() {
			time.Sleep(10 * time.Millisecond)
			t.Cancel()
		}()

		Expect(l.Run(context.Background())).To(Succeed())
	})
})
