package schedule_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tilemaze/internal/schedule"
)

var _ = Describe("Manual", func() {
	var m *schedule.Manual

	BeforeEach(func() {
		m = schedule.NewManual()
	})

	It("fires nothing until driven", func() {
		calls := 0
		m.Every(10*time.Millisecond, func() error { calls++; return nil })
		Expect(calls).To(Equal(0))
		Expect(m.Active()).To(Equal(1))
	})

	It("fires on period boundaries when advanced", func() {
		calls := 0
		m.Every(10*time.Millisecond, func() error { calls++; return nil })

		Expect(m.Advance(35 * time.Millisecond)).To(Succeed())
		Expect(calls).To(Equal(3))
		Expect(m.Now()).To(Equal(35 * time.Millisecond))
	})

	It("steps zero-period timers by the resolution", func() {
		calls := 0
		m.Every(0, func() error { calls++; return nil })

		Expect(m.Advance(5 * time.Millisecond)).To(Succeed())
		Expect(calls).To(Equal(5))
		Expect(m.Active()).To(Equal(1))
	})

	It("fires the earliest timer first", func() {
		var order []string
		m.Every(30*time.Millisecond, func() error { order = append(order, "slow"); return nil })
		m.Every(10*time.Millisecond, func() error { order = append(order, "fast"); return nil })

		Expect(m.Advance(30 * time.Millisecond)).To(Succeed())
		Expect(order).To(Equal([]string{"fast", "fast", "slow", "fast"}))
		Expect(m.Now()).To(Equal(30 * time.Millisecond))
	})

	It("never fires a cancelled timer", func() {
		calls := 0
		t := m.Every(time.Millisecond, func() error { calls++; return nil })
		t.Cancel()

		ok, err := m.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(calls).To(Equal(0))
		Expect(t.Active()).To(BeFalse())
	})

	It("honours a callback cancelling its own timer", func() {
		calls := 0
		var t schedule.Timer
		t = m.Every(time.Millisecond, func() error {
			calls++
			if calls == 2 {
				t.Cancel()
			}
			return nil
		})

		n, err := m.RunUntilIdle(100)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(calls).To(Equal(2))
		Expect(m.Active()).To(Equal(0))
	})

	It("cancels a failing timer and returns its error", func() {
		boom := errors.New("boom")
		calls := 0
		t := m.Every(time.Millisecond, func() error { calls++; return boom })

		_, err := m.Next()
		Expect(err).To(MatchError(boom))
		Expect(t.Active()).To(BeFalse())

		ok, err := m.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(calls).To(Equal(1))
	})

	It("refuses to be driven from inside a callback", func() {
		var nested error
		m.Every(time.Millisecond, func() error {
			_, nested = m.Next()
			return nil
		})

		_, err := m.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(nested).To(MatchError(schedule.ErrReentrant))
	})

	It("stops RunUntilIdle at the limit", func() {
		m.Every(0, func() error { return nil })

		n, err := m.RunUntilIdle(7)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(7))
		Expect(m.Fired()).To(Equal(7))
	})
})
