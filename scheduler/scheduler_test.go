package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	req := require.New(t)
	clock := NewManual(start)
	var fired []string

	// Given three timers registered out of order
	clock.AfterFunc(5*time.Second, func() { fired = append(fired, "5s") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "1s") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "1s-bis") })

	// When only part of the window elapses
	clock.Advance(2 * time.Second)

	// Then only due timers fired, ties in registration order
	req.Equal([]string{"1s", "1s-bis"}, fired)
	req.Equal(1, clock.Pending())
	req.Equal(start.Add(2*time.Second), clock.Now())

	clock.Advance(3 * time.Second)
	req.Equal([]string{"1s", "1s-bis", "5s"}, fired)
	req.Zero(clock.Pending())
}

func TestManual_CallbackSeesItsDeadline(t *testing.T) {
	req := require.New(t)
	clock := NewManual(start)
	var seen time.Time

	clock.AfterFunc(time.Second, func() { seen = clock.Now() })
	clock.Advance(time.Minute)

	req.Equal(start.Add(time.Second), seen)
	req.Equal(start.Add(time.Minute), clock.Now())
}

func TestManual_TimersScheduledByCallbacks(t *testing.T) {
	req := require.New(t)
	clock := NewManual(start)
	count := 0

	// Given a callback rescheduling itself every second
	var tick func()
	tick = func() {
		count++
		clock.AfterFunc(time.Second, tick)
	}
	clock.AfterFunc(time.Second, tick)

	// When ten seconds pass
	clock.Advance(10 * time.Second)

	// Then every nested timer within the window fired
	req.Equal(10, count)
	req.Equal(1, clock.Pending())
}

func TestManual_Cancel(t *testing.T) {
	req := require.New(t)
	clock := NewManual(start)
	fired := false

	cancel := clock.AfterFunc(time.Second, func() { fired = true })

	req.True(cancel())
	req.False(cancel())
	clock.Advance(time.Hour)
	req.False(fired)
}

func TestSystem_AfterFunc(t *testing.T) {
	req := require.New(t)
	clock := NewSystem()
	done := make(chan struct{})

	clock.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("timer should have fired")
	}
	req.True(clock.AfterFunc(time.Hour, func() {})())
}
