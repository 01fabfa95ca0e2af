// Package scheduler provides the time source used by every timer-driven
// component: the process clock in production, a manually advanced one in tests.
package scheduler

import (
	"campus-chat/contract"
	"sort"
	"sync"
	"time"
)

// System schedules on the process clock.
type System struct{}

func NewSystem() System { return System{} }

func (System) Now() time.Time { return time.Now().UTC() }

func (System) AfterFunc(delay time.Duration, fn func()) contract.Cancel {
	t := time.AfterFunc(delay, fn)
	return t.Stop
}

type timer struct {
	id       int
	at       time.Time
	fn       func()
	canceled bool
}

// Manual only moves forward when Advance is called. Due callbacks run
// synchronously on the caller's goroutine, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	timers map[int]*timer
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[int]*timer)}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(delay time.Duration, fn func()) contract.Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &timer{id: m.nextID, at: m.now.Add(delay), fn: fn}
	m.timers[t.id] = t
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.timers[t.id]; !ok || t.canceled {
			return false
		}
		t.canceled = true
		delete(m.timers, t.id)
		return true
	}
}

// Advance moves the clock by d, firing every timer that becomes due,
// including timers scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.timers, next.id)
		m.now = next.at
		m.mu.Unlock()

		next.fn()
	}
}

// Pending is the number of scheduled, not yet fired timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDue(target time.Time) *timer {
	due := make([]*timer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].id < due[j].id
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}
