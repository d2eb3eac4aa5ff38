// Package timer is a one-shot timer queue driven by simulation time
// rather than the wall clock. The owner advances it explicitly, so
// callbacks always run on the owner's goroutine between updates.
package timer

import (
	"sort"
	"time"
)

// ID identifies a scheduled timer. The zero ID is never issued.
type ID uint64

type entry struct {
	id  ID
	due time.Duration
	fn  func()
}

// Queue holds pending one-shot timers. Not safe for concurrent use.
type Queue struct {
	now     time.Duration
	nextID  ID
	pending []entry
}

// New returns an empty queue at simulation time zero.
func New() *Queue {
	return &Queue{}
}

// Now returns the simulation time the queue has been advanced to.
func (q *Queue) Now() time.Duration { return q.now }

// Schedule runs fn once after delay of simulation time has elapsed.
func (q *Queue) Schedule(delay time.Duration, fn func()) ID {
	if delay < 0 {
		delay = 0
	}
	q.nextID++
	q.pending = append(q.pending, entry{id: q.nextID, due: q.now + delay, fn: fn})
	return q.nextID
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (q *Queue) Cancel(id ID) bool {
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending timer without running it.
func (q *Queue) Clear() {
	q.pending = nil
}

// Pending returns the number of timers not yet fired.
func (q *Queue) Pending() int { return len(q.pending) }

// Advance moves simulation time forward by dt and runs every timer that
// came due, earliest first and in scheduling order on ties. Timers
// scheduled by a callback wait for a later Advance.
func (q *Queue) Advance(dt time.Duration) int {
	if dt > 0 {
		q.now += dt
	}

	var due []entry
	keep := q.pending[:0]
	for _, e := range q.pending {
		if e.due <= q.now {
			due = append(due, e)
		} else {
			keep = append(keep, e)
		}
	}
	q.pending = keep
	if len(due) == 0 {
		return 0
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// Seconds converts a simulation delta in seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
