// Package jumptest provides a deterministic jump.Scheduler for tests.
package jumptest

import (
	"sort"
	"time"
)

type task struct {
	at  time.Duration
	seq int
	fn  func()
}

// Scheduler is a manual scheduler driven by a virtual clock. Nothing runs
// until Tick or Advance is called.
type Scheduler struct {
	now   time.Duration
	seq   int
	tasks []task
}

// New returns a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Post queues fn for the next Tick.
func (s *Scheduler) Post(fn func()) {
	s.AfterFunc(0, fn)
}

// AfterFunc queues fn to run once the virtual clock reaches now+d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.tasks = append(s.tasks, task{at: s.now + d, seq: s.seq, fn: fn})
}

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Tick runs the tasks that are due now and were queued before the call.
// Tasks queued while ticking wait for the next Tick.
func (s *Scheduler) Tick() {
	due := s.takeDue(s.now, s.seq)
	for _, t := range due {
		t.fn()
	}
}

// Advance moves the clock forward by d, running every task that comes due
// (including ones queued along the way) in time order.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next, ok := s.popNext(target)
		if !ok {
			break
		}
		s.now = next.at
		next.fn()
	}
	s.now = target
}

func (s *Scheduler) takeDue(at time.Duration, maxSeq int) []task {
	s.sortTasks()
	var due, rest []task
	for _, t := range s.tasks {
		if t.at <= at && t.seq <= maxSeq {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.tasks = rest
	return due
}

func (s *Scheduler) popNext(target time.Duration) (task, bool) {
	s.sortTasks()
	if len(s.tasks) == 0 || s.tasks[0].at > target {
		return task{}, false
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t, true
}

func (s *Scheduler) sortTasks() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
}
