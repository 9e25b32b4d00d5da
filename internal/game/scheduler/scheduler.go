// Package scheduler runs wall-clock deadline tasks from a coarse tick.
// Tasks fire when their deadline passes, however late the tick arrives,
// and reschedule from the fire time rather than the missed deadline.
package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

// TaskFunc runs one due task and returns the next deadline. Returning
// the zero time removes the task.
type TaskFunc func(now time.Time) time.Time

type task struct {
	name string
	due  time.Time
	fn   TaskFunc
}

// Scheduler holds the deadline tasks. Tick drives it; there are no
// internal goroutines, so the owner controls the clock completely.
type Scheduler struct {
	mu    sync.Mutex
	log   *slog.Logger
	tasks []*task
}

// New creates an empty scheduler.
func New(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{log: log}
}

// Schedule registers a named task with its first deadline.
func (s *Scheduler) Schedule(name string, due time.Time, fn TaskFunc) {
	s.mu.Lock()
	s.tasks = append(s.tasks, &task{name: name, due: due, fn: fn})
	s.mu.Unlock()
}

// Tick fires every task whose deadline has passed and returns how many
// fired. A task fires at most once per tick even when several deadlines
// were missed; the task decides its own catch-up semantics.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	var due []*task
	for _, t := range s.tasks {
		if !now.Before(t.due) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		next := t.fn(now)
		s.mu.Lock()
		if next.IsZero() {
			s.remove(t)
		} else {
			t.due = next
		}
		s.mu.Unlock()
		s.log.Debug("task fired", "task", t.name, "next", next)
	}
	return len(due)
}

// remove deletes the task; caller holds the lock.
func (s *Scheduler) remove(target *task) {
	for i, t := range s.tasks {
		if t == target {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// NextDeadline returns the earliest pending deadline, false when no
// tasks are registered.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	earliest := s.tasks[0].due
	for _, t := range s.tasks[1:] {
		if t.due.Before(earliest) {
			earliest = t.due
		}
	}
	return earliest, true
}

// NextMidnight returns the next local-midnight boundary after now.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
