// Package scheduler defers work by one scheduling turn.
//
// Controls use it for checks that must run after the host has finished the
// current interaction, such as confirming where focus landed. Tasks are
// keyed: deferring again under the same key supersedes the pending task,
// so only the most recent check runs.
package scheduler

import (
	"sync"

	"github.com/go-drift/controls/pkg/errors"
)

// Task is a deferred callback.
type Task struct {
	key any
	gen uint64
	fn  func()
	s   *Scheduler
}

// Cancel drops the task if it has not run and has not been superseded.
func (t *Task) Cancel() {
	if t == nil || t.s == nil {
		return
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.key == nil {
		t.fn = nil
		return
	}
	if t.s.generations[t.key] == t.gen {
		delete(t.s.generations, t.key)
	}
}

// Scheduler queues deferred tasks until the next Tick.
type Scheduler struct {
	mu          sync.Mutex
	queue       []*Task
	generations map[any]uint64
	seq         uint64

	// OnSchedule is called when a task is queued on an empty scheduler,
	// signalling the host that a tick is needed.
	OnSchedule func()
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{generations: make(map[any]uint64)}
}

// Defer queues fn for the next Tick. A non-nil key must be comparable; a
// pending task with the same key is superseded and will not run.
func (s *Scheduler) Defer(key any, fn func()) *Task {
	if fn == nil {
		return nil
	}
	s.mu.Lock()
	s.seq++
	task := &Task{key: key, gen: s.seq, fn: fn, s: s}
	if key != nil {
		s.generations[key] = s.seq
	}
	wasEmpty := len(s.queue) == 0
	s.queue = append(s.queue, task)
	notify := s.OnSchedule
	s.mu.Unlock()

	if wasEmpty && notify != nil {
		notify()
	}
	return task
}

// Cancel drops any pending task deferred under key.
func (s *Scheduler) Cancel(key any) {
	if key == nil {
		return
	}
	s.mu.Lock()
	delete(s.generations, key)
	s.mu.Unlock()
}

// Pending returns the number of queued tasks that would still run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, task := range s.queue {
		if s.current(task) {
			count++
		}
	}
	return count
}

// Tick runs the tasks queued before it was called and returns how many ran.
// Tasks deferred while ticking wait for the next Tick.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	ran := 0
	for _, task := range queue {
		s.mu.Lock()
		run := s.current(task)
		if run && task.key != nil {
			delete(s.generations, task.key)
		}
		s.mu.Unlock()
		if !run {
			continue
		}
		ran++
		runTask(task.fn)
	}
	return ran
}

// current reports whether task is still the live task for its key.
// Callers hold s.mu.
func (s *Scheduler) current(task *Task) bool {
	if task.fn == nil {
		return false
	}
	if task.key == nil {
		return true
	}
	return s.generations[task.key] == task.gen
}

func runTask(fn func()) {
	defer errors.Recover("scheduler.Tick")
	fn()
}
