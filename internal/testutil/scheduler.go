package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/roach88/vcashweb/internal/schedule"
)

// ManualScheduler is a schedule.Scheduler driven by a virtual clock.
//
// Tasks never fire on their own. Advance moves the clock forward and runs
// every task that has become due, oldest deadline first, ties broken by
// registration order. This keeps debounce tests deterministic regardless of
// wall time.
//
// Thread-safety: all methods are safe for concurrent use. Task functions run
// on the goroutine that calls Advance, outside the internal mutex.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int64
	tasks []*manualTask
}

var _ schedule.Scheduler = (*ManualScheduler)(nil)

type manualTask struct {
	owner   *ManualScheduler
	due     time.Duration
	seq     int64
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler creates a scheduler whose virtual clock starts at 0.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once the virtual clock reaches now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) schedule.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task := &manualTask{owner: s, due: s.now + d, seq: s.seq, fn: f}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves the virtual clock forward by d and runs due tasks.
// Returns the number of tasks that ran.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d
	var due []*manualTask
	remaining := s.tasks[:0]
	for _, task := range s.tasks {
		if task.due <= s.now {
			task.fired = true
			due = append(due, task)
		} else {
			remaining = append(remaining, task)
		}
	}
	s.tasks = remaining
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, task := range due {
		task.fn()
	}
	return len(due)
}

// Pending returns the number of tasks waiting to fire.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the virtual time elapsed since creation or the last Reset.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Reset drops all pending tasks and rewinds the clock to 0.
func (s *ManualScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = 0
	s.seq = 0
	s.tasks = nil
}

// Stop removes the task from its scheduler.
func (t *manualTask) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return true
}
