// Package schedule provides cancellable delayed tasks.
//
// A Scheduler hands out Tasks that run a function once after a delay unless
// stopped first. The news store owns exactly one outstanding Task for its
// search debounce; tests swap in testutil.ManualScheduler to drive time by hand.
package schedule

import "time"

// Task is a single scheduled function.
type Task interface {
	// Stop prevents the task from running. Returns false if the task already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler creates delayed tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Real schedules tasks on the runtime timer heap.
//
// Thread-safety: stateless, safe for concurrent use. Functions run on their
// own goroutine.
type Real struct{}

// AfterFunc runs f after d on a new goroutine.
func (Real) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Immediate runs every task synchronously inside AfterFunc, ignoring the delay.
//
// Used for server-side rendering where a request-scoped store must reflect a
// search before the response is written.
type Immediate struct{}

// AfterFunc runs f before returning. The returned task is already spent.
func (Immediate) AfterFunc(_ time.Duration, f func()) Task {
	f()
	return spent{}
}

type spent struct{}

func (spent) Stop() bool { return false }
