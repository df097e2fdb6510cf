// Package observe provides observable values for render-driving state.
//
// A read registers nothing implicitly; renderers Subscribe explicitly and
// re-read after each notification. Listeners always run after the new value
// is visible to Get, so mutation-then-read-after-notify ordering holds.
package observe

import "sync"

// State is a readable, writable, subscribable value.
type State[T any] interface {
	Get() T
	Set(v T)
	Subscribe(fn func(T)) (unsubscribe func())
}

// Value is the mutex-backed State implementation.
//
// Thread-safety: all methods are safe for concurrent use. Listeners run on
// the goroutine that performed the mutation, outside the internal lock, so a
// listener may call Get (or even Set) without deadlocking.
type Value[T any] struct {
	mu        sync.RWMutex
	v         T
	nextID    int
	listeners map[int]func(T)
}

var _ State[int] = (*Value[int])(nil)

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, listeners: make(map[int]func(T))}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Set replaces the value and notifies listeners.
func (o *Value[T]) Set(v T) {
	o.Stage(func(T) T { return v })()
}

// Update applies fn to the current value atomically and notifies listeners
// with the result.
func (o *Value[T]) Update(fn func(T) T) T {
	var out T
	o.Stage(func(cur T) T {
		out = fn(cur)
		return out
	})()
	return out
}

// Stage applies fn atomically but defers notification: listeners run when
// the returned function is called. Callers that must update several values
// under their own lock stage every change, release the lock, then notify.
func (o *Value[T]) Stage(fn func(T) T) (notify func()) {
	o.mu.Lock()
	o.v = fn(o.v)
	v := o.v
	listeners := o.snapshotLocked()
	o.mu.Unlock()

	return func() {
		for _, l := range listeners {
			l(v)
		}
	}
}

// Subscribe registers fn for future changes. The returned function removes
// the subscription and is safe to call more than once.
func (o *Value[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.listeners, id)
		})
	}
}

// snapshotLocked copies listeners in subscription order. Must be called with o.mu held.
func (o *Value[T]) snapshotLocked() []func(T) {
	if len(o.listeners) == 0 {
		return nil
	}
	out := make([]func(T), 0, len(o.listeners))
	for id := 0; id < o.nextID; id++ {
		if fn, ok := o.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
