// Package events decouples cache mutation from presentation refresh: a
// typed publish/subscribe emitter with explicit unsubscribe handles and
// per-listener isolation.
package events

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Emitter notifies subscribers in subscription order. A listener that
// panics does not prevent later listeners from running, and unsubscribing
// during a notification is safe: the removed listener is not invoked again,
// including for the notification in flight.
//
// The zero value is ready to use.
type Emitter[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

// Subscribe registers fn and returns its unsubscribe function. Calling the
// returned function more than once is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers v to every current subscriber, in subscription order.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]subscriber[T], len(e.subs))
	copy(snapshot, e.subs)
	e.mu.Unlock()

	for _, s := range snapshot {
		// skip listeners removed since the snapshot, or removed by an
		// earlier listener in this very pass
		if !e.subscribed(s.id) {
			continue
		}
		invoke(s.fn, v)
	}
}

func (e *Emitter[T]) subscribed(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of current subscribers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

func invoke[T any](fn func(T), v T) {
	defer func() {
		_ = recover()
	}()
	fn(v)
}
