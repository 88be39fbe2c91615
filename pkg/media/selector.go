package media

import (
	"reflect"
	"sync"
)

// Select subscribes a consumer to a slice of the snapshot. The selector
// runs only when the store reports an actual change, and listeners are
// re-notified only when the newly selected value is not deeply equal to
// the previous one, so a consumer watching CurrentTime is untouched by a
// volume-only update.
//
// A nil selector means "select everything": the Selection carries the full
// [Snapshot] (T must be Snapshot) and re-notifies on every change.
//
// Select panics when called outside an active binding session (nil or
// closed controller); that is a caller bug, not a runtime condition.
// Release the subscription with [Selection.Close].
func Select[T any](c *Controller, selector func(Snapshot) T) *Selection[T] {
	if c == nil {
		panic("media: Select: nil controller (no active binding session)")
	}
	if c.isClosed() {
		panic("media: Select: controller is closed")
	}
	sel := &Selection[T]{
		c:         c,
		selector:  selector,
		listeners: make(map[int]func(T)),
	}
	sel.value = sel.compute(c.store.Snapshot())
	sel.unsub = c.store.Subscribe(sel.onStoreUpdate)
	return sel
}

// Selection is one consumer's memoized view of the snapshot, created by
// [Select]. All methods are safe for concurrent use.
type Selection[T any] struct {
	c        *Controller
	selector func(Snapshot) T
	unsub    func()

	mu        sync.Mutex
	value     T
	listeners map[int]func(T)
	nextID    int
}

func (s *Selection[T]) compute(snap Snapshot) T {
	if s.selector == nil {
		return any(snap).(T)
	}
	return s.selector(snap)
}

// Value returns the most recently selected value.
func (s *Selection[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Controller returns the binding session's controller, giving consumers
// the bound control methods and, through [Controller.Element], the
// playback surface itself.
func (s *Selection[T]) Controller() *Controller {
	return s.c
}

// Listen registers a callback invoked whenever the selected value changes.
// It returns an idempotent unsubscribe function.
func (s *Selection[T]) Listen(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close releases the store subscription. Idempotent.
func (s *Selection[T]) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *Selection[T]) onStoreUpdate(changed bool) {
	if !changed {
		return
	}
	snap := s.c.store.Snapshot()
	next := s.compute(snap)

	s.mu.Lock()
	// An identity selection re-notifies on every change; a real selector
	// only when its slice differs.
	if s.selector != nil && reflect.DeepEqual(next, s.value) {
		s.mu.Unlock()
		return
	}
	s.value = next
	fns := make([]func(T), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}
