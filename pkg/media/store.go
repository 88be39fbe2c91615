package media

import (
	"sync"

	"github.com/go-drift/mediasync/pkg/errors"
)

// Store holds the current [Snapshot] for one binding session and fans out
// change notifications. It is a pure aggregator: updates are merged without
// validation, and listeners are invoked synchronously, in the order updates
// were issued, after the merge completes. A listener therefore always
// observes the fully merged snapshot, never an intermediate one.
//
// Listeners may issue updates themselves (a subscriber reacting to a change
// with a control intent is the normal consumer pattern). An update issued
// while a notification pass is running is queued and applied, in order,
// before the outermost Update returns.
//
// All methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listeners []*storeListener

	// queueMu guards the patch queue. The goroutine that finds the queue
	// idle drains it; everyone else enqueues and returns. No lock is held
	// while listeners run, so reentrant updates cannot deadlock.
	queueMu  sync.Mutex
	pending  []Patch
	draining bool
}

type storeListener struct {
	fn func(changed bool)
}

// NewStore creates a store whose snapshot starts from the library defaults
// (volume 1, rate 1, paused, loading, auto bitrate) with the caller's
// defaults merged on top. Use the defaults patch for values known before
// the surface reports them, such as a duration taken from a manifest.
func NewStore(defaults Patch) *Store {
	base := Snapshot{
		Volume:              1,
		PlaybackRate:        1,
		Paused:              true,
		Status:              StatusLoading,
		AutoBitrateEnabled:  true,
		CurrentBitrateIndex: AutoBitrate,
	}
	defaults.apply(&base)
	return &Store{snapshot: base}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Update merges the patch into the current snapshot and notifies every
// subscriber with a flag reporting whether the merge changed anything.
//
// When called from inside a listener, the patch is queued and applied after
// the in-flight notification pass completes; the outermost Update drains
// the queue before returning.
func (s *Store) Update(patch Patch) {
	s.queueMu.Lock()
	s.pending = append(s.pending, patch)
	if s.draining {
		s.queueMu.Unlock()
		return
	}
	s.draining = true
	s.queueMu.Unlock()

	for {
		s.queueMu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.queueMu.Unlock()
			return
		}
		p := s.pending[0]
		s.pending = s.pending[1:]
		s.queueMu.Unlock()

		s.mu.Lock()
		next := s.snapshot
		p.apply(&next)
		changed := !next.Equal(s.snapshot)
		s.snapshot = next
		listeners := make([]*storeListener, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		for _, l := range listeners {
			notify(l, changed)
		}
	}
}

// notify invokes a single listener, containing any panic so one misbehaving
// subscriber cannot break the others.
func notify(l *storeListener, changed bool) {
	defer errors.Recover("media.Store.notify")
	if l.fn != nil {
		l.fn(changed)
	}
}

// Subscribe registers a listener invoked after every Update call and
// returns an unsubscribe function. The unsubscribe function is idempotent.
func (s *Store) Subscribe(fn func(changed bool)) (unsubscribe func()) {
	l := &storeListener{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, cur := range s.listeners {
				if cur == l {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					break
				}
			}
		})
	}
}
