package mediatest

import (
	"sync"

	"github.com/go-drift/mediasync/pkg/media"
)

// FakeAdapter is a scriptable streaming adapter. It records control calls
// for assertions and replays engine events through Emit helpers. After
// Destroy, every control method is a no-op, matching the contract real
// engines honor.
type FakeAdapter struct {
	// AttachErr and LoadErr, when set, are returned by Attach and Load.
	AttachErr error
	LoadErr   error

	mu             sync.Mutex
	attached       media.Element
	source         string
	level          int
	destroyed      bool
	levelRequests  []int
	startLoadCalls int
	recoverCalls   int

	handlers map[int]media.AdapterHandler
	nextID   int
}

// NewFakeAdapter returns an adapter in automatic level-selection mode.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		level:    media.AutoBitrate,
		handlers: make(map[int]media.AdapterHandler),
	}
}

// Attach implements media.Adapter.
func (a *FakeAdapter) Attach(el media.Element) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil
	}
	if a.AttachErr != nil {
		return a.AttachErr
	}
	a.attached = el
	return nil
}

// Load implements media.Adapter.
func (a *FakeAdapter) Load(src string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil
	}
	if a.LoadErr != nil {
		return a.LoadErr
	}
	a.source = src
	return nil
}

// CurrentLevel implements media.Adapter.
func (a *FakeAdapter) CurrentLevel() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// SetCurrentLevel implements media.Adapter, recording the request.
func (a *FakeAdapter) SetCurrentLevel(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return
	}
	a.levelRequests = append(a.levelRequests, index)
	a.level = index
}

// StartLoad implements media.Adapter.
func (a *FakeAdapter) StartLoad() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil
	}
	a.startLoadCalls++
	return nil
}

// RecoverMediaError implements media.Adapter.
func (a *FakeAdapter) RecoverMediaError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil
	}
	a.recoverCalls++
	return nil
}

// Destroy implements media.Adapter. Idempotent.
func (a *FakeAdapter) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyed = true
}

// Listen implements media.Adapter.
func (a *FakeAdapter) Listen(handler media.AdapterHandler) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.handlers[id] = handler
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		delete(a.handlers, id)
		a.mu.Unlock()
	}
}

func (a *FakeAdapter) snapshotHandlers() []media.AdapterHandler {
	a.mu.Lock()
	defer a.mu.Unlock()
	hs := make([]media.AdapterHandler, 0, len(a.handlers))
	for _, h := range a.handlers {
		hs = append(hs, h)
	}
	return hs
}

// EmitManifestParsed replays a manifest-parsed event with the given ladder.
func (a *FakeAdapter) EmitManifestParsed(levels ...media.BitrateInfo) {
	for _, h := range a.snapshotHandlers() {
		if h.OnManifestParsed != nil {
			h.OnManifestParsed(levels)
		}
	}
}

// EmitLevelSwitched replays a level-switch event and records the new
// active level.
func (a *FakeAdapter) EmitLevelSwitched(index int) {
	a.mu.Lock()
	a.level = index
	a.mu.Unlock()
	for _, h := range a.snapshotHandlers() {
		if h.OnLevelSwitched != nil {
			h.OnLevelSwitched(index)
		}
	}
}

// EmitError replays an adapter fault.
func (a *FakeAdapter) EmitError(err media.AdapterError) {
	for _, h := range a.snapshotHandlers() {
		if h.OnError != nil {
			h.OnError(err)
		}
	}
}

// Destroyed reports whether Destroy has been called.
func (a *FakeAdapter) Destroyed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyed
}

// Attached returns the element passed to Attach, or nil.
func (a *FakeAdapter) Attached() media.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attached
}

// Source returns the last URL passed to Load.
func (a *FakeAdapter) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

// LevelRequests returns every index passed to SetCurrentLevel, in order.
func (a *FakeAdapter) LevelRequests() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.levelRequests...)
}

// StartLoadCalls returns how many times StartLoad was invoked.
func (a *FakeAdapter) StartLoadCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startLoadCalls
}

// RecoverCalls returns how many times RecoverMediaError was invoked.
func (a *FakeAdapter) RecoverCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recoverCalls
}
