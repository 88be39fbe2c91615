package mediatest

import (
	"sync"

	"github.com/go-drift/mediasync/pkg/media"
)

// FakeElement is a scriptable playback surface. Control methods behave
// like a real surface (setters fire the matching events), and Emit helpers
// let tests replay the event sequences an engine would produce.
//
// The zero value is not usable; create with NewFakeElement.
type FakeElement struct {
	mu          sync.Mutex
	currentTime float64
	duration    float64
	volume      float64
	rate        float64
	paused      bool
	muted       bool
	ended       bool
	buffered    []media.TimeRange
	source      string

	asyncPlay    bool
	pendingPlays []chan error
	playCalls    int
	pauseCalls   int

	listeners map[int]func(media.Event)
	nextID    int
}

// NewFakeElement returns a paused element with volume 1 and rate 1.
func NewFakeElement() *FakeElement {
	return &FakeElement{
		volume:    1,
		rate:      1,
		paused:    true,
		listeners: make(map[int]func(media.Event)),
	}
}

// fire delivers an event to all listeners. Called without the lock held so
// handlers can read element state.
func (e *FakeElement) fire(ev media.Event) {
	e.mu.Lock()
	fns := make([]func(media.Event), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Listen implements media.Element.
func (e *FakeElement) Listen(handler func(media.Event)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = handler
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// CurrentTime implements media.Element.
func (e *FakeElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTime
}

// SetCurrentTime seeks, firing seeking then seeked like a real surface.
func (e *FakeElement) SetCurrentTime(seconds float64) {
	e.mu.Lock()
	e.currentTime = seconds
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventSeeking})
	e.fire(media.Event{Type: media.EventSeeked})
}

// Duration implements media.Element.
func (e *FakeElement) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// Volume implements media.Element.
func (e *FakeElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume implements media.Element, firing volumechange.
func (e *FakeElement) SetVolume(volume float64) {
	e.mu.Lock()
	e.volume = volume
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventVolumeChange})
}

// Muted implements media.Element.
func (e *FakeElement) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted implements media.Element, firing volumechange.
func (e *FakeElement) SetMuted(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventVolumeChange})
}

// PlaybackRate implements media.Element.
func (e *FakeElement) PlaybackRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetPlaybackRate implements media.Element, firing ratechange.
func (e *FakeElement) SetPlaybackRate(rate float64) {
	e.mu.Lock()
	e.rate = rate
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventRateChange})
}

// Paused implements media.Element.
func (e *FakeElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Ended implements media.Element.
func (e *FakeElement) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ended
}

// Buffered implements media.Element.
func (e *FakeElement) Buffered() []media.TimeRange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffered
}

// SetSource implements media.Element.
func (e *FakeElement) SetSource(src string) {
	e.mu.Lock()
	e.source = src
	e.mu.Unlock()
}

// Play implements media.Element. With SetAsyncPlay(true) it returns a
// channel settled later by ResolvePlay; otherwise play is synchronous and
// returns nil.
func (e *FakeElement) Play() <-chan error {
	e.mu.Lock()
	e.playCalls++
	e.paused = false
	e.ended = false
	async := e.asyncPlay
	var ch chan error
	if async {
		ch = make(chan error, 1)
		e.pendingPlays = append(e.pendingPlays, ch)
	}
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventPlay})
	if async {
		return ch
	}
	return nil
}

// Pause implements media.Element, firing pause.
func (e *FakeElement) Pause() {
	e.mu.Lock()
	e.pauseCalls++
	e.paused = true
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventPause})
}

// SetAsyncPlay selects asynchronous play semantics.
func (e *FakeElement) SetAsyncPlay(async bool) {
	e.mu.Lock()
	e.asyncPlay = async
	e.mu.Unlock()
}

// ResolvePlay settles the oldest in-flight play operation with err.
// It reports whether a play was pending.
func (e *FakeElement) ResolvePlay(err error) bool {
	e.mu.Lock()
	if len(e.pendingPlays) == 0 {
		e.mu.Unlock()
		return false
	}
	ch := e.pendingPlays[0]
	e.pendingPlays = e.pendingPlays[1:]
	e.mu.Unlock()
	ch <- err
	return true
}

// PlayCalls returns how many times Play was invoked.
func (e *FakeElement) PlayCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playCalls
}

// PauseCalls returns how many times Pause was invoked.
func (e *FakeElement) PauseCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pauseCalls
}

// Source returns the last URL passed to SetSource.
func (e *FakeElement) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// SetMediaDuration scripts the duration and fires durationchange.
func (e *FakeElement) SetMediaDuration(seconds float64) {
	e.mu.Lock()
	e.duration = seconds
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventDurationChange})
}

// SetBuffered scripts the buffered ranges without firing an event.
func (e *FakeElement) SetBuffered(ranges ...media.TimeRange) {
	e.mu.Lock()
	e.buffered = ranges
	e.mu.Unlock()
}

// EmitProgress scripts the buffered ranges and fires progress.
func (e *FakeElement) EmitProgress(ranges ...media.TimeRange) {
	e.mu.Lock()
	e.buffered = ranges
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventProgress})
}

// EmitTimeUpdate scripts the position and fires timeupdate.
func (e *FakeElement) EmitTimeUpdate(seconds float64) {
	e.mu.Lock()
	e.currentTime = seconds
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventTimeUpdate})
}

// EmitWaiting fires waiting.
func (e *FakeElement) EmitWaiting() {
	e.fire(media.Event{Type: media.EventWaiting})
}

// EmitCanPlay fires canplay.
func (e *FakeElement) EmitCanPlay() {
	e.fire(media.Event{Type: media.EventCanPlay})
}

// EmitEnded marks playback finished and fires ended.
func (e *FakeElement) EmitEnded() {
	e.mu.Lock()
	e.ended = true
	e.paused = true
	e.mu.Unlock()
	e.fire(media.Event{Type: media.EventEnded})
}

// EmitError fires a terminal surface error.
func (e *FakeElement) EmitError(message string) {
	e.fire(media.Event{Type: media.EventError, Error: message})
}
