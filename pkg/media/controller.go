package media

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-drift/mediasync/pkg/errors"
)

// Controller binds a playback surface to a [Store] for one session. It
// folds surface and streaming-adapter events into snapshot updates and
// turns control intents into surface operations, handling the surface
// quirks that would otherwise leak into consumers: transiently infinite
// durations, slightly nonzero first-segment starts, sub-second rebuffers,
// and interruptible asynchronous play operations.
//
// Create with [NewController], load a source with [Controller.Load], and
// release the session with [Controller.Close]. Close is idempotent and
// tears down the streaming adapter on every exit path.
//
// All methods are safe for concurrent use.
type Controller struct {
	opts  Options
	store *Store
	el    Element

	mu            sync.Mutex
	adapter       Adapter
	adapterUnsub  func()
	elementUnsub  func()
	loadingCancel func()
	pendingPlay   <-chan error
	wantPaused    bool
	source        string
	closed        bool
}

// NewController creates a controller bound to the given playback surface
// and subscribes to its event stream immediately, so no events are missed.
// It panics on a nil element: binding without a surface is a caller bug.
func NewController(el Element, opts Options) *Controller {
	if el == nil {
		panic("media: NewController: nil element")
	}
	c := &Controller{
		el:   el,
		opts: opts.normalized(),
	}
	c.store = NewStore(c.opts.Defaults)
	c.elementUnsub = el.Listen(c.handleEvent)
	return c
}

// Store returns the session's state store.
func (c *Controller) Store() *Store {
	return c.store
}

// Snapshot returns the current snapshot.
func (c *Controller) Snapshot() Snapshot {
	return c.store.Snapshot()
}

// Element returns the bound playback surface, for attaching to a
// presentation layer.
func (c *Controller) Element() Element {
	return c.el
}

// Load starts a new source. Any previous streaming adapter is torn down
// first, then a fresh adapter is attached and loaded; without an adapter
// factory the source is set directly on the element. Per-source snapshot
// state (status, error, buffered ranges, bitrate ladder) is reset.
func (c *Controller) Load(src string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.teardownAdapterLocked()
	var a Adapter
	if c.opts.NewAdapter != nil {
		a = c.opts.NewAdapter()
		c.adapter = a
		c.adapterUnsub = a.Listen(c.adapterHandler(a))
	}
	c.source = src
	c.mu.Unlock()

	c.cancelLoadingTimer()
	c.store.Update(Patch{
		Status:              Ptr(StatusLoading),
		Error:               Ptr(""),
		Ended:               Ptr(false),
		Seeking:             Ptr(false),
		Buffered:            []TimeRange{},
		BitrateInfos:        []BitrateInfo{},
		CurrentBitrateIndex: Ptr(AutoBitrate),
		AutoBitrateEnabled:  Ptr(true),
	})

	if a == nil {
		c.el.SetSource(src)
		return nil
	}
	if err := a.Attach(c.el); err != nil {
		werr := fmt.Errorf("attach adapter: %w", err)
		c.abortLoad(a, werr)
		return werr
	}
	if err := a.Load(src); err != nil {
		werr := fmt.Errorf("load source: %w", err)
		c.abortLoad(a, werr)
		return werr
	}
	return nil
}

// abortLoad tears down an adapter whose attach or load failed and fails the
// session, so it does not sit in Loading against a dead engine. A later Load
// resets the status.
func (c *Controller) abortLoad(a Adapter, err error) {
	c.mu.Lock()
	if c.adapter == a {
		c.teardownAdapterLocked()
	}
	c.mu.Unlock()
	c.store.Update(Patch{Status: Ptr(StatusError), Error: Ptr(err.Error())})
}

// SetCurrentTime seeks to the given position, clamped to [0, duration].
// With no known duration only the lower bound applies.
func (c *Controller) SetCurrentTime(seconds float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	if seconds < 0 {
		seconds = 0
	}
	if d := c.store.Snapshot().Duration; d > 0 && seconds > d {
		seconds = d
	}
	c.el.SetCurrentTime(seconds)
	return nil
}

// SetVolume sets the volume, clamped to [0, 1].
func (c *Controller) SetVolume(volume float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.el.SetVolume(clamp01(volume))
	return nil
}

// SetMuted mutes or unmutes audio.
func (c *Controller) SetMuted(muted bool) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.el.SetMuted(muted)
	return nil
}

// SetPlaybackRate sets the playback speed. Non-positive rates are outside
// the valid domain and are ignored.
func (c *Controller) SetPlaybackRate(rate float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	if rate <= 0 {
		return nil
	}
	c.el.SetPlaybackRate(rate)
	return nil
}

// SetRotate sets the presentation rotation, normalized to [0, 360).
// Rotation lives only in the snapshot; the presentation layer applies it.
func (c *Controller) SetRotate(degrees float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.store.Update(Patch{Rotate: Ptr(normalizeRotate(degrees))})
	return nil
}

// SetPaused requests a paused or playing transport state.
//
// The surface's play operation can be asynchronous and is interrupted if
// pause is issued before it settles, so a pause requested while a play is
// outstanding waits for that play to settle and then re-checks the most
// recently requested paused-state before issuing the native pause. A later
// play request therefore supersedes a pending pause. Surfaces with
// synchronous play semantics pause immediately.
func (c *Controller) SetPaused(paused bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.wantPaused = paused
	if paused {
		pending := c.pendingPlay
		c.mu.Unlock()
		if pending == nil {
			c.el.Pause()
		}
		// Otherwise settlePlay issues the pause once the play settles.
		return nil
	}
	c.mu.Unlock()

	// The surface call runs unlocked: surfaces may deliver events
	// synchronously from Play.
	if ch := c.el.Play(); ch != nil {
		c.mu.Lock()
		c.pendingPlay = ch
		c.mu.Unlock()
		go c.settlePlay(ch)
	}
	return nil
}

// settlePlay waits for an asynchronous play operation and applies any
// pause requested while it was in flight.
func (c *Controller) settlePlay(ch <-chan error) {
	err := <-ch

	if err != nil {
		c.mu.Lock()
		source := c.source
		c.mu.Unlock()
		errors.Report(&errors.SyncError{
			Op:     "media.Controller.play",
			Kind:   errors.KindElement,
			Source: source,
			Err:    err,
		})
	}

	// Claim the settled play and decide on the pause in one critical
	// section: a newer play request (including one issued from the error
	// handler above) replaces pendingPlay and must win over the stale
	// pause intent.
	c.mu.Lock()
	if c.pendingPlay != ch || c.closed {
		c.mu.Unlock()
		return
	}
	c.pendingPlay = nil
	paused := c.wantPaused
	c.mu.Unlock()

	if paused {
		c.el.Pause()
	}
}

// SetBitrateIndex requests an explicit ladder index, disabling automatic
// bitrate selection. The adapter is only asked to switch when the index
// differs from its active level. Passing [AutoBitrate] returns level
// choice to the adapter.
func (c *Controller) SetBitrateIndex(index int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	a := c.adapter
	c.mu.Unlock()
	if a == nil {
		return ErrNoAdapter
	}
	if index == AutoBitrate {
		c.store.Update(Patch{
			AutoBitrateEnabled:  Ptr(true),
			CurrentBitrateIndex: Ptr(AutoBitrate),
		})
		a.SetCurrentLevel(AutoBitrate)
		return nil
	}
	c.store.Update(Patch{AutoBitrateEnabled: Ptr(false)})
	if index != a.CurrentLevel() {
		a.SetCurrentLevel(index)
	}
	return nil
}

// Close ends the binding session: the loading timer is cancelled, the
// element subscription removed, and the streaming adapter destroyed.
// Close is idempotent. The store remains readable after Close; control
// methods return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel := c.loadingCancel
	c.loadingCancel = nil
	unsub := c.elementUnsub
	c.elementUnsub = nil
	c.teardownAdapterLocked()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if unsub != nil {
		unsub()
	}
}

func (c *Controller) guard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// handleEvent translates one surface event into store updates. Current
// values are read back from the element, mirroring how the surface itself
// is the source of truth for everything but rotation and bitrate state.
func (c *Controller) handleEvent(ev Event) {
	switch ev.Type {
	case EventTimeUpdate:
		c.store.Update(Patch{CurrentTime: Ptr(math.Max(0, c.el.CurrentTime()))})
	case EventDurationChange, EventLoadedMetadata:
		// Some streams report an infinite duration until enough of the
		// manifest has loaded; accepting it would make any duration
		// display flicker. Rounding avoids sub-second jitter.
		if d := c.el.Duration(); !math.IsInf(d, 0) && !math.IsNaN(d) {
			c.store.Update(Patch{Duration: Ptr(math.Round(d))})
		}
	case EventRateChange:
		c.store.Update(Patch{PlaybackRate: Ptr(c.el.PlaybackRate())})
	case EventVolumeChange:
		c.store.Update(Patch{
			Volume: Ptr(c.el.Volume()),
			Muted:  Ptr(c.el.Muted()),
		})
	case EventPlay:
		c.store.Update(Patch{Paused: Ptr(false), Ended: Ptr(false)})
	case EventPause:
		c.store.Update(Patch{Paused: Ptr(true)})
	case EventEnded:
		c.store.Update(Patch{Paused: Ptr(true), Ended: Ptr(true)})
	case EventCanPlay:
		c.cancelLoadingTimer()
		c.setStatus(StatusCanPlay)
	case EventWaiting:
		c.checkReadiness(true)
	case EventSeeking:
		c.store.Update(Patch{
			Seeking:     Ptr(true),
			CurrentTime: Ptr(math.Max(0, c.el.CurrentTime())),
		})
		c.checkReadiness(true)
	case EventSeeked:
		c.store.Update(Patch{
			Seeking:     Ptr(false),
			CurrentTime: Ptr(math.Max(0, c.el.CurrentTime())),
		})
		c.checkReadiness(false)
	case EventProgress:
		buf := normalizeBuffered(c.el.Buffered(), c.opts.BufferedStartEpsilon)
		if buf == nil {
			buf = []TimeRange{}
		}
		c.store.Update(Patch{Buffered: buf})
		c.checkReadiness(false)
	case EventError:
		c.cancelLoadingTimer()
		c.store.Update(Patch{Status: Ptr(StatusError), Error: Ptr(ev.Error)})
	}
}

// checkReadiness applies the readiness rules: a playable position cancels
// any pending transition and moves to CanPlay immediately; an unplayable
// position schedules the debounced drop to Loading only for stall signals
// (seeking, waiting), so transient gaps seen on progress don't flash a
// loading indicator.
func (c *Controller) checkReadiness(scheduleIfStalled bool) {
	snap := c.store.Snapshot()
	if snap.Status == StatusError {
		return
	}
	if isPlayable(c.el.CurrentTime(), snap.Buffered) {
		c.cancelLoadingTimer()
		c.setStatus(StatusCanPlay)
		return
	}
	if scheduleIfStalled {
		c.scheduleLoading()
	}
}

func (c *Controller) scheduleLoading() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.loadingCancel
	c.loadingCancel = c.opts.Scheduler.AfterFunc(c.opts.LoadingDebounce, c.loadingElapsed)
	c.mu.Unlock()
	if prev != nil {
		prev()
	}
}

func (c *Controller) loadingElapsed() {
	c.mu.Lock()
	c.loadingCancel = nil
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	snap := c.store.Snapshot()
	if snap.Status == StatusError {
		return
	}
	// A qualifying readiness event cancels the timer, but re-check in case
	// buffering caught up without one.
	if isPlayable(c.el.CurrentTime(), snap.Buffered) {
		return
	}
	c.setStatus(StatusLoading)
}

func (c *Controller) cancelLoadingTimer() {
	c.mu.Lock()
	cancel := c.loadingCancel
	c.loadingCancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// setStatus updates the status unless the session has already failed
// terminally.
func (c *Controller) setStatus(status Status) {
	if c.store.Snapshot().Status == StatusError {
		return
	}
	c.store.Update(Patch{Status: Ptr(status)})
}

// adapterHandler wires one adapter instance's events into the store. Each
// callback checks that the instance is still current, so a torn-down
// adapter draining its queue cannot touch the new source's state.
func (c *Controller) adapterHandler(a Adapter) AdapterHandler {
	return AdapterHandler{
		OnManifestParsed: func(levels []BitrateInfo) {
			if !c.isCurrentAdapter(a) {
				return
			}
			// Engines may reuse the slice they report; copy so the ladder
			// in the snapshot stays immutable.
			ladder := make([]BitrateInfo, len(levels))
			copy(ladder, levels)
			c.store.Update(Patch{BitrateInfos: ladder})
		},
		OnLevelSwitched: func(index int) {
			if !c.isCurrentAdapter(a) {
				return
			}
			c.store.Update(Patch{CurrentBitrateIndex: Ptr(index)})
		},
		OnError: func(err AdapterError) {
			c.handleAdapterError(a, err)
		},
	}
}

func (c *Controller) isCurrentAdapter(a Adapter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter == a
}

// handleAdapterError applies the three-way recovery policy: fatal network
// faults retry the load, fatal media faults recover in place (both surface
// only as a transient Recovering status), and any other fatal fault tears
// the adapter down and fails the session. Non-fatal faults are ignored.
func (c *Controller) handleAdapterError(a Adapter, aerr AdapterError) {
	if !aerr.Fatal || !c.isCurrentAdapter(a) {
		return
	}
	switch aerr.Category {
	case ErrorCategoryNetwork:
		c.setStatus(StatusRecovering)
		if err := a.StartLoad(); err != nil {
			c.reportAdapter("media.Controller.retryLoad", err)
		}
	case ErrorCategoryMedia:
		c.setStatus(StatusRecovering)
		if err := a.RecoverMediaError(); err != nil {
			c.reportAdapter("media.Controller.recoverMedia", err)
		}
	default:
		c.mu.Lock()
		c.teardownAdapterLocked()
		c.mu.Unlock()
		c.cancelLoadingTimer()
		c.store.Update(Patch{Status: Ptr(StatusError), Error: Ptr(aerr.Message)})
		c.reportAdapter("media.Controller.adapterError", fmt.Errorf("fatal %s error: %s", aerr.Category, aerr.Message))
	}
}

func (c *Controller) reportAdapter(op string, err error) {
	c.mu.Lock()
	source := c.source
	c.mu.Unlock()
	errors.Report(&errors.SyncError{
		Op:     op,
		Kind:   errors.KindAdapter,
		Source: source,
		Err:    err,
	})
}

// teardownAdapterLocked destroys the current adapter, if any. Idempotent.
// Callers must hold c.mu.
func (c *Controller) teardownAdapterLocked() {
	if c.adapter == nil {
		return
	}
	if c.adapterUnsub != nil {
		c.adapterUnsub()
		c.adapterUnsub = nil
	}
	a := c.adapter
	c.adapter = nil
	a.Destroy()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeRotate maps any angle onto [0, 360).
func normalizeRotate(degrees float64) float64 {
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	return r
}
