package media

// EventType identifies a playback-surface event.
type EventType int

const (
	// EventTimeUpdate fires as the playback position advances.
	EventTimeUpdate EventType = iota
	// EventDurationChange fires when the surface learns the media duration.
	EventDurationChange
	// EventLoadedMetadata fires once track metadata (including duration)
	// becomes available.
	EventLoadedMetadata
	// EventRateChange fires when the playback rate changes.
	EventRateChange
	// EventVolumeChange fires when the volume or mute flag changes.
	EventVolumeChange
	// EventPlay fires when playback starts or resumes.
	EventPlay
	// EventPause fires when playback pauses.
	EventPause
	// EventEnded fires when playback reaches the end of the media.
	EventEnded
	// EventCanPlay fires when the surface has enough data to play.
	EventCanPlay
	// EventWaiting fires when playback stalls for lack of data.
	EventWaiting
	// EventSeeking fires when a seek begins.
	EventSeeking
	// EventSeeked fires when a seek completes.
	EventSeeked
	// EventProgress fires as more media data is buffered.
	EventProgress
	// EventError fires on a terminal surface-level playback failure.
	EventError
)

// String returns the conventional lower-case event name.
func (t EventType) String() string {
	switch t {
	case EventTimeUpdate:
		return "timeupdate"
	case EventDurationChange:
		return "durationchange"
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventRateChange:
		return "ratechange"
	case EventVolumeChange:
		return "volumechange"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventCanPlay:
		return "canplay"
	case EventWaiting:
		return "waiting"
	case EventSeeking:
		return "seeking"
	case EventSeeked:
		return "seeked"
	case EventProgress:
		return "progress"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one playback-surface notification. The controller reads current
// values (time, duration, buffered ranges) from the element when handling
// an event, so Event itself carries only the type and, for EventError, a
// message.
type Event struct {
	Type EventType
	// Error carries the failure message for EventError.
	Error string
}

// Element is the playback surface a [Controller] owns for a binding
// session: a native player, a browser media element behind a bridge, or a
// test fake. Implementations must deliver events from a single goroutine.
type Element interface {
	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64
	// SetCurrentTime seeks to the given position in seconds.
	SetCurrentTime(seconds float64)
	// Duration returns the media duration in seconds. Surfaces may report
	// +Inf or NaN before (or instead of) a real duration; the controller
	// ignores those values.
	Duration() float64
	// Volume returns the current volume in [0, 1].
	Volume() float64
	// SetVolume sets the volume. The controller clamps before calling.
	SetVolume(volume float64)
	// Muted reports whether audio is muted.
	Muted() bool
	// SetMuted mutes or unmutes audio.
	SetMuted(muted bool)
	// PlaybackRate returns the playback speed multiplier.
	PlaybackRate() float64
	// SetPlaybackRate sets the playback speed multiplier.
	SetPlaybackRate(rate float64)
	// Paused reports whether playback is paused.
	Paused() bool
	// Ended reports whether playback has reached the end of the media.
	Ended() bool
	// Buffered returns the downloaded time ranges. Ranges may arrive
	// unsorted or overlapping; the controller normalizes them.
	Buffered() []TimeRange
	// SetSource points the surface directly at a media URL. Sessions with
	// a streaming adapter load through the adapter instead.
	SetSource(src string)
	// Play starts or resumes playback. Surfaces with asynchronous play
	// semantics return a channel that yields the operation's result once
	// it settles; surfaces with synchronous semantics return nil.
	Play() <-chan error
	// Pause pauses playback immediately.
	Pause()
	// Listen subscribes to the surface's event stream and returns an
	// unsubscribe function.
	Listen(handler func(Event)) (unsubscribe func())
}
