package media

import "slices"

// AutoBitrate is the sentinel bitrate index meaning the streaming adapter
// chooses the quality level itself.
const AutoBitrate = -1

// TimeRange is a contiguous span of media time, in seconds, that has been
// downloaded and is playable.
type TimeRange struct {
	Start float64
	End   float64
}

// Contains reports whether t falls inside the range, bounds inclusive.
func (r TimeRange) Contains(t float64) bool {
	return t >= r.Start && t <= r.End
}

// BitrateInfo describes one rung of the adaptive-bitrate ladder.
// Rungs are addressed by their index in [Snapshot.BitrateInfos].
type BitrateInfo struct {
	Bitrate int
	Width   int
	Height  int
}

// Snapshot is an immutable aggregate of all observable media state at one
// instant. Snapshots are values: every store update produces a new one and
// the previous one is never mutated.
type Snapshot struct {
	// CurrentTime is the playback position in seconds, >= 0.
	CurrentTime float64
	// Seeking is true between the surface's seeking and seeked signals.
	Seeking bool
	// Duration is the media duration in whole seconds. Zero until the
	// surface reports a finite duration.
	Duration float64
	// Volume is the playback volume in [0, 1].
	Volume float64
	// PlaybackRate is the playback speed multiplier, > 0.
	PlaybackRate float64
	Paused       bool
	Muted        bool
	Ended        bool
	// Status is the sole representation of playback readiness.
	Status Status
	// Rotate is the presentation rotation in degrees, normalized to [0, 360).
	Rotate float64
	// Error holds the message of a terminal playback error, if any.
	Error string
	// Buffered holds the playable ranges, sorted ascending and disjoint.
	Buffered []TimeRange
	// AutoBitrateEnabled is true while the adapter picks quality levels.
	AutoBitrateEnabled bool
	// BitrateInfos is the bitrate ladder reported by the adapter.
	BitrateInfos []BitrateInfo
	// CurrentBitrateIndex is the active ladder index, or AutoBitrate.
	CurrentBitrateIndex int
}

// Equal reports whether two snapshots hold the same state.
// Slice fields are compared element-wise.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.CurrentTime == other.CurrentTime &&
		s.Seeking == other.Seeking &&
		s.Duration == other.Duration &&
		s.Volume == other.Volume &&
		s.PlaybackRate == other.PlaybackRate &&
		s.Paused == other.Paused &&
		s.Muted == other.Muted &&
		s.Ended == other.Ended &&
		s.Status == other.Status &&
		s.Rotate == other.Rotate &&
		s.Error == other.Error &&
		s.AutoBitrateEnabled == other.AutoBitrateEnabled &&
		s.CurrentBitrateIndex == other.CurrentBitrateIndex &&
		slices.Equal(s.Buffered, other.Buffered) &&
		slices.Equal(s.BitrateInfos, other.BitrateInfos)
}
