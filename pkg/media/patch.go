package media

// Patch is a partial snapshot. Nil fields are left unchanged by
// [Store.Update]; non-nil fields overwrite the current value. Slice fields
// use nil for "unchanged" and an empty slice to clear.
//
// The store performs no validation on patched values; producers (the
// controller's setters and event handlers) clamp and normalize before
// patching.
type Patch struct {
	CurrentTime         *float64
	Seeking             *bool
	Duration            *float64
	Volume              *float64
	PlaybackRate        *float64
	Paused              *bool
	Muted               *bool
	Ended               *bool
	Status              *Status
	Rotate              *float64
	Error               *string
	Buffered            []TimeRange
	AutoBitrateEnabled  *bool
	BitrateInfos        []BitrateInfo
	CurrentBitrateIndex *int
}

// Ptr returns a pointer to v, for building patches inline:
//
//	store.Update(media.Patch{Volume: media.Ptr(0.5)})
func Ptr[T any](v T) *T {
	return &v
}

// apply merges the patch into s.
func (p Patch) apply(s *Snapshot) {
	if p.CurrentTime != nil {
		s.CurrentTime = *p.CurrentTime
	}
	if p.Seeking != nil {
		s.Seeking = *p.Seeking
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Volume != nil {
		s.Volume = *p.Volume
	}
	if p.PlaybackRate != nil {
		s.PlaybackRate = *p.PlaybackRate
	}
	if p.Paused != nil {
		s.Paused = *p.Paused
	}
	if p.Muted != nil {
		s.Muted = *p.Muted
	}
	if p.Ended != nil {
		s.Ended = *p.Ended
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Rotate != nil {
		s.Rotate = *p.Rotate
	}
	if p.Error != nil {
		s.Error = *p.Error
	}
	if p.Buffered != nil {
		s.Buffered = p.Buffered
	}
	if p.AutoBitrateEnabled != nil {
		s.AutoBitrateEnabled = *p.AutoBitrateEnabled
	}
	if p.BitrateInfos != nil {
		s.BitrateInfos = p.BitrateInfos
	}
	if p.CurrentBitrateIndex != nil {
		s.CurrentBitrateIndex = *p.CurrentBitrateIndex
	}
}
