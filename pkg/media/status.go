package media

// Status represents playback readiness. Transitions are driven by the
// controller: Loading and CanPlay alternate with readiness detection,
// recoverable adapter faults move to Recovering, and unrecoverable faults
// move to Error, which is terminal for the session.
type Status int

const (
	// StatusLoading indicates the playback position is not buffered and the
	// surface is waiting for data. This is the initial status.
	StatusLoading Status = iota

	// StatusCanPlay indicates the playback position falls inside a buffered
	// range and playback can proceed.
	StatusCanPlay

	// StatusRecovering indicates a fatal but recoverable stream fault is
	// being retried. Readiness events move the status back to CanPlay or
	// Loading once recovery takes effect.
	StatusRecovering

	// StatusError indicates an unrecoverable playback failure. No further
	// automatic recovery happens for the session.
	StatusError
)

// String returns a human-readable label for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusCanPlay:
		return "CanPlay"
	case StatusRecovering:
		return "Recovering"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}
