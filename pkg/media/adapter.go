package media

// ErrorCategory classifies a streaming-adapter fault for the controller's
// recovery policy.
type ErrorCategory int

const (
	// ErrorCategoryOther covers faults that are neither network nor media
	// decode failures. Fatal faults in this category are unrecoverable.
	ErrorCategoryOther ErrorCategory = iota

	// ErrorCategoryNetwork covers segment and manifest delivery failures.
	// Fatal network faults are retried by reloading.
	ErrorCategoryNetwork

	// ErrorCategoryMedia covers decode and buffer-append failures. Fatal
	// media faults are recovered in place.
	ErrorCategoryMedia
)

// String returns a human-readable label for the category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryNetwork:
		return "network"
	case ErrorCategoryMedia:
		return "media"
	default:
		return "other"
	}
}

// AdapterError is a fault reported by the streaming adapter. Only fatal
// errors affect the session; non-fatal errors are the adapter's own
// business and the controller ignores them.
type AdapterError struct {
	Category ErrorCategory
	Fatal    bool
	Message  string
}

// AdapterHandler receives streaming-adapter events. Nil callbacks are
// skipped.
type AdapterHandler struct {
	// OnManifestParsed delivers the bitrate ladder once the manifest has
	// been parsed.
	OnManifestParsed func(levels []BitrateInfo)
	// OnLevelSwitched delivers the active ladder index after a quality
	// switch.
	OnLevelSwitched func(index int)
	// OnError delivers adapter faults.
	OnError func(err AdapterError)
}

// Adapter is the control surface of an external adaptive-streaming engine.
// The controller owns one adapter instance per source: it attaches the
// adapter to the session's element, loads the source through it, and
// destroys it on source change, unrecoverable error, or session end.
//
// Destroy must be idempotent, and every other method must be a no-op after
// Destroy.
type Adapter interface {
	// Attach binds the adapter to the playback surface.
	Attach(el Element) error
	// Load starts loading the given source URL.
	Load(src string) error
	// CurrentLevel returns the active ladder index, or AutoBitrate when
	// the adapter is choosing levels itself.
	CurrentLevel() int
	// SetCurrentLevel requests the given ladder index. Passing AutoBitrate
	// returns level choice to the adapter.
	SetCurrentLevel(index int)
	// StartLoad restarts loading after a fatal network fault.
	StartLoad() error
	// RecoverMediaError attempts in-place recovery from a fatal media
	// decode fault.
	RecoverMediaError() error
	// Destroy releases the adapter's resources.
	Destroy()
	// Listen subscribes to adapter events and returns an unsubscribe
	// function.
	Listen(handler AdapterHandler) (unsubscribe func())
}
