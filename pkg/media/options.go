package media

import (
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLoadingDebounce is how long the playback position may sit
	// outside the buffered ranges before the status drops to Loading.
	// Sub-second rebuffers resolve inside the window and never surface.
	DefaultLoadingDebounce = time.Second

	// DefaultBufferedStartEpsilon is the distance from zero, in seconds,
	// within which the first buffered range's start is floored to 0.
	DefaultBufferedStartEpsilon = 0.1
)

// Scheduler abstracts timer creation so the loading debounce can be driven
// deterministically in tests. The zero Options uses the system scheduler.
type Scheduler interface {
	// AfterFunc runs fn after d elapses and returns a cancel function.
	// Cancel must be a no-op once fn has started.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Options configures a [Controller]. The zero value is usable; empty
// tunables fall back to the defaults above.
type Options struct {
	// LoadingDebounce overrides DefaultLoadingDebounce.
	LoadingDebounce time.Duration
	// BufferedStartEpsilon overrides DefaultBufferedStartEpsilon.
	BufferedStartEpsilon float64
	// Defaults is merged into the initial snapshot, for values known
	// before the surface reports them (e.g. a duration from a manifest).
	Defaults Patch
	// NewAdapter builds a streaming adapter per loaded source. When nil,
	// Load points the element directly at the source URL.
	NewAdapter func() Adapter
	// Scheduler overrides the timer source. Nil means real timers.
	Scheduler Scheduler
}

// DefaultOptions returns an Options with every tunable set to its default.
func DefaultOptions() Options {
	return Options{}.normalized()
}

// normalized fills in defaults for unset tunables.
func (o Options) normalized() Options {
	if o.LoadingDebounce <= 0 {
		o.LoadingDebounce = DefaultLoadingDebounce
	}
	if o.BufferedStartEpsilon <= 0 {
		o.BufferedStartEpsilon = DefaultBufferedStartEpsilon
	}
	if o.Scheduler == nil {
		o.Scheduler = systemScheduler{}
	}
	return o
}

// fileOptions is the on-disk shape of mediasync.yaml.
type fileOptions struct {
	LoadingDebounceMs    int     `yaml:"loading_debounce_ms,omitempty"`
	BufferedStartEpsilon float64 `yaml:"buffered_start_epsilon,omitempty"`
}

// LoadOptions reads mediasync.yaml from dir if present. The debounce delay
// and buffered-start epsilon are empirically tuned workarounds for specific
// engines, so deployments can adjust them without code changes. A missing
// file yields zero Options (library defaults).
func LoadOptions(dir string) (Options, error) {
	path := filepath.Join(dir, "mediasync.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("failed to read mediasync.yaml: %w", err)
	}

	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Options{}, fmt.Errorf("failed to parse mediasync.yaml: %w", err)
	}

	return Options{
		LoadingDebounce:      time.Duration(f.LoadingDebounceMs) * time.Millisecond,
		BufferedStartEpsilon: f.BufferedStartEpsilon,
	}, nil
}
