package media

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOptionsNormalizedDefaults(t *testing.T) {
	o := Options{}.normalized()
	if o.LoadingDebounce != DefaultLoadingDebounce {
		t.Errorf("LoadingDebounce = %v, want %v", o.LoadingDebounce, DefaultLoadingDebounce)
	}
	if o.BufferedStartEpsilon != DefaultBufferedStartEpsilon {
		t.Errorf("BufferedStartEpsilon = %v, want %v", o.BufferedStartEpsilon, DefaultBufferedStartEpsilon)
	}
	if o.Scheduler == nil {
		t.Error("expected a default scheduler")
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.LoadingDebounce != DefaultLoadingDebounce {
		t.Errorf("LoadingDebounce = %v, want %v", o.LoadingDebounce, DefaultLoadingDebounce)
	}
	if o.Scheduler == nil {
		t.Error("expected a default scheduler")
	}
}

func TestOptionsNormalizedKeepsOverrides(t *testing.T) {
	o := Options{
		LoadingDebounce:      250 * time.Millisecond,
		BufferedStartEpsilon: 0.5,
	}.normalized()
	if o.LoadingDebounce != 250*time.Millisecond {
		t.Errorf("LoadingDebounce = %v, want 250ms", o.LoadingDebounce)
	}
	if o.BufferedStartEpsilon != 0.5 {
		t.Errorf("BufferedStartEpsilon = %v, want 0.5", o.BufferedStartEpsilon)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	opts, err := LoadOptions(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.LoadingDebounce != 0 || opts.BufferedStartEpsilon != 0 {
		t.Errorf("missing file should yield zero options, got %+v", opts)
	}
}

func TestLoadOptionsParsesFile(t *testing.T) {
	dir := t.TempDir()
	content := "loading_debounce_ms: 500\nbuffered_start_epsilon: 0.25\n"
	if err := os.WriteFile(filepath.Join(dir, "mediasync.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(dir)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.LoadingDebounce != 500*time.Millisecond {
		t.Errorf("LoadingDebounce = %v, want 500ms", opts.LoadingDebounce)
	}
	if opts.BufferedStartEpsilon != 0.25 {
		t.Errorf("BufferedStartEpsilon = %v, want 0.25", opts.BufferedStartEpsilon)
	}
}

func TestLoadOptionsBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mediasync.yaml"), []byte("loading_debounce_ms: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptions(dir); err == nil {
		t.Error("expected parse error for malformed yaml")
	}
}

func TestSystemSchedulerCancel(t *testing.T) {
	fired := make(chan struct{}, 1)
	cancel := systemScheduler{}.AfterFunc(10*time.Millisecond, func() {
		fired <- struct{}{}
	})
	cancel()
	select {
	case <-fired:
		t.Error("cancelled timer should not fire")
	case <-time.After(50 * time.Millisecond):
	}
}
