package media

import "testing"

func TestSnapshotEqual(t *testing.T) {
	a := Snapshot{
		CurrentTime: 5,
		Volume:      0.5,
		Buffered:    []TimeRange{{0, 10}},
		BitrateInfos: []BitrateInfo{
			{Bitrate: 800_000, Width: 640, Height: 360},
		},
	}
	b := a
	b.Buffered = []TimeRange{{0, 10}}
	b.BitrateInfos = []BitrateInfo{{Bitrate: 800_000, Width: 640, Height: 360}}

	if !a.Equal(b) {
		t.Error("snapshots with equal slice contents should be equal")
	}

	b.Buffered = []TimeRange{{0, 11}}
	if a.Equal(b) {
		t.Error("snapshots with different buffered ranges should differ")
	}
}

func TestSnapshotEqualScalarField(t *testing.T) {
	a := Snapshot{CurrentTime: 5}
	b := Snapshot{CurrentTime: 6}
	if a.Equal(b) {
		t.Error("snapshots with different CurrentTime should differ")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusLoading, "Loading"},
		{StatusCanPlay, "CanPlay"},
		{StatusRecovering, "Recovering"},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventTimeUpdate.String(); got != "timeupdate" {
		t.Errorf("EventTimeUpdate.String() = %q, want %q", got, "timeupdate")
	}
	if got := EventType(99).String(); got != "unknown" {
		t.Errorf("EventType(99).String() = %q, want %q", got, "unknown")
	}
}

func TestNormalizeRotate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{370, 10},
		{-90, 270},
		{720, 0},
	}
	for _, tt := range tests {
		if got := normalizeRotate(tt.in); got != tt.want {
			t.Errorf("normalizeRotate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
