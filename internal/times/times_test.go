package times

import (
	"testing"
	"time"
)

func TestFormatETA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "02:03:04"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.in); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWaitTimeCancelled(t *testing.T) {
	t.Parallel()

	cancel := make(chan struct{})
	close(cancel)
	if WaitTime(SystemClock{}, time.Hour, cancel) {
		t.Fatalf("expected WaitTime to report cancellation")
	}
}

func TestWaitTimeElapses(t *testing.T) {
	t.Parallel()

	if !WaitTime(SystemClock{}, time.Millisecond, nil) {
		t.Fatalf("expected WaitTime to complete")
	}
	if !WaitTime(nil, 0, nil) {
		t.Fatalf("zero wait should complete immediately")
	}
}
