package stealth

import (
	"strings"
	"testing"
	"time"
)

func TestRandomDelayBounds(t *testing.T) {
	min, max := 2*time.Second, 5*time.Second
	for i := 0; i < 1000; i++ {
		d := RandomDelay(min, max)
		if d < min || d > max {
			t.Fatalf("delay %s outside [%s, %s]", d, min, max)
		}
	}
}

func TestRandomDelayDegenerateRange(t *testing.T) {
	if d := RandomDelay(3*time.Second, 3*time.Second); d != 3*time.Second {
		t.Fatalf("expected 3s, got %s", d)
	}
	if d := RandomDelay(5*time.Second, time.Second); d != 5*time.Second {
		t.Fatalf("expected min when max < min, got %s", d)
	}
}

func TestNoPauseReturnsImmediately(t *testing.T) {
	start := time.Now()
	Window{Min: time.Hour, Max: 2 * time.Hour}.Pause(NoPause{})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("NoPause slept")
	}
}

type recordingPacer struct {
	calls []Window
}

func (r *recordingPacer) Pause(min, max time.Duration) {
	r.calls = append(r.calls, Window{Min: min, Max: max})
}

func TestWindowPausePassesRange(t *testing.T) {
	p := &recordingPacer{}
	Window{Min: time.Second, Max: 2 * time.Second}.Pause(p)
	if len(p.calls) != 1 || p.calls[0].Min != time.Second || p.calls[0].Max != 2*time.Second {
		t.Fatalf("unexpected calls: %+v", p.calls)
	}
}

func TestRandomizeUserAgent(t *testing.T) {
	if ua := RandomizeUserAgent(); !strings.HasPrefix(ua, "Mozilla/5.0") {
		t.Fatalf("unexpected user agent %q", ua)
	}
}
