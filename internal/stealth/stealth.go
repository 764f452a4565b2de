package stealth

import (
	"math/rand"
	"sync"
	"time"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomDelay returns a random duration in [min, max]
func RandomDelay(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	rngMu.Lock()
	defer rngMu.Unlock()
	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}

// Intn returns a uniform int in [0, n)
func Intn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// Pacer inserts the pauses between UI actions
type Pacer interface {
	Pause(min, max time.Duration)
}

// HumanPacer sleeps for a random duration between min and max
type HumanPacer struct{}

func (HumanPacer) Pause(min, max time.Duration) {
	time.Sleep(RandomDelay(min, max))
}

// NoPause never sleeps
type NoPause struct{}

func (NoPause) Pause(time.Duration, time.Duration) {}

// Window is a min/max pause range
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Pause waits for a duration within w using p
func (w Window) Pause(p Pacer) {
	p.Pause(w.Min, w.Max)
}

// RandomizeUserAgent returns a randomized but realistic user agent
func RandomizeUserAgent() string {
	userAgents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	}

	return userAgents[Intn(len(userAgents))]
}
