//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// HostTime is a host tick source. It is driven either from wall-clock time
// (Step) or manually (Advance).
type HostTime struct {
	mu  sync.Mutex
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *HostTime {
	return &HostTime{ch: make(chan uint64, 1024)}
}

func (t *HostTime) Ticks() <-chan uint64 { return t.ch }

// Now returns the last issued tick.
func (t *HostTime) Now() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// Step issues as many 1ms ticks as wall-clock time elapsed since the last call.
func (t *HostTime) Step() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

// Advance issues n ticks.
func (t *HostTime) Advance(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stepN(n)
}

func (t *HostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
