package keypad

import (
	"sync"
	"time"
)

// DefaultHold is how long a latched key stays down after its last press.
const DefaultHold = 150 * time.Millisecond

// Latch turns press-only key events (terminals never report a release) into
// held key state. A key stays down for Hold after its most recent press and
// autorepeat presses keep extending it.
type Latch struct {
	Hold time.Duration

	mu      sync.Mutex
	expires [NumKeys]time.Time
}

func NewLatch(hold time.Duration) *Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Latch{Hold: hold}
}

func (l *Latch) Press(k int, now time.Time) {
	if k < 0 || k >= NumKeys {
		return
	}
	l.mu.Lock()
	l.expires[k] = now.Add(l.Hold)
	l.mu.Unlock()
}

// Snapshot returns the keys still held at now.
func (l *Latch) Snapshot(now time.Time) [NumKeys]bool {
	var keys [NumKeys]bool
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, exp := range l.expires {
		keys[i] = now.Before(exp)
	}
	return keys
}

func (l *Latch) ReleaseAll() {
	l.mu.Lock()
	l.expires = [NumKeys]time.Time{}
	l.mu.Unlock()
}
