package chatclient

import (
	"sync"
	"time"
)

// DefaultQuietInterval is how long without a keystroke the typing
// indicator stays visible.
const DefaultQuietInterval = 1500 * time.Millisecond

// TypingIndicator is purely local UI state: a keystroke shows it and
// resets the timer, a quiet interval clears it. Nothing is synchronized
// to other participants.
type TypingIndicator struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
	on    bool
}

func NewTypingIndicator(quiet time.Duration) *TypingIndicator {
	if quiet <= 0 {
		quiet = DefaultQuietInterval
	}
	return &TypingIndicator{quiet: quiet}
}

func (t *TypingIndicator) Keystroke() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.on = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.quiet, func() {
		t.mu.Lock()
		t.on = false
		t.mu.Unlock()
	})
}

func (t *TypingIndicator) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

// Stop cancels the pending clear; call it when the widget unmounts.
func (t *TypingIndicator) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.on = false
}
