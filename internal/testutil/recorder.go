package testutil

import "sync"

// DeprecationRecorder captures deprecation messages emitted by casts.
//
// The engine reports deprecated behavior through an injected callback.
// Tests install Record as that callback and assert on the captured
// messages afterwards.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeprecationRecorder struct {
	mu       sync.Mutex
	messages []string
}

// Record appends a message. Install it as the cast deprecation callback.
func (r *DeprecationRecorder) Record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of everything recorded so far.
func (r *DeprecationRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset clears the recorder for test reuse.
func (r *DeprecationRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
