package domain

import "time"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// KV abstracts the local key-value persistence store. Stats, the mission
// list, and the achievement list are each JSON-serialized under a distinct
// fixed key.
type KV interface {
	// Get returns the value for key, or "" if the key is absent.
	Get(key string) (string, error)

	// Set stores the value for key, overwriting any previous value.
	Set(key, value string) error
}

// Clock abstracts the time source so the engines can be tested with a
// fixed date. Streak arithmetic compares calendar days, not timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
