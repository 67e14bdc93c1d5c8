// Package prefs persists small client-local values across sessions: the last
// selected organization, the onboarding flag, and cached response snapshots
// served when the backend is unreachable. Two backends are provided: SQLite
// for the normal single-machine case and Redis for shared or ephemeral
// environments.
//
// The store is an availability aid, not a source of truth. Callers are
// expected to tolerate read and write failures by logging and continuing
// with defaults.
package prefs

import "context"

// Store is a string key-value store with explicit absence.
type Store interface {
	// Get returns the value for key; the second return is false when the
	// key is not present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
