// Package resource coordinates server-backed state. Each entity type gets one
// Coordinator whose identity is a resource key computed from the current
// navigation context plus local filter state. A key change invalidates the
// old fetch and triggers exactly one new fetch; responses arriving for a key
// that is no longer current are dropped. Mutations publish entity-change
// events that fan out into reloads of every coordinator whose output could be
// affected.
package resource

// Key identifies what a coordinator should be fetching, typically a request
// path-and-query string. The zero Key is the "do not fetch" sentinel used
// when one or more required context identifiers are absent.
type Key string

// NoFetch is the sentinel key meaning required identifiers are missing and no
// request should be issued.
const NoFetch Key = ""

// IsZero reports whether the key is the no-fetch sentinel.
func (k Key) IsZero() bool { return k == NoFetch }
