package resource

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/navigation"
)

// State is a coordinator's position in its lifecycle.
type State int

const (
	// StateIdle means the key is the no-fetch sentinel; nothing is or will
	// be fetched until the context supplies the required identifiers.
	StateIdle State = iota
	// StateLoading means a fetch for the current key is in flight.
	StateLoading
	// StateLoaded means the current key's fetch succeeded.
	StateLoaded
	// StateFailed means the latest fetch failed. A previously loaded value
	// is retained for display.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// KeyFunc computes the resource key from a context snapshot and local
// filters. It must be pure and must return NoFetch when any identifier the
// resource requires is absent.
type KeyFunc func(nav navigation.Context, f Filters) Key

// FetchFunc performs the network read for a key.
type FetchFunc[T any] func(ctx context.Context, key Key) (T, error)

// UpdateEvent is published on bus.TopicResourceUpdated whenever a
// coordinator's state changes.
type UpdateEvent struct {
	Resource string
	Key      Key
	State    State
}

// CoordinatorConfig carries the shared collaborators a coordinator needs.
type CoordinatorConfig struct {
	Bus     *bus.Bus
	Logger  *slog.Logger
	Metrics *Metrics
	// BaseContext is the parent context for fetches. Defaults to
	// context.Background().
	BaseContext context.Context
}

// Coordinator maintains the fetched state for one entity type. Its identity
// is fully determined by the resource key; key changes invalidate the old
// fetch (via a generation counter) and trigger a new one. UI-facing callers
// only read views and request reloads; they never mutate state directly.
type Coordinator[T any] struct {
	name    string
	keyFn   KeyFunc
	fetch   FetchFunc[T]
	bus     *bus.Bus
	logger  *slog.Logger
	metrics *Metrics
	baseCtx context.Context
	group   singleflight.Group

	// Fallback, when set, supplies a locally cached value for a key whose
	// fetch failed with a not-found classification (404 or unreachable
	// backend). Optional.
	Fallback func(key Key) (T, bool)
	// OnLoad, when set, observes every successfully fetched value,
	// typically to persist a snapshot for Fallback. Optional.
	OnLoad func(key Key, value T)

	mu         sync.Mutex
	navCtx     navigation.Context
	filters    Filters
	key        Key
	generation uint64
	value      T
	hasValue   bool
	loading    bool
	err        error
}

// NewCoordinator creates a coordinator. keyFn and fetch are required.
func NewCoordinator[T any](name string, keyFn KeyFunc, fetch FetchFunc[T], cfg CoordinatorConfig) *Coordinator[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BaseContext == nil {
		cfg.BaseContext = context.Background()
	}
	return &Coordinator[T]{
		name:    name,
		keyFn:   keyFn,
		fetch:   fetch,
		bus:     cfg.Bus,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		baseCtx: cfg.BaseContext,
	}
}

// Name returns the resource name.
func (c *Coordinator[T]) Name() string { return c.name }

// Key returns the current resource key.
func (c *Coordinator[T]) Key() Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Value returns the last successfully fetched value. The second return is
// false while nothing has ever loaded for this coordinator.
func (c *Coordinator[T]) Value() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

// Loading reports whether a fetch is in flight.
func (c *Coordinator[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the latest fetch error, or nil.
func (c *Coordinator[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// HasError reports whether the latest fetch failed.
func (c *Coordinator[T]) HasError() bool { return c.Err() != nil }

// Filters returns the current local filter state.
func (c *Coordinator[T]) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// State reports the coordinator's lifecycle state. Loading, loaded, failed,
// and idle are mutually exclusive: an empty successful result is Loaded, not
// Idle, so callers can distinguish "no data yet" from "genuinely empty".
func (c *Coordinator[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.key.IsZero():
		return StateIdle
	case c.loading:
		return StateLoading
	case c.err != nil:
		return StateFailed
	case c.hasValue:
		return StateLoaded
	}
	return StateLoading
}

// SetContext applies a new navigation context snapshot. The key is
// recomputed; if it changed, the old fetch is invalidated and a new one
// starts.
func (c *Coordinator[T]) SetContext(nav navigation.Context) {
	c.mu.Lock()
	c.navCtx = nav
	state, key, changed := c.recomputeLocked(false)
	c.mu.Unlock()
	if changed {
		c.publish(state, key)
	}
}

// SetFilters replaces the local filter state. Server-side filter changes
// produce a new key and therefore a new fetch; a changed client-side filter
// alone does not re-fetch.
func (c *Coordinator[T]) SetFilters(f Filters) {
	c.mu.Lock()
	c.filters = f
	state, key, changed := c.recomputeLocked(false)
	c.mu.Unlock()
	if changed {
		c.publish(state, key)
	}
}

// Reload forces a re-fetch of the current key even though it is unchanged.
// Used after mutations. A no-fetch key stays idle.
func (c *Coordinator[T]) Reload() {
	c.mu.Lock()
	if c.metrics != nil {
		c.metrics.Reloads.WithLabelValues(c.name).Inc()
	}
	state, key, changed := c.recomputeLocked(true)
	c.mu.Unlock()
	if changed {
		c.publish(state, key)
	}
}

// recomputeLocked recomputes the key and starts a fetch when the key changed
// (or force is set). It reports the state transition to publish once the lock
// is released; publishing under the lock would deadlock any subscriber that
// reads coordinator views from its handler.
func (c *Coordinator[T]) recomputeLocked(force bool) (State, Key, bool) {
	newKey := NoFetch
	if c.keyFn != nil {
		newKey = c.keyFn(c.navCtx, c.filters)
	}
	if newKey == c.key && !force {
		return StateIdle, newKey, false
	}

	c.key = newKey
	c.generation++ // invalidates any in-flight response

	if newKey.IsZero() {
		var zero T
		c.value = zero
		c.hasValue = false
		c.loading = false
		c.err = nil
		return StateIdle, newKey, true
	}

	if force {
		// A forced reload must hit the network, not join an in-flight
		// call for the same key.
		c.group.Forget(string(newKey))
	}
	c.loading = true
	if c.metrics != nil {
		c.metrics.Fetches.WithLabelValues(c.name).Inc()
		c.metrics.InFlight.WithLabelValues(c.name).Inc()
	}
	go c.run(c.generation, newKey)
	return StateLoading, newKey, true
}

// run performs one fetch and applies its outcome unless the key has been
// superseded in the meantime.
func (c *Coordinator[T]) run(gen uint64, key Key) {
	v, err, _ := c.group.Do(string(key), func() (any, error) {
		return c.fetch(c.baseCtx, key)
	})

	if c.metrics != nil {
		c.metrics.InFlight.WithLabelValues(c.name).Dec()
	}

	var (
		fallback    T
		hasFallback bool
	)
	if err != nil && c.Fallback != nil && client.IsNotFound(err) {
		fallback, hasFallback = c.Fallback(key)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.StaleDrops.WithLabelValues(c.name).Inc()
		}
		c.logger.Debug("stale response dropped", "resource", c.name, "key", string(key))
		return
	}

	c.loading = false
	state := StateLoaded
	var loaded T
	notify := false
	switch {
	case err == nil:
		loaded = v.(T)
		c.value = loaded
		c.hasValue = true
		c.err = nil
		notify = c.OnLoad != nil
	case hasFallback:
		c.value = fallback
		c.hasValue = true
		c.err = nil
		c.logger.Debug("served cached fallback", "resource", c.name, "key", string(key))
	default:
		// Keep any previously loaded value for stale-but-valid display.
		c.err = err
		state = StateFailed
		if c.metrics != nil {
			c.metrics.Errors.WithLabelValues(c.name).Inc()
		}
		c.logger.Warn("fetch failed", "resource", c.name, "key", string(key), "error", err)
	}
	c.mu.Unlock()

	if notify {
		c.OnLoad(key, loaded)
	}
	c.publish(state, key)
}

func (c *Coordinator[T]) publish(state State, key Key) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(bus.TopicResourceUpdated, UpdateEvent{Resource: c.name, Key: key, State: state})
}
