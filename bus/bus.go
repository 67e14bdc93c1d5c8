// Package bus provides a minimal in-process publish/subscribe bus used to
// propagate navigation context changes and entity mutation events between the
// navigation layer, the resource coordinators, and the live update stream.
//
// Dispatch is synchronous and in subscription order: Publish does not return
// until every handler for the topic has run. This keeps downstream state
// transitions deterministic, which the resource layer relies on.
package bus

import (
	"log/slog"
	"sync"
)

// Well-known topics.
const (
	// TopicNavigationContext carries a navigation.Context snapshot after
	// every completed navigation.
	TopicNavigationContext = "navigation.context"
	// TopicEntityMutated carries an entity change notice (kind, id, action)
	// after a successful create/update/delete, local or remote.
	TopicEntityMutated = "entity.mutated"
	// TopicResourceUpdated carries the name of a resource whose state
	// changed (loaded, failed, or reloaded).
	TopicResourceUpdated = "resource.updated"
)

// Handler receives a published event payload.
type Handler func(event any)

// Bus is a synchronous in-process topic bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// New creates an empty Bus. A nil logger defaults to slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a topic. Handlers are invoked in the
// order they were registered. There is no unsubscribe; subscriptions live for
// the lifetime of the bus, which matches the lifetime of the client session.
func (b *Bus) Subscribe(topic string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers an event to every handler subscribed to the topic. A
// panicking handler is recovered and logged so one bad subscriber cannot take
// down the dispatch loop.
func (b *Bus) Publish(topic string, event any) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[topic]))
	copy(hs, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range hs {
		b.dispatch(topic, h, event)
	}
}

func (b *Bus) dispatch(topic string, h Handler, event any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("bus handler panicked", "topic", topic, "panic", r)
		}
	}()
	h(event)
}
