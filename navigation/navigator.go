package navigation

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/GoCodeAlone/workdesk/bus"
)

// Navigator tracks the current location, resolves it against the route table,
// and publishes the resulting Context snapshot on the bus after every
// completed navigation. It is the single writer of navigation state; the
// resource layer only ever observes published snapshots.
type Navigator struct {
	router *Router
	bus    *bus.Bus
	logger *slog.Logger

	mu       sync.Mutex
	history  []string
	location string
	current  Context
}

// NewNavigator creates a Navigator. A nil logger defaults to slog.Default().
func NewNavigator(router *Router, b *bus.Bus, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		router:  router,
		bus:     b,
		logger:  logger,
		current: Resolve(nil),
	}
}

// Current returns the most recently published Context snapshot.
func (n *Navigator) Current() Context {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Location returns the current location string.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Navigate matches the location, pushes it onto the history stack, and
// publishes the new Context.
func (n *Navigator) Navigate(location string) error {
	return n.apply(location, true)
}

// Replace is Navigate without growing the history stack: the current entry is
// swapped for the new location.
func (n *Navigator) Replace(location string) error {
	return n.apply(location, false)
}

// Back pops the history stack and re-publishes the previous location's
// context. It is a no-op at the root of the stack.
func (n *Navigator) Back() error {
	n.mu.Lock()
	if len(n.history) < 2 {
		n.mu.Unlock()
		return nil
	}
	n.history = n.history[:len(n.history)-1]
	prev := n.history[len(n.history)-1]
	n.mu.Unlock()
	return n.Replace(prev)
}

// MergeQuery updates the current location's query parameters with merge
// semantics: parameters not named in set are preserved, an empty value
// removes the parameter. The result replaces the current history entry.
func (n *Navigator) MergeQuery(set map[string]string) error {
	n.mu.Lock()
	location := n.location
	n.mu.Unlock()

	path, rawQuery, _ := strings.Cut(location, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("parse query %q: %w", rawQuery, err)
	}
	for k, v := range set {
		if v == "" {
			query.Del(k)
			continue
		}
		query.Set(k, v)
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return n.Replace(path)
}

func (n *Navigator) apply(location string, push bool) error {
	root, err := n.router.Match(location)
	if err != nil {
		return err
	}
	ctx := Resolve(root)

	n.mu.Lock()
	n.location = location
	if push || len(n.history) == 0 {
		n.history = append(n.history, location)
	} else {
		n.history[len(n.history)-1] = location
	}
	n.current = ctx
	n.mu.Unlock()

	n.logger.Debug("navigation completed", "location", location)
	if n.bus != nil {
		n.bus.Publish(bus.TopicNavigationContext, ctx)
	}
	return nil
}
