package resource

import "github.com/GoCodeAlone/workdesk/client"

// Items unwraps a list coordinator's collection, or nil when nothing has
// loaded.
func Items[E any](c *Coordinator[client.List[E]]) []E {
	v, ok := c.Value()
	if !ok {
		return nil
	}
	return v.Items
}

// FilteredItems is Items with the coordinator's client-side filter applied.
func FilteredItems[E any](c *Coordinator[client.List[E]]) []E {
	return ApplyLocalFilter(c.Filters().Local, Items(c))
}

// Current unwraps a single-entity coordinator's value, or the zero entity
// when nothing has loaded.
func Current[T any](c *Coordinator[T]) (T, bool) {
	return c.Value()
}
