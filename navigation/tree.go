// Package navigation derives a flat set of hierarchical identifiers
// (organization, project, issue, space, page, tab) from a tree-shaped route
// state, and publishes an immutable context snapshot on every completed
// navigation. The snapshot feeds the resource coordinators, which re-key
// their fetches off the identifiers they care about.
package navigation

// RouteNode is one node in the active route tree. The routing layer owns the
// tree; the resolver only reads it. PathParams holds the values bound to
// :name segments of this node's pattern, QueryParams the query string values
// visible at this node, and Children the activated child routes in order.
type RouteNode struct {
	// Pattern is the static route pattern this node was matched from,
	// e.g. "organizations/:id". Used to disambiguate generic parameter
	// names that only carry meaning on specific routes.
	Pattern string

	PathParams  map[string]string
	QueryParams map[string]string
	Children    []*RouteNode
}

// AddChild appends a child node and returns it, for convenience when
// building trees by hand (tests, fixtures).
func (n *RouteNode) AddChild(child *RouteNode) *RouteNode {
	n.Children = append(n.Children, child)
	return child
}
