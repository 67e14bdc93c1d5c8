package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// Route declares one level of the routing table. Pattern is a static path
// pattern whose segments are either literals or ":name" parameter binders.
// Children match against whatever path segments remain after the parent.
type Route struct {
	Pattern  string
	Children []*Route
}

// Router matches location strings (path plus optional query string) against a
// declared route table and produces the RouteNode tree for the match.
type Router struct {
	routes []*Route
}

// NewRouter creates a Router over the given top-level routes.
func NewRouter(routes ...*Route) *Router {
	return &Router{routes: routes}
}

// DefaultRoutes is the routing table for the project/wiki service: an
// organization level with nested project, issue, space, and page levels, plus
// the short "organizations/:id" form used by selector links.
func DefaultRoutes() []*Route {
	return []*Route{
		{Pattern: "organizations/:id"},
		{
			Pattern: "orgs/:organizationId",
			Children: []*Route{
				{
					Pattern: "projects/:projectId",
					Children: []*Route{
						{Pattern: "issues/:issueId"},
					},
				},
				{
					Pattern: "spaces/:spaceId",
					Children: []*Route{
						{Pattern: "pages/:pageId"},
					},
				},
			},
		},
	}
}

// Match resolves a location string into a RouteNode tree. The location is a
// slash-separated path, optionally followed by "?" and a query string. Query
// parameters are attached to the deepest matched node. Match fails when no
// declared route consumes the entire path.
func (r *Router) Match(location string) (*RouteNode, error) {
	path, rawQuery, _ := strings.Cut(location, "?")
	segments := splitPath(path)

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", rawQuery, err)
	}

	node, rest := matchRoutes(r.routes, segments)
	if node == nil || len(rest) > 0 {
		return nil, fmt.Errorf("no route matches %q", path)
	}

	if len(query) > 0 {
		leaf := node
		for len(leaf.Children) > 0 {
			leaf = leaf.Children[len(leaf.Children)-1]
		}
		leaf.QueryParams = make(map[string]string, len(query))
		for k := range query {
			leaf.QueryParams[k] = query.Get(k)
		}
	}
	return node, nil
}

// matchRoutes tries each route in order against the head of segments and
// returns the built node plus the unconsumed tail.
func matchRoutes(routes []*Route, segments []string) (*RouteNode, []string) {
	for _, route := range routes {
		node, rest, ok := matchRoute(route, segments)
		if ok {
			return node, rest
		}
	}
	return nil, segments
}

func matchRoute(route *Route, segments []string) (*RouteNode, []string, bool) {
	want := splitPath(route.Pattern)
	if len(segments) < len(want) {
		return nil, nil, false
	}

	params := make(map[string]string)
	for i, pat := range want {
		if name, ok := strings.CutPrefix(pat, ":"); ok {
			params[name] = segments[i]
			continue
		}
		if pat != segments[i] {
			return nil, nil, false
		}
	}

	node := &RouteNode{Pattern: route.Pattern, PathParams: params}
	rest := segments[len(want):]

	if len(rest) > 0 {
		child, tail := matchRoutes(route.Children, rest)
		if child == nil {
			// This route matched its own segments but cannot consume
			// the remainder; let a sibling try instead.
			return nil, nil, false
		}
		node.Children = append(node.Children, child)
		rest = tail
	}
	return node, rest, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
