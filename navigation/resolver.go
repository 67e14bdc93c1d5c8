package navigation

import "maps"

// Route path-parameter names recognized by the resolver.
const (
	ParamOrganizationID = "organizationId"
	ParamProjectID      = "projectId"
	ParamIssueID        = "issueId"
	ParamSpaceID        = "spaceId"
	ParamPageID         = "pageId"

	// QueryTab is the query parameter selecting the active tab.
	QueryTab = "tab"

	// orgShortPattern is the one route whose generic ":id" parameter is
	// accepted as an organization id.
	orgShortPattern = "organizations/:id"
)

// identifierParams are the path parameters collected into a Context, in no
// particular order (first match during traversal wins per name).
var identifierParams = []string{
	ParamOrganizationID,
	ParamProjectID,
	ParamIssueID,
	ParamSpaceID,
	ParamPageID,
}

// Context is an immutable snapshot of the identifiers resolved from a route
// tree. Absent identifiers are distinct from empty strings: an absent value
// means "no fetch" downstream, while an empty string is never treated as a
// valid identifier.
type Context struct {
	params map[string]string
	query  map[string]string
}

// Param returns the resolved path parameter with the given name.
func (c Context) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Query returns the resolved query parameter with the given name.
func (c Context) Query(name string) (string, bool) {
	v, ok := c.query[name]
	return v, ok
}

// OrganizationID returns the resolved organization identifier.
func (c Context) OrganizationID() (string, bool) { return c.Param(ParamOrganizationID) }

// ProjectID returns the resolved project identifier.
func (c Context) ProjectID() (string, bool) { return c.Param(ParamProjectID) }

// IssueID returns the resolved issue identifier.
func (c Context) IssueID() (string, bool) { return c.Param(ParamIssueID) }

// SpaceID returns the resolved space identifier.
func (c Context) SpaceID() (string, bool) { return c.Param(ParamSpaceID) }

// PageID returns the resolved page identifier.
func (c Context) PageID() (string, bool) { return c.Param(ParamPageID) }

// Tab returns the active tab query parameter.
func (c Context) Tab() (string, bool) { return c.Query(QueryTab) }

// Equal reports whether two snapshots resolve to the same identifiers and
// query parameters. Comparison is structural; snapshots are never compared by
// identity.
func (c Context) Equal(o Context) bool {
	return maps.Equal(c.params, o.params) && maps.Equal(c.query, o.query)
}

// Resolve walks the route tree and produces a Context snapshot.
//
// Traversal is depth-first pre-order from the root, visiting children in
// order. Path parameters are first-match-wins per name: once an identifier is
// assigned, deeper matches are ignored, so ancestors beat descendants. Query
// parameters are the opposite: every node's query parameters are copied over
// the accumulated map, so descendants override ancestors.
//
// A visited set guards against cycles in a malformed tree; re-visited nodes
// are skipped rather than reported. Resolve never fails: a nil root yields an
// empty Context.
func Resolve(root *RouteNode) Context {
	ctx := Context{
		params: make(map[string]string),
		query:  make(map[string]string),
	}
	if root == nil {
		return ctx
	}
	visited := make(map[*RouteNode]bool)
	visit(root, visited, &ctx)
	return ctx
}

func visit(n *RouteNode, visited map[*RouteNode]bool, ctx *Context) {
	if n == nil || visited[n] {
		return
	}
	visited[n] = true

	for _, name := range identifierParams {
		if _, done := ctx.params[name]; done {
			continue
		}
		if v, ok := n.PathParams[name]; ok {
			ctx.params[name] = v
		}
	}
	// The short organization route binds a generic "id"; accept it as the
	// organization identifier only on that exact pattern.
	if _, done := ctx.params[ParamOrganizationID]; !done && n.Pattern == orgShortPattern {
		if v, ok := n.PathParams["id"]; ok {
			ctx.params[ParamOrganizationID] = v
		}
	}

	for k, v := range n.QueryParams {
		ctx.query[k] = v
	}

	for _, child := range n.Children {
		visit(child, visited, ctx)
	}
}
