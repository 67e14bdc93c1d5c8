package navigation

import "testing"

func TestResolveNilRoot(t *testing.T) {
	ctx := Resolve(nil)
	if _, ok := ctx.OrganizationID(); ok {
		t.Error("nil root should resolve to an empty context")
	}
}

func TestResolveFirstMatchWinsForPathParams(t *testing.T) {
	root := &RouteNode{}
	childA := root.AddChild(&RouteNode{
		PathParams: map[string]string{ParamOrganizationID: "X"},
	})
	childA.AddChild(&RouteNode{
		PathParams: map[string]string{ParamOrganizationID: "Y"},
	})

	ctx := Resolve(root)
	if got, _ := ctx.OrganizationID(); got != "X" {
		t.Errorf("expected ancestor value X, got %q", got)
	}
}

func TestResolveLastMatchWinsForQueryParams(t *testing.T) {
	root := &RouteNode{
		QueryParams: map[string]string{QueryTab: "overview"},
	}
	root.AddChild(&RouteNode{
		QueryParams: map[string]string{QueryTab: "settings"},
	})

	ctx := Resolve(root)
	if got, _ := ctx.Tab(); got != "settings" {
		t.Errorf("expected child value settings, got %q", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	root := &RouteNode{
		PathParams:  map[string]string{ParamOrganizationID: "org1"},
		QueryParams: map[string]string{"sort": "name"},
	}
	child := root.AddChild(&RouteNode{
		PathParams:  map[string]string{ParamProjectID: "proj1"},
		QueryParams: map[string]string{QueryTab: "board"},
	})
	child.AddChild(&RouteNode{
		PathParams: map[string]string{ParamIssueID: "ISS-1"},
	})

	first := Resolve(root)
	second := Resolve(root)
	if !first.Equal(second) {
		t.Error("resolving an unchanged tree twice must yield identical output")
	}
}

func TestResolveGenericIDOnOrganizationShortRoute(t *testing.T) {
	root := &RouteNode{
		Pattern:    "organizations/:id",
		PathParams: map[string]string{"id": "org42"},
	}
	ctx := Resolve(root)
	if got, ok := ctx.OrganizationID(); !ok || got != "org42" {
		t.Errorf("expected organizationId org42, got %q (present=%v)", got, ok)
	}
}

func TestResolveGenericIDIgnoredOnOtherRoutes(t *testing.T) {
	root := &RouteNode{
		Pattern:    "widgets/:id",
		PathParams: map[string]string{"id": "w1"},
	}
	ctx := Resolve(root)
	if _, ok := ctx.OrganizationID(); ok {
		t.Error("generic id must not bind organizationId outside organizations/:id")
	}
}

func TestResolveCyclicTreeTerminates(t *testing.T) {
	a := &RouteNode{PathParams: map[string]string{ParamOrganizationID: "org1"}}
	b := &RouteNode{PathParams: map[string]string{ParamProjectID: "proj1"}}
	a.Children = []*RouteNode{b}
	b.Children = []*RouteNode{a} // malformed

	ctx := Resolve(a)
	if got, _ := ctx.OrganizationID(); got != "org1" {
		t.Errorf("expected org1, got %q", got)
	}
	if got, _ := ctx.ProjectID(); got != "proj1" {
		t.Errorf("expected proj1, got %q", got)
	}
}

func TestResolveNestedNavigationScenario(t *testing.T) {
	root := &RouteNode{
		Pattern:    "orgs/:organizationId",
		PathParams: map[string]string{ParamOrganizationID: "org1"},
	}
	root.AddChild(&RouteNode{
		Pattern:     "projects/:projectId",
		PathParams:  map[string]string{ParamProjectID: "proj1"},
		QueryParams: map[string]string{QueryTab: "board"},
	})

	ctx := Resolve(root)

	if got, _ := ctx.OrganizationID(); got != "org1" {
		t.Errorf("organizationId = %q, want org1", got)
	}
	if got, _ := ctx.ProjectID(); got != "proj1" {
		t.Errorf("projectId = %q, want proj1", got)
	}
	if got, _ := ctx.Tab(); got != "board" {
		t.Errorf("tab = %q, want board", got)
	}
	for _, absent := range []string{ParamIssueID, ParamSpaceID, ParamPageID} {
		if _, ok := ctx.Param(absent); ok {
			t.Errorf("%s should be absent", absent)
		}
	}
}

func TestContextAbsentDistinctFromEmpty(t *testing.T) {
	root := &RouteNode{
		PathParams: map[string]string{ParamSpaceID: ""},
	}
	ctx := Resolve(root)

	if v, ok := ctx.SpaceID(); !ok || v != "" {
		t.Fatalf("empty-string param should be present and empty, got %q (present=%v)", v, ok)
	}
	if _, ok := ctx.PageID(); ok {
		t.Error("pageId was never set and must be absent")
	}
}
