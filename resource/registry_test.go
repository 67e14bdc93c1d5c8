package resource

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/navigation"
)

// memKV is an in-memory KVStore for tests.
type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: make(map[string]string)} }

func (s *memKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// countingServer records GET hits per path and serves empty lists and zero
// entities.
type countingServer struct {
	mu   sync.Mutex
	hits map[string]int
}

func (cs *countingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			cs.mu.Lock()
			cs.hits[r.URL.Path]++
			cs.mu.Unlock()
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		// Entity paths end in an identifier segment the fixture treats as
		// opaque; everything else is a collection.
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})
}

func (cs *countingServer) count(path string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.hits[path]
}

func newTestRegistry(t *testing.T, handler http.Handler, kv KVStore) (*Registry, *bus.Bus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := bus.New(logger)
	api := client.New(client.Config{BaseURL: srv.URL, Logger: logger})
	r := NewRegistry(RegistryConfig{API: api, Bus: b, Logger: logger, Prefs: kv})
	return r, b
}

func issueContext(org, proj, issue string) navigation.Context {
	params := map[string]string{}
	if org != "" {
		params[navigation.ParamOrganizationID] = org
	}
	if proj != "" {
		params[navigation.ParamProjectID] = proj
	}
	if issue != "" {
		params[navigation.ParamIssueID] = issue
	}
	return navigation.Resolve(&navigation.RouteNode{PathParams: params})
}

func TestRegistryKeysFollowContext(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	r, b := newTestRegistry(t, cs.handler(), nil)

	b.Publish(bus.TopicNavigationContext, issueContext("org1", "", ""))

	if r.Projects.Key() != "/api/v1/organizations/org1/projects" {
		t.Errorf("projects key = %q", r.Projects.Key())
	}
	if !r.Issues.Key().IsZero() {
		t.Error("issues key must be the no-fetch sentinel without a project")
	}
	if !r.Issue.Key().IsZero() {
		t.Error("issue key must be the no-fetch sentinel without an issue")
	}

	b.Publish(bus.TopicNavigationContext, issueContext("org1", "proj1", "ISS-1"))
	if r.Issues.Key() != "/api/v1/organizations/org1/projects/proj1/issues" {
		t.Errorf("issues key = %q", r.Issues.Key())
	}
	if r.Issue.Key() != "/api/v1/organizations/org1/projects/proj1/issues/ISS-1" {
		t.Errorf("issue key = %q", r.Issue.Key())
	}
}

func TestMutationFanOutReloadsAffectedResources(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	r, b := newTestRegistry(t, cs.handler(), nil)

	b.Publish(bus.TopicNavigationContext, issueContext("org1", "proj1", "ISS-1"))

	issuesPath := "/api/v1/organizations/org1/projects/proj1/issues"
	issuePath := issuesPath + "/ISS-1"
	if r.Issue.Key() != Key(issuePath) {
		t.Fatalf("issue key = %q, want %q", r.Issue.Key(), issuePath)
	}
	waitFor(t, "initial fetches", func() bool {
		return cs.count(issuesPath) >= 1 && cs.count(issuePath) >= 1
	})
	listBefore, oneBefore := cs.count(issuesPath), cs.count(issuePath)

	// Updating the currently-viewed issue reloads both the list and the
	// single-issue resource.
	b.Publish(bus.TopicEntityMutated, Mutation{Kind: KindIssue, ID: "ISS-1", Action: "update"})
	waitFor(t, "fan-out reload", func() bool {
		return cs.count(issuesPath) > listBefore && cs.count(issuePath) > oneBefore
	})
}

func TestMutationOfUnrelatedIssueDoesNotReloadCurrent(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	r, b := newTestRegistry(t, cs.handler(), nil)

	b.Publish(bus.TopicNavigationContext, issueContext("org1", "proj1", "ISS-1"))

	issuesPath := "/api/v1/organizations/org1/projects/proj1/issues"
	issuePath := issuesPath + "/ISS-1"
	waitFor(t, "initial fetches", func() bool {
		return cs.count(issuesPath) >= 1 && cs.count(issuePath) >= 1
	})
	listBefore, oneBefore := cs.count(issuesPath), cs.count(issuePath)

	b.Publish(bus.TopicEntityMutated, Mutation{Kind: KindIssue, ID: "ISS-2", Action: "update"})
	waitFor(t, "list reload", func() bool { return cs.count(issuesPath) > listBefore })

	if cs.count(issuePath) != oneBefore {
		t.Error("updating an unrelated issue must not reload the current single-issue resource")
	}
	if r.Issue.Key() != Key(issuePath) {
		t.Errorf("issue key = %q, must still refer to ISS-1", r.Issue.Key())
	}
}

func TestRegistryRemembersLastOrganization(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	kv := newMemKV()
	r, b := newTestRegistry(t, cs.handler(), kv)

	if _, ok := r.LastOrganization(); ok {
		t.Error("no organization should be remembered initially")
	}

	b.Publish(bus.TopicNavigationContext, issueContext("org7", "", ""))

	got, ok := r.LastOrganization()
	if !ok || got != "org7" {
		t.Errorf("last organization = %q (ok=%v), want org7", got, ok)
	}
}

func TestOnboardingFlagRoundTrip(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	r, _ := newTestRegistry(t, cs.handler(), newMemKV())

	if r.OnboardingCompleted() {
		t.Error("onboarding must start incomplete")
	}
	r.CompleteOnboarding()
	if !r.OnboardingCompleted() {
		t.Error("onboarding flag did not persist")
	}
}

func TestSnapshotFallbackWhenBackendGone(t *testing.T) {
	kv := newMemKV()

	// First serve one organization, then pretend the backend is gone.
	var down sync.Map
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, gone := down.Load("down"); gone {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]client.Organization{{ID: "org1", Name: "Acme"}})
	})

	r, b := newTestRegistry(t, handler, kv)
	b.Publish(bus.TopicNavigationContext, navigation.Resolve(&navigation.RouteNode{}))
	waitFor(t, "initial load", func() bool { return r.Organizations.State() == StateLoaded })

	down.Store("down", true)
	r.Organizations.Reload()
	waitFor(t, "fallback load", func() bool {
		return r.Organizations.State() == StateLoaded && !r.Organizations.Loading()
	})

	items := Items(r.Organizations)
	if len(items) != 1 || items[0].Name != "Acme" {
		t.Errorf("items = %+v, want cached Acme", items)
	}
	if r.Organizations.HasError() {
		t.Error("fallback-served resource must not expose an error")
	}
}

func TestMutationWithoutContextFails(t *testing.T) {
	cs := &countingServer{hits: make(map[string]int)}
	r, _ := newTestRegistry(t, cs.handler(), nil)

	// No navigation yet: no organization in context.
	if _, err := r.CreateProject(context.Background(), client.Project{Name: "P"}); err != ErrNoContext {
		t.Errorf("err = %v, want ErrNoContext", err)
	}
}
