package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestListSendsAuthAndQuery(t *testing.T) {
	var gotAuth, gotRequestID, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]Organization{{ID: "org1"}})
	}))

	list, err := c.Organizations.List(context.Background(), Query{Search: "acme", Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "org1" {
		t.Errorf("unexpected items: %+v", list.Items)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID not set")
	}
	if gotQuery != "page=2&page_size=10&q=acme" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestErrorEnvelopeSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "project not found"})
	}))

	_, err := c.Projects.Get(context.Background(), "org1", "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "project not found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("404 should classify as not found")
	}
}

func TestUnreachableBackendClassifiesAsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close() // nothing is listening anymore

	c := New(Config{BaseURL: base, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	_, err := c.Organizations.List(context.Background(), Query{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !IsNotFound(err) {
		t.Errorf("unreachable backend should classify as not found, got %v", err)
	}
}

func TestOtherStatusNotClassifiedAsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Organizations.Get(context.Background(), "org1")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsNotFound(err) {
		t.Error("500 must not classify as not found")
	}
}

func TestCreateRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var in Issue
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		in.ID = "ISS-99"
		_ = json.NewEncoder(w).Encode(map[string]any{"data": in})
	}))

	created, err := c.Issues.Create(context.Background(), "org1", "proj1", Issue{Title: "New"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "ISS-99" || created.Title != "New" {
		t.Errorf("unexpected issue: %+v", created)
	}
}

func TestMembersListProjectNarrowing(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]Member{})
	}))

	if _, err := c.Members.List(context.Background(), "org1", "proj1", Query{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotQuery != "project_id=proj1" {
		t.Errorf("query = %q", gotQuery)
	}
}
