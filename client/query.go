package client

import (
	"net/url"
	"strconv"
)

// Query holds the server-side list parameters shared by all collection
// endpoints. Zero fields are omitted from the encoded query string. Wire
// names are snake_case per the backend contract.
type Query struct {
	Search     string
	Status     string
	Type       string
	AssigneeID string
	SortField  string
	SortDir    string // "asc" or "desc"
	Page       int
	PageSize   int
}

// Values encodes the query into url.Values.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.AssigneeID != "" {
		v.Set("assignee_id", q.AssigneeID)
	}
	if q.SortField != "" {
		v.Set("sort", q.SortField)
	}
	if q.SortDir != "" {
		v.Set("dir", q.SortDir)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// Encode returns the canonical query-string form. Identical Query values
// always encode identically, which the resource layer relies on for
// structural key comparison.
func (q Query) Encode() string {
	return q.Values().Encode()
}
