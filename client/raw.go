package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// getPath executes a GET against a pre-built path-and-query string, the form
// resource keys take.
func (c *Client) getPath(ctx context.Context, pathAndQuery string) ([]byte, error) {
	path, rawQuery, _ := strings.Cut(pathAndQuery, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse key query %q: %w", rawQuery, err)
	}
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// FetchList fetches a collection endpoint by its path-and-query string and
// decodes the response into the canonical List shape. The resource layer uses
// this to fetch by resource key.
func FetchList[T any](ctx context.Context, c *Client, pathAndQuery string) (List[T], error) {
	data, err := c.getPath(ctx, pathAndQuery)
	if err != nil {
		return List[T]{}, err
	}
	return decodeList[T](data)
}

// FetchOne fetches a single-entity endpoint by its path-and-query string.
func FetchOne[T any](ctx context.Context, c *Client, pathAndQuery string) (T, error) {
	data, err := c.getPath(ctx, pathAndQuery)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](data)
}
