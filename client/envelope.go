package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List is the canonical shape for collection responses. The backend answers
// list endpoints with either a bare JSON array or an enveloped object
// ({data, total, page, page_size}); decodeList folds both into a List once at
// the transport boundary so consumers never see the ambiguity.
type List[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

func decodeList[T any](body []byte) (List[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return List[T]{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return List[T]{}, fmt.Errorf("decode list body: %w", err)
		}
		return List[T]{Items: items, Total: len(items)}, nil
	}

	var env struct {
		Data     []T `json:"data"`
		Total    int `json:"total"`
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return List[T]{}, fmt.Errorf("decode list envelope: %w", err)
	}
	total := env.Total
	if total == 0 {
		total = len(env.Data)
	}
	return List[T]{Items: env.Data, Total: total, Page: env.Page, PageSize: env.PageSize}, nil
}

// decodeOne decodes a single-entity body, accepting both {data: {...}} and a
// bare object.
func decodeOne[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return out, nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
		trimmed = env.Data
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, fmt.Errorf("decode entity body: %w", err)
	}
	return out, nil
}
