package resource

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/GoCodeAlone/workdesk/client"
)

// Filters is the local filter state for a list coordinator. Query carries the
// server-side parameters and participates in the resource key, so changing
// any of them re-fetches. Local is a client-side predicate applied to the
// fetched items only; it never enters the key and never causes a fetch.
type Filters struct {
	Query client.Query
	Local *LocalFilter
}

// LocalFilter is a compiled client-side filter expression. Expressions are
// written against an "item" variable, e.g. `item.Priority == "high"`.
type LocalFilter struct {
	src  string
	prog *vm.Program
}

// CompileLocalFilter compiles a boolean filter expression. Syntax errors are
// reported at compile time so a bad filter never reaches the render path.
func CompileLocalFilter(src string) (*LocalFilter, error) {
	prog, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &LocalFilter{src: src, prog: prog}, nil
}

// String returns the original expression source.
func (f *LocalFilter) String() string {
	if f == nil {
		return ""
	}
	return f.src
}

// Match evaluates the filter against one item. Evaluation errors count as a
// non-match rather than failing the whole list.
func (f *LocalFilter) Match(item any) bool {
	if f == nil || f.prog == nil {
		return true
	}
	out, err := expr.Run(f.prog, map[string]any{"item": item})
	if err != nil {
		return false
	}
	keep, _ := out.(bool)
	return keep
}

// ApplyLocalFilter returns the items matching the filter. A nil filter keeps
// everything.
func ApplyLocalFilter[E any](f *LocalFilter, items []E) []E {
	if f == nil {
		return items
	}
	kept := make([]E, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			kept = append(kept, it)
		}
	}
	return kept
}
