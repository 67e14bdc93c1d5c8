package resource

import (
	"sort"

	"github.com/GoCodeAlone/workdesk/client"
)

// PageNode is one node of the derived wiki page tree.
type PageNode struct {
	Page     client.Page
	Children []*PageNode
}

// BuildPageTree derives the parent/child page tree from a flat page list.
// Pages without a parent id are roots. Pages whose parent id does not exist
// in the list are dropped silently rather than promoted to root; a partial
// hierarchy beats a wrong one. The tree is computed fresh from the flat list
// on every call, so reloading the list automatically rebuilds it.
func BuildPageTree(pages []client.Page) []*PageNode {
	nodes := make(map[string]*PageNode, len(pages))
	for _, p := range pages {
		nodes[p.ID] = &PageNode{Page: p}
	}

	var roots []*PageNode
	for _, p := range pages {
		node := nodes[p.ID]
		if p.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[p.ParentID]
		if !ok || p.ParentID == p.ID {
			continue // orphan: dropped, not promoted
		}
		parent.Children = append(parent.Children, node)
	}

	sortPageNodes(roots)
	return roots
}

func sortPageNodes(nodes []*PageNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Page, nodes[j].Page
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Title < b.Title
	})
	for _, n := range nodes {
		sortPageNodes(n.Children)
	}
}
