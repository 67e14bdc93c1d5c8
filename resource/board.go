package resource

import (
	"sort"

	"github.com/GoCodeAlone/workdesk/client"
)

// BoardColumn is one kanban column: a status and its issues in rank order.
type BoardColumn struct {
	Status string
	Issues []client.Issue
}

// boardOrder is the canonical column order. Statuses outside this list are
// appended after, in first-seen order.
var boardOrder = []string{
	client.IssueStatusBacklog,
	client.IssueStatusTodo,
	client.IssueStatusInProgress,
	client.IssueStatusDone,
	client.IssueStatusCancelled,
}

// GroupBoard groups issues into kanban columns by status, each column sorted
// by rank (lexicographic; the server assigns orderable rank strings). Like
// the page tree, the board is re-derived from the flat issue list on every
// call.
func GroupBoard(issues []client.Issue) []BoardColumn {
	byStatus := make(map[string][]client.Issue)
	var extra []string
	for _, is := range issues {
		if _, seen := byStatus[is.Status]; !seen && !knownStatus(is.Status) {
			extra = append(extra, is.Status)
		}
		byStatus[is.Status] = append(byStatus[is.Status], is)
	}

	var columns []BoardColumn
	for _, status := range append(append([]string{}, boardOrder...), extra...) {
		issues, ok := byStatus[status]
		if !ok {
			continue
		}
		sort.SliceStable(issues, func(i, j int) bool {
			if issues[i].Rank != issues[j].Rank {
				return issues[i].Rank < issues[j].Rank
			}
			return issues[i].ID < issues[j].ID
		})
		columns = append(columns, BoardColumn{Status: status, Issues: issues})
	}
	return columns
}

func knownStatus(s string) bool {
	for _, k := range boardOrder {
		if k == s {
			return true
		}
	}
	return false
}
