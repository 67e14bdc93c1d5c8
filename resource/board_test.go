package resource

import (
	"testing"

	"github.com/GoCodeAlone/workdesk/client"
)

func TestGroupBoardColumnsAndRankOrder(t *testing.T) {
	issues := []client.Issue{
		{ID: "i3", Status: client.IssueStatusTodo, Rank: "b"},
		{ID: "i1", Status: client.IssueStatusInProgress, Rank: "a"},
		{ID: "i2", Status: client.IssueStatusTodo, Rank: "a"},
	}

	columns := GroupBoard(issues)
	if len(columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(columns))
	}
	if columns[0].Status != client.IssueStatusTodo {
		t.Errorf("first column = %s, todo precedes in_progress", columns[0].Status)
	}
	todo := columns[0].Issues
	if todo[0].ID != "i2" || todo[1].ID != "i3" {
		t.Errorf("todo order = %s,%s, want rank order i2,i3", todo[0].ID, todo[1].ID)
	}
}

func TestGroupBoardUnknownStatusAppended(t *testing.T) {
	issues := []client.Issue{
		{ID: "i1", Status: "triage"},
		{ID: "i2", Status: client.IssueStatusDone},
	}

	columns := GroupBoard(issues)
	if len(columns) != 2 {
		t.Fatalf("columns = %d", len(columns))
	}
	if columns[0].Status != client.IssueStatusDone || columns[1].Status != "triage" {
		t.Errorf("order = %s,%s, unknown statuses go last", columns[0].Status, columns[1].Status)
	}
}

func TestGroupBoardEmpty(t *testing.T) {
	if columns := GroupBoard(nil); len(columns) != 0 {
		t.Errorf("expected no columns, got %d", len(columns))
	}
}
