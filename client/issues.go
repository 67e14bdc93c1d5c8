package client

import (
	"context"
	"net/url"
)

// IssuesService operates on a project's issues.
type IssuesService struct {
	c *Client
}

func issuesPath(orgID, projectID string) string {
	return projectPath(orgID, projectID) + "/issues"
}

func issuePath(orgID, projectID, id string) string {
	return issuesPath(orgID, projectID) + "/" + url.PathEscape(id)
}

// List returns the issues in a project.
func (s *IssuesService) List(ctx context.Context, orgID, projectID string, q Query) (List[Issue], error) {
	return getList[Issue](ctx, s.c, issuesPath(orgID, projectID), q)
}

// Get returns a single issue.
func (s *IssuesService) Get(ctx context.Context, orgID, projectID, id string) (Issue, error) {
	return getOne[Issue](ctx, s.c, issuePath(orgID, projectID, id))
}

// Create creates an issue in a project.
func (s *IssuesService) Create(ctx context.Context, orgID, projectID string, issue Issue) (Issue, error) {
	return create[Issue](ctx, s.c, issuesPath(orgID, projectID), issue)
}

// Update updates an issue.
func (s *IssuesService) Update(ctx context.Context, orgID, projectID string, issue Issue) (Issue, error) {
	return update[Issue](ctx, s.c, issuePath(orgID, projectID, issue.ID), issue)
}

// Move changes an issue's status and rank, the operation behind a kanban
// drag. It is a partial update; unset fields are preserved server-side.
func (s *IssuesService) Move(ctx context.Context, orgID, projectID, id, status, rank string) (Issue, error) {
	body := map[string]string{"status": status, "rank": rank}
	return update[Issue](ctx, s.c, issuePath(orgID, projectID, id)+"/move", body)
}

// Delete removes an issue.
func (s *IssuesService) Delete(ctx context.Context, orgID, projectID, id string) error {
	return remove(ctx, s.c, issuePath(orgID, projectID, id))
}
