package client

import (
	"context"
	"net/url"
)

// CommentsService operates on an issue's comments.
type CommentsService struct {
	c *Client
}

func commentsPath(orgID, projectID, issueID string) string {
	return issuePath(orgID, projectID, issueID) + "/comments"
}

// List returns the comments on an issue, oldest first.
func (s *CommentsService) List(ctx context.Context, orgID, projectID, issueID string, q Query) (List[Comment], error) {
	return getList[Comment](ctx, s.c, commentsPath(orgID, projectID, issueID), q)
}

// Create posts a comment on an issue.
func (s *CommentsService) Create(ctx context.Context, orgID, projectID, issueID string, c Comment) (Comment, error) {
	return create[Comment](ctx, s.c, commentsPath(orgID, projectID, issueID), c)
}

// Update edits a comment body.
func (s *CommentsService) Update(ctx context.Context, orgID, projectID, issueID string, c Comment) (Comment, error) {
	return update[Comment](ctx, s.c, commentsPath(orgID, projectID, issueID)+"/"+url.PathEscape(c.ID), c)
}

// Delete removes a comment.
func (s *CommentsService) Delete(ctx context.Context, orgID, projectID, issueID, id string) error {
	return remove(ctx, s.c, commentsPath(orgID, projectID, issueID)+"/"+url.PathEscape(id))
}
