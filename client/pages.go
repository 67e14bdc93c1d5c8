package client

import (
	"context"
	"net/url"
)

// PagesService operates on a space's wiki pages.
type PagesService struct {
	c *Client
}

func pagesPath(orgID, spaceID string) string {
	return spacePath(orgID, spaceID) + "/pages"
}

func pagePath(orgID, spaceID, id string) string {
	return pagesPath(orgID, spaceID) + "/" + url.PathEscape(id)
}

// List returns the flat page list for a space. The parent/child hierarchy is
// derived client-side from ParentID.
func (s *PagesService) List(ctx context.Context, orgID, spaceID string, q Query) (List[Page], error) {
	return getList[Page](ctx, s.c, pagesPath(orgID, spaceID), q)
}

// Get returns a single page.
func (s *PagesService) Get(ctx context.Context, orgID, spaceID, id string) (Page, error) {
	return getOne[Page](ctx, s.c, pagePath(orgID, spaceID, id))
}

// Create creates a page in a space.
func (s *PagesService) Create(ctx context.Context, orgID, spaceID string, p Page) (Page, error) {
	return create[Page](ctx, s.c, pagesPath(orgID, spaceID), p)
}

// Update updates a page.
func (s *PagesService) Update(ctx context.Context, orgID, spaceID string, p Page) (Page, error) {
	return update[Page](ctx, s.c, pagePath(orgID, spaceID, p.ID), p)
}

// Delete removes a page.
func (s *PagesService) Delete(ctx context.Context, orgID, spaceID, id string) error {
	return remove(ctx, s.c, pagePath(orgID, spaceID, id))
}
