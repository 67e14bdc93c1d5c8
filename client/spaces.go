package client

import (
	"context"
	"net/url"
)

// SpacesService operates on an organization's wiki spaces.
type SpacesService struct {
	c *Client
}

func spacesPath(orgID string) string {
	return organizationPath(orgID) + "/spaces"
}

func spacePath(orgID, id string) string {
	return spacesPath(orgID) + "/" + url.PathEscape(id)
}

// List returns the spaces in an organization.
func (s *SpacesService) List(ctx context.Context, orgID string, q Query) (List[Space], error) {
	return getList[Space](ctx, s.c, spacesPath(orgID), q)
}

// Get returns a single space.
func (s *SpacesService) Get(ctx context.Context, orgID, id string) (Space, error) {
	return getOne[Space](ctx, s.c, spacePath(orgID, id))
}

// Create creates a space in an organization.
func (s *SpacesService) Create(ctx context.Context, orgID string, sp Space) (Space, error) {
	return create[Space](ctx, s.c, spacesPath(orgID), sp)
}

// Update updates a space.
func (s *SpacesService) Update(ctx context.Context, orgID string, sp Space) (Space, error) {
	return update[Space](ctx, s.c, spacePath(orgID, sp.ID), sp)
}

// Delete removes a space.
func (s *SpacesService) Delete(ctx context.Context, orgID, id string) error {
	return remove(ctx, s.c, spacePath(orgID, id))
}
