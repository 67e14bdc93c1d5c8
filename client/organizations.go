package client

import (
	"context"
	"net/url"
)

// OrganizationsService operates on the organizations collection.
type OrganizationsService struct {
	c *Client
}

func organizationPath(id string) string {
	return "/api/v1/organizations/" + url.PathEscape(id)
}

// List returns the organizations visible to the caller.
func (s *OrganizationsService) List(ctx context.Context, q Query) (List[Organization], error) {
	return getList[Organization](ctx, s.c, "/api/v1/organizations", q)
}

// Get returns a single organization.
func (s *OrganizationsService) Get(ctx context.Context, id string) (Organization, error) {
	return getOne[Organization](ctx, s.c, organizationPath(id))
}

// Create creates an organization.
func (s *OrganizationsService) Create(ctx context.Context, org Organization) (Organization, error) {
	return create[Organization](ctx, s.c, "/api/v1/organizations", org)
}

// Update updates an organization.
func (s *OrganizationsService) Update(ctx context.Context, org Organization) (Organization, error) {
	return update[Organization](ctx, s.c, organizationPath(org.ID), org)
}

// Delete removes an organization.
func (s *OrganizationsService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.c, organizationPath(id))
}
