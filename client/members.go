package client

import (
	"context"
	"net/url"
)

// MembersService operates on an organization's members.
type MembersService struct {
	c *Client
}

func membersPath(orgID string) string {
	return organizationPath(orgID) + "/members"
}

// List returns the members of an organization. When projectID is non-empty
// the list is narrowed to that project's members.
func (s *MembersService) List(ctx context.Context, orgID, projectID string, q Query) (List[Member], error) {
	v := q.Values()
	if projectID != "" {
		v.Set("project_id", projectID)
	}
	data, err := s.c.do(ctx, "GET", membersPath(orgID), v, nil)
	if err != nil {
		return List[Member]{}, err
	}
	return decodeList[Member](data)
}

// Add adds a member to an organization.
func (s *MembersService) Add(ctx context.Context, orgID string, m Member) (Member, error) {
	return create[Member](ctx, s.c, membersPath(orgID), m)
}

// Update changes a member's role.
func (s *MembersService) Update(ctx context.Context, orgID string, m Member) (Member, error) {
	return update[Member](ctx, s.c, membersPath(orgID)+"/"+url.PathEscape(m.ID), m)
}

// Remove removes a member from an organization.
func (s *MembersService) Remove(ctx context.Context, orgID, id string) error {
	return remove(ctx, s.c, membersPath(orgID)+"/"+url.PathEscape(id))
}
