package client

import (
	"context"
	"net/url"
)

// ProjectsService operates on an organization's projects.
type ProjectsService struct {
	c *Client
}

func projectsPath(orgID string) string {
	return organizationPath(orgID) + "/projects"
}

func projectPath(orgID, id string) string {
	return projectsPath(orgID) + "/" + url.PathEscape(id)
}

// List returns the projects in an organization.
func (s *ProjectsService) List(ctx context.Context, orgID string, q Query) (List[Project], error) {
	return getList[Project](ctx, s.c, projectsPath(orgID), q)
}

// Get returns a single project.
func (s *ProjectsService) Get(ctx context.Context, orgID, id string) (Project, error) {
	return getOne[Project](ctx, s.c, projectPath(orgID, id))
}

// Create creates a project in an organization.
func (s *ProjectsService) Create(ctx context.Context, orgID string, p Project) (Project, error) {
	return create[Project](ctx, s.c, projectsPath(orgID), p)
}

// Update updates a project.
func (s *ProjectsService) Update(ctx context.Context, orgID string, p Project) (Project, error) {
	return update[Project](ctx, s.c, projectPath(orgID, p.ID), p)
}

// Delete removes a project.
func (s *ProjectsService) Delete(ctx context.Context, orgID, id string) error {
	return remove(ctx, s.c, projectPath(orgID, id))
}
