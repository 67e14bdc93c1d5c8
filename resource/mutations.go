package resource

import (
	"context"
	"errors"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/client"
)

// Mutations are pass-through network calls. On success the registry publishes
// an entity-change event so affected coordinators reload through the normal
// fetch path; the mutation response itself is never written into coordinator
// state. On failure the error returns to the caller and nothing reloads.

// ErrNoContext is returned when a mutation needs an identifier the current
// navigation context does not provide.
var ErrNoContext = errors.New("required context identifier is absent")

func (r *Registry) publishMutation(kind, id, action string) {
	if r.bus != nil {
		r.bus.Publish(bus.TopicEntityMutated, Mutation{Kind: kind, ID: id, Action: action})
	}
}

func (r *Registry) orgID() (string, error) {
	id, ok := requireParam(r.Context().OrganizationID())
	if !ok {
		return "", ErrNoContext
	}
	return id, nil
}

func (r *Registry) orgProjectID() (string, string, error) {
	org, err := r.orgID()
	if err != nil {
		return "", "", err
	}
	proj, ok := requireParam(r.Context().ProjectID())
	if !ok {
		return "", "", ErrNoContext
	}
	return org, proj, nil
}

func (r *Registry) orgSpaceID() (string, string, error) {
	org, err := r.orgID()
	if err != nil {
		return "", "", err
	}
	space, ok := requireParam(r.Context().SpaceID())
	if !ok {
		return "", "", ErrNoContext
	}
	return org, space, nil
}

// CreateOrganization creates an organization and reloads the organizations
// list.
func (r *Registry) CreateOrganization(ctx context.Context, org client.Organization) (client.Organization, error) {
	out, err := r.api.Organizations.Create(ctx, org)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindOrganization, out.ID, "create")
	return out, nil
}

// UpdateOrganization updates an organization.
func (r *Registry) UpdateOrganization(ctx context.Context, org client.Organization) (client.Organization, error) {
	out, err := r.api.Organizations.Update(ctx, org)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindOrganization, out.ID, "update")
	return out, nil
}

// DeleteOrganization deletes an organization.
func (r *Registry) DeleteOrganization(ctx context.Context, id string) error {
	if err := r.api.Organizations.Delete(ctx, id); err != nil {
		return err
	}
	r.publishMutation(KindOrganization, id, "delete")
	return nil
}

// CreateProject creates a project in the current organization.
func (r *Registry) CreateProject(ctx context.Context, p client.Project) (client.Project, error) {
	org, err := r.orgID()
	if err != nil {
		return client.Project{}, err
	}
	out, err := r.api.Projects.Create(ctx, org, p)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindProject, out.ID, "create")
	return out, nil
}

// UpdateProject updates a project in the current organization.
func (r *Registry) UpdateProject(ctx context.Context, p client.Project) (client.Project, error) {
	org, err := r.orgID()
	if err != nil {
		return client.Project{}, err
	}
	out, err := r.api.Projects.Update(ctx, org, p)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindProject, out.ID, "update")
	return out, nil
}

// DeleteProject deletes a project in the current organization.
func (r *Registry) DeleteProject(ctx context.Context, id string) error {
	org, err := r.orgID()
	if err != nil {
		return err
	}
	if err := r.api.Projects.Delete(ctx, org, id); err != nil {
		return err
	}
	r.publishMutation(KindProject, id, "delete")
	return nil
}

// CreateIssue creates an issue in the current project.
func (r *Registry) CreateIssue(ctx context.Context, issue client.Issue) (client.Issue, error) {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return client.Issue{}, err
	}
	out, err := r.api.Issues.Create(ctx, org, proj, issue)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindIssue, out.ID, "create")
	return out, nil
}

// UpdateIssue updates an issue in the current project.
func (r *Registry) UpdateIssue(ctx context.Context, issue client.Issue) (client.Issue, error) {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return client.Issue{}, err
	}
	out, err := r.api.Issues.Update(ctx, org, proj, issue)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindIssue, out.ID, "update")
	return out, nil
}

// MoveIssue changes an issue's status and rank (a kanban drag).
func (r *Registry) MoveIssue(ctx context.Context, id, status, rank string) (client.Issue, error) {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return client.Issue{}, err
	}
	out, err := r.api.Issues.Move(ctx, org, proj, id, status, rank)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindIssue, id, "update")
	return out, nil
}

// DeleteIssue deletes an issue in the current project.
func (r *Registry) DeleteIssue(ctx context.Context, id string) error {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return err
	}
	if err := r.api.Issues.Delete(ctx, org, proj, id); err != nil {
		return err
	}
	r.publishMutation(KindIssue, id, "delete")
	return nil
}

// CreateSpace creates a space in the current organization.
func (r *Registry) CreateSpace(ctx context.Context, sp client.Space) (client.Space, error) {
	org, err := r.orgID()
	if err != nil {
		return client.Space{}, err
	}
	out, err := r.api.Spaces.Create(ctx, org, sp)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindSpace, out.ID, "create")
	return out, nil
}

// UpdateSpace updates a space in the current organization.
func (r *Registry) UpdateSpace(ctx context.Context, sp client.Space) (client.Space, error) {
	org, err := r.orgID()
	if err != nil {
		return client.Space{}, err
	}
	out, err := r.api.Spaces.Update(ctx, org, sp)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindSpace, out.ID, "update")
	return out, nil
}

// DeleteSpace deletes a space in the current organization.
func (r *Registry) DeleteSpace(ctx context.Context, id string) error {
	org, err := r.orgID()
	if err != nil {
		return err
	}
	if err := r.api.Spaces.Delete(ctx, org, id); err != nil {
		return err
	}
	r.publishMutation(KindSpace, id, "delete")
	return nil
}

// CreatePage creates a page in the current space.
func (r *Registry) CreatePage(ctx context.Context, p client.Page) (client.Page, error) {
	org, space, err := r.orgSpaceID()
	if err != nil {
		return client.Page{}, err
	}
	out, err := r.api.Pages.Create(ctx, org, space, p)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindPage, out.ID, "create")
	return out, nil
}

// UpdatePage updates a page in the current space.
func (r *Registry) UpdatePage(ctx context.Context, p client.Page) (client.Page, error) {
	org, space, err := r.orgSpaceID()
	if err != nil {
		return client.Page{}, err
	}
	out, err := r.api.Pages.Update(ctx, org, space, p)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindPage, out.ID, "update")
	return out, nil
}

// DeletePage deletes a page in the current space.
func (r *Registry) DeletePage(ctx context.Context, id string) error {
	org, space, err := r.orgSpaceID()
	if err != nil {
		return err
	}
	if err := r.api.Pages.Delete(ctx, org, space, id); err != nil {
		return err
	}
	r.publishMutation(KindPage, id, "delete")
	return nil
}

// AddMember adds a member to the current organization.
func (r *Registry) AddMember(ctx context.Context, m client.Member) (client.Member, error) {
	org, err := r.orgID()
	if err != nil {
		return client.Member{}, err
	}
	out, err := r.api.Members.Add(ctx, org, m)
	if err != nil {
		return out, err
	}
	r.publishMutation(KindMember, out.ID, "create")
	return out, nil
}

// RemoveMember removes a member from the current organization.
func (r *Registry) RemoveMember(ctx context.Context, id string) error {
	org, err := r.orgID()
	if err != nil {
		return err
	}
	if err := r.api.Members.Remove(ctx, org, id); err != nil {
		return err
	}
	r.publishMutation(KindMember, id, "delete")
	return nil
}

// CreateComment posts a comment on the current issue.
func (r *Registry) CreateComment(ctx context.Context, body string) (client.Comment, error) {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return client.Comment{}, err
	}
	issue, ok := requireParam(r.Context().IssueID())
	if !ok {
		return client.Comment{}, ErrNoContext
	}
	out, err := r.api.Comments.Create(ctx, org, proj, issue, client.Comment{Body: body})
	if err != nil {
		return out, err
	}
	r.publishMutation(KindComment, out.ID, "create")
	return out, nil
}

// DeleteComment removes a comment from the current issue.
func (r *Registry) DeleteComment(ctx context.Context, id string) error {
	org, proj, err := r.orgProjectID()
	if err != nil {
		return err
	}
	issue, ok := requireParam(r.Context().IssueID())
	if !ok {
		return ErrNoContext
	}
	if err := r.api.Comments.Delete(ctx, org, proj, issue, id); err != nil {
		return err
	}
	r.publishMutation(KindComment, id, "delete")
	return nil
}
