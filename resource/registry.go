package resource

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sync"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/navigation"
)

// KVStore is the subset of the local preference store the registry uses: it
// remembers the last selected organization, the onboarding flag, and cached
// response snapshots served when the backend is unreachable. Implementations
// must tolerate failure; the registry logs and continues on error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Preference keys.
const (
	prefLastOrganization = "last_organization_id"
	prefOnboardingDone   = "onboarding_completed"
	snapshotPrefix       = "snapshot:"
)

// Mutation describes a successful entity change, local or pushed from the
// live stream. Published on bus.TopicEntityMutated.
type Mutation struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Action string `json:"action"` // "create", "update", or "delete"
}

// Mutation kinds.
const (
	KindOrganization = "organization"
	KindProject      = "project"
	KindIssue        = "issue"
	KindSpace        = "space"
	KindPage         = "page"
	KindMember       = "member"
	KindComment      = "comment"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	API     *client.Client
	Bus     *bus.Bus
	Logger  *slog.Logger
	Metrics *Metrics
	// Prefs is optional; without it the registry skips persistence and
	// not-found fallbacks.
	Prefs KVStore
}

// Registry owns one coordinator per entity type and wires them to the bus:
// navigation context snapshots fan in to every coordinator, and entity
// mutations fan out as reloads to the coordinators whose output they affect.
type Registry struct {
	api    *client.Client
	bus    *bus.Bus
	logger *slog.Logger
	prefs  KVStore

	mu  sync.Mutex
	nav navigation.Context

	Organizations *Coordinator[client.List[client.Organization]]
	Organization  *Coordinator[client.Organization]
	Projects      *Coordinator[client.List[client.Project]]
	Project       *Coordinator[client.Project]
	Issues        *Coordinator[client.List[client.Issue]]
	Issue         *Coordinator[client.Issue]
	Spaces        *Coordinator[client.List[client.Space]]
	Space         *Coordinator[client.Space]
	Pages         *Coordinator[client.List[client.Page]]
	Page          *Coordinator[client.Page]
	Members       *Coordinator[client.List[client.Member]]
	Comments      *Coordinator[client.List[client.Comment]]
}

// NewRegistry builds the coordinators and subscribes them to the bus.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := &Registry{
		api:    cfg.API,
		bus:    cfg.Bus,
		logger: cfg.Logger,
		prefs:  cfg.Prefs,
	}

	cc := CoordinatorConfig{Bus: cfg.Bus, Logger: cfg.Logger, Metrics: cfg.Metrics}
	api := cfg.API

	r.Organizations = NewCoordinator("organizations", organizationsKey,
		listFetch[client.Organization](api), cc)
	r.Organization = NewCoordinator("organization", organizationKey,
		oneFetch[client.Organization](api), cc)
	r.Projects = NewCoordinator("projects", projectsKey,
		listFetch[client.Project](api), cc)
	r.Project = NewCoordinator("project", projectKey,
		oneFetch[client.Project](api), cc)
	r.Issues = NewCoordinator("issues", issuesKey,
		listFetch[client.Issue](api), cc)
	r.Issue = NewCoordinator("issue", issueKey,
		oneFetch[client.Issue](api), cc)
	r.Spaces = NewCoordinator("spaces", spacesKey,
		listFetch[client.Space](api), cc)
	r.Space = NewCoordinator("space", spaceKey,
		oneFetch[client.Space](api), cc)
	r.Pages = NewCoordinator("pages", pagesKey,
		listFetch[client.Page](api), cc)
	r.Page = NewCoordinator("page", pageKey,
		oneFetch[client.Page](api), cc)
	r.Members = NewCoordinator("members", membersKey,
		listFetch[client.Member](api), cc)
	r.Comments = NewCoordinator("comments", commentsKey,
		listFetch[client.Comment](api), cc)

	withSnapshots(r.Organizations, cfg.Prefs, cfg.Logger)
	withSnapshots(r.Organization, cfg.Prefs, cfg.Logger)
	withSnapshots(r.Projects, cfg.Prefs, cfg.Logger)
	withSnapshots(r.Spaces, cfg.Prefs, cfg.Logger)

	if cfg.Bus != nil {
		cfg.Bus.Subscribe(bus.TopicNavigationContext, func(event any) {
			if nav, ok := event.(navigation.Context); ok {
				r.applyContext(nav)
			}
		})
		cfg.Bus.Subscribe(bus.TopicEntityMutated, func(event any) {
			if m, ok := event.(Mutation); ok {
				r.fanOut(m)
			}
		})
	}
	return r
}

// applyContext forwards a navigation snapshot to every coordinator and
// remembers the selected organization across sessions.
func (r *Registry) applyContext(nav navigation.Context) {
	r.mu.Lock()
	r.nav = nav
	r.mu.Unlock()

	r.Organizations.SetContext(nav)
	r.Organization.SetContext(nav)
	r.Projects.SetContext(nav)
	r.Project.SetContext(nav)
	r.Issues.SetContext(nav)
	r.Issue.SetContext(nav)
	r.Spaces.SetContext(nav)
	r.Space.SetContext(nav)
	r.Pages.SetContext(nav)
	r.Page.SetContext(nav)
	r.Members.SetContext(nav)
	r.Comments.SetContext(nav)

	if org, ok := nav.OrganizationID(); ok && org != "" && r.prefs != nil {
		if err := r.prefs.Set(context.Background(), prefLastOrganization, org); err != nil {
			r.logger.Debug("persist last organization", "error", err)
		}
	}
}

// Context returns the latest navigation snapshot seen by the registry.
func (r *Registry) Context() navigation.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nav
}

// fanOut reloads every coordinator whose output the mutation could affect.
// Single-entity coordinators reload only when their key currently refers to
// the mutated entity.
func (r *Registry) fanOut(m Mutation) {
	nav := r.Context()
	switch m.Kind {
	case KindOrganization:
		r.Organizations.Reload()
		if id, ok := nav.OrganizationID(); ok && id == m.ID {
			r.Organization.Reload()
		}
	case KindProject:
		r.Projects.Reload()
		if id, ok := nav.ProjectID(); ok && id == m.ID {
			r.Project.Reload()
		}
	case KindIssue:
		r.Issues.Reload()
		if id, ok := nav.IssueID(); ok && id == m.ID {
			r.Issue.Reload()
			r.Comments.Reload()
		}
	case KindSpace:
		r.Spaces.Reload()
		if id, ok := nav.SpaceID(); ok && id == m.ID {
			r.Space.Reload()
		}
	case KindPage:
		r.Pages.Reload()
		if id, ok := nav.PageID(); ok && id == m.ID {
			r.Page.Reload()
		}
	case KindMember:
		r.Members.Reload()
	case KindComment:
		r.Comments.Reload()
	default:
		r.logger.Debug("ignoring mutation of unknown kind", "kind", m.Kind)
	}
}

// LastOrganization returns the organization id remembered from a previous
// session, if any.
func (r *Registry) LastOrganization() (string, bool) {
	if r.prefs == nil {
		return "", false
	}
	v, ok, err := r.prefs.Get(context.Background(), prefLastOrganization)
	if err != nil {
		r.logger.Debug("read last organization", "error", err)
		return "", false
	}
	return v, ok && v != ""
}

// OnboardingCompleted reports whether onboarding has been completed on this
// machine.
func (r *Registry) OnboardingCompleted() bool {
	if r.prefs == nil {
		return false
	}
	v, ok, err := r.prefs.Get(context.Background(), prefOnboardingDone)
	if err != nil {
		r.logger.Debug("read onboarding flag", "error", err)
		return false
	}
	return ok && v == "true"
}

// CompleteOnboarding records the onboarding flag.
func (r *Registry) CompleteOnboarding() {
	if r.prefs == nil {
		return
	}
	if err := r.prefs.Set(context.Background(), prefOnboardingDone, "true"); err != nil {
		r.logger.Debug("persist onboarding flag", "error", err)
	}
}

// listFetch adapts the key-based list endpoint fetch for a coordinator.
func listFetch[E any](api *client.Client) FetchFunc[client.List[E]] {
	return func(ctx context.Context, key Key) (client.List[E], error) {
		return client.FetchList[E](ctx, api, string(key))
	}
}

// oneFetch adapts the key-based single-entity fetch for a coordinator.
func oneFetch[E any](api *client.Client) FetchFunc[E] {
	return func(ctx context.Context, key Key) (E, error) {
		return client.FetchOne[E](ctx, api, string(key))
	}
}

// withSnapshots persists every loaded value and serves it back when a later
// fetch for the same key hits the not-found fallback path.
func withSnapshots[T any](c *Coordinator[T], kv KVStore, logger *slog.Logger) {
	if kv == nil {
		return
	}
	c.OnLoad = func(key Key, value T) {
		data, err := json.Marshal(value)
		if err != nil {
			return
		}
		if err := kv.Set(context.Background(), snapshotPrefix+string(key), string(data)); err != nil {
			logger.Debug("persist snapshot", "resource", c.Name(), "error", err)
		}
	}
	c.Fallback = func(key Key) (T, bool) {
		var out T
		raw, ok, err := kv.Get(context.Background(), snapshotPrefix+string(key))
		if err != nil || !ok {
			return out, false
		}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return out, false
		}
		return out, true
	}
}

// --- key functions ---

// requireParam returns the identifier value only when present and non-empty;
// an empty string never counts as a valid identifier.
func requireParam(v string, ok bool) (string, bool) {
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func withQuery(path string, f Filters) Key {
	if qs := f.Query.Encode(); qs != "" {
		return Key(path + "?" + qs)
	}
	return Key(path)
}

func organizationsKey(_ navigation.Context, f Filters) Key {
	return withQuery("/api/v1/organizations", f)
}

func organizationKey(nav navigation.Context, _ Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	return Key("/api/v1/organizations/" + url.PathEscape(org))
}

func projectsKey(nav navigation.Context, f Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	return withQuery("/api/v1/organizations/"+url.PathEscape(org)+"/projects", f)
}

func projectKey(nav navigation.Context, _ Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	proj, ok := requireParam(nav.ProjectID())
	if !ok {
		return NoFetch
	}
	return Key("/api/v1/organizations/" + url.PathEscape(org) + "/projects/" + url.PathEscape(proj))
}

func issuesKey(nav navigation.Context, f Filters) Key {
	key := projectKey(nav, f)
	if key.IsZero() {
		return NoFetch
	}
	return withQuery(string(key)+"/issues", f)
}

func issueKey(nav navigation.Context, f Filters) Key {
	base := projectKey(nav, f)
	if base.IsZero() {
		return NoFetch
	}
	issue, ok := requireParam(nav.IssueID())
	if !ok {
		return NoFetch
	}
	return Key(string(base) + "/issues/" + url.PathEscape(issue))
}

func spacesKey(nav navigation.Context, f Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	return withQuery("/api/v1/organizations/"+url.PathEscape(org)+"/spaces", f)
}

func spaceKey(nav navigation.Context, _ Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	space, ok := requireParam(nav.SpaceID())
	if !ok {
		return NoFetch
	}
	return Key("/api/v1/organizations/" + url.PathEscape(org) + "/spaces/" + url.PathEscape(space))
}

func pagesKey(nav navigation.Context, f Filters) Key {
	base := spaceKey(nav, f)
	if base.IsZero() {
		return NoFetch
	}
	return withQuery(string(base)+"/pages", f)
}

func pageKey(nav navigation.Context, f Filters) Key {
	base := spaceKey(nav, f)
	if base.IsZero() {
		return NoFetch
	}
	page, ok := requireParam(nav.PageID())
	if !ok {
		return NoFetch
	}
	return Key(string(base) + "/pages/" + url.PathEscape(page))
}

func membersKey(nav navigation.Context, f Filters) Key {
	org, ok := requireParam(nav.OrganizationID())
	if !ok {
		return NoFetch
	}
	return withQuery("/api/v1/organizations/"+url.PathEscape(org)+"/members", f)
}

func commentsKey(nav navigation.Context, f Filters) Key {
	base := issueKey(nav, f)
	if base.IsZero() {
		return NoFetch
	}
	return withQuery(string(base)+"/comments", f)
}
