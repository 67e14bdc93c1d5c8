package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/config"
	"github.com/GoCodeAlone/workdesk/navigation"
	"github.com/GoCodeAlone/workdesk/prefs"
	"github.com/GoCodeAlone/workdesk/resource"
)

// runOpen resolves an app location like "orgs/o1/projects/p1/issues/i5?tab=activity"
// and loads everything that location selects, the same way the full client
// session does: the resolved navigation context fans in to one coordinator
// per entity type and each coordinator decides what to fetch.
func runOpen(args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	app := registerAppFlags(fs)
	wait := fs.Duration("wait", 10*time.Second, "How long to wait for loads to settle")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: deskctl open [options] <location>\n\nResolve a location and load everything it selects.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("location is required")
	}
	location := fs.Arg(0)

	api, cfg, err := app.apiClient()
	if err != nil {
		return err
	}

	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	b := bus.New(logger)
	reg := resource.NewRegistry(resource.RegistryConfig{
		API:     api,
		Bus:     b,
		Logger:  logger,
		Metrics: resource.NewMetrics(),
		Prefs:   store,
	})

	nav := navigation.NewNavigator(navigation.NewRouter(navigation.DefaultRoutes()...), b, logger)
	if err := nav.Navigate(location); err != nil {
		return err
	}

	printContext(nav.Current())

	coordinatorsSettled(reg, *wait)
	fmt.Println()
	printStates(reg)
	return nil
}

// openPrefs builds the preference store the config selects.
func openPrefs(cfg config.Config) (prefs.Store, error) {
	if cfg.Prefs.Backend == "redis" {
		return prefs.NewRedisStore(prefs.RedisStoreConfig{
			Address:  cfg.Prefs.RedisAddress,
			Password: cfg.Prefs.RedisPassword,
			DB:       cfg.Prefs.RedisDB,
			TTL:      cfg.Prefs.RedisTTLDuration,
		}), nil
	}

	path := cfg.Prefs.Path
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("prefs: resolve config dir: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "workdesk"), 0o700); err != nil {
			return nil, fmt.Errorf("prefs: create config dir: %w", err)
		}
		path = filepath.Join(dir, "workdesk", "prefs.db")
	}
	return prefs.NewSQLiteStore(path)
}

func printContext(ctx navigation.Context) {
	fmt.Println("resolved context:")
	for _, p := range []struct {
		label string
		get   func() (string, bool)
	}{
		{"organization", ctx.OrganizationID},
		{"project", ctx.ProjectID},
		{"issue", ctx.IssueID},
		{"space", ctx.SpaceID},
		{"page", ctx.PageID},
		{"tab", ctx.Tab},
	} {
		if v, ok := p.get(); ok {
			fmt.Printf("  %-13s %s\n", p.label, v)
		}
	}
}

// coordinatorsSettled polls until no coordinator is mid-fetch or the wait
// budget runs out.
func coordinatorsSettled(reg *resource.Registry, wait time.Duration) {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if !anyLoading(reg) {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func anyLoading(reg *resource.Registry) bool {
	return reg.Organizations.Loading() || reg.Organization.Loading() ||
		reg.Projects.Loading() || reg.Project.Loading() ||
		reg.Issues.Loading() || reg.Issue.Loading() ||
		reg.Spaces.Loading() || reg.Space.Loading() ||
		reg.Pages.Loading() || reg.Page.Loading() ||
		reg.Members.Loading() || reg.Comments.Loading()
}

func printStates(reg *resource.Registry) {
	rows := [][]string{
		listRow("organizations", reg.Organizations),
		oneRow("organization", reg.Organization),
		listRow("projects", reg.Projects),
		oneRow("project", reg.Project),
		listRow("issues", reg.Issues),
		oneRow("issue", reg.Issue),
		listRow("spaces", reg.Spaces),
		oneRow("space", reg.Space),
		listRow("pages", reg.Pages),
		oneRow("page", reg.Page),
		listRow("members", reg.Members),
		listRow("comments", reg.Comments),
	}
	table([]string{"RESOURCE", "STATE", "DETAIL"}, rows)
}

func listRow[E any](name string, c *resource.Coordinator[client.List[E]]) []string {
	detail := ""
	switch {
	case c.HasError():
		detail = c.Err().Error()
	case c.State() == resource.StateLoaded:
		detail = strconv.Itoa(len(resource.FilteredItems(c))) + " items"
	}
	return []string{name, c.State().String(), detail}
}

func oneRow[T any](name string, c *resource.Coordinator[T]) []string {
	detail := ""
	if c.HasError() {
		detail = c.Err().Error()
		if _, ok := resource.Current(c); ok {
			detail += " (previous value retained)"
		}
	}
	return []string{name, c.State().String(), detail}
}
