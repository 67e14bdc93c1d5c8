package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/resource"
)

func runIssues(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl issues <list|get|create|move|board> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return issuesList(rest)
	case "get":
		return issuesGet(rest)
	case "create":
		return issuesCreate(rest)
	case "move":
		return issuesMove(rest)
	case "board":
		return issuesBoard(rest)
	default:
		return fmt.Errorf("unknown issues subcommand: %s", sub)
	}
}

// issueScope holds the flags that identify which project's issues to operate
// on, shared by every issues subcommand.
type issueScope struct {
	org     *string
	project *string
}

func registerIssueScope(fs *flag.FlagSet) issueScope {
	return issueScope{
		org:     fs.String("org", "", "Organization id (required)"),
		project: fs.String("project", "", "Project id (required)"),
	}
}

func (s issueScope) validate() error {
	if *s.org == "" || *s.project == "" {
		return fmt.Errorf("-org and -project are required")
	}
	return nil
}

func issuesList(args []string) error {
	fs := flag.NewFlagSet("issues list", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerIssueScope(fs)
	search := fs.String("q", "", "Search term (server-side)")
	status := fs.String("status", "", "Filter by status (server-side)")
	assignee := fs.String("assignee", "", "Filter by assignee id (server-side)")
	sortField := fs.String("sort", "", "Sort field")
	sortDir := fs.String("dir", "", "Sort direction (asc|desc)")
	localFilter := fs.String("filter", "", `Client-side filter expression, e.g. 'item.Priority == "high"'`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	q := client.Query{
		Search:     *search,
		Status:     *status,
		AssigneeID: *assignee,
		SortField:  *sortField,
		SortDir:    *sortDir,
	}
	issues, err := api.Issues.List(context.Background(), *scope.org, *scope.project, q)
	if err != nil {
		return err
	}

	items := issues.Items
	if *localFilter != "" {
		lf, err := resource.CompileLocalFilter(*localFilter)
		if err != nil {
			return err
		}
		items = resource.ApplyLocalFilter(lf, items)
	}

	if handled, err := app.emit(items); handled {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, is := range items {
		rows = append(rows, []string{is.ID, is.Status, is.AssigneeID, is.Title})
	}
	table([]string{"ID", "STATUS", "ASSIGNEE", "TITLE"}, rows)
	return nil
}

func issuesGet(args []string) error {
	fs := flag.NewFlagSet("issues get", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerIssueScope(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl issues get -org <org> -project <project> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	is, err := api.Issues.Get(context.Background(), *scope.org, *scope.project, fs.Arg(0))
	if err != nil {
		return err
	}
	if handled, err := app.emit(is); handled {
		return err
	}
	fmt.Printf("%s  [%s]  %s\n", is.ID, is.Status, is.Title)
	if is.AssigneeID != "" {
		fmt.Printf("assignee: %s\n", is.AssigneeID)
	}
	if is.Description != "" {
		fmt.Println(is.Description)
	}
	return nil
}

func issuesCreate(args []string) error {
	fs := flag.NewFlagSet("issues create", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerIssueScope(fs)
	title := fs.String("title", "", "Issue title (required)")
	body := fs.String("body", "", "Issue description")
	typ := fs.String("type", "", "Issue type (bug, feature, task)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if *title == "" {
		return fmt.Errorf("-title is required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	is, err := api.Issues.Create(context.Background(), *scope.org, *scope.project, client.Issue{
		Title:       *title,
		Description: *body,
		Type:        *typ,
	})
	if err != nil {
		return err
	}
	if handled, err := app.emit(is); handled {
		return err
	}
	fmt.Printf("created issue %s\n", is.ID)
	return nil
}

func issuesMove(args []string) error {
	fs := flag.NewFlagSet("issues move", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerIssueScope(fs)
	status := fs.String("status", "", "Target status column (required)")
	rank := fs.String("rank", "", "Target rank within the column")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl issues move -org <org> -project <project> -status <status> <id>")
	}
	if *status == "" {
		return fmt.Errorf("-status is required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	is, err := api.Issues.Move(context.Background(), *scope.org, *scope.project, fs.Arg(0), *status, *rank)
	if err != nil {
		return err
	}
	if handled, err := app.emit(is); handled {
		return err
	}
	fmt.Printf("moved issue %s to %s\n", is.ID, is.Status)
	return nil
}

func issuesBoard(args []string) error {
	fs := flag.NewFlagSet("issues board", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerIssueScope(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	issues, err := api.Issues.List(context.Background(), *scope.org, *scope.project, client.Query{})
	if err != nil {
		return err
	}

	columns := resource.GroupBoard(issues.Items)
	if handled, err := app.emit(columns); handled {
		return err
	}
	for _, col := range columns {
		fmt.Printf("%s (%d)\n", col.Status, len(col.Issues))
		for _, is := range col.Issues {
			fmt.Printf("  %s  %s\n", is.ID, is.Title)
		}
	}
	return nil
}
