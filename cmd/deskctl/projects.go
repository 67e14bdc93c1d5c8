package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
)

func runProjects(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl projects <list|get|create|delete> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return projectsList(rest)
	case "get":
		return projectsGet(rest)
	case "create":
		return projectsCreate(rest)
	case "delete":
		return projectsDelete(rest)
	default:
		return fmt.Errorf("unknown projects subcommand: %s", sub)
	}
}

func projectsList(args []string) error {
	fs := flag.NewFlagSet("projects list", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	search := fs.String("q", "", "Search term")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" {
		return fmt.Errorf("-org is required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	projects, err := api.Projects.List(context.Background(), *org, client.Query{Search: *search})
	if err != nil {
		return err
	}
	if handled, err := app.emit(projects); handled {
		return err
	}

	rows := make([][]string, 0, len(projects.Items))
	for _, p := range projects.Items {
		rows = append(rows, []string{p.ID, p.Identifier, p.Name})
	}
	table([]string{"ID", "KEY", "NAME"}, rows)
	return nil
}

func projectsGet(args []string) error {
	fs := flag.NewFlagSet("projects get", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" {
		return fmt.Errorf("-org is required")
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl projects get -org <org> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	p, err := api.Projects.Get(context.Background(), *org, fs.Arg(0))
	if err != nil {
		return err
	}
	if handled, err := app.emit(p); handled {
		return err
	}
	fmt.Printf("%s  [%s]  %s\n", p.ID, p.Identifier, p.Name)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	return nil
}

func projectsCreate(args []string) error {
	fs := flag.NewFlagSet("projects create", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	name := fs.String("name", "", "Project name (required)")
	identifier := fs.String("key", "", "Short project key, e.g. DESK")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" || *name == "" {
		return fmt.Errorf("-org and -name are required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	p, err := api.Projects.Create(context.Background(), *org, client.Project{Name: *name, Identifier: *identifier})
	if err != nil {
		return err
	}
	if handled, err := app.emit(p); handled {
		return err
	}
	fmt.Printf("created project %s\n", p.ID)
	return nil
}

func projectsDelete(args []string) error {
	fs := flag.NewFlagSet("projects delete", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" {
		return fmt.Errorf("-org is required")
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl projects delete -org <org> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}
	if err := api.Projects.Delete(context.Background(), *org, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("deleted project %s\n", fs.Arg(0))
	return nil
}
