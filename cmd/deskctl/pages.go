package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/resource"
)

func runPages(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl pages <list|tree|get|create|delete> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return pagesList(rest)
	case "tree":
		return pagesTree(rest)
	case "get":
		return pagesGet(rest)
	case "create":
		return pagesCreate(rest)
	case "delete":
		return pagesDelete(rest)
	default:
		return fmt.Errorf("unknown pages subcommand: %s", sub)
	}
}

type pageScope struct {
	org   *string
	space *string
}

func registerPageScope(fs *flag.FlagSet) pageScope {
	return pageScope{
		org:   fs.String("org", "", "Organization id (required)"),
		space: fs.String("space", "", "Space id (required)"),
	}
}

func (s pageScope) validate() error {
	if *s.org == "" || *s.space == "" {
		return fmt.Errorf("-org and -space are required")
	}
	return nil
}

func pagesList(args []string) error {
	fs := flag.NewFlagSet("pages list", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerPageScope(fs)
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

	pages, err := api.Pages.List(context.Background(), *scope.org, *scope.space, client.Query{})
	if err != nil {
		return err
	}
	if handled, err := app.emit(pages); handled {
		return err
	}
	rows := make([][]string, 0, len(pages.Items))
	for _, p := range pages.Items {
		rows = append(rows, []string{p.ID, p.ParentID, p.Title})
	}
	table([]string{"ID", "PARENT", "TITLE"}, rows)
	return nil
}

func pagesTree(args []string) error {
	fs := flag.NewFlagSet("pages tree", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerPageScope(fs)
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

	pages, err := api.Pages.List(context.Background(), *scope.org, *scope.space, client.Query{})
	if err != nil {
		return err
	}

	roots := resource.BuildPageTree(pages.Items)
	if handled, err := app.emit(roots); handled {
		return err
	}
	printPageNodes(roots, 0)
	return nil
}

func printPageNodes(nodes []*resource.PageNode, depth int) {
	for _, n := range nodes {
		fmt.Printf("%s%s  %s\n", strings.Repeat("  ", depth), n.Page.ID, n.Page.Title)
		printPageNodes(n.Children, depth+1)
	}
}

func pagesGet(args []string) error {
	fs := flag.NewFlagSet("pages get", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerPageScope(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl pages get -org <org> -space <space> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	p, err := api.Pages.Get(context.Background(), *scope.org, *scope.space, fs.Arg(0))
	if err != nil {
		return err
	}
	if handled, err := app.emit(p); handled {
		return err
	}
	fmt.Printf("# %s\n\n%s\n", p.Title, p.Content)
	return nil
}

func pagesCreate(args []string) error {
	fs := flag.NewFlagSet("pages create", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerPageScope(fs)
	title := fs.String("title", "", "Page title (required)")
	parent := fs.String("parent", "", "Parent page id (empty for a root page)")
	content := fs.String("content", "", "Page content")
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

	p, err := api.Pages.Create(context.Background(), *scope.org, *scope.space, client.Page{
		Title:    *title,
		ParentID: *parent,
		Content:  *content,
	})
	if err != nil {
		return err
	}
	if handled, err := app.emit(p); handled {
		return err
	}
	fmt.Printf("created page %s\n", p.ID)
	return nil
}

func pagesDelete(args []string) error {
	fs := flag.NewFlagSet("pages delete", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerPageScope(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl pages delete -org <org> -space <space> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}
	if err := api.Pages.Delete(context.Background(), *scope.org, *scope.space, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("deleted page %s\n", fs.Arg(0))
	return nil
}
