package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
)

func runComments(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl comments <list|add> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return commentsList(rest)
	case "add":
		return commentsAdd(rest)
	default:
		return fmt.Errorf("unknown comments subcommand: %s", sub)
	}
}

type commentScope struct {
	org     *string
	project *string
	issue   *string
}

func registerCommentScope(fs *flag.FlagSet) commentScope {
	return commentScope{
		org:     fs.String("org", "", "Organization id (required)"),
		project: fs.String("project", "", "Project id (required)"),
		issue:   fs.String("issue", "", "Issue id (required)"),
	}
}

func (s commentScope) validate() error {
	if *s.org == "" || *s.project == "" || *s.issue == "" {
		return fmt.Errorf("-org, -project, and -issue are required")
	}
	return nil
}

func commentsList(args []string) error {
	fs := flag.NewFlagSet("comments list", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerCommentScope(fs)
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

	comments, err := api.Comments.List(context.Background(), *scope.org, *scope.project, *scope.issue, client.Query{})
	if err != nil {
		return err
	}
	if handled, err := app.emit(comments); handled {
		return err
	}
	for _, c := range comments.Items {
		fmt.Printf("%s  %s  %s\n", c.ID, c.AuthorID, c.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  %s\n", c.Body)
	}
	return nil
}

func commentsAdd(args []string) error {
	fs := flag.NewFlagSet("comments add", flag.ExitOnError)
	app := registerAppFlags(fs)
	scope := registerCommentScope(fs)
	body := fs.String("body", "", "Comment body (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := scope.validate(); err != nil {
		return err
	}
	if *body == "" {
		return fmt.Errorf("-body is required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	c, err := api.Comments.Create(context.Background(), *scope.org, *scope.project, *scope.issue, client.Comment{Body: *body})
	if err != nil {
		return err
	}
	if handled, err := app.emit(c); handled {
		return err
	}
	fmt.Printf("added comment %s\n", c.ID)
	return nil
}
