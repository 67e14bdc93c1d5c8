package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
)

func runMembers(args []string) error {
	fs := flag.NewFlagSet("members", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	project := fs.String("project", "", "Narrow to members of one project")
	if len(args) > 0 && args[0] == "list" {
		args = args[1:]
	}
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

	members, err := api.Members.List(context.Background(), *org, *project, client.Query{})
	if err != nil {
		return err
	}
	if handled, err := app.emit(members); handled {
		return err
	}
	rows := make([][]string, 0, len(members.Items))
	for _, m := range members.Items {
		rows = append(rows, []string{m.ID, m.Name, m.Email, m.Role})
	}
	table([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
	return nil
}
