package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
)

func runSpaces(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl spaces <list|get|create|delete> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return spacesList(rest)
	case "get":
		return spacesGet(rest)
	case "create":
		return spacesCreate(rest)
	case "delete":
		return spacesDelete(rest)
	default:
		return fmt.Errorf("unknown spaces subcommand: %s", sub)
	}
}

func spacesList(args []string) error {
	fs := flag.NewFlagSet("spaces list", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
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

	spaces, err := api.Spaces.List(context.Background(), *org, client.Query{})
	if err != nil {
		return err
	}
	if handled, err := app.emit(spaces); handled {
		return err
	}
	rows := make([][]string, 0, len(spaces.Items))
	for _, sp := range spaces.Items {
		rows = append(rows, []string{sp.ID, sp.Name})
	}
	table([]string{"ID", "NAME"}, rows)
	return nil
}

func spacesGet(args []string) error {
	fs := flag.NewFlagSet("spaces get", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" {
		return fmt.Errorf("-org is required")
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl spaces get -org <org> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	sp, err := api.Spaces.Get(context.Background(), *org, fs.Arg(0))
	if err != nil {
		return err
	}
	if handled, err := app.emit(sp); handled {
		return err
	}
	fmt.Printf("%s  %s\n", sp.ID, sp.Name)
	if sp.Description != "" {
		fmt.Println(sp.Description)
	}
	return nil
}

func spacesCreate(args []string) error {
	fs := flag.NewFlagSet("spaces create", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	name := fs.String("name", "", "Space name (required)")
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

	sp, err := api.Spaces.Create(context.Background(), *org, client.Space{Name: *name})
	if err != nil {
		return err
	}
	if handled, err := app.emit(sp); handled {
		return err
	}
	fmt.Printf("created space %s\n", sp.ID)
	return nil
}

func spacesDelete(args []string) error {
	fs := flag.NewFlagSet("spaces delete", flag.ExitOnError)
	app := registerAppFlags(fs)
	org := fs.String("org", "", "Organization id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *org == "" {
		return fmt.Errorf("-org is required")
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl spaces delete -org <org> <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}
	if err := api.Spaces.Delete(context.Background(), *org, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("deleted space %s\n", fs.Arg(0))
	return nil
}
