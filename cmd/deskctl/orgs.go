package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/GoCodeAlone/workdesk/client"
)

func runOrgs(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl orgs <list|get|create|delete> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return orgsList(rest)
	case "get":
		return orgsGet(rest)
	case "create":
		return orgsCreate(rest)
	case "delete":
		return orgsDelete(rest)
	default:
		return fmt.Errorf("unknown orgs subcommand: %s", sub)
	}
}

func orgsList(args []string) error {
	fs := flag.NewFlagSet("orgs list", flag.ExitOnError)
	app := registerAppFlags(fs)
	search := fs.String("q", "", "Search term")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	orgs, err := api.Organizations.List(context.Background(), client.Query{Search: *search})
	if err != nil {
		return err
	}
	if handled, err := app.emit(orgs); handled {
		return err
	}

	rows := make([][]string, 0, len(orgs.Items))
	for _, o := range orgs.Items {
		rows = append(rows, []string{o.ID, o.Name, o.Slug})
	}
	table([]string{"ID", "NAME", "SLUG"}, rows)
	return nil
}

func orgsGet(args []string) error {
	fs := flag.NewFlagSet("orgs get", flag.ExitOnError)
	app := registerAppFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl orgs get <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	org, err := api.Organizations.Get(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	if handled, err := app.emit(org); handled {
		return err
	}

	fmt.Printf("%s  %s\n", org.ID, org.Name)
	if org.Description != "" {
		fmt.Println(org.Description)
	}
	return nil
}

func orgsCreate(args []string) error {
	fs := flag.NewFlagSet("orgs create", flag.ExitOnError)
	app := registerAppFlags(fs)
	name := fs.String("name", "", "Organization name (required)")
	slug := fs.String("slug", "", "URL slug")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}

	org, err := api.Organizations.Create(context.Background(), client.Organization{Name: *name, Slug: *slug})
	if err != nil {
		return err
	}
	if handled, err := app.emit(org); handled {
		return err
	}
	fmt.Printf("created organization %s\n", org.ID)
	return nil
}

func orgsDelete(args []string) error {
	fs := flag.NewFlagSet("orgs delete", flag.ExitOnError)
	app := registerAppFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: deskctl orgs delete <id>")
	}

	api, _, err := app.apiClient()
	if err != nil {
		return err
	}
	if err := api.Organizations.Delete(context.Background(), fs.Arg(0)); err != nil {
		return err
	}
	fmt.Printf("deleted organization %s\n", fs.Arg(0))
	return nil
}
