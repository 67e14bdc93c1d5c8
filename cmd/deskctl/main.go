package main

import (
	"fmt"
	"os"
)

var version = "dev"

var commands = map[string]func([]string) error{
	"orgs":     runOrgs,
	"projects": runProjects,
	"issues":   runIssues,
	"spaces":   runSpaces,
	"pages":    runPages,
	"members":  runMembers,
	"comments": runComments,
	"open":     runOpen,
	"watch":    runWatch,
	"config":   runConfig,
}

func usage() {
	fmt.Fprintf(os.Stderr, `deskctl - workdesk CLI (version %s)

Usage:
  deskctl <command> [options]

Commands:
  orgs       Organizations (list, get, create, delete)
  projects   Projects within an organization (list, get, create, delete)
  issues     Issues within a project (list, get, create, move, board)
  spaces     Wiki spaces within an organization (list, get, create, delete)
  pages      Wiki pages within a space (list, tree, get, create, delete)
  members    Organization members (list)
  comments   Issue comments (list, add)
  open       Resolve an app location and load everything it selects
  watch      Stream live entity-change events from the service
  config     Show the effective configuration (show, path)

Run 'deskctl <command> -h' for command-specific help.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}
	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println(version)
		os.Exit(0)
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err := fn(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
