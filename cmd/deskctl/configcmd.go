package main

import (
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/workdesk/config"
)

func runConfig(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: deskctl config <show|path> [options]")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "path":
		fmt.Println(config.DefaultPath())
		return nil
	case "show":
		return configShow(rest)
	default:
		return fmt.Errorf("unknown config subcommand: %s", sub)
	}
}

// configShow prints the effective configuration after defaults and env
// overrides, with the token redacted.
func configShow(args []string) error {
	fs := flag.NewFlagSet("config show", flag.ExitOnError)
	app := registerAppFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Token != "" {
		cfg.Token = "********"
	}
	cfg.Prefs.RedisPassword = ""

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
