package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/itchyny/gojq"

	"github.com/GoCodeAlone/workdesk/client"
	"github.com/GoCodeAlone/workdesk/config"
)

// appFlags carries the options every subcommand shares: which config file to
// read and how to render output.
type appFlags struct {
	configPath string
	jsonOut    bool
	jqExpr     string
}

func registerAppFlags(fs *flag.FlagSet) *appFlags {
	a := &appFlags{}
	fs.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	fs.BoolVar(&a.jsonOut, "json", false, "Print raw JSON instead of a table")
	fs.StringVar(&a.jqExpr, "jq", "", "Apply a jq expression to the result and print the output")
	return a
}

func (a *appFlags) loadConfig() (config.Config, error) {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func (a *appFlags) apiClient() (*client.Client, config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	c := client.New(client.Config{
		BaseURL:           cfg.BaseURL,
		Token:             cfg.Token,
		Timeout:           cfg.TimeoutDuration,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	return c, cfg, nil
}

// emit renders v when -json or -jq was passed. It reports whether it handled
// the output; if not, the caller prints its own table.
func (a *appFlags) emit(v any) (bool, error) {
	switch {
	case a.jqExpr != "":
		return true, emitJQ(v, a.jqExpr)
	case a.jsonOut:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		fmt.Println(string(data))
		return true, nil
	default:
		return false, nil
	}
}

// emitJQ applies a jq expression to v and prints every result as JSON.
// The expression is parsed and compiled up front so syntax errors surface
// before any output is written.
func emitJQ(v any, expr string) error {
	parsed, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("compile jq expression %q: %w", expr, err)
	}

	// gojq operates on JSON-compatible Go types; round-trip through JSON to
	// normalize structs into maps.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return err
	}

	iter := code.Run(input)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := out.(error); isErr {
			return fmt.Errorf("jq: %w", err)
		}
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}

// table writes rows through a tabwriter for aligned column output.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
