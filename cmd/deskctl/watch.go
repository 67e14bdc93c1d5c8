package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/live"
	"github.com/GoCodeAlone/workdesk/resource"
)

// runWatch connects to the service's websocket event stream and prints every
// entity-change event until interrupted.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	app := registerAppFlags(fs)
	kind := fs.String("kind", "", "Only show events for one entity kind (issue, page, ...)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	if cfg.LiveEndpoint == "" {
		return fmt.Errorf("live_endpoint is not configured (or set WORKDESK_LIVE_ENDPOINT)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	b := bus.New(logger)
	b.Subscribe(bus.TopicEntityMutated, func(event any) {
		m, ok := event.(resource.Mutation)
		if !ok {
			return
		}
		if *kind != "" && m.Kind != *kind {
			return
		}
		fmt.Printf("%s\t%s\t%s\n", m.Kind, m.Action, m.ID)
	})

	sub := live.NewSubscriber(live.SubscriberConfig{
		URL:    cfg.LiveEndpoint,
		Token:  cfg.Token,
		Logger: logger,
	}, b)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", cfg.LiveEndpoint)
	sub.Run(ctx)
	return nil
}
