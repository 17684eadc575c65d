package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"featureselect/internal/commander"
)

func main() {
	interactive := flag.Bool("i", true, "Interactive mode")
	classic := flag.Bool("classic", false, "Prompt for a file and an algorithm number, then print the trace")
	verbose := flag.Bool("v", false, "Log search steps to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := commander.NewCommander(os.Stdin, os.Stdout)
	if *verbose {
		cmd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	switch {
	case *classic:
		if err := cmd.RunClassic(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *interactive:
		cmd.Start(ctx)
	}
}
