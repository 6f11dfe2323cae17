package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonnieCache/cargo-open/internal/cli"
	"github.com/JonnieCache/cargo-open/pkg/editor"
	clierrors "github.com/JonnieCache/cargo-open/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a failure to the process exit status, reporting it on
// stderr where that is useful.
func exitCode(err error) int {
	// Interrupted: the shell convention for death by SIGINT.
	if errors.Is(err, context.Canceled) {
		return 130
	}

	// The editor ran and failed. Its status passes through unchanged, and
	// its complaints already went to the inherited stderr.
	var exitErr *editor.ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintln(os.Stderr, "error: "+clierrors.UserMessage(err))
	return 1
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
			c.InstallDebugHooks()
		}
		return nil
	}

	root.SetArgs(subcommandArgs(os.Args[1:]))
	return root.ExecuteContext(ctx)
}

// subcommandArgs drops the leading "open" that cargo inserts when the
// binary runs as `cargo open ...` rather than directly.
func subcommandArgs(args []string) []string {
	if len(args) > 0 && args[0] == "open" {
		return args[1:]
	}
	return args
}
