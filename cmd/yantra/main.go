// Package main provides the yantra CLI entrypoint.
//
// Usage:
//
//	yantra <command> [options]
//
// Exit codes:
//   - 0: success
//   - 1: generation or fetch failure
//   - 2: usage error (bad flags, invalid coordinates, missing config)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cli/cmd"
	"github.com/gnomonworks/yantra/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "yantra",
		Usage:          "Parametric astronomical instrument generator CLI",
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.GenerateCommand(),
			cmd.SessionCommand(),
			cmd.SunPathCommand(),
			cmd.PresetsCommand(),
			cmd.LastCommand(),
			cmd.FetchCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled cli.ExitCoder errors.
		os.Exit(1)
	}
}

// exitErrHandler preserves exit codes from cli.Exit().
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"; skip those.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
