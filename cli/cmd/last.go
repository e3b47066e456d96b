package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cache"
	"github.com/gnomonworks/yantra/cli/render"
)

// LastCommand returns the last command: shows the cached result from the
// most recent successful generation. Fully local.
func LastCommand() *cli.Command {
	flags := append(CommonFlags(),
		&cli.BoolFlag{
			Name:  "clear",
			Usage: "Discard the cached result instead of showing it",
		},
	)

	return &cli.Command{
		Name:   "last",
		Usage:  "Show the last generation result",
		Flags:  flags,
		Action: lastAction,
	}
}

func lastAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	e, err := newEnv(c, false)
	if err != nil {
		return err
	}

	store, err := e.resultCache()
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	if c.Bool("clear") {
		return store.Clear()
	}

	result, err := store.Load()
	if err != nil {
		if errors.Is(err, cache.ErrNoResult) {
			return cli.Exit("no cached result; run 'yantra generate' first", exitUsage)
		}
		return cli.Exit(err.Error(), exitUsage)
	}

	return r.Result(result)
}
