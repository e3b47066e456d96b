package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cli/tui"
	"github.com/gnomonworks/yantra/site"
)

// SessionCommand returns the session command: the interactive TUI where
// the user picks a site, tunes parameters, and triggers generations.
func SessionCommand() *cli.Command {
	flags := append(ServiceFlags(), PresetFlag)

	return &cli.Command{
		Name:   "session",
		Usage:  "Start an interactive generation session",
		Flags:  flags,
		Action: sessionAction,
	}
}

func sessionAction(c *cli.Context) error {
	e, err := newEnv(c, true)
	if err != nil {
		return err
	}
	defer func() { _ = e.client.Close() }()
	defer e.logSessionSummary()

	// Seed the initial site from --preset or the config default.
	presetID := c.String("preset")
	if presetID == "" {
		presetID = e.cfg.Defaults.Preset
	}
	if presetID != "" {
		loc, err := site.SelectPreset(presetID)
		if err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		e.store.SetLocation(loc)
	}

	return tui.RunSession(e.store, e.orchestrator())
}
