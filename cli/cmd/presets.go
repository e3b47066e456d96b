package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cli/render"
	"github.com/gnomonworks/yantra/site"
)

// PresetsCommand returns the presets command. It is fully local and never
// contacts the compute service.
func PresetsCommand() *cli.Command {
	return &cli.Command{
		Name:   "presets",
		Usage:  "List the preset observatory sites",
		Flags:  CommonFlags(),
		Action: presetsAction,
	}
}

func presetsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	return r.Presets(site.Presets())
}
