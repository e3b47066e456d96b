package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/types"
)

// FetchCommand returns the fetch command: downloads an export artifact
// from the last cached generation result.
func FetchCommand() *cli.Command {
	flags := append(CommonFlags(),
		&cli.StringFlag{
			Name:     "export",
			Aliases:  []string{"e"},
			Usage:    "Export format to download: dxf, stl, gltf, step, pdf, svg",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Destination file path (defaults to <result-id>.<format>)",
		},
	)

	return &cli.Command{
		Name:   "fetch",
		Usage:  "Download an export artifact from the last result",
		Flags:  flags,
		Action: fetchAction,
	}
}

func fetchAction(c *cli.Context) error {
	e, err := newEnv(c, false)
	if err != nil {
		return err
	}

	store, err := e.resultCache()
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	result, err := store.Load()
	if err != nil {
		return cli.Exit(fmt.Sprintf("no result to fetch from: %v", err), exitUsage)
	}

	format := types.ExportFormat(c.String("export"))
	artifact := result.Export(format)
	if artifact == nil {
		return cli.Exit(fmt.Sprintf("result %s has no %s export", result.ID, format), exitUsage)
	}

	destPath := c.String("out")
	if destPath == "" {
		destPath = fmt.Sprintf("%s.%s", result.ID, format)
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := e.fetcher().Fetch(ctx, artifact, destPath); err != nil {
		return cli.Exit(fmt.Sprintf("fetch failed: %v", err), exitGenerationFailed)
	}

	fmt.Fprintf(c.App.Writer, "wrote %s (%s, %d bytes)\n", destPath, format, artifact.SizeBytes)
	return nil
}
