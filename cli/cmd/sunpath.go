package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cli/render"
	"github.com/gnomonworks/yantra/compute"
)

// SunPathCommand returns the sunpath command: queries the sun's trajectory
// for a site and date.
func SunPathCommand() *cli.Command {
	flags := append(ServiceFlags(), LocationFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "date",
			Usage: "Date (YYYY-MM-DD), defaults to today",
		},
		&cli.IntFlag{
			Name:  "points",
			Usage: "Number of sample points over the day",
			Value: compute.DefaultSunPathPoints,
		},
	)

	return &cli.Command{
		Name:   "sunpath",
		Usage:  "Query the sun's path for a site and date",
		Flags:  flags,
		Action: sunPathAction,
	}
}

func sunPathAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	e, err := newEnv(c, true)
	if err != nil {
		return err
	}
	defer func() { _ = e.client.Close() }()

	loc, err := resolveLocation(c, e.cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	date := c.String("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return cli.Exit("invalid --date: expected YYYY-MM-DD", exitUsage)
	}

	ctx, cancel := signalContext()
	defer cancel()

	path, err := e.client.SunPath(ctx, &compute.SunPathRequest{
		Location:  loc,
		Date:      date,
		NumPoints: c.Int("points"),
	})
	if err != nil {
		_ = r.Error(failureText(err))
		return cli.Exit("", exitGenerationFailed)
	}

	return r.SunPath(path)
}
