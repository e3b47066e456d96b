package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/cli/render"
	"github.com/gnomonworks/yantra/params"
	"github.com/gnomonworks/yantra/types"
)

// GenerateCommand returns the generate command: a one-shot generation
// against the compute service.
func GenerateCommand() *cli.Command {
	flags := append(ServiceFlags(), LocationFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:    "instrument",
			Aliases: []string{"i"},
			Usage:   "Instrument type: samrat, rama",
		},
		&cli.Float64Flag{
			Name:  "scale",
			Usage: "Overall scale in meters",
		},
		&cli.Float64Flag{
			Name:  "thickness",
			Usage: "Material thickness in meters",
		},
		&cli.Float64Flag{
			Name:  "kerf",
			Usage: "Kerf compensation in meters",
		},
		&cli.BoolFlag{
			Name:  "no-base",
			Usage: "Omit the base platform",
		},
	)

	return &cli.Command{
		Name:   "generate",
		Usage:  "Generate an instrument for a site",
		Flags:  flags,
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	e, err := newEnv(c, true)
	if err != nil {
		return err
	}
	defer func() { _ = e.client.Close() }()
	defer e.logSessionSummary()

	loc, err := resolveLocation(c, e.cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	e.store.SetLocation(loc)

	if err := applyParamFlags(c, e); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := e.orchestrator().Generate(ctx)
	if err != nil {
		// The store holds the display message for the failure.
		_ = r.Error(e.store.Snapshot().LastError)
		return cli.Exit("", exitGenerationFailed)
	}

	return r.Result(result)
}

// applyParamFlags folds the generation parameter flags into the store.
func applyParamFlags(c *cli.Context, e *env) error {
	return e.store.UpdateParams(func(p *params.Params) error {
		if v := c.String("instrument"); v != "" {
			if err := p.SetInstrument(types.InstrumentType(v)); err != nil {
				return err
			}
		}
		if c.IsSet("scale") {
			if err := p.SetScale(c.Float64("scale")); err != nil {
				return err
			}
		}
		if c.IsSet("thickness") {
			if err := p.SetMaterialThickness(c.Float64("thickness")); err != nil {
				return err
			}
		}
		if c.IsSet("kerf") {
			if err := p.SetKerfCompensation(c.Float64("kerf")); err != nil {
				return err
			}
		}
		if c.Bool("no-base") {
			p.SetIncludeBase(false)
		}
		return nil
	})
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
