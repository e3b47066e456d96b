// Package cmd provides CLI commands for the yantra binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags for all commands.
var (
	// ConfigFlag points at a yantra.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to yantra.yaml config file",
		EnvVars: []string{"YANTRA_CONFIG"},
	}

	// FormatFlag selects output format: json, text, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, text, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// ServiceURLFlag overrides the compute service URL.
	ServiceURLFlag = &cli.StringFlag{
		Name:    "service-url",
		Usage:   "Compute service URL",
		EnvVars: []string{"YANTRA_SERVICE_URL"},
	}

	// TimeoutFlag overrides the per-request timeout.
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Per-request timeout (e.g. 60s, 2m)",
	}
)

// Location flags shared by generate and sunpath.
var (
	PresetFlag = &cli.StringFlag{
		Name:    "preset",
		Aliases: []string{"p"},
		Usage:   "Preset site ID (see 'yantra presets')",
	}

	LatFlag = &cli.StringFlag{
		Name:  "lat",
		Usage: "Custom site latitude in decimal degrees",
	}

	LonFlag = &cli.StringFlag{
		Name:  "lon",
		Usage: "Custom site longitude in decimal degrees",
	}
)

// CommonFlags returns the flags every command accepts.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		FormatFlag,
		NoColorFlag,
	}
}

// ServiceFlags returns the flags for commands that contact the compute
// service.
func ServiceFlags() []cli.Flag {
	return append(CommonFlags(), ServiceURLFlag, TimeoutFlag)
}

// LocationFlags returns the site selection flags.
func LocationFlags() []cli.Flag {
	return []cli.Flag{PresetFlag, LatFlag, LonFlag}
}
