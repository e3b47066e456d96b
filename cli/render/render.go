// Package render provides centralized output rendering for the yantra CLI.
//
// Format selection rules:
//   - If output is a TTY, default to text
//   - If output is not a TTY, default to json
//   - --format always overrides defaults
//   - Invalid formats are errors
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/gnomonworks/yantra/accuracy"
	"github.com/gnomonworks/yantra/site"
	"github.com/gnomonworks/yantra/types"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string, returning an error for invalid formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil // Let caller decide default
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, text, or yaml)", s)
	}
}

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a renderer from CLI context, applying the TTY
// default rules.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	if format == "" {
		if isTTY(os.Stdout) {
			format = FormatText
		} else {
			format = FormatJSON
		}
	}

	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color"),
		out:     os.Stdout,
	}, nil
}

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{format: format, noColor: noColor, out: out}
}

// Result renders a generation result.
func (r *Renderer) Result(result *types.GenerationResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Generation:\t%s\n", result.ID)
	fmt.Fprintf(w, "Instrument:\t%s\n", result.Instrument)
	fmt.Fprintf(w, "Location:\t%s\n", result.Location.String())
	fmt.Fprintf(w, "Scale:\t%.2f m\n", result.Scale)
	fmt.Fprintf(w, "Size (L×W×H):\t%.2f × %.2f × %.2f %s\n",
		result.Dimensions.OverallLength.Value,
		result.Dimensions.OverallWidth.Value,
		result.Dimensions.OverallHeight.Value,
		result.Dimensions.OverallLength.Unit)
	fmt.Fprintf(w, "RMS error:\t%.4f°\n", result.Validation.RMSError)
	fmt.Fprintf(w, "Accuracy:\t%s\n", r.tierBadge(result.Validation.AccuracyTier))
	if len(result.Dimensions.BOMItems) > 0 {
		fmt.Fprintf(w, "Parts:\t%d\n", len(result.Dimensions.BOMItems))
	}
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "Generated:\t%s\n", result.GeneratedAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(result.Exports) > 0 {
		fmt.Fprintln(r.out, "\nExports:")
		ew := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(ew, "  FORMAT\tFILENAME\tSIZE\tEXPIRES")
		for _, e := range result.Exports {
			fmt.Fprintf(ew, "  %s\t%s\t%s\t%s\n",
				strings.ToUpper(string(e.Format)), e.Filename,
				formatSize(e.SizeBytes), e.ExpiresAt.Format("2006-01-02 15:04"))
		}
		return ew.Flush()
	}
	return nil
}

// Presets renders the preset site registry.
func (r *Renderer) Presets(presets []site.Preset) error {
	if r.format != FormatText {
		type row struct {
			ID          string         `json:"id" yaml:"id"`
			Location    types.Location `json:"location" yaml:"location"`
			Description string         `json:"description" yaml:"description"`
		}
		rows := make([]row, 0, len(presets))
		for _, p := range presets {
			rows = append(rows, row{ID: p.ID, Location: p.Location, Description: p.Description})
		}
		return r.encode(rows)
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLATITUDE\tLONGITUDE\tELEVATION\tTIMEZONE")
	for _, p := range presets {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.0fm\t%s\n",
			p.ID, p.Location.Name, p.Location.Latitude, p.Location.Longitude,
			p.Location.Elevation, p.Location.Timezone)
	}
	return w.Flush()
}

// SunPath renders a day's sun path summary.
func (r *Renderer) SunPath(path *types.SunPath) error {
	if r.format != FormatText {
		return r.encode(path)
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Location:\t%s\n", path.Location.String())
	fmt.Fprintf(w, "Date:\t%s\n", path.Date.Format("2006-01-02"))
	if path.Sunrise != nil {
		fmt.Fprintf(w, "Sunrise:\t%s\n", path.Sunrise.Format("15:04:05"))
	}
	if path.SolarNoon != nil {
		fmt.Fprintf(w, "Solar noon:\t%s\n", path.SolarNoon.Format("15:04:05"))
	}
	if path.Sunset != nil {
		fmt.Fprintf(w, "Sunset:\t%s\n", path.Sunset.Format("15:04:05"))
	}
	fmt.Fprintf(w, "Day length:\t%.2f h\n", path.DayLengthHours)
	fmt.Fprintf(w, "Samples:\t%d\n", len(path.Points))
	return w.Flush()
}

// Error renders a failure message to the writer.
func (r *Renderer) Error(message string) error {
	if r.format == FormatJSON {
		return r.encode(map[string]string{"error": message})
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	if r.noColor {
		style = lipgloss.NewStyle()
	}
	_, err := fmt.Fprintln(r.out, style.Render("error: "+message))
	return err
}

// Render encodes arbitrary data in the selected format. Text falls back
// to JSON, which reads fine for small response shapes.
func (r *Renderer) Render(data any) error {
	if r.format == FormatText {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return r.encode(data)
}

func (r *Renderer) encode(data any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// tierBadge colors the accuracy tier for text output.
func (r *Renderer) tierBadge(tier string) string {
	if r.noColor {
		return tier
	}
	var color lipgloss.Color
	switch accuracy.Tier(tier) {
	case accuracy.Excellent:
		color = lipgloss.Color("#10B981")
	case accuracy.Good:
		color = lipgloss.Color("#3B82F6")
	case accuracy.Acceptable:
		color = lipgloss.Color("#F59E0B")
	default:
		color = lipgloss.Color("#EF4444")
	}
	return lipgloss.NewStyle().Foreground(color).Render(tier)
}

// isTTY reports whether f is a character device.
func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// formatSize renders a byte count in human units.
func formatSize(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1024:
		return fmt.Sprintf("%dB", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	}
}
