package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gnomonworks/yantra/params"
	"github.com/gnomonworks/yantra/session"
	"github.com/gnomonworks/yantra/site"
	"github.com/gnomonworks/yantra/types"
)

// scaleStep is the increment applied by the scale keys.
const scaleStep = 0.5

// Generator issues one generation request. Satisfied by *runtime.Orchestrator;
// injectable for tests.
type Generator interface {
	Generate(ctx context.Context) (*types.GenerationResult, error)
}

// generationDoneMsg signals that an asynchronous generation finished. The
// orchestrator has already folded the outcome into the store; the message
// only triggers a re-render.
type generationDoneMsg struct{}

// SessionModel is the Bubble Tea model for the interactive session screen.
type SessionModel struct {
	store     *session.Store
	generator Generator
	presets   []site.Preset

	presetIdx int
	width     int
	height    int
	quitting  bool
}

// NewSessionModel creates the session screen over the given store and
// orchestrator.
func NewSessionModel(store *session.Store, generator Generator) SessionModel {
	return SessionModel{
		store:     store,
		generator: generator,
		presets:   site.Presets(),
	}
}

// keyMap defines key bindings for the session screen.
type keyMap struct {
	NextPreset key.Binding
	PrevPreset key.Binding
	Instrument key.Binding
	ScaleUp    key.Binding
	ScaleDown  key.Binding
	ToggleBase key.Binding
	Generate   key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	NextPreset: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next site")),
	PrevPreset: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev site")),
	Instrument: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "instrument")),
	ScaleUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "scale up")),
	ScaleDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "scale down")),
	ToggleBase: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle base")),
	Generate:   key.NewBinding(key.WithKeys("g", "enter"), key.WithHelp("g", "generate")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear result")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case generationDoneMsg:
		// Store already holds the folded outcome; nothing to do here.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextPreset):
		m.presetIdx = (m.presetIdx + 1) % len(m.presets)
		m.store.SetLocation(m.presets[m.presetIdx].Location)
		return m, nil

	case key.Matches(msg, keys.PrevPreset):
		m.presetIdx = (m.presetIdx + len(m.presets) - 1) % len(m.presets)
		m.store.SetLocation(m.presets[m.presetIdx].Location)
		return m, nil

	case key.Matches(msg, keys.Instrument):
		_ = m.store.UpdateParams(func(p *params.Params) error {
			if p.Snapshot().Instrument == types.InstrumentSamrat {
				return p.SetInstrument(types.InstrumentRama)
			}
			return p.SetInstrument(types.InstrumentSamrat)
		})
		return m, nil

	case key.Matches(msg, keys.ScaleUp):
		m.adjustScale(scaleStep)
		return m, nil

	case key.Matches(msg, keys.ScaleDown):
		m.adjustScale(-scaleStep)
		return m, nil

	case key.Matches(msg, keys.ToggleBase):
		_ = m.store.UpdateParams(func(p *params.Params) error {
			p.SetIncludeBase(!p.Snapshot().IncludeBase)
			return nil
		})
		return m, nil

	case key.Matches(msg, keys.Clear):
		m.store.ClearResult()
		return m, nil

	case key.Matches(msg, keys.Generate):
		return m, m.generateCmd()
	}

	return m, nil
}

// adjustScale nudges the scale, silently ignoring a rejected bound.
func (m SessionModel) adjustScale(delta float64) {
	_ = m.store.UpdateParams(func(p *params.Params) error {
		return p.SetScale(p.Snapshot().Scale + delta)
	})
}

// generateCmd issues the generation asynchronously. The triggering key is
// effectively disabled while a request is in flight: the orchestrator
// rejects the call without side effects and the message is dropped.
func (m SessionModel) generateCmd() tea.Cmd {
	snap := m.store.Snapshot()
	if snap.InFlight || snap.Location == nil {
		return nil
	}
	return func() tea.Msg {
		// Success and failure alike land in the store; in-flight rejections
		// from a racing trigger leave the winner's outcome standing.
		_, _ = m.generator.Generate(context.Background())
		return generationDoneMsg{}
	}
}

// View implements tea.Model.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.store.Snapshot()
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Yantra Generation Session"))
	b.WriteString("\n\n")

	location := "none selected"
	if snap.Location != nil {
		location = snap.Location.String()
	}
	writeField(&b, "Site", location)
	writeField(&b, "Instrument", string(snap.Params.Instrument))
	writeField(&b, "Scale", fmt.Sprintf("%.2f m", snap.Params.Scale))
	writeField(&b, "Material", fmt.Sprintf("%.0f mm", snap.Params.MaterialThickness*1000))
	writeField(&b, "Kerf", fmt.Sprintf("%.1f mm", snap.Params.KerfCompensation*1000))
	writeField(&b, "Base platform", fmt.Sprintf("%v", snap.Params.IncludeBase))

	if snap.InFlight {
		b.WriteString("\n")
		b.WriteString(PendingStyle.Render("generating…"))
		b.WriteString("\n")
	}

	if snap.LastError != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("error: " + snap.LastError))
		b.WriteString("\n")
	}

	if snap.Result != nil {
		b.WriteString("\n")
		b.WriteString(m.renderResult(snap.Result))
	}

	help := HelpStyle.Render("←/→ site · i instrument · +/- scale · b base · g generate · c clear · q quit")
	return BoxStyle.Render(b.String()) + "\n" + help
}

func (m SessionModel) renderResult(result *types.GenerationResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Result"))
	b.WriteString("\n")
	writeField(&b, "ID", result.ID)
	writeField(&b, "Size (L×W×H)", fmt.Sprintf("%.2f × %.2f × %.2f m",
		result.Dimensions.OverallLength.Value,
		result.Dimensions.OverallWidth.Value,
		result.Dimensions.OverallHeight.Value))
	writeField(&b, "RMS error", fmt.Sprintf("%.4f°", result.Validation.RMSError))

	tier := result.Validation.AccuracyTier
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Accuracy:"),
		TierStyle(tier).Render(tier)))

	writeField(&b, "Exports", fmt.Sprintf("%d artifacts", len(result.Exports)))
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value)))
}

// RunSession runs the interactive session screen.
func RunSession(store *session.Store, generator Generator) error {
	model := NewSessionModel(store, generator)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
