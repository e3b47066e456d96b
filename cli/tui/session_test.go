package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gnomonworks/yantra/session"
	"github.com/gnomonworks/yantra/site"
	"github.com/gnomonworks/yantra/types"
)

type stubGenerator struct {
	calls  int
	result *types.GenerationResult
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context) (*types.GenerationResult, error) {
	g.calls++
	return g.result, g.err
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSessionModel_PresetCycling(t *testing.T) {
	store := session.New()
	m := NewSessionModel(store, &stubGenerator{})

	presets := site.Presets()
	if len(presets) < 2 {
		t.Fatal("need at least two presets for cycling")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(SessionModel)

	snap := store.Snapshot()
	if snap.Location == nil {
		t.Fatal("cycling should select a location")
	}
	if snap.Location.Name != presets[1].Location.Name {
		t.Errorf("location = %q, want %q", snap.Location.Name, presets[1].Location.Name)
	}

	// Wrapping backwards twice lands on the last preset.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(SessionModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(SessionModel)

	snap = store.Snapshot()
	last := presets[len(presets)-1]
	if snap.Location.Name != last.Location.Name {
		t.Errorf("after wrap, location = %q, want %q", snap.Location.Name, last.Location.Name)
	}
}

func TestSessionModel_InstrumentToggle(t *testing.T) {
	store := session.New()
	m := NewSessionModel(store, &stubGenerator{})

	if got := store.Snapshot().Params.Instrument; got != types.InstrumentSamrat {
		t.Fatalf("default instrument = %q", got)
	}

	next, _ := m.Update(keyMsg("i"))
	m = next.(SessionModel)
	if got := store.Snapshot().Params.Instrument; got != types.InstrumentRama {
		t.Errorf("after toggle, instrument = %q, want rama", got)
	}

	next, _ = m.Update(keyMsg("i"))
	_ = next
	if got := store.Snapshot().Params.Instrument; got != types.InstrumentSamrat {
		t.Errorf("after second toggle, instrument = %q, want samrat", got)
	}
}

func TestSessionModel_ScaleAdjust(t *testing.T) {
	store := session.New()
	m := NewSessionModel(store, &stubGenerator{})

	before := store.Snapshot().Params.Scale

	next, _ := m.Update(keyMsg("+"))
	m = next.(SessionModel)
	if got := store.Snapshot().Params.Scale; got != before+scaleStep {
		t.Errorf("scale after + = %v, want %v", got, before+scaleStep)
	}

	next, _ = m.Update(keyMsg("-"))
	m = next.(SessionModel)
	if got := store.Snapshot().Params.Scale; got != before {
		t.Errorf("scale after - = %v, want %v", got, before)
	}

	// Dropping below the lower bound leaves the scale unchanged.
	next, _ = m.Update(keyMsg("-"))
	next, _ = next.(SessionModel).Update(keyMsg("-"))
	_ = next
	if got := store.Snapshot().Params.Scale; got <= 0.1 {
		t.Errorf("scale underflowed to %v", got)
	}
}

func TestSessionModel_GenerateRequiresLocation(t *testing.T) {
	store := session.New()
	gen := &stubGenerator{}
	m := NewSessionModel(store, gen)

	_, cmd := m.Update(keyMsg("g"))
	if cmd != nil {
		t.Error("generate without a location should produce no command")
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestSessionModel_GenerateDispatches(t *testing.T) {
	store := session.New()
	loc, err := site.SelectPreset("jaipur")
	if err != nil {
		t.Fatal(err)
	}
	store.SetLocation(loc)

	gen := &stubGenerator{}
	m := NewSessionModel(store, gen)

	_, cmd := m.Update(keyMsg("g"))
	if cmd == nil {
		t.Fatal("expected a generation command")
	}

	msg := cmd()
	if _, ok := msg.(generationDoneMsg); !ok {
		t.Fatalf("command produced %T, want generationDoneMsg", msg)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestSessionModel_GenerateFailureStillRerenders(t *testing.T) {
	store := session.New()
	loc, err := site.SelectPreset("jaipur")
	if err != nil {
		t.Fatal(err)
	}
	store.SetLocation(loc)

	gen := &stubGenerator{err: errors.New("service exploded")}
	m := NewSessionModel(store, gen)

	_, cmd := m.Update(keyMsg("g"))
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	if msg := cmd(); msg != (generationDoneMsg{}) {
		t.Fatalf("command produced %T, want generationDoneMsg", msg)
	}
}

func TestSessionModel_GenerateBlockedWhileInFlight(t *testing.T) {
	store := session.New()
	loc, err := site.SelectPreset("jaipur")
	if err != nil {
		t.Fatal(err)
	}
	store.SetLocation(loc)
	store.BeginGeneration()

	gen := &stubGenerator{}
	m := NewSessionModel(store, gen)

	_, cmd := m.Update(keyMsg("g"))
	if cmd != nil {
		t.Error("generate while in flight should produce no command")
	}
}

func TestSessionModel_View(t *testing.T) {
	store := session.New()
	loc, err := site.SelectPreset("jaipur")
	if err != nil {
		t.Fatal(err)
	}
	store.SetLocation(loc)

	m := NewSessionModel(store, &stubGenerator{})

	view := m.View()
	if !strings.Contains(view, "Jaipur") {
		t.Error("view should show the selected site")
	}
	if !strings.Contains(view, "samrat") {
		t.Error("view should show the instrument type")
	}

	store.BeginGeneration()
	if view := m.View(); !strings.Contains(view, "generating") {
		t.Error("view should show in-flight state")
	}

	store.FailGeneration("service exploded")
	if view := m.View(); !strings.Contains(view, "service exploded") {
		t.Error("view should surface the last error")
	}
}

func TestSessionModel_ClearResult(t *testing.T) {
	store := session.New()
	store.BeginGeneration()
	store.CompleteGeneration(&types.GenerationResult{ID: "r-1"})

	m := NewSessionModel(store, &stubGenerator{})
	next, _ := m.Update(keyMsg("c"))
	_ = next

	if store.Snapshot().Result != nil {
		t.Error("clear should discard the result")
	}
}

func TestSessionModel_Quit(t *testing.T) {
	store := session.New()
	m := NewSessionModel(store, &stubGenerator{})

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit should produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("quit command produced %T", msg)
	}
	if view := next.(SessionModel).View(); view != "" {
		t.Errorf("quitting view = %q, want empty", view)
	}
}
