// Package session owns the per-session state of the generation workflow.
//
// The Store is the single source of truth read by every presentation
// surface. All mutation happens through transition methods, each of which
// is a single indivisible update under one lock; no caller ever reads or
// writes the underlying fields directly. Every transition is a total
// function over the state; none can fail.
//
// Stores are plain injectable values, not ambient singletons: construct a
// fresh one per session (or per test) with New.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gnomonworks/yantra/params"
	"github.com/gnomonworks/yantra/types"
)

// State is an immutable snapshot of the session, safe to read after return.
type State struct {
	// Location is the selected site, nil until one is chosen.
	Location *types.Location
	// Params is the point-in-time generation parameter set.
	Params params.Snapshot
	// Result is the most recently completed generation, nil before the
	// first success. Immutable once set; replaced wholesale.
	Result *types.GenerationResult
	// InFlight reports whether a generation request is outstanding.
	InFlight bool
	// LastError is the display message of the most recent failed
	// generation. Empty means no error is showing. A stale Result may
	// coexist with a fresh LastError: the last good result stays visible
	// until overwritten.
	LastError string
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClearErrorOnEdit makes location and parameter edits dismiss the
// current LastError. Off by default: whether editing implies dismissal is
// a UX policy, not part of the transition contract.
func WithClearErrorOnEdit() Option {
	return func(s *Store) { s.clearErrorOnEdit = true }
}

// Store is the session state holder. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	id               string
	clearErrorOnEdit bool

	location  *types.Location
	params    *params.Params
	result    *types.GenerationResult
	inFlight  bool
	lastError string
}

// New creates a Store with default parameters, no location, and no result.
func New(opts ...Option) *Store {
	s := &Store{
		id:     uuid.NewString(),
		params: params.Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Store) ID() string { return s.id }

// Snapshot returns an immutable copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Params:    s.params.Snapshot(),
		Result:    s.result,
		InFlight:  s.inFlight,
		LastError: s.lastError,
	}
	if s.location != nil {
		loc := *s.location
		st.Location = &loc
	}
	return st
}

// SetLocation replaces the session location. Result and LastError are left
// untouched unless the store was built with WithClearErrorOnEdit.
func (s *Store) SetLocation(loc types.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := loc
	s.location = &l
	if s.clearErrorOnEdit {
		s.lastError = ""
	}
}

// UpdateParams applies an edit to the generation parameters under the
// session lock, serializing it against other transitions. The edit's error
// is returned to the caller untouched; a failed edit changes nothing.
func (s *Store) UpdateParams(edit func(*params.Params) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Edit a scratch copy so multi-step edits apply all or nothing.
	scratch := *s.params
	if err := edit(&scratch); err != nil {
		return err
	}
	*s.params = scratch
	if s.clearErrorOnEdit {
		s.lastError = ""
	}
	return nil
}

// BeginGeneration marks a request as in flight. Returns false without any
// state change if one is already outstanding; the orchestrator is
// responsible for never reaching that case.
func (s *Store) BeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// CompleteGeneration installs the result of the most recently completed
// request and clears the in-flight flag. This is the only transition that
// clears a prior error.
func (s *Store) CompleteGeneration(result *types.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = result
	s.inFlight = false
	s.lastError = ""
}

// FailGeneration records a failed request. The previous result, if any,
// deliberately stays visible.
func (s *Store) FailGeneration(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = message
	s.inFlight = false
}

// ClearResult discards the current result and error display. The in-flight
// flag is left untouched.
func (s *Store) ClearResult() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = nil
	s.lastError = ""
}
