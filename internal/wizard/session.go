package wizard

import "sync"

// Session is one user's wizard state, safe for concurrent use. All mutation
// goes through Apply; generation results arrive through CompleteGeneration
// and are discarded when their epoch is stale.
type Session struct {
	id string

	mu    sync.Mutex
	state State
	// epoch increments every time a generation starts. A result carries the
	// epoch it was started under; anything else is a late arrival for an
	// abandoned request.
	epoch uint64
}

// NewSession returns a session in the initial phase.
func NewSession(id, lang string) *Session {
	return &Session{id: id, state: Initial(lang)}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ApplyResult reports the outcome of one event application.
type ApplyResult struct {
	State State
	// GenerationStarted is true when this event moved the wizard into
	// GENERATING; Epoch identifies the generation to start.
	GenerationStarted bool
	Epoch             uint64
}

// Apply runs one event through the transition function under the session
// lock. Entering GENERATING bumps the epoch.
func (s *Session) Apply(e Event) (ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Phase
	next, err := Transition(s.state, e)
	if err != nil {
		return ApplyResult{State: s.state}, err
	}
	s.state = next

	res := ApplyResult{State: next, Epoch: s.epoch}
	if next.Phase == PhaseGenerating && prev != PhaseGenerating {
		s.epoch++
		res.GenerationStarted = true
		res.Epoch = s.epoch
	}
	return res, nil
}

// CompleteGeneration applies a generation outcome if the session is still
// waiting for it. A stale epoch or a phase other than GENERATING means the
// request was abandoned; the outcome is dropped and applied is false.
func (s *Session) CompleteGeneration(epoch uint64, e Event) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state.Phase != PhaseGenerating {
		return s.state, false
	}
	next, err := Transition(s.state, e)
	if err != nil {
		return s.state, false
	}
	s.state = next
	return next, true
}
