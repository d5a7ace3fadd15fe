package answers

import (
	"github.com/steveyegge/dev-wizard/internal/identity"
)

// Session tracks stored and newly recorded answers for one run.
type Session struct {
	strategy Strategy
	stored   map[string]any
	recorded map[string]any
	meta     Meta
}

// NewSession applies strategy to an existing file (which may be nil).
func NewSession(existing *File, strategy Strategy) *Session {
	if strategy == "" {
		strategy = StrategyReuse
	}
	s := &Session{
		strategy: strategy,
		stored:   map[string]any{},
		recorded: map[string]any{},
	}
	if existing == nil {
		return s
	}
	s.meta = existing.Meta
	if strategy != StrategyReset {
		for k, v := range existing.Scenario {
			s.stored[k] = v
		}
	}
	return s
}

func (s *Session) Strategy() Strategy { return s.strategy }

// Stored returns the value that replaces a prompt entirely (reuse only).
func (s *Session) Stored(key string) (any, bool) {
	if s.strategy != StrategyReuse {
		return nil, false
	}
	v, ok := s.stored[key]
	return v, ok
}

// Default returns the stored value used to pre-fill a prompt.
func (s *Session) Default(key string) (any, bool) {
	v, ok := s.stored[key]
	return v, ok
}

// Record stores an answer given during this run.
func (s *Session) Record(key string, value any) {
	s.recorded[key] = value
}

// Answers merges stored values with this run's answers; recorded values win.
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.stored)+len(s.recorded))
	for k, v := range s.stored {
		out[k] = v
	}
	for k, v := range s.recorded {
		out[k] = v
	}
	return out
}

// Finalize builds the file to persist. Identity and execution given here
// replace the existing metadata; nil keeps what was stored.
func (s *Session) Finalize(scenarioID string, sel *identity.Selection, exec *Execution) *File {
	meta := s.meta
	meta.ScenarioID = scenarioID
	if sel != nil {
		meta.Identity = RecordFromSelection(sel)
	}
	if exec != nil {
		meta.Execution = exec
	}
	return &File{Meta: meta, Scenario: s.Answers()}
}
