package answers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
	"github.com/steveyegge/dev-wizard/internal/testutil/fakeprompt"
)

func storedFile() *File {
	sel := identity.NewSelection([]identity.SegmentSelection{{ID: "cadence", Value: "daily", Label: "Daily"}})
	return &File{
		Meta:     Meta{ScenarioID: "maintenance", Identity: RecordFromSelection(&sel)},
		Scenario: map[string]any{"owner": "ops", "region": "eu"},
	}
}

func TestSessionReuse(t *testing.T) {
	s := NewSession(storedFile(), "")
	assert.Equal(t, StrategyReuse, s.Strategy())

	v, ok := s.Stored("owner")
	assert.True(t, ok)
	assert.Equal(t, "ops", v)

	s.Record("extra", "yes")
	assert.Equal(t, map[string]any{"owner": "ops", "region": "eu", "extra": "yes"}, s.Answers())
}

func TestSessionReview(t *testing.T) {
	s := NewSession(storedFile(), StrategyReview)
	_, ok := s.Stored("owner")
	assert.False(t, ok, "review never skips a prompt")

	def, ok := s.Default("owner")
	assert.True(t, ok)
	assert.Equal(t, "ops", def)

	s.Record("owner", "platform")
	assert.Equal(t, "platform", s.Answers()["owner"])
	assert.Equal(t, "eu", s.Answers()["region"])
}

func TestSessionResetKeepsOnlyNewAnswers(t *testing.T) {
	s := NewSession(storedFile(), StrategyReset)
	_, ok := s.Default("owner")
	assert.False(t, ok, "reset must not pre-fill old values")

	s.Record("owner", "platform")
	f := s.Finalize("maintenance", nil, nil)
	assert.Equal(t, map[string]any{"owner": "platform"}, f.Scenario)
	require.NotNil(t, f.Meta.Identity, "identity metadata survives a reset")
	assert.Equal(t, "daily", f.Meta.Identity.Slug)
}

func TestSessionFinalizeReplacesMetadata(t *testing.T) {
	s := NewSession(nil, StrategyReuse)
	sel := identity.NewSelection([]identity.SegmentSelection{{ID: "cadence", Value: "weekly"}})
	sandbox := false
	f := s.Finalize("maintenance", &sel, &Execution{Sandbox: &sandbox})
	assert.Equal(t, "maintenance", f.Meta.ScenarioID)
	assert.Equal(t, "weekly", f.Meta.Identity.Slug)
	assert.Equal(t, "weekly", f.Meta.Identity.Segments[0].Label)
	require.NotNil(t, f.Meta.Execution.Sandbox)
	assert.False(t, *f.Meta.Execution.Sandbox)
	assert.Empty(t, f.Scenario)
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"reuse", "review", "reset"} {
		got, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, Strategy(name), got)
	}
	_, err := ParseStrategy("merge")
	assert.ErrorContains(t, err, `invalid answers strategy "merge"`)
}

func TestShouldPromptStrategy(t *testing.T) {
	assert.True(t, ShouldPromptStrategy(true, true, false))
	assert.False(t, ShouldPromptStrategy(false, true, false))
	assert.False(t, ShouldPromptStrategy(true, false, false))
	assert.False(t, ShouldPromptStrategy(true, true, true))
}

func TestPromptStrategy(t *testing.T) {
	p := fakeprompt.New(fakeprompt.Choose("reset"))
	got, err := PromptStrategy(context.Background(), p, ".dev-wizard/answers/setup.json")
	require.NoError(t, err)
	assert.Equal(t, StrategyReset, got)
	require.Len(t, p.Calls, 1)
	assert.Contains(t, p.Calls[0].Message(), ".dev-wizard/answers/setup.json")
	assert.Equal(t, "reuse", p.Calls[0].Select.InitialValue)

	_, err = PromptStrategy(context.Background(), fakeprompt.New(fakeprompt.Cancel(fakeprompt.KindSelect)), "x")
	assert.ErrorIs(t, err, prompt.ErrCancelled)
}
