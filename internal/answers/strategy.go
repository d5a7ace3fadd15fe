package answers

import (
	"context"
	"fmt"

	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// Strategy says how previously stored answers are used by a run.
type Strategy string

const (
	// StrategyReuse keeps every stored value; prompts with a stored value are skipped.
	StrategyReuse Strategy = "reuse"
	// StrategyReview pre-fills prompts with stored values; every prompt runs.
	StrategyReview Strategy = "review"
	// StrategyReset discards stored scenario answers; identity/execution metadata is kept.
	StrategyReset Strategy = "reset"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyReuse, StrategyReview, StrategyReset:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("invalid answers strategy %q (valid values: reuse, review, reset)", s)
}

// ShouldPromptStrategy reports whether the operator is asked for a strategy:
// only when a stored file exists, the session is interactive, and answers
// were not loaded from an explicit external file.
func ShouldPromptStrategy(fileExists, interactive, external bool) bool {
	return fileExists && interactive && !external
}

// PromptStrategy asks the operator how to use the answers stored at
// displayPath. prompt.ErrCancelled is returned unchanged.
func PromptStrategy(ctx context.Context, p prompt.Prompter, displayPath string) (Strategy, error) {
	picked, err := p.Select(ctx, prompt.SelectRequest{
		Message: fmt.Sprintf("Saved answers found at %s. How should they be used?", displayPath),
		Options: []prompt.Option{
			{Value: string(StrategyReuse), Label: "Reuse saved answers", Hint: "skip questions that already have an answer"},
			{Value: string(StrategyReview), Label: "Review saved answers", Hint: "ask every question with saved values pre-filled"},
			{Value: string(StrategyReset), Label: "Start fresh", Hint: "discard saved answers, keep the identity"},
		},
		InitialValue: string(StrategyReuse),
	})
	if err != nil {
		return "", err
	}
	return ParseStrategy(picked)
}
