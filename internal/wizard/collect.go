package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/debug"
	"github.com/steveyegge/dev-wizard/internal/prompt"
	"github.com/steveyegge/dev-wizard/internal/scenario"
)

// ErrMissingAnswer is returned when a required step has no answer and the
// session cannot prompt for one.
var ErrMissingAnswer = errors.New("missing answer")

// Collect asks every step in order and records the answers in session.
// Steps with a reusable stored value are skipped. Without a prompter (or when
// not interactive) a step takes its stored or declared default, and a
// required step without either fails.
func Collect(ctx context.Context, p prompt.Prompter, steps []scenario.Step, session *answers.Session, interactive bool) error {
	for _, step := range steps {
		if _, ok := session.Stored(step.ID); ok {
			debug.Logf("wizard: reusing stored answer for %s\n", step.ID)
			continue
		}

		def := step.Default
		if stored, ok := session.Default(step.ID); ok {
			def = fmt.Sprint(stored)
		}

		if !interactive || p == nil {
			switch {
			case def != "":
				session.Record(step.ID, def)
			case step.Required:
				return fmt.Errorf("%w: step %q is required (run interactively or pass --answers)", ErrMissingAnswer, step.ID)
			}
			continue
		}

		value, err := ask(ctx, p, step, def)
		if err != nil {
			return err
		}
		session.Record(step.ID, value)
	}
	return nil
}

func ask(ctx context.Context, p prompt.Prompter, step scenario.Step, def string) (string, error) {
	if step.Type == scenario.StepSelect {
		opts := make([]prompt.Option, 0, len(step.Options))
		initial := ""
		for _, o := range step.Options {
			opts = append(opts, prompt.Option{Value: o.Value, Label: o.Label, Hint: o.Hint})
			if o.Value == def {
				initial = def
			}
		}
		return p.Select(ctx, prompt.SelectRequest{Message: step.Message(), Options: opts, InitialValue: initial})
	}

	req := prompt.TextRequest{
		Message:      step.Message(),
		InitialValue: def,
		Placeholder:  step.Placeholder,
	}
	if step.Required {
		req.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
	}
	value, err := p.Text(ctx, req)
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if step.Required && value == "" {
		return "", fmt.Errorf("%w: step %q is required", ErrMissingAnswer, step.ID)
	}
	return value, nil
}
