package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// Reserved values for synthetic select choices.
const (
	customChoiceValue = "__dev_wizard_custom__"
	savedChoiceValue  = "__dev_wizard_saved__"
	newIdentityValue  = "__dev_wizard_new__"
)

// PromptInput feeds the per-segment prompt flow.
type PromptInput struct {
	Segments  []SegmentSpec
	Overrides map[string]string // skip the prompt and record source "cli"
	Defaults  map[string]string // pre-selected / pre-filled values, usually from a snapshot
	Metadata  map[string]SegmentMetadata
}

// PromptSegments asks the operator for every segment in declared order and
// returns the complete selection. Each segment sees only the siblings that
// were resolved before it, so defaultValue templates can reference them.
// A prompt.ErrCancelled from the prompter is returned unchanged.
func (r *Resolver) PromptSegments(ctx context.Context, in PromptInput) (Selection, error) {
	if r.prompter == nil {
		return Selection{}, errors.New("identity: interactive resolution requires a prompter")
	}
	var siblings []SegmentSelection
	for _, spec := range in.Segments {
		sel, err := r.promptSegment(ctx, spec, in, siblings)
		if err != nil {
			return Selection{}, err
		}
		sel = applyMetadata(sel, in.Metadata)
		// Full slice expression: never write into a caller-visible backing array.
		siblings = append(siblings[:len(siblings):len(siblings)], sel)
	}
	return NewSelection(siblings), nil
}

func (r *Resolver) promptSegment(ctx context.Context, spec SegmentSpec, in PromptInput, siblings []SegmentSelection) (SegmentSelection, error) {
	if value, ok := in.Overrides[spec.ID]; ok {
		return BuildSegmentSelection(spec, value, BuildOptions{Source: SourceCLI})
	}
	def := strings.TrimSpace(in.Defaults[spec.ID])

	if len(spec.Options) == 0 {
		if !spec.AllowCustom {
			return SegmentSelection{}, segmentNotPromptable(spec.ID)
		}
		return r.promptCustom(ctx, spec, def, siblings)
	}

	choices := make([]prompt.Option, 0, len(spec.Options)+2)
	for _, opt := range spec.Options {
		choices = append(choices, prompt.Option{Value: opt.Value, Label: opt.DisplayLabel(), Hint: opt.Hint})
	}
	initial := ""
	if def != "" {
		if idx := indexOfChoice(choices, def); idx >= 0 {
			choices = floatToFront(choices, idx)
			initial = def
		} else if spec.AllowCustom {
			saved := prompt.Option{Value: savedChoiceValue, Label: fmt.Sprintf("Use saved value (%s)", def)}
			choices = append([]prompt.Option{saved}, choices...)
			initial = savedChoiceValue
		}
	}
	if spec.AllowCustom {
		choices = append(choices, prompt.Option{Value: customChoiceValue, Label: "Enter a custom value"})
	}

	picked, err := r.prompter.Select(ctx, prompt.SelectRequest{
		Message:      spec.Message(),
		Options:      choices,
		InitialValue: initial,
	})
	if err != nil {
		return SegmentSelection{}, err
	}
	switch picked {
	case savedChoiceValue:
		return BuildSegmentSelection(spec, def, BuildOptions{AcceptUnlisted: true})
	case customChoiceValue:
		return r.promptCustom(ctx, spec, def, siblings)
	default:
		return BuildSegmentSelection(spec, picked, BuildOptions{Source: SourceOption})
	}
}

// promptCustom asks for free text. The pre-fill is the explicit default when
// known, else the segment's defaultValue template rendered against siblings.
func (r *Resolver) promptCustom(ctx context.Context, spec SegmentSpec, def string, siblings []SegmentSelection) (SegmentSelection, error) {
	initial := def
	if initial == "" && spec.DefaultValue != "" {
		initial = RenderDefault(spec.DefaultValue, siblings)
	}
	value, err := r.prompter.Text(ctx, prompt.TextRequest{
		Message:      spec.Message(),
		InitialValue: initial,
		Placeholder:  spec.Placeholder,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", spec.ID)
			}
			return nil
		},
	})
	if err != nil {
		return SegmentSelection{}, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return SegmentSelection{}, emptyCustomValue(spec.ID)
	}
	return BuildSegmentSelection(spec, value, BuildOptions{AcceptUnlisted: true})
}

func indexOfChoice(choices []prompt.Option, value string) int {
	for i, c := range choices {
		if c.Value == value {
			return i
		}
	}
	return -1
}

func floatToFront(choices []prompt.Option, idx int) []prompt.Option {
	out := make([]prompt.Option, 0, len(choices))
	out = append(out, choices[idx])
	out = append(out, choices[:idx]...)
	return append(out, choices[idx+1:]...)
}
