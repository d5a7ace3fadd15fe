package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/steveyegge/dev-wizard/internal/ui"
)

// HuhPrompter renders prompts with charmbracelet/huh forms.
type HuhPrompter struct {
	theme *huh.Theme
}

// HuhOption configures a HuhPrompter.
type HuhOption func(*HuhPrompter)

// WithTheme selects a huh theme by name (charm, dracula, catppuccin, base16, base).
// Unknown names fall back to charm.
func WithTheme(name string) HuhOption {
	return func(p *HuhPrompter) {
		p.theme = ThemeByName(name)
	}
}

// NewHuhPrompter creates a prompter backed by huh.
func NewHuhPrompter(opts ...HuhOption) *HuhPrompter {
	p := &HuhPrompter{theme: huh.ThemeCharm()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ThemeByName maps a configured theme name to a huh theme.
func ThemeByName(name string) *huh.Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dracula":
		return huh.ThemeDracula()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "base16":
		return huh.ThemeBase16()
	case "base":
		return huh.ThemeBase()
	default:
		return huh.ThemeCharm()
	}
}

// Text asks for a single line of free text.
func (p *HuhPrompter) Text(ctx context.Context, req TextRequest) (string, error) {
	value := req.InitialValue
	input := huh.NewInput().
		Title(req.Message).
		Placeholder(req.Placeholder).
		Value(&value)
	if req.Validate != nil {
		input = input.Validate(req.Validate)
	}
	if err := p.run(ctx, input); err != nil {
		return "", err
	}
	return value, nil
}

// Select asks the operator to pick one option and returns its value.
func (p *HuhPrompter) Select(ctx context.Context, req SelectRequest) (string, error) {
	if len(req.Options) == 0 {
		return "", fmt.Errorf("select %q: no options", req.Message)
	}
	options := make([]huh.Option[string], 0, len(req.Options))
	for _, opt := range req.Options {
		label := opt.DisplayLabel()
		if opt.Hint != "" {
			label += "  " + ui.RenderMuted(opt.Hint)
		}
		options = append(options, huh.NewOption(label, opt.Value))
	}
	// huh preselects the option matching the bound value.
	value := req.InitialValue
	if value == "" {
		value = req.Options[0].Value
	}
	sel := huh.NewSelect[string]().
		Title(req.Message).
		Options(options...).
		Value(&value)
	if err := p.run(ctx, sel); err != nil {
		return "", err
	}
	return value, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(p.theme)
	err := form.RunWithContext(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return ErrCancelled
	default:
		return fmt.Errorf("prompt: %w", err)
	}
}
