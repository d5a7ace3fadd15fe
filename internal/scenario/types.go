// Package scenario loads wizard scenario definitions.
//
// A scenario names the identity segments that address its saved answers and
// the prompt steps whose answers are captured. Definitions are YAML or TOML
// files found on a list of search paths.
package scenario

import (
	"fmt"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

// StepType selects the prompt used for a step.
type StepType string

const (
	StepInput  StepType = "input"
	StepSelect StepType = "select"
)

// IsValid reports whether t is a known step type.
func (t StepType) IsValid() bool {
	switch t {
	case StepInput, StepSelect:
		return true
	}
	return false
}

// Scenario is one wizard definition.
type Scenario struct {
	ID          string    `yaml:"id" toml:"id" json:"id"`
	Title       string    `yaml:"title,omitempty" toml:"title" json:"title,omitempty"`
	Description string    `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	Identity    *Identity `yaml:"identity,omitempty" toml:"identity" json:"identity,omitempty"`
	Steps       []Step    `yaml:"steps,omitempty" toml:"steps" json:"steps,omitempty"`

	// Source is the file the scenario was read from.
	Source string `yaml:"-" toml:"-" json:"source,omitempty"`
}

// Identity declares the ordered identity segments of a scenario.
type Identity struct {
	Segments []identity.SegmentSpec `yaml:"segments" toml:"segments" json:"segments"`
}

// Step is a single question whose answer is saved under its ID.
type Step struct {
	ID          string            `yaml:"id" toml:"id" json:"id"`
	Prompt      string            `yaml:"prompt" toml:"prompt" json:"prompt"`
	Type        StepType          `yaml:"type,omitempty" toml:"type" json:"type,omitempty"`
	Options     []identity.Option `yaml:"options,omitempty" toml:"options" json:"options,omitempty"`
	Default     string            `yaml:"default,omitempty" toml:"default" json:"default,omitempty"`
	Placeholder string            `yaml:"placeholder,omitempty" toml:"placeholder" json:"placeholder,omitempty"`
	Required    bool              `yaml:"required,omitempty" toml:"required" json:"required,omitempty"`
}

// Message returns the prompt text, falling back to the step ID.
func (s Step) Message() string {
	if strings.TrimSpace(s.Prompt) != "" {
		return s.Prompt
	}
	return fmt.Sprintf("Enter %s:", s.ID)
}

// Segments returns the declared identity segments, or nil.
func (s *Scenario) Segments() []identity.SegmentSpec {
	if s.Identity == nil {
		return nil
	}
	return s.Identity.Segments
}

// DisplayTitle returns Title, or ID when no title is declared.
func (s *Scenario) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// applyDefaults fills in the step type from the presence of options.
func (s *Scenario) applyDefaults() {
	for i := range s.Steps {
		if s.Steps[i].Type == "" {
			if len(s.Steps[i].Options) > 0 {
				s.Steps[i].Type = StepSelect
			} else {
				s.Steps[i].Type = StepInput
			}
		}
	}
}

// Validate checks the scenario for structural errors.
func (s *Scenario) Validate() error {
	var errs []string

	if strings.TrimSpace(s.ID) == "" {
		errs = append(errs, "id: scenario id is required")
	}

	segIDs := make(map[string]bool)
	for i, seg := range s.Segments() {
		if seg.ID == "" {
			errs = append(errs, fmt.Sprintf("identity.segments[%d]: id is required", i))
			continue
		}
		if segIDs[seg.ID] {
			errs = append(errs, fmt.Sprintf("identity.segments[%d]: duplicate id %q", i, seg.ID))
		}
		segIDs[seg.ID] = true
		if len(seg.Options) == 0 && !seg.AllowCustom {
			errs = append(errs, fmt.Sprintf("identity.segments[%d] (%s): must define options or set allowCustom", i, seg.ID))
		}
		errs = append(errs, duplicateOptions(fmt.Sprintf("identity.segments[%d] (%s)", i, seg.ID), seg.Options)...)
	}

	stepIDs := make(map[string]bool)
	for i, step := range s.Steps {
		if step.ID == "" {
			errs = append(errs, fmt.Sprintf("steps[%d]: id is required", i))
			continue
		}
		if stepIDs[step.ID] {
			errs = append(errs, fmt.Sprintf("steps[%d]: duplicate id %q", i, step.ID))
		}
		stepIDs[step.ID] = true
		if step.Type != "" && !step.Type.IsValid() {
			errs = append(errs, fmt.Sprintf("steps[%d] (%s): type: invalid value %q (must be input or select)", i, step.ID, step.Type))
		}
		if step.Type == StepSelect && len(step.Options) == 0 {
			errs = append(errs, fmt.Sprintf("steps[%d] (%s): select steps need options", i, step.ID))
		}
		errs = append(errs, duplicateOptions(fmt.Sprintf("steps[%d] (%s)", i, step.ID), step.Options)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario %q validation failed:\n  %s", s.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

func duplicateOptions(where string, opts []identity.Option) []string {
	var errs []string
	seen := make(map[string]bool, len(opts))
	for j, opt := range opts {
		if strings.TrimSpace(opt.Value) == "" {
			errs = append(errs, fmt.Sprintf("%s: options[%d]: value is required", where, j))
			continue
		}
		if seen[opt.Value] {
			errs = append(errs, fmt.Sprintf("%s: options[%d]: duplicate value %q", where, j, opt.Value))
		}
		seen[opt.Value] = true
	}
	return errs
}
