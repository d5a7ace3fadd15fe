// Package identity resolves which answers identity a wizard run applies to.
//
// A scenario declares an ordered list of identity segments (for example
// category/cadence/window). A Selection assigns one value to every segment;
// its slug (the values joined by "/") addresses a reusable answer set.
package identity

import (
	"fmt"
	"strings"
)

// Source records where a segment value came from.
type Source string

const (
	SourceOption Source = "option" // picked from the declared options
	SourceCustom Source = "custom" // typed by the operator
	SourceCLI    Source = "cli"    // supplied on the command line or read back from disk
)

// SlugSeparator joins segment values into a slug.
const SlugSeparator = "/"

// Option is one declared value of a segment.
type Option struct {
	Value string `yaml:"value" toml:"value" json:"value"`
	Label string `yaml:"label,omitempty" toml:"label" json:"label,omitempty"`
	Hint  string `yaml:"hint,omitempty" toml:"hint" json:"hint,omitempty"`
}

// DisplayLabel returns Label, or Value when no label is declared.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// SegmentSpec is one identity segment as declared by a scenario.
type SegmentSpec struct {
	ID           string   `yaml:"id" toml:"id" json:"id"`
	Prompt       string   `yaml:"prompt" toml:"prompt" json:"prompt"`
	Options      []Option `yaml:"options,omitempty" toml:"options" json:"options,omitempty"`
	AllowCustom  bool     `yaml:"allowCustom,omitempty" toml:"allowCustom" json:"allowCustom,omitempty"`
	DefaultValue string   `yaml:"defaultValue,omitempty" toml:"defaultValue" json:"defaultValue,omitempty"`
	Placeholder  string   `yaml:"placeholder,omitempty" toml:"placeholder" json:"placeholder,omitempty"`
}

// Message returns the prompt text for the segment.
func (s SegmentSpec) Message() string {
	if strings.TrimSpace(s.Prompt) != "" {
		return s.Prompt
	}
	return fmt.Sprintf("Enter %s:", s.ID)
}

// FindOption returns the declared option whose value equals value.
func (s SegmentSpec) FindOption(value string) (Option, bool) {
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// OptionValues lists the declared option values in order.
func (s SegmentSpec) OptionValues() []string {
	values := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		values = append(values, opt.Value)
	}
	return values
}

// SegmentSelection is the resolved value of one segment.
type SegmentSelection struct {
	ID      string         `json:"id"`
	Value   string         `json:"value"`
	Label   string         `json:"label"`
	Source  Source         `json:"source"`
	Details map[string]any `json:"details,omitempty"`
}

// Selection is a complete identity: one SegmentSelection per declared segment,
// in declared order.
type Selection struct {
	Slug     string             `json:"slug"`
	Segments []SegmentSelection `json:"segments"`
}

// NewSelection builds a Selection and derives its slug from segments.
func NewSelection(segments []SegmentSelection) Selection {
	values := make([]string, 0, len(segments))
	for _, seg := range segments {
		values = append(values, seg.Value)
	}
	return Selection{Slug: strings.Join(values, SlugSeparator), Segments: segments}
}

// Value returns the value selected for segment id.
func (s Selection) Value(id string) (string, bool) {
	for _, seg := range s.Segments {
		if seg.ID == id {
			return seg.Value, true
		}
	}
	return "", false
}

// Values returns segment values keyed by segment id.
func (s Selection) Values() map[string]string {
	values := make(map[string]string, len(s.Segments))
	for _, seg := range s.Segments {
		values[seg.ID] = seg.Value
	}
	return values
}

// Hint renders the selection as "id=value" pairs, e.g. "category=maintenance, cadence=daily".
func (s Selection) Hint() string {
	pairs := make([]string, 0, len(s.Segments))
	for _, seg := range s.Segments {
		pairs = append(pairs, seg.ID+"="+seg.Value)
	}
	return strings.Join(pairs, ", ")
}

// SegmentMetadata carries out-of-band label/details overrides for a segment.
// When set they win over whatever source produced the segment value.
type SegmentMetadata struct {
	Label   string
	Details map[string]any
}

func (m SegmentMetadata) empty() bool {
	return m.Label == "" && len(m.Details) == 0
}

// applyMetadata overlays md onto sel. Detail keys from md replace existing keys.
func applyMetadata(sel SegmentSelection, md map[string]SegmentMetadata) SegmentSelection {
	meta, ok := md[sel.ID]
	if !ok || meta.empty() {
		return sel
	}
	if meta.Label != "" {
		sel.Label = meta.Label
	}
	if len(meta.Details) > 0 {
		merged := make(map[string]any, len(sel.Details)+len(meta.Details))
		for k, v := range sel.Details {
			merged[k] = v
		}
		for k, v := range meta.Details {
			merged[k] = v
		}
		sel.Details = merged
	}
	return sel
}
