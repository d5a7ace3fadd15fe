package identity

import (
	"sort"
	"strings"
)

// BuildOptions tunes BuildSegmentSelection.
type BuildOptions struct {
	// Source forces the recorded source. Zero means "option" for declared
	// values and "custom" for anything else.
	Source Source
	// AcceptUnlisted allows values outside the declared options even when the
	// segment does not allow custom values. Used for trusted input such as an
	// explicit --answers-identity slug.
	AcceptUnlisted bool
}

// BuildSegmentSelection turns a concrete value into a SegmentSelection for spec.
func BuildSegmentSelection(spec SegmentSpec, value string, opts BuildOptions) (SegmentSelection, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SegmentSelection{}, emptyCustomValue(spec.ID)
	}
	if opt, ok := spec.FindOption(value); ok {
		source := opts.Source
		if source == "" {
			source = SourceOption
		}
		return SegmentSelection{ID: spec.ID, Value: value, Label: opt.DisplayLabel(), Source: source}, nil
	}
	if !spec.AllowCustom && !opts.AcceptUnlisted {
		return SegmentSelection{}, invalidCustomValue(spec, value)
	}
	source := opts.Source
	if source == "" {
		source = SourceCustom
	}
	return SegmentSelection{ID: spec.ID, Value: value, Label: value, Source: source}, nil
}

// BuildResult is the outcome of BuildSelection. Selection is nil whenever
// MissingSegmentIDs is non-empty.
type BuildResult struct {
	Selection         *Selection
	MissingSegmentIDs []string
}

// BuildSelection combines explicit overrides and a single fallback snapshot
// into a selection. For each declared segment an override wins, then the
// fallback's segment with the same id is copied verbatim; anything else is
// reported missing in declared order. Metadata overrides are applied last.
func BuildSelection(segments []SegmentSpec, overrides map[string]string, metadata map[string]SegmentMetadata, fallback *Selection) (BuildResult, error) {
	resolved := make([]SegmentSelection, 0, len(segments))
	var missing []string

	for _, spec := range segments {
		if value, ok := overrides[spec.ID]; ok {
			sel, err := BuildSegmentSelection(spec, value, BuildOptions{Source: SourceCLI})
			if err != nil {
				return BuildResult{}, err
			}
			resolved = append(resolved, applyMetadata(sel, metadata))
			continue
		}
		if prior, ok := fallbackSegment(fallback, spec.ID); ok {
			resolved = append(resolved, applyMetadata(prior, metadata))
			continue
		}
		missing = append(missing, spec.ID)
	}

	if len(missing) > 0 {
		return BuildResult{MissingSegmentIDs: missing}, nil
	}
	sel := NewSelection(resolved)
	return BuildResult{Selection: &sel, MissingSegmentIDs: []string{}}, nil
}

func fallbackSegment(fallback *Selection, id string) (SegmentSelection, bool) {
	if fallback == nil {
		return SegmentSelection{}, false
	}
	for _, seg := range fallback.Segments {
		if seg.ID == id {
			return cloneSegment(seg), true
		}
	}
	return SegmentSelection{}, false
}

func cloneSegment(seg SegmentSelection) SegmentSelection {
	if seg.Details != nil {
		details := make(map[string]any, len(seg.Details))
		for k, v := range seg.Details {
			details[k] = v
		}
		seg.Details = details
	}
	return seg
}

// SplitSlug splits an explicit slug on "/", trimming pieces and dropping empty ones.
func SplitSlug(slug string) []string {
	var parts []string
	for _, part := range strings.Split(slug, SlugSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// ParseSlug builds a selection from an explicit slug such as
// "maintenance/daily". The slug is trusted input: values outside the
// declared options are accepted and recorded with source "cli".
func ParseSlug(segments []SegmentSpec, slug string, metadata map[string]SegmentMetadata) (Selection, error) {
	parts := SplitSlug(slug)
	if len(parts) != len(segments) {
		return Selection{}, segmentCountMismatch(slug, len(segments), len(parts))
	}
	resolved := make([]SegmentSelection, 0, len(segments))
	for i, spec := range segments {
		sel, err := BuildSegmentSelection(spec, parts[i], BuildOptions{Source: SourceCLI, AcceptUnlisted: true})
		if err != nil {
			return Selection{}, err
		}
		resolved = append(resolved, applyMetadata(sel, metadata))
	}
	return NewSelection(resolved), nil
}

// checkOverrideIDs rejects overrides that name segments the scenario does not declare.
func checkOverrideIDs(segments []SegmentSpec, overrides map[string]string, metadata map[string]SegmentMetadata) error {
	declared := make(map[string]bool, len(segments))
	for _, spec := range segments {
		declared[spec.ID] = true
	}
	var unknown []string
	for id := range overrides {
		if !declared[id] {
			unknown = append(unknown, id)
		}
	}
	for id := range metadata {
		if !declared[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	unknown = dedupe(unknown)
	ids := make([]string, 0, len(segments))
	for _, spec := range segments {
		ids = append(ids, spec.ID)
	}
	return newSegmentError(ErrConfigMismatch, unknown,
		"unknown identity segment(s): %s (declared: %s)",
		strings.Join(unknown, ", "), strings.Join(ids, ", "))
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && sorted[i-1] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}
