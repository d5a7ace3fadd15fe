package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

// identityFlags holds the --answers-* identity flags of one command.
type identityFlags struct {
	slug     string
	segments []string
	labels   []string
	details  []string
}

func (f *identityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.slug, "answers-identity", "", "Full answers identity, segment values joined by '/' (e.g. projects/daily/window-a)")
	cmd.Flags().StringArrayVar(&f.segments, "answers-segment", nil, "Identity segment value as id=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.labels, "answers-segment-label", nil, "Identity segment label as id=label (repeatable)")
	cmd.Flags().StringArrayVar(&f.details, "answers-segment-detail", nil, "Identity segment detail as id.key=value (repeatable)")
}

// parse converts the raw flag values into resolver overrides and metadata.
func (f *identityFlags) parse() (map[string]string, map[string]identity.SegmentMetadata, error) {
	overrides, err := parseSegmentValues(f.segments)
	if err != nil {
		return nil, nil, err
	}
	metadata, err := parseSegmentMetadata(f.labels, f.details)
	if err != nil {
		return nil, nil, err
	}
	return overrides, metadata, nil
}

// parseSegmentValues parses repeated id=value pairs. The last value given
// for an id wins.
func parseSegmentValues(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, item := range raw {
		id, value, err := splitPair(item, "--answers-segment", "id=value")
		if err != nil {
			return nil, err
		}
		out[id] = value
	}
	return out, nil
}

// parseSegmentMetadata parses id=label and id.key=value pairs.
func parseSegmentMetadata(labels, details []string) (map[string]identity.SegmentMetadata, error) {
	out := make(map[string]identity.SegmentMetadata)
	for _, item := range labels {
		id, label, err := splitPair(item, "--answers-segment-label", "id=label")
		if err != nil {
			return nil, err
		}
		md := out[id]
		md.Label = label
		out[id] = md
	}
	for _, item := range details {
		target, value, err := splitPair(item, "--answers-segment-detail", "id.key=value")
		if err != nil {
			return nil, err
		}
		id, key, ok := strings.Cut(target, ".")
		id, key = strings.TrimSpace(id), strings.TrimSpace(key)
		if !ok || id == "" || key == "" {
			return nil, fmt.Errorf("invalid --answers-segment-detail %q (expected id.key=value)", item)
		}
		md := out[id]
		if md.Details == nil {
			md.Details = make(map[string]any)
		}
		md.Details[key] = value
		out[id] = md
	}
	return out, nil
}

func splitPair(item, flag, shape string) (string, string, error) {
	key, value, ok := strings.Cut(item, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid %s %q (expected %s)", flag, item, shape)
	}
	return key, value, nil
}
