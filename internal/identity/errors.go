package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. All of them are fatal for the run; operator cancellation is
// reported separately as prompt.ErrCancelled.
var (
	ErrConfigMismatch          = errors.New("identity overrides do not match the scenario")
	ErrSegmentCountMismatch    = errors.New("identity segment count mismatch")
	ErrInvalidCustomValue      = errors.New("invalid identity segment value")
	ErrEmptyCustomValue        = errors.New("empty identity segment value")
	ErrMissingRequiredSegments = errors.New("missing required identity segments")
	ErrSegmentConfig           = errors.New("invalid identity segment configuration")
)

// SegmentError is returned for every identity failure that can be pinned to
// one or more segments. errors.Is matches it against its Kind.
type SegmentError struct {
	Kind       error
	SegmentIDs []string
	msg        string
}

func (e *SegmentError) Error() string { return e.msg }

func (e *SegmentError) Unwrap() error { return e.Kind }

func newSegmentError(kind error, ids []string, format string, args ...any) *SegmentError {
	return &SegmentError{Kind: kind, SegmentIDs: ids, msg: fmt.Sprintf(format, args...)}
}

func invalidCustomValue(spec SegmentSpec, value string) error {
	return newSegmentError(ErrInvalidCustomValue, []string{spec.ID},
		"identity segment %q does not accept %q (expected one of: %s)",
		spec.ID, value, strings.Join(spec.OptionValues(), ", "))
}

func emptyCustomValue(id string) error {
	return newSegmentError(ErrEmptyCustomValue, []string{id},
		"identity segment %q requires a non-empty value", id)
}

func missingSegments(ids []string) error {
	return newSegmentError(ErrMissingRequiredSegments, ids,
		"missing required identity segment(s): %s (pass --answers-segment <id>=<value> or run interactively)",
		strings.Join(ids, ", "))
}

func segmentCountMismatch(slug string, want, got int) error {
	return newSegmentError(ErrSegmentCountMismatch, nil,
		"answers identity %q requires %d segment(s), received %d", slug, want, got)
}

func segmentNotPromptable(id string) error {
	return newSegmentError(ErrSegmentConfig, []string{id},
		"identity segment %q must define options or allow custom values", id)
}
