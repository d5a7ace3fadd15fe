// Package prompt defines the narrow prompt surface the wizard consumes.
//
// Callers only supply message text, option lists and defaults; rendering is
// left to the implementation (see HuhPrompter).
package prompt

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Prompter when the operator aborts a prompt
// (for example with Ctrl+C). It is not a failure: callers must stop the whole
// run cleanly when they see it.
var ErrCancelled = errors.New("prompt cancelled")

// Option is a single choice offered by a Select prompt.
type Option struct {
	Value string
	Label string // defaults to Value when empty
	Hint  string
}

// DisplayLabel returns the label shown to the operator.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// TextRequest describes a free-text prompt.
type TextRequest struct {
	Message      string
	InitialValue string
	Placeholder  string
	Validate     func(string) error
}

// SelectRequest describes a single-choice prompt.
type SelectRequest struct {
	Message      string
	Options      []Option
	InitialValue string
}

// Prompter is implemented by anything that can ask the operator a question.
// Both methods return ErrCancelled (possibly wrapped) on operator abort.
type Prompter interface {
	Text(ctx context.Context, req TextRequest) (string, error)
	Select(ctx context.Context, req SelectRequest) (string, error)
}

// IsCancelled reports whether err is (or wraps) ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
