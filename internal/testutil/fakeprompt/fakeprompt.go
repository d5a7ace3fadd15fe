// Package fakeprompt provides a scripted prompt.Prompter for tests.
package fakeprompt

import (
	"context"
	"fmt"

	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// Kind identifies which prompt method a Call came from.
type Kind string

const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
)

// Call records one prompt invocation.
type Call struct {
	Kind   Kind
	Text   prompt.TextRequest
	Select prompt.SelectRequest
}

// Message returns the prompt message regardless of kind.
func (c Call) Message() string {
	if c.Kind == KindSelect {
		return c.Select.Message
	}
	return c.Text.Message
}

// Response is the scripted answer to one prompt.
type Response struct {
	Kind   Kind
	Value  string
	Cancel bool
	// UseInitial answers with the request's initial value.
	UseInitial bool
}

// Answer scripts a text response.
func Answer(value string) Response { return Response{Kind: KindText, Value: value} }

// Choose scripts a select response.
func Choose(value string) Response { return Response{Kind: KindSelect, Value: value} }

// Accept scripts a text response that keeps the pre-filled value.
func Accept() Response { return Response{Kind: KindText, UseInitial: true} }

// Cancel scripts an operator abort for a prompt of the given kind.
func Cancel(kind Kind) Response { return Response{Kind: kind, Cancel: true} }

// Prompter replays Responses in order and records every Call. Validate
// callbacks on text requests are recorded but not enforced, so tests can
// observe how callers treat values a live form would have rejected.
type Prompter struct {
	Responses []Response
	Calls     []Call
}

// New returns a Prompter that replays responses in order.
func New(responses ...Response) *Prompter {
	return &Prompter{Responses: responses}
}

// Remaining reports how many scripted responses were not consumed.
func (p *Prompter) Remaining() int {
	return len(p.Responses)
}

func (p *Prompter) next(kind Kind, message string) (Response, error) {
	if len(p.Responses) == 0 {
		return Response{}, fmt.Errorf("fakeprompt: unexpected %s prompt %q", kind, message)
	}
	r := p.Responses[0]
	p.Responses = p.Responses[1:]
	if r.Kind != kind {
		return Response{}, fmt.Errorf("fakeprompt: got %s prompt %q, scripted %s", kind, message, r.Kind)
	}
	if r.Cancel {
		return Response{}, prompt.ErrCancelled
	}
	return r, nil
}

func (p *Prompter) Text(ctx context.Context, req prompt.TextRequest) (string, error) {
	p.Calls = append(p.Calls, Call{Kind: KindText, Text: req})
	r, err := p.next(KindText, req.Message)
	if err != nil {
		return "", err
	}
	value := r.Value
	if r.UseInitial {
		value = req.InitialValue
	}
	return value, nil
}

func (p *Prompter) Select(ctx context.Context, req prompt.SelectRequest) (string, error) {
	p.Calls = append(p.Calls, Call{Kind: KindSelect, Select: req})
	r, err := p.next(KindSelect, req.Message)
	if err != nil {
		return "", err
	}
	for _, opt := range req.Options {
		if opt.Value == r.Value {
			return r.Value, nil
		}
	}
	return "", fmt.Errorf("fakeprompt: %q is not an option of %q", r.Value, req.Message)
}
