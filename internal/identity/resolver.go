package identity

import (
	"context"
	"fmt"
	"sort"

	"github.com/steveyegge/dev-wizard/internal/debug"
	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// ExistingIdentityMessage is the prompt shown when several persisted
// identities exist for a scenario.
const ExistingIdentityMessage = "Select an existing answers identity (or create a new one):"

// SnapshotScanner recovers identities persisted by earlier runs.
type SnapshotScanner interface {
	Scan(ctx context.Context, repoRoot, scenarioID string, segments []SegmentSpec) ([]Selection, error)
}

// Request holds everything one run knows about its identity.
type Request struct {
	RepoRoot   string
	ScenarioID string
	Segments   []SegmentSpec

	// Slug is an explicit full identity ("maintenance/daily").
	Slug string
	// Overrides maps segment id to an explicit value.
	Overrides map[string]string
	// Metadata maps segment id to explicit label/details.
	Metadata map[string]SegmentMetadata

	// ExternalAnswers is set when answers are hydrated from a file given on
	// the command line instead of the local answers tree.
	ExternalAnswers bool
	// Interactive is set when both stdin and stdout are terminals.
	Interactive bool
}

func (r Request) hasValueOverrides() bool {
	return r.Slug != "" || len(r.Overrides) > 0
}

// Resolver sequences snapshot scanning, selection building and the
// interactive fallback ladder.
type Resolver struct {
	scanner  SnapshotScanner
	prompter prompt.Prompter
}

// NewResolver creates a Resolver. prompter may be nil for non-interactive use.
func NewResolver(scanner SnapshotScanner, prompter prompt.Prompter) *Resolver {
	return &Resolver{scanner: scanner, prompter: prompter}
}

// Resolve returns the identity for this run, or nil when the scenario has no
// identity or when answers come from an external file and the identity is
// left to be recovered from it. Operator aborts surface as prompt.ErrCancelled.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Selection, error) {
	if len(req.Segments) == 0 {
		if req.Slug != "" || len(req.Overrides) > 0 || len(req.Metadata) > 0 {
			return nil, newSegmentError(ErrConfigMismatch, nil,
				"scenario %q does not declare identity segments; remove --answers-identity/--answers-segment flags", req.ScenarioID)
		}
		return nil, nil
	}
	if err := checkOverrideIDs(req.Segments, req.Overrides, req.Metadata); err != nil {
		return nil, err
	}

	if req.Slug != "" {
		sel, err := ParseSlug(req.Segments, req.Slug, req.Metadata)
		if err != nil {
			return nil, err
		}
		debug.Logf("identity: using explicit identity %s\n", sel.Slug)
		return &sel, nil
	}

	var snapshots []Selection
	if !req.ExternalAnswers && r.scanner != nil {
		found, err := r.scanner.Scan(ctx, req.RepoRoot, req.ScenarioID, req.Segments)
		if err != nil {
			return nil, fmt.Errorf("scanning persisted identities: %w", err)
		}
		snapshots = found
		debug.Logf("identity: found %d persisted identit(ies) for %s\n", len(snapshots), req.ScenarioID)
	}

	canPrompt := req.Interactive && !req.ExternalAnswers
	if len(snapshots) > 1 && !req.hasValueOverrides() && canPrompt {
		return r.chooseExisting(ctx, req, snapshots)
	}

	// With several snapshots and no prompt there is no deterministic choice,
	// so none of them is used as a fallback.
	var fallback *Selection
	if len(snapshots) == 1 {
		fallback = &snapshots[0]
	}

	result, err := BuildSelection(req.Segments, req.Overrides, req.Metadata, fallback)
	if err != nil {
		return nil, err
	}

	if result.Selection != nil {
		if fallback != nil && !req.hasValueOverrides() && canPrompt {
			return r.prompt(ctx, req, fallback.Values())
		}
		return result.Selection, nil
	}

	if req.ExternalAnswers {
		return nil, nil
	}
	if !req.Interactive {
		return nil, missingSegments(result.MissingSegmentIDs)
	}
	var defaults map[string]string
	if fallback != nil {
		defaults = fallback.Values()
	}
	return r.prompt(ctx, req, defaults)
}

func (r *Resolver) prompt(ctx context.Context, req Request, defaults map[string]string) (*Selection, error) {
	sel, err := r.PromptSegments(ctx, PromptInput{
		Segments:  req.Segments,
		Overrides: req.Overrides,
		Defaults:  defaults,
		Metadata:  req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

// chooseExisting lets the operator pick one of several persisted identities
// (used as defaults) or start a new one from scratch.
func (r *Resolver) chooseExisting(ctx context.Context, req Request, snapshots []Selection) (*Selection, error) {
	if r.prompter == nil {
		return nil, fmt.Errorf("identity: interactive resolution requires a prompter")
	}
	sorted := make([]Selection, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	options := make([]prompt.Option, 0, len(sorted)+1)
	for _, snap := range sorted {
		options = append(options, prompt.Option{Value: snap.Slug, Label: snap.Slug, Hint: snap.Hint()})
	}
	options = append(options, prompt.Option{Value: newIdentityValue, Label: "Create a new identity"})

	picked, err := r.prompter.Select(ctx, prompt.SelectRequest{
		Message:      ExistingIdentityMessage,
		Options:      options,
		InitialValue: sorted[0].Slug,
	})
	if err != nil {
		return nil, err
	}
	if picked == newIdentityValue {
		return r.prompt(ctx, req, nil)
	}
	for _, snap := range sorted {
		if snap.Slug == picked {
			return r.prompt(ctx, req, snap.Values())
		}
	}
	return nil, fmt.Errorf("identity: unknown selection %q", picked)
}
