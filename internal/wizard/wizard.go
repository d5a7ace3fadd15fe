// Package wizard runs one scenario end to end: identity resolution, answers
// address, stored-answer strategy, answer capture and the final write.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/debug"
	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
	"github.com/steveyegge/dev-wizard/internal/scenario"
)

// ErrAnswersFileNotFound is returned when --answers names a missing file.
var ErrAnswersFileNotFound = errors.New("answers file not found")

// Options configures a run.
type Options struct {
	RepoRoot string
	Scenario *scenario.Scenario

	// Slug, Overrides and Metadata carry --answers-identity,
	// --answers-segment and --answers-segment-label/-detail.
	Slug      string
	Overrides map[string]string
	Metadata  map[string]identity.SegmentMetadata

	// AnswersPath hydrates answers from an external file.
	AnswersPath string
	Interactive bool
	Sandbox     bool

	Prompter prompt.Prompter
	Scanner  identity.SnapshotScanner
}

func (o Options) external() bool { return o.AnswersPath != "" }

// Location is where a run's answers live.
type Location struct {
	Identity *identity.Selection
	Address  answers.Address

	// External is the file loaded from AnswersPath, if any.
	External *answers.File
}

// Result describes a completed run.
type Result struct {
	Location
	Strategy answers.Strategy
	Answers  map[string]any
}

// Locate resolves the identity and answers address without reading the
// stored answers or capturing any.
func Locate(ctx context.Context, opts Options) (*Location, error) {
	if opts.Scenario == nil {
		return nil, fmt.Errorf("wizard: no scenario")
	}
	loc := &Location{}

	if opts.external() {
		f, err := answers.Load(opts.AnswersPath)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, fmt.Errorf("%w: %s", ErrAnswersFileNotFound, opts.AnswersPath)
		}
		loc.External = f
	}

	resolver := identity.NewResolver(opts.Scanner, opts.Prompter)
	sel, err := resolver.Resolve(ctx, identity.Request{
		RepoRoot:        opts.RepoRoot,
		ScenarioID:      opts.Scenario.ID,
		Segments:        opts.Scenario.Segments(),
		Slug:            opts.Slug,
		Overrides:       opts.Overrides,
		Metadata:        opts.Metadata,
		ExternalAnswers: opts.external(),
		Interactive:     opts.Interactive,
	})
	if err != nil {
		return nil, err
	}
	if sel == nil && loc.External != nil {
		sel = identityFromFile(loc.External, opts.Scenario.Segments())
		if sel != nil {
			debug.Logf("wizard: recovered identity %s from %s\n", sel.Slug, opts.AnswersPath)
		}
	}
	loc.Identity = sel

	addr, err := answers.ResolveAddress(ctx, answers.AddressRequest{
		RepoRoot:     opts.RepoRoot,
		ScenarioID:   opts.Scenario.ID,
		Identity:     sel,
		ExternalPath: opts.AnswersPath,
		Interactive:  opts.Interactive,
		Prompter:     opts.Prompter,
	})
	if err != nil {
		return nil, err
	}
	loc.Address = addr
	debug.Logf("wizard: answers address %s\n", addr)
	return loc, nil
}

// identityFromFile recovers the identity stored in an external answers file
// when its segments match the declared ones id for id.
func identityFromFile(f *answers.File, segments []identity.SegmentSpec) *identity.Selection {
	rec := f.Meta.Identity
	if rec == nil || len(segments) == 0 || len(rec.Segments) != len(segments) {
		return nil
	}
	for i, seg := range rec.Segments {
		if seg.ID != segments[i].ID || seg.Value == "" {
			return nil
		}
	}
	sel := rec.Selection()
	return &sel
}

// Run executes the scenario and writes the answers file once, at the end.
// An operator abort at any prompt returns prompt.ErrCancelled and writes
// nothing.
func Run(ctx context.Context, opts Options) (*Result, error) {
	loc, err := Locate(ctx, opts)
	if err != nil {
		return nil, err
	}

	existing := loc.External
	strategy := answers.StrategyReuse
	if !opts.external() {
		existing, err = answers.Load(loc.Address.Path)
		if errors.Is(err, answers.ErrCorrupt) {
			// Same treatment as the scanner: start over and let Save replace it.
			debug.Logf("wizard: ignoring %v\n", err)
			existing, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		if answers.ShouldPromptStrategy(existing != nil, opts.Interactive, false) {
			strategy, err = answers.PromptStrategy(ctx, opts.Prompter, answers.RelativePath(opts.RepoRoot, loc.Address.Path))
			if err != nil {
				return nil, err
			}
		}
	}
	debug.Logf("wizard: strategy %s\n", strategy)

	session := answers.NewSession(existing, strategy)
	if err := Collect(ctx, opts.Prompter, opts.Scenario.Steps, session, opts.Interactive); err != nil {
		return nil, err
	}

	var exec *answers.Execution
	if opts.Sandbox {
		sandbox := true
		slug := loc.Address.Alias
		if loc.Identity != nil {
			slug = loc.Identity.Slug
		}
		exec = &answers.Execution{Sandbox: &sandbox, SandboxSlug: slug}
	}

	file := session.Finalize(opts.Scenario.ID, loc.Identity, exec)
	if err := answers.Save(loc.Address.Path, file); err != nil {
		return nil, err
	}

	return &Result{
		Location: *loc,
		Strategy: session.Strategy(),
		Answers:  file.Scenario,
	}, nil
}
