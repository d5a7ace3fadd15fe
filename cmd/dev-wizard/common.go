package main

import (
	"errors"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/config"
	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
	"github.com/steveyegge/dev-wizard/internal/scenario"
	"github.com/steveyegge/dev-wizard/internal/telemetry"
	"github.com/steveyegge/dev-wizard/internal/ui"
)

func newLoader() *scenario.Loader {
	return scenario.NewLoader(scenario.DefaultSearchPaths(repoRoot, config.GetStringSlice(config.KeyScenarioPaths)...)...)
}

// mustLoadScenario loads a scenario by id or path, exiting on failure.
func mustLoadScenario(id string) *scenario.Scenario {
	l := newLoader()
	sc, err := l.Load(id)
	if errors.Is(err, scenario.ErrNotFound) {
		FatalErrorWithHint(err.Error(), "Run 'dev-wizard scenarios list' to see available scenarios (searched "+strings.Join(l.SearchPaths(), ", ")+")")
	}
	if err != nil {
		FatalError("%v", err)
	}
	return sc
}

// isInteractive reports whether prompts may be shown for this invocation.
func isInteractive() bool {
	return !nonInteractive && !jsonOutput && ui.IsInteractive()
}

func newPrompter() prompt.Prompter {
	return telemetry.WrapPrompter(prompt.NewHuhPrompter(prompt.WithTheme(themeName)))
}

func newScanner() identity.SnapshotScanner {
	return telemetry.WrapScanner(answers.Scanner{})
}
