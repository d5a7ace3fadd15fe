package main

import (
	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/debug"
	"github.com/steveyegge/dev-wizard/internal/ui"
	"github.com/steveyegge/dev-wizard/internal/wizard"
)

var (
	runIdentity    identityFlags
	runAnswersPath string
	runSandbox     bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and save its answers",
	Long: `Runs a scenario wizard. The answers identity is taken from
--answers-identity / --answers-segment, a single saved identity, or prompts.
Saved answers for the identity can be reused, reviewed or reset.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc := mustLoadScenario(args[0])
		overrides, metadata, err := runIdentity.parse()
		if err != nil {
			FatalError("%v", err)
		}

		opts := wizard.Options{
			RepoRoot:    repoRoot,
			Scenario:    sc,
			Slug:        runIdentity.slug,
			Overrides:   overrides,
			Metadata:    metadata,
			AnswersPath: runAnswersPath,
			Interactive: isInteractive(),
			Sandbox:     runSandbox,
			Scanner:     newScanner(),
		}
		if opts.Interactive {
			opts.Prompter = newPrompter()
		}

		res, err := wizard.Run(rootCtx, opts)
		exitOnError(err)

		if jsonOutput {
			outputJSON(runResultJSON(sc.ID, res))
			return
		}
		debug.PrintNormal("%s Saved %s answers to %s\n", ui.RenderPassIcon(), res.Address.DisplayName(), ui.RenderAccent(answers.RelativePath(repoRoot, res.Address.Path)))
		if res.Identity != nil {
			debug.PrintNormal("  %s%s\n", ui.TreeLast, ui.RenderMuted(res.Identity.Hint()))
		}
	},
}

type runResult struct {
	Scenario string         `json:"scenario"`
	Alias    string         `json:"alias"`
	Path     string         `json:"path"`
	Identity *identityJSON  `json:"identity,omitempty"`
	Strategy string         `json:"strategy"`
	Answers  map[string]any `json:"answers"`
}

func runResultJSON(scenarioID string, res *wizard.Result) runResult {
	out := runResult{
		Scenario: scenarioID,
		Alias:    res.Address.Alias,
		Path:     res.Address.Path,
		Strategy: string(res.Strategy),
		Answers:  res.Answers,
	}
	if res.Identity != nil {
		id := toIdentityJSON(*res.Identity)
		out.Identity = &id
	}
	return out
}

func init() {
	runIdentity.register(runCmd)
	runCmd.Flags().StringVar(&runAnswersPath, "answers", "", "Load answers from this file instead of the saved answers tree")
	runCmd.Flags().BoolVar(&runSandbox, "sandbox", false, "Record this run as a sandbox execution")
	rootCmd.AddCommand(runCmd)
}
