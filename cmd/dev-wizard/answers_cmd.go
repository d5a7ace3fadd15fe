package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/wizard"
)

var answersCmd = &cobra.Command{
	Use:   "answers",
	Short: "Inspect saved answers",
}

var pathIdentity identityFlags

var answersPathCmd = &cobra.Command{
	Use:   "path <scenario>",
	Short: "Print where a run would read and write its answers",
	Long: `Resolves the answers identity and file path without prompting and
without writing anything. Identity flags work as for 'run'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc := mustLoadScenario(args[0])
		overrides, metadata, err := pathIdentity.parse()
		if err != nil {
			FatalError("%v", err)
		}

		loc, err := wizard.Locate(rootCtx, wizard.Options{
			RepoRoot:  repoRoot,
			Scenario:  sc,
			Slug:      pathIdentity.slug,
			Overrides: overrides,
			Metadata:  metadata,
			Scanner:   newScanner(),
		})
		exitOnError(err)

		if jsonOutput {
			out := map[string]any{
				"scenario": sc.ID,
				"alias":    loc.Address.Alias,
				"path":     loc.Address.Path,
				"exists":   answers.Exists(loc.Address.Path),
			}
			if loc.Identity != nil {
				out["identity"] = toIdentityJSON(*loc.Identity)
			}
			outputJSON(out)
			return
		}
		fmt.Println(loc.Address.Path)
	},
}

func init() {
	pathIdentity.register(answersPathCmd)
	answersCmd.AddCommand(answersPathCmd)
	rootCmd.AddCommand(answersCmd)
}
