package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	repoRootFlag   string
	repoRoot       string
	jsonOutput     bool
	nonInteractive bool
	themeName      string
	verboseFlag    bool
	quietFlag      bool

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc

	// runID identifies this invocation in debug output and telemetry.
	runID string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&repoRootFlag, "repo-root", "", "Repository root (default: nearest directory with .dev-wizard or .git)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; fail when an answer is missing")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Prompt theme (charm, dracula, catppuccin, base16, base)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "dev-wizard",
	Short: "dev-wizard - guided, repeatable developer workflows",
	Long: `Runs scenario wizards and keeps their answers under .dev-wizard/answers,
addressed by an identity (for example category/cadence/window) so the same
answers can be found and reused by later runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("dev-wizard version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		applyVerbosityFlags()
		initRunID()
		initRepoAndConfig()
		applyViperOverrides(cmd)
		initTelemetry()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
		if rootCancel != nil {
			rootCancel()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
