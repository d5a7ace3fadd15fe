package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/config"
	"github.com/steveyegge/dev-wizard/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Shows the settings in effect for this repository.

Sources, highest priority first: command-line flags, DEV_WIZARD_* environment
variables, <repo>/.dev-wizard/config.yaml, ~/.dev-wizard/config.yaml, defaults.

Examples:
  dev-wizard config list
  DEV_WIZARD_THEME=dracula dev-wizard config list --json`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AllSettings()
		if jsonOutput {
			outputJSON(cfg)
			return
		}
		printConfigList(os.Stdout, cfg, config.ConfigFileUsed())
	},
}

// printConfigList writes settings sorted by key, then the config file in use.
func printConfigList(w io.Writer, cfg map[string]any, file string) {
	if len(cfg) == 0 {
		fmt.Fprintln(w, "No configuration set")
		return
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "%s\n", ui.RenderCategory("Configuration:"))
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %v\n", k, cfg[k])
	}
	if file == "" {
		file = "none"
	}
	fmt.Fprintf(w, "\n%s\n", ui.RenderMuted("config file: "+file))
}

func init() {
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
