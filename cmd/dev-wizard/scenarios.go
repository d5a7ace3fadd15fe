package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/scenario"
	"github.com/steveyegge/dev-wizard/internal/ui"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List and inspect scenario definitions",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios found on the search paths",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := newLoader()
		all, err := l.List()
		exitOnError(err)

		if jsonOutput {
			if all == nil {
				all = []*scenario.Scenario{}
			}
			outputJSON(all)
			return
		}
		if len(all) == 0 {
			fmt.Printf("No scenarios found (searched %s)\n", strings.Join(l.SearchPaths(), ", "))
			return
		}
		renderScenarioList(os.Stdout, all)
	},
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <scenario>",
	Short: "Show a scenario's identity segments and steps",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc := mustLoadScenario(args[0])
		if jsonOutput {
			outputJSON(sc)
			return
		}
		renderScenario(os.Stdout, sc)
	},
}

func renderScenarioList(w io.Writer, all []*scenario.Scenario) {
	width := 0
	for _, sc := range all {
		if len(sc.ID) > width {
			width = len(sc.ID)
		}
	}
	for _, sc := range all {
		line := sc.DisplayTitle()
		if summary := ui.FirstLine(sc.Description); summary != "" && summary != line {
			line += " - " + summary
		}
		fmt.Fprintf(w, "%s  %s\n", ui.RenderAccent(fmt.Sprintf("%-*s", width, sc.ID)), ui.TruncateSimple(line, 80))
	}
}

func renderScenario(w io.Writer, sc *scenario.Scenario) {
	fmt.Fprintf(w, "%s %s\n", ui.RenderCategory(sc.DisplayTitle()), ui.RenderMuted("("+sc.ID+")"))
	if sc.Description != "" {
		fmt.Fprintln(w, ui.RenderMarkdown(sc.Description))
	}

	if segs := sc.Segments(); len(segs) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.RenderCategory("Identity"))
		for _, seg := range segs {
			var traits []string
			if vals := seg.OptionValues(); len(vals) > 0 {
				traits = append(traits, "options: "+strings.Join(vals, ", "))
			}
			if seg.AllowCustom {
				traits = append(traits, "custom values allowed")
			}
			if seg.DefaultValue != "" {
				traits = append(traits, "default: "+seg.DefaultValue)
			}
			fmt.Fprintf(w, "  %s  %s\n", ui.RenderAccent(seg.ID), seg.Message())
			if len(traits) > 0 {
				fmt.Fprintf(w, "    %s%s\n", ui.TreeLast, ui.RenderMuted(strings.Join(traits, "; ")))
			}
		}
	}

	if len(sc.Steps) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.RenderCategory("Steps"))
		for _, step := range sc.Steps {
			marker := ""
			if step.Required {
				marker = " " + ui.RenderWarn("(required)")
			}
			fmt.Fprintf(w, "  %s  %s%s\n", ui.RenderAccent(step.ID), step.Message(), marker)
		}
	}
}

func init() {
	scenariosCmd.AddCommand(scenariosListCmd, scenariosShowCmd)
	rootCmd.AddCommand(scenariosCmd)
}
