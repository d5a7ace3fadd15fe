package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/ui"
)

var identitiesCmd = &cobra.Command{
	Use:   "identities <scenario>",
	Short: "List saved answers identities for a scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc := mustLoadScenario(args[0])
		segments := sc.Segments()
		if len(segments) == 0 {
			FatalError("scenario %q does not declare identity segments", sc.ID)
		}

		found, err := newScanner().Scan(rootCtx, repoRoot, sc.ID, segments)
		exitOnError(err)
		sortSelections(found)

		if jsonOutput {
			out := make([]identityJSON, 0, len(found))
			for _, sel := range found {
				out = append(out, toIdentityJSON(sel))
			}
			outputJSON(out)
			return
		}
		renderIdentities(os.Stdout, sc.ID, found)
	},
}

type segmentJSON struct {
	ID      string         `json:"id"`
	Value   string         `json:"value"`
	Label   string         `json:"label"`
	Details map[string]any `json:"details,omitempty"`
}

type identityJSON struct {
	Slug     string        `json:"slug"`
	Segments []segmentJSON `json:"segments"`
}

func toIdentityJSON(sel identity.Selection) identityJSON {
	out := identityJSON{Slug: sel.Slug, Segments: make([]segmentJSON, 0, len(sel.Segments))}
	for _, seg := range sel.Segments {
		out.Segments = append(out.Segments, segmentJSON{ID: seg.ID, Value: seg.Value, Label: seg.Label, Details: seg.Details})
	}
	return out
}

func sortSelections(sels []identity.Selection) {
	sort.Slice(sels, func(i, j int) bool { return sels[i].Slug < sels[j].Slug })
}

func renderIdentities(w io.Writer, scenarioID string, found []identity.Selection) {
	if len(found) == 0 {
		fmt.Fprintf(w, "No saved identities for %s\n", scenarioID)
		return
	}
	fmt.Fprintf(w, "%s (%d)\n", ui.RenderCategory(scenarioID), len(found))
	for _, sel := range found {
		fmt.Fprintf(w, "  %s\n", ui.RenderAccent(sel.Slug))
		fmt.Fprintf(w, "    %s%s\n", ui.TreeLast, ui.RenderMuted(sel.Hint()))
	}
}

func init() {
	rootCmd.AddCommand(identitiesCmd)
}
