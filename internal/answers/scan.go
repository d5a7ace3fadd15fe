package answers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

// Scanner recovers identities persisted under a scenario's answers directory.
// It implements identity.SnapshotScanner.
type Scanner struct{}

var _ identity.SnapshotScanner = Scanner{}

// Scan walks <repoRoot>/.dev-wizard/answers/<scenario>/ depth-first and
// returns one selection per distinct slug, keeping the first one found.
// Files that cannot be read or parsed, or whose identity has a segment count
// other than len(segments), are skipped silently. A missing directory yields
// an empty result.
func (Scanner) Scan(ctx context.Context, repoRoot, scenarioID string, segments []identity.SegmentSpec) ([]identity.Selection, error) {
	root := ScenarioDir(repoRoot, scenarioID)
	var (
		found []identity.Selection
		seen  = make(map[string]bool)
		stack = []string{root}
	)
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading %s: %w", dir, err)
			}
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				subdirs = append(subdirs, path)
				continue
			}
			if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != FileExt {
				continue
			}
			data, err := os.ReadFile(path) // #nosec G304 -- path is inside the answers tree
			if err != nil {
				continue
			}
			sel, ok := ParseSnapshot(data, len(segments))
			if !ok || seen[sel.Slug] {
				continue
			}
			seen[sel.Slug] = true
			found = append(found, sel)
		}
		// Push in reverse so directories pop in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return found, nil
}
