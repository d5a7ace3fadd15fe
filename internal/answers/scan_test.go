package answers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func saveIdentity(t *testing.T, root, scenario string, values ...string) {
	t.Helper()
	ids := []string{"category", "cadence", "window"}
	segs := make([]identity.SegmentSelection, len(values))
	for i, v := range values {
		segs[i] = identity.SegmentSelection{ID: ids[i], Value: v, Label: v}
	}
	sel := identity.NewSelection(segs)
	require.NoError(t, Save(BuildPath(root, scenario, &sel, ""), &File{
		Meta: Meta{ScenarioID: scenario, Identity: RecordFromSelection(&sel)},
	}))
}

func threeSegments() []identity.SegmentSpec {
	return []identity.SegmentSpec{{ID: "category"}, {ID: "cadence"}, {ID: "window"}}
}

func slugs(sels []identity.Selection) []string {
	out := make([]string, 0, len(sels))
	for _, s := range sels {
		out = append(out, s.Slug)
	}
	sort.Strings(out)
	return out
}

func TestScanMissingDirectory(t *testing.T) {
	found, err := Scanner{}.Scan(context.Background(), t.TempDir(), "maintenance", threeSegments())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScanFindsNestedIdentities(t *testing.T) {
	root := t.TempDir()
	saveIdentity(t, root, "maintenance", "projects", "daily", "window-a")
	saveIdentity(t, root, "maintenance", "projects", "daily", "window-b")
	saveIdentity(t, root, "maintenance", "ops", "weekly", "sunday")
	saveIdentity(t, root, "other", "projects", "daily", "elsewhere")

	found, err := Scanner{}.Scan(context.Background(), root, "maintenance", threeSegments())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ops/weekly/sunday",
		"projects/daily/window-a",
		"projects/daily/window-b",
	}, slugs(found))
}

func TestScanSkipsMalformedFiles(t *testing.T) {
	root := t.TempDir()
	dir := ScenarioDir(root, "maintenance")
	saveIdentity(t, root, "maintenance", "projects", "daily", "window-a")
	writeRaw(t, filepath.Join(dir, "broken.json"), "{not json")
	writeRaw(t, filepath.Join(dir, "projects", "no-identity.json"), `{"meta":{"scenarioId":"maintenance"},"scenario":{}}`)
	writeRaw(t, filepath.Join(dir, "projects", "short.json"), `{"meta":{"identity":{"slug":"a/b","segments":[{"id":"category","value":"a"},{"id":"cadence","value":"b"}]}}}`)
	writeRaw(t, filepath.Join(dir, "notes.txt"), "ignored")

	found, err := Scanner{}.Scan(context.Background(), root, "maintenance", threeSegments())
	require.NoError(t, err)
	assert.Equal(t, []string{"projects/daily/window-a"}, slugs(found))
}

func TestScanDeduplicatesBySlug(t *testing.T) {
	root := t.TempDir()
	dir := ScenarioDir(root, "maintenance")
	doc := `{"meta":{"identity":{"slug":"p/d/w","segments":[{"id":"category","value":"p"},{"id":"cadence","value":"d","label":"%s"},{"id":"window","value":"w"}]}}}`
	// Root-level files are visited before subdirectories.
	writeRaw(t, filepath.Join(dir, "copy.json"), fmt.Sprintf(doc, "first"))
	writeRaw(t, filepath.Join(dir, "p", "d", "w.json"), fmt.Sprintf(doc, "second"))

	found, err := Scanner{}.Scan(context.Background(), root, "maintenance", threeSegments())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "first", found[0].Segments[1].Label)
}

func TestScanHonoursContext(t *testing.T) {
	root := t.TempDir()
	saveIdentity(t, root, "maintenance", "projects", "daily", "window-a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scanner{}.Scan(ctx, root, "maintenance", threeSegments())
	assert.ErrorIs(t, err, context.Canceled)
}
