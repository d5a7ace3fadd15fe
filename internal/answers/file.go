package answers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

// File is the JSON document persisted for one answers alias.
type File struct {
	Meta     Meta           `json:"meta"`
	Scenario map[string]any `json:"scenario"`
}

// Meta describes what the answers belong to.
type Meta struct {
	ScenarioID string          `json:"scenarioId"`
	Identity   *IdentityRecord `json:"identity,omitempty"`
	Execution  *Execution      `json:"execution,omitempty"`
}

// IdentityRecord is the persisted form of an identity.Selection. Segment
// sources are not persisted.
type IdentityRecord struct {
	Slug     string          `json:"slug"`
	Segments []SegmentRecord `json:"segments"`
}

type SegmentRecord struct {
	ID      string         `json:"id"`
	Value   string         `json:"value"`
	Label   string         `json:"label"`
	Details map[string]any `json:"details,omitempty"`
}

// Execution records how the answers were last used.
type Execution struct {
	Sandbox     *bool  `json:"sandbox,omitempty"`
	SandboxSlug string `json:"sandboxSlug,omitempty"`
}

// RecordFromSelection converts a selection to its persisted form.
func RecordFromSelection(sel *identity.Selection) *IdentityRecord {
	if sel == nil {
		return nil
	}
	rec := &IdentityRecord{Slug: sel.Slug, Segments: make([]SegmentRecord, 0, len(sel.Segments))}
	for _, seg := range sel.Segments {
		label := seg.Label
		if label == "" {
			label = seg.Value
		}
		rec.Segments = append(rec.Segments, SegmentRecord{ID: seg.ID, Value: seg.Value, Label: label, Details: seg.Details})
	}
	return rec
}

// Selection converts a persisted record back into a selection with source
// "cli". The slug is re-derived from the segment values.
func (r *IdentityRecord) Selection() identity.Selection {
	segs := make([]identity.SegmentSelection, 0, len(r.Segments))
	for _, seg := range r.Segments {
		label := seg.Label
		if label == "" {
			label = seg.Value
		}
		segs = append(segs, identity.SegmentSelection{
			ID:      seg.ID,
			Value:   seg.Value,
			Label:   label,
			Source:  identity.SourceCLI,
			Details: seg.Details,
		})
	}
	return identity.NewSelection(segs)
}

// ParseSnapshot extracts meta.identity from raw answer file bytes. It never
// fails: anything malformed, or a segment count other than expected, yields
// ok == false.
func ParseSnapshot(data []byte, expected int) (identity.Selection, bool) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return identity.Selection{}, false
	}
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		return identity.Selection{}, false
	}
	ident, ok := meta["identity"].(map[string]any)
	if !ok {
		return identity.Selection{}, false
	}
	if _, ok := ident["slug"].(string); !ok {
		return identity.Selection{}, false
	}
	raw, ok := ident["segments"].([]any)
	if !ok || len(raw) != expected {
		return identity.Selection{}, false
	}

	rec := IdentityRecord{Segments: make([]SegmentRecord, 0, len(raw))}
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return identity.Selection{}, false
		}
		id, ok := m["id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			return identity.Selection{}, false
		}
		value, ok := m["value"].(string)
		if !ok || strings.TrimSpace(value) == "" {
			return identity.Selection{}, false
		}
		seg := SegmentRecord{ID: id, Value: value}
		if label, ok := m["label"].(string); ok {
			seg.Label = label
		}
		if details, ok := m["details"].(map[string]any); ok && len(details) > 0 {
			seg.Details = details
		}
		rec.Segments = append(rec.Segments, seg)
	}
	return rec.Selection(), true
}

// ErrCorrupt marks an answer file that exists but does not parse.
var ErrCorrupt = errors.New("corrupt answers file")

// Load reads and parses an answer file. A missing file returns (nil, nil).
// A file that cannot be parsed returns an error wrapping ErrCorrupt.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the answers tree or given by the operator
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCorrupt, path, err)
	}
	if f.Scenario == nil {
		f.Scenario = map[string]any{}
	}
	return &f, nil
}

// Exists reports whether a regular answer file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Save writes f as indented JSON with a trailing newline, creating parent
// directories. The file is replaced atomically via a temp file and rename.
func Save(path string, f *File) error {
	if f.Scenario == nil {
		f.Scenario = map[string]any{}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling answers: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating answers directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".answers-*.tmp")
	if err != nil {
		return fmt.Errorf("writing answers: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing answers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing answers: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing answers: %w", err)
	}
	return nil
}
