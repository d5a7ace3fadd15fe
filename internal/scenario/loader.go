package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ScenariosDirName is the directory, below .dev-wizard, holding scenario files.
const ScenariosDirName = "scenarios"

// Extensions lists supported scenario file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml"}

// ErrNotFound is returned when no search path contains the requested scenario.
var ErrNotFound = errors.New("scenario not found")

// Loader finds and parses scenario files.
//
// NOTE: Loader is not safe for concurrent use; the caches have no locking.
type Loader struct {
	searchPaths []string
	files       map[string]*Scenario // by absolute path
	byID        map[string]*Scenario // ids resolved through the search paths
}

// NewLoader creates a loader over searchPaths, searched in order.
func NewLoader(searchPaths ...string) *Loader {
	return &Loader{
		searchPaths: searchPaths,
		files:       make(map[string]*Scenario),
		byID:        make(map[string]*Scenario),
	}
}

// SearchPaths returns the directories the loader consults.
func (l *Loader) SearchPaths() []string {
	return append([]string(nil), l.searchPaths...)
}

// DefaultSearchPaths returns <repoRoot>/.dev-wizard/scenarios,
// ~/.dev-wizard/scenarios and then extra, in that order.
func DefaultSearchPaths(repoRoot string, extra ...string) []string {
	var paths []string
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, ".dev-wizard", ScenariosDirName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dev-wizard", ScenariosDirName))
	}
	for _, p := range extra {
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Load returns the scenario with the given id. A value naming an existing
// scenario file is parsed directly. Otherwise each search path is checked
// for <id>.yaml, <id>.yml or <id>.toml, and then for any file declaring id.
func (l *Loader) Load(id string) (*Scenario, error) {
	if isScenarioFile(id) {
		if _, err := os.Stat(id); err == nil {
			return l.ParseFile(id)
		}
	}
	if cached, ok := l.byID[id]; ok {
		return cached, nil
	}

	for _, dir := range l.searchPaths {
		for _, ext := range Extensions {
			path := filepath.Join(dir, id+ext)
			if _, err := os.Stat(path); err == nil {
				s, err := l.ParseFile(path)
				if err != nil {
					return nil, err
				}
				l.byID[id] = s
				return s, nil
			}
		}
	}

	if _, err := l.List(); err != nil {
		return nil, err
	}
	if s, ok := l.byID[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q (searched %s)", ErrNotFound, id, strings.Join(l.searchPaths, ", "))
}

// List parses every scenario file on the search paths. When two files share
// an id, the one from the earlier search path wins. Results are sorted by id.
func (l *Loader) List() ([]*Scenario, error) {
	byID := make(map[string]*Scenario)
	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isScenarioFile(entry.Name()) {
				continue
			}
			s, err := l.ParseFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, err
			}
			if _, exists := byID[s.ID]; !exists {
				byID[s.ID] = s
			}
		}
	}

	out := make([]*Scenario, 0, len(byID))
	for id, s := range byID {
		if _, ok := l.byID[id]; !ok {
			l.byID[id] = s
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ParseFile reads, parses and validates a scenario file. The format follows
// the extension. A scenario without an id takes the file's base name.
func (l *Loader) ParseFile(path string) (*Scenario, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if cached, ok := l.files[absPath]; ok {
		return cached, nil
	}

	// #nosec G304 -- absPath comes from the search paths or explicit user input
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var s *Scenario
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		s, err = ParseTOML(data)
	} else {
		s, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.ID == "" {
		base := filepath.Base(path)
		s.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	s.Source = absPath
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.files[absPath] = s
	return s, nil
}

// ParseYAML decodes a scenario from YAML bytes. Unknown fields are rejected.
func ParseYAML(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: empty document")
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	s.applyDefaults()
	return &s, nil
}

// ParseTOML decodes a scenario from TOML bytes. Unknown keys are rejected.
func ParseTOML(data []byte) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	s.applyDefaults()
	return &s, nil
}

func isScenarioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
