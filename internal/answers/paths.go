// Package answers owns the on-disk answers tree: the answer file format,
// path derivation, snapshot scanning and the reuse/review/reset strategy.
//
// Layout:
//
//	<repoRoot>/.dev-wizard/answers/<scenario>/[<segment>/...]<lastSegment>.json
//	<repoRoot>/.dev-wizard/answers/<alias>.json   (no identity)
package answers

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/identity"
)

const (
	// DirName is the per-repository state directory.
	DirName = ".dev-wizard"
	// AnswersDirName holds persisted answer files below DirName.
	AnswersDirName = "answers"
	// FallbackSegment replaces any segment that sanitizes to nothing.
	FallbackSegment = "answers"
	// FileExt is the extension of every answer file.
	FileExt = ".json"
)

var unsafeSegmentChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeSegment turns a free-form value into a single safe path component.
// It never fails and always returns the same output for the same input.
func SanitizeSegment(value string) string {
	s := unsafeSegmentChars.ReplaceAllString(strings.TrimSpace(value), "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		return FallbackSegment
	}
	return s
}

// AnswersDir returns <repoRoot>/.dev-wizard/answers.
func AnswersDir(repoRoot string) string {
	return filepath.Join(repoRoot, DirName, AnswersDirName)
}

// ScenarioDir returns the directory holding identity-addressed answer files
// for a scenario.
func ScenarioDir(repoRoot, scenarioID string) string {
	return filepath.Join(AnswersDir(repoRoot), SanitizeSegment(scenarioID))
}

// AliasFor returns the logical answers name: the scenario id, or
// "<scenarioId>/<slug>" when an identity is known.
func AliasFor(scenarioID string, sel *identity.Selection) string {
	if sel == nil || len(sel.Segments) == 0 {
		return scenarioID
	}
	return scenarioID + identity.SlugSeparator + sel.Slug
}

// BuildPath derives the answer file path. With an identity every segment but
// the last becomes a directory under the scenario directory and the last one
// names the file. Without one, alias (split on "/") names the file below the
// answers directory, falling back to the scenario id.
func BuildPath(repoRoot, scenarioID string, sel *identity.Selection, alias string) string {
	if sel != nil && len(sel.Segments) > 0 {
		parts := []string{ScenarioDir(repoRoot, scenarioID)}
		for _, seg := range sel.Segments[:len(sel.Segments)-1] {
			parts = append(parts, SanitizeSegment(seg.Value))
		}
		last := sel.Segments[len(sel.Segments)-1]
		parts = append(parts, SanitizeSegment(last.Value)+FileExt)
		return filepath.Join(parts...)
	}

	pieces := identity.SplitSlug(alias)
	if len(pieces) == 0 {
		pieces = []string{scenarioID}
	}
	parts := []string{AnswersDir(repoRoot)}
	for _, p := range pieces[:len(pieces)-1] {
		parts = append(parts, SanitizeSegment(p))
	}
	parts = append(parts, SanitizeSegment(pieces[len(pieces)-1])+FileExt)
	return filepath.Join(parts...)
}
