package config

import (
	"os"
	"path/filepath"
)

// repoMarkers identify a repository root, checked in order at each level.
var repoMarkers = []string{".dev-wizard", ".git"}

// FindRepoRoot walks up from start to the nearest directory containing
// .dev-wizard or .git. When neither is found the absolute start is returned.
func FindRepoRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for dir := abs; ; {
		for _, marker := range repoMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
