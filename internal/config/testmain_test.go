package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestMain keeps tests away from the developer's ~/.dev-wizard/config.yaml.
func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "dev-wizard-config-tests-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	oldWD, _ := os.Getwd()
	_ = os.Chdir(tmp)
	_ = os.Setenv("HOME", tmp)
	_ = os.Setenv("USERPROFILE", tmp) // Windows compatibility
	_ = os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg-config"))

	code := m.Run()

	_ = os.Chdir(oldWD)
	_ = os.RemoveAll(tmp)
	os.Exit(code)
}
