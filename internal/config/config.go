// Package config holds dev-wizard settings read through viper.
//
// Sources, highest priority first: command-line flags (applied by the CLI),
// DEV_WIZARD_* environment variables, <repo>/.dev-wizard/config.yaml,
// ~/.dev-wizard/config.yaml, and the defaults registered here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DEV_WIZARD_NON_INTERACTIVE or DEV_WIZARD_SCENARIOS_PATHS.
const EnvPrefix = "DEV_WIZARD"

// Keys.
const (
	KeyRepoRoot       = "repo-root"
	KeyScenarioPaths  = "scenarios.paths"
	KeyNonInteractive = "non-interactive"
	KeyTheme          = "theme"
	KeyJSON           = "json"
)

var v *viper.Viper

// Initialize (re)loads configuration for repoRoot. A missing config file is
// not an error; a malformed one is.
func Initialize(repoRoot string) error {
	v = viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if repoRoot != "" {
		v.AddConfigPath(filepath.Join(repoRoot, ".dev-wizard"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".dev-wizard"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyRepoRoot, "")
	v.SetDefault(KeyScenarioPaths, []string{})
	v.SetDefault(KeyNonInteractive, false)
	v.SetDefault(KeyTheme, "charm")
	v.SetDefault(KeyJSON, false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// ConfigFileUsed returns the config file that was loaded, if any.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetStringSlice returns a list setting. A single comma-separated string,
// as supplied through the environment, is split into its elements.
func GetStringSlice(key string) []string {
	if v == nil {
		return []string{}
	}
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// Set overrides a value for the rest of the process. The CLI uses it to
// record flag values so AllSettings reports what is in effect.
func Set(key string, value any) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns every known key, dotted as in the config file
// (e.g. "scenarios.paths"), with its effective value.
func AllSettings() map[string]any {
	out := map[string]any{}
	if v == nil {
		return out
	}
	for _, key := range v.AllKeys() {
		out[key] = v.Get(key)
	}
	return out
}
