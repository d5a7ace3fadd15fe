package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/steveyegge/dev-wizard/internal/answers"
	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/scenario"
	"github.com/steveyegge/dev-wizard/internal/wizard"
)

// outputJSON outputs data as pretty-printed JSON to stdout.
func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// outputJSONError outputs an error as JSON to stderr and exits with code 1.
//
//	{"error": "error message", "code": "error_code"}
func outputJSONError(err error, code string) {
	errObj := map[string]string{"error": err.Error()}
	if code != "" {
		errObj["code"] = code
	}
	encoder := json.NewEncoder(os.Stderr)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(errObj)
	os.Exit(1)
}

// errorCode maps known error kinds to stable machine-readable codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, identity.ErrMissingRequiredSegments):
		return "missing_segments"
	case errors.Is(err, identity.ErrConfigMismatch):
		return "config_mismatch"
	case errors.Is(err, identity.ErrSegmentCountMismatch):
		return "segment_count_mismatch"
	case errors.Is(err, identity.ErrInvalidCustomValue):
		return "invalid_value"
	case errors.Is(err, identity.ErrEmptyCustomValue):
		return "empty_value"
	case errors.Is(err, identity.ErrSegmentConfig):
		return "segment_config"
	case errors.Is(err, wizard.ErrMissingAnswer):
		return "missing_answer"
	case errors.Is(err, answers.ErrCorrupt):
		return "corrupt_answers"
	case errors.Is(err, wizard.ErrAnswersFileNotFound):
		return "answers_not_found"
	case errors.Is(err, scenario.ErrNotFound):
		return "scenario_not_found"
	}
	return ""
}
