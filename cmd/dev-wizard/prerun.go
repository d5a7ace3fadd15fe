package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/steveyegge/dev-wizard/internal/config"
	"github.com/steveyegge/dev-wizard/internal/debug"
	"github.com/steveyegge/dev-wizard/internal/telemetry"
	"github.com/steveyegge/dev-wizard/internal/ui"
)

func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// applyVerbosityFlags propagates --verbose and --quiet flags to the debug
// package so all subsequent log output respects the user's preference.
func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
	ui.ApplyColorPolicy()
}

func initRunID() {
	runID = uuid.NewString()
	debug.SetRunID(runID)
	telemetry.SetRunID(runID)
}

// initRepoAndConfig locates the repository root and loads its config. The
// root comes from --repo-root, then the repo-root setting (env or user
// config), then discovery from the working directory.
func initRepoAndConfig() {
	root := repoRootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			FatalError("cannot determine working directory: %v", err)
		}
		if root, err = config.FindRepoRoot(cwd); err != nil {
			FatalError("cannot locate repository root: %v", err)
		}
	}
	if err := config.Initialize(root); err != nil {
		FatalError("%v", err)
	}
	if repoRootFlag == "" {
		if configured := config.GetString(config.KeyRepoRoot); configured != "" && configured != root {
			root = configured
			if err := config.Initialize(root); err != nil {
				FatalError("%v", err)
			}
		}
	}
	repoRoot = root
	debug.Logf("config: repo root %s (config file %q)\n", repoRoot, config.ConfigFileUsed())
}

// applyViperOverrides merges viper config values (from config file + env vars)
// into flags that weren't explicitly set on the command line.
// Priority: flags > viper (config file + env vars) > defaults. The resolved
// values are written back so 'config list' shows what is in effect.
func applyViperOverrides(cmd *cobra.Command) {
	if !cmd.Flags().Changed("json") {
		jsonOutput = config.GetBool(config.KeyJSON)
	}
	if !cmd.Flags().Changed("non-interactive") {
		nonInteractive = config.GetBool(config.KeyNonInteractive)
	}
	if !cmd.Flags().Changed("theme") {
		themeName = config.GetString(config.KeyTheme)
	}

	config.Set(config.KeyRepoRoot, repoRoot)
	config.Set(config.KeyJSON, jsonOutput)
	config.Set(config.KeyNonInteractive, nonInteractive)
	config.Set(config.KeyTheme, themeName)
}

func initTelemetry() {
	if err := telemetry.Init(rootCtx, "dev-wizard", Version); err != nil {
		WarnError("telemetry disabled: %v", err)
	}
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	telemetry.Shutdown(ctx)
}
