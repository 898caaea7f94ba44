package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/streamtable/internal/logging"
)

// EnvProjectDir points at a project-local .streamtable directory.
const EnvProjectDir = "STREAMTABLE_PROJECT_DIR"

// ErrNoProject is returned by FindProjectDir when no .streamtable directory exists
// in startDir or any of its parents.
var ErrNoProject = errors.New("no .streamtable directory found")

// ResolveProjectDir determines the project-local .streamtable directory path.
// It checks (in order):
//  1. flagValue
//  2. STREAMTABLE_PROJECT_DIR env var
//  3. a walk up from startDir
//
// Returns an absolute path or "" if no project directory applies.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := FindProjectDir(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return dir
}

// FindProjectDir walks up from startDir looking for a .streamtable directory.
func FindProjectDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, dirName)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && info.IsDir():
			return candidate, nil
		case statErr != nil && !os.IsNotExist(statErr):
			return "", statErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// LoadWithProjectDir loads the global config at globalPath, then merges the
// project-local config.yaml from projectDir on top. A broken project overlay is
// logged and ignored.
func LoadWithProjectDir(ctx context.Context, globalPath, projectDir string) (*Config, error) {
	cfg, err := Load(globalPath)
	if err != nil {
		return nil, err
	}

	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		// No project config; keep global settings.
		return cfg, nil
	}

	merged := *cfg
	if mergeErr := ShallowMergeYAML(&merged, overlayPath); mergeErr != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(mergeErr).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return cfg, nil
	}

	return &merged, nil
}

// toAbsProjectDir converts dir to an absolute path and appends ".streamtable"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == dirName {
		return abs
	}

	return filepath.Join(abs, dirName)
}
