// Package config loads the optional rewind.toml that tunes the
// replayer. Discovery walks up from the working directory the way the
// toolchain finds a project manifest; absence of the file is not an
// error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up from the working directory upward.
const ManifestName = "rewind.toml"

// Config is the replayer configuration.
type Config struct {
	Replay ReplayConfig `toml:"replay"`
}

// ReplayConfig tunes the TUI layout. Zero values mean "use default".
type ReplayConfig struct {
	VarsPaneWidth int `toml:"vars_pane_width"`
	PageStep      int `toml:"page_step"`
	ScrollMargin  int `toml:"scroll_margin"`
}

// findManifest walks from startDir to the filesystem root looking for
// the manifest.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load returns the configuration discovered from startDir, the zero
// value when no manifest exists, and an error for a manifest that
// exists but does not parse, or when startDir cannot be resolved or a
// candidate path cannot be stat'ed.
func Load(startDir string) (Config, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return Config{}, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
