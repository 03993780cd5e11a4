// Package config loads a project's wisp.toml, the manifest that tells the
// compiler where the package's entry module lives and how the pipeline
// should behave by default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the fully parsed, validated contents of a wisp.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig identifies the package and its entry point.
type PackageConfig struct {
	Name string `toml:"name"`
	Main string `toml:"main"`
}

// BuildConfig holds pipeline defaults a CLI invocation can still override.
type BuildConfig struct {
	Jobs             int  `toml:"jobs"`
	MaxDiagnostics   int  `toml:"max_diagnostics"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

const defaultMaxDiagnostics = 200

// Manifest pairs a loaded Config with the location it was read from, so
// relative paths in [package].main resolve against the manifest's directory
// rather than the process's working directory.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// FindManifest walks up from startDir looking for wisp.toml, the way a
// shell-completion-friendly CLI resolves its project root from any
// subdirectory the user happens to be in.
func FindManifest(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, "wisp.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads and validates the wisp.toml at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("package", "main") || strings.TrimSpace(cfg.Package.Main) == "" {
		return nil, fmt.Errorf("%s: missing [package].main", path)
	}
	if cfg.Build.MaxDiagnostics <= 0 {
		cfg.Build.MaxDiagnostics = defaultMaxDiagnostics
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// MainPath resolves [package].main against the manifest's directory.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Package.Main))
}
