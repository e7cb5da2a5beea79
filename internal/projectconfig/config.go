// Package projectconfig provides the ProjectConfig struct and loader for
// .adeval.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/dkfz-mic/adeval/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file name.
const FileName = ".adeval.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultResultsDir = "results/"

	DefaultWorkers = 1
	DefaultFormat  = "default"

	DefaultStorePath = ".adeval/history.db"
)

// PathsConfig holds output locations.
type PathsConfig struct {
	Results string `yaml:"results,omitempty"`
}

// EvaluationConfig holds default evaluation parameters.
type EvaluationConfig struct {
	Workers   int    `yaml:"workers,omitempty"`
	Interpret *bool  `yaml:"interpret,omitempty"`
	Format    string `yaml:"format,omitempty"`
}

// StoreConfig holds run history settings.
type StoreConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// ArchiveConfig holds result upload settings. An empty URL disables upload.
type ArchiveConfig struct {
	URL string `yaml:"url,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .adeval.yaml.
type ProjectConfig struct {
	Paths      PathsConfig      `yaml:"paths,omitempty"`
	Evaluation EvaluationConfig `yaml:"evaluation,omitempty"`
	Store      StoreConfig      `yaml:"store,omitempty"`
	Archive    ArchiveConfig    `yaml:"archive,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Results: DefaultResultsDir,
		},
		Evaluation: EvaluationConfig{
			Workers:   DefaultWorkers,
			Interpret: boolPtr(false),
			Format:    DefaultFormat,
		},
		Store: StoreConfig{
			Enabled: boolPtr(false),
			Path:    DefaultStorePath,
		},
	}
}

// Load finds .adeval.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if problems := validation.ValidateConfigBytes(data); len(problems) > 0 {
		return nil, &evalerr.ValidationError{Source: path, Problems: problems}
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Write stores cfg as .adeval.yaml in dir and returns the file path.
func Write(dir string, cfg *ProjectConfig) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if problems := validation.ValidateConfigBytes(data); len(problems) > 0 {
		return "", &evalerr.ValidationError{Source: FileName, Problems: problems}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// findConfigFile walks up from dir looking for .adeval.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}

	if src.Evaluation.Workers != 0 {
		dst.Evaluation.Workers = src.Evaluation.Workers
	}
	if src.Evaluation.Interpret != nil {
		dst.Evaluation.Interpret = src.Evaluation.Interpret
	}
	if src.Evaluation.Format != "" {
		dst.Evaluation.Format = src.Evaluation.Format
	}

	if src.Store.Enabled != nil {
		dst.Store.Enabled = src.Store.Enabled
	}
	if src.Store.Path != "" {
		dst.Store.Path = src.Store.Path
	}

	if src.Archive.URL != "" {
		dst.Archive.URL = src.Archive.URL
	}
}

func boolPtr(b bool) *bool {
	return &b
}
