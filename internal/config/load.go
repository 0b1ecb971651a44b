package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
	"gopkg.in/yaml.v3"
)

// knownFrameworks are the frameworks the platform can build with.
var knownFrameworks = map[string]bool{
	"arduino": true,
	"mbed":    true,
	"zephyr":  true,
}

// Parse reads a config file without validating it. Relative directories
// are resolved against the directory holding the file.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.FrameworkDir = resolveDir(base, cfg.FrameworkDir)
	cfg.BoardsDir = resolveDir(base, cfg.BoardsDir)
	cfg.Lockfile = resolveDir(base, cfg.Lockfile)
	return &cfg, nil
}

func resolveDir(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Load reads and validates an efm32-platform.yaml configuration file.
func Load(path string) (*Config, error) {
	cfg, err := Parse(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if cfg.Host != "" {
		if _, err := host.Parse(cfg.Host); err != nil {
			errs = append(errs, fmt.Sprintf("host: %v", err))
		}
	}

	for _, f := range cfg.Variables.Frameworks {
		if !knownFrameworks[f] {
			errs = append(errs, fmt.Sprintf("variables: unknown framework '%s' — must be one of: arduino, mbed, zephyr", f))
		}
	}

	errs = append(errs, registry.Validate(cfg.Packages)...)

	return errs
}

// HierarchicalOptions controls hierarchical config loading.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit loads only the project config.
	NoInherit bool

	// PackagesDir overrides where the default framework_dir is looked up.
	PackagesDir string
}

// HierarchicalResult is the merged config plus what each layer contributed.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical loads the system, user and project configs in order of
// increasing precedence, merges them, fills unset directories from their
// defaults and validates the result. Missing system and user configs are
// skipped; the project config is required.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	var layers []ConfigLayerInfo
	if opts.NoInherit || EnvNoInherit() {
		layers = []ConfigLayerInfo{{Path: opts.ProjectPath, Level: LevelProject}}
	} else {
		layers = DiscoverPaths(DiscoverOptions{
			ProjectPath:      opts.ProjectPath,
			SystemConfigPath: opts.SystemConfigPath,
			UserConfigPath:   opts.UserConfigPath,
		})
	}

	var configs []*Config
	for i := range layers {
		l := &layers[i]
		cfg, err := Parse(l.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && l.Level != LevelProject {
				continue
			}
			l.Err = err
			return nil, fmt.Errorf("%s config: %w", l.Level, err)
		}
		l.Loaded = true
		configs = append(configs, cfg)
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, err
	}
	ApplyDefaults(merged, DefaultDirs{
		ProjectDir:  filepath.Dir(opts.ProjectPath),
		PackagesDir: opts.PackagesDir,
	})
	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &HierarchicalResult{Config: merged, Layers: layers}, nil
}
