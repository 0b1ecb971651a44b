package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/internal/framework"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
)

// FileName is the config file looked for at every level.
const FileName = "efm32-platform.yaml"

const (
	// EnvNoInheritVar disables the system and user layers when truthy.
	EnvNoInheritVar = "EFM32_PLATFORM_NO_INHERIT"
	// EnvCoreDir relocates the PlatformIO core directory, and with it the
	// installed packages.
	EnvCoreDir = "PLATFORMIO_CORE_DIR"
)

const (
	configDirName  = "efm32-platform"
	boardsDirName  = "boards"
	coreDirName    = ".platformio"
	packageDirName = "packages"
)

// ConfigLevel represents the precedence level of a configuration file.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo describes a discovered config file and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls how config paths are discovered. Empty system
// and user paths mean the host default; a nonexistent path skips the layer.
type DiscoverOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string
}

// DiscoverPaths returns the config layers from lowest precedence (system)
// to highest (project). When two levels resolve to the same file only the
// higher level is kept, so the project config is never dropped.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	candidates := []ConfigLayerInfo{
		{Level: LevelSystem, Path: orDefault(opts.SystemConfigPath, systemConfigPath)},
		{Level: LevelUser, Path: orDefault(opts.UserConfigPath, userConfigPath)},
		{Level: LevelProject, Path: opts.ProjectPath},
	}

	seen := make(map[string]bool)
	var rev []ConfigLayerInfo
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if c.Path == "" {
			continue
		}
		key, err := filepath.Abs(c.Path)
		if err != nil {
			key = c.Path
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		rev = append(rev, c)
	}

	layers := make([]ConfigLayerInfo, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		layers = append(layers, rev[i])
	}
	return layers
}

func orDefault(p string, def func() string) string {
	if p != "" {
		return p
	}
	return def()
}

func systemConfigPath() string {
	if host.Current().IsWindows() {
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, FileName)
	}
	return filepath.Join("/etc", configDirName, FileName)
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, FileName)
}

// PackagesDir returns where PlatformIO installs packages:
// $PLATFORMIO_CORE_DIR/packages, else ~/.platformio/packages.
func PackagesDir() string {
	core := os.Getenv(EnvCoreDir)
	if core == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		core = filepath.Join(home, coreDirName)
	}
	return filepath.Join(core, packageDirName)
}

// DefaultDirs are the locations tried for directories a config leaves unset.
type DefaultDirs struct {
	// ProjectDir holds the project config; its boards/ folder is the
	// default boards_dir.
	ProjectDir string
	// PackagesDir holds installed packages; framework-arduino-silabs in it
	// is the default framework_dir. Empty means PackagesDir().
	PackagesDir string
}

// ApplyDefaults fills an empty framework_dir and boards_dir with the
// installed Arduino core and the project's boards/ folder. A default is
// only used when the directory exists.
func ApplyDefaults(cfg *Config, d DefaultDirs) {
	if cfg.FrameworkDir == "" {
		pkgs := d.PackagesDir
		if pkgs == "" {
			pkgs = PackagesDir()
		}
		if pkgs != "" {
			if fw := filepath.Join(pkgs, framework.PackageName); isDir(fw) {
				cfg.FrameworkDir = fw
			}
		}
	}
	if cfg.BoardsDir == "" && d.ProjectDir != "" {
		if b := filepath.Join(d.ProjectDir, boardsDirName); isDir(b) {
			cfg.BoardsDir = b
		}
	}
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// EnvNoInherit reports whether EFM32_PLATFORM_NO_INHERIT is "1" or "true".
func EnvNoInherit() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvNoInheritVar)))
	return v == "1" || v == "true"
}
