// Package efm32 provides the public Go library API for the Silicon Labs
// EFM32/EFR32 platform.
//
// It loads board manifests and an efm32-platform.yaml project config, and
// computes build configurations, debug sessions and package selections from
// them. Nothing is compiled, flashed or downloaded: results are data for an
// external build or debug driver.
//
// # Basic Usage
//
//	client, err := efm32.New(efm32.Options{
//	    ConfigPath: "efm32-platform.yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Compute build flags for a board
//	build, err := client.Build("xg24explorerkit", efm32.BuildOptions{})
//
//	// Pick a debug tool and GDB server arguments
//	debug, err := client.Debug("xg24explorerkit", efm32.DebugOptions{Speed: "4000"})
package efm32

import (
	"fmt"
	"path/filepath"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/config"
	"github.com/hbf/platform-siliconlabsefm32/internal/debugtool"
	"github.com/hbf/platform-siliconlabsefm32/internal/engine"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
)

// Default file names, relative to the project root.
const (
	DefaultConfigFile   = "efm32-platform.yaml"
	DefaultLockfileFile = "platform.lock"
)

// BuildOptions configures a build.
type BuildOptions struct {
	// Defines are extra preprocessor names, e.g. a stack marker.
	Defines []string
	// BuildFlags replaces the config's variables.build_flags when set.
	BuildFlags string
}

// DebugOptions configures a debug session. Empty fields fall back to the
// config's variables.debug_tool and variables.debug_speed.
type DebugOptions struct {
	Tool  string
	Speed string
}

// PackagesOptions configures package selection.
type PackagesOptions struct {
	// Variables override the config's variables field by field.
	Variables Variables
	// Lock writes the resulting registry to the lockfile.
	Lock bool
}

// Options configures a client.
type Options struct {
	// ProjectRoot is the directory containing efm32-platform.yaml.
	// If empty, defaults to the directory containing ConfigPath.
	ProjectRoot string

	// ConfigPath is the path to the config file. Default: "efm32-platform.yaml".
	ConfigPath string

	// LockfilePath is the package lockfile. Default: the config's lockfile,
	// else "platform.lock" in the project root.
	LockfilePath string

	// BoardsDir and FrameworkDir override the config values.
	BoardsDir    string
	FrameworkDir string

	// Host overrides the config's host and the running system,
	// e.g. "windows" or "darwin_arm64".
	Host string

	SystemConfigPath string
	UserConfigPath   string
	NoInherit        bool
}

// Client is the main entry point for the efm32 library.
type Client struct {
	projectRoot      string
	configPath       string
	lockfilePath     string
	boardsDir        string
	frameworkDir     string
	host             string
	systemConfigPath string
	userConfigPath   string
	noInherit        bool
}

// New creates a new efm32 Client.
func New(opts Options) (*Client, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultConfigFile
	}

	root := opts.ProjectRoot
	if root == "" {
		abs, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		root = filepath.Dir(abs)
	}

	if opts.Host != "" {
		if _, err := host.Parse(opts.Host); err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}
	}

	return &Client{
		projectRoot:      root,
		configPath:       opts.ConfigPath,
		lockfilePath:     opts.LockfilePath,
		boardsDir:        opts.BoardsDir,
		frameworkDir:     opts.FrameworkDir,
		host:             opts.Host,
		systemConfigPath: opts.SystemConfigPath,
		userConfigPath:   opts.UserConfigPath,
		noInherit:        opts.NoInherit,
	}, nil
}

func (c *Client) loadConfig() (*config.Config, error) {
	result, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath:      c.configPath,
		SystemConfigPath: c.systemConfigPath,
		UserConfigPath:   c.userConfigPath,
		NoInherit:        c.noInherit,
	})
	if err != nil {
		return nil, err
	}
	cfg := result.Config
	if c.boardsDir != "" {
		cfg.BoardsDir = c.boardsDir
	}
	if c.frameworkDir != "" {
		cfg.FrameworkDir = c.frameworkDir
	}
	if c.host != "" {
		cfg.Host = c.host
	}
	return cfg, nil
}

func resolveHost(cfg *config.Config) (host.Host, error) {
	if cfg.Host == "" {
		return host.Current(), nil
	}
	return host.Parse(cfg.Host)
}

func (c *Client) lockfile(cfg *config.Config) string {
	switch {
	case c.lockfilePath != "":
		return c.lockfilePath
	case cfg.Lockfile != "":
		return cfg.Lockfile
	default:
		return filepath.Join(c.projectRoot, DefaultLockfileFile)
	}
}

func loadCatalog(cfg *config.Config) (*board.Catalog, error) {
	if cfg.BoardsDir == "" {
		return nil, fmt.Errorf("no boards directory configured — set 'boards_dir' in %s", DefaultConfigFile)
	}
	return board.LoadDir(cfg.BoardsDir)
}

// load reads the config, the host it targets and the board catalog.
func (c *Client) load() (*config.Config, *board.Catalog, host.Host, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, host.Host{}, err
	}
	h, err := resolveHost(cfg)
	if err != nil {
		return nil, nil, host.Host{}, err
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, host.Host{}, err
	}
	return cfg, catalog, h, nil
}

// Boards lists every board with its debug tools filled in.
func (c *Client) Boards() ([]BoardSummary, error) {
	_, catalog, h, err := c.load()
	if err != nil {
		return nil, err
	}
	augmented, err := debugtool.AugmentAll(catalog, h)
	if err != nil {
		return nil, err
	}
	return engine.Boards(augmented), nil
}

// Board returns one board manifest with its debug tools filled in.
func (c *Client) Board(id string) (*Manifest, error) {
	_, catalog, h, err := c.load()
	if err != nil {
		return nil, err
	}
	m, err := catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return debugtool.AugmentDebugTools(m, h)
}

// Build computes the build configuration for a board.
func (c *Client) Build(id string, opts BuildOptions) (*BuildResult, error) {
	cfg, catalog, _, err := c.load()
	if err != nil {
		return nil, err
	}
	m, err := catalog.Get(id)
	if err != nil {
		return nil, err
	}

	flags := opts.BuildFlags
	if flags == "" {
		flags = cfg.Variables.BuildFlags
	}

	eng := &engine.BuildEngine{FrameworkDir: cfg.FrameworkDir}
	return eng.Build(m, engine.BuildOptions{Defines: opts.Defines, BuildFlags: flags})
}

// Debug configures a debug session for a board.
func (c *Client) Debug(id string, opts DebugOptions) (*DebugResult, error) {
	cfg, catalog, h, err := c.load()
	if err != nil {
		return nil, err
	}
	m, err := catalog.Get(id)
	if err != nil {
		return nil, err
	}

	if opts.Tool == "" {
		opts.Tool = cfg.Variables.DebugTool
	}
	if opts.Speed == "" {
		opts.Speed = cfg.Variables.DebugSpeed
	}

	eng := &engine.DebugEngine{Host: h}
	return eng.Debug(m, engine.DebugOptions{Tool: opts.Tool, Speed: opts.Speed})
}

// Packages selects the packages the project needs. The config's packages
// are used when declared, otherwise the platform defaults.
func (c *Client) Packages(opts PackagesOptions) (*PackagesResult, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	h, err := resolveHost(cfg)
	if err != nil {
		return nil, err
	}

	vars := config.MergeVariables(cfg.Variables, opts.Variables)

	var m *board.Manifest
	if vars.Board != "" {
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return nil, err
		}
		if m, err = catalog.Get(vars.Board); err != nil {
			return nil, err
		}
	}

	reg := registry.Default()
	if len(cfg.Packages) > 0 {
		reg = &registry.Registry{Version: 1, Packages: cfg.Packages}
	}

	eng := &engine.PackagesEngine{Host: h}
	result, err := eng.Configure(reg, vars, m)
	if err != nil {
		return nil, err
	}

	if opts.Lock {
		if err := registry.Save(c.lockfile(cfg), result.Registry); err != nil {
			return nil, fmt.Errorf("saving package lockfile: %w", err)
		}
	}
	return result, nil
}
