package config

import "github.com/hbf/platform-siliconlabsefm32/internal/registry"

// Config represents the efm32-platform.yaml configuration file.
type Config struct {
	Version int `yaml:"version"`

	// FrameworkDir is the installed framework-arduino-silabs package.
	FrameworkDir string `yaml:"framework_dir,omitempty"`

	// BoardsDir holds one manifest file per board.
	BoardsDir string `yaml:"boards_dir,omitempty"`

	// Host overrides the detected host, e.g. "windows" or "linux_x86_64".
	Host string `yaml:"host,omitempty"`

	// Lockfile is where 'packages --lock' writes the resolved packages.
	Lockfile string `yaml:"lockfile,omitempty"`

	Variables registry.Variables `yaml:"variables,omitempty"`
	Packages  []registry.Package `yaml:"packages,omitempty"`
}
