package engine

import (
	"github.com/hbf/platform-siliconlabsefm32/internal/debugtool"
	"github.com/hbf/platform-siliconlabsefm32/internal/framework"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
)

// BoardError represents an error associated with a specific board.
type BoardError struct {
	Board string
	Err   error
}

func (e BoardError) Error() string {
	return e.Board + ": " + e.Err.Error()
}

func (e BoardError) Unwrap() error {
	return e.Err
}

// BuildResult holds the outcome of a build configuration.
type BuildResult struct {
	Plan *framework.Plan     `yaml:"plan"`
	Env  map[string][]string `yaml:"env"`
}

// DebugResult holds the outcome of a debug session configuration.
type DebugResult struct {
	Board       string                  `yaml:"board"`
	Synthesized []debugtool.Synthesized `yaml:"synthesized,omitempty"`
	Session     debugtool.Session       `yaml:"session"`
	Arguments   []string                `yaml:"arguments,omitempty"`
}

// PackagesResult holds the outcome of package configuration.
type PackagesResult struct {
	Patch    registry.Patch     `yaml:"patch"`
	Registry *registry.Registry `yaml:"registry"`
}

// BoardSummary is one row of the board listing.
type BoardSummary struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	MCU        string   `yaml:"mcu"`
	Frameworks []string `yaml:"frameworks,omitempty"`
	Protocols  []string `yaml:"protocols,omitempty"`
	DebugTools []string `yaml:"debug_tools,omitempty"`
	Flash      int64    `yaml:"flash,omitempty"`
	RAM        int64    `yaml:"ram,omitempty"`
}
