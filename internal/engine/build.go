package engine

import (
	"fmt"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/framework"
)

// BuildEngine plans Arduino builds against an installed framework.
type BuildEngine struct {
	FrameworkDir string
	Stat         framework.StatFunc
}

// BuildOptions configures a build.
type BuildOptions struct {
	Defines    []string
	BuildFlags string
}

// Build computes the build plan for a board and applies it to a fresh
// environment. A missing framework directory fails with
// framework.ErrFrameworkNotFound.
func (e *BuildEngine) Build(m *board.Manifest, opts BuildOptions) (*BuildResult, error) {
	fw, err := framework.NewArduino(e.FrameworkDir, e.Stat)
	if err != nil {
		return nil, err
	}

	plan, err := fw.Plan(m, framework.Options{Defines: opts.Defines, BuildFlags: opts.BuildFlags})
	if err != nil {
		return nil, BoardError{Board: m.ID, Err: err}
	}

	env, err := plan.Env()
	if err != nil {
		return nil, fmt.Errorf("applying build plan for %s: %w", m.ID, err)
	}

	return &BuildResult{Plan: plan, Env: env.Map()}, nil
}
