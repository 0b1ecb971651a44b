package efm32

import (
	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/engine"
	"github.com/hbf/platform-siliconlabsefm32/internal/framework"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
)

// Type aliases re-export internal types as the public API.
// Users import "github.com/hbf/platform-siliconlabsefm32/pkg/efm32" and use
// efm32.BuildResult, efm32.DebugResult, etc.

type Manifest = board.Manifest
type MissingFieldError = board.MissingFieldError
type BoardError = engine.BoardError
type BoardSummary = engine.BoardSummary
type BuildResult = engine.BuildResult
type DebugResult = engine.DebugResult
type PackagesResult = engine.PackagesResult
type Variables = registry.Variables

var (
	// ErrMissingField is wrapped by every MissingFieldError.
	ErrMissingField = board.ErrMissingField
	// ErrFrameworkNotFound is returned when the Arduino framework is not installed.
	ErrFrameworkNotFound = framework.ErrFrameworkNotFound
)
