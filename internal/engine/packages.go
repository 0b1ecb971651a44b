package engine

import (
	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
)

// PackagesEngine selects the packages a project needs on a host.
type PackagesEngine struct {
	Host host.Host
}

// Configure computes the package changes for a project and applies them to
// a copy of reg. m may be nil when no board is selected.
func (e *PackagesEngine) Configure(reg *registry.Registry, vars registry.Variables, m *board.Manifest) (*PackagesResult, error) {
	patch := registry.Configure(reg, vars, m, e.Host)
	out := patch.Apply(reg)
	if errs := registry.Validate(out.Packages); len(errs) > 0 {
		return nil, &registry.ValidationError{Errors: errs}
	}
	return &PackagesResult{Patch: patch, Registry: out}, nil
}
