package config

import (
	"fmt"

	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
)

// Merge combines two configs where overlay takes precedence over base.
// This implements the hierarchical merge semantics:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - framework_dir, boards_dir, host, lockfile: overlay wins when set
//   - variables: field by field, overlay wins when set
//   - packages: merged by name, an overlay entry replaces the base entry entirely
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.FrameworkDir = pick(base.FrameworkDir, overlay.FrameworkDir)
	result.BoardsDir = pick(base.BoardsDir, overlay.BoardsDir)
	result.Host = pick(base.Host, overlay.Host)
	result.Lockfile = pick(base.Lockfile, overlay.Lockfile)

	result.Variables = MergeVariables(base.Variables, overlay.Variables)
	result.Packages = mergeNamedPackages(base.Packages, overlay.Packages)

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

func pick(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// MergeVariables combines project variables field by field, overlay winning
// where set.
func MergeVariables(base, overlay registry.Variables) registry.Variables {
	out := registry.Variables{
		Board:          pick(base.Board, overlay.Board),
		UploadProtocol: pick(base.UploadProtocol, overlay.UploadProtocol),
		DebugTool:      pick(base.DebugTool, overlay.DebugTool),
		BuildFlags:     pick(base.BuildFlags, overlay.BuildFlags),
		DebugSpeed:     pick(base.DebugSpeed, overlay.DebugSpeed),
		Frameworks:     base.Frameworks,
	}
	if len(overlay.Frameworks) > 0 {
		out.Frameworks = overlay.Frameworks
	}
	return out
}

func mergeNamedPackages(base, overlay []registry.Package) []registry.Package {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	overlayNames := make(map[string]bool, len(overlay))
	for _, p := range overlay {
		overlayNames[p.Name] = true
	}

	var result []registry.Package
	for _, p := range base {
		if !overlayNames[p.Name] {
			result = append(result, p)
		}
	}

	result = append(result, overlay...)

	return result
}
