package registry

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a resolved package lockfile.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading package lockfile %s: %w", path, err)
	}

	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing package lockfile %s: %w", path, err)
	}
	if r.Version != 1 {
		return nil, &ValidationError{Errors: []string{
			fmt.Sprintf("unsupported version %d — only version 1 is supported", r.Version),
		}}
	}

	if errs := Validate(r.Packages); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &r, nil
}

// Save writes a package lockfile atomically using a temp file and rename.
func Save(path string, r *Registry) error {
	if r.Version == 0 {
		r = r.Clone()
		r.Version = 1
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling package lockfile: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp package lockfile %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp package lockfile to %s: %w", path, err)
	}
	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("package validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks package declarations for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(pkgs []Package) []string {
	var errs []string

	names := make(map[string]bool)
	for i, p := range pkgs {
		prefix := fmt.Sprintf("package[%d]", i)
		if p.Name != "" {
			prefix = fmt.Sprintf("package '%s'", p.Name)
		}

		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if names[p.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate package name '%s'", prefix, p.Name))
		} else {
			names[p.Name] = true
		}

		if err := ValidateVersion(p.Version); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
		}
	}

	return errs
}

// IsSourceSpec reports whether a version string names a package source
// (a git or archive URL) instead of a version requirement.
func IsSourceSpec(v string) bool {
	return strings.Contains(v, "://") || strings.Contains(v, ".git")
}

// ValidateVersion checks that v is a source spec or a semver constraint
// such as "~1.90201.0" or ">=2.0.0 <3.0.0".
func ValidateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("'version' is required")
	}
	if IsSourceSpec(v) {
		return nil
	}
	if _, err := semver.NewConstraint(v); err != nil {
		return fmt.Errorf("invalid version requirement '%s': %w", v, err)
	}
	return nil
}
