// Package framework turns a board manifest into the build plan for the
// Silicon Labs Arduino core: which libraries to compile, which stack to
// link, and the ordered flag changes handed to the build engine.
package framework

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/buildenv"
	"github.com/hbf/platform-siliconlabsefm32/internal/stack"
)

// PackageName is the package that provides the Arduino core.
const PackageName = "framework-arduino-silabs"

// Library build names, as they appear under $BUILD_DIR.
const (
	VariantLibrary = "FrameworkArduinoVariant"
	CoreLibrary    = "FrameworkArduino"
)

// ErrFrameworkNotFound is returned when the framework directory is missing.
var ErrFrameworkNotFound = errors.New("framework directory not found")

// StatFunc reports file information; os.Stat in production.
type StatFunc func(name string) (fs.FileInfo, error)

// Library is a library compiled from sources before linking.
type Library struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// Options are per-build inputs beyond the board manifest.
type Options struct {
	// Defines are extra preprocessor names active for this build, e.g. from
	// project build flags. They take part in stack selection.
	Defines []string
	// BuildFlags are raw project flags appended after the board's flags.
	BuildFlags string
}

// Plan is the full build configuration for one board.
type Plan struct {
	Board       string          `yaml:"board"`
	Framework   string          `yaml:"framework"`
	VariantsDir string          `yaml:"variants_dir"`
	Stack       stack.Selection `yaml:"stack"`
	Libraries   []Library       `yaml:"libraries"`
	Ops         []buildenv.Op   `yaml:"ops"`
}

// Arduino plans builds against an installed framework-arduino-silabs.
type Arduino struct {
	Dir  string
	Stat StatFunc
}

// NewArduino checks that dir exists and returns a planner for it.
func NewArduino(dir string, stat StatFunc) (*Arduino, error) {
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s (is %s installed?)", ErrFrameworkNotFound, dir, PackageName)
	}
	return &Arduino{Dir: dir, Stat: stat}, nil
}

// VariantsDir returns the board's variants directory, defaulting to the
// framework's own variants folder.
func (a *Arduino) VariantsDir(m *board.Manifest) string {
	if m.Build.VariantsDir != "" {
		return m.Build.VariantsDir
	}
	return filepath.Join(a.Dir, "variants")
}

// Plan builds the configuration for a board. Board extra flags are applied
// first, then project build flags, then the stack, then the framework
// libraries are prepended to LIBS.
func (a *Arduino) Plan(m *board.Manifest, opts Options) (*Plan, error) {
	if m.Build.Core == "" {
		return nil, &board.MissingFieldError{
			Board:  m.ID,
			Field:  "build.core",
			Reason: "no Arduino core for this board",
		}
	}

	boardOps, err := buildenv.ParseFlags(m.Build.ExtraFlags)
	if err != nil {
		return nil, fmt.Errorf("board '%s' build.extra_flags: %w", m.ID, err)
	}
	projectOps, err := buildenv.ParseFlags(opts.BuildFlags)
	if err != nil {
		return nil, fmt.Errorf("build flags: %w", err)
	}
	flagOps := append(boardOps, projectOps...)

	defines := buildenv.Defines(flagOps)
	for _, d := range opts.Defines {
		defines[d] = true
	}

	variantsDir := a.VariantsDir(m)
	sel := stack.Select(defines, m, variantsDir)

	p := &Plan{
		Board:       m.ID,
		Framework:   a.Dir,
		VariantsDir: variantsDir,
		Stack:       sel,
	}

	var pre []buildenv.Op
	if m.Build.Variant != "" {
		variantDir := filepath.Join(variantsDir, m.Build.Variant)
		pre = append(pre, buildenv.AppendOp(buildenv.CPPPATH, variantDir))
		p.Libraries = append(p.Libraries, Library{
			Name:   filepath.Join("$BUILD_DIR", VariantLibrary),
			Source: variantDir,
		})
	}
	p.Libraries = append(p.Libraries, Library{
		Name:   filepath.Join("$BUILD_DIR", CoreLibrary),
		Source: filepath.Join(a.Dir, "cores", m.Build.Core),
	})

	if len(opts.Defines) > 0 {
		pre = append(pre, buildenv.AppendOp(buildenv.CPPDEFINES, opts.Defines...))
	}

	libNames := make([]string, 0, len(p.Libraries))
	for _, lib := range p.Libraries {
		libNames = append(libNames, lib.Name)
	}

	p.Ops = append(pre, sel.Ops(flagOps)...)
	p.Ops = append(p.Ops, buildenv.PrependOp(buildenv.LIBS, libNames...))
	return p, nil
}

// Env applies the plan's ops to a fresh environment.
func (p *Plan) Env() (*buildenv.Env, error) {
	env := buildenv.New()
	if err := env.Apply(p.Ops); err != nil {
		return nil, err
	}
	return env, nil
}
