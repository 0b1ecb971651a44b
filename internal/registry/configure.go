package registry

import (
	"slices"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
)

// Well-known package names.
const (
	Toolchain = "toolchain-gccarmnoneeabi"
	OpenOCD   = "tool-openocd-silabs"
	JLink     = "tool-jlink"
	CMake     = "tool-cmake"
	DTC       = "tool-dtc"
	Ninja     = "tool-ninja"
	GPerf     = "tool-gperf"
)

// mbedToolchain is the toolchain release mbed builds are pinned to.
const mbedToolchain = "~1.90201.0"

// openOCDSources pins tool-openocd-silabs to a per-host build. Hosts not
// listed keep the registry's version.
var openOCDSources = map[string]string{
	"windows_amd64": "https://github.com/maxgerhardt/tool-openocd-silabs.git#windows_x64",
	"linux_x86_64":  "https://github.com/maxgerhardt/tool-openocd-silabs.git#linux_x64",
	"darwin_x86_64": "https://github.com/maxgerhardt/tool-openocd-silabs.git#linux_x64#mac",
	"darwin_arm64":  "https://github.com/maxgerhardt/tool-openocd-silabs.git#linux_x64#mac",
}

// zephyrTools become mandatory when building with Zephyr.
var zephyrTools = []string{CMake, DTC, Ninja}

// Patch lists the changes to apply to a registry. Changes are keyed by
// package name; names not in the registry are ignored on Apply.
type Patch struct {
	Versions map[string]string `yaml:"versions,omitempty"`
	Optional map[string]bool   `yaml:"optional,omitempty"`
	Remove   []string          `yaml:"remove,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p.Versions) == 0 && len(p.Optional) == 0 && len(p.Remove) == 0
}

func (p *Patch) pin(name, version string) {
	if p.Versions == nil {
		p.Versions = make(map[string]string)
	}
	p.Versions[name] = version
}

func (p *Patch) require(name string) {
	if p.Optional == nil {
		p.Optional = make(map[string]bool)
	}
	p.Optional[name] = false
}

// Apply returns a new registry with the patch applied. r is not modified.
func (p Patch) Apply(r *Registry) *Registry {
	removed := make(map[string]bool, len(p.Remove))
	for _, name := range p.Remove {
		removed[name] = true
	}

	out := &Registry{Version: r.Version}
	for _, pkg := range r.Packages {
		if removed[pkg.Name] {
			continue
		}
		if v, ok := p.Versions[pkg.Name]; ok {
			pkg.Version = v
		}
		if opt, ok := p.Optional[pkg.Name]; ok {
			pkg.Optional = opt
		}
		out.Packages = append(out.Packages, pkg)
	}
	return out
}

// Configure works out the package changes for a project. m may be nil when
// no board is selected.
func Configure(r *Registry, vars Variables, m *board.Manifest, h host.Host) Patch {
	var p Patch

	if vars.HasFramework("mbed") && r.Has(Toolchain) {
		p.pin(Toolchain, mbedToolchain)
	}

	if vars.HasFramework("zephyr") {
		for _, name := range zephyrTools {
			if r.Has(name) {
				p.require(name)
			}
		}
		if !h.IsWindows() && r.Has(GPerf) {
			p.require(GPerf)
		}
	}

	if r.Has(OpenOCD) {
		if src, ok := openOCDSources[h.Systype()]; ok {
			p.pin(OpenOCD, src)
		}
	}

	if r.Has(JLink) && !wantsJLink(vars, m) {
		p.Remove = append(p.Remove, JLink)
	}

	return p
}

// wantsJLink reports whether any project or board option asks for J-Link.
// Protocol and tool names match by substring; the board's default tool
// list matches by exact name.
func wantsJLink(vars Variables, m *board.Manifest) bool {
	conds := []string{vars.UploadProtocol, vars.DebugTool}
	if m != nil {
		if slices.Contains(m.Debug.DefaultTools, "jlink") {
			return true
		}
		conds = append(conds, m.Upload.Protocol)
	}
	for _, c := range conds {
		if strings.Contains(c, "jlink") {
			return true
		}
	}
	return false
}
