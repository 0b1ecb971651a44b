package registry

// Package is one toolchain, framework or tool package the platform can
// install.
type Package struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"` // "toolchain", "framework", "uploader", "debugger"
	Version  string `yaml:"version"`
	Optional bool   `yaml:"optional,omitempty"`
	Owner    string `yaml:"owner,omitempty"`
}

// Registry is an ordered set of packages keyed by name.
type Registry struct {
	Packages []Package `yaml:"packages"`
	Version  int       `yaml:"version"`
}

// Get returns the package with the given name.
func (r *Registry) Get(name string) (Package, bool) {
	for _, p := range r.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// Has reports whether a package is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Clone returns a copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{Version: r.Version}
	if r.Packages != nil {
		c.Packages = make([]Package, len(r.Packages))
		copy(c.Packages, r.Packages)
	}
	return c
}

// Variables are the project options that influence package selection.
type Variables struct {
	Board          string   `yaml:"board,omitempty"`
	Frameworks     []string `yaml:"frameworks,omitempty"`
	UploadProtocol string   `yaml:"upload_protocol,omitempty"`
	DebugTool      string   `yaml:"debug_tool,omitempty"`
	BuildFlags     string   `yaml:"build_flags,omitempty"`
	DebugSpeed     string   `yaml:"debug_speed,omitempty"`
}

// HasFramework reports whether name is among the selected frameworks.
func (v Variables) HasFramework(name string) bool {
	for _, f := range v.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}
