package board

// Manifest describes one supported board: how to build for it and how to
// upload to and debug it. A loaded manifest is treated as immutable; code
// that needs a changed manifest works on a Clone.
type Manifest struct {
	ID         string   `yaml:"-"`
	Name       string   `yaml:"name"`
	Vendor     string   `yaml:"vendor,omitempty"`
	URL        string   `yaml:"url,omitempty"`
	Frameworks []string `yaml:"frameworks,omitempty"`
	Build      Build    `yaml:"build"`
	Upload     Upload   `yaml:"upload,omitempty"`
	Debug      Debug    `yaml:"debug,omitempty"`
}

// Build holds the build.* options of a board.
type Build struct {
	Core        string `yaml:"core"`
	Variant     string `yaml:"variant,omitempty"`
	VariantsDir string `yaml:"variants_dir,omitempty"`
	ExtraFlags  string `yaml:"extra_flags,omitempty"`
	LDScript    string `yaml:"ldscript,omitempty"`
	MCU         string `yaml:"mcu"`
	FCPU        string `yaml:"f_cpu,omitempty"`
	CPU         string `yaml:"cpu,omitempty"`

	// StackLibs maps a stack name to a space-separated list of static
	// library file names shipped in that stack's variant directory.
	StackLibs map[string]string `yaml:"stack_libs,omitempty"`
}

// Upload holds the upload.* options of a board.
type Upload struct {
	Protocol       string   `yaml:"protocol,omitempty"`
	Protocols      []string `yaml:"protocols,omitempty"`
	MaximumSize    int      `yaml:"maximum_size,omitempty"`
	MaximumRAMSize int      `yaml:"maximum_ram_size,omitempty"`
}

// Debug holds the debug.* options of a board.
type Debug struct {
	Tools         map[string]ToolEntry `yaml:"tools,omitempty"`
	DefaultTools  []string             `yaml:"default_tools,omitempty"`
	OnboardTools  []string             `yaml:"onboard_tools,omitempty"`
	OpenOCDTarget string               `yaml:"openocd_target,omitempty"`
	JLinkDevice   string               `yaml:"jlink_device,omitempty"`
	SVDPath       string               `yaml:"svd_path,omitempty"`
}

// ToolEntry configures one debug probe for a board.
type ToolEntry struct {
	Server           *Server    `yaml:"server,omitempty"`
	HWIDs            [][]string `yaml:"hwids,omitempty"`
	RequireDebugPort bool       `yaml:"require_debug_port,omitempty"`
	Onboard          bool       `yaml:"onboard,omitempty"`
	Default          bool       `yaml:"default,omitempty"`
}

// Server describes the GDB server process started for a debug session.
type Server struct {
	Package    string   `yaml:"package,omitempty"`
	Executable string   `yaml:"executable"`
	Arguments  []string `yaml:"arguments,omitempty"`
}

// HasUploadProtocol reports whether name is listed in upload.protocols.
func (m *Manifest) HasUploadProtocol(name string) bool {
	return contains(m.Upload.Protocols, name)
}

// IsOnboardTool reports whether name is listed in debug.onboard_tools.
func (m *Manifest) IsOnboardTool(name string) bool {
	return contains(m.Debug.OnboardTools, name)
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	c := *m
	c.Frameworks = cloneStrings(m.Frameworks)
	c.Upload.Protocols = cloneStrings(m.Upload.Protocols)
	c.Debug.DefaultTools = cloneStrings(m.Debug.DefaultTools)
	c.Debug.OnboardTools = cloneStrings(m.Debug.OnboardTools)

	if m.Build.StackLibs != nil {
		c.Build.StackLibs = make(map[string]string, len(m.Build.StackLibs))
		for k, v := range m.Build.StackLibs {
			c.Build.StackLibs[k] = v
		}
	}

	if m.Debug.Tools != nil {
		c.Debug.Tools = make(map[string]ToolEntry, len(m.Debug.Tools))
		for name, entry := range m.Debug.Tools {
			c.Debug.Tools[name] = entry.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the entry.
func (e ToolEntry) Clone() ToolEntry {
	c := e
	if e.Server != nil {
		s := *e.Server
		s.Arguments = cloneStrings(e.Server.Arguments)
		c.Server = &s
	}
	if e.HWIDs != nil {
		c.HWIDs = make([][]string, len(e.HWIDs))
		for i, pair := range e.HWIDs {
			c.HWIDs[i] = cloneStrings(pair)
		}
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
