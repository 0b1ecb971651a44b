package host

import (
	"fmt"
	"runtime"
	"strings"
)

// Host identifies the operating system and architecture the tools run on.
type Host struct {
	OS   string
	Arch string
}

// Executable names a tool binary whose file name differs on Windows.
type Executable struct {
	Default string
	Windows string
}

// Current returns the host of the running process.
func Current() Host {
	return Host{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// knownOS lists the operating systems a host string may name.
var knownOS = map[string]bool{
	"windows": true,
	"linux":   true,
	"darwin":  true,
	"freebsd": true,
}

// archAliases maps systype architecture spellings to GOARCH values.
var archAliases = map[string]string{
	"x86_64":  "amd64",
	"amd64":   "amd64",
	"aarch64": "arm64",
	"arm64":   "arm64",
	"x86":     "386",
	"i686":    "386",
	"386":     "386",
	"armv7l":  "arm",
	"armv6l":  "arm",
	"arm":     "arm",
}

// Parse reads a host identifier. It accepts a bare OS name ("windows") or a
// systype ("linux_x86_64", "windows_amd64", "darwin_arm64").
func Parse(s string) (Host, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Host{}, fmt.Errorf("empty host identifier")
	}

	osName, arch, _ := strings.Cut(s, "_")
	if !knownOS[osName] {
		return Host{}, fmt.Errorf("unknown host OS '%s' — must be one of: windows, linux, darwin, freebsd", osName)
	}

	h := Host{OS: osName}
	if arch != "" {
		goarch, ok := archAliases[arch]
		if !ok {
			return Host{}, fmt.Errorf("unknown host architecture '%s' in '%s'", arch, s)
		}
		h.Arch = goarch
	}
	return h, nil
}

// IsWindows reports whether the host runs Windows.
func (h Host) IsWindows() bool {
	return h.OS == "windows"
}

// Systype returns the platform-wide host identifier used to key per-host
// package sources, e.g. "linux_x86_64" or "windows_amd64".
// An unknown architecture yields just the OS name.
func (h Host) Systype() string {
	var arch string
	switch h.Arch {
	case "":
		return h.OS
	case "amd64":
		arch = "x86_64"
		if h.IsWindows() {
			arch = "amd64"
		}
	case "386":
		arch = "x86"
	case "arm64":
		arch = "arm64"
		if h.OS == "linux" {
			arch = "aarch64"
		}
	case "arm":
		arch = "armv7l"
	default:
		arch = h.Arch
	}
	return h.OS + "_" + arch
}

// Executable returns the file name of e on this host.
func (h Host) Executable(e Executable) string {
	if h.IsWindows() && e.Windows != "" {
		return e.Windows
	}
	return e.Default
}

func (h Host) String() string {
	return h.Systype()
}
