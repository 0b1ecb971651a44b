package debugtool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
)

// DefaultTool picks the debug tool to use for a board whose tools have
// already been augmented. A requested tool must be configured. Otherwise
// the first configured entry of debug.default_tools wins, then a tool
// marked default, then the first onboard tool, then the first built-in
// kind, then the first name sorted.
func DefaultTool(m *board.Manifest, requested string) (string, error) {
	tools := m.Debug.Tools
	if requested != "" {
		if _, ok := tools[requested]; !ok {
			return "", fmt.Errorf("board '%s': debug tool '%s' is not configured — available: %s",
				m.ID, requested, strings.Join(toolNames(tools), ", "))
		}
		return requested, nil
	}
	if len(tools) == 0 {
		return "", fmt.Errorf("board '%s': no debug tools configured", m.ID)
	}

	for _, name := range m.Debug.DefaultTools {
		if _, ok := tools[name]; ok {
			return name, nil
		}
	}

	names := toolNames(tools)
	for _, name := range names {
		if tools[name].Default {
			return name, nil
		}
	}
	for _, kind := range Kinds() {
		if e, ok := tools[kind]; ok && e.Onboard {
			return kind, nil
		}
	}
	for _, name := range names {
		if tools[name].Onboard {
			return name, nil
		}
	}
	for _, kind := range Kinds() {
		if _, ok := tools[kind]; ok {
			return kind, nil
		}
	}
	return names[0], nil
}

// toolNames returns the configured tool names, sorted.
func toolNames(tools map[string]board.ToolEntry) []string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Session is a resolved debug session about to be started.
type Session struct {
	Tool   string        `yaml:"tool"`
	Speed  string        `yaml:"speed,omitempty"`
	Server *board.Server `yaml:"server,omitempty"`
}

// speedArgs maps a server family, matched as a case-insensitive substring
// of the executable name, to the arguments that set the adapter speed.
var speedArgs = []struct {
	family string
	args   func(speed string) []string
}{
	{"openocd", func(speed string) []string { return []string{"-c", "adapter speed " + speed} }},
	{"jlink", func(speed string) []string { return []string{"-speed", speed} }},
}

// ConfigureSession returns the server arguments for s with the requested
// adapter speed added. Without a speed, a server, or a known server family
// the arguments are returned unchanged. s is not modified.
func ConfigureSession(s Session) []string {
	if s.Server == nil {
		return nil
	}
	args := make([]string, len(s.Server.Arguments))
	copy(args, s.Server.Arguments)
	if s.Speed == "" {
		return args
	}

	exe := strings.ToLower(s.Server.Executable)
	for _, sa := range speedArgs {
		if strings.Contains(exe, sa.family) {
			return append(args, sa.args(s.Speed)...)
		}
	}
	return args
}
