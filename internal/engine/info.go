package engine

import (
	"sort"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/config"
	"github.com/hbf/platform-siliconlabsefm32/internal/debugtool"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/hbf/platform-siliconlabsefm32/internal/stack"
)

// ConfigLayerStatus describes a config layer's load status for display.
type ConfigLayerStatus struct {
	Level  string // "system", "user", "project"
	Path   string
	Loaded bool
}

// InfoResult holds platform information for the info command.
type InfoResult struct {
	Version      string
	ConfigPath   string
	LockPath     string
	Host         string
	Systype      string
	FrameworkDir string
	BoardsDir    string
	Stacks       []StackInfo
	DebugKinds   []string
	ConfigChain  []ConfigLayerStatus
	Boards       int
}

// StackInfo describes a radio stack and the define that selects it.
type StackInfo struct {
	Kind    string
	Marker  string
	Default bool
}

// Info gathers platform information. cfg and catalog may be nil.
func Info(version string, cfg *config.Config, catalog *board.Catalog, h host.Host, configPath, lockPath string) (*InfoResult, error) {
	r := &InfoResult{
		Version:    version,
		ConfigPath: configPath,
		LockPath:   lockPath,
		Host:       h.String(),
		Systype:    h.Systype(),
		DebugKinds: debugtool.Kinds(),
	}

	if cfg != nil {
		r.FrameworkDir = cfg.FrameworkDir
		r.BoardsDir = cfg.BoardsDir
	}
	if catalog != nil {
		r.Boards = catalog.Len()
	}

	markers := make(map[stack.Kind]string)
	for _, mk := range stack.Markers() {
		markers[mk.Kind] = mk.Define
	}
	for _, k := range stack.Kinds() {
		r.Stacks = append(r.Stacks, StackInfo{
			Kind:    string(k),
			Marker:  markers[k],
			Default: k == stack.Default,
		})
	}

	return r, nil
}

// Boards summarizes every board in the catalog, in ID order.
func Boards(catalog *board.Catalog) []BoardSummary {
	var out []BoardSummary
	for _, id := range catalog.IDs() {
		m, err := catalog.Get(id)
		if err != nil {
			continue
		}
		tools := make([]string, 0, len(m.Debug.Tools))
		for name := range m.Debug.Tools {
			tools = append(tools, name)
		}
		sort.Strings(tools)
		out = append(out, BoardSummary{
			ID:         m.ID,
			Name:       m.Name,
			MCU:        m.Build.MCU,
			Frameworks: m.Frameworks,
			Protocols:  m.Upload.Protocols,
			DebugTools: tools,
			Flash:      int64(m.Upload.MaximumSize),
			RAM:        int64(m.Upload.MaximumRAMSize),
		})
	}
	return out
}
