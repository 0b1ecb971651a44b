package engine

import (
	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/debugtool"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
)

// DebugEngine configures debug sessions for a host.
type DebugEngine struct {
	Host host.Host
}

// DebugOptions configures a debug session.
type DebugOptions struct {
	// Tool is the requested debug tool; empty selects the board default.
	Tool string
	// Speed is the adapter speed passed to the GDB server.
	Speed string
}

// Debug fills in the board's default debug tools, picks the tool to use
// and computes the GDB server arguments. m is not modified.
func (e *DebugEngine) Debug(m *board.Manifest, opts DebugOptions) (*DebugResult, error) {
	delta, err := debugtool.Resolver{Host: e.Host}.Augment(m)
	if err != nil {
		return nil, err
	}
	augmented := delta.Apply(m)

	tool, err := debugtool.DefaultTool(augmented, opts.Tool)
	if err != nil {
		return nil, BoardError{Board: m.ID, Err: err}
	}

	session := debugtool.Session{
		Tool:   tool,
		Speed:  opts.Speed,
		Server: augmented.Debug.Tools[tool].Server,
	}

	return &DebugResult{
		Board:       m.ID,
		Synthesized: delta.Tools,
		Session:     session,
		Arguments:   debugtool.ConfigureSession(session),
	}, nil
}
