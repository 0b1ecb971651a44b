package debugtool

import (
	"fmt"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
)

// Debug probe kinds with built-in defaults, in resolution order.
const (
	BlackMagic = "blackmagic"
	JLink      = "jlink"
	CMSISDAP   = "cmsis-dap"
)

// Packages providing GDB servers.
const (
	OpenOCDPackage = "tool-openocd-silabs"
	JLinkPackage   = "tool-jlink"
)

// JLinkPort is the GDB port the J-Link server listens on.
const JLinkPort = "2331"

// Black Magic Probe USB vendor and product IDs.
const (
	blackMagicVID = "0x1d50"
	blackMagicPID = "0x6018"
)

var (
	openOCDExecutable = host.Executable{Default: "bin/openocd"}
	jlinkExecutable   = host.Executable{Default: "JLinkGDBServer", Windows: "JLinkGDBServerCL.exe"}
)

// template synthesizes a tool entry for one probe kind.
type template func(m *board.Manifest, h host.Host) (board.ToolEntry, error)

// templates are applied in this order.
var templates = []struct {
	kind string
	build template
}{
	{BlackMagic, blackMagicEntry},
	{JLink, jlinkEntry},
	{CMSISDAP, cmsisDAPEntry},
}

// Kinds returns the probe kinds with built-in defaults, in resolution order.
func Kinds() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.kind
	}
	return out
}

func blackMagicEntry(_ *board.Manifest, _ host.Host) (board.ToolEntry, error) {
	return board.ToolEntry{
		HWIDs:            [][]string{{blackMagicVID, blackMagicPID}},
		RequireDebugPort: true,
	}, nil
}

func cmsisDAPEntry(m *board.Manifest, h host.Host) (board.ToolEntry, error) {
	target := m.Debug.OpenOCDTarget
	if target == "" {
		return board.ToolEntry{}, &board.MissingFieldError{
			Board:  m.ID,
			Field:  "debug.openocd_target",
			Reason: "missing target configuration for " + CMSISDAP,
		}
	}
	return board.ToolEntry{
		Server: &board.Server{
			Package:    OpenOCDPackage,
			Executable: h.Executable(openOCDExecutable),
			Arguments: []string{
				"-s", "$PACKAGE_DIR/share/openocd/scripts",
				"-f", fmt.Sprintf("interface/%s.cfg", CMSISDAP),
				"-f", "target/" + target,
			},
		},
	}, nil
}

func jlinkEntry(m *board.Manifest, h host.Host) (board.ToolEntry, error) {
	device := m.Debug.JLinkDevice
	if device == "" {
		return board.ToolEntry{}, &board.MissingFieldError{
			Board:  m.ID,
			Field:  "debug.jlink_device",
			Reason: "missing J-Link device ID",
		}
	}
	return board.ToolEntry{
		Server: &board.Server{
			Package:    JLinkPackage,
			Executable: h.Executable(jlinkExecutable),
			Arguments: []string{
				"-singlerun",
				"-if", "SWD",
				"-select", "USB",
				"-device", device,
				"-port", JLinkPort,
			},
		},
		Onboard: m.IsOnboardTool(JLink),
	}, nil
}

// Synthesized is a tool entry created for a board that did not define it.
type Synthesized struct {
	Name  string          `yaml:"name"`
	Entry board.ToolEntry `yaml:"entry"`
}

// Delta lists the tool entries to add to one board, in resolution order.
type Delta struct {
	Board string        `yaml:"board"`
	Tools []Synthesized `yaml:"tools,omitempty"`
}

// Empty reports whether the delta adds nothing.
func (d Delta) Empty() bool {
	return len(d.Tools) == 0
}

// Apply returns a copy of m with the delta's entries added. Entries the
// manifest already defines are left as they are.
func (d Delta) Apply(m *board.Manifest) *board.Manifest {
	out := m.Clone()
	if out.Debug.Tools == nil {
		out.Debug.Tools = make(map[string]board.ToolEntry, len(d.Tools))
	}
	for _, s := range d.Tools {
		if _, exists := out.Debug.Tools[s.Name]; exists {
			continue
		}
		out.Debug.Tools[s.Name] = s.Entry.Clone()
	}
	return out
}

// Resolver fills in default debug tool entries for a host.
type Resolver struct {
	Host host.Host
}

// Augment computes the entries to add for every built-in probe kind the
// board lists in upload.protocols but does not define in debug.tools.
// A board declaring cmsis-dap without debug.openocd_target, or jlink
// without debug.jlink_device, is malformed and yields a MissingFieldError.
func (r Resolver) Augment(m *board.Manifest) (Delta, error) {
	d := Delta{Board: m.ID}
	for _, t := range templates {
		if !m.HasUploadProtocol(t.kind) {
			continue
		}
		if _, exists := m.Debug.Tools[t.kind]; exists {
			continue
		}
		entry, err := t.build(m, r.Host)
		if err != nil {
			return Delta{}, err
		}
		d.Tools = append(d.Tools, Synthesized{Name: t.kind, Entry: entry})
	}
	return d, nil
}

// AugmentDebugTools returns a copy of m with default tool entries added.
func AugmentDebugTools(m *board.Manifest, h host.Host) (*board.Manifest, error) {
	d, err := Resolver{Host: h}.Augment(m)
	if err != nil {
		return nil, err
	}
	return d.Apply(m), nil
}

// AugmentAll augments every board in a catalog and returns a new catalog.
// It fails on the first malformed board, in board ID order.
func AugmentAll(c *board.Catalog, h host.Host) (*board.Catalog, error) {
	ids := c.IDs()
	out := make([]*board.Manifest, 0, len(ids))
	for _, id := range ids {
		m, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		augmented, err := AugmentDebugTools(m, h)
		if err != nil {
			return nil, err
		}
		out = append(out, augmented)
	}
	return board.NewCatalog(out...), nil
}
