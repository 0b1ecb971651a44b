package stack

import (
	"path/filepath"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/buildenv"
)

// Kind names a protocol stack variant. The value is also the name of the
// stack's directory under a board variant.
type Kind string

const (
	Matter     Kind = "matter"
	NoRadio    Kind = "noradio"
	BLEArduino Kind = "ble_arduino"
	BLESilabs  Kind = "ble_silabs"
)

// Default is used when no stack marker is defined.
const Default = Matter

// Fixed file names inside a stack directory.
const (
	CoreArchive  = "libgsdk_core.a"
	LinkerScript = "linkerfile.ld"
)

// Marker is a preprocessor definition that selects a stack.
type Marker struct {
	Define string
	Kind   Kind
}

// markers are checked in order; the first defined marker wins.
var markers = []Marker{
	{"ARDUINO_SILABS_STACK_NONE", NoRadio},
	{"ARDUINO_SILABS_STACK_BLE_ARDUINO", BLEArduino},
	{"ARDUINO_SILABS_STACK_BLE_SILABS", BLESilabs},
	{"ARDUINO_SILABS_STACK_MATTER", Matter},
}

// coreIncludes are present in every stack directory and come first.
var coreIncludes = []string{
	"config",
	"autogen",
	"gecko_sdk/platform/Device/SiliconLabs/CMSIS/Include",
	"gecko_sdk/platform/CMSIS/Core/Include",
	"gecko_sdk/platform/common/inc",
	"gecko_sdk/platform/emlib/inc",
	"gecko_sdk/platform/service/device_init/inc",
	"gecko_sdk/platform/service/sleeptimer/inc",
}

// Spec is the static description of one stack.
type Spec struct {
	// Includes are stack directories searched after coreIncludes, in order.
	Includes []string
	// RadioLibs reports whether the board's stack_libs entry is linked.
	RadioLibs bool
}

var table = map[Kind]Spec{
	Matter: {
		Includes: []string{
			"gecko_sdk/platform/radio/rail_lib/common",
			"gecko_sdk/platform/radio/rail_lib/protocol/ieee802154",
			"gecko_sdk/protocol/bluetooth/inc",
			"gecko_sdk/protocol/openthread/include",
			"matter/src/include",
			"matter/src/platform/silabs",
			"matter/third_party/nlassert/repo/include",
		},
		RadioLibs: true,
	},
	NoRadio: {},
	BLEArduino: {
		Includes: []string{
			"gecko_sdk/platform/radio/rail_lib/common",
			"gecko_sdk/protocol/bluetooth/inc",
			"ble_arduino/include",
		},
		RadioLibs: true,
	},
	BLESilabs: {
		Includes: []string{
			"gecko_sdk/platform/radio/rail_lib/common",
			"gecko_sdk/protocol/bluetooth/inc",
			"gecko_sdk/protocol/bluetooth/bgstack/ll/inc",
			"gecko_sdk/app/bluetooth/common/gatt_service_device_information",
		},
		RadioLibs: true,
	},
}

// Kinds returns every stack kind in marker order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(markers))
	for _, mk := range markers {
		kinds = append(kinds, mk.Kind)
	}
	return kinds
}

// Markers returns the stack markers in the order they are checked.
func Markers() []Marker {
	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

// Choose returns the stack selected by the defined preprocessor names.
func Choose(defines map[string]bool) Kind {
	for _, mk := range markers {
		if defines[mk.Define] {
			return mk.Kind
		}
	}
	return Default
}

// Selection is the resolved stack for one build.
type Selection struct {
	Kind         Kind     `yaml:"kind"`
	BaseDir      string   `yaml:"base_dir"`
	Includes     []string `yaml:"includes"`
	Libraries    []string `yaml:"libraries"`
	LinkerScript string   `yaml:"linker_script"`

	// ExplicitLinkerScript is true when the board manifest declared it.
	ExplicitLinkerScript bool `yaml:"explicit_linker_script"`
}

// Select resolves the stack for a board. variantsDir is the directory
// holding board variants. Stack paths are not checked for existence.
func Select(defines map[string]bool, m *board.Manifest, variantsDir string) Selection {
	kind := Choose(defines)
	spec := table[kind]
	base := filepath.Join(variantsDir, m.Build.Variant, string(kind))

	sel := Selection{Kind: kind, BaseDir: base}

	for _, dir := range coreIncludes {
		sel.Includes = append(sel.Includes, filepath.Join(base, dir))
	}
	for _, dir := range spec.Includes {
		sel.Includes = append(sel.Includes, filepath.Join(base, dir))
	}

	sel.Libraries = append(sel.Libraries, filepath.Join(base, CoreArchive))
	if spec.RadioLibs {
		for _, lib := range strings.Fields(m.Build.StackLibs[string(kind)]) {
			sel.Libraries = append(sel.Libraries, filepath.Join(base, lib))
		}
	}

	if m.Build.LDScript != "" {
		sel.LinkerScript = m.Build.LDScript
		sel.ExplicitLinkerScript = true
	} else {
		sel.LinkerScript = filepath.Join(base, LinkerScript)
	}

	return sel
}

// Ops returns the flag changes for the selection, preceded by the board's
// own flags so that stack settings appended afterwards take precedence.
func (s Selection) Ops(boardOps []buildenv.Op) []buildenv.Op {
	ops := make([]buildenv.Op, 0, len(boardOps)+3)
	ops = append(ops, boardOps...)
	return append(ops,
		buildenv.AppendOp(buildenv.CPPPATH, s.Includes...),
		buildenv.AppendOp(buildenv.LIBS, s.Libraries...),
		buildenv.AppendOp(buildenv.LDSCRIPTPATH, s.LinkerScript),
	)
}
