package board

import (
	"sort"
	"strconv"
	"strings"
)

// options maps dotted option names to accessors. List values are rendered
// as comma-separated strings.
var options = map[string]func(m *Manifest) string{
	"name":                    func(m *Manifest) string { return m.Name },
	"vendor":                  func(m *Manifest) string { return m.Vendor },
	"url":                     func(m *Manifest) string { return m.URL },
	"frameworks":              func(m *Manifest) string { return strings.Join(m.Frameworks, ",") },
	"build.core":              func(m *Manifest) string { return m.Build.Core },
	"build.variant":           func(m *Manifest) string { return m.Build.Variant },
	"build.variants_dir":      func(m *Manifest) string { return m.Build.VariantsDir },
	"build.extra_flags":       func(m *Manifest) string { return m.Build.ExtraFlags },
	"build.ldscript":          func(m *Manifest) string { return m.Build.LDScript },
	"build.mcu":               func(m *Manifest) string { return m.Build.MCU },
	"build.f_cpu":             func(m *Manifest) string { return m.Build.FCPU },
	"build.cpu":               func(m *Manifest) string { return m.Build.CPU },
	"upload.protocol":         func(m *Manifest) string { return m.Upload.Protocol },
	"upload.protocols":        func(m *Manifest) string { return strings.Join(m.Upload.Protocols, ",") },
	"upload.maximum_size":     func(m *Manifest) string { return itoa(m.Upload.MaximumSize) },
	"upload.maximum_ram_size": func(m *Manifest) string { return itoa(m.Upload.MaximumRAMSize) },
	"debug.default_tools":     func(m *Manifest) string { return strings.Join(m.Debug.DefaultTools, ",") },
	"debug.onboard_tools":     func(m *Manifest) string { return strings.Join(m.Debug.OnboardTools, ",") },
	"debug.openocd_target":    func(m *Manifest) string { return m.Debug.OpenOCDTarget },
	"debug.jlink_device":      func(m *Manifest) string { return m.Debug.JLinkDevice },
	"debug.svd_path":          func(m *Manifest) string { return m.Debug.SVDPath },
}

// Lookup returns the value of a dotted option such as "build.variant".
// The second result is false when the key is unknown or the value is empty.
func (m *Manifest) Lookup(key string) (string, bool) {
	get, ok := options[key]
	if !ok {
		if lib, found := strings.CutPrefix(key, "build.stack_libs."); found {
			v := m.Build.StackLibs[lib]
			return v, v != ""
		}
		return "", false
	}
	v := get(m)
	return v, v != ""
}

// Get returns the value of a dotted option, or "" when it is not set.
func (m *Manifest) Get(key string) string {
	v, _ := m.Lookup(key)
	return v
}

// Has reports whether a dotted option is set.
func (m *Manifest) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// OptionKeys returns the known dotted option names, sorted.
func OptionKeys() []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
