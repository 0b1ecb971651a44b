package registry

// FrameworkArduino is the Arduino core package for Silicon Labs boards.
const FrameworkArduino = "framework-arduino-silabs"

// Default returns the platform's own package list, used when a project
// config declares no packages.
func Default() *Registry {
	return &Registry{
		Version: 1,
		Packages: []Package{
			{Name: Toolchain, Type: "toolchain", Version: "~1.120301.0"},
			{Name: FrameworkArduino, Type: "framework", Version: "~2.0.0", Optional: true},
			{Name: OpenOCD, Type: "debugger", Version: "~0.12.0", Optional: true},
			{Name: JLink, Type: "uploader", Version: "^1.78811.0", Optional: true},
			{Name: CMake, Version: "~3.21.0", Optional: true},
			{Name: DTC, Version: "~1.4.7", Optional: true},
			{Name: Ninja, Version: "^1.7.0", Optional: true},
			{Name: GPerf, Version: "~3.0.0", Optional: true},
		},
	}
}
