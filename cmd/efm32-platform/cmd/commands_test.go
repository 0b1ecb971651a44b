package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const testBoard = `name: Silicon Labs xG24 Dev Kit
frameworks: [arduino]
build:
  core: silabs
  variant: xg24devkit
  mcu: efr32mg24b310f1536im48
  extra_flags: -DARDUINO_SILABS -DEFR32MG24B310F1536IM48
upload:
  protocol: cmsis-dap
  protocols: [cmsis-dap, blackmagic]
  maximum_size: 1572864
  maximum_ram_size: 262144
debug:
  openocd_target: efm32s2.cfg
`

// setupProject writes a config with a boards and framework directory and
// points the global flags at it.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	boards := filepath.Join(dir, "boards")
	for _, d := range []string{boards, filepath.Join(dir, "framework")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(boards, "xg24devkit.yaml"), []byte(testBoard), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "efm32-platform.yaml")
	content := "version: 1\nboards_dir: boards\nframework_dir: framework\nhost: linux_x86_64\n"
	if err := os.WriteFile(cfg, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EFM32_PLATFORM_NO_INHERIT", "1")
	oldConfig, oldOutput, oldLock, oldQuiet := configPath, outputPath, lockfilePath, quiet
	configPath = cfg
	outputPath = filepath.Join(dir, "out.yaml")
	lockfilePath = ""
	quiet = true
	t.Cleanup(func() {
		configPath, outputPath, lockfilePath, quiet = oldConfig, oldOutput, oldLock, oldQuiet
	})
	return dir
}

func readOutput(t *testing.T, v any) {
	t.Helper()
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
}

func TestBoardsCommand(t *testing.T) {
	setupProject(t)

	if err := boardsCmd.RunE(boardsCmd, nil); err != nil {
		t.Fatalf("boards: %v", err)
	}

	var out []struct {
		ID         string   `yaml:"id"`
		DebugTools []string `yaml:"debug_tools"`
		Flash      int64    `yaml:"flash"`
	}
	readOutput(t, &out)
	if len(out) != 1 || out[0].ID != "xg24devkit" {
		t.Fatalf("boards = %+v", out)
	}
	if got := strings.Join(out[0].DebugTools, ","); got != "blackmagic,cmsis-dap" {
		t.Errorf("debug tools = %q", got)
	}
	if out[0].Flash != 1572864 {
		t.Errorf("flash = %d", out[0].Flash)
	}
}

func TestBuildCommand(t *testing.T) {
	setupProject(t)
	buildDefines = []string{"ARDUINO_SILABS_STACK_BLE_ARDUINO"}
	defer func() { buildDefines = nil }()

	if err := buildCmd.RunE(buildCmd, []string{"xg24devkit"}); err != nil {
		t.Fatalf("build: %v", err)
	}

	var out struct {
		Plan struct {
			Stack struct {
				Kind string `yaml:"kind"`
			} `yaml:"stack"`
		} `yaml:"plan"`
		Env map[string][]string `yaml:"env"`
	}
	readOutput(t, &out)
	if out.Plan.Stack.Kind != "ble_arduino" {
		t.Errorf("stack = %q", out.Plan.Stack.Kind)
	}
	defines := strings.Join(out.Env["CPPDEFINES"], " ")
	if !strings.Contains(defines, "ARDUINO_SILABS_STACK_BLE_ARDUINO") {
		t.Errorf("CPPDEFINES = %q", defines)
	}
	if len(out.Env["LIBS"]) == 0 || out.Env["LIBS"][0] != "$BUILD_DIR/FrameworkArduinoVariant" {
		t.Errorf("LIBS = %v", out.Env["LIBS"])
	}
}

func TestBuildCommandUnknownBoard(t *testing.T) {
	setupProject(t)
	if err := buildCmd.RunE(buildCmd, []string{"nosuchboard"}); err == nil {
		t.Fatal("expected error for unknown board")
	}
}

func TestDebugCommand(t *testing.T) {
	setupProject(t)
	debugTool, debugSpeed = "cmsis-dap", "2000"
	defer func() { debugTool, debugSpeed = "", "" }()

	if err := debugCmd.RunE(debugCmd, []string{"xg24devkit"}); err != nil {
		t.Fatalf("debug: %v", err)
	}

	var out struct {
		Session struct {
			Tool string `yaml:"tool"`
		} `yaml:"session"`
		Arguments []string `yaml:"arguments"`
	}
	readOutput(t, &out)
	if out.Session.Tool != "cmsis-dap" {
		t.Errorf("tool = %q", out.Session.Tool)
	}
	if got := strings.Join(out.Arguments, " "); !strings.HasSuffix(got, "-c adapter speed 2000") {
		t.Errorf("arguments = %q", got)
	}
}

func TestPackagesCommandLock(t *testing.T) {
	dir := setupProject(t)
	pkgBoard = "xg24devkit"
	pkgLock = true
	defer func() { pkgBoard, pkgLock = "", false }()

	if err := packagesCmd.RunE(packagesCmd, nil); err != nil {
		t.Fatalf("packages: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "platform.lock"))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if strings.Contains(string(data), "tool-jlink") {
		t.Error("lockfile should not list tool-jlink for a cmsis-dap board")
	}
}

func TestDebugCommandDefaultTool(t *testing.T) {
	setupProject(t)

	if err := debugCmd.RunE(debugCmd, []string{"xg24devkit"}); err != nil {
		t.Fatalf("debug: %v", err)
	}

	var out struct {
		Session struct {
			Tool string `yaml:"tool"`
		} `yaml:"session"`
	}
	readOutput(t, &out)
	if out.Session.Tool != "blackmagic" {
		t.Errorf("tool = %q, want the first built-in probe", out.Session.Tool)
	}
}
