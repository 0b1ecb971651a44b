package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/buildenv"
	"github.com/hbf/platform-siliconlabsefm32/internal/config"
	"github.com/hbf/platform-siliconlabsefm32/internal/debugtool"
	"github.com/hbf/platform-siliconlabsefm32/internal/framework"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/hbf/platform-siliconlabsefm32/internal/registry"
	"github.com/hbf/platform-siliconlabsefm32/internal/stack"
)

var linuxHost = host.Host{OS: "linux", Arch: "amd64"}

func testBoard() *board.Manifest {
	return &board.Manifest{
		ID:         "xg24explorerkit",
		Name:       "xG24 Explorer Kit",
		Frameworks: []string{"arduino"},
		Build: board.Build{
			Core:       "silabs",
			Variant:    "xg24explorerkit",
			MCU:        "efr32mg24b210f1536im48",
			ExtraFlags: "-DARDUINO_SILABS",
			StackLibs:  map[string]string{"matter": "libmatter.a"},
		},
		Upload: board.Upload{
			Protocol:  "jlink",
			Protocols: []string{"jlink", "cmsis-dap", "blackmagic"},
		},
		Debug: board.Debug{
			JLinkDevice:   "EFR32MG24BxxxF1536",
			OpenOCDTarget: "efm32s2.cfg",
			OnboardTools:  []string{"jlink"},
		},
	}
}

func TestBuildEngine(t *testing.T) {
	fw := t.TempDir()
	eng := &BuildEngine{FrameworkDir: fw}

	result, err := eng.Build(testBoard(), BuildOptions{Defines: []string{"ARDUINO_SILABS_STACK_NONE"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Plan.Stack.Kind != stack.NoRadio {
		t.Errorf("stack = %s, want %s", result.Plan.Stack.Kind, stack.NoRadio)
	}

	base := filepath.Join(fw, "variants", "xg24explorerkit", "noradio")
	wantLibs := []string{
		"$BUILD_DIR/FrameworkArduinoVariant",
		"$BUILD_DIR/FrameworkArduino",
		filepath.Join(base, stack.CoreArchive),
	}
	if diff := cmp.Diff(wantLibs, result.Env[buildenv.LIBS]); diff != "" {
		t.Errorf("LIBS mismatch (-want +got):\n%s", diff)
	}

	ld := result.Env[buildenv.LDSCRIPTPATH]
	if len(ld) == 0 || ld[len(ld)-1] != filepath.Join(base, stack.LinkerScript) {
		t.Errorf("LDSCRIPT_PATH = %v", ld)
	}
}

func TestBuildEngineDefaultStack(t *testing.T) {
	fw := t.TempDir()
	result, err := (&BuildEngine{FrameworkDir: fw}).Build(testBoard(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Plan.Stack.Kind != stack.Matter {
		t.Errorf("stack = %s, want matter", result.Plan.Stack.Kind)
	}
	libs := result.Env[buildenv.LIBS]
	want := filepath.Join(fw, "variants", "xg24explorerkit", "matter", "libmatter.a")
	if libs[len(libs)-1] != want {
		t.Errorf("last lib = %q, want %q", libs[len(libs)-1], want)
	}
}

func TestBuildEngineMissingFramework(t *testing.T) {
	eng := &BuildEngine{FrameworkDir: filepath.Join(t.TempDir(), "missing")}
	_, err := eng.Build(testBoard(), BuildOptions{})
	if !errors.Is(err, framework.ErrFrameworkNotFound) {
		t.Fatalf("expected ErrFrameworkNotFound, got %v", err)
	}
}

func TestBuildEngineBadFlags(t *testing.T) {
	eng := &BuildEngine{FrameworkDir: t.TempDir()}
	_, err := eng.Build(testBoard(), BuildOptions{BuildFlags: `-DNAME="unterminated`})
	var be BoardError
	if !errors.As(err, &be) || be.Board != "xg24explorerkit" {
		t.Fatalf("expected BoardError for xg24explorerkit, got %v", err)
	}
}

func TestDebugEngineDefaultTool(t *testing.T) {
	eng := &DebugEngine{Host: linuxHost}
	m := testBoard()

	result, err := eng.Debug(m, DebugOptions{Speed: "4000"})
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if result.Session.Tool != debugtool.JLink {
		t.Errorf("tool = %q, want onboard jlink", result.Session.Tool)
	}
	if len(result.Synthesized) != 3 {
		t.Errorf("synthesized = %d, want 3", len(result.Synthesized))
	}
	if result.Session.Server == nil || result.Session.Server.Executable != "JLinkGDBServer" {
		t.Fatalf("server = %+v", result.Session.Server)
	}
	n := len(result.Arguments)
	if n < 2 || result.Arguments[n-2] != "-speed" || result.Arguments[n-1] != "4000" {
		t.Errorf("arguments = %v, want trailing -speed 4000", result.Arguments)
	}
	if len(m.Debug.Tools) != 0 {
		t.Error("Debug must not modify the input manifest")
	}
}

func TestDebugEngineRequestedTool(t *testing.T) {
	eng := &DebugEngine{Host: linuxHost}

	result, err := eng.Debug(testBoard(), DebugOptions{Tool: debugtool.CMSISDAP, Speed: "1000"})
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	got := strings.Join(result.Arguments, " ")
	if !strings.Contains(got, "-f target/efm32s2.cfg") {
		t.Errorf("arguments = %q, missing target", got)
	}
	if !strings.HasSuffix(got, "-c adapter speed 1000") {
		t.Errorf("arguments = %q, want adapter speed", got)
	}
}

func TestDebugEngineNoServer(t *testing.T) {
	result, err := (&DebugEngine{Host: linuxHost}).Debug(testBoard(), DebugOptions{Tool: debugtool.BlackMagic, Speed: "1000"})
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if result.Arguments != nil {
		t.Errorf("arguments = %v, want nil without a server", result.Arguments)
	}
}

func TestDebugEngineUnknownTool(t *testing.T) {
	_, err := (&DebugEngine{Host: linuxHost}).Debug(testBoard(), DebugOptions{Tool: "stlink"})
	var be BoardError
	if !errors.As(err, &be) {
		t.Fatalf("expected BoardError, got %v", err)
	}
}

func TestDebugEngineMalformedBoard(t *testing.T) {
	m := testBoard()
	m.Debug.JLinkDevice = ""
	_, err := (&DebugEngine{Host: linuxHost}).Debug(m, DebugOptions{})
	if !errors.Is(err, board.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestPackagesEngine(t *testing.T) {
	eng := &PackagesEngine{Host: linuxHost}
	reg := registry.Default()
	vars := registry.Variables{Frameworks: []string{"arduino"}, UploadProtocol: "cmsis-dap"}

	result, err := eng.Configure(reg, vars, nil)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if result.Registry.Has(registry.JLink) {
		t.Error("tool-jlink should be removed when nothing asks for jlink")
	}
	oc, ok := result.Registry.Get(registry.OpenOCD)
	if !ok || !strings.Contains(oc.Version, "#linux_x64") {
		t.Errorf("openocd = %+v, want linux source pin", oc)
	}
	if !reg.Has(registry.JLink) {
		t.Error("input registry must not be modified")
	}
}

func TestPackagesEngineBoardWantsJLink(t *testing.T) {
	result, err := (&PackagesEngine{Host: linuxHost}).Configure(registry.Default(), registry.Variables{}, testBoard())
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if !result.Registry.Has(registry.JLink) {
		t.Error("tool-jlink should stay when the board uploads with jlink")
	}
}

func TestInfo(t *testing.T) {
	cfg := &config.Config{Version: 1, FrameworkDir: "/opt/fw", BoardsDir: "/opt/boards"}
	catalog := board.NewCatalog(testBoard())

	r, err := Info("1.2.3", cfg, catalog, linuxHost, "efm32-platform.yaml", "platform.lock")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if r.Version != "1.2.3" || r.Boards != 1 || r.FrameworkDir != "/opt/fw" {
		t.Errorf("unexpected info: %+v", r)
	}
	if r.Systype != "linux_x86_64" {
		t.Errorf("systype = %q", r.Systype)
	}
	if diff := cmp.Diff(debugtool.Kinds(), r.DebugKinds); diff != "" {
		t.Errorf("debug kinds mismatch (-want +got):\n%s", diff)
	}

	defaults := 0
	for _, s := range r.Stacks {
		if s.Marker == "" {
			t.Errorf("stack %s has no marker", s.Kind)
		}
		if s.Default {
			defaults++
			if s.Kind != string(stack.Matter) {
				t.Errorf("default stack = %s", s.Kind)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("default stacks = %d, want 1", defaults)
	}
}

func TestBoards(t *testing.T) {
	augmented, err := debugtool.AugmentAll(board.NewCatalog(testBoard()), linuxHost)
	if err != nil {
		t.Fatalf("AugmentAll: %v", err)
	}

	got := Boards(augmented)
	want := []BoardSummary{{
		ID:         "xg24explorerkit",
		Name:       "xG24 Explorer Kit",
		MCU:        "efr32mg24b210f1536im48",
		Frameworks: []string{"arduino"},
		Protocols:  []string{"jlink", "cmsis-dap", "blackmagic"},
		DebugTools: []string{"blackmagic", "cmsis-dap", "jlink"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Boards mismatch (-want +got):\n%s", diff)
	}
}
