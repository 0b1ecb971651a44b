package config

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverPathsOrder(t *testing.T) {
	dir := t.TempDir()
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      filepath.Join(dir, FileName),
		SystemConfigPath: filepath.Join(dir, "system.yaml"),
		UserConfigPath:   filepath.Join(dir, "user.yaml"),
	})

	want := []ConfigLevel{LevelSystem, LevelUser, LevelProject}
	if len(layers) != len(want) {
		t.Fatalf("layers = %+v", layers)
	}
	for i, l := range layers {
		if l.Level != want[i] {
			t.Errorf("layer %d level = %s, want %s", i, l.Level, want[i])
		}
	}
}

func TestDiscoverPathsSameFileKeepsProject(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, FileName)
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      project,
		SystemConfigPath: filepath.Join(dir, "system.yaml"),
		UserConfigPath:   project,
	})

	if len(layers) != 2 {
		t.Fatalf("layers = %+v, want system and project", layers)
	}
	if layers[0].Level != LevelSystem || layers[1].Level != LevelProject {
		t.Errorf("levels = %s, %s", layers[0].Level, layers[1].Level)
	}
}

func TestPackagesDirFromCoreDir(t *testing.T) {
	core := t.TempDir()
	t.Setenv(EnvCoreDir, core)

	if got, want := PackagesDir(), filepath.Join(core, "packages"); got != want {
		t.Errorf("PackagesDir = %q, want %q", got, want)
	}
}

func TestApplyDefaultsFindsInstalledFramework(t *testing.T) {
	pkgs := t.TempDir()
	project := t.TempDir()
	fw := mkdirAll(t, filepath.Join(pkgs, "framework-arduino-silabs"))
	boards := mkdirAll(t, filepath.Join(project, "boards"))

	cfg := &Config{Version: 1}
	ApplyDefaults(cfg, DefaultDirs{ProjectDir: project, PackagesDir: pkgs})

	if cfg.FrameworkDir != fw {
		t.Errorf("framework_dir = %q, want %q", cfg.FrameworkDir, fw)
	}
	if cfg.BoardsDir != boards {
		t.Errorf("boards_dir = %q, want %q", cfg.BoardsDir, boards)
	}
}

func TestApplyDefaultsKeepsConfiguredDirs(t *testing.T) {
	pkgs := t.TempDir()
	project := t.TempDir()
	mkdirAll(t, filepath.Join(pkgs, "framework-arduino-silabs"))
	mkdirAll(t, filepath.Join(project, "boards"))

	cfg := &Config{Version: 1, FrameworkDir: "/opt/fw", BoardsDir: "/opt/boards"}
	ApplyDefaults(cfg, DefaultDirs{ProjectDir: project, PackagesDir: pkgs})

	if cfg.FrameworkDir != "/opt/fw" || cfg.BoardsDir != "/opt/boards" {
		t.Errorf("configured dirs replaced: %+v", cfg)
	}
}

func TestApplyDefaultsNothingInstalled(t *testing.T) {
	cfg := &Config{Version: 1}
	ApplyDefaults(cfg, DefaultDirs{ProjectDir: t.TempDir(), PackagesDir: t.TempDir()})

	if cfg.FrameworkDir != "" || cfg.BoardsDir != "" {
		t.Errorf("expected no defaults, got framework_dir=%q boards_dir=%q", cfg.FrameworkDir, cfg.BoardsDir)
	}
}

func TestLoadHierarchicalAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	core := t.TempDir()
	t.Setenv(EnvCoreDir, core)
	fw := mkdirAll(t, filepath.Join(core, "packages", "framework-arduino-silabs"))
	boards := mkdirAll(t, filepath.Join(dir, "boards"))
	project := writeConfigFile(t, dir, FileName, "version: 1\n")

	result, err := LoadHierarchical(HierarchicalOptions{ProjectPath: project, NoInherit: true})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}
	if result.Config.FrameworkDir != fw {
		t.Errorf("framework_dir = %q, want installed package %q", result.Config.FrameworkDir, fw)
	}
	if result.Config.BoardsDir != boards {
		t.Errorf("boards_dir = %q, want %q", result.Config.BoardsDir, boards)
	}
}
