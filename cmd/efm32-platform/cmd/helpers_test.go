package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{262144, "256.0 KB"},
		{1048576, "1.0 MB"},
		{1572864, "1.5 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		got := humanSize(tt.bytes)
		if got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestOrNone(t *testing.T) {
	old := noColor
	noColor = true
	defer func() { noColor = old }()

	if got := orNone(""); got != "(not set)" {
		t.Errorf("orNone(\"\") = %q", got)
	}
	if got := orNone("/opt/fw"); got != "/opt/fw" {
		t.Errorf("orNone(/opt/fw) = %q", got)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	old := outputPath
	outputPath = path
	defer func() { outputPath = old }()

	if err := writeOutput(map[string][]string{"LIBS": {"a", "b"}}); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string][]string
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(got["LIBS"]) != 2 {
		t.Errorf("LIBS = %v", got["LIBS"])
	}
}

func TestWriteOutputDisabled(t *testing.T) {
	old := outputPath
	outputPath = ""
	defer func() { outputPath = old }()

	if err := writeOutput(struct{}{}); err != nil {
		t.Errorf("writeOutput without --output: %v", err)
	}
}

func TestStyledNoColor(t *testing.T) {
	old := noColor
	noColor = true
	defer func() { noColor = old }()

	if got := styled("loaded", "loaded"); got != "loaded" {
		t.Errorf("styled with --no-color = %q", got)
	}
	if got := header("Radio stacks:"); got != "Radio stacks:" {
		t.Errorf("header with --no-color = %q", got)
	}
}

func TestStyledUnknownState(t *testing.T) {
	if got := styled("bogus", "text"); got != "text" {
		t.Errorf("styled(bogus) = %q, want text unchanged", got)
	}
}
