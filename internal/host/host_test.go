package host

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Host
	}{
		{"windows", Host{OS: "windows"}},
		{"Linux", Host{OS: "linux"}},
		{"linux_x86_64", Host{OS: "linux", Arch: "amd64"}},
		{"linux_aarch64", Host{OS: "linux", Arch: "arm64"}},
		{"windows_amd64", Host{OS: "windows", Arch: "amd64"}},
		{"darwin_arm64", Host{OS: "darwin", Arch: "arm64"}},
		{" darwin_x86_64 ", Host{OS: "darwin", Arch: "amd64"}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"", "empty host"},
		{"plan9", "unknown host OS"},
		{"linux_sparc", "unknown host architecture"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.in)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.in)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want substring %q", tt.in, err, tt.wantErr)
		}
	}
}

func TestSystype(t *testing.T) {
	tests := []struct {
		host Host
		want string
	}{
		{Host{OS: "windows", Arch: "amd64"}, "windows_amd64"},
		{Host{OS: "linux", Arch: "amd64"}, "linux_x86_64"},
		{Host{OS: "linux", Arch: "arm64"}, "linux_aarch64"},
		{Host{OS: "darwin", Arch: "amd64"}, "darwin_x86_64"},
		{Host{OS: "darwin", Arch: "arm64"}, "darwin_arm64"},
		{Host{OS: "windows", Arch: "386"}, "windows_x86"},
		{Host{OS: "linux"}, "linux"},
	}

	for _, tt := range tests {
		if got := tt.host.Systype(); got != tt.want {
			t.Errorf("%+v.Systype() = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestExecutable(t *testing.T) {
	e := Executable{Default: "JLinkGDBServer", Windows: "JLinkGDBServerCL.exe"}

	if got := (Host{OS: "windows"}).Executable(e); got != "JLinkGDBServerCL.exe" {
		t.Errorf("windows: got %q", got)
	}
	for _, os := range []string{"linux", "darwin", "freebsd"} {
		got := Host{OS: os}.Executable(e)
		if strings.HasSuffix(got, ".exe") {
			t.Errorf("%s: got %q, should not carry the Windows suffix", os, got)
		}
	}

	plain := Executable{Default: "bin/openocd"}
	if got := (Host{OS: "windows"}).Executable(plain); got != "bin/openocd" {
		t.Errorf("no windows name: got %q, want default", got)
	}
}
