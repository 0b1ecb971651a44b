package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// manifestExts lists the file extensions read as board manifests.
// JSON manifests go through the YAML decoder, which accepts JSON input.
var manifestExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ErrMissingField marks a board manifest that lacks a field required by one
// of its declared protocols. Such a manifest is malformed and must be fixed
// at the data level.
var ErrMissingField = errors.New("missing required manifest field")

// MissingFieldError names the board and the dotted option it is missing.
type MissingFieldError struct {
	Board  string
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("board '%s': %s — set '%s' in the board manifest", e.Board, e.Reason, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Load reads and validates a single board manifest. The board ID is the
// file name without its extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board manifest %s: %w", path, err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := Parse(id, data)
	if err != nil {
		return nil, fmt.Errorf("board manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates manifest data for the given board ID.
func Parse(id string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	m.ID = id

	if errs := Validate(&m); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &m, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("board manifest validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Manifest for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(m *Manifest) []string {
	var errs []string

	if m.ID == "" {
		errs = append(errs, "board id is required")
	}
	if m.Name == "" {
		errs = append(errs, "'name' is required")
	}
	if m.Build.MCU == "" {
		errs = append(errs, "'build.mcu' is required")
	}

	if m.Upload.Protocol != "" && len(m.Upload.Protocols) > 0 && !m.HasUploadProtocol(m.Upload.Protocol) {
		errs = append(errs, fmt.Sprintf("'upload.protocol' %s is not listed in 'upload.protocols' [%s]",
			m.Upload.Protocol, strings.Join(m.Upload.Protocols, ", ")))
	}

	for name, entry := range m.Debug.Tools {
		if name == "" {
			errs = append(errs, "'debug.tools' has an entry with an empty name")
			continue
		}
		if entry.Server != nil && entry.Server.Executable == "" {
			errs = append(errs, fmt.Sprintf("'debug.tools.%s.server' requires 'executable'", name))
		}
		for _, pair := range entry.HWIDs {
			if len(pair) != 2 {
				errs = append(errs, fmt.Sprintf("'debug.tools.%s.hwids' entries must be [vid, pid] pairs", name))
				break
			}
		}
	}

	return errs
}

// Catalog is the set of boards a platform supports, keyed by board ID.
type Catalog struct {
	boards map[string]*Manifest
}

// NewCatalog builds a catalog from already loaded manifests.
// A later manifest replaces an earlier one with the same ID.
func NewCatalog(manifests ...*Manifest) *Catalog {
	c := &Catalog{boards: make(map[string]*Manifest, len(manifests))}
	for _, m := range manifests {
		c.boards[m.ID] = m
	}
	return c
}

// LoadDir reads every manifest file in dir. Files with other extensions and
// subdirectories are ignored. All invalid manifests are reported together.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading boards directory %s: %w", dir, err)
	}

	c := &Catalog{boards: make(map[string]*Manifest)}
	var errs []string
	for _, e := range entries {
		if e.IsDir() || !manifestExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		m, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if _, dup := c.boards[m.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate board id '%s' in %s", m.ID, dir))
			continue
		}
		c.boards[m.ID] = m
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return c, nil
}

// Get returns the manifest for a board ID.
func (c *Catalog) Get(id string) (*Manifest, error) {
	m, ok := c.boards[id]
	if !ok {
		return nil, fmt.Errorf("unknown board '%s' — run 'efm32-platform boards' to list supported boards", id)
	}
	return m, nil
}

// IDs returns all board IDs, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.boards))
	for id := range c.boards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of boards in the catalog.
func (c *Catalog) Len() int {
	return len(c.boards)
}
