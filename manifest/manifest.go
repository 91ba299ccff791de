// Package manifest parses and validates extension.toml, the descriptor every
// kilozed extension ships. The manifest names the extension and declares the
// language servers it can resolve commands for.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// DefaultFilename is the manifest filename at an extension's root.
const DefaultFilename = "extension.toml"

// Manifest describes an extension's identity and contributions.
type Manifest struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	SchemaVersion int    `toml:"schema_version"`
	Description   string `toml:"description"`
	Repository    string `toml:"repository"`

	Authors []string `toml:"authors"`

	// LanguageServers declares the servers this extension fronts, keyed by
	// language server id.
	LanguageServers map[string]LanguageServer `toml:"language_servers"`
}

// LanguageServer is one [language_servers.<id>] table entry.
type LanguageServer struct {
	Name      string   `toml:"name"`
	Languages []string `toml:"languages"`
}

// Validation errors.
var (
	ErrMissingID      = errors.New("manifest: id is required")
	ErrInvalidID      = errors.New("manifest: id must be lowercase alphanumeric with hyphens")
	ErrMissingName    = errors.New("manifest: name is required")
	ErrMissingVersion = errors.New("manifest: version is required")
	ErrInvalidVersion = errors.New("manifest: version must be valid semver")
	ErrMissingServer  = errors.New("manifest: language server entry needs a name")
)

var (
	idPattern     = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
)

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest's required fields and formats.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return ErrMissingID
	}
	if !idPattern.MatchString(m.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, m.ID)
	}
	if m.Name == "" {
		return ErrMissingName
	}
	if m.Version == "" {
		return ErrMissingVersion
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, m.Version)
	}
	for id, ls := range m.LanguageServers {
		if ls.Name == "" {
			return fmt.Errorf("%w: %q", ErrMissingServer, id)
		}
	}
	return nil
}

// DeclaresServer reports whether the manifest declares the given language
// server id. The host does not gate resolution on this; it exists for
// listing and tooling.
func (m *Manifest) DeclaresServer(id string) bool {
	_, ok := m.LanguageServers[id]
	return ok
}
