package decl

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a declaration document, choosing the format by file extension.
// Supported: .yaml, .yml, .toml.
func Load(path string) ([]Decl, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".toml":
		return LoadTOML(path)
	default:
		return nil, fmt.Errorf("%s: unsupported declaration document extension %q", path, ext)
	}
}

// IsDocument reports whether path looks like a declaration document.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}
