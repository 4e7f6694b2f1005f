package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[check]
max-diagnostics = 50
warnings-as-errors = true

[inputs]
paths = ["decls", "extra/parts.yaml"]
`)

	m, err := LoadManifest(path)
	assert.Nil(t, err)
	assert.Equal(t, 50, m.Check.MaxDiagnostics)
	assert.True(t, m.Check.WarningsAsErrors)
	assert.False(t, m.Check.NoWarnings)
	assert.Equal(t, dir, m.Root)

	resolved := m.ResolveInputs()
	assert.Equal(t, []string{
		filepath.Join(dir, "decls"),
		filepath.Join(dir, "extra", "parts.yaml"),
	}, resolved)
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[check]
maximum = 10
`)
	_, err := LoadManifest(path)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestLoadManifestRejectsNegativeLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[check]
max-diagnostics = -1
`)
	_, err := LoadManifest(path)
	assert.NotNil(t, err)
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[check]\nmax-diagnostics = 7\n")
	nested := filepath.Join(root, "a", "b")
	assert.Nil(t, os.MkdirAll(nested, 0o755))

	m, err := FindManifest(nested)
	assert.Nil(t, err)
	assert.Equal(t, 7, m.Check.MaxDiagnostics)
}

func TestFindManifestMissing(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoManifest))
}
