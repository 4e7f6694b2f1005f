package decl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadTOMLDocument(t *testing.T) {
	path := writeDoc(t, "car.toml", `
[[types]]
name = "Engine"
kind = "reference"
owns = ["Part"]

  [[types.members]]
  name = "part"
  type = "Part"

[[types]]
name = "Part"
kind = "reference"
`)

	decls, err := LoadTOML(path)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(decls))

	assert.True(t, decls[0].Annotated)
	assert.Equal(t, []string{"Part"}, decls[0].Owns)
	assert.Equal(t, "part", decls[0].Members[0].Name)
	assert.Equal(t, path, decls[0].Origin.Doc)

	assert.False(t, decls[1].Annotated)
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	path := writeDoc(t, "bad.toml", `
[[types]]
name = "Engine"
kind = "reference"
holds = ["Part"]
`)
	_, err := LoadTOML(path)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	yamlPath := writeDoc(t, "a.yaml", "types:\n  - name: A\n    kind: reference\n")
	tomlPath := writeDoc(t, "a.toml", "[[types]]\nname = \"A\"\nkind = \"reference\"\n")

	fromYAML, err := Load(yamlPath)
	assert.Nil(t, err)
	fromTOML, err := Load(tomlPath)
	assert.Nil(t, err)
	assert.Equal(t, fromYAML[0].Name, fromTOML[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "a.csv"))
	assert.NotNil(t, err)
}

func TestIsDocument(t *testing.T) {
	assert.True(t, IsDocument("decls.yaml"))
	assert.True(t, IsDocument("decls.YML"))
	assert.True(t, IsDocument("decls.toml"))
	assert.False(t, IsDocument("decls.json"))
	assert.False(t, IsDocument("README.md"))
}
