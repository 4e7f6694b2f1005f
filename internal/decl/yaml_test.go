package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYAMLDocument(t *testing.T) {
	data := []byte(`
types:
  - name: Engine
    kind: reference
    owns: [Part]
    members:
      - {name: part, type: Part}
  - name: Part
    kind: reference
    owns: []
  - name: Chassis
    kind: reference
    members:
      - {name: engine, type: Engine, via_value: true}
  - name: Mount
    kind: value
    owns: [Part]
`)

	decls, err := ParseYAML(data, "car.yaml")
	assert.Nil(t, err)
	assert.Equal(t, 4, len(decls))

	engine := decls[0]
	assert.Equal(t, "Engine", engine.Name)
	assert.Equal(t, KindReference, engine.Kind)
	assert.True(t, engine.Annotated)
	assert.Equal(t, []string{"Part"}, engine.Owns)
	assert.Equal(t, []Member{{Name: "part", Type: "Part"}}, engine.Members)
	assert.Equal(t, Origin{Doc: "car.yaml", Index: 0}, engine.Origin)

	part := decls[1]
	assert.True(t, part.Annotated, "explicit empty owns-list is still an annotation")
	assert.Empty(t, part.Owns)

	chassis := decls[2]
	assert.False(t, chassis.Annotated, "missing owns key means unannotated")
	assert.True(t, chassis.Members[0].ViaValue)

	mount := decls[3]
	assert.Equal(t, KindValue, mount.Kind)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	data := []byte(`
types:
  - name: Engine
    kind: reference
    holds: [Part]
`)
	_, err := ParseYAML(data, "bad.yaml")
	assert.NotNil(t, err)
}

func TestParseYAMLRejectsMissingName(t *testing.T) {
	data := []byte(`
types:
  - kind: reference
`)
	_, err := ParseYAML(data, "bad.yaml")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestParseYAMLRejectsUnknownKind(t *testing.T) {
	data := []byte(`
types:
  - name: Engine
    kind: enum
`)
	_, err := ParseYAML(data, "bad.yaml")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestParseYAMLRejectsEmptyDocument(t *testing.T) {
	_, err := ParseYAML([]byte(""), "empty.yaml")
	assert.NotNil(t, err)
}

func TestParseYAMLAcceptsClassAndStructAliases(t *testing.T) {
	data := []byte(`
types:
  - name: Engine
    kind: class
  - name: Mount
    kind: struct
`)
	decls, err := ParseYAML(data, "alias.yaml")
	assert.Nil(t, err)
	assert.Equal(t, KindReference, decls[0].Kind)
	assert.Equal(t, KindValue, decls[1].Kind)
}
