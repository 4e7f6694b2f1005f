package decl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors the on-disk YAML declaration document:
//
//	types:
//	  - name: Engine
//	    kind: reference
//	    owns: [Part]
//	    members:
//	      - {name: part, type: Part}
//
// An absent owns key means the declaration is unannotated; an explicit empty
// list means "owns nothing". The pointer keeps the two apart.
type yamlDocument struct {
	Types []yamlDecl `yaml:"types"`
}

type yamlDecl struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Owns    *[]string `yaml:"owns"`
	Members []Member  `yaml:"members"`
}

// LoadYAML reads one YAML declaration document.
func LoadYAML(path string) ([]Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	decls, err := ParseYAML(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// ParseYAML decodes declaration data; doc is recorded as the origin document.
// Unknown fields are rejected so extraction bugs surface as load errors
// instead of silently dropped annotations.
func ParseYAML(data []byte, doc string) ([]Decl, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw yamlDocument
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty declaration document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return convertDecls(raw.Types, doc)
}

func convertDecls(raw []yamlDecl, doc string) ([]Decl, error) {
	decls := make([]Decl, 0, len(raw))
	for i, r := range raw {
		d, err := convertDecl(r.Name, r.Kind, r.Owns, r.Members)
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		d.Origin = Origin{Doc: doc, Index: i}
		decls = append(decls, d)
	}
	return decls, nil
}

func convertDecl(name, kind string, owns *[]string, members []Member) (Decl, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Decl{}, errors.New("missing name")
	}
	k, err := ParseKind(strings.TrimSpace(kind))
	if err != nil {
		return Decl{}, fmt.Errorf("%s: %w", name, err)
	}

	d := Decl{Name: name, Kind: k}
	if owns != nil {
		d.Annotated = true
		d.Owns = normalizeNames(*owns)
	}
	d.Members = make([]Member, 0, len(members))
	for i, m := range members {
		m.Name = strings.TrimSpace(m.Name)
		m.Type = strings.TrimSpace(m.Type)
		if m.Type == "" {
			return Decl{}, fmt.Errorf("%s: members[%d]: missing type", name, i)
		}
		d.Members = append(d.Members, m)
	}
	return d, nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
