package decl

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlDocument mirrors the TOML flavour of a declaration document:
//
//	[[types]]
//	name = "Engine"
//	kind = "reference"
//	owns = ["Part"]
//	  [[types.members]]
//	  name = "part"
//	  type = "Part"
type tomlDocument struct {
	Types []tomlDecl `toml:"types"`
}

type tomlDecl struct {
	Name    string    `toml:"name"`
	Kind    string    `toml:"kind"`
	Owns    *[]string `toml:"owns"`
	Members []Member  `toml:"members"`
}

// LoadTOML reads one TOML declaration document.
func LoadTOML(path string) ([]Decl, error) {
	var raw tomlDocument
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	decls := make([]Decl, 0, len(raw.Types))
	for i, r := range raw.Types {
		d, err := convertDecl(r.Name, r.Kind, r.Owns, r.Members)
		if err != nil {
			return nil, fmt.Errorf("%s: types[%d]: %w", path, i, err)
		}
		d.Origin = Origin{Doc: path, Index: i}
		decls = append(decls, d)
	}
	return decls, nil
}
