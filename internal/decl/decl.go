package decl

import "fmt"

// Kind separates identity-based reference types from copied value types.
// Reference types participate in ownership checks; value types are transparent
// conduits for whatever references they carry.
type Kind uint8

const (
	KindReference Kind = iota
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindValue:
		return "value"
	}
	return "unknown"
}

// ParseKind maps a document kind string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "reference", "class":
		return KindReference, nil
	case "value", "struct":
		return KindValue, nil
	}
	return KindReference, fmt.Errorf("unknown kind %q (must be reference or value)", s)
}

// Member is one stored field of a declaration. ViaValue marks members reached
// only through intermediate value types.
type Member struct {
	Name     string `yaml:"name" toml:"name" msgpack:"name"`
	Type     string `yaml:"type" toml:"type" msgpack:"type"`
	ViaValue bool   `yaml:"via_value" toml:"via_value" msgpack:"via_value"`
}

// Origin records where a declaration came from so renderers can point users
// at the right document. The validator itself never looks at it.
type Origin struct {
	Doc   string `msgpack:"doc"`
	Index int    `msgpack:"index"`
}

// Decl is one extracted type declaration.
//
// Annotated distinguishes an explicit empty owns-list ("owns nothing") from a
// missing annotation ("unchecked"); Owns is only meaningful when Annotated is
// true.
type Decl struct {
	Name      string   `msgpack:"name"`
	Kind      Kind     `msgpack:"kind"`
	Annotated bool     `msgpack:"annotated"`
	Owns      []string `msgpack:"owns"`
	Members   []Member `msgpack:"members"`
	Origin    Origin   `msgpack:"origin"`
}

// IsReference reports whether the declaration is a reference type.
func (d *Decl) IsReference() bool { return d.Kind == KindReference }

// IsValue reports whether the declaration is a value type.
func (d *Decl) IsValue() bool { return d.Kind == KindValue }
