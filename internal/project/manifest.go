package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the conventional project manifest file name.
const ManifestName = "ownlint.toml"

// CheckConfig mirrors the [check] section of ownlint.toml.
type CheckConfig struct {
	MaxDiagnostics   int  `toml:"max-diagnostics"`
	WarningsAsErrors bool `toml:"warnings-as-errors"`
	NoWarnings       bool `toml:"no-warnings"`
}

// Manifest is a parsed ownlint.toml. CLI flags override anything set here.
type Manifest struct {
	Check  CheckConfig
	Inputs []string // declaration documents or directories, relative to Root
	Root   string   // directory the manifest was loaded from
}

type manifestFile struct {
	Check  CheckConfig `toml:"check"`
	Inputs struct {
		Paths []string `toml:"paths"`
	} `toml:"inputs"`
}

// ErrNoManifest indicates that no ownlint.toml was found.
var ErrNoManifest = errors.New("no ownlint.toml")

// LoadManifest parses an ownlint.toml at the given path.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, fmt.Errorf("%s: %w", path, ErrNoManifest)
		}
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Manifest{}, fmt.Errorf("%s: [check].max-diagnostics must not be negative", path)
	}

	m := Manifest{
		Check:  cfg.Check,
		Inputs: cfg.Inputs.Paths,
		Root:   filepath.Dir(path),
	}
	return m, nil
}

// FindManifest walks from dir upwards looking for ownlint.toml.
func FindManifest(dir string) (Manifest, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Manifest{}, err
	}
	for {
		path := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(path); err == nil {
			return LoadManifest(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Manifest{}, ErrNoManifest
		}
		dir = parent
	}
}

// ResolveInputs makes the manifest's input paths absolute.
func (m Manifest) ResolveInputs() []string {
	out := make([]string, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		if filepath.IsAbs(in) {
			out = append(out, in)
			continue
		}
		out = append(out, filepath.Join(m.Root, in))
	}
	return out
}
