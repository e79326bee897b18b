package suggest

import (
	"fmt"
	"io"
	"os"

	"github.com/rapidmidiex/chordpad/key"
	"gopkg.in/yaml.v3"
)

// Library holds the progressions offered for each type of key.
type Library map[key.Type][]Progression

// DefaultLibrary returns a copy of the built in progressions.
func DefaultLibrary() Library {
	lib := make(Library, len(byKeyType))
	for t, ps := range byKeyType {
		lib[t] = append([]Progression(nil), ps...)
	}
	return lib
}

// For lists the progressions of lib for keys of type t.
func (lib Library) For(t key.Type) []Progression {
	return append([]Progression(nil), lib[t]...)
}

// Merge appends the progressions of other after those already in lib.
func (lib Library) Merge(other Library) Library {
	out := make(Library, len(lib))
	for t, ps := range lib {
		out[t] = append([]Progression(nil), ps...)
	}
	for t, ps := range other {
		out[t] = append(out[t], ps...)
	}
	return out
}

// ReadLibrary reads progressions from YAML, keyed by key type:
//
//	major:
//	  - I-V-vi-IV
//	minor:
//	  - i iv v i
//	  - i bVI bIII bVII
func ReadLibrary(r io.Reader) (Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	lib := make(Library, len(raw))
	for name, shorthands := range raw {
		t, ok := key.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("suggest: unknown key type %q", name)
		}
		for _, s := range shorthands {
			p, err := Parse(s)
			if err != nil {
				return nil, err
			}
			lib[t] = append(lib[t], p)
		}
	}
	return lib, nil
}

// LoadLibrary adds the progressions in the YAML file at path to the built
// in ones. An empty path loads only the built in library.
func LoadLibrary(path string) (Library, error) {
	lib := DefaultLibrary()
	if path == "" {
		return lib, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extra, err := ReadLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib.Merge(extra), nil
}
