package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileSpec mirrors the on-disk TOML layout of a custom profile:
//
//	name = "kitchen-printer"
//
//	[[pages]]
//	encoding = "cp437"
//	selector = 0
//
//	[[pages]]
//	encoding = "cp852"
//	selector = 18
type fileSpec struct {
	Name  string     `toml:"name"`
	Pages []pageSpec `toml:"pages"`
}

type pageSpec struct {
	Encoding string `toml:"encoding"`
	Selector int    `toml:"selector"`
}

// Load reads a custom printer profile from a TOML file. Encoding names
// are resolved against the registry, so any identifier Canonical
// accepts works; selectors must be unique and fit in one byte.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var spec fileSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("profile %s: name must be set", path)
	}
	if len(spec.Pages) == 0 {
		return nil, fmt.Errorf("profile %s: at least one [[pages]] entry is required", path)
	}

	pages := make([]CodePage, 0, len(spec.Pages))
	for i, ps := range spec.Pages {
		canon, ok := Canonical(ps.Encoding)
		if !ok {
			return nil, fmt.Errorf("profile %s: pages[%d]: unknown encoding %q (known: %s)",
				path, i, ps.Encoding, strings.Join(KnownEncodings(), ", "))
		}
		if ps.Selector < 0 || ps.Selector > 255 {
			return nil, fmt.Errorf("profile %s: pages[%d]: selector %d out of range 0-255", path, i, ps.Selector)
		}
		cm, _ := table(canon)
		pages = append(pages, CodePage{Name: canon, Selector: byte(ps.Selector), charmap: cm})
	}

	prof, err := New(name, pages)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return prof, nil
}
