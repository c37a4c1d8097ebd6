package profile

import (
	"fmt"
)

// Profile is the read-only set of code pages one printer supports, in
// declared order. Declared order, not selector order, is what the
// encoding engine iterates; the two usually coincide but nothing here
// assumes it.
type Profile struct {
	name   string
	pages  []CodePage
	byName map[string]int
}

// New builds a profile from the given pages. Page names must be unique.
func New(name string, pages []CodePage) (*Profile, error) {
	byName := make(map[string]int, len(pages))
	for i, page := range pages {
		if page.Name == "" {
			return nil, fmt.Errorf("profile %q: page %d has no name", name, i)
		}
		if page.charmap == nil {
			return nil, fmt.Errorf("profile %q: page %q has no character table", name, page.Name)
		}
		if _, dup := byName[page.Name]; dup {
			return nil, fmt.Errorf("profile %q: duplicate code page %q", name, page.Name)
		}
		byName[page.Name] = i
	}
	copied := make([]CodePage, len(pages))
	copy(copied, pages)
	return &Profile{name: name, pages: copied, byName: byName}, nil
}

// Pair declares one code page as an encoding identifier plus the
// device selector that activates it.
type Pair struct {
	Encoding string
	Selector byte
}

// FromPairs builds a profile from encoding/selector pairs. Encoding
// identifiers are resolved against the registry, so anything Canonical
// accepts works.
func FromPairs(name string, pairs []Pair) (*Profile, error) {
	pages := make([]CodePage, 0, len(pairs))
	for _, pair := range pairs {
		canon, ok := Canonical(pair.Encoding)
		if !ok {
			return nil, &UnsupportedEncodingError{Name: pair.Encoding, Profile: name, Valid: KnownEncodings()}
		}
		cm, _ := table(canon)
		pages = append(pages, CodePage{Name: canon, Selector: pair.Selector, charmap: cm})
	}
	return New(name, pages)
}

// Name returns the profile's name.
func (p *Profile) Name() string { return p.name }

// Len returns the number of code pages.
func (p *Profile) Len() int { return len(p.pages) }

// Pages returns the code pages in declared order.
func (p *Profile) Pages() []CodePage {
	out := make([]CodePage, len(p.pages))
	copy(out, p.pages)
	return out
}

// Lookup returns the code page with the given canonical name.
func (p *Profile) Lookup(name string) (CodePage, bool) {
	i, ok := p.byName[name]
	if !ok {
		return CodePage{}, false
	}
	return p.pages[i], true
}

// Names returns the canonical page names in declared order.
func (p *Profile) Names() []string {
	out := make([]string, len(p.pages))
	for i, page := range p.pages {
		out[i] = page.Name
	}
	return out
}
