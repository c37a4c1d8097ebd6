package profile

import (
	"fmt"
	"strings"
)

// UnsupportedEncodingError reports an encoding identifier that either
// does not resolve to a known encoding or is not offered by the
// profile it was resolved against. Valid lists every name the profile
// does offer, in declared order.
type UnsupportedEncodingError struct {
	Name    string
	Profile string
	Valid   []string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("encoding %q cannot be used with profile %q; valid encodings are: %s",
		e.Name, e.Profile, strings.Join(e.Valid, ", "))
}

// Resolve normalizes a caller-supplied encoding identifier to its
// canonical name and verifies the profile offers it. It has no side
// effects.
func (p *Profile) Resolve(name string) (string, error) {
	if canon, ok := Canonical(name); ok {
		if _, present := p.Lookup(canon); present {
			return canon, nil
		}
	}
	return "", &UnsupportedEncodingError{Name: name, Profile: p.name, Valid: p.Names()}
}
