package profile

import (
	"golang.org/x/text/encoding/charmap"
)

// ReplacementByte is substituted for runes a specific code page cannot
// represent when encoding with replacement. It is ASCII SUB, the same
// substitute x/text uses for unmappable runes. This page-level
// replacement is distinct from the session-level fallback character,
// which is applied before a target page is ever chosen.
const ReplacementByte byte = 0x1A

// CodePage pairs a canonical encoding name with the one-byte device
// selector that activates it and the character table behind it.
type CodePage struct {
	// Name is the canonical encoding name, e.g. "cp437".
	Name string
	// Selector is the byte the ESC t command uses to activate the page.
	Selector byte

	charmap *charmap.Charmap
}

// Encode returns the page's byte for r and whether r is representable
// on this page.
func (p CodePage) Encode(r rune) (byte, bool) {
	if p.charmap == nil {
		return 0, false
	}
	return p.charmap.EncodeRune(r)
}

// EncodeReplace encodes text under this page, substituting
// ReplacementByte for every rune outside the page's repertoire.
func (p CodePage) EncodeReplace(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := p.Encode(r)
		if !ok {
			b = ReplacementByte
		}
		out = append(out, b)
	}
	return out
}
