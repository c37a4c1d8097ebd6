package profile

import (
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// known maps canonical encoding names to the charmap tables backing
// them. Only single-byte encodings belong here; multi-byte device code
// pages (Shift-JIS, GB18030, ...) are out of scope.
var known = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"cp852":        charmap.CodePage852,
	"cp855":        charmap.CodePage855,
	"cp858":        charmap.CodePage858,
	"cp860":        charmap.CodePage860,
	"cp862":        charmap.CodePage862,
	"cp863":        charmap.CodePage863,
	"cp865":        charmap.CodePage865,
	"cp866":        charmap.CodePage866,
	"iso8859-1":    charmap.ISO8859_1,
	"iso8859-2":    charmap.ISO8859_2,
	"iso8859-5":    charmap.ISO8859_5,
	"iso8859-7":    charmap.ISO8859_7,
	"iso8859-9":    charmap.ISO8859_9,
	"iso8859-15":   charmap.ISO8859_15,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"windows-874":  charmap.Windows874,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
}

var squashed map[string]string

func init() {
	squashed = make(map[string]string, len(known))
	for name := range known {
		squashed[squash(name)] = name
	}
}

// squash strips the punctuation and case differences encoding names are
// commonly written with, so "CP-437", "cp_437", and "cp437" compare equal.
func squash(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '-', '_', ' ':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonical resolves a caller-supplied encoding identifier to the
// canonical name used by this registry. Besides case and punctuation
// normalization it consults the IANA character set registry, so IANA
// names and aliases such as "IBM437" or "latin1" resolve too.
func Canonical(name string) (string, bool) {
	if canon, ok := squashed[squash(name)]; ok {
		return canon, true
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", false
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return "", false
	}
	for canon, table := range known {
		if table == cm {
			return canon, true
		}
	}
	return "", false
}

// KnownEncodings returns the canonical names of every encoding the
// registry can back, sorted.
func KnownEncodings() []string {
	out := make([]string, 0, len(known))
	for name := range known {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// table returns the charmap behind a canonical name.
func table(canonical string) (*charmap.Charmap, bool) {
	cm, ok := known[canonical]
	return cm, ok
}
