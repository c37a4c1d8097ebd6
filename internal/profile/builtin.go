package profile

import (
	"sort"
)

// epsonPages is the code page assignment of the Epson TM series,
// restricted to the single-byte pages the registry can back. Selector
// gaps are pages this build cannot encode (Katakana, Thai, multi-byte).
var epsonPages = []Pair{
	{"cp437", 0},
	{"cp850", 2},
	{"cp860", 3},
	{"cp863", 4},
	{"cp865", 5},
	{"iso8859-7", 15},
	{"windows-1252", 16},
	{"cp866", 17},
	{"cp852", 18},
	{"cp858", 19},
	{"cp855", 34},
	{"cp862", 36},
	{"iso8859-2", 39},
	{"iso8859-15", 40},
	{"windows-1250", 45},
	{"windows-1251", 46},
	{"windows-1253", 47},
	{"windows-1254", 48},
	{"windows-1255", 49},
	{"windows-1256", 50},
	{"windows-1257", 51},
	{"windows-1258", 52},
}

// simplePages covers the three pages virtually every ESC/POS clone
// implements. A safe choice when the printer model is unknown.
var simplePages = []Pair{
	{"cp437", 0},
	{"cp850", 2},
	{"windows-1252", 16},
}

var builtins = map[string][]Pair{
	"epson":  epsonPages,
	"simple": simplePages,
}

// DefaultProfile is the profile used when configuration names none.
const DefaultProfile = "epson"

// Builtin returns the named built-in profile. The name "default" is
// accepted as an alias for DefaultProfile.
func Builtin(name string) (*Profile, bool) {
	if name == "" || name == "default" {
		name = DefaultProfile
	}
	pairs, ok := builtins[name]
	if !ok {
		return nil, false
	}
	prof, err := FromPairs(name, pairs)
	if err != nil {
		// Built-in tables only reference registry encodings; a failure
		// here is a programming error.
		panic(err)
	}
	return prof, true
}

// BuiltinNames returns the names of all built-in profiles, sorted.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
