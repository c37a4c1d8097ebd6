package profile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"platen/internal/profile"
)

func TestBuiltinEpson(t *testing.T) {
	prof, ok := profile.Builtin("epson")
	if !ok {
		t.Fatal("expected epson profile to exist")
	}
	if prof.Name() != "epson" {
		t.Fatalf("unexpected profile name %q", prof.Name())
	}
	page, ok := prof.Lookup("cp437")
	if !ok {
		t.Fatal("expected cp437 in epson profile")
	}
	if page.Selector != 0 {
		t.Fatalf("cp437 selector = %d, want 0", page.Selector)
	}
	if page, ok := prof.Lookup("cp852"); !ok || page.Selector != 18 {
		t.Fatalf("cp852 lookup = %+v %v, want selector 18", page, ok)
	}
}

func TestBuiltinDefaultAlias(t *testing.T) {
	def, ok := profile.Builtin("default")
	if !ok {
		t.Fatal("expected default alias to resolve")
	}
	if def.Name() != profile.DefaultProfile {
		t.Fatalf("default resolved to %q, want %q", def.Name(), profile.DefaultProfile)
	}
	if _, ok := profile.Builtin("no-such-printer"); ok {
		t.Fatal("expected unknown profile to be rejected")
	}
}

func TestBuiltinNamesSorted(t *testing.T) {
	names := profile.BuiltinNames()
	if len(names) < 2 {
		t.Fatalf("expected at least two built-ins, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestCodePageEncode(t *testing.T) {
	prof, _ := profile.Builtin("epson")
	cp437, _ := prof.Lookup("cp437")

	b, ok := cp437.Encode('é')
	if !ok || b != 0x82 {
		t.Fatalf("cp437 é = %#x %v, want 0x82 true", b, ok)
	}
	if _, ok := cp437.Encode('Ж'); ok {
		t.Fatal("expected cyrillic to be outside cp437")
	}

	cp866, _ := prof.Lookup("cp866")
	b, ok = cp866.Encode('Ж')
	if !ok || b != 0x86 {
		t.Fatalf("cp866 Ж = %#x %v, want 0x86 true", b, ok)
	}
}

func TestEncodeReplaceSubstitutesPageReplacement(t *testing.T) {
	prof, _ := profile.Builtin("epson")
	cp437, _ := prof.Lookup("cp437")

	got := cp437.EncodeReplace("aЖb")
	want := []byte{'a', profile.ReplacementByte, 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeReplace = %v, want %v", got, want)
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"cp437", "cp437", true},
		{"CP-437", "cp437", true},
		{"cp_852", "cp852", true},
		{"Windows-1252", "windows-1252", true},
		{"IBM437", "cp437", true},
		{"ISO-8859-1", "iso8859-1", true},
		{"utf-8", "", false},
		{"shift_jis", "", false},
		{"nonsense", "", false},
	}
	for _, tc := range cases {
		got, ok := profile.Canonical(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Canonical(%q) = %q %v, want %q %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolve(t *testing.T) {
	prof, _ := profile.Builtin("epson")

	canon, err := prof.Resolve("CP437")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if canon != "cp437" {
		t.Fatalf("Resolve = %q, want cp437", canon)
	}

	_, err = prof.Resolve("koi8-r")
	if err == nil {
		t.Fatal("expected error for encoding outside the profile")
	}
	var unsupported *profile.UnsupportedEncodingError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedEncodingError, got %T", err)
	}
	if unsupported.Name != "koi8-r" {
		t.Fatalf("error name = %q", unsupported.Name)
	}
	if len(unsupported.Valid) != prof.Len() {
		t.Fatalf("error lists %d names, profile has %d", len(unsupported.Valid), prof.Len())
	}
	if !strings.Contains(err.Error(), "cp437") {
		t.Fatalf("error message should enumerate valid names: %v", err)
	}
}

func TestLoadCustomProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "printer.toml")
	doc := `name = "kitchen"

[[pages]]
encoding = "CP437"
selector = 0

[[pages]]
encoding = "ibm866"
selector = 17
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	prof, err := profile.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if prof.Name() != "kitchen" {
		t.Fatalf("name = %q", prof.Name())
	}
	if got := prof.Names(); len(got) != 2 || got[0] != "cp437" || got[1] != "cp866" {
		t.Fatalf("names = %v", got)
	}
}

func TestLoadRejectsBadProfiles(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown-encoding", "name = \"x\"\n[[pages]]\nencoding = \"ebcdic-037\"\nselector = 0\n"},
		{"selector-range", "name = \"x\"\n[[pages]]\nencoding = \"cp437\"\nselector = 300\n"},
		{"no-pages", "name = \"x\"\n"},
		{"no-name", "[[pages]]\nencoding = \"cp437\"\nselector = 0\n"},
		{"duplicate-page", "name = \"x\"\n[[pages]]\nencoding = \"cp437\"\nselector = 0\n[[pages]]\nencoding = \"CP-437\"\nselector = 1\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name+".toml")
		if err := os.WriteFile(path, []byte(tc.doc), 0o644); err != nil {
			t.Fatalf("write %s: %v", tc.name, err)
		}
		if _, err := profile.Load(path); err == nil {
			t.Fatalf("%s: expected Load to fail", tc.name)
		}
	}
}
