package main

import (
	"bytes"
	"strings"
	"testing"

	"platen/internal/encoding"
	"platen/internal/profile"
)

func TestReadText(t *testing.T) {
	text, err := readText([]string{"hello", "world"}, "", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("readText: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("text = %q", text)
	}

	text, err = readText(nil, "", strings.NewReader("from stdin"))
	if err != nil {
		t.Fatalf("readText stdin: %v", err)
	}
	if text != "from stdin" {
		t.Fatalf("text = %q", text)
	}
}

func TestRenderJobPlainASCII(t *testing.T) {
	prof, ok := profile.Builtin("simple")
	if !ok {
		t.Fatal("missing simple profile")
	}

	var buf bytes.Buffer
	opts := encoding.Options{Initial: "cp437"}
	if err := renderJob(&buf, prof, opts, "hello", false, 0, false); err != nil {
		t.Fatalf("renderJob: %v", err)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("bytes = %v", got)
	}
}

func TestRenderJobFraming(t *testing.T) {
	prof, ok := profile.Builtin("simple")
	if !ok {
		t.Fatal("missing simple profile")
	}

	var buf bytes.Buffer
	opts := encoding.Options{Initial: "cp437"}
	if err := renderJob(&buf, prof, opts, "hé", true, 2, true); err != nil {
		t.Fatalf("renderJob: %v", err)
	}

	want := []byte{
		0x1B, '@', // initialize
		'h', 0x82, // é in cp437
		0x1B, 'd', 2, // feed 2 lines
		0x1D, 'V', 0, // full cut
	}
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("bytes = %v, want %v", got, want)
	}
}

func TestSessionOptionsPinnedFromConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	content := `[printer]
profile = "epson"

[encoding]
pinned = "cp866"
`
	configPath := env.configPath
	if err := writeFile(configPath, content); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := newCommandContext(&configPath)
	opts, err := sessionOptions(ctx, printFlags{})
	if err != nil {
		t.Fatalf("sessionOptions: %v", err)
	}
	if !opts.Pin || opts.Initial != "cp866" {
		t.Fatalf("opts = %+v, want pinned to cp866", opts)
	}
	if opts.Fallback != '?' {
		t.Fatalf("fallback = %q", opts.Fallback)
	}
}

func TestSessionOptionsFlagOverridesPin(t *testing.T) {
	env := setupCLITestEnv(t)

	configPath := env.configPath
	ctx := newCommandContext(&configPath)
	opts, err := sessionOptions(ctx, printFlags{initial: "cp850", fallback: "*"})
	if err != nil {
		t.Fatalf("sessionOptions: %v", err)
	}
	if opts.Pin || opts.Initial != "cp850" || opts.Fallback != '*' {
		t.Fatalf("opts = %+v", opts)
	}

	if _, err := sessionOptions(ctx, printFlags{fallback: "??"}); err == nil {
		t.Fatal("expected error for multi-character fallback")
	}
}

func TestParseStatuses(t *testing.T) {
	statuses, err := parseStatuses([]string{"pending", "FAILED"})
	if err != nil {
		t.Fatalf("parseStatuses: %v", err)
	}
	if len(statuses) != 2 || statuses[0] != "pending" || statuses[1] != "failed" {
		t.Fatalf("statuses = %v", statuses)
	}

	if _, err := parseStatuses([]string{"done"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseJobIDs(t *testing.T) {
	ids, err := parseJobIDs([]string{"1", "42"})
	if err != nil {
		t.Fatalf("parseJobIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 42 {
		t.Fatalf("ids = %v", ids)
	}

	if _, err := parseJobIDs([]string{"zero"}); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := parseJobIDs([]string{"-3"}); err == nil {
		t.Fatal("expected error for negative id")
	}
}
