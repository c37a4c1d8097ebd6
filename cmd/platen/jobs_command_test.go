package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"platen/internal/spool"
)

func TestSpoolLifecycleThroughCLI(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"print", "--spool", "first receipt"}, env.configPath)
	if err != nil {
		t.Fatalf("print --spool: %v", err)
	}
	requireContains(t, out, "Spooled job 1")

	if _, _, err := runCLI(t, []string{"print", "--spool", "second receipt"}, env.configPath); err != nil {
		t.Fatalf("print --spool: %v", err)
	}

	out, _, err = runCLI(t, []string{"jobs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "first receipt")
	requireContains(t, out, "2 pending, 0 printed, 0 failed")

	out, _, err = runCLI(t, []string{"jobs", "remove", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs remove: %v", err)
	}
	requireContains(t, out, "Job 1 removed")

	if _, _, err := runCLI(t, []string{"jobs", "remove", "1"}, env.configPath); err == nil {
		t.Fatal("expected error removing a job twice")
	}

	out, _, err = runCLI(t, []string{"jobs", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs clear: %v", err)
	}
	requireContains(t, out, "Removed 1 job(s)")

	out, _, err = runCLI(t, []string{"jobs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "Spool is empty")
}

func TestJobsRetryRequiresFailedJob(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"print", "--spool", "receipt"}, env.configPath); err != nil {
		t.Fatalf("print --spool: %v", err)
	}

	// Pending jobs are not retryable.
	if _, _, err := runCLI(t, []string{"jobs", "retry", "1"}, env.configPath); err == nil {
		t.Fatal("expected error retrying a pending job")
	}
}

func TestDrainSpoolCarriesAndReassertsActivePage(t *testing.T) {
	env := setupCLITestEnv(t)

	devicePath := filepath.Join(env.baseDir, "lp0")
	if err := os.WriteFile(devicePath, nil, 0o644); err != nil {
		t.Fatalf("create device file: %v", err)
	}

	// CJK fallback: any job whose text needs it fails with no page able
	// to encode the substitute either.
	content := fmt.Sprintf(`[printer]
profile = "epson"
device = %q

[encoding]
fallback = "中"

[spool]
enabled = true
path = %q
`, devicePath, env.spoolPath)
	configPath := env.configPath
	if err := writeFile(configPath, content); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cctx := newCommandContext(&configPath)
	store, err := cctx.openSpool()
	if err != nil {
		t.Fatalf("open spool: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, text := range []string{"é", "à", "Ж中", "é"} {
		if _, err := store.Add(ctx, "epson", text); err != nil {
			t.Fatalf("Add %q: %v", text, err)
		}
	}

	var out bytes.Buffer
	if err := drainSpool(ctx, cctx, store, devicePath, "", false, &out); err != nil {
		t.Fatalf("drainSpool: %v", err)
	}
	requireContains(t, out.String(), "Printed 3 job(s), 1 failed")

	data, err := os.ReadFile(devicePath)
	if err != nil {
		t.Fatalf("read device: %v", err)
	}
	want := []byte{
		0x1B, 0x74, 0, 0x82, // job 1: switch to cp437, é
		0x85, // job 2: carried page, à with no switch
		0x1B, 0x74, 17, 0x86, // job 3: switch to cp866, Ж; then fails on 中
		0x1B, 0x74, 0, 0x82, // job 4: page re-asserted after the failure
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("device bytes = %v, want %v", data, want)
	}

	failedJob, err := store.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if failedJob.Status != spool.StatusFailed {
		t.Fatalf("job 3 status = %q, want failed", failedJob.Status)
	}
	requireContains(t, failedJob.Error, "fallback")

	for _, id := range []int64{1, 2, 4} {
		job, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID %d: %v", id, err)
		}
		if job.Status != spool.StatusPrinted {
			t.Fatalf("job %d status = %q, want printed", id, job.Status)
		}
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	got := truncate("héllo wörld é", 8)
	if got != "héllo..." {
		t.Fatalf("truncate = %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Fatalf("short input = %q", got)
	}
	if got := truncate("a\nb", 8); got != "a b" {
		t.Fatalf("newline handling = %q", got)
	}
}

func TestProfilesCommands(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"profiles", "list"}, "")
	if err != nil {
		t.Fatalf("profiles list: %v", err)
	}
	requireContains(t, out, "epson")
	requireContains(t, out, "simple")

	out, _, err = runCLI(t, []string{"profiles", "show", "simple"}, "")
	if err != nil {
		t.Fatalf("profiles show: %v", err)
	}
	requireContains(t, out, "Profile simple (3 code pages)")
	requireContains(t, out, "windows-1252")

	out, _, err = runCLI(t, []string{"profiles", "encodings"}, "")
	if err != nil {
		t.Fatalf("profiles encodings: %v", err)
	}
	requireContains(t, out, "cp437")
	requireContains(t, out, "koi8-r")
}
