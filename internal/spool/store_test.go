package spool_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"platen/internal/spool"
)

func openStore(t *testing.T) *spool.Store {
	t.Helper()
	store, err := spool.Open(filepath.Join(t.TempDir(), "spool.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "epson", "héllo Жизнь")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if job.ID == 0 || job.UUID == "" {
		t.Fatalf("job missing identifiers: %+v", job)
	}
	if job.Status != spool.StatusPending {
		t.Fatalf("status = %q, want pending", job.Status)
	}
	if job.Text != "héllo Жизнь" || job.Profile != "epson" {
		t.Fatalf("payload mismatch: %+v", job)
	}
	if job.CreatedAt.IsZero() || !job.PrintedAt.IsZero() {
		t.Fatalf("timestamps wrong: %+v", job)
	}

	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UUID != job.UUID {
		t.Fatalf("round trip mismatch: %q vs %q", got.UUID, job.UUID)
	}
}

func TestGetMissing(t *testing.T) {
	store := openStore(t)
	_, err := store.GetByID(context.Background(), 99)
	if !errors.Is(err, spool.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNextPendingOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "epson", "first")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "epson", "second"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	next, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("NextPending = %+v, want job %d", next, first.ID)
	}
}

func TestLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Add(ctx, "simple", "receipt")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := store.MarkFailed(ctx, job.ID, "device busy"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	got, _ := store.GetByID(ctx, job.ID)
	if got.Status != spool.StatusFailed || got.Error != "device busy" {
		t.Fatalf("after fail: %+v", got)
	}

	if err := store.Retry(ctx, job.ID); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	got, _ = store.GetByID(ctx, job.ID)
	if got.Status != spool.StatusPending || got.Error != "" {
		t.Fatalf("after retry: %+v", got)
	}

	if err := store.MarkPrinted(ctx, job.ID); err != nil {
		t.Fatalf("MarkPrinted: %v", err)
	}
	got, _ = store.GetByID(ctx, job.ID)
	if got.Status != spool.StatusPrinted || got.PrintedAt.IsZero() {
		t.Fatalf("after print: %+v", got)
	}

	// A printed job cannot be retried.
	if err := store.Retry(ctx, job.ID); !errors.Is(err, spool.ErrNotFound) {
		t.Fatalf("Retry on printed job = %v, want ErrNotFound", err)
	}

	next, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if next != nil {
		t.Fatalf("spool should be drained, got %+v", next)
	}
}

func TestListFilterAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	a, _ := store.Add(ctx, "epson", "a")
	b, _ := store.Add(ctx, "epson", "b")
	if _, err := store.Add(ctx, "epson", "c"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MarkPrinted(ctx, a.ID); err != nil {
		t.Fatalf("MarkPrinted: %v", err)
	}
	if err := store.MarkFailed(ctx, b.ID, "jam"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	pending, err := store.List(ctx, spool.StatusPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pending) != 1 || pending[0].Text != "c" {
		t.Fatalf("pending = %+v", pending)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(all))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[spool.StatusPending] != 1 || stats[spool.StatusPrinted] != 1 || stats[spool.StatusFailed] != 1 {
		t.Fatalf("stats = %v", stats)
	}

	removed, err := store.Clear(ctx, spool.StatusPrinted)
	if err != nil {
		t.Fatalf("Clear printed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	removed, err = store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
}

func TestRemove(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, _ := store.Add(ctx, "epson", "x")
	if err := store.Remove(ctx, job.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, job.ID); !errors.Is(err, spool.ErrNotFound) {
		t.Fatalf("second Remove = %v, want ErrNotFound", err)
	}
}
