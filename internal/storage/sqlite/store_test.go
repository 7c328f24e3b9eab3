package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	document := []byte(`{"head":{"statusGame":true},"players":[],"history":[]}`)
	if err := store.Save(context.Background(), "20260704T120000.000", true, document); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(context.Background(), "20260704T120000.000")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, document) {
		t.Fatalf("document = %s, want %s", got, document)
	}
}

func TestSaveReplacesExistingDocument(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, "session", false, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, "session", true, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load(ctx, "session")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("document = %s, want the replacement", got)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("listed %d sessions, want 1", len(infos))
	}
	if !infos[0].StatusGame {
		t.Fatal("status flag not replaced")
	}
	if infos[0].SavedAt.IsZero() {
		t.Fatal("saved_at not recorded")
	}
}

func TestLoadUnknownSession(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Load(context.Background(), "missing")
	if apperrors.CodeOf(err) != apperrors.CodeSnapshotNotFound {
		t.Fatalf("expected SNAPSHOT_NOT_FOUND, got %v", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	for _, name := range []string{"20260704T130000.000", "20260704T110000.000", "20260704T120000.000"} {
		if err := store.Save(ctx, name, false, []byte("{}")); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("listed %d sessions, want 3", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i].Name < infos[i-1].Name {
			t.Fatalf("names out of order: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, "session", false, []byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "session"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "session"); apperrors.CodeOf(err) != apperrors.CodeSnapshotNotFound {
		t.Fatalf("expected SNAPSHOT_NOT_FOUND after delete, got %v", err)
	}
	if err := store.Delete(ctx, "session"); apperrors.CodeOf(err) != apperrors.CodeSnapshotNotFound {
		t.Fatalf("expected SNAPSHOT_NOT_FOUND for second delete, got %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
