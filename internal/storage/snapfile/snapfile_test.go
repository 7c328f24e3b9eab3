package snapfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

func TestOpenRequiresDirectory(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty directory error")
	}
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "snapshots")
	if _, err := Open(dir); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	document := []byte(`{"head":{"statusGame":true},"players":[],"history":[]}`)
	if err := store.Save(ctx, "20260704T120000.000", true, document); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "20260704T120000.000")
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
	if err := store.Save(ctx, "session", false, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := store.Load(ctx, "session")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("document = %s, want the replacement", got)
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

func TestListReadsHeadStatus(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, "20260704T110000.000", false, []byte(`{"head":{"statusGame":false}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "20260704T120000.000", true, []byte(`{"head":{"statusGame":true}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(infos))
	}
	if infos[0].Name != "20260704T110000.000" || infos[0].StatusGame {
		t.Fatalf("first entry = %+v", infos[0])
	}
	if infos[1].Name != "20260704T120000.000" || !infos[1].StatusGame {
		t.Fatalf("second entry = %+v", infos[1])
	}
	if infos[0].SavedAt.IsZero() {
		t.Fatal("saved_at not populated from file metadata")
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
	if err := store.Delete(ctx, "session"); apperrors.CodeOf(err) != apperrors.CodeSnapshotNotFound {
		t.Fatalf("expected SNAPSHOT_NOT_FOUND for second delete, got %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}
