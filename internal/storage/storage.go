// Package storage defines the snapshot store contract the session archive
// writes through. Implementations: snapfile (one JSON document per session on
// disk) and sqlite.
package storage

import (
	"context"
	"time"
)

// Info describes one stored session without its document body.
type Info struct {
	// Name is the session's archive key, derived from its creation timestamp.
	Name string
	// StatusGame mirrors the stored head section's lifecycle flag.
	StatusGame bool
	// SavedAt is when the document was last written.
	SavedAt time.Time
}

// SnapshotStore persists one JSON snapshot document per session.
//
// Save must fully replace any previous document for the same name. Load for
// an unknown name fails with SNAPSHOT_NOT_FOUND.
type SnapshotStore interface {
	Save(ctx context.Context, name string, statusGame bool, document []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
}
