package session

import (
	"context"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/storage"
)

// Archive manages one live session and its durable snapshots.
type Archive struct {
	store   storage.SnapshotStore
	writer  *Writer
	current *Session
	opts    Options
}

// NewArchive creates an archive over a snapshot store.
func NewArchive(store storage.SnapshotStore, opts Options) *Archive {
	return &Archive{
		store:  store,
		writer: NewWriter(store),
		opts:   opts,
	}
}

// Current returns the live session, nil when none exists.
func (a *Archive) Current() *Session {
	return a.current
}

// CreateGameSession creates a fresh session. It fails while a session is in
// progress for this archive.
func (a *Archive) CreateGameSession() (*Session, error) {
	if a.current != nil && a.current.Status() {
		return nil, apperrors.New(apperrors.CodeRuleSessionActive,
			"a session is already in progress for this archive")
	}
	created, err := New(a.opts)
	if err != nil {
		return nil, err
	}
	a.current = created
	return created, nil
}

// SaveData persists the current session's document. The write is serialized
// with any other write for this session and completes before returning.
func (a *Archive) SaveData(ctx context.Context) error {
	if a.current == nil {
		return apperrors.New(apperrors.CodeRuleSessionInactive,
			"no session to save")
	}
	document, err := Encode(a.current.Document())
	if err != nil {
		return err
	}
	return a.writer.Write(ctx, a.current.Name(), a.current.Status(), document)
}

// LoadData restores a stored session and makes it current. A document that
// fails validation leaves the archive's state untouched, so a bad snapshot
// can never half-populate a session.
func (a *Archive) LoadData(ctx context.Context, name string) (*Session, error) {
	data, err := a.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	restored, err := Restore(name, doc, a.opts)
	if err != nil {
		return nil, err
	}
	a.current = restored
	return restored, nil
}

// List enumerates the stored sessions.
func (a *Archive) List(ctx context.Context) ([]storage.Info, error) {
	return a.store.List(ctx)
}

// Close drains pending writes.
func (a *Archive) Close() {
	a.writer.Close()
}
