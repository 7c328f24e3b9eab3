// Package snapfile stores each session snapshot as one JSON document on
// disk, named after the session's archive key.
package snapfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
	"github.com/louisbranch/highnoon.cards/internal/storage"
)

const fileExt = ".json"

// Store keeps one file per session under a single directory.
type Store struct {
	dir string
}

// Open prepares a snapshot directory, creating it when missing.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &Store{dir: cleanDir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Save fully replaces the document stored under name. The write lands in a
// temporary file first, so a crash never leaves a truncated snapshot behind.
func (s *Store) Save(ctx context.Context, name string, statusGame bool, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("session name is required")
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load returns the document stored under name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	document, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, apperrors.WithMetadata(apperrors.CodeSnapshotNotFound,
			"no stored session", map[string]string{"session": name})
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return document, nil
}

// List enumerates stored sessions, oldest name first. The game status comes
// from each document's head section; a file that no longer parses is listed
// with the flag down rather than hidden.
func (s *Store) List(ctx context.Context) ([]storage.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot directory: %w", err)
	}

	var infos []storage.Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), fileExt)
		info := storage.Info{Name: name}
		if meta, err := entry.Info(); err == nil {
			info.SavedAt = meta.ModTime().UTC()
		}
		if document, err := os.ReadFile(s.path(name)); err == nil {
			info.StatusGame = headStatus(document)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete removes the document stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return apperrors.WithMetadata(apperrors.CodeSnapshotNotFound,
			"no stored session", map[string]string{"session": name})
	}
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	return nil
}

func headStatus(document []byte) bool {
	var peek struct {
		Head struct {
			StatusGame bool `json:"statusGame"`
		} `json:"head"`
	}
	if err := json.Unmarshal(document, &peek); err != nil {
		return false
	}
	return peek.Head.StatusGame
}
