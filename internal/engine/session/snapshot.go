package session

import (
	"encoding/json"
	"time"

	"github.com/louisbranch/highnoon.cards/internal/engine/distance"
	"github.com/louisbranch/highnoon.cards/internal/engine/history"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	"github.com/louisbranch/highnoon.cards/internal/engine/roster"
	"github.com/louisbranch/highnoon.cards/internal/engine/table"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Head is the lifecycle section of a stored session document.
type Head struct {
	StatusGame bool `json:"statusGame"`
}

// SeatRef is the slim per-player entry in the document's players section.
// Full player state travels inside each history move.
type SeatRef struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	SessionToken *string `json:"sessionToken"`
}

// Document is the single JSON document persisted per session.
type Document struct {
	Head    Head           `json:"head"`
	Players []SeatRef      `json:"players"`
	History []history.Move `json:"history"`
}

// Document builds the session's persistable form.
func (s *Session) Document() Document {
	doc := Document{
		Head:    Head{StatusGame: s.status},
		Players: []SeatRef{},
		History: s.history.Snapshot(),
	}
	for _, p := range s.roster.Players() {
		ref := SeatRef{ID: p.ID(), Name: p.Name()}
		if token := p.SessionToken(); token != "" {
			ref.SessionToken = &token
		}
		doc.Players = append(doc.Players, ref)
	}
	return doc
}

// Encode marshals a document for storage.
func Encode(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSnapshotMalformed,
			"encode session document", err)
	}
	return data, nil
}

// Decode parses and strictly validates a stored session document. Every
// top-level section must be present and well-typed; a failed decode returns
// an error and no partial document.
func Decode(data []byte) (Document, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return Document{}, apperrors.Wrap(apperrors.CodeSnapshotMalformed,
			"session document is not a JSON object", err)
	}

	for _, section := range []string{"head", "players", "history"} {
		raw, ok := sections[section]
		if !ok || string(raw) == "null" {
			return Document{}, apperrors.WithMetadata(apperrors.CodeSnapshotSectionMissing,
				"session document is missing a required section",
				map[string]string{"section": section})
		}
	}

	var doc Document
	if err := json.Unmarshal(sections["head"], &doc.Head); err != nil {
		return Document{}, malformed("head", err)
	}
	if err := json.Unmarshal(sections["players"], &doc.Players); err != nil {
		return Document{}, malformed("players", err)
	}
	if err := json.Unmarshal(sections["history"], &doc.History); err != nil {
		return Document{}, malformed("history", err)
	}
	return doc, nil
}

func malformed(section string, cause error) error {
	return apperrors.Wrap(apperrors.CodeSnapshotMalformed,
		"session document section "+section+" is ill-typed", cause)
}

// Restore rebuilds a session from a decoded document. The roster, distance
// table, and game table come from the latest history move when one exists;
// otherwise players are reseated from the slim refs with fresh state. The
// restored table carries stored counts but no draw deck; callers attach one
// before draw operations resume.
func Restore(name string, doc Document, opts Options) (*Session, error) {
	restored, err := New(opts)
	if err != nil {
		return nil, err
	}
	restored.name = name
	if createdAt, err := time.Parse(nameLayout, name); err == nil {
		restored.createdAt = createdAt.UTC()
	}
	restored.status = doc.Head.StatusGame

	if restored.history, err = history.FromSnapshot(doc.History, opts.MaxMoves); err != nil {
		return nil, err
	}

	if len(doc.History) > 0 {
		last := doc.History[len(doc.History)-1]
		if restored.roster, err = roster.FromSnapshot(last.Players); err != nil {
			return nil, err
		}
		restored.distances = distance.FromSnapshot(last.Distances)
		if restored.table, err = table.FromSnapshot(last.Table); err != nil {
			return nil, err
		}
		return restored, nil
	}

	restored.roster = roster.New()
	for _, ref := range doc.Players {
		p, err := player.New(ref.ID, ref.Name, opts.maxLives())
		if err != nil {
			return nil, err
		}
		if ref.SessionToken != nil {
			p.SetSessionToken(*ref.SessionToken)
		}
		if err := restored.roster.Add(p); err != nil {
			return nil, err
		}
	}
	restored.distances.Recompute(restored.roster)
	return restored, nil
}
