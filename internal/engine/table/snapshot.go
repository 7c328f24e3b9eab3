package table

import (
	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Snapshot is the wire form of the game table. Deck contents are not
// persisted, only the count.
type Snapshot struct {
	CountDeckMain    int             `json:"countDeckMain"`
	CountDiscardPile int             `json:"countDiscardPile"`
	Timer            int             `json:"timer,omitempty"`
	CollectionCards  []card.Snapshot `json:"collectionCards"`
}

// Snapshot returns the table's wire form.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		CountDeckMain:    t.DeckMainCount(),
		CountDiscardPile: t.discardCount,
		Timer:            t.TurnTimer,
		CollectionCards:  t.played.Snapshot(),
	}
}

// FromSnapshot rebuilds a table from its wire form. The restored table has no
// draw deck attached; callers attach one before draw operations.
func FromSnapshot(snap Snapshot) (*Table, error) {
	if snap.CountDeckMain < 0 || snap.CountDiscardPile < 0 {
		return nil, apperrors.New(apperrors.CodeTableInvalidCount,
			"stored deck counts must not be negative")
	}
	played, err := card.CollectionFromSnapshot(snap.CollectionCards)
	if err != nil {
		return nil, err
	}
	return &Table{
		deck:         nil,
		played:       played,
		deckCount:    snap.CountDeckMain,
		discardCount: snap.CountDiscardPile,
		TurnTimer:    snap.Timer,
	}, nil
}
