// Package history keeps the append-only, optionally size-bounded log of
// resolved turns.
package history

import (
	"strconv"
	"time"

	"github.com/louisbranch/highnoon.cards/internal/engine/distance"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	"github.com/louisbranch/highnoon.cards/internal/engine/table"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Move is one resolved turn, immutable once appended.
type Move struct {
	Number      int               `json:"moveNumber"`
	Description string            `json:"description"`
	At          time.Time         `json:"dateTime"`
	Players     []player.Snapshot `json:"players"`
	Distances   []distance.Pair   `json:"playersDistances"`
	Table       table.Snapshot    `json:"gameTable"`
}

// History is the ordered move log for one session. When MaxMoves is set the
// oldest move is evicted after an append pushes the count past the cap.
//
// Move numbers are a persistent append counter, not a positional index:
// eviction never renumbers the remaining moves, so after eviction a move's
// number no longer matches its position in the log.
type History struct {
	moves    []Move
	maxMoves int
	counter  int
}

// New creates a history. maxMoves of zero means unbounded.
func New(maxMoves int) *History {
	return &History{maxMoves: maxMoves}
}

// Len returns the number of stored moves.
func (h *History) Len() int {
	return len(h.moves)
}

// MaxMoves returns the eviction cap, zero when unbounded.
func (h *History) MaxMoves() int {
	return h.maxMoves
}

// Moves returns the stored moves oldest first.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Last returns the most recently appended move.
func (h *History) Last() (Move, error) {
	if len(h.moves) == 0 {
		return Move{}, apperrors.New(apperrors.CodeHistoryInvalidMove, "history is empty")
	}
	return h.moves[len(h.moves)-1], nil
}

// Add appends a move. An explicit move number must be unique among stored
// moves; a zero number receives the next counter value. Returns the move as
// stored.
func (h *History) Add(move Move) (Move, error) {
	if move.Number < 0 {
		return Move{}, apperrors.New(apperrors.CodeHistoryInvalidMove,
			"move number must not be negative")
	}
	if move.Number != 0 {
		for _, stored := range h.moves {
			if stored.Number == move.Number {
				return Move{}, apperrors.WithMetadata(apperrors.CodeHistoryMoveNumberTaken,
					"move number already recorded",
					map[string]string{"number": strconv.Itoa(move.Number)})
			}
		}
		if move.Number > h.counter {
			h.counter = move.Number
		}
	} else {
		h.counter++
		move.Number = h.counter
	}
	if move.At.IsZero() {
		move.At = time.Now().UTC()
	}
	move.At = move.At.UTC().Truncate(time.Millisecond)

	h.moves = append(h.moves, move)
	if h.maxMoves > 0 && len(h.moves) > h.maxMoves {
		h.moves = h.moves[len(h.moves)-h.maxMoves:]
	}
	return move, nil
}

// Snapshot returns the stored moves oldest first.
func (h *History) Snapshot() []Move {
	return h.Moves()
}

// FromSnapshot rebuilds a history from stored moves, restoring the append
// counter from the highest stored number.
func FromSnapshot(moves []Move, maxMoves int) (*History, error) {
	restored := New(maxMoves)
	for _, move := range moves {
		if move.Number <= 0 {
			return nil, apperrors.New(apperrors.CodeHistoryInvalidMove,
				"stored move is missing its number")
		}
		if _, err := restored.Add(move); err != nil {
			return nil, err
		}
	}
	return restored, nil
}
