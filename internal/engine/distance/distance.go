// Package distance maintains the pairwise circular-seating distances between
// all seated players.
//
// The table stores plain (player, player, distance) triples generated from
// seat order. Equipment modifiers are never written here; the rules package
// applies them per action on top of the stored value.
package distance

import (
	"github.com/louisbranch/highnoon.cards/internal/engine/roster"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Pair is one stored distance triple. Names are kept in insertion order of
// the computing pass; lookup treats the pair as unordered.
type Pair struct {
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
	Distance    int    `json:"distance"`
}

// Table holds the pairwise distances for one session.
type Table struct {
	pairs []Pair
	// pass tags entries touched by the current recompute, so a pass can
	// tighten but never loosen a value it already produced.
	pass    int
	touched map[string]int
}

// New creates an empty distance table.
func New() *Table {
	return &Table{touched: make(map[string]int)}
}

// Pairs returns the stored triples in table order.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Between returns the stored distance between two players, in either order.
func (t *Table) Between(a, b string) (int, error) {
	for _, pair := range t.pairs {
		if (pair.Player1Name == a && pair.Player2Name == b) ||
			(pair.Player1Name == b && pair.Player2Name == a) {
			return pair.Distance, nil
		}
	}
	return 0, apperrors.WithMetadata(apperrors.CodeDistancePairMissing,
		"no stored distance for player pair",
		map[string]string{"player1": a, "player2": b})
}

// Recompute rebuilds the table from the roster's seat order. For seats i and
// j over N players the stored value is min(|j-i|, N-|j-i|). Entries for
// departed players are dropped, existing pairs are updated in place without
// duplication, and within one pass a value may only tighten.
func (t *Table) Recompute(r *roster.Roster) {
	players := r.Players()
	t.pass++

	for i := range players {
		for j := range players {
			if i == j {
				continue
			}
			right := j - i
			if right < 0 {
				right = -right
			}
			left := len(players) - right
			value := right
			if left < right {
				value = left
			}
			t.upsert(players[i].Name(), players[j].Name(), value)
		}
	}

	kept := t.pairs[:0]
	for _, pair := range t.pairs {
		if t.touched[key(pair.Player1Name, pair.Player2Name)] == t.pass {
			kept = append(kept, pair)
		}
	}
	t.pairs = kept
}

// upsert records a value for an unordered pair. A pair first seen this pass
// takes the value outright; a pair already written this pass only tightens.
func (t *Table) upsert(a, b string, value int) {
	k := key(a, b)
	for i, pair := range t.pairs {
		if key(pair.Player1Name, pair.Player2Name) != k {
			continue
		}
		if t.touched[k] == t.pass {
			if value < pair.Distance {
				t.pairs[i].Distance = value
			}
		} else {
			t.pairs[i].Distance = value
			t.touched[k] = t.pass
		}
		return
	}
	t.pairs = append(t.pairs, Pair{Player1Name: a, Player2Name: b, Distance: value})
	t.touched[k] = t.pass
}

func key(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Snapshot returns the stored triples.
func (t *Table) Snapshot() []Pair {
	return t.Pairs()
}

// FromSnapshot rebuilds a table from stored triples.
func FromSnapshot(pairs []Pair) *Table {
	restored := New()
	restored.pairs = make([]Pair, len(pairs))
	copy(restored.pairs, pairs)
	return restored
}
