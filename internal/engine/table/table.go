// Package table models the shared game table: the main draw deck, the
// discard count, the advisory turn timer, and every card currently in play
// with its owner attribution.
package table

import (
	"math/rand/v2"

	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Table is the shared zone for one session. Not safe for concurrent use.
type Table struct {
	deck   *card.Collection
	played *card.Collection

	// deckCount carries the stored deck size for tables restored from a
	// snapshot, where deck contents are not persisted.
	deckCount    int
	discardCount int

	// TurnTimer is an advisory per-turn timer in seconds, zero when unset.
	// The engine never acts on it; the transport layer consumes it.
	TurnTimer int
}

// New creates a table with the given draw deck.
func New(deck *card.Collection) *Table {
	if deck == nil {
		deck = card.NewCollection()
	}
	return &Table{deck: deck, played: card.NewCollection()}
}

// DeckMainCount returns the number of cards left in the draw deck.
func (t *Table) DeckMainCount() int {
	if t.deck == nil {
		return t.deckCount
	}
	return t.deck.Len()
}

// DiscardPileCount returns the number of discarded cards.
func (t *Table) DiscardPileCount() int {
	return t.discardCount
}

// Played returns the collection of cards currently in play.
func (t *Table) Played() *card.Collection {
	return t.played
}

// AttachDeck replaces the draw deck, used when a restored session gets a
// fresh deck since stored snapshots carry only the deck count.
func (t *Table) AttachDeck(deck *card.Collection) {
	t.deck = deck
}

// AddPlayerCard stamps the card with the player's name and places it into the
// played zone, keeping the card's id.
func (t *Table) AddPlayerCard(p *player.Player, c card.Card) (card.Card, error) {
	if p == nil {
		return card.Card{}, apperrors.New(apperrors.CodeTableInvalidInteraction,
			"a seated player is required to play a card")
	}
	if err := c.Validate(); err != nil {
		return card.Card{}, apperrors.Wrap(apperrors.CodeTableInvalidInteraction,
			"refusing to place an invalid card on the table", err)
	}
	c.OwnerName = p.Name()
	return t.played.Add(c, false)
}

// RemovePlayed takes a card out of the played zone without discarding it,
// used when equipment moves between players.
func (t *Table) RemovePlayed(cardID int) (card.Card, error) {
	return t.played.Remove(cardID)
}

// Discard moves a played card to the discard pile.
func (t *Table) Discard(cardID int) (card.Card, error) {
	removed, err := t.played.Remove(cardID)
	if err != nil {
		return card.Card{}, err
	}
	t.discardCount++
	return removed, nil
}

// DiscardCard counts a card that never reached the played zone (hand
// discards, spent instants) into the discard pile. Only the count is kept;
// discard contents never reappear in play.
func (t *Table) DiscardCard(_ card.Card) {
	t.discardCount++
}

// PullRandomCards removes and returns n cards drawn uniformly from the main
// deck.
func (t *Table) PullRandomCards(n int, rng *rand.Rand) ([]card.Card, error) {
	if t.deck == nil {
		return nil, apperrors.New(apperrors.CodeTableInvalidInteraction,
			"table has no draw deck attached")
	}
	return t.deck.PullRandom(n, rng)
}

// ShowRandomCards reveals n cards from the main deck without removing them.
// Reveal checks (Barrel, Jail, Dynamite) use this so a probabilistic check
// never consumes the deck's draw semantics.
func (t *Table) ShowRandomCards(n int, rng *rand.Rand) ([]card.Card, error) {
	if t.deck == nil {
		return nil, apperrors.New(apperrors.CodeTableInvalidInteraction,
			"table has no draw deck attached")
	}
	return t.deck.PeekRandom(n, rng)
}
