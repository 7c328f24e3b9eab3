package card

import (
	"math/rand/v2"
	"strconv"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Collection is an ordered, id-indexed set of cards with monotonic id
// allocation. No two cards in the same collection share an id.
type Collection struct {
	cards  []Card
	nextID int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{nextID: 1}
}

// Len returns the number of cards in the collection.
func (c *Collection) Len() int {
	return len(c.cards)
}

// Cards returns a copy of the cards in collection order.
func (c *Collection) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Add validates and inserts a card. A zero id always receives the next free
// id. An explicit colliding id receives a fresh id when overwriteID is true,
// and fails with CARD_ID_DUPLICATE otherwise.
func (c *Collection) Add(card Card, overwriteID bool) (Card, error) {
	if err := card.Validate(); err != nil {
		return Card{}, err
	}
	if card.ID == 0 {
		card.ID = c.allocateID()
	} else if c.hasID(card.ID) {
		if !overwriteID {
			return Card{}, apperrors.WithMetadata(apperrors.CodeCardIDDuplicate,
				"card id already present in collection",
				map[string]string{"id": strconv.Itoa(card.ID)})
		}
		card.ID = c.allocateID()
	}
	c.cards = append(c.cards, card)
	if card.ID >= c.nextID {
		c.nextID = card.ID + 1
	}
	return card, nil
}

// Remove deletes the card with the given id and returns it.
func (c *Collection) Remove(id int) (Card, error) {
	for i, card := range c.cards {
		if card.ID == id {
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			return card, nil
		}
	}
	return Card{}, notFound(id)
}

// ByID returns the card with the given id.
func (c *Collection) ByID(id int) (Card, error) {
	for _, card := range c.cards {
		if card.ID == id {
			return card, nil
		}
	}
	return Card{}, notFound(id)
}

// ByName returns the first card with the given name.
func (c *Collection) ByName(name string) (Card, error) {
	for _, card := range c.cards {
		if card.Name == name {
			return card, nil
		}
	}
	return Card{}, apperrors.WithMetadata(apperrors.CodeCardNotFound,
		"card name not present in collection",
		map[string]string{"card": name})
}

// ByKind returns every card of the given kind, in collection order.
// An empty result is not an error.
func (c *Collection) ByKind(kind Kind) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.Kind == kind {
			out = append(out, card)
		}
	}
	return out
}

// PullRandom removes and returns n distinct cards chosen uniformly without
// replacement. When n exceeds the collection size it fails with
// COLLECTION_INSUFFICIENT_CARDS and leaves the collection unchanged.
func (c *Collection) PullRandom(n int, rng *rand.Rand) ([]Card, error) {
	indexes, err := c.sampleIndexes(n, rng)
	if err != nil {
		return nil, err
	}
	pulled := make([]Card, 0, n)
	for _, idx := range indexes {
		pulled = append(pulled, c.cards[idx])
	}
	remaining := make([]Card, 0, len(c.cards)-n)
	picked := make(map[int]bool, n)
	for _, idx := range indexes {
		picked[idx] = true
	}
	for i, card := range c.cards {
		if !picked[i] {
			remaining = append(remaining, card)
		}
	}
	c.cards = remaining
	return pulled, nil
}

// PeekRandom returns n distinct cards chosen uniformly without removing them.
// Reveal checks use this so a peek never consumes draw-deck semantics.
func (c *Collection) PeekRandom(n int, rng *rand.Rand) ([]Card, error) {
	indexes, err := c.sampleIndexes(n, rng)
	if err != nil {
		return nil, err
	}
	out := make([]Card, 0, n)
	for _, idx := range indexes {
		out = append(out, c.cards[idx])
	}
	return out, nil
}

func (c *Collection) sampleIndexes(n int, rng *rand.Rand) ([]int, error) {
	if n < 0 || n > len(c.cards) {
		return nil, apperrors.WithMetadata(apperrors.CodeCollectionInsufficientCards,
			"not enough cards in collection",
			map[string]string{
				"requested": strconv.Itoa(n),
				"size":      strconv.Itoa(len(c.cards)),
			})
	}
	perm := make([]int, len(c.cards))
	for i := range perm {
		perm[i] = i
	}
	shuffle(perm, rng)
	return perm[:n], nil
}

func (c *Collection) allocateID() int {
	id := c.nextID
	for c.hasID(id) {
		id++
	}
	c.nextID = id + 1
	return id
}

func (c *Collection) hasID(id int) bool {
	for _, card := range c.cards {
		if card.ID == id {
			return true
		}
	}
	return false
}

func notFound(id int) error {
	return apperrors.WithMetadata(apperrors.CodeCardNotFound,
		"card id not present in collection",
		map[string]string{"card": strconv.Itoa(id)})
}

// shuffle permutes values in place, using the package-global source when rng is nil.
func shuffle(values []int, rng *rand.Rand) {
	swap := func(i, j int) { values[i], values[j] = values[j], values[i] }
	if rng != nil {
		rng.Shuffle(len(values), swap)
		return
	}
	rand.Shuffle(len(values), swap)
}
