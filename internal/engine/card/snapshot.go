package card

// Snapshot is the wire form of one card record.
type Snapshot struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Kind       Kind   `json:"type"`
	OwnerName  string `json:"ownerName,omitempty"`
	TargetName string `json:"targetName,omitempty"`
	Suit       string `json:"suit,omitempty"`
	Rank       string `json:"rank,omitempty"`
	Distance   int    `json:"distance,omitempty"`
}

// Snapshot returns the card's wire form.
func (c Card) Snapshot() Snapshot {
	return Snapshot{
		ID:         c.ID,
		Name:       c.Name,
		Image:      c.Image,
		Kind:       c.Kind,
		OwnerName:  c.OwnerName,
		TargetName: c.TargetName,
		Suit:       c.Suit,
		Rank:       c.Rank,
		Distance:   c.Distance,
	}
}

// FromSnapshot rebuilds and re-validates a card from its wire form.
func FromSnapshot(snap Snapshot) (Card, error) {
	restored := Card{
		ID:         snap.ID,
		Name:       snap.Name,
		Image:      snap.Image,
		Kind:       snap.Kind,
		OwnerName:  snap.OwnerName,
		TargetName: snap.TargetName,
		Suit:       snap.Suit,
		Rank:       snap.Rank,
		Distance:   snap.Distance,
	}
	if err := restored.Validate(); err != nil {
		return Card{}, err
	}
	return restored, nil
}

// Snapshot returns the wire form of every card in collection order.
func (c *Collection) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, card.Snapshot())
	}
	return out
}

// CollectionFromSnapshot rebuilds a collection, re-validating every card and
// preserving stored ids.
func CollectionFromSnapshot(snaps []Snapshot) (*Collection, error) {
	collection := NewCollection()
	for _, snap := range snaps {
		restored, err := FromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		if _, err := collection.Add(restored, false); err != nil {
			return nil, err
		}
	}
	return collection, nil
}
