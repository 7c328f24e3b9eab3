package roster

import (
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// derived builds a read-only roster sharing the given players.
func derived(players []*player.Player) *Roster {
	return &Roster{players: players}
}

// WithRole returns the players holding the named role card.
func (r *Roster) WithRole(roleName string) *Roster {
	var matched []*player.Player
	for _, p := range r.players {
		if p.Role() != nil && p.Role().Name == roleName {
			matched = append(matched, p)
		}
	}
	return derived(matched)
}

// WithCharacter returns the players holding the named character card.
func (r *Roster) WithCharacter(characterName string) *Roster {
	var matched []*player.Player
	for _, p := range r.players {
		if p.Character() != nil && p.Character().Name == characterName {
			matched = append(matched, p)
		}
	}
	return derived(matched)
}

// WithoutRole returns the players with no role card, skipping any player
// whose role is named in exclude.
func (r *Roster) WithoutRole(exclude ...string) *Roster {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	var matched []*player.Player
	for _, p := range r.players {
		if p.Role() == nil {
			matched = append(matched, p)
			continue
		}
		if excluded[p.Role().Name] {
			matched = append(matched, p)
		}
	}
	return derived(matched)
}

// WithoutCharacter returns the players with no character card.
func (r *Roster) WithoutCharacter() *Roster {
	var matched []*player.Player
	for _, p := range r.players {
		if p.Character() == nil {
			matched = append(matched, p)
		}
	}
	return derived(matched)
}

// Alive returns the players with at least one life left.
func (r *Roster) Alive() *Roster {
	var matched []*player.Player
	for _, p := range r.players {
		if p.Alive() {
			matched = append(matched, p)
		}
	}
	return derived(matched)
}

// MinIDExcluding returns the seated player with the lowest id whose id is not
// listed in exclude. Setup uses this to pick the next role-less seat.
func (r *Roster) MinIDExcluding(exclude ...int) (*player.Player, error) {
	excluded := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var found *player.Player
	for _, p := range r.players {
		if excluded[p.ID()] {
			continue
		}
		if found == nil || p.ID() < found.ID() {
			found = p
		}
	}
	if found == nil {
		return nil, apperrors.New(apperrors.CodePlayerNotFound,
			"no seat left outside the excluded ids")
	}
	return found, nil
}
