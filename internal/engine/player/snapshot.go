package player

import (
	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Snapshot is the wire form of one player.
type Snapshot struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	SessionToken string          `json:"sessionToken,omitempty"`
	Lives        int             `json:"lives"`
	MaxLives     int             `json:"maxLives"`
	Role         *card.Snapshot  `json:"role,omitempty"`
	Character    *card.Snapshot  `json:"character,omitempty"`
	Weapon       *card.Snapshot  `json:"weapon,omitempty"`
	Constants    []card.Snapshot `json:"constants,omitempty"`
	Temp         []card.Snapshot `json:"temp,omitempty"`
	Hand         []card.Snapshot `json:"hand,omitempty"`
	Limits       Limits          `json:"limits"`
}

// Snapshot returns the player's wire form. Hook subscriptions are not part of
// the snapshot; the rules layer re-attaches card behaviors after a load.
func (p *Player) Snapshot() Snapshot {
	snap := Snapshot{
		ID:           p.id,
		Name:         p.name,
		SessionToken: p.sessionToken,
		Lives:        p.lives,
		MaxLives:     p.maxLives,
		Constants:    p.constants.Snapshot(),
		Temp:         p.temp.Snapshot(),
		Hand:         p.hand.Snapshot(),
		Limits:       p.limits,
	}
	if p.role != nil {
		role := p.role.Snapshot()
		snap.Role = &role
	}
	if p.character != nil {
		character := p.character.Snapshot()
		snap.Character = &character
	}
	if p.weapon != nil {
		weapon := p.weapon.Snapshot()
		snap.Weapon = &weapon
	}
	return snap
}

// FromSnapshot rebuilds and re-validates a player from its wire form.
func FromSnapshot(snap Snapshot) (*Player, error) {
	restored, err := New(snap.ID, snap.Name, snap.MaxLives)
	if err != nil {
		return nil, err
	}
	if snap.Lives < 0 || snap.Lives > snap.MaxLives {
		return nil, apperrors.New(apperrors.CodePlayerInvalidLives,
			"stored life total outside the 0..max range")
	}
	restored.lives = snap.Lives
	restored.sessionToken = snap.SessionToken
	restored.limits = snap.Limits
	if restored.limits.MaxAttacksPerTurn == 0 && !restored.limits.UnlimitedAttacks {
		restored.limits.MaxAttacksPerTurn = DefaultMaxAttacks
	}

	if snap.Role != nil {
		role, err := card.FromSnapshot(*snap.Role)
		if err != nil {
			return nil, err
		}
		if err := restored.AssignRole(role); err != nil {
			return nil, err
		}
	}
	if snap.Character != nil {
		character, err := card.FromSnapshot(*snap.Character)
		if err != nil {
			return nil, err
		}
		if err := restored.AssignCharacter(character); err != nil {
			return nil, err
		}
	}
	if snap.Weapon != nil {
		weapon, err := card.FromSnapshot(*snap.Weapon)
		if err != nil {
			return nil, err
		}
		if _, err := restored.SetWeapon(weapon); err != nil {
			return nil, err
		}
	}

	if restored.constants, err = card.CollectionFromSnapshot(snap.Constants); err != nil {
		return nil, err
	}
	if restored.temp, err = card.CollectionFromSnapshot(snap.Temp); err != nil {
		return nil, err
	}
	if restored.hand, err = card.CollectionFromSnapshot(snap.Hand); err != nil {
		return nil, err
	}
	return restored, nil
}
