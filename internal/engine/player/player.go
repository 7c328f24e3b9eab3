// Package player models one seated participant: identity, life total,
// assigned cards, temporary holdings, per-turn rule limits, and the private
// hook channel equipment cards react through.
package player

import (
	"regexp"
	"strconv"

	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	"github.com/louisbranch/highnoon.cards/internal/engine/hook"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// DefaultMaxAttacks is how many attack cards a player may play per turn
// unless a weapon lifts the limit.
const DefaultMaxAttacks = 1

var namePattern = regexp.MustCompile(`^[A-Za-z]{5,}$`)

// Limits holds the per-player rule limits cards may adjust.
type Limits struct {
	// MaxAttacksPerTurn caps attack cards per turn when UnlimitedAttacks is false.
	MaxAttacksPerTurn int `json:"maxAttacksPerTurn"`
	// UnlimitedAttacks lifts the attack cap entirely (Volcanic).
	UnlimitedAttacks bool `json:"unlimitedAttacks,omitempty"`
}

// Player is one seated participant. Not safe for concurrent use; a session
// resolves one action at a time.
type Player struct {
	id           int
	name         string
	sessionToken string

	lives    int
	maxLives int

	role      *card.Card
	character *card.Card
	weapon    *card.Card
	constants *card.Collection
	temp      *card.Collection
	hand      *card.Collection

	bus    *hook.Bus
	limits Limits

	attacksThisTurn int
}

// New creates a player with full lives.
func New(id int, name string, maxLives int) (*Player, error) {
	if id < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodePlayerInvalidID,
			"player id must not be negative",
			map[string]string{"id": strconv.Itoa(id)})
	}
	if !namePattern.MatchString(name) {
		return nil, apperrors.WithMetadata(apperrors.CodePlayerInvalidName,
			"player name must be letters only and longer than 4 characters",
			map[string]string{"name": name})
	}
	if maxLives < 0 {
		return nil, apperrors.New(apperrors.CodePlayerInvalidLives,
			"max lives must not be negative")
	}
	return &Player{
		id:        id,
		name:      name,
		lives:     maxLives,
		maxLives:  maxLives,
		constants: card.NewCollection(),
		temp:      card.NewCollection(),
		hand:      card.NewCollection(),
		bus:       hook.NewBus(),
		limits:    Limits{MaxAttacksPerTurn: DefaultMaxAttacks},
	}, nil
}

// ID returns the player's seat id.
func (p *Player) ID() int { return p.id }

// SetID reseats the player at a new id. The roster owns id uniqueness.
func (p *Player) SetID(id int) error {
	if id < 0 {
		return apperrors.WithMetadata(apperrors.CodePlayerInvalidID,
			"player id must not be negative",
			map[string]string{"id": strconv.Itoa(id)})
	}
	p.id = id
	return nil
}

// Name returns the player's unique name.
func (p *Player) Name() string { return p.name }

// SessionToken returns the player's session token, empty when unset.
func (p *Player) SessionToken() string { return p.sessionToken }

// SetSessionToken attaches a session token to the player.
func (p *Player) SetSessionToken(token string) { p.sessionToken = token }

// Lives returns the current life total.
func (p *Player) Lives() int { return p.lives }

// MaxLives returns the life cap.
func (p *Player) MaxLives() int { return p.maxLives }

// Alive reports whether the player still has lives.
func (p *Player) Alive() bool { return p.lives > 0 }

// Bus returns the player's hook channel.
func (p *Player) Bus() *hook.Bus { return p.bus }

// Hand returns the player's hand collection.
func (p *Player) Hand() *card.Collection { return p.hand }

// Temp returns the temporary-card holding area.
func (p *Player) Temp() *card.Collection { return p.temp }

// Constants returns the equipment cards sitting in front of the player.
func (p *Player) Constants() *card.Collection { return p.constants }

// Role returns the assigned role card, nil before setup.
func (p *Player) Role() *card.Card { return p.role }

// Character returns the assigned character card, nil before setup.
func (p *Player) Character() *card.Card { return p.character }

// Weapon returns the equipped weapon card, nil when unarmed.
func (p *Player) Weapon() *card.Card { return p.weapon }

// Limits returns the player's current rule limits.
func (p *Player) Limits() Limits { return p.limits }

// SetLimits replaces the player's rule limits.
func (p *Player) SetLimits(limits Limits) { p.limits = limits }

// AssignRole sets the player's role card.
func (p *Player) AssignRole(c card.Card) error {
	if c.Kind != card.KindRole {
		return wrongKind(c, card.KindRole)
	}
	c.OwnerName = p.name
	p.role = &c
	return nil
}

// AssignCharacter sets the player's character card.
func (p *Player) AssignCharacter(c card.Card) error {
	if c.Kind != card.KindCharacter {
		return wrongKind(c, card.KindCharacter)
	}
	c.OwnerName = p.name
	p.character = &c
	return nil
}

// SetWeapon equips a weapon and returns the one it replaced, if any. The
// caller owns running the replaced card's destroy behavior.
func (p *Player) SetWeapon(c card.Card) (*card.Card, error) {
	if c.Kind != card.KindWeapon {
		return nil, wrongKind(c, card.KindWeapon)
	}
	c.OwnerName = p.name
	previous := p.weapon
	p.weapon = &c
	return previous, nil
}

// ClearWeapon removes the equipped weapon and returns it, or nil.
func (p *Player) ClearWeapon() *card.Card {
	previous := p.weapon
	p.weapon = nil
	return previous
}

// WeaponReach returns the equipped weapon's distance, or 1 when unarmed.
func (p *Player) WeaponReach() int {
	if p.weapon == nil {
		return 1
	}
	return p.weapon.Distance
}

// RaiseMaxLives raises the life cap by n and grants the same amount of
// current lives (the sheriff's setup bonus).
func (p *Player) RaiseMaxLives(n int) error {
	if n < 0 {
		return apperrors.New(apperrors.CodePlayerInvalidLives, "life delta must not be negative")
	}
	p.maxLives += n
	return p.AddLives(n, false)
}

// AddLives raises the life total by n. The total never exceeds the cap unless
// ignoreCap is set. Emits life_added only when the total actually changed.
func (p *Player) AddLives(n int, ignoreCap bool) error {
	if n < 0 {
		return apperrors.New(apperrors.CodePlayerInvalidLives, "life delta must not be negative")
	}
	next := p.lives + n
	if !ignoreCap && next > p.maxLives {
		next = p.maxLives
	}
	if next == p.lives {
		return nil
	}
	gained := next - p.lives
	p.lives = next
	_, err := p.bus.Emit(hook.Event{Name: hook.LifeAdded, TargetName: p.name, Amount: gained})
	return err
}

// RemoveLives lowers the life total by n, never below zero. Emits
// life_removed when the total changed and lives_depleted exactly once on the
// transition to zero.
func (p *Player) RemoveLives(n int) error {
	if n < 0 {
		return apperrors.New(apperrors.CodePlayerInvalidLives, "life delta must not be negative")
	}
	next := p.lives - n
	if next < 0 {
		next = 0
	}
	if next == p.lives {
		return nil
	}
	wasAlive := p.lives > 0
	lost := p.lives - next
	p.lives = next
	if _, err := p.bus.Emit(hook.Event{Name: hook.LifeRemoved, TargetName: p.name, Amount: lost}); err != nil {
		return err
	}
	if wasAlive && p.lives == 0 {
		if _, err := p.bus.Emit(hook.Event{Name: hook.LivesDepleted, TargetName: p.name}); err != nil {
			return err
		}
	}
	return nil
}

// AttacksThisTurn returns the attack cards played since the last turn reset.
func (p *Player) AttacksThisTurn() int { return p.attacksThisTurn }

// NoteAttack records one played attack card.
func (p *Player) NoteAttack() { p.attacksThisTurn++ }

// CanAttack reports whether the player may play another attack card this turn.
func (p *Player) CanAttack() bool {
	if p.limits.UnlimitedAttacks {
		return true
	}
	return p.attacksThisTurn < p.limits.MaxAttacksPerTurn
}

// ResetTurn clears the per-turn counters at the start of the player's turn.
func (p *Player) ResetTurn() { p.attacksThisTurn = 0 }

func wrongKind(c card.Card, want card.Kind) error {
	return apperrors.WithMetadata(apperrors.CodePlayerInvalidCard,
		"card kind does not fit this slot",
		map[string]string{"card": c.Name, "kind": string(c.Kind), "want": string(want)})
}
