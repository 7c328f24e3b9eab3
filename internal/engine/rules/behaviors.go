package rules

import (
	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	"github.com/louisbranch/highnoon.cards/internal/engine/hook"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// dynamiteDamage is what the stick deals when its reveal comes up a low
// spade.
const dynamiteDamage = 3

type gate int

const (
	gateNone gate = iota
	gateWeapon
	gateOne
)

// Behavior binds a card name to what happens when the card is played and,
// for equipment, which hook listeners it holds while in play.
type Behavior struct {
	// NeedsTarget requires a target player distinct from the source.
	NeedsTarget bool
	// Attack counts the play against the source's per-turn attack limit.
	Attack bool

	gate gate

	play func(r *Resolver, src, tgt *player.Player, c card.Card) error
	// attach registers the card's hook listeners on its holder. Runs on
	// play and again when a stored session is reloaded.
	attach func(r *Resolver, holder *player.Player, c card.Card)
	// onDestroy undoes any state the card changed on its holder beyond
	// subscriptions, which the resolver cancels itself.
	onDestroy func(r *Resolver, holder *player.Player, c card.Card)
}

// For returns the behavior bound to a card name.
func For(name string) (Behavior, bool) {
	b, ok := behaviors[name]
	return b, ok
}

var behaviors map[string]Behavior

func init() {
	behaviors = map[string]Behavior{
		card.NameBang: {
			NeedsTarget: true,
			Attack:      true,
			gate:        gateWeapon,
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				return r.Damage(src, tgt, 1, card.NameBang)
			},
		},
		card.NameMissed: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				return apperrors.New(apperrors.CodeRuleNotPlayable,
					"Missed! only answers an attack, it cannot be led with")
			},
		},
		card.NameBeer: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				return src.AddLives(1, false)
			},
		},
		card.NamePanic: {
			NeedsTarget: true,
			gate:        gateOne,
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				stolen, err := tgt.Hand().PullRandom(1, r.sess.Rng())
				if err != nil {
					return err
				}
				stolen[0].OwnerName = src.Name()
				_, err = src.Hand().Add(stolen[0], false)
				return err
			},
		},
		card.NameCatBalou: {
			NeedsTarget: true,
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				dropped, err := tgt.Hand().PullRandom(1, r.sess.Rng())
				if err != nil {
					return err
				}
				r.sess.Table().DiscardCard(dropped[0])
				return nil
			},
		},
		card.NameStagecoach: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				_, err := r.Draw(src, 2)
				return err
			},
		},
		card.NameWellsFargo: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				_, err := r.Draw(src, 3)
				return err
			},
		},
		card.NameGatling: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				for _, p := range r.sess.Roster().Alive().Players() {
					if p.ID() == src.ID() {
						continue
					}
					if err := r.Damage(src, p, 1, card.NameGatling); err != nil {
						return err
					}
				}
				return nil
			},
		},
		card.NameSaloon: {
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				for _, p := range r.sess.Roster().Alive().Players() {
					if err := p.AddLives(1, false); err != nil {
						return err
					}
				}
				return nil
			},
		},

		card.NameBarrel: {
			play:   playConstantOnSelf,
			attach: attachBarrel,
		},
		card.NameMustang: {
			play:   playConstantOnSelf,
			attach: attachMustang,
		},
		card.NameScope: {
			play:   playConstantOnSelf,
			attach: attachScope,
		},
		card.NameJail: {
			NeedsTarget: true,
			play: func(r *Resolver, src, tgt *player.Player, c card.Card) error {
				if role := tgt.Role(); role != nil && role.Name == card.RoleSheriff {
					return apperrors.New(apperrors.CodeRuleInvalidTarget,
						"the sheriff cannot be jailed")
				}
				return equipConstant(r, tgt, c)
			},
			attach: attachJail,
		},
		card.NameDynamite: {
			play:   playConstantOnSelf,
			attach: attachDynamite,
		},

		card.NameVolcanic: {
			play: playWeapon,
			attach: func(r *Resolver, holder *player.Player, c card.Card) {
				holder.SetLimits(player.Limits{UnlimitedAttacks: true})
			},
			onDestroy: func(r *Resolver, holder *player.Player, c card.Card) {
				holder.SetLimits(player.Limits{MaxAttacksPerTurn: player.DefaultMaxAttacks})
			},
		},
		card.NameSchofield:  {play: playWeapon},
		card.NameRemington:  {play: playWeapon},
		card.NameCarabine:   {play: playWeapon},
		card.NameWinchester: {play: playWeapon},
	}
}

func playConstantOnSelf(r *Resolver, src, tgt *player.Player, c card.Card) error {
	return equipConstant(r, src, c)
}

func equipConstant(r *Resolver, holder *player.Player, c card.Card) error {
	c.OwnerName = holder.Name()
	added, err := holder.Constants().Add(c, false)
	if err != nil {
		return err
	}
	if b, ok := For(added.Name); ok && b.attach != nil {
		b.attach(r, holder, added)
	}
	return nil
}

func playWeapon(r *Resolver, src, tgt *player.Player, c card.Card) error {
	c.OwnerName = src.Name()
	replaced, err := src.SetWeapon(c)
	if err != nil {
		return err
	}
	if replaced != nil {
		r.cancelSubs(src.Name(), replaced.ID)
		if b, ok := For(replaced.Name); ok && b.onDestroy != nil {
			b.onDestroy(r, src, *replaced)
		}
		r.sess.Table().DiscardCard(*replaced)
	}
	if b, ok := For(c.Name); ok && b.attach != nil {
		b.attach(r, src, c)
	}
	return nil
}

// attachBarrel lets its holder dodge damage when the revealed check card is
// a heart.
func attachBarrel(r *Resolver, holder *player.Player, c card.Card) {
	sub := holder.Bus().Subscribe(hook.BeforeDamage, func(hook.Event) (hook.Result, error) {
		revealed, err := r.reveal(holder)
		if err != nil {
			return hook.Result{}, err
		}
		if revealed.Suit == card.SuitHearts {
			return hook.Result{Veto: true}, nil
		}
		return hook.Result{}, nil
	})
	r.track(holder, c, sub)
}

// attachMustang makes its holder appear one seat farther to everyone aiming
// at them.
func attachMustang(r *Resolver, holder *player.Player, c card.Card) {
	sub := holder.Bus().Subscribe(hook.BeforeAttackerAction, func(evt hook.Event) (hook.Result, error) {
		if evt.TargetName != holder.Name() {
			return hook.Result{}, nil
		}
		return hook.Result{DistanceDelta: 1}, nil
	})
	r.track(holder, c, sub)
}

// attachScope lets its holder see everyone one seat closer.
func attachScope(r *Resolver, holder *player.Player, c card.Card) {
	sub := holder.Bus().Subscribe(hook.BeforeAttackerAction, func(evt hook.Event) (hook.Result, error) {
		if evt.SourceName != holder.Name() {
			return hook.Result{}, nil
		}
		return hook.Result{DistanceDelta: -1}, nil
	})
	r.track(holder, c, sub)
}

// attachJail holds its target in place at the start of their turn unless the
// revealed check card is a heart. The card leaves play after one check
// either way.
func attachJail(r *Resolver, holder *player.Player, c card.Card) {
	sub := holder.Bus().Subscribe(hook.BeforePlayerMove, func(hook.Event) (hook.Result, error) {
		revealed, err := r.reveal(holder)
		if err != nil {
			return hook.Result{}, err
		}
		if err := r.DestroyEquipped(holder, c.ID); err != nil {
			return hook.Result{}, err
		}
		if revealed.Suit != card.SuitHearts {
			return hook.Result{Veto: true}, nil
		}
		return hook.Result{}, nil
	})
	r.track(holder, c, sub)
}

// attachDynamite checks its holder at the start of their turn: a spade
// between 2 and 9 blows up for three points and the stick is discarded,
// anything else passes it to the next living seat.
func attachDynamite(r *Resolver, holder *player.Player, c card.Card) {
	sub := holder.Bus().Subscribe(hook.BeforePlayerMove, func(hook.Event) (hook.Result, error) {
		revealed, err := r.reveal(holder)
		if err != nil {
			return hook.Result{}, err
		}
		if revealed.Suit == card.SuitSpades &&
			revealed.RankValue() >= 2 && revealed.RankValue() <= 9 {
			if err := r.DestroyEquipped(holder, c.ID); err != nil {
				return hook.Result{}, err
			}
			return hook.Result{}, r.Damage(nil, holder, dynamiteDamage, card.NameDynamite)
		}
		moved, err := r.unequip(holder, c.ID)
		if err != nil {
			return hook.Result{}, err
		}
		next, err := r.sess.Roster().Alive().NextAfter(holder.ID(), true)
		if err != nil || next.ID() == holder.ID() {
			r.sess.Table().DiscardCard(moved)
			return hook.Result{}, nil
		}
		return hook.Result{}, equipConstant(r, next, moved)
	})
	r.track(holder, c, sub)
}
