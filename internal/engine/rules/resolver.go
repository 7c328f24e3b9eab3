// Package rules binds card names to their in-game behavior and resolves
// played actions against a session. The resolver is the only place hook
// events are emitted and the only place distance modifiers from equipment
// are applied, so every range-gated action sees the same effective distance.
package rules

import (
	"context"
	"fmt"
	"strconv"

	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	"github.com/louisbranch/highnoon.cards/internal/engine/hook"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	"github.com/louisbranch/highnoon.cards/internal/engine/session"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// NoTarget is the target id passed to PlayCard for cards that do not aim at
// another player.
const NoTarget = -1

type subKey struct {
	owner  string
	cardID int
}

// Resolver resolves played cards against one session. It tracks the hook
// subscriptions held by equipped cards so each can be released exactly once
// when the card leaves play.
type Resolver struct {
	sess    *session.Session
	persist func(context.Context) error
	subs    map[subKey][]*hook.Subscription
}

// NewResolver wires a resolver to a session. persist, when not nil, runs
// after every resolved action; an archive's SaveData is the usual choice.
func NewResolver(sess *session.Session, persist func(context.Context) error) *Resolver {
	return &Resolver{
		sess:    sess,
		persist: persist,
		subs:    make(map[subKey][]*hook.Subscription),
	}
}

// Session exposes the wired session.
func (r *Resolver) Session() *session.Session { return r.sess }

// PlayCard resolves one card from a player's hand. targetID is NoTarget for
// untargeted cards. The card is validated against the game state before any
// mutation, and a behavior failure puts the card back in the hand, so an
// illegal play never leaves the session half-applied.
func (r *Resolver) PlayCard(ctx context.Context, playerID, targetID, cardID int) error {
	if !r.sess.Status() {
		return apperrors.New(apperrors.CodeRuleSessionInactive,
			"cards can only be played while a game is in progress")
	}
	src, err := r.sess.Roster().ByID(playerID)
	if err != nil {
		return err
	}
	c, err := src.Hand().ByID(cardID)
	if err != nil {
		return err
	}
	b, ok := For(c.Name)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeRuleUnknownCard,
			"no behavior is bound to this card", map[string]string{"card": c.Name})
	}

	var tgt *player.Player
	if b.NeedsTarget {
		if targetID == NoTarget {
			return apperrors.WithMetadata(apperrors.CodeRuleNoTarget,
				"this card needs a target", map[string]string{"card": c.Name})
		}
		if targetID == playerID {
			return apperrors.WithMetadata(apperrors.CodeRuleSelfTarget,
				"a player cannot aim this card at themselves",
				map[string]string{"card": c.Name})
		}
		tgt, err = r.sess.Roster().ByID(targetID)
		if err != nil {
			return err
		}
	}
	if b.Attack && !src.CanAttack() {
		return apperrors.WithMetadata(apperrors.CodeRuleAttackLimit,
			"attack limit reached for this turn",
			map[string]string{"player": src.Name(), "attacks": strconv.Itoa(src.AttacksThisTurn())})
	}
	if b.gate != gateNone && tgt != nil {
		reach := 1
		if b.gate == gateWeapon {
			reach = src.WeaponReach()
		}
		dist, err := r.Effective(src, tgt)
		if err != nil {
			return err
		}
		if dist > reach {
			return apperrors.WithMetadata(apperrors.CodeRuleTargetOutOfRange,
				"the target is out of reach",
				map[string]string{
					"distance": strconv.Itoa(dist),
					"reach":    strconv.Itoa(reach),
				})
		}
	}

	if _, err := src.Hand().Remove(c.ID); err != nil {
		return err
	}
	played := c
	if !c.IsEquipment() {
		played, err = r.sess.Table().AddPlayerCard(src, c)
		if err != nil {
			src.Hand().Add(c, false)
			return err
		}
	}
	if err := b.play(r, src, tgt, played); err != nil {
		if !c.IsEquipment() {
			r.sess.Table().RemovePlayed(played.ID)
		}
		src.Hand().Add(c, false)
		return err
	}
	if b.Attack {
		src.NoteAttack()
	}

	if _, err := r.sess.RecordMove(describe(src, tgt, c)); err != nil {
		return err
	}
	if r.persist != nil {
		return r.persist(ctx)
	}
	return nil
}

// Effective returns the distance an action from attacker to target is
// resolved at: the stored seating distance plus every delta contributed by
// equipment on either seat, floored at 1. Equipment may also veto the
// attacker's action outright.
func (r *Resolver) Effective(attacker, target *player.Player) (int, error) {
	base, err := r.sess.Distances().Between(attacker.Name(), target.Name())
	if err != nil {
		return 0, err
	}
	evt := hook.Event{
		Name:       hook.BeforeAttackerAction,
		SourceName: attacker.Name(),
		TargetName: target.Name(),
		Distance:   base,
	}
	fromAttacker, err := attacker.Bus().Emit(evt)
	if err != nil {
		return 0, err
	}
	fromTarget, err := target.Bus().Emit(evt)
	if err != nil {
		return 0, err
	}
	if fromAttacker.Vetoed || fromTarget.Vetoed {
		return 0, apperrors.WithMetadata(apperrors.CodeRuleActionVetoed,
			"a card in play cancelled the action",
			map[string]string{"attacker": attacker.Name(), "target": target.Name()})
	}
	dist := base + fromAttacker.DistanceDelta + fromTarget.DistanceDelta
	if dist < 1 {
		dist = 1
	}
	return dist, nil
}

// Damage applies amount points of damage to target, after the target's
// equipment had its chance to cancel. An attack card is also cancelled by a
// Missed! spent from the target's hand. src is nil when the damage has no
// acting player, as with Dynamite.
func (r *Resolver) Damage(src, target *player.Player, amount int, cardName string) error {
	srcName := ""
	if src != nil {
		srcName = src.Name()
	}
	out, err := target.Bus().Emit(hook.Event{
		Name:       hook.BeforeDamage,
		SourceName: srcName,
		TargetName: target.Name(),
		CardName:   cardName,
		Amount:     amount,
	})
	if err != nil {
		return err
	}
	if out.Vetoed {
		return nil
	}
	if isAttackCard(cardName) && r.spendMissed(target) {
		return nil
	}
	return target.RemoveLives(amount)
}

// Draw moves n cards from the main deck into the player's hand, unless
// equipment on the player vetoes the draw.
func (r *Resolver) Draw(p *player.Player, n int) ([]card.Card, error) {
	out, err := p.Bus().Emit(hook.Event{
		Name:       hook.BeforeDrawCards,
		SourceName: p.Name(),
		Amount:     n,
	})
	if err != nil {
		return nil, err
	}
	if out.Vetoed {
		return nil, apperrors.WithMetadata(apperrors.CodeRuleActionVetoed,
			"a card in play cancelled the draw", map[string]string{"player": p.Name()})
	}
	pulled, err := r.sess.Table().PullRandomCards(n, r.sess.Rng())
	if err != nil {
		return nil, err
	}
	for i := range pulled {
		pulled[i].OwnerName = p.Name()
		if _, err := p.Hand().Add(pulled[i], false); err != nil {
			return nil, err
		}
		if _, err := p.Bus().Emit(hook.Event{
			Name:       hook.CardDrawn,
			SourceName: p.Name(),
			CardName:   pulled[i].Name,
		}); err != nil {
			return nil, err
		}
	}
	return pulled, nil
}

// BeginTurn resets the player's per-turn counters and runs the start-of-turn
// checks equipped cards register (Dynamite, Jail). It reports whether the
// turn was skipped.
func (r *Resolver) BeginTurn(p *player.Player) (bool, error) {
	p.ResetTurn()
	out, err := p.Bus().Emit(hook.Event{
		Name:       hook.BeforePlayerMove,
		SourceName: p.Name(),
	})
	if err != nil {
		return false, err
	}
	return out.Vetoed, nil
}

// EndTurn sweeps the cards played during the turn into the discard pile.
func (r *Resolver) EndTurn() {
	for _, c := range r.sess.Table().Played().Cards() {
		r.sess.Table().Discard(c.ID)
	}
}

// AttachEquipped re-registers the hook listeners for every card already in
// play. A restored session carries equipment in its snapshots but not the
// listeners, which only live in memory.
func (r *Resolver) AttachEquipped() {
	for _, p := range r.sess.Roster().Players() {
		for _, c := range p.Constants().Cards() {
			if b, ok := For(c.Name); ok && b.attach != nil {
				b.attach(r, p, c)
			}
		}
		if w := p.Weapon(); w != nil {
			if b, ok := For(w.Name); ok && b.attach != nil {
				b.attach(r, p, *w)
			}
		}
	}
}

// DestroyEquipped removes an equipped constant card from its holder, cancels
// its hook subscriptions, runs its teardown, and discards it. The
// subscription bookkeeping guarantees the teardown runs at most once per
// card instance.
func (r *Resolver) DestroyEquipped(holder *player.Player, cardID int) error {
	c, err := r.unequip(holder, cardID)
	if err != nil {
		return err
	}
	r.sess.Table().DiscardCard(c)
	return nil
}

// unequip detaches a constant card without discarding it. Dynamite uses this
// to travel to the next seat instead of the discard pile.
func (r *Resolver) unequip(holder *player.Player, cardID int) (card.Card, error) {
	c, err := holder.Constants().Remove(cardID)
	if err != nil {
		return card.Card{}, err
	}
	r.cancelSubs(holder.Name(), cardID)
	if b, ok := For(c.Name); ok && b.onDestroy != nil {
		b.onDestroy(r, holder, c)
	}
	return c, nil
}

func (r *Resolver) track(holder *player.Player, c card.Card, sub *hook.Subscription) {
	key := subKey{owner: holder.Name(), cardID: c.ID}
	r.subs[key] = append(r.subs[key], sub)
}

func (r *Resolver) cancelSubs(holderName string, cardID int) {
	key := subKey{owner: holderName, cardID: cardID}
	for _, sub := range r.subs[key] {
		sub.Cancel()
	}
	delete(r.subs, key)
}

// reveal peeks one card from the main deck for a probabilistic check and
// announces it on the checking player's channel. The deck is not consumed.
func (r *Resolver) reveal(p *player.Player) (card.Card, error) {
	shown, err := r.sess.Table().ShowRandomCards(1, r.sess.Rng())
	if err != nil {
		return card.Card{}, err
	}
	if _, err := p.Bus().Emit(hook.Event{
		Name:       hook.ShowCards,
		SourceName: p.Name(),
		CardName:   shown[0].Name,
	}); err != nil {
		return card.Card{}, err
	}
	return shown[0], nil
}

// spendMissed consumes a Missed! from the target's hand to cancel an attack.
func (r *Resolver) spendMissed(target *player.Player) bool {
	missed, err := target.Hand().ByName(card.NameMissed)
	if err != nil {
		return false
	}
	if _, err := target.Hand().Remove(missed.ID); err != nil {
		return false
	}
	r.sess.Table().DiscardCard(missed)
	return true
}

func isAttackCard(name string) bool {
	return name == card.NameBang || name == card.NameGatling
}

func describe(src, tgt *player.Player, c card.Card) string {
	if tgt != nil {
		return fmt.Sprintf("%s played %s on %s", src.Name(), c.Name, tgt.Name())
	}
	return fmt.Sprintf("%s played %s", src.Name(), c.Name)
}
