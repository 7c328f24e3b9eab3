package roster

import (
	"math/rand/v2"

	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// ShuffleSheriffFirst randomly reseats every player and then forces the
// sheriff to seat 0 by swapping ids with whoever landed on the lowest seat.
// The random permutation stays uniform over the non-sheriff seats while the
// sheriff seat is guaranteed. Fails when any player lacks a role.
func (r *Roster) ShuffleSheriffFirst(rng *rand.Rand) error {
	var sheriff *Roster
	for _, p := range r.players {
		if p.Role() == nil {
			return apperrors.WithMetadata(apperrors.CodePlayerMissingRole,
				"cannot shuffle seating before every player holds a role",
				map[string]string{"player": p.Name()})
		}
	}
	sheriff = r.WithRole(card.RoleSheriff)
	if sheriff.Len() != 1 {
		return apperrors.New(apperrors.CodePlayerMissingRole,
			"seating shuffle requires exactly one sheriff")
	}

	seats := permutation(len(r.players), rng)
	for i, p := range r.players {
		if err := p.SetID(seats[i]); err != nil {
			return err
		}
	}

	holder := sheriff.players[0]
	lowest := r.players[0]
	for _, p := range r.players {
		if p.ID() < lowest.ID() {
			lowest = p
		}
	}
	if lowest != holder {
		lowestID, holderID := lowest.ID(), holder.ID()
		if err := lowest.SetID(holderID); err != nil {
			return err
		}
		if err := holder.SetID(lowestID); err != nil {
			return err
		}
	}

	r.sortByID()
	return nil
}

func permutation(n int, rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}
