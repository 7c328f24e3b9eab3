package roster

import "github.com/louisbranch/highnoon.cards/internal/engine/player"

// Snapshot returns every player's wire form in directory order.
func (r *Roster) Snapshot() []player.Snapshot {
	out := make([]player.Snapshot, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Snapshot())
	}
	return out
}

// FromSnapshot rebuilds a roster, re-validating every player and the
// directory's uniqueness invariants.
func FromSnapshot(snaps []player.Snapshot) (*Roster, error) {
	restored := New()
	for _, snap := range snaps {
		p, err := player.FromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		if err := restored.Add(p); err != nil {
			return nil, err
		}
	}
	return restored, nil
}
