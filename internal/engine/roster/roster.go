// Package roster holds the session's player directory: an ordered set of
// players keyed by id and name, with the read-only queries game setup and
// turn routing are built on.
package roster

import (
	"sort"
	"strconv"

	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Roster is the ordered player directory for one session. Ids, names, and
// session tokens (when set) are each unique. Filters return derived rosters
// that share the underlying players.
type Roster struct {
	players []*player.Player
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{}
}

// Len returns the number of players.
func (r *Roster) Len() int {
	return len(r.players)
}

// Players returns the players in directory order.
func (r *Roster) Players() []*player.Player {
	out := make([]*player.Player, len(r.players))
	copy(out, r.players)
	return out
}

// Add inserts a player, enforcing id, name, and token uniqueness.
func (r *Roster) Add(p *player.Player) error {
	if p == nil {
		return apperrors.New(apperrors.CodePlayerInvalidID, "player is required")
	}
	for _, existing := range r.players {
		if existing.ID() == p.ID() {
			return apperrors.WithMetadata(apperrors.CodePlayerIDTaken,
				"player id already seated",
				map[string]string{"id": strconv.Itoa(p.ID())})
		}
		if existing.Name() == p.Name() {
			return apperrors.WithMetadata(apperrors.CodePlayerNameTaken,
				"player name already taken",
				map[string]string{"name": p.Name()})
		}
		if p.SessionToken() != "" && existing.SessionToken() == p.SessionToken() {
			return apperrors.New(apperrors.CodePlayerTokenTaken,
				"session token already bound to a seated player")
		}
	}
	r.players = append(r.players, p)
	return nil
}

// Remove unseats the player with the given id and returns it.
func (r *Roster) Remove(id int) (*player.Player, error) {
	for i, p := range r.players {
		if p.ID() == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return p, nil
		}
	}
	return nil, notFoundByID(id)
}

// ByID returns the player seated at the given id.
func (r *Roster) ByID(id int) (*player.Player, error) {
	for _, p := range r.players {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, notFoundByID(id)
}

// ByName returns the player with the given name.
func (r *Roster) ByName(name string) (*player.Player, error) {
	for _, p := range r.players {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, apperrors.WithMetadata(apperrors.CodePlayerNotFound,
		"player name not in directory",
		map[string]string{"player": name})
}

// BySessionToken returns the player bound to the given session token.
func (r *Roster) BySessionToken(token string) (*player.Player, error) {
	if token != "" {
		for _, p := range r.players {
			if p.SessionToken() == token {
				return p, nil
			}
		}
	}
	return nil, apperrors.New(apperrors.CodePlayerNotFound,
		"session token not bound to a seated player")
}

// NextAfter returns the player with the lowest id greater than currentID.
// With cyclic set it wraps to the lowest id overall when no higher id exists.
func (r *Roster) NextAfter(currentID int, cyclic bool) (*player.Player, error) {
	var next, lowest *player.Player
	for _, p := range r.players {
		if lowest == nil || p.ID() < lowest.ID() {
			lowest = p
		}
		if p.ID() > currentID && (next == nil || p.ID() < next.ID()) {
			next = p
		}
	}
	if next != nil {
		return next, nil
	}
	if cyclic && lowest != nil {
		return lowest, nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodePlayerNotFound,
		"no player seated after the given id",
		map[string]string{"id": strconv.Itoa(currentID)})
}

func notFoundByID(id int) error {
	return apperrors.WithMetadata(apperrors.CodePlayerNotFound,
		"player id not in directory",
		map[string]string{"player": strconv.Itoa(id)})
}

func (r *Roster) sortByID() {
	sort.Slice(r.players, func(i, j int) bool {
		return r.players[i].ID() < r.players[j].ID()
	})
}
