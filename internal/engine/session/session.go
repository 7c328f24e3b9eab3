// Package session ties one game together: the roster, the shared table, the
// distance table, the move history, and the archive that makes it durable.
//
// A session is a single-writer resource. The engine resolves one action at a
// time per session; callers running sessions on separate goroutines get full
// parallelism across sessions but must not share one session without
// serializing access themselves.
package session

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/louisbranch/highnoon.cards/internal/engine/card"
	"github.com/louisbranch/highnoon.cards/internal/engine/distance"
	"github.com/louisbranch/highnoon.cards/internal/engine/history"
	"github.com/louisbranch/highnoon.cards/internal/engine/player"
	"github.com/louisbranch/highnoon.cards/internal/engine/roster"
	"github.com/louisbranch/highnoon.cards/internal/engine/table"
	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// nameLayout formats a session's creation timestamp into its archive key.
const nameLayout = "20060102T150405.000"

// Defaults for session options.
const (
	DefaultMaxLives   = 4
	DefaultMinPlayers = 4
	// SheriffBonusLives is added to the sheriff's life cap at start.
	SheriffBonusLives = 1
)

// Options configures a session.
type Options struct {
	// MaxMoves caps the move history, zero means unbounded.
	MaxMoves int
	// MaxLives is the base life cap per player, DefaultMaxLives when zero.
	MaxLives int
	// Rng drives shuffles and draws; nil uses the global source.
	Rng *rand.Rand
	// Now supplies timestamps; nil uses time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

func (o Options) maxLives() int {
	if o.MaxLives > 0 {
		return o.MaxLives
	}
	return DefaultMaxLives
}

// Session is one game's full state.
type Session struct {
	name      string
	createdAt time.Time
	status    bool

	roster    *roster.Roster
	table     *table.Table
	distances *distance.Table
	history   *history.History

	opts Options
}

// New creates a session in setup state with a fresh draw deck.
func New(opts Options) (*Session, error) {
	deck, err := card.Deck()
	if err != nil {
		return nil, err
	}
	createdAt := opts.now().Truncate(time.Millisecond)
	return &Session{
		name:      createdAt.Format(nameLayout),
		createdAt: createdAt,
		roster:    roster.New(),
		table:     table.New(deck),
		distances: distance.New(),
		history:   history.New(opts.MaxMoves),
		opts:      opts,
	}, nil
}

// Name returns the session's archive key.
func (s *Session) Name() string { return s.name }

// CreatedAt returns the session's creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Status reports whether the game is in progress (true) or in setup (false).
func (s *Session) Status() bool { return s.status }

// Roster returns the session's player directory.
func (s *Session) Roster() *roster.Roster { return s.roster }

// Table returns the shared game table.
func (s *Session) Table() *table.Table { return s.table }

// Distances returns the seating distance table.
func (s *Session) Distances() *distance.Table { return s.distances }

// History returns the move log.
func (s *Session) History() *history.History { return s.history }

// Rng returns the session's random source, possibly nil.
func (s *Session) Rng() *rand.Rand { return s.opts.Rng }

// Join seats a new player during setup at the lowest free id.
func (s *Session) Join(name string) (*player.Player, error) {
	if s.status {
		return nil, apperrors.New(apperrors.CodeRuleSessionActive,
			"players cannot join a game in progress")
	}
	id := 0
	for {
		if _, err := s.roster.ByID(id); err != nil {
			break
		}
		id++
	}
	p, err := player.New(id, name, s.opts.maxLives())
	if err != nil {
		return nil, err
	}
	if err := s.roster.Add(p); err != nil {
		return nil, err
	}
	s.distances.Recompute(s.roster)
	return p, nil
}

// Leave unseats a player and recomputes distances.
func (s *Session) Leave(id int) error {
	if _, err := s.roster.Remove(id); err != nil {
		return err
	}
	s.distances.Recompute(s.roster)
	return nil
}

// Start moves the session from setup to in progress: deals roles and
// characters, seats the sheriff first, and recomputes distances.
func (s *Session) Start(minPlayers int) error {
	if s.status {
		return apperrors.New(apperrors.CodeRuleSessionActive,
			"the game is already in progress")
	}
	if minPlayers <= 0 {
		minPlayers = DefaultMinPlayers
	}
	if s.roster.Len() < minPlayers {
		return apperrors.WithMetadata(apperrors.CodeRuleNotEnoughPlayers,
			"not enough players seated to start",
			map[string]string{"min": strconv.Itoa(minPlayers)})
	}

	if err := s.dealRoles(); err != nil {
		return err
	}
	if err := s.dealCharacters(); err != nil {
		return err
	}
	if err := s.roster.ShuffleSheriffFirst(s.opts.Rng); err != nil {
		return err
	}
	s.distances.Recompute(s.roster)
	s.status = true
	return nil
}

// End moves an in-progress session back to the archived, inactive state.
func (s *Session) End() error {
	if !s.status {
		return apperrors.New(apperrors.CodeRuleSessionInactive,
			"the game has not started")
	}
	s.status = false
	return nil
}

func (s *Session) dealRoles() error {
	roles, err := card.Roles(s.roster.Len())
	if err != nil {
		return err
	}
	for _, p := range s.roster.Players() {
		drawn, err := roles.PullRandom(1, s.opts.Rng)
		if err != nil {
			return err
		}
		if err := p.AssignRole(drawn[0]); err != nil {
			return err
		}
		if drawn[0].Name == card.RoleSheriff {
			if err := p.RaiseMaxLives(SheriffBonusLives); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) dealCharacters() error {
	characters, err := card.Characters()
	if err != nil {
		return err
	}
	for _, p := range s.roster.WithoutCharacter().Players() {
		drawn, err := characters.PullRandom(1, s.opts.Rng)
		if err != nil {
			return err
		}
		if err := p.AssignCharacter(drawn[0]); err != nil {
			return err
		}
	}
	return nil
}

// RecordMove appends a described move carrying full directory, distance, and
// table snapshots.
func (s *Session) RecordMove(description string) (history.Move, error) {
	return s.history.Add(history.Move{
		Description: description,
		At:          s.opts.now(),
		Players:     s.roster.Snapshot(),
		Distances:   s.distances.Snapshot(),
		Table:       s.table.Snapshot(),
	})
}
