// Package card defines the tagged-variant card model and the ordered,
// id-indexed collection the rest of the engine builds on.
//
// The game's card pool is closed: a card is one record with a Kind
// discriminant, and kind-specific behavior lives in a side table owned by the
// rules package. This keeps exhaustive matching possible without an
// inheritance tree.
package card

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

// Kind discriminates the card variants.
type Kind string

const (
	// KindRole is a hidden win-condition card held by exactly one player each.
	KindRole Kind = "role"
	// KindCharacter is a player's persistent ability card, assigned once per game.
	KindCharacter Kind = "character"
	// KindWeapon stays in front of a player and sets attack reach.
	KindWeapon Kind = "weapon"
	// KindConstant stays in front of a player and reacts through hooks until discarded.
	KindConstant Kind = "constant"
	// KindDefault resolves once when played and does not persist.
	KindDefault Kind = "default"
)

// Kinds lists every known card kind.
func Kinds() []Kind {
	return []Kind{KindRole, KindCharacter, KindWeapon, KindConstant, KindDefault}
}

// Valid reports whether the kind is part of the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindRole, KindCharacter, KindWeapon, KindConstant, KindDefault:
		return true
	}
	return false
}

// Suits of the draw deck, used by reveal checks.
const (
	SuitHearts   = "hearts"
	SuitDiamonds = "diamonds"
	SuitClubs    = "clubs"
	SuitSpades   = "spades"
)

// Card is one immutable card record. A zero ID means "not yet placed in a
// collection"; collections assign ids on insert.
type Card struct {
	ID         int
	Name       string
	Image      string
	Kind       Kind
	OwnerName  string
	TargetName string
	Suit       string
	Rank       string
	Distance   int
}

var validSuits = map[string]bool{
	SuitHearts:   true,
	SuitDiamonds: true,
	SuitClubs:    true,
	SuitSpades:   true,
}

var validRanks = map[string]bool{
	"2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "10": true,
	"J": true, "Q": true, "K": true, "A": true,
}

// Validate checks every field of the card record.
func (c Card) Validate() error {
	if c.ID < 0 {
		return apperrors.WithMetadata(apperrors.CodeCardInvalidID,
			"card id must not be negative",
			map[string]string{"id": strconv.Itoa(c.ID)})
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.New(apperrors.CodeCardEmptyName, "card name is required")
	}
	if !c.Kind.Valid() {
		return apperrors.WithMetadata(apperrors.CodeCardInvalidKind,
			"unknown card kind",
			map[string]string{"kind": string(c.Kind)})
	}
	if c.Distance != 0 {
		if c.Kind != KindWeapon {
			return apperrors.New(apperrors.CodeCardInvalidDistance,
				"only weapon cards carry a distance")
		}
		if c.Distance < 1 {
			return apperrors.New(apperrors.CodeCardInvalidDistance,
				"weapon distance must be at least 1")
		}
	}
	if c.Kind == KindWeapon && c.Distance == 0 {
		return apperrors.New(apperrors.CodeCardInvalidDistance,
			"weapon cards require a distance")
	}
	if c.Suit != "" && !validSuits[c.Suit] {
		return apperrors.WithMetadata(apperrors.CodeCardInvalidSuit,
			"unknown card suit",
			map[string]string{"suit": c.Suit})
	}
	if c.Rank != "" && !validRanks[c.Rank] {
		return apperrors.WithMetadata(apperrors.CodeCardInvalidRank,
			"unknown card rank",
			map[string]string{"rank": c.Rank})
	}
	return nil
}

// IsEquipment reports whether the card persists in front of a player.
func (c Card) IsEquipment() bool {
	return c.Kind == KindWeapon || c.Kind == KindConstant
}

// RankValue returns the numeric rank for reveal checks (J=11, Q=12, K=13, A=14).
// Unset or unknown ranks return 0.
func (c Card) RankValue() int {
	switch c.Rank {
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	case "A":
		return 14
	default:
		value, err := strconv.Atoi(c.Rank)
		if err != nil {
			return 0
		}
		return value
	}
}
