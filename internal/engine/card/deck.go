package card

import "strings"

// Draw-deck and setup card names. The rules package keys its behavior table
// on these, so the set is closed by construction.
const (
	NameBang       = "Bang!"
	NameMissed     = "Missed!"
	NameBeer       = "Beer"
	NamePanic      = "Panic!"
	NameCatBalou   = "Cat Balou"
	NameStagecoach = "Stagecoach"
	NameWellsFargo = "Wells Fargo"
	NameGatling    = "Gatling"
	NameSaloon     = "Saloon"

	NameBarrel   = "Barrel"
	NameMustang  = "Mustang"
	NameScope    = "Scope"
	NameJail     = "Jail"
	NameDynamite = "Dynamite"

	NameVolcanic   = "Volcanic"
	NameSchofield  = "Schofield"
	NameRemington  = "Remington"
	NameCarabine   = "Rev. Carabine"
	NameWinchester = "Winchester"
)

// Role card names.
const (
	RoleSheriff  = "Sheriff"
	RoleDeputy   = "Deputy"
	RoleOutlaw   = "Outlaw"
	RoleRenegade = "Renegade"
)

type deckEntry struct {
	name     string
	kind     Kind
	distance int
	count    int
}

// deckManifest lists the draw deck composition.
var deckManifest = []deckEntry{
	{name: NameBang, kind: KindDefault, count: 25},
	{name: NameMissed, kind: KindDefault, count: 12},
	{name: NameBeer, kind: KindDefault, count: 6},
	{name: NamePanic, kind: KindDefault, count: 4},
	{name: NameCatBalou, kind: KindDefault, count: 4},
	{name: NameStagecoach, kind: KindDefault, count: 2},
	{name: NameWellsFargo, kind: KindDefault, count: 1},
	{name: NameGatling, kind: KindDefault, count: 1},
	{name: NameSaloon, kind: KindDefault, count: 1},
	{name: NameBarrel, kind: KindConstant, count: 2},
	{name: NameMustang, kind: KindConstant, count: 2},
	{name: NameScope, kind: KindConstant, count: 1},
	{name: NameJail, kind: KindConstant, count: 3},
	{name: NameDynamite, kind: KindConstant, count: 1},
	{name: NameVolcanic, kind: KindWeapon, distance: 1, count: 2},
	{name: NameSchofield, kind: KindWeapon, distance: 2, count: 3},
	{name: NameRemington, kind: KindWeapon, distance: 3, count: 1},
	{name: NameCarabine, kind: KindWeapon, distance: 4, count: 1},
	{name: NameWinchester, kind: KindWeapon, distance: 5, count: 1},
}

var deckSuits = []string{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

var deckRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Deck builds the full draw deck. Suits and ranks are stamped by cycling
// through the 52 suit-rank combinations in manifest order, so every build
// yields the same deck before shuffling.
func Deck() (*Collection, error) {
	deck := NewCollection()
	combo := 0
	for _, entry := range deckManifest {
		for i := 0; i < entry.count; i++ {
			draw := Card{
				Name:     entry.name,
				Image:    imageRef(entry.name),
				Kind:     entry.kind,
				Suit:     deckSuits[combo%len(deckSuits)],
				Rank:     deckRanks[(combo/len(deckSuits))%len(deckRanks)],
				Distance: entry.distance,
			}
			if _, err := deck.Add(draw, false); err != nil {
				return nil, err
			}
			combo++
		}
	}
	return deck, nil
}

// Roles builds the role cards for a player count, sheriff always included.
// Standard distribution: 4 players = sheriff, renegade, 2 outlaws; a fifth
// player adds a deputy, a sixth an outlaw, a seventh a deputy.
func Roles(players int) (*Collection, error) {
	names := []string{RoleSheriff, RoleRenegade, RoleOutlaw, RoleOutlaw}
	extras := []string{RoleDeputy, RoleOutlaw, RoleDeputy}
	for i := 4; i < players && i-4 < len(extras); i++ {
		names = append(names, extras[i-4])
	}
	roles := NewCollection()
	for _, name := range names {
		role := Card{Name: name, Image: imageRef(name), Kind: KindRole}
		if _, err := roles.Add(role, false); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func imageRef(name string) string {
	slug := strings.ToLower(name)
	slug = strings.NewReplacer(" ", "_", "!", "", ".", "").Replace(slug)
	return "cards/" + slug + ".png"
}
