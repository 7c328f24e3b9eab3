package card

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/highnoon.cards/internal/platform/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		card Card
		code apperrors.Code
	}{
		{
			name: "valid default card",
			card: Card{Name: NameBang, Kind: KindDefault, Suit: SuitHearts, Rank: "A"},
		},
		{
			name: "valid weapon",
			card: Card{Name: NameSchofield, Kind: KindWeapon, Distance: 2},
		},
		{
			name: "negative id",
			card: Card{ID: -1, Name: NameBang, Kind: KindDefault},
			code: apperrors.CodeCardInvalidID,
		},
		{
			name: "empty name",
			card: Card{Kind: KindDefault},
			code: apperrors.CodeCardEmptyName,
		},
		{
			name: "unknown kind",
			card: Card{Name: NameBang, Kind: Kind("wildcard")},
			code: apperrors.CodeCardInvalidKind,
		},
		{
			name: "distance on non-weapon",
			card: Card{Name: NameBarrel, Kind: KindConstant, Distance: 1},
			code: apperrors.CodeCardInvalidDistance,
		},
		{
			name: "weapon without distance",
			card: Card{Name: NameVolcanic, Kind: KindWeapon},
			code: apperrors.CodeCardInvalidDistance,
		},
		{
			name: "unknown suit",
			card: Card{Name: NameBang, Kind: KindDefault, Suit: "stars"},
			code: apperrors.CodeCardInvalidSuit,
		},
		{
			name: "unknown rank",
			card: Card{Name: NameBang, Kind: KindDefault, Rank: "11"},
			code: apperrors.CodeCardInvalidRank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := apperrors.CodeOf(err); got != tt.code {
				t.Fatalf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestRankValue(t *testing.T) {
	tests := []struct {
		rank string
		want int
	}{
		{"2", 2},
		{"10", 10},
		{"J", 11},
		{"Q", 12},
		{"K", 13},
		{"A", 14},
		{"", 0},
	}
	for _, tt := range tests {
		if got := (Card{Rank: tt.rank}).RankValue(); got != tt.want {
			t.Errorf("RankValue(%q) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestCollectionAddAssignsUniqueIDs(t *testing.T) {
	collection := NewCollection()
	first, err := collection.Add(Card{Name: NameBang, Kind: KindDefault}, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := collection.Add(Card{Name: NameBeer, Kind: KindDefault}, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("expected assigned ids, got %d and %d", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %d", first.ID)
	}
}

func TestCollectionAddDuplicateID(t *testing.T) {
	collection := NewCollection()
	if _, err := collection.Add(Card{ID: 7, Name: NameBang, Kind: KindDefault}, false); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := collection.Add(Card{ID: 7, Name: NameBeer, Kind: KindDefault}, false)
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeCardIDDuplicate, "")) {
		t.Fatalf("expected CARD_ID_DUPLICATE, got %v", err)
	}

	reassigned, err := collection.Add(Card{ID: 7, Name: NameBeer, Kind: KindDefault}, true)
	if err != nil {
		t.Fatalf("add with overwrite: %v", err)
	}
	if reassigned.ID == 7 {
		t.Fatal("expected a fresh id on overwrite")
	}
}

func TestCollectionLookups(t *testing.T) {
	collection := NewCollection()
	added, err := collection.Add(Card{Name: NameBarrel, Kind: KindConstant}, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	byID, err := collection.ByID(added.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if byID.Name != NameBarrel {
		t.Fatalf("by id returned %q", byID.Name)
	}

	byName, err := collection.ByName(NameBarrel)
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if byName.ID != added.ID {
		t.Fatalf("by name returned id %d, want %d", byName.ID, added.ID)
	}

	if _, err := collection.ByID(999); apperrors.CodeOf(err) != apperrors.CodeCardNotFound {
		t.Fatalf("expected CARD_NOT_FOUND, got %v", err)
	}
	if _, err := collection.ByName("No Such Card"); apperrors.CodeOf(err) != apperrors.CodeCardNotFound {
		t.Fatalf("expected CARD_NOT_FOUND, got %v", err)
	}

	if got := collection.ByKind(KindWeapon); len(got) != 0 {
		t.Fatalf("expected empty result for absent kind, got %d cards", len(got))
	}
}

func TestPullRandom(t *testing.T) {
	collection := NewCollection()
	for i := 0; i < 10; i++ {
		if _, err := collection.Add(Card{Name: NameBang, Kind: KindDefault}, false); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	pulled, err := collection.PullRandom(4, nil)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(pulled) != 4 {
		t.Fatalf("pulled %d cards, want 4", len(pulled))
	}
	if collection.Len() != 6 {
		t.Fatalf("remaining = %d, want 6", collection.Len())
	}
	seen := make(map[int]bool)
	for _, card := range pulled {
		if seen[card.ID] {
			t.Fatalf("duplicate pulled id %d", card.ID)
		}
		seen[card.ID] = true
		if _, err := collection.ByID(card.ID); err == nil {
			t.Fatalf("pulled card %d still present", card.ID)
		}
	}
}

func TestPullRandomInsufficient(t *testing.T) {
	collection := NewCollection()
	if _, err := collection.Add(Card{Name: NameBang, Kind: KindDefault}, false); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := collection.PullRandom(2, nil)
	if apperrors.CodeOf(err) != apperrors.CodeCollectionInsufficientCards {
		t.Fatalf("expected COLLECTION_INSUFFICIENT_CARDS, got %v", err)
	}
	if collection.Len() != 1 {
		t.Fatalf("failed pull mutated collection, len = %d", collection.Len())
	}
}

func TestPeekRandomDoesNotRemove(t *testing.T) {
	collection := NewCollection()
	for i := 0; i < 5; i++ {
		if _, err := collection.Add(Card{Name: NameBang, Kind: KindDefault}, false); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	peeked, err := collection.PeekRandom(3, nil)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if len(peeked) != 3 {
		t.Fatalf("peeked %d cards, want 3", len(peeked))
	}
	if collection.Len() != 5 {
		t.Fatalf("peek removed cards, len = %d", collection.Len())
	}
}

func TestCollectionSnapshotRoundTrip(t *testing.T) {
	collection := NewCollection()
	cards := []Card{
		{Name: NameBang, Kind: KindDefault, Suit: SuitSpades, Rank: "A", OwnerName: "Morgan"},
		{Name: NameSchofield, Kind: KindWeapon, Distance: 2, OwnerName: "Morgan"},
		{Name: NameJail, Kind: KindConstant, TargetName: "Wyatt"},
	}
	for _, c := range cards {
		if _, err := collection.Add(c, false); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	restored, err := CollectionFromSnapshot(collection.Snapshot())
	if err != nil {
		t.Fatalf("from snapshot: %v", err)
	}
	got := restored.Cards()
	want := collection.Cards()
	if len(got) != len(want) {
		t.Fatalf("restored %d cards, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("card %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectionFromSnapshotRevalidates(t *testing.T) {
	_, err := CollectionFromSnapshot([]Snapshot{
		{ID: 1, Name: NameBarrel, Kind: KindConstant, Distance: 3},
	})
	if apperrors.CodeOf(err) != apperrors.CodeCardInvalidDistance {
		t.Fatalf("expected CARD_INVALID_DISTANCE, got %v", err)
	}
}

func TestDeck(t *testing.T) {
	deck, err := Deck()
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	want := 0
	for _, entry := range deckManifest {
		want += entry.count
	}
	if deck.Len() != want {
		t.Fatalf("deck size = %d, want %d", deck.Len(), want)
	}
	for _, weapon := range deck.ByKind(KindWeapon) {
		if weapon.Distance < 1 {
			t.Fatalf("weapon %q missing distance", weapon.Name)
		}
	}
	for _, c := range deck.Cards() {
		if c.Suit == "" || c.Rank == "" {
			t.Fatalf("card %q missing suit or rank", c.Name)
		}
	}
}

func TestRoles(t *testing.T) {
	tests := []struct {
		players  int
		want     int
		deputies int
	}{
		{players: 4, want: 4, deputies: 0},
		{players: 5, want: 5, deputies: 1},
		{players: 7, want: 7, deputies: 2},
	}
	for _, tt := range tests {
		roles, err := Roles(tt.players)
		if err != nil {
			t.Fatalf("roles(%d): %v", tt.players, err)
		}
		if roles.Len() != tt.want {
			t.Fatalf("roles(%d) = %d cards, want %d", tt.players, roles.Len(), tt.want)
		}
		sheriffs, deputies := 0, 0
		for _, role := range roles.Cards() {
			switch role.Name {
			case RoleSheriff:
				sheriffs++
			case RoleDeputy:
				deputies++
			}
		}
		if sheriffs != 1 {
			t.Fatalf("roles(%d) has %d sheriffs", tt.players, sheriffs)
		}
		if deputies != tt.deputies {
			t.Fatalf("roles(%d) has %d deputies, want %d", tt.players, deputies, tt.deputies)
		}
	}
}
