package card

// characterNames lists the character pool dealt during setup.
var characterNames = []string{
	"Bart Cassidy",
	"Black Jack",
	"Calamity Janet",
	"El Gringo",
	"Jesse Jones",
	"Jourdonnais",
	"Paul Regret",
	"Rose Doolan",
	"Slab the Killer",
	"Suzy Lafayette",
	"Vulture Sam",
	"Willy the Kid",
}

// Characters builds the character card pool.
func Characters() (*Collection, error) {
	characters := NewCollection()
	for _, name := range characterNames {
		c := Card{Name: name, Image: imageRef(name), Kind: KindCharacter}
		if _, err := characters.Add(c, false); err != nil {
			return nil, err
		}
	}
	return characters, nil
}
