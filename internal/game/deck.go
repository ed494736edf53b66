package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StandardDeckName names the built-in 76-card deck.
const StandardDeckName = "basic"

//go:embed decks.yaml
var builtinDecks []byte

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. Nightmares take no color.
type CardEntry struct {
	Color *Color `yaml:"color"`
	Kind  Kind   `yaml:"kind"`
	Count int    `yaml:"count"`
}

func (e CardEntry) card() Card {
	if e.Kind == KindNightmare || e.Color == nil {
		return Card{Color: Void, Kind: e.Kind}
	}
	return Card{Color: *e.Color, Kind: e.Kind}
}

// ParseDecks parses deck YAML and returns a map of deck name → card slice.
func ParseDecks(data []byte) (map[string][]Card, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string][]Card, len(df.Decks))
	for _, deck := range df.Decks {
		var cards []Card
		for _, entry := range deck.Cards {
			if entry.Count < 0 {
				return nil, fmt.Errorf("deck %q: negative count for %s", deck.Name, entry.card())
			}
			if entry.Kind != KindNightmare && entry.card().Color == Void {
				return nil, fmt.Errorf("deck %q: %s needs a color", deck.Name, entry.Kind)
			}
			for i := 0; i < entry.Count; i++ {
				cards = append(cards, entry.card())
			}
		}
		decks[deck.Name] = cards
	}
	return decks, nil
}

// ParseDeckFile parses a YAML deck file.
func ParseDeckFile(path string) (map[string][]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDecks(data)
}

// DeckByName returns the named deck from the deck file at path, or from the
// built-in decks when path is empty.
func DeckByName(path, name string) ([]Card, error) {
	var (
		decks map[string][]Card
		err   error
	)
	if path == "" {
		decks, err = ParseDecks(builtinDecks)
	} else {
		decks, err = ParseDeckFile(path)
	}
	if err != nil {
		return nil, err
	}

	cards, ok := decks[name]
	if !ok {
		return nil, fmt.Errorf("deck %q not found (have %d decks)", name, len(decks))
	}
	return cards, nil
}

// StandardDeck returns a fresh copy of the 76-card deck.
func StandardDeck() []Card {
	cards, err := DeckByName("", StandardDeckName)
	if err != nil {
		panic(fmt.Sprintf("built-in deck: %v", err))
	}
	return cards
}
