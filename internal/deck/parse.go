package deck

import (
	"fmt"
	"strings"
)

var rankSymbols = map[byte]Rank{
	'2': Two, '3': Three, '4': Four, '5': Five, '6': Six, '7': Seven, '8': Eight,
	'9': Nine, 'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

var suitSymbols = map[byte]Suit{
	's': Spades, 'h': Hearts, 'd': Diamonds, 'c': Clubs,
}

// ParseCards parses compact card notation such as "Ac2hTd" into cards.
// Ranks are 2-9, T, J, Q, K, A and suits s, h, d, c, case-insensitive.
// Whitespace between cards is ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, ok := rankSymbols[strings.ToUpper(s[i:i+1])[0]]
		if !ok {
			return nil, fmt.Errorf("invalid rank '%c' at position %d", s[i], i)
		}
		suit, ok := suitSymbols[strings.ToLower(s[i+1:i+2])[0]]
		if !ok {
			return nil, fmt.Errorf("invalid suit '%c' at position %d", s[i+1], i+1)
		}
		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}
