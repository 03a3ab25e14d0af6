package deck

import (
	"math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = NumSuits * NumRanks

// Deck is the canonical 52-card sequence. It is never mutated after
// construction; shuffles return fresh slices.
type Deck struct {
	cards [Size]Card
}

// New builds the canonical deck: spades, hearts, diamonds then clubs, each
// running Two through Ace.
func New() *Deck {
	d := &Deck{}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(suit, rank)
			i++
		}
	}

	return d
}

// Cards returns a copy of the canonical card order
func (d *Deck) Cards() []Card {
	cards := make([]Card, Size)
	copy(cards, d.cards[:])
	return cards
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Suit returns the cards of one suit in rank order
func (d *Deck) Suit(suit Suit) []Card {
	cards := make([]Card, 0, NumRanks)
	for _, card := range d.cards {
		if card.Suit == suit {
			cards = append(cards, card)
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of the deck using
// Fisher-Yates. The deck itself is left untouched.
func (d *Deck) Shuffle(rng *rand.Rand) []Card {
	cards := d.Cards()
	ShuffleInPlace(cards, rng)
	return cards
}

// ShuffleInPlace permutes cards using Fisher-Yates
func ShuffleInPlace(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
