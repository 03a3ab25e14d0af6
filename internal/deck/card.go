package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks in each suit
const NumRanks = 13

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Index returns the zero-based position of the rank within a suit (Two=0, Ace=12)
func (r Rank) Index() int {
	return int(r - Two)
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// MakeCard builds a card from a face value in 1..13. A face value of 1 is the
// Ace and is normalized to the high rank.
func MakeCard(face int, suit Suit) Card {
	if face == 1 {
		return NewCard(suit, Ace)
	}
	return NewCard(suit, Rank(face))
}

// Club is shorthand for MakeCard(face, Clubs)
func Club(face int) Card {
	return MakeCard(face, Clubs)
}

// IsClub reports whether the card is a club
func (c Card) IsClub() bool {
	return c.Suit == Clubs
}

// LeadValue orders cards for choosing a lead. Clubs keep their rank; every
// other suit is shifted by 13 so any club sorts below any non-club.
func (c Card) LeadValue() int {
	if c.IsClub() {
		return int(c.Rank)
	}
	return int(c.Rank) + NumRanks
}

// Equal reports whether both rank and suit match
func (c Card) Equal(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

// String returns the string representation of a card (e.g., "A♣")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}
